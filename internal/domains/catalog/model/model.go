package model

import "clinic/shared/model"

const (
	TableName  = "services"
	EntityName = "service"

	FieldID       = "id"
	FieldName     = "name"
	FieldDuration = "duration"
	FieldPrice    = "price"
	FieldCategory = "category"
	FieldActive   = "active"
)

// Service is a treatment the clinic offers. Duration is in minutes.
type Service struct {
	ID       string  `db:"id"`
	Name     string  `db:"name"`
	Duration int     `db:"duration"`
	Price    float64 `db:"price"`
	Category string  `db:"category"`
	Active   bool    `db:"active"`
	model.Metadata
}
