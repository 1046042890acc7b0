package model

import "clinic/shared/model"

const (
	TableName  = "staff"
	EntityName = "staff"

	FieldID           = "id"
	FieldName         = "name"
	FieldRole         = "role"
	FieldActive       = "active"
	FieldWorkingDays  = "working_days"
	FieldWorkingHours = "working_hours"
)

const (
	RoleDentist   = "dentist"
	RoleHygienist = "hygienist"
	RoleAssistant = "assistant"
)

// Staff is a clinic employee. Working days and hours are informational only;
// slot computation does not consult them.
type Staff struct {
	ID           string `db:"id"`
	Name         string `db:"name"`
	Role         string `db:"role"`
	Active       bool   `db:"active"`
	WorkingDays  string `db:"working_days"`
	WorkingHours string `db:"working_hours"`
	model.Metadata
}

// IsProvider reports whether the staff member can be picked in the booking flow.
func (s Staff) IsProvider() bool {
	return s.Active && s.Role == RoleDentist
}
