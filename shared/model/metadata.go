package model

import "time"

type Metadata struct {
	CreatedAt  time.Time `db:"created_at"  json:"created_at"`
	ModifiedAt time.Time `db:"modified_at" json:"modified_at"`
	CreatedBy  string    `db:"created_by"`
	ModifiedBy string    `db:"modified_by"`
}

// NewMetadata stamps a record created by user at now.
func NewMetadata(user string, now time.Time) Metadata {
	return Metadata{CreatedAt: now, ModifiedAt: now, CreatedBy: user, ModifiedBy: user}
}

// Touch records an edit by user at now.
func (m *Metadata) Touch(user string, now time.Time) {
	m.ModifiedAt = now
	m.ModifiedBy = user
}
