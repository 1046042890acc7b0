package dto

import (
	"time"

	"clinic/shared/constant"
	"clinic/shared/model"
	"clinic/shared/timezone"
)

// Metadata is the audit block of admin responses, rendered in the clinic timezone.
type Metadata struct {
	CreatedAt  string `json:"created_at"`
	ModifiedAt string `json:"modified_at"`
	CreatedBy  string `json:"created_by"`
	ModifiedBy string `json:"modified_by"`
}

func (m *Metadata) FromModel(model model.Metadata) {
	*m = Metadata{
		CreatedAt:  stamp(model.CreatedAt),
		ModifiedAt: stamp(model.ModifiedAt),
		CreatedBy:  model.CreatedBy,
		ModifiedBy: model.ModifiedBy,
	}
}

// stamp leaves unset times empty instead of rendering year one.
func stamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	return timezone.Format(t, constant.DateFormat)
}
