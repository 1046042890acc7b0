package dto

import (
	"strings"

	"clinic/internal/domains/staff/model"
	"clinic/shared"
	gDto "clinic/shared/dto"
)

type StaffResponse struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Role         string   `json:"role"`
	Active       bool     `json:"active"`
	WorkingDays  []string `json:"working_days"`
	WorkingHours string   `json:"working_hours"`
	gDto.Metadata
}

func (r *StaffResponse) FromModel(model model.Staff) {
	r.ID = model.ID
	r.Name = model.Name
	r.Role = model.Role
	r.Active = model.Active
	r.WorkingDays = splitDays(model.WorkingDays)
	r.WorkingHours = model.WorkingHours
	r.Metadata.FromModel(model.Metadata)
}

// splitDays reads the comma separated working_days column ("mon,tue,wed").
func splitDays(value string) []string {
	days := []string{}

	for day := range strings.SplitSeq(value, ",") {
		if day = strings.TrimSpace(day); day != "" {
			days = append(days, day)
		}
	}

	return days
}

type GetStaffResponse struct {
	Staff     []StaffResponse `json:"staff"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetStaffResponse) FromModels(models []model.Staff, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Staff = make([]StaffResponse, len(models))
	for i, mod := range models {
		r.Staff[i].FromModel(mod)
	}
}
