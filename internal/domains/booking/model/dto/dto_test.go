package dto_test

import (
	"testing"

	"clinic/internal/domains/booking/model"
	"clinic/internal/domains/booking/model/dto"
	"clinic/shared/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBookingRequest_ToModelDefaults(t *testing.T) {
	req := dto.CreateBookingRequest{
		ContactName:  " Ann ",
		ContactPhone: "555-0101",
		ServiceID:    "svc-1",
		BookingDate:  "2025-06-10",
		StartTime:    "10:00",
	}

	booking, err := req.ToModel("reception")
	require.NoError(t, err)

	assert.Equal(t, "Ann", booking.ContactName)
	assert.Equal(t, model.StatusConfirmed, booking.Status)
	assert.Equal(t, model.SourcePhone, booking.Source)
	assert.Nil(t, booking.ProviderID)
	assert.Equal(t, "2025-06-10", booking.Date())
	assert.Equal(t, "reception", booking.CreatedBy)
	assert.Empty(t, booking.ID, "ids are assigned on insert")
}

func TestCreateBookingRequest_ToModelExplicit(t *testing.T) {
	req := dto.CreateBookingRequest{
		ContactName:  "Ann",
		ContactPhone: "555",
		ServiceID:    "svc-1",
		ProviderID:   "dr-a",
		BookingDate:  "2025-06-10",
		StartTime:    "10:00",
		Status:       model.StatusPending,
		Source:       model.SourceWalkIn,
	}

	booking, err := req.ToModel("admin")
	require.NoError(t, err)

	assert.Equal(t, "dr-a", booking.Provider())
	assert.Equal(t, model.StatusPending, booking.Status)
	assert.Equal(t, model.SourceWalkIn, booking.Source)
}

func TestCreateBookingRequest_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *dto.CreateBookingRequest)
		wantErr bool
	}{
		{name: "valid", mutate: func(*dto.CreateBookingRequest) {}},
		{name: "free form email is accepted", mutate: func(r *dto.CreateBookingRequest) { r.ContactEmail = "call me" }},
		{name: "missing phone", mutate: func(r *dto.CreateBookingRequest) { r.ContactPhone = "" }, wantErr: true},
		{name: "bad date", mutate: func(r *dto.CreateBookingRequest) { r.BookingDate = "10-06-2025" }, wantErr: true},
		{name: "bad time", mutate: func(r *dto.CreateBookingRequest) { r.StartTime = "9:00" }, wantErr: true},
		{name: "unknown status", mutate: func(r *dto.CreateBookingRequest) { r.Status = "rescheduled" }, wantErr: true},
		{name: "unknown source", mutate: func(r *dto.CreateBookingRequest) { r.Source = "email" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := dto.CreateBookingRequest{
				ContactName:  "Ann",
				ContactPhone: "555",
				ServiceID:    "svc-1",
				BookingDate:  "2025-06-10",
				StartTime:    "10:00",
			}
			tt.mutate(&req)

			err := validator.ValidateStruct(&req)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUpdateBookingRequest_Apply(t *testing.T) {
	provider := "dr-a"
	current := model.Booking{
		ID:              "b-1",
		ServiceID:       "svc-1",
		ServiceName:     "Cleaning",
		ServiceDuration: 30,
		ProviderID:      &provider,
		StartTime:       "09:00",
		EndTime:         "09:30",
	}

	req := dto.UpdateBookingRequest{
		ContactName:  "Ann",
		ContactPhone: "555",
		ServiceID:    "svc-1",
		BookingDate:  "2025-06-12",
		StartTime:    "11:00",
		Status:       model.StatusCompleted,
		Source:       model.SourceOnline,
	}

	updated, err := req.Apply(current)
	require.NoError(t, err)

	assert.Equal(t, "b-1", updated.ID)
	assert.Nil(t, updated.ProviderID, "an empty provider clears the assignment")
	assert.Equal(t, "Cleaning", updated.ServiceName)
	assert.Equal(t, "11:00", updated.StartTime)
	assert.Equal(t, "2025-06-12", updated.Date())
	assert.Equal(t, model.StatusCompleted, updated.Status)
}

func TestBookingResponse_FromModel(t *testing.T) {
	date, err := model.ParseDate("2025-06-10")
	require.NoError(t, err)

	var res dto.BookingResponse
	res.FromModel(model.Booking{ID: "b-1", BookingDate: date, StartTime: "19:45", EndTime: "20:30", Status: model.StatusPending})

	assert.Equal(t, "2025-06-10", res.BookingDate)
	assert.Equal(t, "20:30", res.EndTime)
	assert.Nil(t, res.ProviderID)
}

func TestGetBookingsResponse_FromModels(t *testing.T) {
	var res dto.GetBookingsResponse
	res.FromModels([]model.Booking{}, 0, 10)

	assert.NotNil(t, res.Bookings)
	assert.Equal(t, 1, res.TotalPage)
}
