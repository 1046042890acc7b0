package provider_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	otelMocks "clinic/infras/otel/mocks"
	"clinic/internal/domains/staff/model"
	"clinic/internal/domains/staff/model/dto"
	serviceMocks "clinic/internal/domains/staff/service/mocks"
	"clinic/internal/handlers/provider"
	"clinic/shared/failure"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newRouter(t *testing.T) (*serviceMocks.MockStaff, *chi.Mux) {
	t.Helper()

	svc := serviceMocks.NewMockStaff(gomock.NewController(t))
	handler := provider.New(svc, otelMocks.NewOtel())

	mux := chi.NewRouter()
	handler.Router(mux)

	return svc, mux
}

func get(mux http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	return rec
}

func TestGetProviders(t *testing.T) {
	svc, mux := newRouter(t)

	svc.EXPECT().GetProviders(gomock.Any()).
		Return([]dto.StaffResponse{{ID: "dr-lee", Name: "Dr. Lee", Role: model.RoleDentist, Active: true}}, nil)

	rec := get(mux, "/providers")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data []dto.StaffResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "dr-lee", body.Data[0].ID)
}

func TestGetProvidersFailure(t *testing.T) {
	svc, mux := newRouter(t)

	svc.EXPECT().GetProviders(gomock.Any()).Return(nil, errors.New("connection refused"))

	assert.Equal(t, http.StatusInternalServerError, get(mux, "/providers").Code)
}

func TestGetProviderByID(t *testing.T) {
	svc, mux := newRouter(t)

	svc.EXPECT().GetProvider(gomock.Any(), "dr-lee").
		Return(model.Staff{ID: "dr-lee", Name: "Dr. Lee", Role: model.RoleDentist, Active: true, WorkingDays: "mon, wed,fri"}, nil)
	svc.EXPECT().GetProvider(gomock.Any(), "hyg-rosa").
		Return(model.Staff{}, failure.NotFound("provider not found"))

	rec := get(mux, "/providers/dr-lee")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data dto.StaffResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []string{"mon", "wed", "fri"}, body.Data.WorkingDays)

	assert.Equal(t, http.StatusNotFound, get(mux, "/providers/hyg-rosa").Code)
}
