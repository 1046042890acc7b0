package wizard_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	otelMocks "clinic/infras/otel/mocks"
	"clinic/internal/domains/booking/model/dto"
	serviceMocks "clinic/internal/domains/booking/service/mocks"
	bookingWizard "clinic/internal/domains/booking/wizard"
	"clinic/internal/handlers/wizard"
	"clinic/shared/failure"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newRouter(t *testing.T) (*serviceMocks.MockWizard, *chi.Mux) {
	t.Helper()

	svc := serviceMocks.NewMockWizard(gomock.NewController(t))
	handler := wizard.New(svc, otelMocks.NewOtel())

	mux := chi.NewRouter()
	handler.Router(mux)

	return svc, mux
}

func serve(mux http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) dto.WizardResponse {
	t.Helper()

	var body struct {
		Data dto.WizardResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body.Data
}

func TestStart(t *testing.T) {
	svc, mux := newRouter(t)

	svc.EXPECT().Start(gomock.Any()).
		Return(dto.WizardResponse{ID: "w-1", Step: bookingWizard.StepService, Slots: []string{}}, nil)

	rec := serve(mux, http.MethodPost, "/wizard", "")

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "w-1", decode(t, rec).ID)
}

func TestGet(t *testing.T) {
	svc, mux := newRouter(t)

	svc.EXPECT().Get(gomock.Any(), "w-1").Return(dto.WizardResponse{ID: "w-1", Step: bookingWizard.StepContact}, nil)
	svc.EXPECT().Get(gomock.Any(), "w-2").Return(dto.WizardResponse{}, failure.NotFound("booking session not found"))

	rec := serve(mux, http.MethodGet, "/wizard/w-1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, bookingWizard.StepContact, decode(t, rec).Step)

	assert.Equal(t, http.StatusNotFound, serve(mux, http.MethodGet, "/wizard/w-2", "").Code)
}

func TestSelections(t *testing.T) {
	svc, mux := newRouter(t)
	revision := 3

	svc.EXPECT().SelectService(gomock.Any(), "w-1", dto.SelectServiceRequest{ServiceID: "svc-clean", Revision: &revision}).
		Return(dto.WizardResponse{ID: "w-1", Revision: 4}, nil)
	svc.EXPECT().SelectProvider(gomock.Any(), "w-1", dto.SelectProviderRequest{}).
		Return(dto.WizardResponse{ID: "w-1", Provider: &bookingWizard.ProviderChoice{}}, nil)
	svc.EXPECT().SelectDate(gomock.Any(), "w-1", dto.SelectDateRequest{Date: "2099-06-10"}).
		Return(dto.WizardResponse{ID: "w-1", Date: "2099-06-10", Slots: []string{"08:00"}, SlotsLoaded: true}, nil)
	svc.EXPECT().SelectTime(gomock.Any(), "w-1", dto.SelectTimeRequest{Time: "08:00"}).
		Return(dto.WizardResponse{ID: "w-1", Time: "08:00"}, nil)
	svc.EXPECT().SetContact(gomock.Any(), "w-1", dto.ContactRequest{Name: "Ana", Phone: "555-0101"}).
		Return(dto.WizardResponse{ID: "w-1", Contact: &bookingWizard.ContactChoice{Name: "Ana", Phone: "555-0101"}}, nil)

	rec := serve(mux, http.MethodPut, "/wizard/w-1/service", `{"service_id":"svc-clean","revision":3}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 4, decode(t, rec).Revision)

	rec = serve(mux, http.MethodPut, "/wizard/w-1/provider", `{"provider_id":""}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode(t, rec).Provider.NoPreference())

	rec = serve(mux, http.MethodPut, "/wizard/w-1/date", `{"date":"2099-06-10"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"08:00"}, decode(t, rec).Slots)

	assert.Equal(t, http.StatusOK, serve(mux, http.MethodPut, "/wizard/w-1/time", `{"time":"08:00"}`).Code)
	assert.Equal(t, http.StatusOK, serve(mux, http.MethodPut, "/wizard/w-1/contact", `{"name":"Ana","phone":"555-0101"}`).Code)
}

func TestSelectionsRejectMalformedInput(t *testing.T) {
	tests := []struct {
		name   string
		target string
		body   string
	}{
		{name: "service missing", target: "/wizard/w-1/service", body: `{}`},
		{name: "date format", target: "/wizard/w-1/date", body: `{"date":"06/10/2099"}`},
		{name: "time format", target: "/wizard/w-1/time", body: `{"time":"8:00"}`},
		{name: "empty body on a choice", target: "/wizard/w-1/date", body: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mux := newRouter(t)

			assert.Equal(t, http.StatusBadRequest, serve(mux, http.MethodPut, tt.target, tt.body).Code)
		})
	}
}

func TestNavigationAcceptsEmptyBody(t *testing.T) {
	svc, mux := newRouter(t)
	revision := 7

	svc.EXPECT().Next(gomock.Any(), "w-1", dto.NavigateRequest{}).
		Return(dto.WizardResponse{ID: "w-1", Step: bookingWizard.StepProvider, CanGoBack: true}, nil)
	svc.EXPECT().Back(gomock.Any(), "w-1", dto.NavigateRequest{Revision: &revision}).
		Return(dto.WizardResponse{ID: "w-1", Step: bookingWizard.StepService}, nil)

	rec := serve(mux, http.MethodPost, "/wizard/w-1/next", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode(t, rec).CanGoBack)

	rec = serve(mux, http.MethodPost, "/wizard/w-1/back", `{"revision":7}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, bookingWizard.StepService, decode(t, rec).Step)
}

func TestTransitionErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{name: "guard", err: bookingWizard.ErrServiceRequired, code: http.StatusBadRequest},
		{name: "stale revision", err: bookingWizard.ErrStaleRevision, code: http.StatusConflict},
		{name: "slots unavailable", err: bookingWizard.ErrSlotsUnavailable, code: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mux := newRouter(t)

			svc.EXPECT().Next(gomock.Any(), "w-1", gomock.Any()).Return(dto.WizardResponse{}, tt.err)

			assert.Equal(t, tt.code, serve(mux, http.MethodPost, "/wizard/w-1/next", "").Code)
		})
	}
}

func TestSubmit(t *testing.T) {
	svc, mux := newRouter(t)

	svc.EXPECT().Submit(gomock.Any(), "w-1", dto.NavigateRequest{}).
		Return(dto.WizardResponse{
			ID:           "w-1",
			Step:         bookingWizard.StepSubmitted,
			Confirmation: &bookingWizard.Confirmation{BookingID: "b-1", EndTime: "08:45", Status: "pending"},
		}, nil)
	svc.EXPECT().Submit(gomock.Any(), "w-2", dto.NavigateRequest{}).
		Return(dto.WizardResponse{}, failure.SlotTakenError)

	rec := serve(mux, http.MethodPost, "/wizard/w-1/submit", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "b-1", decode(t, rec).Confirmation.BookingID)

	assert.Equal(t, http.StatusConflict, serve(mux, http.MethodPost, "/wizard/w-2/submit", "").Code)
}
