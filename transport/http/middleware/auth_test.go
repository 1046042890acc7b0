package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"clinic/config"
	"clinic/infras/jwt"
	jwtMocks "clinic/infras/jwt/mocks"
	otelMocks "clinic/infras/otel/mocks"
	"clinic/permissions"
	"clinic/shared/constant"
	"clinic/transport/http/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const apiKey = "front-desk-kiosk"

func adminRouter(t *testing.T) (*jwtMocks.MockJWT, *chi.Mux) {
	t.Helper()

	tokens := jwtMocks.NewMockJWT(gomock.NewController(t))

	cfg := &config.Config{}
	cfg.App.APIKey = apiKey

	authRole := middleware.NewAuthRoleMiddleware(tokens, otelMocks.NewOtel(), permissions.Get(), cfg)

	whoami := func(w http.ResponseWriter, r *http.Request) {
		user, _ := r.Context().Value(constant.ContextKeyUserID).(string)
		_, _ = w.Write([]byte(user))
	}

	mux := chi.NewRouter()
	mux.Route("/v1", func(v1 chi.Router) {
		v1.Get("/availability", whoami)

		v1.Group(func(admin chi.Router) {
			admin.Use(authRole.APIKey, authRole.Auth, authRole.RBAC)
			admin.Get("/admin/bookings", whoami)
			admin.Delete("/admin/bookings/{id}", whoami)
		})
	})

	return tokens, mux
}

func call(mux http.Handler, method, target string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	return rec
}

func errorOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body.Error
}

func bearer(token string) map[string]string {
	return map[string]string{constant.RequestHeaderAuthorization: "Bearer " + token}
}

func TestPublicRoutesNeedNoToken(t *testing.T) {
	_, mux := adminRouter(t)

	rec := call(mux, http.MethodGet, "/v1/availability", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthRejects(t *testing.T) {
	tests := []struct {
		name     string
		headers  map[string]string
		tokenErr error
		claims   *jwt.Claims
		want     string
	}{
		{name: "missing header", want: "Missing authorization header"},
		{name: "not bearer", headers: map[string]string{constant.RequestHeaderAuthorization: "Basic abc"}, want: "Invalid authorization header format"},
		{name: "expired", headers: bearer("old"), tokenErr: jwt.ErrExpiredToken, want: "Token has expired"},
		{name: "tampered", headers: bearer("bad"), tokenErr: jwt.ErrInvalidToken, want: "Invalid token"},
		{name: "no user", headers: bearer("anon"), claims: &jwt.Claims{Role: "admin"}, want: "Invalid token claims"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, mux := adminRouter(t)

			if tt.tokenErr != nil || tt.claims != nil {
				tokens.EXPECT().ValidateToken(gomock.Any()).Return(tt.claims, tt.tokenErr)
			}

			rec := call(mux, http.MethodGet, "/v1/admin/bookings", tt.headers)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, tt.want, errorOf(t, rec))
		})
	}
}

func TestAuthPutsStaffOnContext(t *testing.T) {
	tokens, mux := adminRouter(t)

	tokens.EXPECT().ValidateToken("good").Return(&jwt.Claims{UserID: "staff-7", Role: "receptionist"}, nil)

	rec := call(mux, http.MethodGet, "/v1/admin/bookings", bearer("good"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "staff-7", rec.Body.String())
}

func TestRBACUsesRoutePattern(t *testing.T) {
	tests := []struct {
		name string
		role string
		code int
	}{
		{name: "receptionist cannot delete", role: "receptionist", code: http.StatusForbidden},
		{name: "admin can delete", role: "admin", code: http.StatusOK},
		{name: "unknown role", role: "patient", code: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, mux := adminRouter(t)

			tokens.EXPECT().ValidateToken("token").Return(&jwt.Claims{UserID: "staff-1", Role: tt.role}, nil)

			rec := call(mux, http.MethodDelete, "/v1/admin/bookings/b-1", bearer("token"))

			assert.Equal(t, tt.code, rec.Code)
		})
	}
}

func TestAPIKey(t *testing.T) {
	_, mux := adminRouter(t)

	rec := call(mux, http.MethodDelete, "/v1/admin/bookings/b-1", map[string]string{constant.RequestHeaderAPIKey: apiKey})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, constant.ContextAdmin, rec.Body.String())

	rec = call(mux, http.MethodGet, "/v1/admin/bookings", map[string]string{constant.RequestHeaderAPIKey: "guess"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAPIKeyDisabledWhenUnset(t *testing.T) {
	tokens := jwtMocks.NewMockJWT(gomock.NewController(t))
	authRole := middleware.NewAuthRoleMiddleware(tokens, otelMocks.NewOtel(), permissions.Get(), &config.Config{})

	handler := authRole.APIKey(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/admin/bookings", nil)
	req.Header.Set(constant.RequestHeaderAPIKey, "")
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/v1/admin/bookings", nil)
	req.Header.Set(constant.RequestHeaderAPIKey, "anything")
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
