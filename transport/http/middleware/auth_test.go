package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotel/config"
	"hotel/infras/jwt"
	jwtMocks "hotel/infras/jwt/mocks"
	"hotel/infras/otel/mocks"
	"hotel/permissions"
	"hotel/shared/constant"
	"hotel/transport/http/middleware"
)

const (
	adminToken      = "admin-token"
	superAdminToken = "superadmin-token"
	expiredToken    = "expired-token"
	internalAPIKey  = "internal-key"
)

func TestMain(m *testing.M) {
	_ = os.Setenv("SERVER_ENV", constant.ServerEnvProduction)

	os.Exit(m.Run())
}

// newProtectedRouter mirrors the /v1 middleware stack over a few real routes.
// Handlers answer with the caller id they see, or "anonymous".
func newProtectedRouter(t *testing.T) http.Handler {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockJWT := jwtMocks.NewMockJWT(ctrl)

	mockJWT.EXPECT().ValidateToken(adminToken, jwt.AccessToken).
		Return(&jwt.Claims{UserID: "staff-1", Email: "frontdesk@hotel.test", Role: constant.RoleAdmin}, nil).AnyTimes()
	mockJWT.EXPECT().ValidateToken(superAdminToken, jwt.AccessToken).
		Return(&jwt.Claims{UserID: "owner-1", Email: "owner@hotel.test", Role: constant.RoleSuperAdmin}, nil).AnyTimes()
	mockJWT.EXPECT().ValidateToken(expiredToken, jwt.AccessToken).
		Return(nil, jwt.ErrExpiredToken).AnyTimes()

	cfg := &config.Config{}
	cfg.App.APIKey = internalAPIKey

	perms := permissions.Get()
	require.NotNil(t, perms)

	authRole := middleware.NewAuthRoleMiddleware(mockJWT, mocks.NewOtel(), perms, cfg)

	whoami := func(w http.ResponseWriter, r *http.Request) {
		caller, _ := r.Context().Value(constant.ContextKeyUserID).(string)
		if caller == "" {
			caller = "anonymous"
		}

		_, _ = w.Write([]byte(caller))
	}

	router := chi.NewRouter()
	router.Route("/v1", func(r chi.Router) {
		r.Use(authRole.APIKey, authRole.Auth, authRole.RBAC)

		r.Route("/rooms", func(r chi.Router) {
			r.Get("/", whoami)
			r.Patch("/{code}", whoami)
		})
		r.Route("/bookings", func(r chi.Router) {
			r.Post("/", whoami)
			r.Get("/confirmation/{code}", whoami)
			r.Get("/{id}", whoami)
		})
		r.Route("/users", func(r chi.Router) {
			r.Get("/", whoami)
		})
	})

	return router
}

func TestAuthRole(t *testing.T) {
	router := newProtectedRouter(t)

	tests := []struct {
		name     string
		method   string
		path     string
		token    string
		apiKey   string
		wantCode int
		wantBody string
	}{
		{name: "public catalogue", method: http.MethodGet, path: "/v1/rooms", wantCode: http.StatusOK, wantBody: "anonymous"},
		{name: "public booking lookup", method: http.MethodGet, path: "/v1/bookings/confirmation/CC4M9Q2X7K", wantCode: http.StatusOK, wantBody: "anonymous"},
		{name: "public catalogue with trailing slash", method: http.MethodGet, path: "/v1/rooms/", wantCode: http.StatusOK, wantBody: "anonymous"},
		{name: "guest booking", method: http.MethodPost, path: "/v1/bookings", wantCode: http.StatusOK, wantBody: "anonymous"},
		{name: "guest booking with trailing slash", method: http.MethodPost, path: "/v1/bookings/", wantCode: http.StatusOK, wantBody: "anonymous"},
		{name: "staff booking is attributed", method: http.MethodPost, path: "/v1/bookings", token: adminToken, wantCode: http.StatusOK, wantBody: "staff-1"},
		{name: "stale token on a public route", method: http.MethodGet, path: "/v1/rooms", token: expiredToken, wantCode: http.StatusOK, wantBody: "anonymous"},
		{name: "admin route without token", method: http.MethodPatch, path: "/v1/rooms/deluxe", wantCode: http.StatusUnauthorized},
		{name: "admin route with expired token", method: http.MethodGet, path: "/v1/bookings/3f1c", token: expiredToken, wantCode: http.StatusUnauthorized},
		{name: "admin route as admin", method: http.MethodPatch, path: "/v1/rooms/deluxe", token: adminToken, wantCode: http.StatusOK, wantBody: "staff-1"},
		{name: "superadmin route as admin", method: http.MethodGet, path: "/v1/users", token: adminToken, wantCode: http.StatusForbidden},
		{name: "superadmin route as admin with trailing slash", method: http.MethodGet, path: "/v1/users/", token: adminToken, wantCode: http.StatusForbidden},
		{name: "unlisted route as staff", method: http.MethodGet, path: "/v1/spa", token: superAdminToken, wantCode: http.StatusForbidden},
		{name: "superadmin route as superadmin", method: http.MethodGet, path: "/v1/users", token: superAdminToken, wantCode: http.StatusOK, wantBody: "owner-1"},
		{name: "internal api key", method: http.MethodGet, path: "/v1/users", apiKey: internalAPIKey, wantCode: http.StatusOK, wantBody: "anonymous"},
		{name: "wrong api key", method: http.MethodGet, path: "/v1/users", apiKey: "guess", wantCode: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.token != "" {
				req.Header.Set(constant.RequestHeaderAuthorization, "Bearer "+tt.token)
			}

			if tt.apiKey != "" {
				req.Header.Set(constant.RequestHeaderAPIKey, tt.apiKey)
			}

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)

			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}

func TestAPIKey_RejectsWhenUnconfigured(t *testing.T) {
	authRole := middleware.NewAuthRoleMiddleware(nil, mocks.NewOtel(), permissions.Get(), &config.Config{})

	handler := authRole.APIKey(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/v1/users", nil)
	req.Header.Set(constant.RequestHeaderAPIKey, "")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code, "requests without a key fall through to token auth")

	req.Header.Set(constant.RequestHeaderAPIKey, "anything")

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
