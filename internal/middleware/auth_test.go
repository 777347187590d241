package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/strumhaus/order-service/internal/entities"
	"github.com/strumhaus/order-service/internal/middleware"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "secret"

func signToken(t *testing.T, key, sub, role string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  sub,
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(key))
	require.NoError(t, err)
	return signed
}

func TestAuth(t *testing.T) {
	testCases := []struct {
		name          string
		header        string
		wantStatus    int
		wantPrincipal *middleware.Principal
	}{
		{
			name:          "valid token",
			header:        "Bearer " + signToken(t, secret, "user-1", "customer"),
			wantStatus:    http.StatusOK,
			wantPrincipal: &middleware.Principal{UserID: "user-1", Role: "customer"},
		},
		{
			name:       "wrong signature",
			header:     "Bearer " + signToken(t, "other-secret", "user-1", "customer"),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "missing header",
			header:     "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "not a bearer token",
			header:     "Basic dXNlcjpwYXNz",
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var gotPrincipal *middleware.Principal
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if p, ok := middleware.PrincipalFromContext(r.Context()); ok {
					gotPrincipal = &p
				}
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()

			middleware.Auth(secret)(next).ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)
			if tc.wantPrincipal != nil {
				require.NotNil(t, gotPrincipal)
				assert.Equal(t, *tc.wantPrincipal, *gotPrincipal)
			} else {
				assert.Nil(t, gotPrincipal)
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	t.Run("admin passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(middleware.WithPrincipal(req.Context(), middleware.Principal{UserID: "a", Role: entities.RoleAdmin}))
		rec := httptest.NewRecorder()

		middleware.RequireAdmin(next).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("customer is forbidden", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(middleware.WithPrincipal(req.Context(), middleware.Principal{UserID: "c", Role: entities.RoleCustomer}))
		rec := httptest.NewRecorder()

		middleware.RequireAdmin(next).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("no principal is forbidden", func(t *testing.T) {
		rec := httptest.NewRecorder()

		middleware.RequireAdmin(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
