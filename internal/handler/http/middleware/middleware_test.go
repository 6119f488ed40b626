package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redeposto/ponto-backend-go/internal/domain/user"
	"github.com/redeposto/ponto-backend-go/internal/pkg/jwt"
)

func newProtectedRouter(svc jwt.Service, guards ...func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(jwtauth.Verifier(svc.JWTAuth()))
	r.Use(AuthRequired(svc.JWTAuth()))
	r.Use(guards...)
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	return r
}

func call(t *testing.T, h http.Handler, svc jwt.Service, role user.Role) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if role != "" {
		token, _, err := svc.GenerateAccessToken(user.Principal{UserID: "u1", EmployeeID: "e1", StationID: "st1", Role: role})
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Code
}

func TestAuthRequired(t *testing.T) {
	svc := jwt.NewJWTService("test-secret", "1h")
	h := newProtectedRouter(svc)

	assert.Equal(t, http.StatusUnauthorized, call(t, h, svc, ""))
	assert.Equal(t, http.StatusNoContent, call(t, h, svc, user.RoleEmployee))

	other := jwt.NewJWTService("other-secret", "1h")
	assert.Equal(t, http.StatusUnauthorized, call(t, h, other, user.RoleOwner))
}

func TestRoleGuards(t *testing.T) {
	svc := jwt.NewJWTService("test-secret", "1h")

	manager := newProtectedRouter(svc, RequireManager)
	assert.Equal(t, http.StatusForbidden, call(t, manager, svc, user.RoleEmployee))
	assert.Equal(t, http.StatusNoContent, call(t, manager, svc, user.RoleManager))
	assert.Equal(t, http.StatusNoContent, call(t, manager, svc, user.RoleOwner))

	owner := newProtectedRouter(svc, RequireOwner)
	assert.Equal(t, http.StatusForbidden, call(t, owner, svc, user.RoleManager))
	assert.Equal(t, http.StatusNoContent, call(t, owner, svc, user.RoleOwner))

	review := newProtectedRouter(svc, RequirePermission(user.PermissionPunchReview))
	assert.Equal(t, http.StatusForbidden, call(t, review, svc, user.RoleEmployee))
	assert.Equal(t, http.StatusNoContent, call(t, review, svc, user.RoleManager))
}
