package jwt

import (
	"context"
	"testing"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redeposto/ponto-backend-go/internal/domain/user"
)

func TestGenerateAccessToken_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", "1h")
	p := user.Principal{UserID: "u1", EmployeeID: "e1", StationID: "st1", Role: user.RoleEmployee}

	token, expiresAt, err := svc.GenerateAccessToken(p)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Positive(t, expiresAt)

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)

	ctx := jwtauth.NewContext(context.Background(), decoded, nil)
	got, err := PrincipalFromContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestGenerateAccessToken_InvalidExpiration(t *testing.T) {
	svc := NewJWTService("test-secret", "one hour")
	_, _, err := svc.GenerateAccessToken(user.Principal{UserID: "u1", StationID: "st1", Role: user.RoleOwner})
	assert.Error(t, err)
}

func TestPrincipalFromContext(t *testing.T) {
	t.Run("owner without employee record", func(t *testing.T) {
		want := user.Principal{UserID: "u1", StationID: "st1", Role: user.RoleOwner}
		got, err := PrincipalFromContext(ContextWithPrincipal(context.Background(), want))
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("missing station", func(t *testing.T) {
		ctx := ContextWithPrincipal(context.Background(), user.Principal{UserID: "u1", Role: user.RoleManager})
		_, err := PrincipalFromContext(ctx)
		assert.ErrorIs(t, err, user.ErrStationIDRequired)
	})

	t.Run("unknown role", func(t *testing.T) {
		ctx := ContextWithPrincipal(context.Background(), user.Principal{UserID: "u1", StationID: "st1", Role: "pending"})
		_, err := PrincipalFromContext(ctx)
		assert.ErrorIs(t, err, user.ErrInvalidRole)
	})

	t.Run("no token", func(t *testing.T) {
		_, err := PrincipalFromContext(context.Background())
		assert.Error(t, err)
	})
}
