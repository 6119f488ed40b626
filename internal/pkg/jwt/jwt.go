package jwt

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"

	"github.com/redeposto/ponto-backend-go/internal/domain/user"
)

type Service interface {
	GenerateAccessToken(p user.Principal) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	accessTokenExpirationTime string
	tokenAuth                 *jwtauth.JWTAuth
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) Service {
	return &JWTService{
		accessTokenExpirationTime: accessTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) GenerateAccessToken(p user.Principal) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt = time.Now().Add(expDuration).Unix()

	claims := map[string]interface{}{
		"user_id":     p.UserID,
		"employee_id": returnValueOrNil(p.EmployeeID),
		"station_id":  p.StationID,
		"role":        string(p.Role),
		"type":        "access",
		"exp":         expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

func returnValueOrNil(value string) interface{} {
	if value == "" {
		return nil
	}
	return value
}

// PrincipalFromContext reads the verified access token claims placed in ctx
// by jwtauth.Verifier.
func PrincipalFromContext(ctx context.Context) (user.Principal, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return user.Principal{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	var p user.Principal
	p.UserID, _ = claims["user_id"].(string)
	p.EmployeeID, _ = claims["employee_id"].(string)
	p.StationID, _ = claims["station_id"].(string)
	role, _ := claims["role"].(string)
	p.Role = user.Role(role)

	if p.StationID == "" {
		return user.Principal{}, user.ErrStationIDRequired
	}
	if !p.Role.IsValid() {
		return user.Principal{}, user.ErrInvalidRole
	}
	return p, nil
}

// ContextWithPrincipal attaches an unsigned token carrying p to ctx. It is
// meant for in-process callers that act on behalf of a known principal.
func ContextWithPrincipal(ctx context.Context, p user.Principal) context.Context {
	tok := jwt.New()
	_ = tok.Set("user_id", p.UserID)
	if p.EmployeeID != "" {
		_ = tok.Set("employee_id", p.EmployeeID)
	}
	_ = tok.Set("station_id", p.StationID)
	_ = tok.Set("role", string(p.Role))
	_ = tok.Set("type", "access")
	return jwtauth.NewContext(ctx, tok, nil)
}
