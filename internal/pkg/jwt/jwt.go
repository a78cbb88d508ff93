package jwt

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"

	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/user"
)

const (
	ClaimRole   = "role"
	ClaimUserID = "userId"
)

var ErrMalformedToken = errors.New("malformed token")

// Service issues and verifies the access tokens of the stub backend.
type Service interface {
	GenerateAccessToken(userID int64, email string, role user.Role) (token string, expiresAt int64, err error)
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

func (j *JWTService) GenerateAccessToken(userID int64, email string, role user.Role) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt = time.Now().Add(expDuration).Unix()

	claims := map[string]interface{}{
		"sub":       email,
		ClaimUserID: userID,
		ClaimRole:   string(role),
		"exp":       expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

// Claims is what a client reads from its own token. The signature is not
// checked; the backend stays the authority.
type Claims struct {
	Subject   string
	UserID    int64
	Role      user.Role
	ExpiresAt time.Time // zero when the token carries no exp
}

// ParseClaims decodes token without verifying its signature.
func ParseClaims(token string) (Claims, error) {
	parsed, err := jwt.ParseString(token, jwt.WithVerify(false), jwt.WithValidate(false))
	if err != nil {
		return Claims{}, errors.Join(ErrMalformedToken, err)
	}

	claims := Claims{
		Subject:   parsed.Subject(),
		ExpiresAt: parsed.Expiration(),
	}
	if v, ok := parsed.Get(ClaimRole); ok {
		if role, ok := v.(string); ok {
			claims.Role = user.Role(role)
		}
	}
	if v, ok := parsed.Get(ClaimUserID); ok {
		switch id := v.(type) {
		case float64:
			claims.UserID = int64(id)
		case int64:
			claims.UserID = id
		case json.Number:
			claims.UserID, _ = id.Int64()
		}
	}
	return claims, nil
}

// Expired reports whether the token is past its exp at now. Tokens without
// exp never expire client-side.
func (c Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt)
}
