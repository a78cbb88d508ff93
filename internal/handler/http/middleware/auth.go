package middleware

import (
	"context"
	"net/http"

	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/smart-attendance-go/internal/handler/http/response"
	"github.com/cmlabs-hris/smart-attendance-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil || token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			if _, ok := UserIDFromClaims(claims); !ok {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}

// UserIDFromClaims reads the numeric user id claim. JSON numbers decode as
// float64.
func UserIDFromClaims(claims map[string]any) (int64, bool) {
	switch id := claims[jwt.ClaimUserID].(type) {
	case float64:
		return int64(id), true
	case int64:
		return id, true
	case int:
		return int64(id), true
	}
	return 0, false
}

// UserID returns the signed-in user of an authenticated request.
func UserID(ctx context.Context) (int64, bool) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return 0, false
	}
	return UserIDFromClaims(claims)
}
