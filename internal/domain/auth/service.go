package auth

import (
	"context"

	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/user"
)

type AuthService interface {
	// LoginWithGoogle trades a Google ID token for a backend session.
	LoginWithGoogle(ctx context.Context, credential string) (user.User, error)
	// Me fetches the signed-in user's profile and refreshes the session.
	Me(ctx context.Context) (user.User, error)
	// Resume restores a stored session and checks it with the backend.
	Resume(ctx context.Context) (bool, error)
	Logout()
}
