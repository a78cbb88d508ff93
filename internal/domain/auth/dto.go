package auth

import (
	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/smart-attendance-go/internal/pkg/validator"
)

// GoogleLoginRequest carries the Google ID token obtained by the sign-in flow.
type GoogleLoginRequest struct {
	Credential string `json:"credential"`
}

func (r *GoogleLoginRequest) Validate() error {
	var errs validator.ValidationErrors
	errs.Required("credential", r.Credential)
	return errs.Err()
}

// AuthResponse is returned by both the login and the "me" endpoints. Token is
// empty on "me".
type AuthResponse struct {
	Token     string    `json:"token,omitempty"`
	UserID    int64     `json:"userId"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	AvatarURL string    `json:"avatarUrl,omitempty"`
	Role      user.Role `json:"role"`
}

func (r AuthResponse) User() user.User {
	return user.User{
		ID:        r.UserID,
		Email:     r.Email,
		Name:      r.Name,
		AvatarURL: r.AvatarURL,
		Role:      r.Role,
	}
}
