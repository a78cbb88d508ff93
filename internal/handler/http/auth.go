package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/smart-attendance-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/smart-attendance-go/internal/handler/http/response"
	"github.com/cmlabs-hris/smart-attendance-go/internal/pkg/jwt"
)

type AuthHandler interface {
	LoginWithGoogle(w http.ResponseWriter, r *http.Request)
	Me(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct {
	jwtService jwt.Service
	users      user.UserRepository
}

func NewAuthHandler(jwtService jwt.Service, users user.UserRepository) AuthHandler {
	return &AuthHandlerImpl{
		jwtService: jwtService,
		users:      users,
	}
}

// LoginWithGoogle implements AuthHandler. The stub trusts credentials it
// was seeded with instead of verifying them with Google.
func (a *AuthHandlerImpl) LoginWithGoogle(w http.ResponseWriter, r *http.Request) {
	var loginReq auth.GoogleLoginRequest

	// 1. Decode JSON
	if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
		slog.Error("LoginWithGoogle decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	// Validate DTO
	if err := loginReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	u, err := a.users.GetByCredential(r.Context(), loginReq.Credential)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			err = auth.ErrInvalidCredentials
		}
		slog.Warn("LoginWithGoogle rejected", "error", err)
		response.HandleError(w, err)
		return
	}

	token, _, err := a.jwtService.GenerateAccessToken(u.ID, u.Email, u.Role)
	if err != nil {
		slog.Error("LoginWithGoogle token error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("User logged in successfully", "user_id", u.ID)
	response.Success(w, authResponse(u, token))
}

// Me implements AuthHandler.
func (a *AuthHandlerImpl) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	u, err := a.users.GetByID(r.Context(), userID)
	if err != nil {
		// A token for a user that no longer exists is as good as expired.
		if errors.Is(err, user.ErrUserNotFound) {
			err = auth.ErrInvalidToken
		}
		response.HandleError(w, err)
		return
	}

	response.Success(w, authResponse(u, ""))
}

func authResponse(u user.User, token string) auth.AuthResponse {
	return auth.AuthResponse{
		Token:     token,
		UserID:    u.ID,
		Email:     u.Email,
		Name:      u.Name,
		AvatarURL: u.AvatarURL,
		Role:      u.Role,
	}
}
