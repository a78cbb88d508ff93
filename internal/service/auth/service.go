package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/smart-attendance-go/internal/gateway"
	"github.com/cmlabs-hris/smart-attendance-go/internal/pkg/apierr"
	"github.com/cmlabs-hris/smart-attendance-go/internal/session"
)

const ReasonTokenRejected = "token rejected by server"

type AuthServiceImpl struct {
	client  *gateway.Client
	session *session.Session
	logger  *slog.Logger
}

func NewAuthService(client *gateway.Client, sess *session.Session, logger *slog.Logger) auth.AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthServiceImpl{
		client:  client,
		session: sess,
		logger:  logger.With(slog.String("component", "auth")),
	}
}

// LoginWithGoogle implements auth.AuthService.
func (a *AuthServiceImpl) LoginWithGoogle(ctx context.Context, credential string) (user.User, error) {
	req := auth.GoogleLoginRequest{Credential: credential}
	if err := req.Validate(); err != nil {
		return user.User{}, apierr.Invalid(err)
	}

	var resp auth.AuthResponse
	if err := a.client.Do(ctx, http.MethodPost, "/api/auth/google", nil, req, &resp); err != nil {
		if errors.Is(err, apierr.ErrUnauthorized) {
			return user.User{}, errors.Join(auth.ErrInvalidCredentials, err)
		}
		return user.User{}, err
	}

	if err := a.session.Establish(resp); err != nil {
		return user.User{}, fmt.Errorf("failed to establish session: %w", err)
	}
	a.logger.Info("Signed in", "user_id", resp.UserID, "role", resp.Role)
	return resp.User(), nil
}

// Me implements auth.AuthService.
func (a *AuthServiceImpl) Me(ctx context.Context) (user.User, error) {
	if !a.session.IsAuthenticated() {
		return user.User{}, auth.ErrNotAuthenticated
	}

	var resp auth.AuthResponse
	if err := a.client.Do(ctx, http.MethodGet, "/api/auth/me", nil, nil, &resp); err != nil {
		if errors.Is(err, apierr.ErrUnauthorized) {
			a.session.Invalidate(ReasonTokenRejected)
		}
		return user.User{}, err
	}

	u := resp.User()
	a.session.Refresh(u)
	return u, nil
}

// Resume implements auth.AuthService. A stored session that the backend
// cannot be reached to confirm stays signed in; one it rejects is dropped.
func (a *AuthServiceImpl) Resume(ctx context.Context) (bool, error) {
	ok, err := a.session.Resume()
	if err != nil || !ok {
		return false, err
	}

	if _, err := a.Me(ctx); err != nil {
		if errors.Is(err, apierr.ErrUnauthorized) {
			return false, nil
		}
		if errors.Is(err, apierr.ErrCanceled) {
			return false, err
		}
		a.logger.Warn("Could not confirm stored session", "error", err)
	}
	return true, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout() {
	a.session.Logout()
}
