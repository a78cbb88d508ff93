// Package app wires configuration, session, transport and screens into one
// client.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/smart-attendance-go/internal/config"
	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/smart-attendance-go/internal/gateway"
	"github.com/cmlabs-hris/smart-attendance-go/internal/pkg/oauth"
	"github.com/cmlabs-hris/smart-attendance-go/internal/pkg/tokenstore"
	serviceAuth "github.com/cmlabs-hris/smart-attendance-go/internal/service/auth"
	"github.com/cmlabs-hris/smart-attendance-go/internal/session"
)

// ErrGoogleSignInDisabled is returned when no OAuth client is configured.
var ErrGoogleSignInDisabled = errors.New("google sign-in is not configured")

type App struct {
	Config  *config.Config
	Logger  *slog.Logger
	Session *session.Session
	Client  *gateway.Client
	Auth    auth.AuthService
	Google  oauth.GoogleService // nil when sign-in is not configured
}

func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var store tokenstore.Store = tokenstore.NewMemory()
	if cfg.TokenStore.Path != "" {
		file, err := tokenstore.NewFile(cfg.TokenStore.Path, cfg.TokenStore.Secret)
		if err != nil {
			return nil, fmt.Errorf("failed to open token store: %w", err)
		}
		store = file
	}

	sess := session.New(store, logger)
	client := gateway.NewClient(gateway.Options{
		BaseURL:    cfg.API.BaseURL,
		Timeout:    cfg.API.Timeout,
		RetryCount: cfg.API.RetryCount,
		Tokens:     sess,
		Logger:     logger,
	})

	a := &App{
		Config:  cfg,
		Logger:  logger,
		Session: sess,
		Client:  client,
		Auth:    serviceAuth.NewAuthService(client, sess, logger),
	}
	if cfg.GoogleSignInEnabled() {
		g := cfg.OAuth2Google
		a.Google = oauth.NewGoogleService(g.ClientID, g.ClientSecret, g.RedirectURL, g.Scopes, logger)
	}
	return a, nil
}

// SignInWithGoogle runs the browser consent flow and signs in with the
// resulting credential. open receives the consent URL.
func (a *App) SignInWithGoogle(ctx context.Context, open func(consentURL string) error) (user.User, error) {
	if a.Google == nil {
		return user.User{}, ErrGoogleSignInDisabled
	}
	credential, err := a.Google.SignIn(ctx, open)
	if err != nil {
		return user.User{}, err
	}
	return a.Auth.LoginWithGoogle(ctx, credential)
}

// Workspace opens every screen for the signed-in user and starts polling
// under ctx when a poll interval is configured. A negative PollInterval
// turns polling off.
func (a *App) Workspace(ctx context.Context, opts WorkspaceOptions) *Workspace {
	if opts.PageSize == 0 {
		opts.PageSize = a.Config.API.PageSize
	}
	if opts.PollInterval == 0 {
		opts.PollInterval = a.Config.API.PollInterval
	}
	if opts.Logger == nil {
		opts.Logger = a.Logger
	}
	ws := NewWorkspace(a.Client, a.Session, opts)
	ws.StartPolling(ctx)
	return ws
}
