package oauth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

var (
	ErrStateMismatch = errors.New("oauth state mismatch")
	ErrNoIDToken     = errors.New("token response carries no id_token")
	ErrConsentDenied = errors.New("sign-in was cancelled or denied")
)

type GoogleService interface {
	// GenerateState generates a random state string for OAuth2 flows.
	GenerateState() string
	// AuthCodeURL builds the consent URL for state with a PKCE challenge.
	AuthCodeURL(state, verifier string) string
	// Exchange trades an authorization code for the Google ID token the
	// backend accepts as a credential.
	Exchange(ctx context.Context, code, verifier string) (string, error)
	// SignIn runs the desktop flow: it listens on the loopback redirect URL,
	// hands the consent URL to open and blocks until the browser returns.
	SignIn(ctx context.Context, open func(consentURL string) error) (string, error)
}

type GoogleServiceImpl struct {
	config *oauth2.Config
	logger *slog.Logger
}

func NewGoogleService(clientID string, clientSecret string, redirectURL string, scopes []string, logger *slog.Logger) GoogleService {
	if len(scopes) == 0 {
		scopes = []string{"openid", "email", "profile"}
	}
	config := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Scopes:       scopes,
		Endpoint:     google.Endpoint,
	}
	return newGoogleService(config, logger)
}

func newGoogleService(config *oauth2.Config, logger *slog.Logger) *GoogleServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &GoogleServiceImpl{config: config, logger: logger.With(slog.String("component", "oauth"))}
}

// GenerateState generates a random state string for OAuth2 flows.
func (g *GoogleServiceImpl) GenerateState() string {
	b := make([]byte, 32)
	_, err := rand.Read(b)
	if err != nil {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString(b)
}

func (g *GoogleServiceImpl) AuthCodeURL(state, verifier string) string {
	return authCodeURL(g.config, state, verifier)
}

func (g *GoogleServiceImpl) Exchange(ctx context.Context, code, verifier string) (string, error) {
	return exchange(ctx, g.config, code, verifier)
}

func (g *GoogleServiceImpl) SignIn(ctx context.Context, open func(consentURL string) error) (string, error) {
	state := g.GenerateState()
	if state == "" {
		return "", errors.New("generate oauth state")
	}
	verifier := oauth2.GenerateVerifier()

	receiver, err := Listen(g.config.RedirectURL, state)
	if err != nil {
		return "", err
	}
	defer receiver.Close()

	// The listener may have picked its own port
	config := *g.config
	config.RedirectURL = receiver.RedirectURL()

	if err := open(authCodeURL(&config, state, verifier)); err != nil {
		return "", fmt.Errorf("open consent page: %w", err)
	}
	g.logger.Info("Waiting for Google sign-in", "redirect_url", config.RedirectURL)

	code, err := receiver.AwaitCode(ctx)
	if err != nil {
		return "", err
	}
	return exchange(ctx, &config, code, verifier)
}

func authCodeURL(config *oauth2.Config, state, verifier string) string {
	return config.AuthCodeURL(state, oauth2.AccessTypeOnline, oauth2.S256ChallengeOption(verifier))
}

func exchange(ctx context.Context, config *oauth2.Config, code, verifier string) (string, error) {
	token, err := config.Exchange(ctx, code, oauth2.VerifierOption(verifier))
	if err != nil {
		return "", err
	}
	idToken, ok := token.Extra("id_token").(string)
	if !ok || idToken == "" {
		return "", ErrNoIDToken
	}
	return idToken, nil
}
