package oauth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func newTokenServer(t *testing.T, wantCode string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		if r.Form.Get("code") != wantCode || r.Form.Get("code_verifier") == "" {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_grant"})
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "access",
			"token_type":   "Bearer",
			"expires_in":   3600,
			"id_token":     "google-id-token",
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestService(tokenURL, redirectURL string) *GoogleServiceImpl {
	return newGoogleService(&oauth2.Config{
		ClientID:    "client-id",
		RedirectURL: redirectURL,
		Scopes:      []string{"openid", "email"},
		Endpoint: oauth2.Endpoint{
			AuthURL:   "https://accounts.example.com/o/oauth2/auth",
			TokenURL:  tokenURL,
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}, nil)
}

func TestAuthCodeURL_UsesPKCE(t *testing.T) {
	svc := newTestService("https://example.com/token", "http://127.0.0.1:8765/callback")
	consent, err := url.Parse(svc.AuthCodeURL("state-1", oauth2.GenerateVerifier()))
	require.NoError(t, err)

	q := consent.Query()
	assert.Equal(t, "state-1", q.Get("state"))
	assert.Equal(t, "S256", q.Get("code_challenge_method"))
	assert.NotEmpty(t, q.Get("code_challenge"))
	assert.Equal(t, "http://127.0.0.1:8765/callback", q.Get("redirect_uri"))
}

func TestExchange_ReturnsIDToken(t *testing.T) {
	srv := newTokenServer(t, "good-code")
	svc := newTestService(srv.URL, "http://127.0.0.1:8765/callback")

	idToken, err := svc.Exchange(context.Background(), "good-code", oauth2.GenerateVerifier())
	require.NoError(t, err)
	assert.Equal(t, "google-id-token", idToken)

	_, err = svc.Exchange(context.Background(), "bad-code", oauth2.GenerateVerifier())
	assert.Error(t, err)
}

func TestSignIn_LoopbackFlow(t *testing.T) {
	srv := newTokenServer(t, "browser-code")
	svc := newTestService(srv.URL, "http://127.0.0.1:0/callback")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	credential, err := svc.SignIn(ctx, func(consentURL string) error {
		consent, err := url.Parse(consentURL)
		if err != nil {
			return err
		}
		q := consent.Query()
		callback := q.Get("redirect_uri") + "?code=browser-code&state=" + url.QueryEscape(q.Get("state"))
		resp, err := http.Get(callback)
		if err != nil {
			return err
		}
		return resp.Body.Close()
	})
	require.NoError(t, err)
	assert.Equal(t, "google-id-token", credential)
}

func TestReceiver(t *testing.T) {
	t.Run("state mismatch", func(t *testing.T) {
		rc, err := Listen("http://127.0.0.1:0/callback", "expected")
		require.NoError(t, err)
		defer rc.Close()

		resp, err := http.Get(rc.RedirectURL() + "?code=x&state=forged")
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		_, err = rc.AwaitCode(context.Background())
		assert.ErrorIs(t, err, ErrStateMismatch)
	})

	t.Run("consent denied", func(t *testing.T) {
		rc, err := Listen("http://127.0.0.1:0/callback", "s")
		require.NoError(t, err)
		defer rc.Close()

		resp, err := http.Get(rc.RedirectURL() + "?error=access_denied&state=s")
		require.NoError(t, err)
		resp.Body.Close()

		_, err = rc.AwaitCode(context.Background())
		assert.ErrorIs(t, err, ErrConsentDenied)
	})

	t.Run("context cancelled", func(t *testing.T) {
		rc, err := Listen("http://127.0.0.1:0/callback", "s")
		require.NoError(t, err)
		defer rc.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err = rc.AwaitCode(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("rejects non-loopback", func(t *testing.T) {
		_, err := Listen("http://example.com/callback", "s")
		assert.Error(t, err)
	})
}
