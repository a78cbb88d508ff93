package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/smart-attendance-go/internal/gateway"
	"github.com/cmlabs-hris/smart-attendance-go/internal/pkg/apierr"
	"github.com/cmlabs-hris/smart-attendance-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/smart-attendance-go/internal/pkg/logging"
	"github.com/cmlabs-hris/smart-attendance-go/internal/pkg/tokenstore"
	"github.com/cmlabs-hris/smart-attendance-go/internal/session"
)

const testSecret = "test-secret-key-for-jwt"

type backend struct {
	token     string
	meStatus  int
	lastAuth  string
	loginCred string
}

func (b *backend) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/auth/google":
			var req auth.GoogleLoginRequest
			_ = json.NewDecoder(r.Body).Decode(&req)
			b.loginCred = req.Credential
			if req.Credential != "good-credential" {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"message":"Invalid credential"}`))
				return
			}
			_ = json.NewEncoder(w).Encode(auth.AuthResponse{
				Token: b.token, UserID: 3, Email: "admin@example.com", Name: "Admin", Role: user.RoleAdmin,
			})
		case "/api/auth/me":
			b.lastAuth = r.Header.Get("Authorization")
			if b.meStatus != 0 {
				w.WriteHeader(b.meStatus)
				return
			}
			_ = json.NewEncoder(w).Encode(auth.AuthResponse{
				UserID: 3, Email: "admin@example.com", Name: "Admin Renamed", Role: user.RoleAdmin,
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

func setup(t *testing.T, b *backend, store tokenstore.Store) (auth.AuthService, *session.Session) {
	t.Helper()
	token, _, err := jwt.NewJWTService(testSecret, "1h").GenerateAccessToken(3, "admin@example.com", user.RoleAdmin)
	require.NoError(t, err)
	b.token = token

	srv := httptest.NewServer(b.handler())
	t.Cleanup(srv.Close)

	sess := session.New(store, logging.Discard())
	client := gateway.NewClient(gateway.Options{BaseURL: srv.URL, Tokens: sess, Logger: logging.Discard()})
	return NewAuthService(client, sess, logging.Discard()), sess
}

func TestLoginWithGoogle(t *testing.T) {
	b := &backend{}
	svc, sess := setup(t, b, tokenstore.NewMemory())

	u, err := svc.LoginWithGoogle(context.Background(), "good-credential")
	require.NoError(t, err)
	assert.Equal(t, int64(3), u.ID)
	assert.Equal(t, user.RoleAdmin, u.Role)
	assert.True(t, sess.IsAuthenticated())
	assert.Equal(t, b.token, sess.Token())
	assert.Equal(t, "good-credential", b.loginCred)
}

func TestLoginWithGoogle_Rejected(t *testing.T) {
	b := &backend{}
	svc, sess := setup(t, b, tokenstore.NewMemory())

	_, err := svc.LoginWithGoogle(context.Background(), "forged")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	assert.False(t, sess.IsAuthenticated())
}

func TestLoginWithGoogle_EmptyCredential(t *testing.T) {
	b := &backend{}
	svc, _ := setup(t, b, tokenstore.NewMemory())

	_, err := svc.LoginWithGoogle(context.Background(), "")
	assert.ErrorIs(t, err, apierr.ErrValidation)
	assert.Empty(t, b.loginCred)
}

func TestMe(t *testing.T) {
	t.Run("not signed in", func(t *testing.T) {
		svc, _ := setup(t, &backend{}, tokenstore.NewMemory())
		_, err := svc.Me(context.Background())
		assert.ErrorIs(t, err, auth.ErrNotAuthenticated)
	})

	t.Run("refreshes profile", func(t *testing.T) {
		b := &backend{}
		svc, sess := setup(t, b, tokenstore.NewMemory())
		_, err := svc.LoginWithGoogle(context.Background(), "good-credential")
		require.NoError(t, err)

		u, err := svc.Me(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "Admin Renamed", u.Name)
		assert.Equal(t, "Bearer "+b.token, b.lastAuth)

		current, ok := sess.User()
		require.True(t, ok)
		assert.Equal(t, "Admin Renamed", current.Name)
	})

	t.Run("rejected token ends session", func(t *testing.T) {
		b := &backend{}
		svc, sess := setup(t, b, tokenstore.NewMemory())
		_, err := svc.LoginWithGoogle(context.Background(), "good-credential")
		require.NoError(t, err)

		b.meStatus = http.StatusUnauthorized
		_, err = svc.Me(context.Background())
		assert.ErrorIs(t, err, apierr.ErrUnauthorized)
		assert.False(t, sess.IsAuthenticated())
	})
}

func TestResume(t *testing.T) {
	t.Run("nothing stored", func(t *testing.T) {
		svc, _ := setup(t, &backend{}, tokenstore.NewMemory())
		ok, err := svc.Resume(context.Background())
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("stored token confirmed", func(t *testing.T) {
		store := tokenstore.NewMemory()
		b := &backend{}
		svc, _ := setup(t, b, store)
		_, err := svc.LoginWithGoogle(context.Background(), "good-credential")
		require.NoError(t, err)

		// a fresh launch sharing the same store
		sess := session.New(store, logging.Discard())
		srv := httptest.NewServer(b.handler())
		defer srv.Close()
		client := gateway.NewClient(gateway.Options{BaseURL: srv.URL, Tokens: sess, Logger: logging.Discard()})
		relaunched := NewAuthService(client, sess, logging.Discard())

		ok, err := relaunched.Resume(context.Background())
		require.NoError(t, err)
		assert.True(t, ok)
		assert.True(t, sess.IsAuthenticated())
		assert.Equal(t, "Bearer "+b.token, b.lastAuth)
	})

	t.Run("stored token rejected", func(t *testing.T) {
		store := tokenstore.NewMemory()
		b := &backend{}
		svc, sess := setup(t, b, store)
		_, err := svc.LoginWithGoogle(context.Background(), "good-credential")
		require.NoError(t, err)
		sess.Invalidate("relaunch")
		require.NoError(t, store.Save(tokenstore.Record{Token: b.token, User: user.User{ID: 3, Role: user.RoleAdmin}}))

		b.meStatus = http.StatusUnauthorized
		ok, err := svc.Resume(context.Background())
		require.NoError(t, err)
		assert.False(t, ok)
		assert.False(t, sess.IsAuthenticated())

		_, err = store.Load()
		assert.ErrorIs(t, err, tokenstore.ErrEmpty)
	})

	t.Run("backend unreachable keeps session", func(t *testing.T) {
		store := tokenstore.NewMemory()
		b := &backend{}
		svc, sess := setup(t, b, store)
		_, err := svc.LoginWithGoogle(context.Background(), "good-credential")
		require.NoError(t, err)
		sess.Invalidate("relaunch")
		require.NoError(t, store.Save(tokenstore.Record{Token: b.token, User: user.User{ID: 3, Role: user.RoleAdmin}}))

		b.meStatus = http.StatusBadGateway
		ok, err := svc.Resume(context.Background())
		require.NoError(t, err)
		assert.True(t, ok)
		assert.True(t, sess.IsAuthenticated())
	})
}
