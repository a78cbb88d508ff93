package oauth

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
)

type callbackResult struct {
	code string
	err  error
}

// Receiver is a one-shot loopback HTTP server that captures the
// authorization code from the OAuth redirect.
type Receiver struct {
	server   *http.Server
	listener net.Listener
	redirect url.URL
	state    string
	results  chan callbackResult
}

// Listen starts a receiver for redirectURL, which must point at a loopback
// host. Port 0 picks a free port; see RedirectURL.
func Listen(redirectURL, state string) (*Receiver, error) {
	u, err := url.Parse(redirectURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redirect url: %w", err)
	}
	host := u.Hostname()
	if ip := net.ParseIP(host); host != "localhost" && (ip == nil || !ip.IsLoopback()) {
		return nil, fmt.Errorf("redirect url %q is not a loopback address", redirectURL)
	}
	path := u.Path
	if path == "" {
		path = "/"
	}

	listener, err := net.Listen("tcp", u.Host)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", u.Host, err)
	}

	rc := &Receiver{
		listener: listener,
		redirect: url.URL{Scheme: "http", Host: listener.Addr().String(), Path: path},
		state:    state,
		results:  make(chan callbackResult, 1),
	}
	if host == "localhost" {
		_, port, _ := net.SplitHostPort(listener.Addr().String())
		rc.redirect.Host = net.JoinHostPort("localhost", port)
	}

	r := chi.NewRouter()
	r.Get(path, rc.callback)
	rc.server = &http.Server{Handler: r, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		_ = rc.server.Serve(listener)
	}()

	return rc, nil
}

// RedirectURL is the callback URL actually being served.
func (rc *Receiver) RedirectURL() string {
	return rc.redirect.String()
}

func (rc *Receiver) callback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var result callbackResult
	switch {
	case q.Get("state") != rc.state:
		result.err = ErrStateMismatch
	case q.Get("error") != "":
		result.err = fmt.Errorf("%w: %s", ErrConsentDenied, q.Get("error"))
	case q.Get("code") == "":
		result.err = errors.New("callback carries no authorization code")
	default:
		result.code = q.Get("code")
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if result.err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("Sign-in failed. You can close this window.\n"))
	} else {
		_, _ = w.Write([]byte("Signed in. You can close this window.\n"))
	}

	select {
	case rc.results <- result:
	default:
	}
}

// AwaitCode blocks until the browser is redirected back or ctx ends.
func (rc *Receiver) AwaitCode(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-rc.results:
		return res.code, res.err
	}
}

func (rc *Receiver) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return rc.server.Shutdown(ctx)
}
