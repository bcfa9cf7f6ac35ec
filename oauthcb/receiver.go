// Package oauthcb receives the backend's OAuth redirect. The backend
// finishes the Google sign-in itself and hands the resulting pair back by
// redirecting the browser to this process with access_token, refresh_token
// or error as query parameters.
package oauthcb

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/jrsteele09/go-shortlink-client/model"
)

// CallbackPath is the route the backend redirects to.
const CallbackPath = "/callback"

const shutdownTimeout = 3 * time.Second

// Result is one completed callback. Exactly one of Pair/Err is meaningful.
type Result struct {
	Pair model.TokenPair
	Err  error
}

// Receiver is a short-lived local HTTP server that waits for a single
// OAuth redirect, validates it, and delivers the outcome on a channel.
type Receiver struct {
	state    string
	server   *http.Server
	listener net.Listener
	results  chan Result
	logger   zerolog.Logger
}

// ReceiverOption modifies a Receiver during construction.
type ReceiverOption func(*Receiver)

// WithLogger sets the receiver's logger. Defaults to a no-op logger.
func WithLogger(logger zerolog.Logger) ReceiverOption {
	return func(r *Receiver) {
		r.logger = logger
	}
}

// New binds a Receiver to 127.0.0.1:port (port 0 picks a free one). state
// is echoed by the backend and checked on arrival.
func New(port int, state string, options ...ReceiverOption) (*Receiver, error) {
	if state == "" {
		return nil, errors.New("[oauthcb.New] state is required")
	}

	listener, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", port))
	if err != nil {
		return nil, errors.Wrap(err, "[oauthcb.New] binding callback listener")
	}

	r := &Receiver{
		state:    state,
		listener: listener,
		results:  make(chan Result, 1),
		logger:   zerolog.Nop(),
	}

	for _, opt := range options {
		opt(r)
	}

	router := chi.NewRouter()
	router.Get(CallbackPath, r.handleCallback)
	r.server = &http.Server{Handler: router}

	return r, nil
}

// RedirectURI is the address the backend must redirect to.
func (r *Receiver) RedirectURI() string {
	return fmt.Sprintf("http://%s%s", r.listener.Addr().String(), CallbackPath)
}

// Start serves until the first callback arrives or ctx is cancelled.
func (r *Receiver) Start(ctx context.Context) {
	go func() {
		if err := r.server.Serve(r.listener); err != nil && err != http.ErrServerClosed {
			r.deliver(Result{Err: errors.Wrap(err, "[Receiver.Start] callback server")})
		}
	}()
	go func() {
		<-ctx.Done()
		r.shutdown()
	}()
}

// Wait blocks until a callback outcome or ctx cancellation.
func (r *Receiver) Wait(ctx context.Context) (model.TokenPair, error) {
	select {
	case res := <-r.results:
		return res.Pair, res.Err
	case <-ctx.Done():
		return model.TokenPair{}, ctx.Err()
	}
}

func (r *Receiver) handleCallback(w http.ResponseWriter, req *http.Request) {
	q := req.URL.Query()

	if state := q.Get("state"); state != "" && state != r.state {
		r.fail(w, "state mismatch, please retry the sign-in")
		return
	}

	if errParam := q.Get("error"); errParam != "" {
		r.fail(w, errParam)
		return
	}

	accessToken := q.Get("access_token")
	refreshToken := q.Get("refresh_token")
	if accessToken == "" || refreshToken == "" {
		r.fail(w, "authentication failed: missing tokens in the callback URL")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, "<html><body><h2>Authentication successful</h2><p>You can close this tab and return to the terminal.</p></body></html>")

	r.deliver(Result{Pair: model.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}})
	go r.shutdown()
}

func (r *Receiver) fail(w http.ResponseWriter, message string) {
	r.logger.Warn().Str("reason", message).Msg("oauth callback failed")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusBadRequest)
	fmt.Fprintf(w, "<html><body><h2>Authentication failed</h2><p>%s</p></body></html>", message)
	r.deliver(Result{Err: errors.New(message)})
	go r.shutdown()
}

func (r *Receiver) deliver(res Result) {
	select {
	case r.results <- res:
	default:
	}
}

func (r *Receiver) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	_ = r.server.Shutdown(ctx)
}
