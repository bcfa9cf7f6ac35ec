// Package transport wraps outbound HTTP calls with bearer attachment and
// a one-shot silent refresh on authorization failure.
package transport

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/jrsteele09/go-shortlink-client/model"
)

// CredentialStore is the slice of the session store the pipeline needs.
type CredentialStore interface {
	AccessToken() string
	RefreshToken() string
	SetCredentials(accessToken, refreshToken string, user *model.User) error
	Clear() error
}

// Refresher exchanges a refresh token for a new pair. Implementations must
// not route their own call through a Pipeline - a refresh that triggered
// another refresh on 401 would recurse without bound.
type Refresher interface {
	Refresh(ctx context.Context, refreshToken string) (model.TokenPair, error)
}

// InvalidatedFunc is called after the pipeline has cleared the store
// because a session could not be recovered. Navigation (or, here, telling
// the user to sign in again) belongs to whoever registers the hook, not to
// the transport.
type InvalidatedFunc func(reason error)

// Pipeline is an http.RoundTripper that attaches the current access token
// as a bearer credential, and on a 401 response performs a single silent
// refresh and resends the original request exactly once. Anything else -
// success, non-auth errors, network failures - passes through untouched.
type Pipeline struct {
	base      http.RoundTripper
	store     CredentialStore
	refresher Refresher

	onInvalidated InvalidatedFunc
	logger        zerolog.Logger
}

var _ http.RoundTripper = (*Pipeline)(nil)

// PipelineOption modifies a Pipeline during construction.
type PipelineOption func(*Pipeline)

// WithBase sets the underlying transport. Defaults to http.DefaultTransport.
func WithBase(base http.RoundTripper) PipelineOption {
	return func(p *Pipeline) {
		p.base = base
	}
}

// WithLogger sets the pipeline's logger. Defaults to a no-op logger.
func WithLogger(logger zerolog.Logger) PipelineOption {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithInvalidatedFunc registers the hook fired when the session is cleared
// after an irrecoverable refresh failure.
func WithInvalidatedFunc(fn InvalidatedFunc) PipelineOption {
	return func(p *Pipeline) {
		p.onInvalidated = fn
	}
}

// NewPipeline builds a Pipeline over the given store and refresher.
func NewPipeline(store CredentialStore, refresher Refresher, options ...PipelineOption) (*Pipeline, error) {
	if store == nil {
		return nil, errors.New("[NewPipeline] store is required")
	}
	if refresher == nil {
		return nil, errors.New("[NewPipeline] refresher is required")
	}

	p := &Pipeline{
		base:      http.DefaultTransport,
		store:     store,
		refresher: refresher,
		logger:    zerolog.Nop(),
	}

	for _, opt := range options {
		opt(p)
	}

	return p, nil
}

// RoundTrip implements http.RoundTripper.
func (p *Pipeline) RoundTrip(req *http.Request) (*http.Response, error) {
	requestID := uuid.New().String()

	// A request whose body cannot be replayed cannot be resent after a
	// refresh, so buffer it up front when the stdlib did not already
	// provide GetBody.
	if req.Body != nil && req.GetBody == nil {
		buf, err := io.ReadAll(req.Body)
		_ = req.Body.Close()
		if err != nil {
			return nil, errors.Wrap(err, "[Pipeline.RoundTrip] buffering request body")
		}
		req = req.Clone(req.Context())
		req.Body = io.NopCloser(bytes.NewReader(buf))
		req.GetBody = func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(buf)), nil
		}
	}

	resp, err := p.send(req, p.store.AccessToken())
	if err != nil {
		// Network-level failure: no response to inspect, nothing to refresh.
		return nil, err
	}

	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}

	p.logger.Debug().
		Str("request_id", requestID).
		Str("url", req.URL.Path).
		Msg("authorization failure, attempting silent refresh")

	pair, refreshErr := p.refresh(req.Context())
	if refreshErr != nil {
		p.logger.Warn().
			Str("request_id", requestID).
			Err(refreshErr).
			Msg("session irrecoverable")
		p.invalidate(refreshErr)
		// The original 401 still belongs to the caller.
		return resp, nil
	}

	// The refreshed pair replaces the stored one before the single resend.
	if err := p.store.SetCredentials(pair.AccessToken, pair.RefreshToken, nil); err != nil {
		drainAndClose(resp)
		return nil, errors.Wrap(err, "[Pipeline.RoundTrip] storing refreshed credentials")
	}

	drainAndClose(resp)

	retried, err := p.resend(req, pair.AccessToken)
	if err != nil {
		return nil, err
	}
	return retried, nil
}

func (p *Pipeline) send(req *http.Request, accessToken string) (*http.Response, error) {
	// Per RoundTripper contract the caller's request is not mutated.
	out := req.Clone(req.Context())
	if accessToken != "" {
		out.Header.Set("Authorization", "Bearer "+accessToken)
	}
	return p.base.RoundTrip(out)
}

func (p *Pipeline) resend(req *http.Request, accessToken string) (*http.Response, error) {
	out := req.Clone(req.Context())
	out.Header.Set("Authorization", "Bearer "+accessToken)
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, errors.Wrap(err, "[Pipeline.resend] replaying request body")
		}
		out.Body = body
	}
	return p.base.RoundTrip(out)
}

func (p *Pipeline) refresh(ctx context.Context) (model.TokenPair, error) {
	refreshToken := p.store.RefreshToken()
	if refreshToken == "" {
		return model.TokenPair{}, errors.New("[Pipeline.refresh] no refresh token")
	}
	return p.refresher.Refresh(ctx, refreshToken)
}

func (p *Pipeline) invalidate(reason error) {
	if err := p.store.Clear(); err != nil {
		p.logger.Error().Err(err).Msg("clearing session store")
	}
	if p.onInvalidated != nil {
		p.onInvalidated(reason)
	}
}

func drainAndClose(resp *http.Response) {
	if resp == nil || resp.Body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
