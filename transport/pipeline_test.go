package transport_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-shortlink-client/model"
	"github.com/jrsteele09/go-shortlink-client/session"
	"github.com/jrsteele09/go-shortlink-client/session/repofake"
	"github.com/jrsteele09/go-shortlink-client/transport"
)

// fakeRefresher scripts the outcome of the dedicated refresh call.
type fakeRefresher struct {
	mu    sync.Mutex
	calls int

	pair model.TokenPair
	err  error

	gotRefreshToken string
}

func (f *fakeRefresher) Refresh(_ context.Context, refreshToken string) (model.TokenPair, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.gotRefreshToken = refreshToken
	if f.err != nil {
		return model.TokenPair{}, f.err
	}
	return f.pair, nil
}

func (f *fakeRefresher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// scriptedBackend replies with a fixed status sequence and records every
// request's bearer token and body.
type scriptedBackend struct {
	mu       sync.Mutex
	statuses []int
	bearers  []string
	bodies   []string
}

func (b *scriptedBackend) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		bearer := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if bearer == r.Header.Get("Authorization") {
			bearer = "" // no bearer prefix present
		}
		b.bearers = append(b.bearers, bearer)
		body, _ := io.ReadAll(r.Body)
		b.bodies = append(b.bodies, string(body))

		status := http.StatusOK
		if len(b.statuses) > 0 {
			status = b.statuses[0]
			b.statuses = b.statuses[1:]
		}
		b.mu.Unlock()

		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{}`))
	}
}

func (b *scriptedBackend) requestCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.bearers)
}

type fixture struct {
	store     *session.Store
	repo      *repofake.FakeSessionRepo
	refresher *fakeRefresher
	backend   *scriptedBackend
	server    *httptest.Server
	client    *http.Client

	invalidations []error
}

func setup(t *testing.T, statuses []int, refresher *fakeRefresher) *fixture {
	t.Helper()

	f := &fixture{
		repo:      repofake.NewFakeSessionRepo(),
		refresher: refresher,
		backend:   &scriptedBackend{statuses: statuses},
	}

	store, err := session.NewStore(f.repo)
	require.NoError(t, err)
	f.store = store

	f.server = httptest.NewServer(f.backend.handler())
	t.Cleanup(f.server.Close)

	pipeline, err := transport.NewPipeline(store, refresher,
		transport.WithInvalidatedFunc(func(reason error) {
			f.invalidations = append(f.invalidations, reason)
		}),
	)
	require.NoError(t, err)

	f.client = &http.Client{Transport: pipeline}
	return f
}

func (f *fixture) get(t *testing.T) *http.Response {
	t.Helper()
	resp, err := f.client.Get(f.server.URL + "/urls")
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestPipeline_BearerAttachment(t *testing.T) {
	t.Run("attaches the stored access token", func(t *testing.T) {
		f := setup(t, []int{http.StatusOK}, &fakeRefresher{})
		require.NoError(t, f.store.SetCredentials("A1", "R1", nil))

		resp := f.get(t)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Equal(t, []string{"A1"}, f.backend.bearers)
	})

	t.Run("sends unauthenticated when no token is stored", func(t *testing.T) {
		f := setup(t, []int{http.StatusOK}, &fakeRefresher{})

		resp := f.get(t)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Equal(t, []string{""}, f.backend.bearers)
		require.Zero(t, f.refresher.callCount())
	})
}

func TestPipeline_Passthrough(t *testing.T) {
	t.Run("non-auth errors never trigger refresh", func(t *testing.T) {
		f := setup(t, []int{http.StatusBadRequest}, &fakeRefresher{})
		require.NoError(t, f.store.SetCredentials("A1", "R1", nil))

		resp := f.get(t)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		require.Zero(t, f.refresher.callCount())
		require.Equal(t, "A1", f.store.AccessToken())
	})

	t.Run("network failure passes through without refresh", func(t *testing.T) {
		refresher := &fakeRefresher{}
		f := setup(t, nil, refresher)
		require.NoError(t, f.store.SetCredentials("A1", "R1", nil))
		f.server.Close()

		_, err := f.client.Get(f.server.URL + "/urls")
		require.Error(t, err)
		require.Zero(t, refresher.callCount())
		require.Equal(t, "A1", f.store.AccessToken())
		require.Empty(t, f.invalidations)
	})
}

func TestPipeline_RefreshSuccess(t *testing.T) {
	refresher := &fakeRefresher{pair: model.TokenPair{AccessToken: "A2", RefreshToken: "R2"}}
	f := setup(t, []int{http.StatusUnauthorized, http.StatusOK}, refresher)
	require.NoError(t, f.store.SetCredentials("A1", "R1", nil))

	resp := f.get(t)

	// Caller observes only the resend's outcome.
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// One refresh, driven by the old refresh token.
	require.Equal(t, 1, refresher.callCount())
	require.Equal(t, "R1", refresher.gotRefreshToken)

	// The resend carried the fresh access token.
	require.Equal(t, []string{"A1", "A2"}, f.backend.bearers)

	// The store holds the refreshed pair, durably.
	require.Equal(t, "A2", f.store.AccessToken())
	require.Equal(t, "R2", f.store.RefreshToken())
	access, refresh := f.repo.Tokens()
	require.Equal(t, "A2", access)
	require.Equal(t, "R2", refresh)

	require.Empty(t, f.invalidations)
}

func TestPipeline_SingleRetryGuarantee(t *testing.T) {
	// Backend rejects even the refreshed token: at most one refresh and one
	// resend, then the second 401 belongs to the caller.
	refresher := &fakeRefresher{pair: model.TokenPair{AccessToken: "A2", RefreshToken: "R2"}}
	f := setup(t, []int{http.StatusUnauthorized, http.StatusUnauthorized}, refresher)
	require.NoError(t, f.store.SetCredentials("A1", "R1", nil))

	resp := f.get(t)

	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Equal(t, 1, refresher.callCount())
	require.Equal(t, 2, f.backend.requestCount())
}

func TestPipeline_RefreshFailure(t *testing.T) {
	t.Run("refresh error clears the store and emits invalidation", func(t *testing.T) {
		refresher := &fakeRefresher{err: errors.New("refresh token revoked")}
		f := setup(t, []int{http.StatusUnauthorized}, refresher)
		require.NoError(t, f.store.SetCredentials("A1", "R1", nil))

		resp := f.get(t)

		// The original 401 still reaches the caller.
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		require.Equal(t, 1, f.backend.requestCount())

		require.Empty(t, f.store.AccessToken())
		require.Empty(t, f.store.RefreshToken())
		require.False(t, f.store.IsAuthenticated())
		require.Len(t, f.invalidations, 1)
	})

	t.Run("missing refresh token is irrecoverable without a refresh call", func(t *testing.T) {
		refresher := &fakeRefresher{}
		f := setup(t, []int{http.StatusUnauthorized}, refresher)

		resp := f.get(t)

		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		require.Zero(t, refresher.callCount())
		require.Len(t, f.invalidations, 1)
	})
}

func TestPipeline_BodyReplayOnRetry(t *testing.T) {
	refresher := &fakeRefresher{pair: model.TokenPair{AccessToken: "A2", RefreshToken: "R2"}}
	f := setup(t, []int{http.StatusUnauthorized, http.StatusOK}, refresher)
	require.NoError(t, f.store.SetCredentials("A1", "R1", nil))

	resp, err := f.client.Post(f.server.URL+"/shorten", "application/json",
		strings.NewReader(`{"long_url":"https://example.com"}`))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, []string{`{"long_url":"https://example.com"}`, `{"long_url":"https://example.com"}`}, f.backend.bodies)
}

func TestNewPipeline_Validation(t *testing.T) {
	repo := repofake.NewFakeSessionRepo()
	store, err := session.NewStore(repo)
	require.NoError(t, err)

	_, err = transport.NewPipeline(nil, &fakeRefresher{})
	require.Error(t, err)

	_, err = transport.NewPipeline(store, nil)
	require.Error(t, err)
}
