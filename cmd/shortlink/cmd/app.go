package cmd

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/jrsteele09/go-shortlink-client/api"
	"github.com/jrsteele09/go-shortlink-client/internal/config"
	"github.com/jrsteele09/go-shortlink-client/session"
	"github.com/jrsteele09/go-shortlink-client/session/bboltrepo"
	"github.com/jrsteele09/go-shortlink-client/transport"
)

const requestTimeout = 30 * time.Second

// app wires the credential store, the request pipeline and the API client
// together for every command. One app lives for one command invocation.
type app struct {
	cfg    config.Config
	logger zerolog.Logger
	repo   *bboltrepo.Store
	store  *session.Store
	client *api.Client
}

func newApp() (*app, error) {
	cfg := config.New()

	baseURL := apiURL
	if baseURL == "" {
		baseURL = cfg.GetAPIURL()
	}

	folder := dataDir
	if folder == "" {
		folder = cfg.GetDataFolder()
	}
	if err := os.MkdirAll(folder, 0o700); err != nil {
		return nil, errors.Wrap(err, "creating data directory")
	}

	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()

	repo, err := bboltrepo.NewStoreFromFile(filepath.Join(folder, "session.db"), nil)
	if err != nil {
		return nil, errors.Wrap(err, "opening session storage")
	}

	store, err := session.NewStore(repo)
	if err != nil {
		_ = repo.Close()
		return nil, errors.Wrap(err, "seeding session store")
	}

	refresher, err := api.NewRefreshClient(baseURL, nil)
	if err != nil {
		_ = repo.Close()
		return nil, err
	}

	pipeline, err := transport.NewPipeline(store, refresher,
		transport.WithLogger(logger),
		transport.WithInvalidatedFunc(func(reason error) {
			fmt.Fprintln(os.Stderr, "Your session has expired. Run `shortlink login` to sign in again.")
		}),
	)
	if err != nil {
		_ = repo.Close()
		return nil, err
	}

	client, err := api.New(baseURL,
		api.WithHTTPClient(&http.Client{Transport: pipeline, Timeout: requestTimeout}),
		api.WithLogger(logger),
	)
	if err != nil {
		_ = repo.Close()
		return nil, err
	}

	return &app{
		cfg:    cfg,
		logger: logger,
		repo:   repo,
		store:  store,
		client: client,
	}, nil
}

func (a *app) close() {
	if err := a.repo.Close(); err != nil {
		a.logger.Error().Err(err).Msg("closing session storage")
	}
}

// requireSession is the command-line analogue of a session-gated view: a
// synchronous read of the derived flag, no network call, and a sign-in
// hint instead of a redirect when it is false.
func (a *app) requireSession() error {
	if !a.store.IsAuthenticated() {
		return errors.New("not signed in (or session expired): run `shortlink login` first")
	}
	return nil
}
