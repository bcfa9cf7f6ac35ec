// Package bboltrepo provides a BBolt-backed session.Repo. The layout is two
// opaque string values under fixed key names in a single bucket, matching
// the localStorage layout the web client used.
package bboltrepo

import (
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/jrsteele09/go-shortlink-client/session"
)

var _ session.Repo = (*Store)(nil)

const (
	bucketName      = "session"
	accessTokenKey  = "access_token"
	refreshTokenKey = "refresh_token"
)

// Store persists the token pair in a BBolt database. Save and Delete move
// both keys inside one write transaction, so a reader never observes a
// half-updated pair.
type Store struct {
	db *bbolt.DB
}

// NewStore returns a Store backed by the given BBolt database.
func NewStore(db *bbolt.DB) *Store {
	return &Store{db: db}
}

// NewStoreFromFile opens a BBolt database at the given path and returns a
// new Store.
func NewStoreFromFile(path string, options *bbolt.Options) (*Store, error) {
	db, err := bbolt.Open(path, 0600, options)
	if err != nil {
		return nil, fmt.Errorf("opening bbolt db: %w", err)
	}
	return NewStore(db), nil
}

// Close closes the underlying BBolt database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Load() (string, string, error) {
	var access, refresh string
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		if b == nil {
			return nil
		}
		access = string(b.Get([]byte(accessTokenKey)))
		refresh = string(b.Get([]byte(refreshTokenKey)))
		return nil
	})
	if err != nil {
		return "", "", fmt.Errorf("loading session: %w", err)
	}
	return access, refresh, nil
}

func (s *Store) Save(accessToken, refreshToken string) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		if err != nil {
			return err
		}
		if err := b.Put([]byte(accessTokenKey), []byte(accessToken)); err != nil {
			return err
		}
		return b.Put([]byte(refreshTokenKey), []byte(refreshToken))
	})
	if err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

func (s *Store) Delete() error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		if b == nil {
			return nil
		}
		if err := b.Delete([]byte(accessTokenKey)); err != nil {
			return err
		}
		return b.Delete([]byte(refreshTokenKey))
	})
	if err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}
