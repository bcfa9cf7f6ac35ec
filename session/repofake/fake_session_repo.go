// Package repofake provides an in-memory session.Repo for tests.
package repofake

import "sync"

// FakeSessionRepo keeps the token pair in memory and counts mutations.
type FakeSessionRepo struct {
	mu           sync.Mutex
	accessToken  string
	refreshToken string

	SaveCalls   int
	DeleteCalls int

	SaveErr   error
	DeleteErr error
	LoadErr   error
}

func NewFakeSessionRepo() *FakeSessionRepo {
	return &FakeSessionRepo{}
}

// Seed sets the stored pair directly, bypassing call counters.
func (f *FakeSessionRepo) Seed(accessToken, refreshToken string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.accessToken = accessToken
	f.refreshToken = refreshToken
}

func (f *FakeSessionRepo) Load() (string, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.LoadErr != nil {
		return "", "", f.LoadErr
	}
	return f.accessToken, f.refreshToken, nil
}

func (f *FakeSessionRepo) Save(accessToken, refreshToken string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.SaveCalls++
	if f.SaveErr != nil {
		return f.SaveErr
	}
	f.accessToken = accessToken
	f.refreshToken = refreshToken
	return nil
}

func (f *FakeSessionRepo) Delete() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.DeleteCalls++
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	f.accessToken = ""
	f.refreshToken = ""
	return nil
}

// Tokens returns the currently stored pair.
func (f *FakeSessionRepo) Tokens() (string, string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.accessToken, f.refreshToken
}
