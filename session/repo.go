package session

// Repo is the durable copy of the token pair. Implementations must treat
// the two fields as a unit: Save writes both, Delete removes both, and a
// Load that finds neither returns empty strings with a nil error.
type Repo interface {
	Load() (accessToken, refreshToken string, err error)
	Save(accessToken, refreshToken string) error
	Delete() error
}
