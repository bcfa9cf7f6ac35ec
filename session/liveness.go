package session

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// IsLiveAt reports whether token carries an "exp" claim strictly after now.
// The token is decoded without signature verification - the backend is the
// authority on validity, this only answers "is it worth sending". An empty,
// malformed or claim-less token is simply not live; decoding never errors
// out to the caller.
func IsLiveAt(token string, now time.Time) bool {
	if strings.TrimSpace(token) == "" {
		return false
	}

	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return false
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return false
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return false
	}

	return int64(exp) > now.Unix()
}

// IsLive is IsLiveAt against the wall clock.
func IsLive(token string) bool {
	return IsLiveAt(token, time.Now())
}
