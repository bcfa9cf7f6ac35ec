// Package model holds the JSON types exchanged with the shortening backend.
package model

import "time"

// User is the profile record returned by /auth/me.
type User struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	FirstName      *string   `json:"first_name,omitempty"`
	LastName       *string   `json:"last_name,omitempty"`
	ProfilePicture *string   `json:"profile_picture,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// TokenPair is the access/refresh pair minted by login and refresh.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	UserID  string `json:"userId"`
	Message string `json:"message"`
}

type LogoutResponse struct {
	Message string `json:"message"`
}

// ShortURL is a single short link owned by the current bearer.
type ShortURL struct {
	ShortCode string     `json:"short_code"`
	LongURL   string     `json:"long_url"`
	ShortURL  string     `json:"short_url"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	Clicks    int64      `json:"clicks"`
}

type CreateURLRequest struct {
	LongURL   string     `json:"long_url"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// URLPage is one page of the /urls listing.
type URLPage struct {
	URLs  []ShortURL `json:"urls"`
	Total int        `json:"total"`
	Page  int        `json:"page"`
	Limit int        `json:"limit"`
}

// URLStats is the per-link analytics record from /analytics/:code.
type URLStats struct {
	ShortCode string     `json:"short_code"`
	LongURL   string     `json:"long_url"`
	ShortURL  string     `json:"short_url"`
	Clicks    int64      `json:"clicks"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// MostClickedURL and MostRecentURL use the field casing the backend
// returns for the aggregate endpoint, which differs from the listing.
type MostClickedURL struct {
	ShortCode string `json:"shortCode"`
	Clicks    int64  `json:"clicks"`
	LongURL   string `json:"longUrl"`
}

type MostRecentURL struct {
	ShortCode string    `json:"short_code"`
	CreatedAt time.Time `json:"created_at"`
	LongURL   string    `json:"long_url"`
}

// UserStats is the aggregate analytics record from /analytics.
type UserStats struct {
	TotalURLs       int             `json:"totalUrls"`
	TotalClicks     int64           `json:"totalClicks"`
	AvgClicksPerURL string          `json:"avgClicksPerUrl"`
	MostClickedURL  *MostClickedURL `json:"mostClickedUrl"`
	MostRecentURL   *MostRecentURL  `json:"mostRecentUrl"`
}
