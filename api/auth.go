package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/jrsteele09/go-shortlink-client/model"
)

// Login exchanges a username and password for a token pair. Writing the
// pair into the session store is the caller's job.
func (c *Client) Login(ctx context.Context, username, password string) (model.TokenPair, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/auth/login", model.LoginRequest{
		Username: username,
		Password: password,
	})
	if err != nil {
		return model.TokenPair{}, err
	}

	var pair model.TokenPair
	if err := c.do(req, &pair); err != nil {
		return model.TokenPair{}, err
	}
	return pair, nil
}

// Register creates a new account. The backend does not sign the account in;
// callers follow up with Login.
func (c *Client) Register(ctx context.Context, registration model.RegisterRequest) (model.RegisterResponse, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/auth/register", registration)
	if err != nil {
		return model.RegisterResponse{}, err
	}

	var resp model.RegisterResponse
	if err := c.do(req, &resp); err != nil {
		return model.RegisterResponse{}, err
	}
	return resp, nil
}

// Logout invalidates the server-side session. Best effort only - local
// state is cleared by the caller whatever this returns.
func (c *Client) Logout(ctx context.Context) error {
	req, err := c.newRequest(ctx, http.MethodPost, "/auth/logout", nil)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

// Me fetches the profile of the current bearer.
func (c *Client) Me(ctx context.Context) (*model.User, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/auth/me", nil)
	if err != nil {
		return nil, err
	}

	var user model.User
	if err := c.do(req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GoogleAuthURL is the address a browser must visit to start the
// backend-mediated Google sign-in. Completion arrives as a redirect to
// redirectURI carrying access_token/refresh_token (or error) query
// parameters - see the oauthcb package.
func (c *Client) GoogleAuthURL(redirectURI, state string) string {
	q := url.Values{}
	if redirectURI != "" {
		q.Set("redirect_uri", redirectURI)
	}
	if state != "" {
		q.Set("state", state)
	}
	authURL := c.baseURL + "/auth/google"
	if encoded := q.Encode(); encoded != "" {
		authURL += "?" + encoded
	}
	return authURL
}
