package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/pkg/errors"

	"github.com/jrsteele09/go-shortlink-client/model"
)

// Shorten creates a short link for a long URL, with an optional expiry.
func (c *Client) Shorten(ctx context.Context, create model.CreateURLRequest) (*model.ShortURL, error) {
	if create.LongURL == "" {
		return nil, errors.New("[Client.Shorten] long URL is required")
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/shorten", create)
	if err != nil {
		return nil, err
	}

	var short model.ShortURL
	if err := c.do(req, &short); err != nil {
		return nil, err
	}
	return &short, nil
}

// ListURLs returns every short link owned by the current bearer.
func (c *Client) ListURLs(ctx context.Context) ([]model.ShortURL, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/urls", nil)
	if err != nil {
		return nil, err
	}

	var urls []model.ShortURL
	if err := c.do(req, &urls); err != nil {
		return nil, err
	}
	return urls, nil
}

// ListURLsPage returns one page of the listing.
func (c *Client) ListURLsPage(ctx context.Context, page, limit int) (*model.URLPage, error) {
	if page < 1 {
		return nil, errors.New("[Client.ListURLsPage] page starts at 1")
	}
	if limit < 1 {
		return nil, errors.New("[Client.ListURLsPage] limit must be positive")
	}

	q := url.Values{}
	q.Set("page", fmt.Sprintf("%d", page))
	q.Set("limit", fmt.Sprintf("%d", limit))

	req, err := c.newRequest(ctx, http.MethodGet, "/urls?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	var result model.URLPage
	if err := c.do(req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteURL removes a short link by its code.
func (c *Client) DeleteURL(ctx context.Context, shortCode string) error {
	if shortCode == "" {
		return errors.New("[Client.DeleteURL] short code is required")
	}

	req, err := c.newRequest(ctx, http.MethodDelete, "/urls/"+url.PathEscape(shortCode), nil)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}
