package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/pkg/errors"

	"github.com/jrsteele09/go-shortlink-client/model"
)

// URLStats returns per-link statistics for one short code.
func (c *Client) URLStats(ctx context.Context, shortCode string) (*model.URLStats, error) {
	if shortCode == "" {
		return nil, errors.New("[Client.URLStats] short code is required")
	}

	req, err := c.newRequest(ctx, http.MethodGet, "/analytics/"+url.PathEscape(shortCode), nil)
	if err != nil {
		return nil, err
	}

	var stats model.URLStats
	if err := c.do(req, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// UserStats returns aggregate statistics across all links owned by the
// current bearer.
func (c *Client) UserStats(ctx context.Context) (*model.UserStats, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/analytics", nil)
	if err != nil {
		return nil, err
	}

	var stats model.UserStats
	if err := c.do(req, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// PercentChange computes the stat-card delta between a value and its
// previous period. A zero previous value has no meaningful delta, so ok is
// false and the caller shows nothing.
func PercentChange(value, previous float64) (change float64, ok bool) {
	if previous == 0 {
		return 0, false
	}
	return (value - previous) / previous * 100, true
}
