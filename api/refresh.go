package api

import (
	"context"
	"net/http"

	"github.com/pkg/errors"

	"github.com/jrsteele09/go-shortlink-client/model"
)

// RefreshClient exchanges a refresh token, sent as the bearer credential,
// for a new access/refresh pair. It deliberately uses a bare http.Client:
// the refresh call must never pass through the pipeline it serves, or a
// 401 on refresh would trigger another refresh without end.
type RefreshClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewRefreshClient builds a RefreshClient for the backend at baseURL.
// A nil httpClient falls back to http.DefaultClient.
func NewRefreshClient(baseURL string, httpClient *http.Client) (*RefreshClient, error) {
	if baseURL == "" {
		return nil, errors.New("[NewRefreshClient] baseURL is required")
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &RefreshClient{baseURL: baseURL, httpClient: httpClient}, nil
}

// Refresh implements transport.Refresher. Any failure - network, non-2xx
// (a 401 here means the refresh token itself is dead), or a malformed
// response - is surfaced to the pipeline, which treats all of them as
// irrecoverable.
func (rc *RefreshClient) Refresh(ctx context.Context, refreshToken string) (model.TokenPair, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rc.baseURL+"/auth/refresh", nil)
	if err != nil {
		return model.TokenPair{}, errors.Wrap(err, "[RefreshClient.Refresh] building request")
	}
	req.Header.Set("Authorization", "Bearer "+refreshToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := rc.httpClient.Do(req)
	if err != nil {
		return model.TokenPair{}, errors.Wrap(err, "[RefreshClient.Refresh] request failed")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return model.TokenPair{}, errorFromResponse(resp)
	}

	defer func() { _ = resp.Body.Close() }()

	var pair model.TokenPair
	if err := decodeJSON(resp, &pair); err != nil {
		return model.TokenPair{}, errors.Wrap(err, "[RefreshClient.Refresh] decoding response")
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		return model.TokenPair{}, errors.New("[RefreshClient.Refresh] backend returned an incomplete token pair")
	}
	return pair, nil
}
