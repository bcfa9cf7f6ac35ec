package oauthcb_test

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-shortlink-client/oauthcb"
)

const testState = "state-abc-123"

func startReceiver(t *testing.T) *oauthcb.Receiver {
	t.Helper()
	receiver, err := oauthcb.New(0, testState)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	receiver.Start(ctx)
	return receiver
}

func callback(t *testing.T, receiver *oauthcb.Receiver, params url.Values) *http.Response {
	t.Helper()
	resp, err := http.Get(receiver.RedirectURI() + "?" + params.Encode())
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	})
	return resp
}

func waitCtx(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestReceiver_Success(t *testing.T) {
	receiver := startReceiver(t)

	resp := callback(t, receiver, url.Values{
		"access_token":  {"A1"},
		"refresh_token": {"R1"},
		"state":         {testState},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	pair, err := receiver.Wait(waitCtx(t))
	require.NoError(t, err)
	require.Equal(t, "A1", pair.AccessToken)
	require.Equal(t, "R1", pair.RefreshToken)
}

func TestReceiver_ErrorParam(t *testing.T) {
	receiver := startReceiver(t)

	resp := callback(t, receiver, url.Values{"error": {"access_denied"}})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	_, err := receiver.Wait(waitCtx(t))
	require.Error(t, err)
	require.Contains(t, err.Error(), "access_denied")
}

func TestReceiver_MissingTokens(t *testing.T) {
	t.Run("missing refresh token", func(t *testing.T) {
		receiver := startReceiver(t)
		callback(t, receiver, url.Values{"access_token": {"A1"}})

		_, err := receiver.Wait(waitCtx(t))
		require.Error(t, err)
		require.Contains(t, err.Error(), "missing tokens")
	})

	t.Run("missing both", func(t *testing.T) {
		receiver := startReceiver(t)
		callback(t, receiver, url.Values{})

		_, err := receiver.Wait(waitCtx(t))
		require.Error(t, err)
	})
}

func TestReceiver_StateMismatch(t *testing.T) {
	receiver := startReceiver(t)

	resp := callback(t, receiver, url.Values{
		"access_token":  {"A1"},
		"refresh_token": {"R1"},
		"state":         {"some-other-state"},
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	_, err := receiver.Wait(waitCtx(t))
	require.Error(t, err)
}

func TestReceiver_WaitCancellation(t *testing.T) {
	receiver := startReceiver(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := receiver.Wait(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestNew_RequiresState(t *testing.T) {
	_, err := oauthcb.New(0, "")
	require.Error(t, err)
}
