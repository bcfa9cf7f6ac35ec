package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	goerrors "errors"
)

// fallbackMessage is shown when the backend gives no message field.
const fallbackMessage = "something went wrong, please try again"

// Error is a non-2xx outcome from the backend. Message carries the server's
// own message field verbatim when present.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
}

// IsUnauthorized reports whether err is a backend 401. After the pipeline
// has already spent its one refresh-and-retry, this is what the caller sees.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return goerrors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// errorBody is the backend's error envelope.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// errorFromResponse drains the response and builds an *Error from it.
func errorFromResponse(resp *http.Response) error {
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	apiErr := &Error{StatusCode: resp.StatusCode, Message: fallbackMessage}

	var body errorBody
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&body); err == nil {
		if body.Message != "" {
			apiErr.Message = body.Message
		} else if body.Error != "" {
			apiErr.Message = body.Error
		}
	}

	return apiErr
}
