package garmin

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	go_json "github.com/goccy/go-json"
)

// The remote-error family. Every error the Garmin Connect service itself can
// produce is one of these four types; anything else escaping a client call is
// a bug in this process and must not be downgraded by callers.

// AuthenticationError means the service rejected the session or credentials.
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string {
	return "garmin: authentication failed: " + e.Message
}

func (e *AuthenticationError) remote() {}

// TooManyRequestsError means the service throttled the caller.
type TooManyRequestsError struct {
	Message    string
	RetryAfter time.Duration
}

func (e *TooManyRequestsError) Error() string {
	return "garmin: too many requests: " + e.Message
}

func (e *TooManyRequestsError) remote() {}

// ConnectionError means the service could not be reached at all.
type ConnectionError struct {
	Cause error
}

func (e *ConnectionError) Error() string {
	return "garmin: connection error: " + e.Cause.Error()
}

func (e *ConnectionError) Unwrap() error { return e.Cause }

func (e *ConnectionError) remote() {}

// APIError is any other error response from the service.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("garmin api: %d %s", e.StatusCode, e.Message)
}

func (e *APIError) remote() {}

type remoteError interface {
	error
	remote()
}

// IsRemote reports whether err belongs to the remote-error family. Callers
// that degrade failures to empty data must only do so for remote errors.
func IsRemote(err error) bool {
	var re remoteError
	return errors.As(err, &re)
}

func parseAPIError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	msg := resp.Status
	var errResp struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := go_json.Unmarshal(body, &errResp); err == nil {
		if errResp.Message != "" {
			msg = errResp.Message
		} else if errResp.Error != "" {
			msg = errResp.Error
		}
	} else if len(body) > 0 {
		msg = string(body)
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return &AuthenticationError{Message: msg}
	case http.StatusTooManyRequests:
		return &TooManyRequestsError{
			Message:    msg,
			RetryAfter: parseRetryAfter(resp.Header),
		}
	default:
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}
}

func parseRetryAfter(headers http.Header) time.Duration {
	s := headers.Get("Retry-After")
	if s == "" {
		return 0
	}
	secs, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return time.Duration(secs) * time.Second
}
