package backend

import (
	"fmt"

	"github.com/pkg/errors"
)

type errorPayload struct {
	Error string `json:"error"`
}

// NetworkError covers transport failures, unexpected statuses and bodies that are not the expected JSON.
type NetworkError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("backend %s (status %d): %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("backend %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// BackendError is an explicit {"error": "..."} payload.
type BackendError struct {
	Message    string
	StatusCode int
}

func (e *BackendError) Error() string {
	return e.Message
}

func IsNetwork(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// ReportedMessage returns the backend's own message when err is a BackendError.
func ReportedMessage(err error) (string, bool) {
	var be *BackendError
	if errors.As(err, &be) {
		return be.Message, true
	}
	return "", false
}
