package api

import (
	"encoding/json"
	"errors"
	"fmt"

	ghAPI "github.com/cli/go-gh/v2/pkg/api"
)

// APIError is returned when GitHub answers with a non-success status.
type APIError struct {
	Resource   string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("failed to get %s. status code: %d", e.Resource, e.StatusCode)
}

// TransportError is returned when the request could not be completed.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return e.Err.Error() }

func (e *TransportError) Unwrap() error { return e.Err }

// DataError is returned when the response body is not what the API documents.
type DataError struct {
	Reason string
	Err    error
}

func (e *DataError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid response: %s: %v", e.Reason, e.Err)
	}
	return "invalid response: " + e.Reason
}

func (e *DataError) Unwrap() error { return e.Err }

// classify maps a go-gh request error onto APIError or TransportError.
func classify(resource string, err error) error {
	var httpErr *ghAPI.HTTPError
	if errors.As(err, &httpErr) {
		return &APIError{Resource: resource, StatusCode: httpErr.StatusCode, Message: httpErr.Message}
	}
	return &TransportError{Err: err}
}

func decodeError(err error) error {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxErr):
		return &DataError{Reason: "malformed JSON", Err: err}
	case errors.As(err, &typeErr):
		return &DataError{Reason: "unexpected field type", Err: err}
	default:
		return &TransportError{Err: err}
	}
}
