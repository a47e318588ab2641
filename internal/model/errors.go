package model

import (
	"errors"
	"fmt"
)

// Validation errors, raised before any network attempt.
var (
	// ErrMissingCredential means no API key is configured anywhere.
	ErrMissingCredential = errors.New("API key not configured")

	// ErrMissingInput means the master CV or the job description is empty.
	ErrMissingInput = errors.New("master CV and job description are both required")

	// ErrUnsupportedFile means the input document is not plain text or markdown.
	ErrUnsupportedFile = errors.New("unsupported file type, use .txt or .md (for PDFs, paste the text instead)")
)

// ProviderError is a non-success HTTP response from the completion endpoint,
// carrying the provider's own message when its error body was decodable.
type ProviderError struct {
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider error (HTTP %d): %s", e.StatusCode, e.Message)
}

// NetworkError is a transport-level failure: unreachable host, timeout, or a
// response body that could not be read or decoded.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
