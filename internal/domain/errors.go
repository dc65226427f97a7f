package domain

import (
	"errors"
	"fmt"
)

// APIRequestError is returned when the statistics API answers with a
// non-success status
type APIRequestError struct {
	API        string
	StatusCode int
	Body       string // first 512 bytes
}

func (e *APIRequestError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s API request failed with status %d", e.API, e.StatusCode)
	}
	return fmt.Sprintf("%s API request failed with status %d: %s", e.API, e.StatusCode, e.Body)
}

// InvalidRangeError reports a keyword statistics period that cannot be requested
type InvalidRangeError struct {
	From   string
	To     string
	Reason string
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid period %s..%s: %s", e.From, e.To, e.Reason)
}

// MissingCredentialError is returned at startup when the API token is not set
type MissingCredentialError struct {
	Name string
}

func (e *MissingCredentialError) Error() string {
	return fmt.Sprintf("required credential %s is not set", e.Name)
}

// ErrInvalidRequest marks malformed request parameters
var ErrInvalidRequest = errors.New("invalid request")

// ErrNetwork marks transport failures: timeouts, DNS errors, resets
var ErrNetwork = errors.New("network failure")

// NetworkError wraps a transport failure for a single API call
type NetworkError struct {
	API string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s API: %v: %v", e.API, ErrNetwork, e.Err)
}

func (e *NetworkError) Unwrap() []error {
	return []error{ErrNetwork, e.Err}
}
