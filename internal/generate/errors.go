package generate

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingCredential is returned when no API key is configured.
	ErrMissingCredential = errors.New("generate: api key not configured")

	// ErrEmptyInput is returned for a blank prompt.
	ErrEmptyInput = errors.New("generate: prompt is empty")

	// ErrMalformedResponse is returned when the model reply contains no
	// usable JSON object.
	ErrMalformedResponse = errors.New("generate: response contains no spec object")
)

// StatusError reports a non-2xx reply from the upstream model API.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("generate: upstream returned status %d", e.Code)
	}
	return fmt.Sprintf("generate: upstream returned status %d: %s", e.Code, e.Message)
}
