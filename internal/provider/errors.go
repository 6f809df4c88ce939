package provider

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrMalformedResponse marks a 2xx completion response without message content.
var ErrMalformedResponse = errors.New("completion response has no message content")

// InvalidProviderError marks a completion routed to an unconfigured provider.
type InvalidProviderError struct {
	Name string
}

func (e *InvalidProviderError) Error() string {
	return fmt.Sprintf("unknown provider %q", e.Name)
}

// APIError marks a non-2xx HTTP status from a provider.
type APIError struct {
	Provider   ID
	StatusCode int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("provider %s returned HTTP %d", e.Provider, e.StatusCode)
}

// IsRateLimited reports whether err is a provider rate-limit response.
func IsRateLimited(err error) bool {
	var apiErr *APIError

	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusTooManyRequests
}
