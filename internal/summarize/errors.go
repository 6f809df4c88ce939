package summarize

import (
	"errors"
	"fmt"

	"condenser/internal/provider"
)

// ErrSummarizationFailed is the terminal error surfaced to the boundary layer
// once every provider path for a request has been exhausted.
var ErrSummarizationFailed = errors.New("summarization failed")

// RetriesExhaustedError marks a provider whose attempt budget was consumed
// without a successful completion.
type RetriesExhaustedError struct {
	Provider provider.ID
	Last     error
}

func (e *RetriesExhaustedError) Error() string {
	return fmt.Sprintf(
		"provider %s: retries exhausted after %d attempts: %v",
		e.Provider,
		maxAttempts,
		e.Last,
	)
}

func (e *RetriesExhaustedError) Unwrap() error {
	return e.Last
}
