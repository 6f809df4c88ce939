package summarize

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"condenser/internal/provider"
)

const maxAttempts = 5

// Completer issues a single chat completion against a named provider.
type Completer interface {
	Complete(
		ctx context.Context,
		id provider.ID,
		instruction string,
		body string,
	) (string, error)
}

// retryer wraps a Completer with bounded exponential-backoff retry.
// Rate-limit responses and generic failures share one attempt counter.
type retryer struct {
	completer Completer
	sleep     func(ctx context.Context, d time.Duration) error
	log       *slog.Logger
}

func newRetryer(completer Completer, log *slog.Logger) *retryer {
	return &retryer{
		completer: completer,
		sleep:     sleepContext,
		log:       log,
	}
}

func (r *retryer) complete(
	ctx context.Context,
	id provider.ID,
	instruction string,
	body string,
) (string, error) {
	var lastErr error

	for attempt := range maxAttempts {
		text, err := r.completer.Complete(ctx, id, instruction, body)
		if err == nil {
			return text, nil
		}

		// An unknown provider id is a programmer error; retrying cannot help.
		var invalid *provider.InvalidProviderError
		if errors.As(err, &invalid) {
			return "", err
		}

		lastErr = err

		delay := time.Duration(1<<attempt) * time.Second

		if provider.IsRateLimited(err) {
			r.log.WarnContext(ctx, "Provider rate limited",
				"provider", id,
				"attempt", attempt,
				"delaySeconds", delay.Seconds())
		} else {
			r.log.WarnContext(ctx, "Completion attempt failed",
				"error", err,
				"provider", id,
				"attempt", attempt,
				"delaySeconds", delay.Seconds())
		}

		if sleepErr := r.sleep(ctx, delay); sleepErr != nil {
			return "", fmt.Errorf("wait before retry: %w", sleepErr)
		}
	}

	return "", &RetriesExhaustedError{Provider: id, Last: lastErr}
}

// sleepContext suspends only the calling task; other requests and sibling
// chunk summarizations keep running.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
