package summarize

import (
	"context"
	"errors"
	"fmt"
)

// summarizeWithFallback runs a full retry-wrapped completion against the
// primary provider and, only after its attempt budget is gone, repeats the
// identical request against the secondary. No further fallback exists.
func (s *Service) summarizeWithFallback(
	ctx context.Context,
	transcript string,
	instruction string,
) (string, error) {
	composite := compositeInstruction(instruction)

	text, primaryErr := s.retry.complete(ctx, s.primary, composite, transcript)
	if primaryErr == nil {
		return text, nil
	}

	s.log.ErrorContext(ctx, "Primary provider failed, falling back",
		"error", primaryErr,
		"provider", s.primary,
		"fallbackProvider", s.secondary)

	text, secondaryErr := s.retry.complete(ctx, s.secondary, composite, transcript)
	if secondaryErr == nil {
		return text, nil
	}

	return "", fmt.Errorf("%w: %w",
		ErrSummarizationFailed,
		errors.Join(primaryErr, secondaryErr))
}
