package summarize

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"condenser/internal/provider"
)

// chunkThresholdChars routes transcripts to the chunked path.
// Derived as 4x the chunk word budget, matching the word-count heuristic.
const chunkThresholdChars = 4 * chunkWordBudget

// Service is the top-level summarization orchestrator.
// It holds no per-request state.
type Service struct {
	retry     *retryer
	primary   provider.ID
	secondary provider.ID
	log       *slog.Logger
}

// NewService wires the orchestrator onto a completer (normally a
// provider.Registry; tests inject fakes).
func NewService(completer Completer, log *slog.Logger) *Service {
	return &Service{
		retry:     newRetryer(completer, log),
		primary:   provider.Groq,
		secondary: provider.OpenAI,
		log:       log,
	}
}

// Summarize routes the request: transcripts above the character threshold go
// through chunked map-reduce, the rest through direct fallback summarization.
// Any failure surfaces as ErrSummarizationFailed.
func (s *Service) Summarize(
	ctx context.Context,
	transcript string,
	instruction string,
) (string, error) {
	var (
		text string
		err  error
	)

	if utf8.RuneCountInString(transcript) > chunkThresholdChars {
		text, err = s.summarizeChunked(ctx, transcript, instruction)
	} else {
		text, err = s.summarizeWithFallback(ctx, transcript, instruction)
	}

	if err != nil {
		if errors.Is(err, ErrSummarizationFailed) {
			return "", err
		}

		return "", fmt.Errorf("%w: %w", ErrSummarizationFailed, err)
	}

	return text, nil
}
