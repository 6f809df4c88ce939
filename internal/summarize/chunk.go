package summarize

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"
)

const (
	// chunkWordBudget approximates a provider token budget by word count.
	// It is a deliberate heuristic, not a tokenizer count.
	chunkWordBudget = 8000

	chunkSummariesMaxParallelism = 4

	partialSeparator = "\n\n---\n\n"
)

// splitIntoChunks partitions the transcript into word-bounded chunks.
// Words never split; chunk order and word order follow the original text.
func splitIntoChunks(transcript string, wordBudget int) []string {
	words := strings.Fields(transcript)
	if len(words) == 0 {
		return nil
	}

	chunks := make([]string, 0, (len(words)+wordBudget-1)/wordBudget)
	for start := 0; start < len(words); start += wordBudget {
		end := min(start+wordBudget, len(words))
		chunks = append(chunks, strings.Join(words[start:end], " "))
	}

	return chunks
}

// summarizeChunked is the map-reduce path: every chunk is summarized
// concurrently against the primary provider, partial summaries are joined in
// chunk order, and a final combine pass produces the result. Neither stage
// falls back to the secondary provider; any single failure fails the request.
func (s *Service) summarizeChunked(
	ctx context.Context,
	transcript string,
	instruction string,
) (string, error) {
	chunks := splitIntoChunks(transcript, chunkWordBudget)

	s.log.InfoContext(ctx, "Summarizing chunked transcript",
		"transcriptChars", utf8.RuneCountInString(transcript),
		"chunkCount", len(chunks))

	partials := make([]string, len(chunks))

	var wg sync.WaitGroup
	semCh := make(chan struct{}, min(chunkSummariesMaxParallelism, len(chunks)))
	errCh := make(chan error, len(chunks))

	for i, chunk := range chunks {
		wg.Add(1)
		semCh <- struct{}{}

		go func(i int, chunk string) {
			defer wg.Done()

			text, err := s.retry.complete(ctx, s.primary, chunkInstruction, chunk)
			if err != nil {
				errCh <- fmt.Errorf("summarize chunk %d: %w", i, err)
			} else {
				partials[i] = text
			}

			<-semCh
		}(i, chunk)
	}

	wg.Wait()
	close(semCh)
	close(errCh)

	var errs []error
	for err := range errCh {
		errs = append(errs, err)
	}
	if len(errs) != 0 {
		return "", errors.Join(errs...)
	}

	combined := strings.Join(partials, partialSeparator)

	final, err := s.retry.complete(ctx, s.primary, combineInstruction(instruction), combined)
	if err != nil {
		return "", fmt.Errorf("combine partial summaries: %w", err)
	}

	return final, nil
}
