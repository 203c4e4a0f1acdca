package memory

import (
	"context"
	"fmt"
	"strings"
)

const (
	maxTranscriptChars = 500
	maxSummaryChars    = 100
	summaryInputChars  = 1000

	defaultSummary = "Conversation analyzed"
	emptySummary   = "Empty conversation"

	summaryPrompt = `Summarize this conversation in one sentence (max 100 characters):
%s`
)

func (s *implStore) Append(ctx context.Context, e Entry) (Record, error) {
	// Summarize outside the lock, it is a network call.
	rec := Record{
		Timestamp:  s.now(),
		Transcript: truncate(e.Transcript, maxTranscriptChars),
		Speakers:   e.NumSpeakers,
		Duration:   e.Duration,
		Summary:    s.summarize(ctx, e.Transcript),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = lastN(append(s.records, rec), s.capacity)

	if err := s.persister.Save(s.records); err != nil {
		return rec, fmt.Errorf("persist memory: %w", err)
	}
	return rec, nil
}

func (s *implStore) summarize(ctx context.Context, transcript string) string {
	if strings.TrimSpace(transcript) == "" {
		return emptySummary
	}

	text, err := s.generator.Generate(ctx, fmt.Sprintf(summaryPrompt, truncate(transcript, summaryInputChars)))
	if err != nil {
		s.logger.Warn(ctx, "Conversation summary failed: %v", err)
		return defaultSummary
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return defaultSummary
	}
	return truncate(text, maxSummaryChars)
}

func (s *implStore) Recent(k int) []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Record{}, lastN(s.records, k)...)
}

func (s *implStore) Summaries(k int) []string {
	recent := s.Recent(k)
	out := make([]string, 0, len(recent))
	for _, r := range recent {
		out = append(out, r.Summary)
	}
	return out
}

func (s *implStore) All() []Record {
	return s.Recent(s.capacity)
}

func lastN(records []Record, n int) []Record {
	if n <= 0 {
		return nil
	}
	if len(records) > n {
		return records[len(records)-n:]
	}
	return records
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
