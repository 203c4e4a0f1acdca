package diarizer

import (
	"context"

	"github.com/nguyentantai21042004/skill-flow/internal/transcriber"
)

// Segment is a stretch of the conversation attributed to one speaker.
// Times are seconds from the start of the recording.
type Segment struct {
	Speaker   string  `json:"speaker"`
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
	Text      string  `json:"text"`
}

// Request carries everything a strategy may use.
type Request struct {
	Transcript    transcriber.Transcript
	AudioPath     string
	Duration      float64
	MemoryContext []string
	MaxSpeakers   int
}

// Diarizer splits a conversation into speaker segments ordered by start time.
// Implementations never fail; they degrade to a single-speaker segment.
type Diarizer interface {
	Diarize(ctx context.Context, req Request) []Segment
}

// SampleSource provides decoded PCM for signal-based strategies.
type SampleSource interface {
	Samples(path string) ([]float64, int, error)
}
