package conversation

import (
	"context"

	"github.com/nguyentantai21042004/skill-flow/internal/diarizer"
)

// Result is the outcome of one analysis. On failure Error is set and the
// other fields are zero values.
type Result struct {
	RequestID       string             `json:"request_id,omitempty"`
	Error           string             `json:"error,omitempty"`
	Transcript      string             `json:"transcript"`
	SpeakerSegments []diarizer.Segment `json:"speaker_segments"`
	AudioDuration   float64            `json:"audio_duration"`
	NumSpeakers     int                `json:"num_speakers"`
	MemoryContext   []string           `json:"memory_context"`
}

// Analyzer runs the conversation analysis pipeline.
// Errors are reported inside Result, never returned.
type Analyzer interface {
	Analyze(ctx context.Context, audioPath string) Result
	// AnalyzeUpload stores data under a temp name keeping filename's
	// extension, analyzes it and removes it.
	AnalyzeUpload(ctx context.Context, data []byte, filename string) Result
}
