package transcriber

import "context"

// WordTimestamp is the estimated position of one word in the audio, in seconds.
type WordTimestamp struct {
	Word      string  `json:"word"`
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
}

// Transcript is the text of a recording plus per-word timing.
// WordTimestamps is empty when the text came from the fallback provider.
type Transcript struct {
	Text           string          `json:"text"`
	WordTimestamps []WordTimestamp `json:"word_timestamps"`
}

// Transcriber turns a normalized WAV file into a Transcript.
// It never fails: provider errors degrade to a fallback transcript.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string, duration float64) Transcript
}
