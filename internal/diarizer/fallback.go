package diarizer

import (
	"strings"

	"github.com/nguyentantai21042004/skill-flow/internal/transcriber"
)

const (
	defaultSpeaker = "Speaker 1"
	wordsPerSecond = 2.0
)

// singleSpeaker attributes the whole transcript to Speaker 1.
func singleSpeaker(t transcriber.Transcript) []Segment {
	text := t.Text
	if strings.TrimSpace(text) == "" {
		text = ""
	}
	return []Segment{{
		Speaker:   defaultSpeaker,
		StartTime: 0,
		EndTime:   estimatedDuration(t),
		Text:      text,
	}}
}

// estimatedDuration is the last word's end time, or word count at 2 words/sec.
func estimatedDuration(t transcriber.Transcript) float64 {
	if n := len(t.WordTimestamps); n > 0 {
		return t.WordTimestamps[n-1].EndTime
	}
	return float64(len(strings.Fields(t.Text))) / wordsPerSecond
}

func isBlank(t transcriber.Transcript) bool {
	return strings.TrimSpace(t.Text) == ""
}
