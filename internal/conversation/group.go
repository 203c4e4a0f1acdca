package conversation

import (
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/skill-flow/internal/diarizer"
)

// SpeakerTimeline is every segment of one speaker.
type SpeakerTimeline struct {
	Speaker  string          `json:"speaker"`
	Segments []TimelineEntry `json:"segments"`
}

type TimelineEntry struct {
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
	Text      string  `json:"text"`
}

// GroupBySpeaker regroups segments per speaker, speakers in order of first appearance.
func GroupBySpeaker(segments []diarizer.Segment) []SpeakerTimeline {
	out := []SpeakerTimeline{}
	index := map[string]int{}
	for _, s := range segments {
		i, ok := index[s.Speaker]
		if !ok {
			i = len(out)
			index[s.Speaker] = i
			out = append(out, SpeakerTimeline{Speaker: s.Speaker})
		}
		out[i].Segments = append(out[i].Segments, TimelineEntry{
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
			Text:      s.Text,
		})
	}
	return out
}

var supportedFormats = []string{".wav", ".mp3", ".m4a", ".ogg", ".flac"}

// IsAudioFile checks if the file has a supported audio extension
func IsAudioFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, format := range supportedFormats {
		if ext == format {
			return true
		}
	}
	return false
}

// SupportedFormats lists accepted upload extensions.
func SupportedFormats() []string {
	return append([]string(nil), supportedFormats...)
}
