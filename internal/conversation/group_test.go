package conversation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nguyentantai21042004/skill-flow/internal/diarizer"
)

func TestGroupBySpeaker(t *testing.T) {
	segments := []diarizer.Segment{
		{Speaker: "Speaker 2", StartTime: 0, EndTime: 2, Text: "hi"},
		{Speaker: "Speaker 1", StartTime: 2, EndTime: 5, Text: "hello there"},
		{Speaker: "Speaker 2", StartTime: 5, EndTime: 6, Text: "bye"},
	}

	got := GroupBySpeaker(segments)

	assert.Equal(t, []SpeakerTimeline{
		{Speaker: "Speaker 2", Segments: []TimelineEntry{
			{StartTime: 0, EndTime: 2, Text: "hi"},
			{StartTime: 5, EndTime: 6, Text: "bye"},
		}},
		{Speaker: "Speaker 1", Segments: []TimelineEntry{
			{StartTime: 2, EndTime: 5, Text: "hello there"},
		}},
	}, got)
}

func TestGroupBySpeakerEmpty(t *testing.T) {
	got := GroupBySpeaker(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestIsAudioFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"meeting.wav", true},
		{"/tmp/call.MP3", true},
		{"voice.m4a", true},
		{"a.b.ogg", true},
		{"track.flac", true},
		{"video.mp4", false},
		{"notes.txt", false},
		{"noext", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, IsAudioFile(tt.path))
		})
	}
}

func TestSupportedFormatsIsCopy(t *testing.T) {
	f := SupportedFormats()
	f[0] = ".exe"
	assert.True(t, IsAudioFile("x.wav"))
}
