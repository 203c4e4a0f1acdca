package diarizer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/skill-flow/internal/gemini"
	"github.com/nguyentantai21042004/skill-flow/internal/logger"
	"github.com/nguyentantai21042004/skill-flow/internal/transcriber"
)

type fakeGenerator struct {
	text    string
	err     error
	prompts []string
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string, attachments ...gemini.Attachment) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.text, f.err
}

func newLLM(gen gemini.Generator) Diarizer {
	return NewLLM(gen, logger.New("error", "text"))
}

func transcript(text string, duration float64) transcriber.Transcript {
	return transcriber.Transcript{Text: text, WordTimestamps: transcriber.InterpolateWords(text, duration)}
}

func TestDiarizeEmptyTranscript(t *testing.T) {
	tests := []struct {
		name string
		tr   transcriber.Transcript
		want float64
	}{
		{"empty", transcriber.Transcript{}, 0},
		{"whitespace", transcriber.Transcript{Text: "  \n\t "}, 0},
		{"whitespace with timestamps", transcriber.Transcript{Text: " ", WordTimestamps: []transcriber.WordTimestamp{{Word: "x", StartTime: 0, EndTime: 3.5}}}, 3.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &fakeGenerator{text: `{"segments":[{"speaker":"Speaker 2","text":"x"}]}`}
			got := newLLM(gen).Diarize(context.Background(), Request{Transcript: tt.tr, Duration: 10})

			require.Len(t, got, 1)
			assert.Equal(t, "Speaker 1", got[0].Speaker)
			assert.Equal(t, 0.0, got[0].StartTime)
			assert.Equal(t, tt.want, got[0].EndTime)
			assert.Equal(t, "", got[0].Text)
			assert.Empty(t, gen.prompts, "no provider call for an empty transcript")
		})
	}
}

func TestDiarizeFallbackOnBadResponse(t *testing.T) {
	tests := []struct {
		name string
		resp string
		err  error
	}{
		{"not json", "I think there are two people talking.", nil},
		{"truncated json", `{"segments": [{"speaker": "Speaker 1", "text": "hel`, nil},
		{"missing key", `{"speakers": [{"speaker": "Speaker 1", "text": "hello"}]}`, nil},
		{"empty list", `{"segments": []}`, nil},
		{"null list", `{"segments": null}`, nil},
		{"provider error", "", errors.New("quota")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &fakeGenerator{text: tt.resp, err: tt.err}
			tr := transcriber.Transcript{Text: "one two three four"}

			got := newLLM(gen).Diarize(context.Background(), Request{Transcript: tr, Duration: 9})

			require.Len(t, got, 1)
			assert.Equal(t, "Speaker 1", got[0].Speaker)
			assert.Equal(t, 0.0, got[0].StartTime)
			assert.Equal(t, 2.0, got[0].EndTime, "four words at two words per second")
			assert.Equal(t, "one two three four", got[0].Text)
		})
	}
}

func TestDiarizeFallbackUsesLastWordEnd(t *testing.T) {
	gen := &fakeGenerator{text: "nope"}
	got := newLLM(gen).Diarize(context.Background(), Request{Transcript: transcript("one two three", 6), Duration: 6})

	require.Len(t, got, 1)
	assert.Equal(t, 6.0, got[0].EndTime)
}

func TestDiarizeSingleSegment(t *testing.T) {
	gen := &fakeGenerator{text: `{"segments":[{"speaker":"Speaker 1","text":"hello there how are you"}]}`}
	got := newLLM(gen).Diarize(context.Background(), Request{Transcript: transcript("hello there how are you", 4), Duration: 4})

	assert.Equal(t, []Segment{{Speaker: "Speaker 1", StartTime: 0, EndTime: 4, Text: "hello there how are you"}}, got)
}

func TestDiarizeProportionalAllocation(t *testing.T) {
	resp := "Sure! Here is the result:\n```json\n" + `{
  "segments": [
    {"speaker": "Speaker 1", "text": "hi how are you doing"},
    {"speaker": "Speaker 2", "text": "fine thanks"},
    {"speaker": "Speaker 1", "text": "great"}
  ]
}` + "\n```\nLet me know if you need more."
	gen := &fakeGenerator{text: resp}
	text := "hi how are you doing fine thanks great"

	got := newLLM(gen).Diarize(context.Background(), Request{Transcript: transcript(text, 16), Duration: 16})

	require.Len(t, got, 3)
	assert.Equal(t, "Speaker 1", got[0].Speaker)
	assert.Equal(t, "Speaker 2", got[1].Speaker)
	assert.InDelta(t, 0, got[0].StartTime, 1e-9)
	assert.InDelta(t, 10, got[0].EndTime, 1e-9)
	assert.InDelta(t, 10, got[1].StartTime, 1e-9)
	assert.InDelta(t, 14, got[1].EndTime, 1e-9)
	assert.InDelta(t, 16, got[2].EndTime, 1e-9)

	total := 0.0
	for i, s := range got {
		total += s.EndTime - s.StartTime
		if i > 0 {
			assert.InDelta(t, got[i-1].EndTime, s.StartTime, 1e-9)
		}
	}
	assert.InDelta(t, 16, total, 1e-9)
}

func TestDiarizeDroppedWordsStillCoverDuration(t *testing.T) {
	// The reply keeps 4 of the 8 transcript words.
	gen := &fakeGenerator{text: `{"segments":[{"speaker":"Speaker 1","text":"hi there"},{"speaker":"Speaker 2","text":"fine thanks"}]}`}
	text := "hi there um how are you fine thanks"

	got := newLLM(gen).Diarize(context.Background(), Request{Transcript: transcript(text, 8), Duration: 8})

	require.Len(t, got, 2)
	assert.InDelta(t, 0, got[0].StartTime, 1e-9)
	assert.InDelta(t, 4, got[0].EndTime, 1e-9)
	assert.InDelta(t, 4, got[1].StartTime, 1e-9)
	assert.InDelta(t, 8, got[1].EndTime, 1e-9, "shares come from the returned segments, so the last one ends at the audio duration")
}

func TestDiarizePreservesLabels(t *testing.T) {
	gen := &fakeGenerator{text: `{"segments":[{"speaker":"Interviewer","text":"a b"},{"speaker":"","text":"c d"}]}`}
	got := newLLM(gen).Diarize(context.Background(), Request{Transcript: transcript("a b c d", 2), Duration: 2})

	require.Len(t, got, 2)
	assert.Equal(t, "Interviewer", got[0].Speaker)
	assert.Equal(t, "Speaker 1", got[1].Speaker)
}

func TestDiarizeZeroDurationUsesEstimate(t *testing.T) {
	gen := &fakeGenerator{text: `{"segments":[{"speaker":"Speaker 1","text":"a b"},{"speaker":"Speaker 2","text":"c d"}]}`}
	got := newLLM(gen).Diarize(context.Background(), Request{Transcript: transcriber.Transcript{Text: "a b c d"}})

	require.Len(t, got, 2)
	assert.InDelta(t, 2, got[1].EndTime, 1e-9)
}

func TestAllocateNoWords(t *testing.T) {
	got := allocate([]rawSegment{{Speaker: "A"}, {Speaker: "B", Text: "  "}}, 10)

	require.Len(t, got, 2)
	assert.InDelta(t, 5, got[0].EndTime, 1e-9)
	assert.InDelta(t, 10, got[1].EndTime, 1e-9)
}

func TestParseSegments(t *testing.T) {
	tests := []struct {
		name    string
		resp    string
		want    int
		wantErr bool
	}{
		{"plain", `{"segments":[{"speaker":"S1","text":"a"}]}`, 1, false},
		{"padded", "\n\n  {\"segments\":[{\"speaker\":\"S1\",\"text\":\"a\"},{\"speaker\":\"S2\",\"text\":\"b\"}]}  \n", 2, false},
		{"fenced", "```json\n{\"segments\":[{\"speaker\":\"S1\",\"text\":\"a\"}]}\n```", 1, false},
		{"braces in commentary", "note {x} then {\"segments\":[{\"speaker\":\"S1\",\"text\":\"a\"}]}", 0, true},
		{"no braces", "segments: none", 0, true},
		{"reversed braces", "} nothing {", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseSegments(tt.resp)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestBuildPrompt(t *testing.T) {
	req := Request{
		Transcript:    transcriber.Transcript{Text: "the transcript body"},
		MemoryContext: []string{"first", "second", "third", "fourth"},
	}
	prompt := buildPrompt(req)

	assert.Contains(t, prompt, "the transcript body")
	assert.Contains(t, prompt, "Identify up to 2 different speakers")
	assert.Contains(t, prompt, "Previous conversation patterns:")
	assert.NotContains(t, prompt, "- first")
	for _, s := range []string{"second", "third", "fourth"} {
		assert.Contains(t, prompt, "- "+s)
	}

	noMemory := buildPrompt(Request{Transcript: req.Transcript, MaxSpeakers: 4})
	assert.NotContains(t, noMemory, "Previous conversation patterns")
	assert.Contains(t, noMemory, "Identify up to 4 different speakers")
	assert.True(t, strings.Contains(noMemory, `"segments"`))
}
