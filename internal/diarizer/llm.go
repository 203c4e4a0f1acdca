package diarizer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

const diarizationPrompt = `You are a speaker diarization expert. Analyze this transcript and identify different speakers.

%s
Transcript to analyze:
%s

Instructions:
1. Identify up to %d different speakers based on conversation flow, topic changes, and response patterns
2. If only one speaker is detected, label everything as "Speaker 1"
3. Break the conversation into logical segments by speaker
4. Each segment should contain complete thoughts or sentences

Respond with ONLY this JSON format (no markdown, no extra text):
{
  "segments": [
    {"speaker": "Speaker 1", "text": "first speaker's words"},
    {"speaker": "Speaker 2", "text": "second speaker's words"}
  ]
}
`

var errNoSegments = errors.New("response has no segments")

type rawSegment struct {
	Speaker string `json:"speaker"`
	Text    string `json:"text"`
}

type rawResponse struct {
	Segments *[]rawSegment `json:"segments"`
}

func (d *llmDiarizer) Diarize(ctx context.Context, req Request) []Segment {
	if isBlank(req.Transcript) {
		d.logger.Debug(ctx, "Empty transcript, single speaker segment")
		return singleSpeaker(req.Transcript)
	}

	resp, err := d.generator.Generate(ctx, buildPrompt(req))
	if err != nil {
		d.logger.Warn(ctx, "Diarization request failed, using single speaker: %v", err)
		return singleSpeaker(req.Transcript)
	}

	raw, err := parseSegments(resp)
	if err != nil {
		d.logger.Warn(ctx, "Failed to parse diarization response, using single speaker: %v", err)
		d.logger.Debug(ctx, "Diarization response: %s", resp)
		return singleSpeaker(req.Transcript)
	}

	total := req.Duration
	if total <= 0 {
		total = estimatedDuration(req.Transcript)
	}

	segments := allocate(raw, total)
	d.logger.Info(ctx, "Generated %d speaker segments", len(segments))
	return segments
}

func buildPrompt(req Request) string {
	maxSpeakers := req.MaxSpeakers
	if maxSpeakers <= 0 {
		maxSpeakers = DefaultMaxSpeakers
	}

	var history strings.Builder
	recent := req.MemoryContext
	if len(recent) > contextSize {
		recent = recent[len(recent)-contextSize:]
	}
	if len(recent) > 0 {
		history.WriteString("Previous conversation patterns:\n")
		for _, s := range recent {
			fmt.Fprintf(&history, "- %s\n", s)
		}
	}

	return fmt.Sprintf(diarizationPrompt, history.String(), req.Transcript.Text, maxSpeakers)
}

// parseSegments extracts {"segments": [...]} from a model reply that may be
// wrapped in prose or code fences.
func parseSegments(resp string) ([]rawSegment, error) {
	trimmed := strings.TrimSpace(resp)

	var lastErr error
	candidates := []string{trimmed}
	if start, end := strings.Index(trimmed, "{"), strings.LastIndex(trimmed, "}"); start != -1 && end > start {
		candidates = []string{trimmed[start : end+1], trimmed}
	}

	for _, c := range candidates {
		var out rawResponse
		if err := json.Unmarshal([]byte(c), &out); err != nil {
			lastErr = fmt.Errorf("decode segments: %w", err)
			continue
		}
		if out.Segments == nil || len(*out.Segments) == 0 {
			return nil, errNoSegments
		}
		return *out.Segments, nil
	}
	return nil, lastErr
}

// allocate lays segments out contiguously from 0, each taking a share of
// total proportional to its word count. This assumes a uniform speaking rate.
func allocate(raw []rawSegment, total float64) []Segment {
	counts := make([]int, len(raw))
	sum := 0
	for i, r := range raw {
		counts[i] = len(strings.Fields(r.Text))
		sum += counts[i]
	}

	out := make([]Segment, 0, len(raw))
	current := 0.0
	for i, r := range raw {
		var d float64
		if sum > 0 {
			d = float64(counts[i]) / float64(sum) * total
		} else {
			d = total / float64(len(raw))
		}

		speaker := r.Speaker
		if speaker == "" {
			speaker = defaultSpeaker
		}
		out = append(out, Segment{
			Speaker:   speaker,
			StartTime: current,
			EndTime:   current + d,
			Text:      r.Text,
		})
		current += d
	}
	return out
}
