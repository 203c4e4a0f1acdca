package transcriber

import (
	"context"
	"fmt"
	"os"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/nguyentantai21042004/skill-flow/internal/gemini"
)

const (
	fallbackPrompt = `You are an audio transcription assistant. Transcribe the attached recording verbatim as plain text.
Return only the transcript. If the audio cannot be transcribed, say so in one sentence.`

	unavailableText = "Audio transcription not available"
)

// Transcribe tries the primary provider once, then the fallback once.
func (t *implTranscriber) Transcribe(ctx context.Context, audioPath string, duration float64) Transcript {
	text, err := t.primary(ctx, audioPath)
	if err == nil {
		t.logger.Info(ctx, "Transcription completed: %d words", len(strings.Fields(text)))
		return Transcript{
			Text:           text,
			WordTimestamps: InterpolateWords(text, duration),
		}
	}

	t.logger.Warn(ctx, "Primary transcription failed, falling back to Gemini: %v", err)
	return t.fallbackTranscript(ctx, audioPath)
}

func (t *implTranscriber) primary(ctx context.Context, audioPath string) (string, error) {
	resp, err := t.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    t.model,
		FilePath: audioPath,
		Language: t.language,
		Format:   openai.AudioResponseFormatJSON,
	})
	if err != nil {
		return "", fmt.Errorf("create transcription: %w", err)
	}
	return strings.TrimSpace(resp.Text), nil
}

func (t *implTranscriber) fallbackTranscript(ctx context.Context, audioPath string) Transcript {
	data, err := os.ReadFile(audioPath)
	if err != nil {
		return Transcript{Text: fmt.Sprintf("Transcription error: %v", err), WordTimestamps: []WordTimestamp{}}
	}

	text, err := t.fallback.Generate(ctx, fallbackPrompt, gemini.Attachment{MIMEType: "audio/wav", Data: data})
	if err != nil {
		t.logger.Error(ctx, "Fallback transcription failed: %v", err)
		return Transcript{Text: fmt.Sprintf("Transcription error: %v", err), WordTimestamps: []WordTimestamp{}}
	}

	text = strings.TrimSpace(text)
	if text == "" {
		text = unavailableText
	}
	return Transcript{Text: text, WordTimestamps: []WordTimestamp{}}
}

// InterpolateWords spreads the words of text uniformly over duration seconds:
// word i of W spans [i*D/W, (i+1)*D/W], clamped to D.
func InterpolateWords(text string, duration float64) []WordTimestamp {
	words := strings.Fields(text)
	out := make([]WordTimestamp, 0, len(words))
	if len(words) == 0 {
		return out
	}
	if duration < 0 {
		duration = 0
	}

	w := float64(len(words))
	for i, word := range words {
		start := float64(i) * duration / w
		end := float64(i+1) * duration / w
		out = append(out, WordTimestamp{
			Word:      word,
			StartTime: min(start, duration),
			EndTime:   min(end, duration),
		})
	}
	return out
}
