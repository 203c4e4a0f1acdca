package gemini

import "context"

// Attachment is inline binary content sent alongside a prompt (audio, image).
type Attachment struct {
	MIMEType string
	Data     []byte
}

// Generator produces text from a prompt and optional attachments.
type Generator interface {
	Generate(ctx context.Context, prompt string, attachments ...Attachment) (string, error)
}
