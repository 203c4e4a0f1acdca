package report

import (
	"context"

	"github.com/nguyentantai21042004/skill-flow/internal/conversation"
)

// Files are the reports written for one analysis. Docx is empty when docx
// output is disabled.
type Files struct {
	JSON string
	Docx string
}

// Writer persists analysis results into an output directory.
type Writer interface {
	Write(ctx context.Context, sourcePath string, res conversation.Result) (Files, error)
}
