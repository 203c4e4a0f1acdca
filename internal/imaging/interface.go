package imaging

import "context"

// Properties describe the decoded image header.
type Properties struct {
	Format   string `json:"format,omitempty"`
	Mode     string `json:"mode,omitempty"`
	Size     string `json:"size,omitempty"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
	FileSize int64  `json:"file_size,omitempty"`
}

// Result is the outcome of describing one image. On failure Error is set and
// every other field is empty.
type Result struct {
	Error            string     `json:"error,omitempty"`
	DetailedAnalysis string     `json:"detailed_analysis"`
	BriefSummary     string     `json:"brief_summary"`
	ImageProperties  Properties `json:"image_properties"`
}

// Describer turns images into text using a vision-capable model.
type Describer interface {
	Describe(ctx context.Context, imagePath string) Result
	ExtractText(ctx context.Context, imagePath string) (string, error)
	DetectObjects(ctx context.Context, imagePath string) (string, error)
}
