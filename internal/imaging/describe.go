package imaging

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/skill-flow/internal/gemini"
)

const analysisPrompt = `Please provide a comprehensive analysis of this image including:

1. **Main Subject**: What is the primary focus or subject of the image?
2. **Visual Description**: Describe what you see in detail (objects, people, scenery, etc.)
3. **Colors and Composition**: What are the dominant colors and how is the image composed?
4. **Context and Setting**: Where does this appear to be taking place? What's the environment?
5. **Mood and Atmosphere**: What mood or feeling does the image convey?
6. **Notable Details**: Any interesting or unique details worth mentioning?
7. **Technical Aspects**: Comment on lighting, perspective, or photographic technique if relevant.
8. **Possible Purpose**: What might be the purpose or use case for this image?

Please be thorough but concise in your analysis.`

const summaryPrompt = "Provide a brief one-paragraph summary of this image in 2-3 sentences."

const ocrPrompt = `Extract and transcribe all text visible in this image.
If there is no text, respond with 'No text found in image.'
Format the extracted text maintaining its original structure as much as possible.`

const objectsPrompt = `List all identifiable objects, people, animals, or items in this image.
Format as a bulleted list with brief descriptions.
Also provide a count of main objects detected.`

const (
	noAnalysis = "Unable to generate image analysis. Please try again."
	noSummary  = "Image uploaded successfully."
	noText     = "No text found in image."
	noObjects  = "No objects detected."
)

// Describe produces a detailed analysis, a short summary and the image
// properties. Any failure yields an error-shaped Result.
func (d *implDescriber) Describe(ctx context.Context, imagePath string) Result {
	img, err := load(imagePath)
	if err != nil {
		return d.failed(ctx, imagePath, err)
	}
	d.logger.Info(ctx, "Analyzing image %s (%s %s, %d bytes)", imagePath, img.props.Format, img.props.Size, img.props.FileSize)

	analysis, err := d.ask(ctx, analysisPrompt, img, noAnalysis)
	if err != nil {
		return d.failed(ctx, imagePath, err)
	}

	summary, err := d.ask(ctx, summaryPrompt, img, noSummary)
	if err != nil {
		return d.failed(ctx, imagePath, err)
	}

	return Result{
		DetailedAnalysis: analysis,
		BriefSummary:     summary,
		ImageProperties:  img.props,
	}
}

// ExtractText transcribes text visible in the image.
func (d *implDescriber) ExtractText(ctx context.Context, imagePath string) (string, error) {
	img, err := load(imagePath)
	if err != nil {
		return "", err
	}
	return d.ask(ctx, ocrPrompt, img, noText)
}

// DetectObjects lists the objects in the image as a bulleted list.
func (d *implDescriber) DetectObjects(ctx context.Context, imagePath string) (string, error) {
	img, err := load(imagePath)
	if err != nil {
		return "", err
	}
	return d.ask(ctx, objectsPrompt, img, noObjects)
}

// ask sends prompt with the image attached. An empty reply becomes def.
func (d *implDescriber) ask(ctx context.Context, prompt string, img loaded, def string) (string, error) {
	text, err := d.generator.Generate(ctx, prompt, gemini.Attachment{MIMEType: img.mimeType(), Data: img.data})
	if errors.Is(err, gemini.ErrEmptyResponse) {
		return def, nil
	}
	if err != nil {
		return "", fmt.Errorf("generate: %w", err)
	}
	if text = strings.TrimSpace(text); text == "" {
		return def, nil
	}
	return text, nil
}

func (d *implDescriber) failed(ctx context.Context, imagePath string, err error) Result {
	d.logger.Error(ctx, "Image analysis failed for %s: %v", imagePath, err)
	return Result{Error: "Image analysis failed: " + err.Error()}
}
