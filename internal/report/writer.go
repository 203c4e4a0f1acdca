package report

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/skill-flow/internal/conversation"
)

// Write stores <name>.json (and <name>.docx) for the analysis of sourcePath.
func (w *implWriter) Write(ctx context.Context, sourcePath string, res conversation.Result) (Files, error) {
	if err := os.MkdirAll(w.outputDir, 0755); err != nil {
		return Files{}, fmt.Errorf("create output dir: %w", err)
	}

	name := strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath))

	var files Files
	files.JSON = filepath.Join(w.outputDir, name+".json")
	if err := WriteJSON(files.JSON, res); err != nil {
		return Files{}, err
	}

	if w.docx {
		files.Docx = filepath.Join(w.outputDir, name+".docx")
		if err := WriteDocx(files.Docx, name, res, w.now()); err != nil {
			return Files{}, err
		}
	}

	w.logger.Info(ctx, "[DONE] %s -> %s", filepath.Base(sourcePath), w.outputDir)
	return files, nil
}

// WriteJSON writes res as indented JSON.
func WriteJSON(path string, res conversation.Result) error {
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
