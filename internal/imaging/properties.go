package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

var supportedFormats = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".webp"}

// IsImageFile checks if the file has a supported image extension
func IsImageFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, format := range supportedFormats {
		if ext == format {
			return true
		}
	}
	return false
}

// loaded is an image file read into memory with its decoded header.
type loaded struct {
	data  []byte
	props Properties
}

// mimeType is the attachment type sent to the model.
func (l loaded) mimeType() string {
	return "image/" + strings.ToLower(l.props.Format)
}

func load(path string) (loaded, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return loaded{}, fmt.Errorf("read image: %w", err)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return loaded{}, fmt.Errorf("decode image: %w", err)
	}

	return loaded{
		data: data,
		props: Properties{
			Format:   strings.ToUpper(format),
			Mode:     modeName(cfg.ColorModel),
			Size:     fmt.Sprintf("%dx%d", cfg.Width, cfg.Height),
			Width:    cfg.Width,
			Height:   cfg.Height,
			FileSize: int64(len(data)),
		},
	}, nil
}

// modeName maps a color model to the conventional short mode name.
func modeName(m color.Model) string {
	if _, ok := m.(color.Palette); ok {
		return "P"
	}
	switch m {
	case color.RGBAModel, color.NRGBAModel:
		return "RGBA"
	case color.RGBA64Model, color.NRGBA64Model:
		return "RGBA64"
	case color.GrayModel:
		return "L"
	case color.Gray16Model:
		return "I;16"
	case color.YCbCrModel:
		return "YCbCr"
	case color.NYCbCrAModel:
		return "YCbCrA"
	case color.CMYKModel:
		return "CMYK"
	default:
		return "unknown"
	}
}
