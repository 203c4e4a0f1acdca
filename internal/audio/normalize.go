package audio

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Normalize converts src to mono 16kHz PCM 16-bit WAV.
func (c *implConverter) Normalize(ctx context.Context, src string) (string, error) {
	if _, err := os.Stat(src); err != nil {
		return "", fmt.Errorf("stat source: %w", err)
	}
	if err := os.MkdirAll(c.tempDir, 0755); err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}

	f, err := os.CreateTemp(c.tempDir, strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))+"-*.wav")
	if err != nil {
		return "", fmt.Errorf("create temp wav: %w", err)
	}
	out := f.Name()
	f.Close()

	c.logger.Debug(ctx, "Normalizing audio: %s -> %s", src, out)

	// -vn: drop any video stream
	// -ar/-ac: target rate and channel count
	// -c:a pcm_s16le: uncompressed 16-bit, readable by the wav decoder
	args := []string{
		"-i", src,
		"-vn",
		"-ar", strconv.Itoa(c.cfg.SampleRate),
		"-ac", strconv.Itoa(c.cfg.Channels),
		"-c:a", "pcm_s16le",
		"-f", "wav",
		"-y",
		out,
	}

	if _, err := c.executor.Execute(ctx, c.cfg.FFmpegPath, args...); err != nil {
		os.Remove(out)
		return "", fmt.Errorf("ffmpeg normalize audio: %w", err)
	}

	return out, nil
}
