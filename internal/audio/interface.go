package audio

import "context"

// Converter prepares uploaded audio for the analysis pipeline.
type Converter interface {
	// Normalize writes a mono PCM WAV copy of src into the temp dir and returns its path.
	// The caller owns the returned file.
	Normalize(ctx context.Context, src string) (string, error)
	// Duration returns the length of a WAV file in seconds.
	Duration(path string) (float64, error)
	// Samples returns the WAV's first channel as full-scale floats in [-1, 1] and its sample rate.
	Samples(path string) ([]float64, int, error)
}
