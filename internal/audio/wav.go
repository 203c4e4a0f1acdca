package audio

import (
	"fmt"
	"math"
	"os"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
)

const readChunk = 4096

func decode(path string) (beep.StreamSeekCloser, beep.Format, func(), error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, nil, fmt.Errorf("open wav: %w", err)
	}
	s, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return nil, beep.Format{}, nil, fmt.Errorf("decode wav: %w", err)
	}
	return s, format, func() { s.Close(); f.Close() }, nil
}

// Duration returns the length of the WAV in seconds.
func (c *implConverter) Duration(path string) (float64, error) {
	return Duration(path)
}

// Samples returns the left channel of the WAV.
func (c *implConverter) Samples(path string) ([]float64, int, error) {
	return Samples(path)
}

// Duration reads only the WAV header.
func Duration(path string) (float64, error) {
	s, format, closeFn, err := decode(path)
	if err != nil {
		return 0, err
	}
	defer closeFn()

	if format.SampleRate <= 0 {
		return 0, fmt.Errorf("wav has invalid sample rate %d", format.SampleRate)
	}
	return float64(s.Len()) / float64(format.SampleRate), nil
}

// Samples decodes the whole WAV. Mono files are duplicated into both
// channels by the decoder, so the left channel is the signal.
func Samples(path string) ([]float64, int, error) {
	s, format, closeFn, err := decode(path)
	if err != nil {
		return nil, 0, err
	}
	defer closeFn()

	scale := sampleScale(format)
	out := make([]float64, 0, s.Len())
	buf := make([][2]float64, readChunk)
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			out = append(out, clamp(buf[i][0]*scale))
		}
		if !ok {
			break
		}
	}
	if err := s.Err(); err != nil {
		return nil, 0, fmt.Errorf("stream wav: %w", err)
	}

	return out, int(format.SampleRate), nil
}

// sampleScale undoes the decoder dividing 16-bit mono PCM by 1<<16-1
// instead of 1<<15, which would otherwise halve every amplitude.
func sampleScale(format beep.Format) float64 {
	if format.NumChannels == 1 && format.Precision == 2 {
		return float64(1<<16-1) / float64(1<<15)
	}
	return 1
}

func clamp(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}
