// Package audiotest writes small WAV fixtures for tests.
package audiotest

import (
	"math"
	"os"
	"testing"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
)

// Segment is a stretch of sine tone. Freq 0 writes silence.
type Segment struct {
	Seconds float64
	Freq    float64
}

// WriteWAV writes a mono 16-bit WAV built from segs and returns its path.
func WriteWAV(t testing.TB, dir string, rate int, segs ...Segment) string {
	t.Helper()

	var samples []float64
	for _, s := range segs {
		n := int(s.Seconds * float64(rate))
		for i := 0; i < n; i++ {
			v := 0.0
			if s.Freq > 0 {
				v = 0.5 * math.Sin(2*math.Pi*s.Freq*float64(i)/float64(rate))
			}
			samples = append(samples, v)
		}
	}

	pos := 0
	streamer := beep.StreamerFunc(func(buf [][2]float64) (int, bool) {
		if pos >= len(samples) {
			return 0, false
		}
		n := copy2(buf, samples[pos:])
		pos += n
		return n, true
	})

	f, err := os.CreateTemp(dir, "fixture-*.wav")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	format := beep.Format{SampleRate: beep.SampleRate(rate), NumChannels: 1, Precision: 2}
	if err := wav.Encode(f, streamer, format); err != nil {
		t.Fatal(err)
	}
	return f.Name()
}

func copy2(dst [][2]float64, src []float64) int {
	n := len(dst)
	if len(src) < n {
		n = len(src)
	}
	for i := 0; i < n; i++ {
		dst[i][0] = src[i]
		dst[i][1] = src[i]
	}
	return n
}
