package diarizer

import (
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
)

const (
	nFFT  = 2048
	hop   = 512
	nMels = 40
	nMFCC = 13
)

// mfccExtractor computes mean MFCC vectors. It caches the FFT plan,
// window and mel filterbank for one sample rate and is not safe for
// concurrent use.
type mfccExtractor struct {
	fft    *fourier.FFT
	dct    *orthoDCT
	window []float64
	mel    [][]float64
	frame  []float64
	coeffs []complex128
	power  []float64
	logMel []float64
}

func newMFCCExtractor(sampleRate int) *mfccExtractor {
	window := make([]float64, nFFT)
	for i := range window {
		window[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(nFFT))
	}
	return &mfccExtractor{
		fft:    fourier.NewFFT(nFFT),
		dct:    newOrthoDCT(nMels),
		window: window,
		mel:    melFilterbank(sampleRate, nFFT, nMels),
		frame:  make([]float64, nFFT),
		power:  make([]float64, nFFT/2+1),
		logMel: make([]float64, nMels),
	}
}

// mean returns the average of the per-frame MFCCs of chunk.
// Chunks shorter than one FFT window are zero padded into a single frame.
func (m *mfccExtractor) mean(chunk []float64) []float64 {
	out := make([]float64, nMFCC)
	frames := 0

	for start := 0; start == 0 || start+nFFT <= len(chunk); start += hop {
		for i := range m.frame {
			v := 0.0
			if start+i < len(chunk) {
				v = chunk[start+i]
			}
			m.frame[i] = v * m.window[i]
		}

		m.coeffs = m.fft.Coefficients(m.coeffs, m.frame)
		for i, c := range m.coeffs {
			m.power[i] = real(c)*real(c) + imag(c)*imag(c)
		}

		for b, filter := range m.mel {
			e := 0.0
			for i, w := range filter {
				e += w * m.power[i]
			}
			m.logMel[b] = 10 * math.Log10(math.Max(e, 1e-10))
		}

		c := m.dct.transform(m.logMel)
		for i := range out {
			out[i] += c[i]
		}
		frames++
	}

	for i := range out {
		out[i] /= float64(frames)
	}
	return out
}

func hzToMel(f float64) float64 { return 2595 * math.Log10(1+f/700) }
func melToHz(m float64) float64 { return 700 * (math.Pow(10, m/2595) - 1) }

// melFilterbank builds triangular filters spaced evenly on the mel scale
// between 0 Hz and Nyquist.
func melFilterbank(sampleRate, n, bands int) [][]float64 {
	bins := n/2 + 1
	lo, hi := hzToMel(0), hzToMel(float64(sampleRate)/2)

	points := make([]float64, bands+2)
	for i := range points {
		hz := melToHz(lo + (hi-lo)*float64(i)/float64(bands+1))
		points[i] = hz * float64(n) / float64(sampleRate)
	}

	filters := make([][]float64, bands)
	for b := 0; b < bands; b++ {
		left, center, right := points[b], points[b+1], points[b+2]
		f := make([]float64, bins)
		for i := 0; i < bins; i++ {
			x := float64(i)
			switch {
			case x > left && x <= center && center > left:
				f[i] = (x - left) / (center - left)
			case x > center && x < right && right > center:
				f[i] = (right - x) / (right - center)
			}
		}
		filters[b] = f
	}
	return filters
}

// orthoDCT is an orthonormal DCT-II built on gonum's quarter-wave
// transform, whose CosSequence is an unnormalized DCT-II.
type orthoDCT struct {
	t   *fourier.QuarterWaveFFT
	raw float64
	in  []float64
	out []float64
}

func newOrthoDCT(n int) *orthoDCT {
	t := fourier.NewQuarterWaveFFT(n)

	// The response to a unit impulse at k=0 is the transform's own scale.
	impulse := make([]float64, n)
	impulse[0] = 1
	raw := t.CosSequence(nil, impulse)[0]

	return &orthoDCT{
		t:   t,
		raw: raw,
		in:  make([]float64, n),
		out: make([]float64, n),
	}
}

// transform returns the first nMFCC coefficients of x. The result is
// reused by the next call.
func (d *orthoDCT) transform(x []float64) []float64 {
	copy(d.in, x)
	d.out = d.t.CosSequence(d.out, d.in)

	n := float64(len(d.in))
	for j := range d.out {
		scale := math.Sqrt(2 / n)
		if j == 0 {
			scale = math.Sqrt(1 / n)
		}
		d.out[j] = d.out[j] / d.raw * scale
	}
	if len(d.out) > nMFCC {
		return d.out[:nMFCC]
	}
	return d.out
}
