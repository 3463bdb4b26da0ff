// DESCRIPTION
//   spectrum.go computes the frequency spectrum of one scanline's analog
//   samples, a diagnostic aid for checking that the chroma subcarrier
//   and its harmonics land where the codec geometry expects them.
//
// AUTHOR
//   crtcore contributors

// Package diag provides off-core diagnostic tooling (spectrum analysis,
// waveform plotting) for inspecting a device's encoded composite signal.
// Nothing here participates in the codec's encode/decode path; it is
// read-only tooling built for humans, so unlike codec/crt it is free to
// use floating point.
package diag

import (
	"math"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/stat"
)

// Spectrum is the magnitude spectrum of one scanline, indexed by FFT bin.
type Spectrum struct {
	SampleRate float64
	Mag        []float64
}

// BinHz returns the center frequency of bin i.
func (s Spectrum) BinHz(i int) float64 {
	return float64(i) * s.SampleRate / float64(2*len(s.Mag))
}

// PeakBin returns the index of the highest-magnitude bin, excluding DC.
func (s Spectrum) PeakBin() int {
	peak := 1
	for i := 2; i < len(s.Mag); i++ {
		if s.Mag[i] > s.Mag[peak] {
			peak = i
		}
	}
	return peak
}

// NoiseFloor returns the mean and standard deviation of every bin's
// magnitude excluding DC and the peak bin, a rough estimate of how far the
// subcarrier tone stands above the surrounding spectral noise.
func (s Spectrum) NoiseFloor() (mean, stddev float64) {
	peak := s.PeakBin()
	rest := make([]float64, 0, len(s.Mag))
	for i, m := range s.Mag {
		if i == peak || i == 0 {
			continue
		}
		rest = append(rest, m)
	}
	if len(rest) == 0 {
		return 0, 0
	}
	mean, stddev = stat.MeanStdDev(rest, nil)
	return mean, stddev
}

// AnalyzeLine computes the magnitude spectrum of one scanline of signed
// 8-bit composite samples, sampled at sampleRate Hz.
func AnalyzeLine(line []int8, sampleRate float64) Spectrum {
	re := make([]float64, len(line))
	for i, s := range line {
		re[i] = float64(s)
	}

	spec := fft.FFTReal(re)
	n := len(spec)/2 + 1
	mag := make([]float64, n)
	for i := 0; i < n; i++ {
		c := spec[i]
		mag[i] = math.Sqrt(real(c)*real(c) + imag(c)*imag(c))
	}
	return Spectrum{SampleRate: sampleRate, Mag: mag}
}
