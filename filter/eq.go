// DESCRIPTION
//   eq.go implements the three-band integer equalizer used to bandlimit
//   and reshape the Y/I/Q signal paths of the composite codec.
//
// AUTHOR
//   crtcore contributors

// Package filter provides the fixed-point DSP building blocks (a
// three-band equalizer and a one-pole IIR low-pass) shared by the
// encoder and decoder signal paths. Every operation here is integer-only,
// per the codec's no-floating-point invariant.
package filter

import "github.com/crtcore/crtcore/fixedpoint"

// FracBits is the fixed-point fraction width (Q16) used for all gain and
// pole coefficients in this package. It is fixed for the lifetime of a
// process: changing it requires recomputing every coefficient derived
// from it, so it is not exposed as a runtime parameter.
const FracBits = 16

// Q16One is 1.0 in Q16.
const Q16One = 1 << FracBits

// EQ is a three-band equalizer built from a cascade of four one-pole
// low-pass sections for the low band and four for the high band. The mid
// band is the difference between the two cascades' final stage; the high
// band is the difference between a 3-sample-delayed copy of the input
// and the high-cutoff cascade's output.
type EQ struct {
	lf, hf               int32 // pole coefficients, Q16
	gLo, gMid, gHi       int32 // band gains, Q16
	lo, hi               [4]int32
	hist                 [4]int32
	histPos              int
}

// poleCoeff derives a one-pole coefficient at Q16 from a cutoff frequency
// f and sample rate as 2*sin(pi*f/rate), using the fixed-point sine table:
// Sin14 returns a result scaled to 0x8000 (Q15), so doubling it yields
// sin at Q16 and doubling again yields 2*sin at Q16.
func poleCoeff(f, rate int32) int32 {
	// angle = pi * f / rate radians; in T14 units, a half-turn of pi is
	// t14Quarter*2 == T14TwoPi/2, so pi*f/rate radians is
	// (f/rate) * (T14TwoPi/2) in T14 units.
	n := int32((int64(f) * fixedpoint.T14TwoPi / 2) / int64(rate))
	return 4 * fixedpoint.Sin14(n)
}

// InitEQ (re)configures an EQ with cutoffs f_lo and f_hi expressed as
// fractions of rate, and band gains at Q16 (Q16One == unity gain).
func (e *EQ) InitEQ(fLo, fHi, rate, gLo, gMid, gHi int32) {
	e.lf = poleCoeff(fLo, rate)
	e.hf = poleCoeff(fHi, rate)
	e.gLo, e.gMid, e.gHi = gLo, gMid, gHi
	e.ResetEQ()
}

// ResetEQ zeroes all cascade stages and the history buffer, without
// touching the configured coefficients.
func (e *EQ) ResetEQ() {
	e.lo = [4]int32{}
	e.hi = [4]int32{}
	e.hist = [4]int32{}
	e.histPos = 0
}

// StepEQ advances both cascades by one sample and returns the gain-summed
// band output.
func (e *EQ) StepEQ(s int32) int32 {
	// A 4-deep ring buffer read-before-write yields a 3-sample delay: the
	// slot one ahead of the write position was last written 3 steps ago.
	delayed := e.hist[(e.histPos+1)&3]
	e.hist[e.histPos] = s
	e.histPos = (e.histPos + 1) & 3

	l := s
	for i := range e.lo {
		e.lo[i] += ((l - e.lo[i]) * e.lf) >> FracBits
		l = e.lo[i]
	}
	fL3 := e.lo[3]

	h := s
	for i := range e.hi {
		e.hi[i] += ((h - e.hi[i]) * e.hf) >> FracBits
		h = e.hi[i]
	}
	fH3 := e.hi[3]

	low := fL3
	mid := fH3 - fL3
	high := delayed - fH3

	return (low*e.gLo + mid*e.gMid + high*e.gHi) >> FracBits
}
