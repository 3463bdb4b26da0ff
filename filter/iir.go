// DESCRIPTION
//   iir.go implements the one-pole integer low-pass filter used to
//   bandlimit Y/I/Q ahead of subcarrier modulation in the generic
//   RGB encoder.
//
// AUTHOR
//   crtcore contributors

package filter

import "github.com/crtcore/crtcore/fixedpoint"

// IIR is a one-pole low-pass filter: h += ((s - h) * c) >> FracBits,
// where c = 1 - exp(-pi * cutoff / rate) at Q16. A small c (low cutoff
// relative to rate) means heavy smoothing; c approaching 1.0 (cutoff
// approaching rate) means the filter is nearly transparent.
type IIR struct {
	c int32
	h int32
}

// NewIIR builds an IIR configured for the given cutoff against a
// reference rate, both expressed in the same units (e.g. Hz).
func NewIIR(cutoff, rate int32) *IIR {
	f := &IIR{}
	f.Init(cutoff, rate)
	return f
}

// Init (re)configures the filter's pole coefficient without touching its
// running state.
func (f *IIR) Init(cutoff, rate int32) {
	// angle (Q11) = -pi * cutoff / rate
	angle := int32(-(int64(fixedpoint.ExpPiQ11) * int64(cutoff)) / int64(rate))
	e := fixedpoint.Exp11(angle)
	// c = (1 - e) in Q11, rescaled to Q16.
	f.c = (fixedpoint.Q11One - e) << (FracBits - 11)
}

// Reset zeroes the filter's running state, leaving its coefficient
// untouched.
func (f *IIR) Reset() { f.h = 0 }

// Step advances the filter by one sample and returns the new output.
func (f *IIR) Step(s int32) int32 {
	f.h += ((s - f.h) * f.c) >> FracBits
	return f.h
}
