// DESCRIPTION
//   fixedpoint.go provides the integer-only sine/cosine table, fixed-point
//   exponential, and non-negative modulus used throughout the composite
//   video codec's DSP chain. No function in this package touches a float.
//
// AUTHOR
//   crtcore contributors

// Package fixedpoint provides the integer math primitives (14-bit
// sine/cosine, Q11 exponential, positive modulus) that the rest of the
// codec builds its fixed-point DSP chain on.
package fixedpoint

// T14Bits is the number of bits of angle resolution used by SinCos14; one
// full revolution is represented by T14TwoPi distinct values of n.
const (
	T14Bits   = 14
	T14Mask   = 1<<T14Bits - 1 // 0x3FFF
	T14TwoPi  = 1 << T14Bits   // 16384, one full revolution
	t14Quarter = T14TwoPi / 4  // 4096, one quadrant
)

// quarterWave holds 17 samples of sin(theta) for theta in [0, pi/2],
// scaled to a 15-bit amplitude (0x7FFF). Intermediate angles are found by
// linear interpolation on the low 8 bits of the reduced input, per the
// contract in spec section 4.A.
var quarterWave = [17]int32{
	0, 3212, 6393, 9512, 12539, 15446, 18204, 20787,
	23170, 25329, 27245, 28898, 30273, 31356, 32137, 32609,
	32767,
}

// interpQuarter linearly interpolates quarterWave at r, where r is in
// [0, t14Quarter]. Values of r outside that range are not valid inputs;
// callers are expected to have already reduced to a single quadrant.
func interpQuarter(r int32) int32 {
	idx := r >> 8
	if idx >= 16 {
		return quarterWave[16]
	}
	frac := r & 0xFF
	lo, hi := quarterWave[idx], quarterWave[idx+1]
	return lo + ((hi-lo)*frac)>>8
}

// SinCos14 writes sin(n) and cos(n) to *s and *c, where n is an angle in
// units of 1/16384th of a revolution (T14TwoPi == one full turn). Only the
// low 14 bits of n affect the result. Both outputs lie in
// [-0x8000, 0x8000].
func SinCos14(s, c *int32, n int32) {
	nn := n & T14Mask
	quadrant := nn >> 12
	r := nn & (t14Quarter - 1)

	qs := interpQuarter(r)
	qc := interpQuarter(t14Quarter - r)

	switch quadrant {
	case 0:
		*s, *c = qs, qc
	case 1:
		*s, *c = qc, -qs
	case 2:
		*s, *c = -qs, -qc
	default: // 3
		*s, *c = -qc, qs
	}
}

// Sin14 and Cos14 are convenience wrappers around SinCos14 for callers
// that only need one of the two outputs.
func Sin14(n int32) int32 {
	var s, c int32
	SinCos14(&s, &c, n)
	return s
}

func Cos14(n int32) int32 {
	var s, c int32
	SinCos14(&s, &c, n)
	return c
}

// Q11One is 1.0 in the Q11 fixed-point format used by Exp11.
const Q11One = 1 << 11 // 2048

// ExpPiQ11 is an approximation of pi in Q11 (pi*2048), used by callers to
// bound the domain over which Exp11 is accurate (spec section 4.A:
// accurate to within +/-1 ULP for |x| <= 4*EXP_PI).
const ExpPiQ11 = 6434

// Exp11 computes exp(x/2048) in Q11 fixed point (2048 represents 1.0),
// using range reduction by repeated halving followed by a Taylor series
// on the reduced argument and repeated squaring back out. Series
// truncation stops once a term underflows to zero.
func Exp11(x int32) int32 {
	neg := x < 0
	if neg {
		x = -x
	}

	// Reduce x into [0, Q11One] by halving, tracking how many times we
	// halved so the result can be squared back up afterwards.
	halvings := 0
	xr := x
	for xr > Q11One {
		xr >>= 1
		halvings++
	}

	var sum int64 = Q11One
	var term int64 = Q11One
	for n := int64(1); n <= 24; n++ {
		term = term * int64(xr) / Q11One / n
		if term == 0 {
			break
		}
		sum += term
	}

	for i := 0; i < halvings; i++ {
		sum = (sum * sum) / Q11One
	}

	if sum == 0 {
		sum = 1
	}

	if neg {
		return int32((int64(Q11One) * int64(Q11One)) / sum)
	}
	return int32(sum)
}

// PosMod returns the mathematical (non-negative) modulus of x by n, for
// any integer x and any n > 0: the result always satisfies
// 0 <= PosMod(x, n) < n.
func PosMod(x, n int32) int32 {
	m := x % n
	if m < 0 {
		m += n
	}
	return m
}
