package fixedpoint

import "testing"

func TestSinCos14Bounds(t *testing.T) {
	for n := int32(-40000); n < 40000; n += 37 {
		var s, c int32
		SinCos14(&s, &c, n)
		if s < -0x8000 || s > 0x8000 {
			t.Fatalf("SinCos14(%d): sin out of range: %d", n, s)
		}
		if c < -0x8000 || c > 0x8000 {
			t.Fatalf("SinCos14(%d): cos out of range: %d", n, c)
		}
	}
}

// TestSinCos14Identity checks s^2 + c^2 is close to the expected unit
// magnitude (scaled to 0x8000^2), allowing for the interpolation error
// inherent in a 17-point quarter-wave table: midway between table points
// the chord falls short of the circle by a factor of cos(pi/64), which
// leaves s^2+c^2 up to about 2.7e6 below 0x40000000.
func TestSinCos14Identity(t *testing.T) {
	const want = 0x40000000
	const tol = 0x300000 // 3145728, above the table's worst case of ~2.74e6
	for n := int32(0); n < T14TwoPi; n += 13 {
		var s, c int32
		SinCos14(&s, &c, n)
		got := s*s + c*c
		diff := got - want
		if diff < 0 {
			diff = -diff
		}
		if diff > tol {
			t.Errorf("n=%d: s=%d c=%d s^2+c^2=%d, want ~%d (diff %d)", n, s, c, got, want, diff)
		}
	}
}

// TestSinCos14HighBitsIgnored confirms the result depends only on the low
// 14 bits of n.
func TestSinCos14HighBitsIgnored(t *testing.T) {
	for _, n := range []int32{0, 17, 4096, 9000, 16383} {
		var s0, c0 int32
		SinCos14(&s0, &c0, n)
		for _, mult := range []int32{1, 2, 3, -1, -5} {
			shifted := n + mult*T14TwoPi
			var s1, c1 int32
			SinCos14(&s1, &c1, shifted)
			if s0 != s1 || c0 != c1 {
				t.Errorf("n=%d shifted by %d*2pi: got (%d,%d) want (%d,%d)", n, mult, s1, c1, s0, c0)
			}
		}
	}
}

func TestSinCos14Symmetry(t *testing.T) {
	// sin(n) == cos(n - quarter turn) for a table built on shared samples.
	for n := int32(0); n < T14TwoPi; n += 101 {
		s := Sin14(n)
		c := Cos14(n - t14Quarter)
		if s != c {
			t.Errorf("n=%d: Sin14=%d, Cos14(n-quarter)=%d", n, s, c)
		}
	}
}

func TestPosMod(t *testing.T) {
	cases := []struct{ x, n, want int32 }{
		{5, 3, 2},
		{-5, 3, 1},
		{-1, 4, 3},
		{0, 7, 0},
		{-8, 4, 0},
		{7, 7, 0},
	}
	for _, c := range cases {
		got := PosMod(c.x, c.n)
		if got != c.want {
			t.Errorf("PosMod(%d,%d) = %d, want %d", c.x, c.n, got, c.want)
		}
		if got < 0 || got >= c.n {
			t.Errorf("PosMod(%d,%d) = %d out of [0,%d)", c.x, c.n, got, c.n)
		}
	}
}

func TestPosModRange(t *testing.T) {
	for n := int32(1); n < 20; n++ {
		for x := int32(-100); x < 100; x++ {
			got := PosMod(x, n)
			if got < 0 || got >= n {
				t.Fatalf("PosMod(%d,%d) = %d out of range [0,%d)", x, n, got, n)
			}
		}
	}
}

func TestExp11Identity(t *testing.T) {
	// exp(0) == 1.0 in Q11.
	if got := Exp11(0); got != Q11One {
		t.Errorf("Exp11(0) = %d, want %d", got, Q11One)
	}
}

func TestExp11Monotonic(t *testing.T) {
	prev := Exp11(-ExpPiQ11 * 2)
	for x := -ExpPiQ11 * 2; x <= ExpPiQ11*2; x += 97 {
		got := Exp11(int32(x))
		if got < prev {
			t.Errorf("Exp11 not monotonic at x=%d: got %d < prev %d", x, got, prev)
		}
		prev = got
	}
}

func TestExp11NegativeIsReciprocal(t *testing.T) {
	// exp(-x) * exp(x) should be close to 1.0 in Q11 (2048*2048), within
	// integer rounding.
	for _, x := range []int32{100, 500, 1000, 2000, 4000} {
		pos := Exp11(x)
		neg := Exp11(-x)
		prod := int64(pos) * int64(neg)
		want := int64(Q11One) * int64(Q11One)
		diff := prod - want
		if diff < 0 {
			diff = -diff
		}
		// Allow a generous relative tolerance; this is a Taylor-series
		// approximation, not a transcendental library.
		if diff > want/20 {
			t.Errorf("Exp11(%d)*Exp11(%d) = %d, want ~%d", x, -x, prod, want)
		}
	}
}
