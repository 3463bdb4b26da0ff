// DESCRIPTION
//   encode_rgb.go implements the generic RGB-to-composite encoder
//   (spec.md section 4.D): it writes a full composite waveform into a
//   device.Device's Analog buffer from a packed-RGB source image.
//
// AUTHOR
//   crtcore contributors

package crt

import (
	"github.com/crtcore/crtcore/device"
	"github.com/crtcore/crtcore/timing"
)

// RGBSettings describes one frame of RGB source data to encode, plus the
// encoder options spec.md section 6 lists for encode_rgb.
type RGBSettings struct {
	// RGB is the packed 0x00RRGGBB source image, row-major, W*H samples.
	RGB []uint32
	W, H int

	// Raw disables rescaling: the source is written at its natural size,
	// clipped to the active-video dimensions.
	Raw bool

	// AsColor enables color-burst insertion and chroma modulation; when
	// false, the encoder writes a monochrome (Y-only) signal.
	AsColor bool

	// Field selects interlaced scan parity: 0 = even, 1 = odd.
	Field int32

	// CC is the 4-sample color-carrier template and CCS its scale,
	// letting the caller choose subcarrier phase without floating point.
	CC  [4]int32
	CCS int32
}

// ccPhase returns the per-line chroma polarity used to modulate I/Q. For
// the checkered pattern (the default, 227.5 cycles/line) this alternates
// +/-1 every line, which is the half-cycle-per-line phase flip that
// produces the dot-crawl artifact described in spec.md's GLOSSARY. Other
// patterns hold a constant polarity.
func ccPhase(pattern timing.ChromaPattern, line int32) int32 {
	if pattern == timing.ChromaCheckered && line%2 != 0 {
		return -1
	}
	return 1
}

// rgbToYIQ converts one packed 0x00RRGGBB sample to integer YIQ using
// the coefficients from spec.md section 4.D.
func rgbToYIQ(px uint32) (y, i, q int32) {
	r := int32((px >> 16) & 0xFF)
	g := int32((px >> 8) & 0xFF)
	b := int32(px & 0xFF)
	y = (19595*r + 38470*g + 7471*b) >> 15
	i = (39059*r - 18022*g - 21103*b) >> 15
	q = (13894*r - 34275*g + 20382*b) >> 15
	return
}

// destRect computes the destination active-video rectangle (xo, yo,
// destw, desth) for one frame, per spec.md section 4.D.
func destRect(g *timing.Geometry, s *RGBSettings) (xo, yo, destw, desth int32) {
	if s.Raw {
		destw = minI32(int32(s.W), g.AVLen)
		desth = minI32(int32(s.H), timing.CRTLines*64500/65536)
	} else {
		destw = g.AVLen
		desth = timing.CRTLines
	}
	xo = g.AVBeg + 4 + (g.AVLen-destw)/2
	xo &^= 3
	yo = timing.CRTTop + 4 + (timing.CRTLines-desth)/2
	return
}

func minI32(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}

// equalizingBounds and vsyncBounds are the percent-of-HRES boundaries
// for the approximated equalizing/serration pulses of spec.md section
// 4.D and section 9 (these are explicitly ad-hoc, not broadcast-legal).
var equalizingBounds = [4]int32{4, 50, 54, 100}
var vsyncBoundsEven = [4]int32{46, 50, 96, 100}
var vsyncBoundsOdd = [4]int32{4, 50, 96, 100}

// writeSegments paints line (a single scanline's worth of samples)
// according to percent-of-hres boundaries, alternating SYNC/BLANK
// starting with SYNC.
func writeSegments(line []int8, hres int32, bounds [4]int32, lv timing.Levels) {
	segLevel := [4]int32{lv.Sync, lv.Blank, lv.Sync, lv.Blank}
	prev := int32(0)
	for i := 0; i < 4; i++ {
		end := bounds[i] * hres / 100
		lvl := device.Clip8(segLevel[i])
		for x := prev; x < end && x < int32(len(line)); x++ {
			line[x] = lvl
		}
		prev = end
	}
}

// writeBlankSyncActive writes the standard non-special-line layout: FP
// (blank), SYNC, breezeway/burst/back-porch (blank, with an optional
// color-burst window), up to AVBeg. The active-video region itself is
// left untouched for the caller to fill.
func writeBlankSyncActive(line []int8, g *timing.Geometry, lineIdx int32, asColor bool, cc [4]int32, ccs int32) {
	lv := g.Levels
	for x := g.FPBeg; x < g.SyncBeg; x++ {
		line[x] = device.Clip8(lv.Blank)
	}
	for x := g.SyncBeg; x < g.BWBeg; x++ {
		line[x] = device.Clip8(lv.Sync)
	}
	for x := g.BWBeg; x < g.AVBeg; x++ {
		line[x] = device.Clip8(lv.Blank)
	}
	if !asColor {
		return
	}
	cbEnd := g.CBBeg + timing.CBCycles*g.CBFreq
	for t := g.CBBeg; t < cbEnd && t < g.AVBeg; t++ {
		lvl := lv.Blank + cc[t&3]*lv.Burst/ccs
		line[t] = device.Clip8(lvl)
	}
}

// lineBase returns the slice of Analog belonging to scanline n.
func lineBase(d *device.Device, n int32) []int8 {
	hres := d.Geometry.HRES
	return d.Analog[n*hres : (n+1)*hres]
}

// EncodeRGB writes a full composite-waveform frame into d.Analog from an
// RGB source image, per spec.md section 4.D.
func EncodeRGB(d *device.Device, s RGBSettings) {
	g := d.Geometry
	field := s.Field & 1
	xo, yo, destw, desth := destRect(g, &s)

	for n := int32(0); n < timing.VRES; n++ {
		line := lineBase(d, n)

		switch {
		case n < 4 || (n >= 7 && n < 10):
			writeSegments(line, g.HRES, equalizingBounds, g.Levels)
			continue
		case n >= 4 && n < 7:
			bounds := vsyncBoundsEven
			if field == 1 {
				bounds = vsyncBoundsOdd
			}
			writeSegments(line, g.HRES, bounds, g.Levels)
			continue
		}

		writeBlankSyncActive(line, g, n, s.AsColor, s.CC, s.CCS)

		y := n - yo
		if y < 0 || y >= desth || destw <= 0 {
			for x := g.AVBeg; x < g.HRES; x++ {
				line[x] = device.Clip8(g.Levels.Blank)
			}
			continue
		}

		syA := y * int32(s.H) / desth
		syB := syA + int32(s.H)/(2*desth) + 1
		if syB >= int32(s.H) {
			syB = int32(s.H) - 1
		}

		phase := ccPhase(g.Pattern, n)
		white := g.Levels.White * d.Settings.WhitePoint / 100

		for x := int32(0); x < g.HRES; x++ {
			if x < xo || x >= xo+destw {
				if x >= g.AVBeg {
					line[x] = device.Clip8(g.Levels.Blank)
				}
				continue
			}
			sx := (x - xo) * int32(s.W) / destw
			pxA := s.RGB[syA*int32(s.W)+sx]
			pxB := s.RGB[syB*int32(s.W)+sx]

			yA, iA, qA := rgbToYIQ(pxA)
			yB, iB, qB := rgbToYIQ(pxB)
			yy := yA + yB
			ii := (iA + iB) / 2
			qq := (qA + qB) / 2

			yf := d.IIRY.Step(yy)
			iff := d.IIRI.Step(ii)
			qf := d.IIRQ.Step(qq)
			yf = applyVHSRinging(d, yf, yy)

			sig := yf
			if s.AsColor {
				cc0 := s.CC[x&3]
				cc3 := s.CC[(x+3)&3]
				chroma := (iff*cc0 + qf*cc3) / s.CCS
				sig += phase * chroma
			}

			out := sig * white / (2 * 255)
			if out < 0 {
				out = 0
			}
			if out > 110 {
				out = 110
			}
			line[x] = device.Clip8(out)
		}
	}

	d.HSync = g.SyncBeg
}

// applyVHSRinging reshapes a NtscVhs device's luma path: the raw sample is
// also fed through the faster IIRYRing low-pass, and half the difference
// between that and the slow IIRY output is added back onto IIRY's output.
// The result is the average of the two low-passes, a quicker luma rise
// than IIRY alone that does not overshoot the input level. A no-op for
// every other SystemKind.
func applyVHSRinging(d *device.Device, yf, raw int32) int32 {
	if d.Kind != timing.NtscVhs {
		return yf
	}
	fast := d.IIRYRing.Step(raw)
	return yf + (fast-yf)>>1
}

// EncodeRGBFullscreen is crt_2ntscFS: a simplified variant for test
// patterns that does not blend A/B source rows and does not rescale the
// source to the active-video rectangle; the source is written 1:1,
// clipped to the active region.
func EncodeRGBFullscreen(d *device.Device, s RGBSettings) {
	g := d.Geometry
	destw := minI32(int32(s.W), g.AVLen)
	desth := minI32(int32(s.H), timing.CRTLines)
	xo := g.AVBeg
	yo := int32(timing.CRTTop)

	for n := int32(0); n < timing.VRES; n++ {
		line := lineBase(d, n)
		switch {
		case n < 4 || (n >= 7 && n < 10):
			writeSegments(line, g.HRES, equalizingBounds, g.Levels)
			continue
		case n >= 4 && n < 7:
			writeSegments(line, g.HRES, vsyncBoundsEven, g.Levels)
			continue
		}
		writeBlankSyncActive(line, g, n, s.AsColor, s.CC, s.CCS)

		y := n - yo
		if y < 0 || y >= desth {
			for x := g.AVBeg; x < g.HRES; x++ {
				line[x] = device.Clip8(g.Levels.Blank)
			}
			continue
		}
		phase := ccPhase(g.Pattern, n)
		white := g.Levels.White * d.Settings.WhitePoint / 100

		for x := int32(0); x < g.HRES; x++ {
			if x < xo || x >= xo+destw {
				if x >= g.AVBeg {
					line[x] = device.Clip8(g.Levels.Blank)
				}
				continue
			}
			px := s.RGB[y*int32(s.W)+(x-xo)]
			yy, ii, qq := rgbToYIQ(px)

			yf := d.IIRY.Step(yy * 2)
			iff := d.IIRI.Step(ii)
			qf := d.IIRQ.Step(qq)
			yf = applyVHSRinging(d, yf, yy*2)

			sig := yf
			if s.AsColor {
				cc0 := s.CC[x&3]
				cc3 := s.CC[(x+3)&3]
				chroma := (iff*cc0 + qf*cc3) / s.CCS
				sig += phase * chroma
			}
			out := sig * white / (2 * 255)
			if out < 0 {
				out = 0
			}
			if out > 110 {
				out = 110
			}
			line[x] = device.Clip8(out)
		}
	}

	d.HSync = g.SyncBeg
}
