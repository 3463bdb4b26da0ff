// DESCRIPTION
//   decode.go implements the composite-to-RGB decoder: noise injection,
//   sync recovery, burst phase-lock, quadrature demodulation, bandlimit
//   equalization, bloom feedback and output-raster interpolation.
//
// AUTHOR
//   crtcore contributors

package crt

import (
	"github.com/crtcore/crtcore/device"
	"github.com/crtcore/crtcore/fixedpoint"
	"github.com/crtcore/crtcore/timing"
)

const (
	vsyncWindow = 8
	hsyncWindow = 8
)

// lcgNext advances the noise generator and returns a byte in [0, 255].
func lcgNext(rn uint32) (uint32, int32) {
	rn = 214019*rn + 140327895
	return rn, int32((rn >> 8) & 0xFF)
}

// injectNoise fills d.Inp from d.Analog, adding LCG-derived noise scaled
// by noise, and persists the LCG state on the device across calls.
func injectNoise(d *device.Device, noise int32) {
	rn := d.RandState
	for i, s := range d.Analog {
		var b int32
		rn, b = lcgNext(rn)
		n := ((b - 0x7F) * noise) >> 8
		v := int32(s) + n
		if v > 127 {
			v = 127
		} else if v < -127 {
			v = -127
		}
		d.Inp[i] = int8(v)
	}
	d.RandState = rn
}

// scanline returns the slice of Inp belonging to line n.
func scanline(d *device.Device, n int32) []int8 {
	hres := d.Geometry.HRES
	return d.Inp[n*hres : (n+1)*hres]
}

// findVSync searches lines within vsyncWindow of d.VSync for the first
// whose running sum crosses the sync threshold, returning the new vsync
// estimate and field parity (0=even, 1=odd, determined by whether the
// crossing fell in the line's second half). If no candidate crosses,
// the previous estimate is retained and field is reported as 0.
func findVSync(d *device.Device, threshScale int32) (int32, int32) {
	g := d.Geometry
	thresh := threshScale * g.Levels.Sync

	for dn := int32(-vsyncWindow); dn <= vsyncWindow; dn++ {
		n := fixedpoint.PosMod(d.VSync+dn, timing.VRES)
		line := scanline(d, n)
		sum := int32(0)
		for x, s := range line {
			sum += int32(s)
			if sum <= thresh {
				field := int32(0)
				if x >= len(line)/2 {
					field = 1
				}
				return n, field
			}
		}
	}
	return d.VSync, 0
}

// findHSync searches a window around beg for the first offset whose
// integrated sample sum crosses 4*SYNC_LEVEL.
func findHSync(line []int8, beg int32, syncLevel int32) int32 {
	thresh := 4 * syncLevel
	lo := beg - hsyncWindow
	if lo < 0 {
		lo = 0
	}
	hi := beg + hsyncWindow
	if hi > int32(len(line)) {
		hi = int32(len(line))
	}
	sum := int32(0)
	for x := lo; x < hi; x++ {
		sum += int32(line[x])
		if sum <= thresh {
			return x
		}
	}
	return beg
}

// updateCCRef advances the burst phase-lock loop's leaky integrator over
// the color-burst window of one scanline.
func updateCCRef(ref *[4]int32, line []int8, cbBeg, cbEnd int32) {
	for i := cbBeg; i < cbEnd && i < int32(len(line)); i++ {
		k := i & 3
		ref[k] = ref[k]*127/128 + int32(line[i])
	}
}

// demodWave computes the four chroma multipliers (one per pixel phase)
// from the phase-locked burst reference, rotated by the hue adjustment
// and scaled by saturation.
func demodWave(ccref [4]int32, huecs, huesn, saturation int32) [4]int32 {
	var wave [4]int32
	for pa := int32(0); pa < 4; pa++ {
		dci := ccref[(pa+1)&3] - ccref[(pa+3)&3]
		dcq := ccref[(pa+2)&3] - ccref[(pa+0)&3]
		rotated := (dci*huecs - dcq*huesn) >> 14
		wave[pa] = rotated * saturation
	}
	return wave
}

// clip255 clamps v to [0, 255].
func clip255(v int32) int32 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

// lerp linearly interpolates between a and b using a Q12 fraction.
func lerp(a, b, frac int32) int32 {
	return a + ((b-a)*frac)>>12
}

// degToT14 converts a hue in degrees [0, 360) to T14 angle units.
func degToT14(deg int32) int32 {
	return deg * fixedpoint.T14TwoPi / 360
}

// Decode reads d.Analog through d.Inp into d.Out, per spec.md section
// 4.F. noise is the per-sample LCG amplitude (0 disables noise, clamped
// non-negative by callers via Settings.Clamp).
func Decode(d *device.Device, noise int32) {
	g := d.Geometry
	injectNoise(d, noise)

	threshScale := int32(100)
	if g.NESHires {
		threshScale = 150
	}
	if d.Features.DoVsync {
		vs, _ := findVSync(d, threshScale)
		d.VSync = vs
	}

	huesn, huecs := fixedpoint.Sin14(degToT14(d.Settings.Hue)), fixedpoint.Cos14(degToT14(d.Settings.Hue))
	saturation := d.Settings.Saturation
	contrast := d.Settings.Contrast
	bright := d.Settings.Brightness<<4 + d.Settings.BlackPoint

	ccref := [4]int32{d.CCF[0] << 7, d.CCF[1] << 7, d.CCF[2] << 7, d.CCF[3] << 7}
	prevE := int32(0)

	for row := int32(0); row < timing.CRTLines; row++ {
		line := scanline(d, timing.CRTTop+row)

		hsync := d.HSync
		if d.Features.DoHsync {
			hsync = findHSync(line, d.HSync, g.Levels.Sync)
			d.HSync = hsync
		}

		updateCCRef(&ccref, line, g.CBBeg, g.CBBeg+timing.CBCycles*g.CBFreq)
		wave := demodWave(ccref, huecs, huesn, saturation)

		lineW := g.AVLen
		if d.Features.DoBloom {
			maxE := (128 + noise/2) * g.AVLen
			sum := int32(0)
			for x := g.AVBeg; x < g.HRES && x < int32(len(line)); x++ {
				sum += int32(line[x]) + 128
			}
			dev := sum - maxE/2
			prevE += (dev - prevE) >> 4
			lineW = g.AVLen*112/128 + prevE/512
		}

		scanL := hsync + (g.AVLen-lineW)/2
		scanR := scanL + lineW
		if scanL < 0 {
			scanL = 0
		}
		if scanR > int32(len(line)) {
			scanR = int32(len(line))
		}

		d.EQY.ResetEQ()
		d.EQI.ResetEQ()
		d.EQQ.ResetEQ()

		span := scanR - scanL
		if span <= 1 {
			continue
		}
		yiq := make([]int32, span*3)
		for i := int32(0); i < span; i++ {
			sig := int32(line[scanL+i])
			yiq[i*3+0] = d.EQY.StepEQ(sig+bright) << 4
			yiq[i*3+1] = d.EQI.StepEQ((sig*wave[i&3])>>9) >> 3
			yiq[i*3+2] = d.EQQ.StepEQ((sig*wave[(i+3)&3])>>9) >> 3
		}

		beg := row * int32(d.OutH) / timing.CRTLines
		end := (row + 1) * int32(d.OutH) / timing.CRTLines
		if end <= beg {
			end = beg + 1
		}
		if end > int32(d.OutH) {
			end = int32(d.OutH)
		}

		dx := int32(0)
		if d.OutW > 0 {
			dx = (span << 12) / int32(d.OutW)
		}

		rowPixels := make([]uint32, d.OutW)
		pos := int32(0)
		for ox := 0; ox < d.OutW; ox++ {
			idx := pos >> 12
			frac := pos & 0xFFF
			if idx >= span-1 {
				idx = span - 2
				if idx < 0 {
					idx = 0
				}
				frac = 0
			}
			y := lerp(yiq[idx*3+0], yiq[(idx+1)*3+0], frac)
			iv := lerp(yiq[idx*3+1], yiq[(idx+1)*3+1], frac)
			qv := lerp(yiq[idx*3+2], yiq[(idx+1)*3+2], frac)

			r := clip255(((y + 3879*iv + 2556*qv) >> 12) * contrast >> 8)
			gr := clip255(((y - 1126*iv - 2605*qv) >> 12) * contrast >> 8)
			b := clip255(((y - 4530*iv + 7021*qv) >> 12) * contrast >> 8)

			rowPixels[ox] = uint32(r)<<16 | uint32(gr)<<8 | uint32(b)
			pos += dx
		}

		for y := beg; y < end; y++ {
			base := int(y) * d.OutW
			for ox := 0; ox < d.OutW; ox++ {
				if base+ox >= len(d.Out) {
					break
				}
				a := d.Out[base+ox]
				bpx := rowPixels[ox]
				d.Out[base+ox] = ((a & 0xFEFEFF) >> 1) + ((bpx & 0xFEFEFF) >> 1)
			}
		}
	}

	d.VSync = fixedpoint.PosMod(d.VSync, timing.VRES)
}
