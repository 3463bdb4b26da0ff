// DESCRIPTION
//   nes_tables.go builds the lookup tables EncodeNES uses to turn a 9-bit
//   PPU pixel into a square-wave subcarrier sample: the 2x2x64 IRE level
//   table, the per-phase-pair emphasis mask, and the dot-crawl-offset
//   (lo, po) pairs.
//
// AUTHOR
//   crtcore contributors

package crt

// nesActive maps (phase>>1) mod 6 to the emphasis-bit mask it darkens.
// Bits 6/7/8 of a PPU pixel are the R/G/B emphasis bits; each is active
// (darkening) across three of the six phase pairs in a revolution.
var nesActive = [6]int32{0x0C0, 0x040, 0x140, 0x100, 0x180, 0x080}

// lumHigh and lumLow are the per-luminance-tier square-wave amplitudes
// (Q12-ish units, pre-scaling) for a chroma color's high and low half
// cycle. Tier 3 (the $30-$3F row, top luminance) saturates near full white.
var lumHigh = [4]int32{1200, 1950, 2900, 4095}
var lumLow = [4]int32{250, 550, 1050, 1850}

// emphFactor attenuates both halves of the square wave by 3/4 when the
// corresponding emphasis bit is active, in Q12.
const emphFactor = 3072

// ireLevels is built once at package init: ireLevels[level][emphasis][idx]
// where idx = p&0x3F (hue in the low nibble, luminance tier in bits 4-5).
var ireLevels = buildIRELevels()

func buildIRELevels() [2][2][64]int32 {
	var t [2][2][64]int32
	for idx := int32(0); idx < 64; idx++ {
		hue := idx & 0x0F
		lum := (idx >> 4) & 0x3

		var hi, lo int32
		if hue == 0 {
			// Gray column: flat output, no chroma modulation.
			hi, lo = lumHigh[lum], lumHigh[lum]
		} else {
			// $0D ("always low") and the chroma hues all use the same
			// two-level table; squareSample decides which level a given
			// hue/phase combination selects. $0E/$0F bypass this table.
			hi, lo = lumHigh[lum], lumLow[lum]
		}

		t[1][0][idx] = hi
		t[0][0][idx] = lo
		t[1][1][idx] = hi * emphFactor / 4096
		t[0][1][idx] = lo * emphFactor / 4096
	}
	return t
}

// squareLevel picks the high (1) or low (0) half of the square wave for
// hue at the given 12-step phase: gray is always high, $0D is always
// low, and the remaining chroma hues each claim a 6-step-wide window of
// the 12-step revolution, offset by their own index.
func squareLevel(hue, phase int32) int32 {
	switch hue {
	case 0:
		return 1
	case 0x0D:
		return 0
	}
	d := (hue + phase) % 12
	if d < 0 {
		d += 12
	}
	if d < 6 {
		return 1
	}
	return 0
}

// squareSample computes one subcarrier-phase sample of pixel p's
// waveform, per spec.md section 4.E. $0E and $0F are the black columns
// and bypass the level/emphasis table entirely.
func squareSample(p, phase int32) int32 {
	idx := p & 0x3F
	hue := idx & 0x0F
	if hue == 0x0E || hue == 0x0F {
		return 0
	}

	emphBits := p & 0x1C0
	mask := nesActive[(phase>>1)%6]
	emphasis := int32(0)
	if emphBits&mask != 0 {
		emphasis = 1
	}
	level := squareLevel(hue, phase)
	return ireLevels[level][emphasis][idx]
}

// nesDotCrawl is the hard-coded dot_crawl_offset table (spec.md section
// 4.E): lo is the starting line-phase offset for the frame, po is the
// color-burst sample offset used to index s.cc.
var nesDotCrawl = [3]struct{ lo, po int32 }{
	{0, 0},
	{4, 1},
	{8, 2},
}
