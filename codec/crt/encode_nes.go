// DESCRIPTION
//   encode_nes.go implements the dedicated NES PPU encoder: it writes the
//   composite waveform straight from 9-bit paletted pixels using a
//   square-wave subcarrier model, without ever forming RGB or YIQ.
//
// AUTHOR
//   crtcore contributors

package crt

import (
	"github.com/crtcore/crtcore/device"
	"github.com/crtcore/crtcore/timing"
)

// NESSettings describes one field of PPU output to encode.
type NESSettings struct {
	// Data is the 9-bit paletted source (6-bit color index, 3-bit
	// emphasis), row-major, 256*h samples.
	Data []int32
	H    int

	// DotCrawlOffset selects the (lo, po) pair from nesDotCrawl.
	DotCrawlOffset int32

	// DotSkipped models the odd-frame short-line cycle: the very first
	// line of the frame advances the subcarrier phase by one extra step
	// before rendering, which is what a real NES does on alternating
	// frames to keep chroma phase locked across fields.
	DotSkipped bool

	// BorderData is the pixel painted outside the 256-dot active region
	// and on any line with no corresponding source row, so the border
	// color shows across the whole field (spec.md section 9, resolving
	// the encoder's two optimization variants in favor of the one that
	// always paints background on every line).
	BorderData int32

	CC  [4]int32
	CCS int32

	WhitePoint int32 // percent, defaults to 100 if zero
}

const nesActiveDots = 256

// EncodeNES writes one field of NES PPU output into d.Analog, per
// spec.md section 4.E.
func EncodeNES(d *device.Device, s NESSettings) {
	g := d.Geometry
	lo, po := nesDotCrawl[s.DotCrawlOffset%3].lo, nesDotCrawl[s.DotCrawlOffset%3].po

	whitePoint := s.WhitePoint
	if whitePoint == 0 {
		whitePoint = 100
	}
	whiteScale := g.Levels.White * whitePoint / 100
	blackPoint := d.Settings.BlackPoint

	// linePhase is seeded once from lo and then free-runs for the rest
	// of the field: it advances by 3 and wraps mod 12 after every
	// sample (below), carrying over from one line into the next rather
	// than being reseeded to lo at each line boundary. 341 PPU dots is
	// not a multiple of 12, so resetting per line would itself break
	// phase continuity across lines; not resetting is what keeps the
	// dot-crawl pattern coherent down the field.
	linePhase := lo
	if s.DotSkipped {
		linePhase = (linePhase + 1) % 12
	}

	for n := int32(0); n < timing.VRES; n++ {
		line := lineBase(d, n)

		if n >= 259 {
			// Abbreviated NES vertical sync: BLANK over the front porch,
			// then SYNC until PPU-pixel 327 of the 341-dot line, then BLANK.
			syncEnd := 327 * g.HRES / 341
			for x := int32(0); x < g.HRES; x++ {
				switch {
				case x < g.SyncBeg:
					line[x] = device.Clip8(g.Levels.Blank)
				case x < syncEnd:
					line[x] = device.Clip8(g.Levels.Sync)
				default:
					line[x] = device.Clip8(g.Levels.Blank)
				}
			}
			continue
		}
		if n < 4 || (n >= 7 && n < 10) {
			writeSegments(line, g.HRES, equalizingBounds, g.Levels)
			continue
		}
		if n >= 4 && n < 7 {
			writeSegments(line, g.HRES, vsyncBoundsEven, g.Levels)
			continue
		}

		writeBlankSyncActive(line, g, n, true, s.CC, s.CCS)

		if n == 10 { // first colorized active line: latch burst for the decoder
			for i := 0; i < 4; i++ {
				d.CCF[i] = s.CC[(int32(i)+po)&3]
			}
		}

		y := n - timing.CRTTop
		haveRow := y >= 0 && y < int32(s.H)

		for x := g.AVBeg; x < g.HRES; x++ {
			// Active-video samples outnumber the PPU's 256 active dots
			// (HRES is derived from the subcarrier clock, not the PPU
			// dot clock), so each sample maps back to a dot by scaling.
			dot := (x - g.AVBeg) * nesActiveDots / g.AVLen
			if !haveRow || dot >= nesActiveDots {
				line[x] = device.Clip8(borderSample(s.BorderData, linePhase, whiteScale) + blackPoint)
			} else {
				p := s.Data[y*nesActiveDots+dot]
				sum := squareSample(p, linePhase) + squareSample(p, linePhase+1) +
					squareSample(p, linePhase+2) + squareSample(p, linePhase+3)
				out := (sum>>2)*whiteScale>>12 + blackPoint
				line[x] = device.Clip8(out)
			}
			linePhase += 3
			linePhase %= 12
		}
	}

	d.HSync = g.SyncBeg
}

// borderSample renders the border pixel the same way an active-region
// dot would be, so its chroma phase stays continuous with the picture.
func borderSample(p, phase, whiteScale int32) int32 {
	sum := squareSample(p, phase) + squareSample(p, phase+1) +
		squareSample(p, phase+2) + squareSample(p, phase+3)
	return (sum >> 2) * whiteScale >> 12
}
