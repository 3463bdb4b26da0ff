// DESCRIPTION
//   timing.go derives the sample-accurate horizontal geometry (front
//   porch, sync, breezeway, color burst, back porch, active video) for
//   each supported system variant from a symbolic line-time partition.
//
// AUTHOR
//   crtcore contributors

// Package timing computes the integer sample offsets that every encoder
// and the decoder agree on: where sync lives, where the color burst
// lives, and where active video starts and ends within one scanline.
package timing

// SystemKind selects which composite-video system a Geometry describes.
// NtscVhs, Snes and Pv1000 reuse the generic RGB encoder's machinery:
// NtscVhs with its own levels and filter tuning (see device and
// codec/crt), Snes and Pv1000 with their own subcarrier rate and line
// partition.
type SystemKind int

const (
	NtscRgb SystemKind = iota
	NtscVhs
	Nes
	Snes
	Pv1000
)

func (k SystemKind) String() string {
	switch k {
	case NtscRgb:
		return "ntsc-rgb"
	case NtscVhs:
		return "ntsc-vhs"
	case Nes:
		return "nes"
	case Snes:
		return "snes"
	case Pv1000:
		return "pv1000"
	default:
		return "unknown"
	}
}

// ChromaPattern selects how many chroma (subcarrier) cycles fit in one
// scanline, tenths of a cycle included. A non-integer cycle count per
// line is what produces dot crawl (see GLOSSARY in spec.md).
type ChromaPattern int

const (
	ChromaRainbow   ChromaPattern = iota // 228 cycles/line
	ChromaCheckered                      // 227.5 cycles/line (default)
	ChromaSawtooth                       // 227.3 cycles/line (NES-forced)
)

// ccLineTenths is the chroma cycles per line, in tenths of a cycle.
func (p ChromaPattern) ccLineTenths() int32 {
	switch p {
	case ChromaRainbow:
		return 2280
	case ChromaSawtooth:
		return 2273
	default:
		return 2275
	}
}

// Levels are the fixed IRE-like sample levels a system uses for the
// blanking, sync-tip, black, white and burst-amplitude references.
type Levels struct {
	White int32
	Burst int32
	Black int32
	Blank int32
	Sync  int32
}

var genericLevels = Levels{White: 100, Burst: 20, Black: 7, Blank: 0, Sync: -40}
var nesLevels = Levels{White: 110, Burst: 30, Black: 0, Blank: 0, Sync: -37}

// vhsLevels models a tape deck's compressed dynamic range and raised
// noise floor: a softer white level, an attenuated burst (tape azimuth
// loss hits chroma first), and a raised black level.
var vhsLevels = Levels{White: 95, Burst: 12, Black: 11, Blank: 0, Sync: -40}

// snesLevels and pv1000Levels match genericLevels; these two systems
// differ from NtscRgb in subcarrier sampling and burst timing (see
// snesWidths/pv1000Widths below), not in IRE-level tuning.
var snesLevels = genericLevels
var pv1000Levels = genericLevels

// CBCycles is the number of color-burst cycles inserted into the back
// porch of every colorized scanline.
const CBCycles = 10

// VRES, CRTTop and CRTBot are fixed across every system: 262 lines
// approximate one NTSC field, and the active raster spans lines
// [CRTTop, CRTBot).
const (
	VRES     = 262
	CRTTop   = 21
	CRTBot   = 261
	CRTLines = CRTBot - CRTTop
)

// Geometry holds the derived, sample-accurate horizontal layout and
// level constants for one SystemKind.
type Geometry struct {
	Kind    SystemKind
	Pattern ChromaPattern
	CBFreq  int32 // subcarrier samples per cycle: 3, 4 or 6
	HRES    int32

	FPBeg, SyncBeg, BWBeg, CBBeg, BPBeg, AVBeg, AVLen int32

	Levels Levels

	// NESHires raises the decoder's vertical-sync integration threshold
	// from 100x to 150x the sync level (spec section 4.F step 2),
	// modeling a higher-resolution NES capture path; it only has meaning
	// for Kind == Nes.
	NESHires bool
}

// lineWidths is a symbolic partition of one scanline into front porch,
// sync, breezeway, color burst, back porch and active video, expressed
// in whatever unit is natural for the system (nanoseconds for the
// generic codec, PPU-pixel counts for NES). Geometry's sample offsets are
// derived by scaling each cumulative offset by HRES/total.
type lineWidths struct {
	fp, sync, bw, cb, bp, av int32
}

func (w lineWidths) total() int32 { return w.fp + w.sync + w.bw + w.cb + w.bp + w.av }

// genericWidths is the nanosecond partition of a generic NTSC scanline:
// 1.5us front porch, 4.7us sync, 0.6us breezeway, 2.5us color burst,
// 1.6us back porch and 52.6us active video -- approximately the real
// 63.5555us NTSC line period, not broadcast-legal (spec.md Non-goals).
var genericWidths = lineWidths{fp: 1500, sync: 4700, bw: 600, cb: 2500, bp: 1600, av: 52600}

// nesWidths is the PPU-dot partition of an NES scanline: 341 dots total,
// of which 256 are the active picture.
var nesWidths = lineWidths{fp: 4, sync: 25, bw: 4, cb: 16, bp: 36, av: 256}

// snesWidths shortens the breezeway and lengthens the color-burst window
// relative to genericWidths: the SNES's PPU-driven encoder samples the
// subcarrier at 3 samples/cycle rather than 4, so burst needs more cycles
// to cover the same settling time.
var snesWidths = lineWidths{fp: 1500, sync: 4700, bw: 300, cb: 3200, bp: 1600, av: 52600}

// pv1000Widths gives the Casio PV-1000's encoder a longer back porch and
// 6 samples/cycle subcarrier sampling, distinct from both the generic
// and SNES partitions.
var pv1000Widths = lineWidths{fp: 1500, sync: 4700, bw: 600, cb: 2500, bp: 2400, av: 51800}

// New builds the Geometry for kind, choosing chroma pattern, subcarrier
// rate and level constants the way spec.md section 4.C and section 9
// describe: NES forces the sawtooth (227.3) pattern; everything else
// defaults to the checkered (227.5) pattern. NtscVhs reuses the generic
// partition and subcarrier rate (its distinct behavior is softer chroma
// bandwidth and added luma ringing, tuned in device.configureFilters and
// codec/crt's encoder, not here) with its own IRE-level tuning; Snes and
// Pv1000 each get their own subcarrier sample rate and line partition.
func New(kind SystemKind) *Geometry {
	g := &Geometry{Kind: kind}

	switch kind {
	case Nes:
		g.Pattern = ChromaSawtooth
		g.CBFreq = 4
		g.Levels = nesLevels
		g.apply(nesWidths)
	case NtscVhs:
		g.Pattern = ChromaCheckered
		g.CBFreq = 4
		g.Levels = vhsLevels
		g.apply(genericWidths)
	case Snes:
		g.Pattern = ChromaCheckered
		g.CBFreq = 3
		g.Levels = snesLevels
		g.apply(snesWidths)
	case Pv1000:
		g.Pattern = ChromaCheckered
		g.CBFreq = 6
		g.Levels = pv1000Levels
		g.apply(pv1000Widths)
	default:
		g.Pattern = ChromaCheckered
		g.CBFreq = 4
		g.Levels = genericLevels
		g.apply(genericWidths)
	}
	return g
}

// apply scales w's symbolic widths into sample offsets against the
// Geometry's own HRES, derived here as CCLineTenths*CBFreq/10 (spec.md
// section 3's HRES invariant).
func (g *Geometry) apply(w lineWidths) {
	g.HRES = g.Pattern.ccLineTenths() * g.CBFreq / 10

	total := w.total()
	scale := func(off int32) int32 { return off * g.HRES / total }

	g.FPBeg = scale(0)
	g.SyncBeg = scale(w.fp)
	g.BWBeg = scale(w.fp + w.sync)
	g.CBBeg = scale(w.fp + w.sync + w.bw)
	g.BPBeg = scale(w.fp + w.sync + w.bw + w.cb)
	g.AVBeg = scale(w.fp + w.sync + w.bw + w.cb + w.bp)
	g.AVLen = g.HRES - g.AVBeg
}
