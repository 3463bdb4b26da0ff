// DESCRIPTION
//   device.go provides Device, the long-lived state object shared by the
//   encoder and decoder: the analog-line buffer, the noisy-input buffer,
//   persistent sync estimates, the recovered color-burst reference, and
//   viewer adjustment parameters.
//
// AUTHOR
//   crtcore contributors

// Package device holds the composite-video codec's single long-lived
// state object and its lifecycle (Init/Reset/Resize). It is a pure
// simulator with no capturing hardware behind it: "starting" a frame is
// simply calling Encode then Decode.
package device

import (
	"github.com/crtcore/crtcore/filter"
	"github.com/crtcore/crtcore/timing"
)

// Logger is the minimal logging contract Device accepts; it is satisfied
// at runtime by github.com/ausocean/utils/logging.Logger. A nil Logger
// makes every log call a no-op.
type Logger interface {
	SetLevel(int8)
	Log(level int8, message string, params ...interface{})
}

// Settings holds the viewer-adjustable parameters described in spec.md
// section 3. None is ever rejected: Clamp wraps Hue and clamps Noise, and
// the other fields are used as given.
type Settings struct {
	Hue        int32 // degrees, wrapped to [0, 360)
	Saturation int32
	Brightness int32
	Contrast   int32
	BlackPoint int32
	WhitePoint int32
	Noise      int32 // clamped to >= 0
}

// DefaultSettings returns the viewer defaults named in spec.md section
// 4.G: hue=0, saturation=18, brightness=0, contrast~180, black=0,
// white=100.
func DefaultSettings() Settings {
	return Settings{
		Hue:        0,
		Saturation: 18,
		Brightness: 0,
		Contrast:   180,
		BlackPoint: 0,
		WhitePoint: 100,
	}
}

// Clamp normalizes Settings in place: hue wraps mod 360, noise is
// clamped non-negative. No other field is range-checked, matching
// spec.md section 7 (numeric parameters are clamped or wrapped, never
// rejected).
func (s *Settings) Clamp() {
	s.Hue %= 360
	if s.Hue < 0 {
		s.Hue += 360
	}
	if s.Noise < 0 {
		s.Noise = 0
	}
}

// Features holds the simulator's feature toggles (bloom, vertical and
// horizontal sync tracking) as runtime device configuration. Init sets
// them to DefaultFeatures; Decode reads them on every call, so callers may
// change them between frames (crtview's -o flag and preview o key clear
// DoHsync).
type Features struct {
	DoBloom bool
	DoVsync bool
	DoHsync bool
}

// DefaultFeatures enables every simulated CRT artifact.
func DefaultFeatures() Features {
	return Features{DoBloom: true, DoVsync: true, DoHsync: true}
}

// Device is the single long-lived state object shared by one encode call
// and one decode call per frame; see spec.md sections 3 and 5.
type Device struct {
	Kind     timing.SystemKind
	Geometry *timing.Geometry
	Features Features

	// Analog is one frame of composite waveform, written by the encoder
	// and read by the decoder. It is not zeroed between frames: the
	// encoder must overwrite every sample it cares about.
	Analog []int8
	// Inp is the decoder's noisy copy of Analog.
	Inp []int8

	// HSync and VSync are the last locked-in sample offsets, carried
	// across frames to provide inertia in sync tracking.
	HSync, VSync int32

	// CCF is the last-frame color-burst sample quartet: written by the
	// NES encoders, consumed by the decoder to seed its burst PLL (the
	// "quiet channel" documented in spec.md section 9).
	CCF [4]int32

	// RandState is the noise LCG's state, promoted to a device field
	// (spec.md section 9) so independent Device values produce
	// independent, individually observable noise streams.
	RandState uint32

	Settings Settings

	// Out is the caller-owned output raster, packed 0x00RRGGBB.
	Out        []uint32
	OutW, OutH int

	// EQY/EQI/EQQ and IIRY/IIRI/IIRQ are the generic codec's filter
	// banks. spec.md section 9 requires these to be fields of the
	// device rather than package globals, precisely so two Devices
	// don't share filter state.
	EQY, EQI, EQQ    filter.EQ
	IIRY, IIRI, IIRQ filter.IIR

	// IIRYRing is a second, faster luma low-pass used only when Kind ==
	// timing.NtscVhs: both RGB encoders feed the same luma samples through
	// IIRY and IIRYRing and add half their difference back onto IIRY's
	// output, so VHS luma is the average of the two low-passes. It rises
	// faster than IIRY alone and does not overshoot at transitions.
	IIRYRing filter.IIR

	Logger Logger
}

// subcarrierHz is the nominal NTSC color subcarrier frequency used to
// derive a sample-rate reference for the generic codec's IIR bank.
const subcarrierHz = 3579545

// New allocates and initializes a Device for kind, bound to the given
// output raster.
func New(kind timing.SystemKind, outw, outh int, out []uint32) *Device {
	d := &Device{}
	d.Init(kind, outw, outh, out)
	return d
}

// Init (re)initializes the device's buffers, geometry, filters and
// viewer defaults, and binds it to an output raster. Init is idempotent.
func (d *Device) Init(kind timing.SystemKind, outw, outh int, out []uint32) {
	d.Kind = kind
	d.Geometry = timing.New(kind)
	d.Features = DefaultFeatures()

	n := int(d.Geometry.HRES) * timing.VRES
	d.Analog = make([]int8, n)
	d.Inp = make([]int8, n)

	d.HSync = d.Geometry.SyncBeg
	d.VSync = timing.CRTTop
	d.CCF = [4]int32{}
	d.RandState = 0xACE1ACE1

	d.Resize(outw, outh, out)
	d.Reset()
	d.configureFilters()
}

// Reset restores viewer defaults without touching any buffer.
func (d *Device) Reset() {
	d.Settings = DefaultSettings()
}

// Resize replaces only the output binding (outw, outh, out); internal
// HRES/VRES and timing geometry are untouched, per spec.md section 9
// (changing CRT_HRES or the filter bank's fixed-point width at runtime
// is unsupported).
func (d *Device) Resize(outw, outh int, out []uint32) {
	d.OutW, d.OutH = outw, outh
	d.Out = out
}

// configureFilters (re)derives the generic codec's EQ and IIR
// coefficients from the device's sample rate and Kind. The NES encoder
// models its waveform directly and never touches these during encode
// (spec.md section 4.E), but the decoder's own EQ bank is configured
// here so Decode can reset it between frames regardless of which
// encoder ran.
func (d *Device) configureFilters() {
	rate := subcarrierHz * d.Geometry.CBFreq

	// NtscVhs narrows the chroma cutoffs relative to the generic codec,
	// modeling a tape deck's reduced chroma bandwidth; luma ringing is
	// added separately in EncodeRGB via IIRYRing below.
	iRatio, qRatio := int32(1), int32(1)
	if d.Kind == timing.NtscVhs {
		iRatio, qRatio = 2, 2
	}

	d.IIRY.Init(4200000, rate)
	d.IIRI.Init(1500000/iRatio, rate)
	d.IIRQ.Init(550000/qRatio, rate)
	d.IIRYRing.Init(6500000, rate)

	// Band edges for the decoder's equalizer: each of Y/I/Q gets its own
	// low/high cutoff and band gains, tuned to avoid over-sharpening
	// chroma relative to luma.
	const unity = filter.Q16One
	d.EQY.InitEQ(1000000, 4500000, rate, unity, unity*9/10, unity*11/10)
	d.EQI.InitEQ(80000, 1200000, rate, unity, unity, unity*3/4)
	d.EQQ.InitEQ(80000, 500000, rate, unity, unity, unity*3/4)
}

// Log forwards to the configured Logger, if any.
func (d *Device) Log(level int8, msg string, params ...interface{}) {
	if d.Logger == nil {
		return
	}
	d.Logger.Log(level, msg, params...)
}

// Clip8 clamps v to the signed 8-bit range used by Analog/Inp.
func Clip8(v int32) int8 {
	if v > 127 {
		v = 127
	} else if v < -128 {
		v = -128
	}
	return int8(v)
}
