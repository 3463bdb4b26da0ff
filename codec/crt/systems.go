// DESCRIPTION
//   systems.go re-exports the timing.SystemKind variants this codec
//   implements and gives them their own doc home inside codec/crt, where
//   callers actually reach for them.
//
// AUTHOR
//   crtcore contributors

// Package crt implements the integer-only NTSC composite video codec:
// encode_rgb, encode_rgb_fullscreen and encode_nes write a composite
// waveform into a device.Device; Decode reads one back into an RGB
// raster. See spec.md for the full behavioral contract.
package crt

import "github.com/crtcore/crtcore/timing"

// SystemKind selects which composite-video system a Device simulates.
type SystemKind = timing.SystemKind

const (
	// NtscRgb is the generic RGB-sourced NTSC composite encoder.
	NtscRgb = timing.NtscRgb
	// NtscVhs reuses EncodeRGB's machinery with softer chroma bandwidth
	// and extra luma ringing, approximating a VHS-recorded composite
	// signal (see SPEC_FULL.md section 3).
	NtscVhs = timing.NtscVhs
	// Nes is the dedicated NES PPU encoder (EncodeNES).
	Nes = timing.Nes
	// Snes reuses EncodeRGB's machinery with SNES-specific burst timing.
	Snes = timing.Snes
	// Pv1000 reuses EncodeRGB's machinery with Casio PV-1000-specific
	// burst timing.
	Pv1000 = timing.Pv1000
)
