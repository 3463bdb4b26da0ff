package device

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crtcore/crtcore/timing"
)

func TestNewAllocatesBuffers(t *testing.T) {
	out := make([]uint32, 64*64)
	d := New(timing.NtscRgb, 64, 64, out)
	want := int(d.Geometry.HRES) * timing.VRES
	require.Len(t, d.Analog, want)
	require.Len(t, d.Inp, want)
	assert.Equal(t, 64, d.OutW)
	assert.Equal(t, 64, d.OutH)
}

func TestResetRestoresDefaultsOnly(t *testing.T) {
	d := New(timing.NtscRgb, 4, 4, make([]uint32, 16))
	d.Analog[0] = 42
	d.Settings.Hue = 199
	d.Settings.Brightness = -5
	d.Reset()
	if d.Settings != DefaultSettings() {
		t.Errorf("Reset() did not restore defaults: %+v", d.Settings)
	}
	if d.Analog[0] != 42 {
		t.Errorf("Reset() touched Analog buffer: got %d, want 42", d.Analog[0])
	}
}

func TestResizeOnlyReplacesOutputBinding(t *testing.T) {
	d := New(timing.NtscRgb, 4, 4, make([]uint32, 16))
	prevHRES := d.Geometry.HRES
	newOut := make([]uint32, 100)
	d.Resize(10, 10, newOut)
	if d.OutW != 10 || d.OutH != 10 {
		t.Errorf("Resize did not update OutW/OutH: %d/%d", d.OutW, d.OutH)
	}
	if d.Geometry.HRES != prevHRES {
		t.Errorf("Resize changed Geometry.HRES: %d -> %d", prevHRES, d.Geometry.HRES)
	}
}

func TestInitIdempotent(t *testing.T) {
	out := make([]uint32, 16)
	d := New(timing.NtscRgb, 4, 4, out)
	first := *d.Geometry
	d.Init(timing.NtscRgb, 4, 4, out)
	if *d.Geometry != first {
		t.Errorf("second Init produced different geometry: %+v vs %+v", *d.Geometry, first)
	}
}

func TestSettingsClamp(t *testing.T) {
	s := Settings{Hue: 720 + 45, Noise: -10}
	s.Clamp()
	if s.Hue != 45 {
		t.Errorf("Hue = %d, want 45", s.Hue)
	}
	if s.Noise != 0 {
		t.Errorf("Noise = %d, want 0", s.Noise)
	}

	s2 := Settings{Hue: -30}
	s2.Clamp()
	if s2.Hue != 330 {
		t.Errorf("Hue = %d, want 330", s2.Hue)
	}
}

func TestClip8(t *testing.T) {
	cases := []struct{ in int32; want int8 }{
		{0, 0}, {127, 127}, {128, 127}, {1000, 127},
		{-128, -128}, {-129, -128}, {-1000, -128},
	}
	for _, c := range cases {
		if got := Clip8(c.in); got != c.want {
			t.Errorf("Clip8(%d) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestIndependentDevicesHaveIndependentNoise(t *testing.T) {
	a := New(timing.NtscRgb, 4, 4, make([]uint32, 16))
	b := New(timing.NtscRgb, 4, 4, make([]uint32, 16))
	a.RandState = 1
	b.RandState = 2
	if a.RandState == b.RandState {
		t.Fatal("devices unexpectedly share RandState")
	}
}
