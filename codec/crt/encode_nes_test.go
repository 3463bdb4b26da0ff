package crt

import (
	"testing"

	"github.com/crtcore/crtcore/device"
	"github.com/crtcore/crtcore/timing"
)

func TestSquareSampleBlackColumns(t *testing.T) {
	for _, hue := range []int32{0x0E, 0x0F} {
		for phase := int32(0); phase < 12; phase++ {
			if got := squareSample(hue, phase); got != 0 {
				t.Errorf("squareSample(hue=%#x, phase=%d) = %d, want 0", hue, phase, got)
			}
		}
	}
}

func TestSquareLevelGrayAlwaysHigh(t *testing.T) {
	for phase := int32(0); phase < 12; phase++ {
		if got := squareLevel(0, phase); got != 1 {
			t.Errorf("squareLevel(0, %d) = %d, want 1", phase, got)
		}
	}
}

func TestSquareLevel0DAlwaysLow(t *testing.T) {
	for phase := int32(0); phase < 12; phase++ {
		if got := squareLevel(0x0D, phase); got != 0 {
			t.Errorf("squareLevel(0x0D, %d) = %d, want 0", phase, got)
		}
	}
}

func TestEncodeNESWhitePixelNearMax(t *testing.T) {
	d := device.New(timing.Nes, 256, 240, make([]uint32, 256*240))
	data := make([]int32, 256*240)
	for i := range data {
		data[i] = 0x30 // bright white, no emphasis
	}
	EncodeNES(d, NESSettings{Data: data, H: 240, BorderData: 0x0F, CC: [4]int32{16384, 0, -16384, 0}, CCS: 16384})

	g := d.Geometry
	n := int32(timing.CRTTop + 5)
	line := d.Analog[n*g.HRES : (n+1)*g.HRES]

	sum, count := 0, 0
	for x := g.AVBeg; x < g.HRES; x++ {
		sum += int(line[x])
		count++
	}
	mean := sum / count
	if mean < 60 {
		t.Errorf("mean active-line sample = %d, want a high value near Levels.White (%d)", mean, g.Levels.White)
	}
}

func TestEncodeNESNoOverrun(t *testing.T) {
	d := device.New(timing.Nes, 256, 240, make([]uint32, 256*240))
	data := make([]int32, 256*240)
	EncodeNES(d, NESSettings{Data: data, H: 240, BorderData: 0, CC: [4]int32{16384, 0, -16384, 0}, CCS: 16384})
	if len(d.Analog) != int(d.Geometry.HRES)*timing.VRES {
		t.Fatalf("Analog length changed: %d", len(d.Analog))
	}
}
