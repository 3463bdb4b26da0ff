package timing

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestHRESInvariant(t *testing.T) {
	tests := []struct {
		kind SystemKind
		want int32
	}{
		{NtscRgb, 910},
		{NtscVhs, 910},
		{Snes, 682},
		{Pv1000, 1365},
		{Nes, 909},
	}
	for _, tt := range tests {
		g := New(tt.kind)
		if g.HRES != tt.want {
			t.Errorf("New(%v).HRES = %d, want %d", tt.kind, g.HRES, tt.want)
		}
		// The invariant itself (spec.md section 3): HRES == CC_LINE *
		// CB_FREQ / 10 for whatever CC_LINE/CB_FREQ the system picked.
		if want := g.Pattern.ccLineTenths() * g.CBFreq / 10; g.HRES != want {
			t.Errorf("%v: HRES = %d, want ccLineTenths*CBFreq/10 = %d", tt.kind, g.HRES, want)
		}
	}
}

func TestVariantsAreNotAliasesOfNtscRgb(t *testing.T) {
	base := New(NtscRgb)
	for _, kind := range []SystemKind{NtscVhs, Snes, Pv1000} {
		g := New(kind)
		if g.Levels == base.Levels && g.CBFreq == base.CBFreq && g.HRES == base.HRES {
			t.Errorf("%v is behaviorally identical to NtscRgb: Levels=%+v CBFreq=%d HRES=%d", kind, g.Levels, g.CBFreq, g.HRES)
		}
	}
}

func TestOffsetsAreMonotonic(t *testing.T) {
	for _, kind := range []SystemKind{NtscRgb, Nes} {
		g := New(kind)
		offs := []int32{g.FPBeg, g.SyncBeg, g.BWBeg, g.CBBeg, g.BPBeg, g.AVBeg}
		for i := 1; i < len(offs); i++ {
			if offs[i] < offs[i-1] {
				t.Fatalf("%v: offsets not monotonic: %v", kind, offs)
			}
		}
		if g.AVBeg+g.AVLen != g.HRES {
			t.Errorf("%v: AVBeg+AVLen = %d, want HRES %d", kind, g.AVBeg+g.AVLen, g.HRES)
		}
	}
}

func TestNESForcesSawtoothPattern(t *testing.T) {
	g := New(Nes)
	if g.Pattern != ChromaSawtooth {
		t.Errorf("Nes Pattern = %v, want ChromaSawtooth", g.Pattern)
	}
}

func TestGenericDefaultsToCheckered(t *testing.T) {
	for _, kind := range []SystemKind{NtscRgb, NtscVhs, Snes, Pv1000} {
		g := New(kind)
		if g.Pattern != ChromaCheckered {
			t.Errorf("%v Pattern = %v, want ChromaCheckered", kind, g.Pattern)
		}
	}
}

func TestLevelsBySystem(t *testing.T) {
	g := New(NtscRgb)
	if diff := cmp.Diff(genericLevels, g.Levels); diff != "" {
		t.Errorf("NtscRgb Levels mismatch (-want +got):\n%s", diff)
	}
	gn := New(Nes)
	if diff := cmp.Diff(nesLevels, gn.Levels); diff != "" {
		t.Errorf("Nes Levels mismatch (-want +got):\n%s", diff)
	}
}

func TestSystemKindString(t *testing.T) {
	cases := map[SystemKind]string{
		NtscRgb: "ntsc-rgb",
		NtscVhs: "ntsc-vhs",
		Nes:     "nes",
		Snes:    "snes",
		Pv1000:  "pv1000",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", k, got, want)
		}
	}
}
