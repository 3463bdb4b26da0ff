package filter

import "testing"

func TestEQResetZeroesState(t *testing.T) {
	var eq EQ
	eq.InitEQ(1000, 100000, 1000000, Q16One, Q16One, Q16One)
	for i := int32(0); i < 50; i++ {
		eq.StepEQ((i%7)*11 - 30)
	}
	eq.ResetEQ()
	if eq.lo != ([4]int32{}) || eq.hi != ([4]int32{}) || eq.hist != ([4]int32{}) {
		t.Fatalf("ResetEQ left non-zero state: %+v", eq)
	}
}

func TestEQDCSettles(t *testing.T) {
	var eq EQ
	// The low cutoff must be high enough for the integer stages to move:
	// at a few kHz, ((100-h)*lf)>>16 truncates to zero and the cascade
	// never leaves 0. At 1.5 MHz each stage settles within a few steps.
	eq.InitEQ(1500000, 5000000, 14318180, Q16One, 0, 0)
	var out int32
	for i := 0; i < 2000; i++ {
		out = eq.StepEQ(100)
	}
	// Low band should converge close to the DC input once gMid/gHi are 0.
	diff := out - 100
	if diff < 0 {
		diff = -diff
	}
	if diff > 5 {
		t.Errorf("EQ low band did not settle near DC input: got %d, want ~100", out)
	}
}

func TestEQZeroInputZeroOutput(t *testing.T) {
	var eq EQ
	eq.InitEQ(1000, 100000, 1000000, Q16One, Q16One, Q16One)
	for i := 0; i < 100; i++ {
		if got := eq.StepEQ(0); got != 0 {
			t.Fatalf("step %d: StepEQ(0) = %d, want 0", i, got)
		}
	}
}

func TestIIRResetZeroesState(t *testing.T) {
	f := NewIIR(4200000, 14318180)
	for i := int32(0); i < 30; i++ {
		f.Step(i)
	}
	f.Reset()
	if f.h != 0 {
		t.Fatalf("Reset left h = %d, want 0", f.h)
	}
}

func TestIIRDCSettles(t *testing.T) {
	f := NewIIR(4200000, 14318180)
	var out int32
	for i := 0; i < 5000; i++ {
		out = f.Step(50)
	}
	diff := out - 50
	if diff < 0 {
		diff = -diff
	}
	if diff > 2 {
		t.Errorf("IIR did not settle near DC input: got %d, want ~50", out)
	}
}

func TestIIRMonotonicStepResponse(t *testing.T) {
	f := NewIIR(1500000, 14318180)
	prev := int32(0)
	for i := 0; i < 200; i++ {
		out := f.Step(100)
		if out < prev {
			t.Fatalf("step response not monotonic at i=%d: %d < %d", i, out, prev)
		}
		prev = out
	}
}
