package netpbm

import (
	"bytes"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	img := &Image{
		W: 2, H: 2,
		Pix: []uint32{0x00FF0000, 0x0000FF00, 0x000000FF, 0x00FFFFFF},
	}

	var buf bytes.Buffer
	if err := Encode(&buf, img); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	got, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.W != img.W || got.H != img.H {
		t.Fatalf("dimensions = %dx%d, want %dx%d", got.W, got.H, img.W, img.H)
	}
	for i := range img.Pix {
		if got.Pix[i] != img.Pix[i] {
			t.Errorf("pixel %d = %#08x, want %#08x", i, got.Pix[i], img.Pix[i])
		}
	}
}

func TestDecodeRejectsWrongMagic(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte("P5\n1 1\n255\n\x00")))
	if err == nil {
		t.Fatal("expected error for non-P6 magic")
	}
}

func TestDecodeSkipsComments(t *testing.T) {
	data := []byte("P6\n# a comment\n1 1\n255\n\xAA\xBB\xCC")
	img, err := Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	want := uint32(0xAA)<<16 | uint32(0xBB)<<8 | uint32(0xCC)
	if img.Pix[0] != want {
		t.Errorf("pixel = %#08x, want %#08x", img.Pix[0], want)
	}
}

func TestDecodeRejectsNonDefaultMaxval(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte("P6\n1 1\n65535\n\x00\x00")))
	if err == nil {
		t.Fatal("expected error for non-255 maxval")
	}
}
