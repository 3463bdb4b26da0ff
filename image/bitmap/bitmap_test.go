package bitmap

import (
	"bytes"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	img := &Image{
		W: 3, H: 2,
		Pix: []uint32{
			0x00FF0000, 0x0000FF00, 0x000000FF,
			0x00FFFFFF, 0x00000000, 0x00123456,
		},
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

func TestDecodeRejectsBadMagic(t *testing.T) {
	_, err := Decode(bytes.NewReader(make([]byte, 54)))
	if err == nil {
		t.Fatal("expected error for missing BM magic")
	}
}

func TestEncodeRowPadding(t *testing.T) {
	// Width 1 -> 3 bytes/row, needs 1 byte of padding to reach a
	// multiple of 4.
	img := &Image{W: 1, H: 1, Pix: []uint32{0x00ABCDEF}}
	var buf bytes.Buffer
	if err := Encode(&buf, img); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if buf.Len() != fileHeaderSize+infoHeaderSize+4 {
		t.Errorf("encoded size = %d, want %d", buf.Len(), fileHeaderSize+infoHeaderSize+4)
	}
}
