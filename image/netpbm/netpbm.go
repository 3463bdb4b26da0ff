// DESCRIPTION
//   netpbm.go reads and writes 24-bit binary PPM (P6) images, the raster
//   source/sink format the crtview CLI and preview harness use around
//   the codec core.
//
// AUTHOR
//   crtcore contributors

// Package netpbm provides a minimal binary-PPM (P6) reader and writer.
// It is deliberately outside the codec core (spec.md section 1 scopes
// image file I/O out of the core) and packs/unpacks the codec's
// 0x00RRGGBB raster format.
package netpbm

import (
	"bufio"
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// Image is a decoded PPM raster: packed 0x00RRGGBB pixels, row-major.
type Image struct {
	W, H int
	Pix  []uint32
}

// Decode reads a binary PPM (P6) image from src.
func Decode(src io.Reader) (*Image, error) {
	r := bufio.NewReader(src)

	magic, err := readToken(r)
	if err != nil {
		return nil, errors.Wrap(err, "netpbm: reading magic")
	}
	if magic != "P6" {
		return nil, fmt.Errorf("netpbm: unsupported magic %q, want P6", magic)
	}

	w, err := readIntToken(r)
	if err != nil {
		return nil, errors.Wrap(err, "netpbm: reading width")
	}
	h, err := readIntToken(r)
	if err != nil {
		return nil, errors.Wrap(err, "netpbm: reading height")
	}
	maxVal, err := readIntToken(r)
	if err != nil {
		return nil, errors.Wrap(err, "netpbm: reading maxval")
	}
	if maxVal != 255 {
		return nil, fmt.Errorf("netpbm: unsupported maxval %d, want 255", maxVal)
	}
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("netpbm: invalid dimensions %dx%d", w, h)
	}

	// readToken already consumed the single whitespace byte that
	// terminates the maxval token, which is also the header/body
	// separator the PPM grammar requires.
	buf := make([]byte, w*h*3)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, errors.Wrap(err, "netpbm: reading pixel data")
	}

	img := &Image{W: w, H: h, Pix: make([]uint32, w*h)}
	for i := 0; i < w*h; i++ {
		rr, gg, bb := buf[i*3], buf[i*3+1], buf[i*3+2]
		img.Pix[i] = uint32(rr)<<16 | uint32(gg)<<8 | uint32(bb)
	}
	return img, nil
}

// Encode writes img to dst as a binary PPM (P6) image.
func Encode(dst io.Writer, img *Image) error {
	w := bufio.NewWriter(dst)
	if _, err := fmt.Fprintf(w, "P6\n%d %d\n255\n", img.W, img.H); err != nil {
		return errors.Wrap(err, "netpbm: writing header")
	}

	buf := make([]byte, img.W*img.H*3)
	for i, px := range img.Pix {
		buf[i*3] = byte(px >> 16)
		buf[i*3+1] = byte(px >> 8)
		buf[i*3+2] = byte(px)
	}
	if _, err := w.Write(buf); err != nil {
		return errors.Wrap(err, "netpbm: writing pixel data")
	}
	return w.Flush()
}

// readToken reads one whitespace-delimited token, skipping '#' comment
// lines, as the PPM header grammar requires.
func readToken(r *bufio.Reader) (string, error) {
	var tok []byte
	for {
		b, err := r.ReadByte()
		if err != nil {
			return "", err
		}
		if b == '#' {
			if err := skipLine(r); err != nil {
				return "", err
			}
			continue
		}
		if isSpace(b) {
			if len(tok) == 0 {
				continue
			}
			return string(tok), nil
		}
		tok = append(tok, b)
	}
}

func readIntToken(r *bufio.Reader) (int, error) {
	tok, err := readToken(r)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, c := range []byte(tok) {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("netpbm: invalid integer token %q", tok)
		}
		n = n*10 + int(c-'0')
	}
	return n, nil
}

func skipLine(r *bufio.Reader) error {
	for {
		b, err := r.ReadByte()
		if err != nil {
			return err
		}
		if b == '\n' {
			return nil
		}
	}
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r':
		return true
	}
	return false
}
