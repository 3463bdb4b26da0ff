// DESCRIPTION
//   bitmap.go reads and writes 24-bit uncompressed Windows BMP images,
//   an alternative raster source/sink to netpbm for the crtview CLI.
//
// AUTHOR
//   crtcore contributors

// Package bitmap provides a minimal 24-bit BGR, uncompressed BMP reader
// and writer, outside the codec core per spec.md section 1.
package bitmap

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// Image is a decoded BMP raster: packed 0x00RRGGBB pixels, row-major,
// top-to-bottom regardless of the file's on-disk row order.
type Image struct {
	W, H int
	Pix  []uint32
}

const (
	fileHeaderSize = 14
	infoHeaderSize = 40
	bitsPerPixel   = 24
)

// Decode reads a 24-bit uncompressed BMP image from src.
func Decode(src io.Reader) (*Image, error) {
	r := bufio.NewReader(src)

	var fh [fileHeaderSize]byte
	if _, err := io.ReadFull(r, fh[:]); err != nil {
		return nil, errors.Wrap(err, "bitmap: reading file header")
	}
	if fh[0] != 'B' || fh[1] != 'M' {
		return nil, fmt.Errorf("bitmap: bad magic %q, want \"BM\"", fh[:2])
	}
	dataOffset := binary.LittleEndian.Uint32(fh[10:14])

	var ih [infoHeaderSize]byte
	if _, err := io.ReadFull(r, ih[:]); err != nil {
		return nil, errors.Wrap(err, "bitmap: reading info header")
	}
	w := int(int32(binary.LittleEndian.Uint32(ih[4:8])))
	h := int(int32(binary.LittleEndian.Uint32(ih[8:12])))
	bpp := binary.LittleEndian.Uint16(ih[14:16])
	compression := binary.LittleEndian.Uint32(ih[16:20])

	if bpp != bitsPerPixel {
		return nil, fmt.Errorf("bitmap: unsupported bit depth %d, want %d", bpp, bitsPerPixel)
	}
	if compression != 0 {
		return nil, fmt.Errorf("bitmap: unsupported compression %d, want 0 (BI_RGB)", compression)
	}
	if w <= 0 || h == 0 {
		return nil, fmt.Errorf("bitmap: invalid dimensions %dx%d", w, h)
	}

	bottomUp := h > 0
	if !bottomUp {
		h = -h
	}

	skip := int(dataOffset) - fileHeaderSize - infoHeaderSize
	for skip > 0 {
		n, err := r.Discard(skip)
		if err != nil {
			return nil, errors.Wrap(err, "bitmap: skipping to pixel data")
		}
		skip -= n
	}

	rowBytes := w * 3
	pad := (4 - rowBytes%4) % 4
	img := &Image{W: w, H: h, Pix: make([]uint32, w*h)}

	row := make([]byte, rowBytes+pad)
	for y := 0; y < h; y++ {
		if _, err := io.ReadFull(r, row); err != nil {
			return nil, errors.Wrap(err, "bitmap: reading scanline")
		}
		destY := y
		if bottomUp {
			destY = h - 1 - y
		}
		for x := 0; x < w; x++ {
			b, g, rr := row[x*3], row[x*3+1], row[x*3+2]
			img.Pix[destY*w+x] = uint32(rr)<<16 | uint32(g)<<8 | uint32(b)
		}
	}
	return img, nil
}

// Encode writes img to dst as a 24-bit uncompressed, bottom-up BMP.
func Encode(dst io.Writer, img *Image) error {
	rowBytes := img.W * 3
	pad := (4 - rowBytes%4) % 4
	pixelBytes := (rowBytes + pad) * img.H
	fileSize := fileHeaderSize + infoHeaderSize + pixelBytes

	w := bufio.NewWriter(dst)

	var fh [fileHeaderSize]byte
	fh[0], fh[1] = 'B', 'M'
	binary.LittleEndian.PutUint32(fh[2:6], uint32(fileSize))
	binary.LittleEndian.PutUint32(fh[10:14], fileHeaderSize+infoHeaderSize)
	if _, err := w.Write(fh[:]); err != nil {
		return errors.Wrap(err, "bitmap: writing file header")
	}

	var ih [infoHeaderSize]byte
	binary.LittleEndian.PutUint32(ih[0:4], infoHeaderSize)
	binary.LittleEndian.PutUint32(ih[4:8], uint32(img.W))
	binary.LittleEndian.PutUint32(ih[8:12], uint32(img.H))
	binary.LittleEndian.PutUint16(ih[12:14], 1)
	binary.LittleEndian.PutUint16(ih[14:16], bitsPerPixel)
	binary.LittleEndian.PutUint32(ih[20:24], uint32(pixelBytes))
	if _, err := w.Write(ih[:]); err != nil {
		return errors.Wrap(err, "bitmap: writing info header")
	}

	row := make([]byte, rowBytes+pad)
	for y := img.H - 1; y >= 0; y-- {
		for x := 0; x < img.W; x++ {
			px := img.Pix[y*img.W+x]
			row[x*3] = byte(px)
			row[x*3+1] = byte(px >> 8)
			row[x*3+2] = byte(px >> 16)
		}
		if _, err := w.Write(row); err != nil {
			return errors.Wrap(err, "bitmap: writing scanline")
		}
	}
	return w.Flush()
}
