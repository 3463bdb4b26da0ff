/*
DESCRIPTION
  crtview renders a still image through the composite-video codec core
  and writes the decoded result back out, or opens it in an interactive
  preview window. It is the CLI named in spec.md section 6: "-mofprh
  outw outh noise phase_offset infile outfile".

LICENSE
  This file is part of crtcore, a from-scratch implementation; it is
  not derived from and carries no license obligation to any upstream
  project.
*/

// Package main is the crtview command.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	flag "github.com/spf13/pflag"

	"github.com/ausocean/utils/logging"

	"github.com/crtcore/crtcore/codec/crt"
	"github.com/crtcore/crtcore/device"
	"github.com/crtcore/crtcore/image/bitmap"
	"github.com/crtcore/crtcore/image/netpbm"
	"github.com/crtcore/crtcore/timing"
)

const pkg = "crtview: "

func main() {
	var (
		monochrome  = flag.BoolP("mono", "m", false, "encode without color burst (monochrome)")
		unlockPhase = flag.BoolP("unlock-phase", "o", false, "disable hsync phase tracking in the decoder")
		oddField    = flag.BoolP("odd-field", "f", false, "encode the odd interlace field")
		progressive = flag.BoolP("progressive", "p", false, "progressive scan (not read by the renderer; each run encodes one field)")
		raw         = flag.BoolP("raw", "r", false, "write the source image at its natural size, unscaled")
		nesHires    = flag.BoolP("nes-hires", "h", false, "treat input as an NES 9-bit paletted field")
		preview     = flag.Bool("preview", false, "open an interactive preview window instead of writing a file")
		watch       = flag.Bool("watch", false, "re-encode whenever infile changes, implies --preview")
		verbosity   = flag.Int8("verbosity", logging.Info, "log verbosity")
	)
	flag.Parse()

	args := flag.Args()
	if len(args) < 5 || len(args) > 6 {
		fmt.Fprintln(os.Stderr, "usage: crtview [flags] outw outh noise phase_offset infile [outfile]")
		os.Exit(2)
	}

	outw, outh, noise, phaseOffset, err := parseDims(args[:4])
	if err != nil {
		fmt.Fprintln(os.Stderr, pkg+err.Error())
		os.Exit(2)
	}
	infile := args[4]
	outfile := ""
	if len(args) == 6 {
		outfile = args[5]
	}

	log := newLogger(*verbosity, false)

	kind := timing.NtscRgb
	if *nesHires {
		kind = timing.Nes
	}

	out := make([]uint32, outw*outh)
	dev := device.New(kind, outw, outh, out)
	dev.Logger = log
	dev.Settings.Noise = noise
	dev.Features.DoHsync = !*unlockPhase

	run := func() error {
		return renderOnce(dev, renderOptions{
			kind:        kind,
			monochrome:  *monochrome,
			oddField:    *oddField,
			progressive: *progressive,
			raw:         *raw,
			phaseOffset: phaseOffset,
			infile:      infile,
			noise:       noise,
		})
	}

	if err := run(); err != nil {
		log.Log(logging.Error, "render failed", "error", err)
		os.Exit(1)
	}

	if *preview || *watch {
		if *watch {
			stop := make(chan struct{})
			defer close(stop)
			err := watchFile(infile, log, stop, func() {
				if err := run(); err != nil {
					log.Log(logging.Warning, "re-render failed", "error", err)
				}
			})
			if err != nil {
				log.Log(logging.Error, "watch setup failed", "error", err)
				os.Exit(1)
			}
		}
		rgbData, w, h, err := loadRGB(infile)
		if err != nil {
			log.Log(logging.Error, "reading input for preview", "error", err)
			os.Exit(1)
		}
		if err := runPreview(dev, w, h, rgbData); err != nil {
			log.Log(logging.Error, "preview exited", "error", err)
			os.Exit(1)
		}
		return
	}

	if outfile == "" {
		fmt.Fprintln(os.Stderr, pkg+"outfile required when --preview is not set")
		os.Exit(2)
	}
	if err := writeRGB(outfile, dev.Out, outw, outh); err != nil {
		log.Log(logging.Error, "writing output", "error", err)
		os.Exit(1)
	}
}

type renderOptions struct {
	kind        timing.SystemKind
	monochrome  bool
	oddField    bool
	progressive bool
	raw         bool
	phaseOffset int32
	infile      string
	noise       int32
}

// ccForPhase builds the 4-sample color-carrier template rotated by
// phaseOffset quarter-cycles, so the phase_offset argument lets a caller
// slide the burst phase without touching the source image.
func ccForPhase(phaseOffset int32) (cc [4]int32, ccs int32) {
	const full int32 = 16384
	for i := int32(0); i < 4; i++ {
		idx := (i + phaseOffset) & 3
		switch idx {
		case 0:
			cc[i] = full
		case 1:
			cc[i] = 0
		case 2:
			cc[i] = -full
		default:
			cc[i] = 0
		}
	}
	return cc, full
}

func renderOnce(dev *device.Device, opt renderOptions) error {
	cc, ccs := ccForPhase(opt.phaseOffset)
	field := int32(0)
	if opt.oddField {
		field = 1
	}

	if opt.kind == timing.Nes {
		data, h, err := loadNESField(opt.infile)
		if err != nil {
			return errors.Wrap(err, "loading NES field")
		}
		crt.EncodeNES(dev, crt.NESSettings{
			Data: data, H: h,
			DotCrawlOffset: opt.phaseOffset % 3,
			CC:             cc, CCS: ccs,
		})
	} else {
		rgbData, w, h, err := loadRGB(opt.infile)
		if err != nil {
			return errors.Wrap(err, "loading source image")
		}
		settings := crt.RGBSettings{
			RGB: rgbData, W: w, H: h,
			Raw: opt.raw, AsColor: !opt.monochrome, Field: field,
			CC: cc, CCS: ccs,
		}
		if opt.raw {
			crt.EncodeRGBFullscreen(dev, settings)
		} else {
			crt.EncodeRGB(dev, settings)
		}
	}

	crt.Decode(dev, opt.noise)
	return nil
}

// parseDims parses the four positional numeric arguments spec.md section
// 6 lists before infile/outfile: outw, outh, noise, phase_offset.
func parseDims(args []string) (outw, outh int, noise, phaseOffset int32, err error) {
	vals := make([]int, 4)
	for i, a := range args {
		var v int
		if _, serr := fmt.Sscanf(a, "%d", &v); serr != nil {
			return 0, 0, 0, 0, errors.Errorf("argument %d (%q) is not an integer", i+1, a)
		}
		vals[i] = v
	}
	return vals[0], vals[1], int32(vals[2]), int32(vals[3]), nil
}

// loadRGB decodes infile as a netpbm PPM or Windows bitmap, inferred from
// its extension, into a packed 0x00RRGGBB sample slice.
func loadRGB(path string) (pix []uint32, w, h int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, 0, errors.Wrap(err, "opening "+path)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".bmp":
		img, err := bitmap.Decode(f)
		if err != nil {
			return nil, 0, 0, errors.Wrap(err, "decoding bitmap")
		}
		return img.Pix, img.W, img.H, nil
	default:
		img, err := netpbm.Decode(f)
		if err != nil {
			return nil, 0, 0, errors.Wrap(err, "decoding netpbm")
		}
		return img.Pix, img.W, img.H, nil
	}
}

// loadNESField reads a raw binary stream of little-endian 16-bit NES PPU
// samples, 256 per row, the way the rest of the pack's fixed-record
// binary readers (e.g. codec/pcm) consume headerless sample streams.
func loadNESField(path string) ([]int32, int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, errors.Wrap(err, "reading "+path)
	}
	if len(raw)%2 != 0 {
		return nil, 0, errors.New("NES field file has an odd byte length")
	}
	n := len(raw) / 2
	data := make([]int32, n)
	for i := 0; i < n; i++ {
		data[i] = int32(raw[2*i]) | int32(raw[2*i+1])<<8
	}
	h := n / 256
	return data, h, nil
}

// writeRGB encodes a packed 0x00RRGGBB raster to outfile, inferring the
// container format from its extension (defaulting to netpbm PPM).
func writeRGB(path string, pix []uint32, w, h int) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating "+path)
	}
	defer f.Close()

	img := struct {
		W, H int
		Pix  []uint32
	}{w, h, pix}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".bmp":
		return bitmap.Encode(f, &bitmap.Image{W: img.W, H: img.H, Pix: img.Pix})
	default:
		return netpbm.Encode(f, &netpbm.Image{W: img.W, H: img.H, Pix: img.Pix})
	}
}
