// DESCRIPTION
//   preview.go is the interactive viewer: an ebiten window that shows
//   the device's decoded output raster and maps the key bindings listed
//   in spec.md section 6 onto Settings/Features mutations.
//
// AUTHOR
//   crtcore contributors

package main

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/crtcore/crtcore/codec/crt"
	"github.com/crtcore/crtcore/device"
)

// previewApp implements ebiten.Game, re-running Decode every frame so
// live parameter tweaks are visible immediately.
type previewApp struct {
	dev     *device.Device
	nes     bool
	nesData []int32
	rgbData []uint32
	w, h    int

	field      int32
	raw        bool
	asColor    bool
	dotCrawl   int32
	phaseUnlck bool

	img *image.RGBA
}

func newPreviewApp(dev *device.Device, w, h int, rgbData []uint32) *previewApp {
	return &previewApp{
		dev: dev, w: w, h: h, rgbData: rgbData,
		asColor: true,
		img:     image.NewRGBA(image.Rect(0, 0, dev.OutW, dev.OutH)),
	}
}

var ccTemplate = [4]int32{16384, 0, -16384, 0}

func (a *previewApp) reencode() {
	if a.nes {
		crt.EncodeNES(a.dev, crt.NESSettings{
			Data: a.nesData, H: a.h,
			DotCrawlOffset: a.dotCrawl,
			CC:             ccTemplate, CCS: 16384,
		})
	} else {
		crt.EncodeRGB(a.dev, crt.RGBSettings{
			RGB: a.rgbData, W: a.w, H: a.h,
			Raw: a.raw, AsColor: a.asColor, Field: a.field,
			CC: ccTemplate, CCS: 16384,
		})
	}
	crt.Decode(a.dev, a.dev.Settings.Noise)
}

// Update applies the key bindings: arrows -> brightness/contrast, q/a ->
// black_point, w/s -> white_point, 1/2 -> saturation, 3/4 -> noise, 5/6 ->
// hue, space -> toggle color, r -> reset, f -> toggle field, e -> raw off,
// t -> raw on, p -> NES dot-crawl offset++ (mod 3), o -> unlock phase.
// There is no separate progressive mode, and p leaves the RGB path's
// carrier template, and so its burst phase, unchanged.
func (a *previewApp) Update() error {
	s := &a.dev.Settings
	switch {
	case ebiten.IsKeyPressed(ebiten.KeyArrowUp):
		s.Brightness++
	case ebiten.IsKeyPressed(ebiten.KeyArrowDown):
		s.Brightness--
	case ebiten.IsKeyPressed(ebiten.KeyArrowRight):
		s.Contrast++
	case ebiten.IsKeyPressed(ebiten.KeyArrowLeft):
		s.Contrast--
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		s.BlackPoint--
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyA) {
		s.BlackPoint++
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyW) {
		s.WhitePoint++
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		s.WhitePoint--
	}
	if inpututil.IsKeyJustPressed(ebiten.Key1) {
		s.Saturation--
	}
	if inpututil.IsKeyJustPressed(ebiten.Key2) {
		s.Saturation++
	}
	if inpututil.IsKeyJustPressed(ebiten.Key3) {
		s.Noise--
	}
	if inpututil.IsKeyJustPressed(ebiten.Key4) {
		s.Noise++
	}
	if inpututil.IsKeyJustPressed(ebiten.Key5) {
		s.Hue--
	}
	if inpututil.IsKeyJustPressed(ebiten.Key6) {
		s.Hue++
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		a.asColor = !a.asColor
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		a.dev.Reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		a.field ^= 1
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyE) {
		a.raw = false
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		a.raw = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		a.dotCrawl = (a.dotCrawl + 1) % 3
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyO) {
		a.phaseUnlck = !a.phaseUnlck
		a.dev.Features.DoHsync = !a.phaseUnlck
	}
	s.Clamp()

	a.reencode()
	return nil
}

func (a *previewApp) Draw(screen *ebiten.Image) {
	for y := 0; y < a.dev.OutH; y++ {
		for x := 0; x < a.dev.OutW; x++ {
			px := a.dev.Out[y*a.dev.OutW+x]
			a.img.SetRGBA(x, y, color.RGBA{
				R: byte(px >> 16), G: byte(px >> 8), B: byte(px), A: 255,
			})
		}
	}
	screen.WritePixels(a.img.Pix)
}

func (a *previewApp) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.dev.OutW, a.dev.OutH
}

func runPreview(dev *device.Device, w, h int, rgbData []uint32) error {
	app := newPreviewApp(dev, w, h, rgbData)
	ebiten.SetWindowSize(dev.OutW*2, dev.OutH*2)
	ebiten.SetWindowTitle("crtview")
	return ebiten.RunGame(app)
}
