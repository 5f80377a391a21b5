// Package proof renders the workshop's order artifacts: a side-by-side proof sheet
// and a printable work order.
package proof

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	_ "golang.org/x/image/webp"
)

const (
	panelSize    = 600
	gutter       = 40
	headerHeight = 90
	footerHeight = 60

	sheetWidth  = 2*panelSize + 3*gutter
	sheetHeight = headerHeight + panelSize + footerHeight
)

var (
	regularFont = mustParseFont(goregular.TTF)
	boldFont    = mustParseFont(gobold.TTF)
)

func mustParseFont(ttf []byte) *truetype.Font {
	f, err := truetype.Parse(ttf)
	if err != nil {
		panic(err)
	}
	return f
}

// MaxPixels bounds the images this package will decode. The header is checked first, so a
// small file declaring huge dimensions is rejected before any pixel buffer is allocated.
const MaxPixels = 40_000_000

// ErrTooLarge is returned for images whose declared dimensions exceed MaxPixels.
var ErrTooLarge = errors.New("image dimensions too large")

func checkDimensions(data []byte) (string, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return "", fmt.Errorf("image has no pixels")
	}
	if int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return "", fmt.Errorf("%w: %dx%d", ErrTooLarge, cfg.Width, cfg.Height)
	}
	return format, nil
}

// decodeBounded decodes data after checking its declared dimensions against MaxPixels.
func decodeBounded(data []byte) (image.Image, error) {
	if _, err := checkDimensions(data); err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	return img, err
}

// Verify fully decodes data and reports its format. Truncated or corrupt images fail,
// as do images larger than MaxPixels. It accepts png, jpeg, gif and webp.
func Verify(data []byte) (string, error) {
	format, err := checkDimensions(data)
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}
	if b := img.Bounds(); b.Dx() == 0 || b.Dy() == 0 {
		return "", fmt.Errorf("image has no pixels")
	}
	return format, nil
}

// ComposeProof places the original photo and the engraving preview side by side on a
// single PNG, captioned with caption.
func ComposeProof(original, engraving []byte, caption string) ([]byte, error) {
	left, err := decodeBounded(original)
	if err != nil {
		return nil, fmt.Errorf("decode original: %w", err)
	}
	right, err := decodeBounded(engraving)
	if err != nil {
		return nil, fmt.Errorf("decode engraving: %w", err)
	}

	dc := gg.NewContext(sheetWidth, sheetHeight)
	dc.SetRGB255(244, 239, 230)
	dc.Clear()

	dc.SetRGB255(4, 30, 66)
	dc.SetFontFace(truetype.NewFace(boldFont, &truetype.Options{Size: 34}))
	dc.DrawStringAnchored("NITTANY CRAFT.  PROOF", float64(sheetWidth)/2, headerHeight/2, 0.5, 0.5)

	dc.SetFontFace(truetype.NewFace(regularFont, &truetype.Options{Size: 20}))
	for i, panel := range []struct {
		img   image.Image
		label string
	}{
		{left, "ORIGINAL"},
		{right, "ENGRAVING"},
	} {
		x := gutter + i*(panelSize+gutter)
		y := headerHeight

		dc.SetColor(color.White)
		dc.DrawRectangle(float64(x), float64(y), panelSize, panelSize)
		dc.Fill()

		fitted := fit(panel.img, panelSize, panelSize)
		b := fitted.Bounds()
		dc.DrawImage(fitted, x+(panelSize-b.Dx())/2, y+(panelSize-b.Dy())/2)

		dc.SetRGB255(43, 33, 24)
		dc.DrawStringAnchored(panel.label, float64(x)+panelSize/2, float64(y+panelSize+footerHeight/2), 0.5, 0.5)
	}

	if caption != "" {
		dc.SetRGB255(107, 93, 79)
		dc.SetFontFace(truetype.NewFace(regularFont, &truetype.Options{Size: 14}))
		dc.DrawStringAnchored(caption, float64(sheetWidth)-gutter, float64(sheetHeight)-12, 1, 0)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, dc.Image()); err != nil {
		return nil, fmt.Errorf("encode proof: %w", err)
	}
	return buf.Bytes(), nil
}

// fit scales img down, preserving aspect ratio, to fit within w x h. Smaller images are
// returned unscaled.
func fit(img image.Image, w, h int) image.Image {
	b := img.Bounds()
	if b.Dx() <= w && b.Dy() <= h {
		return img
	}

	scale := min(float64(w)/float64(b.Dx()), float64(h)/float64(b.Dy()))
	dw := max(1, int(float64(b.Dx())*scale))
	dh := max(1, int(float64(b.Dy())*scale))

	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Over, nil)
	return dst
}
