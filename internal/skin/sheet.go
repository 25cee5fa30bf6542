// Package skin composites Minecraft-style character sprite sheets into a
// front-facing figure: a fixed region table, a scoped-transform painter, a
// background heuristic deciding whether the second layer is real, and the
// compositor that ties them together.
package skin

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	xdraw "golang.org/x/image/draw"
)

// Variant is the arm model of a skin.
type Variant string

const (
	Normal Variant = "normal"
	Slim   Variant = "slim"
)

// ParseVariant maps a texture metadata model to a Variant. Anything other
// than "slim" is the normal model.
func ParseVariant(model string) Variant {
	if model == string(Slim) {
		return Slim
	}
	return Normal
}

// Source identifies a skin sheet to composite.
type Source struct {
	URL     string
	Variant Variant
}

// SheetSize is the edge length of a standard skin sheet.
const SheetSize = 64

const (
	// MaxSheetDim bounds both sheet dimensions; high-resolution skins stay
	// well below it.
	MaxSheetDim = 1024
	// MaxSheetBytes bounds the encoded size read from a sheet source.
	MaxSheetBytes = 4 << 20
)

var (
	ErrSheetTooLarge = errors.New("skin sheet too large")
	ErrSheetTooSmall = errors.New("skin sheet too small")
)

// DecodeSheet decodes a PNG skin sheet. The header is checked before the
// pixels are decoded, so an oversized sheet is rejected without allocating
// its image.
func DecodeSheet(r io.Reader) (image.Image, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxSheetBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read skin sheet: %w", err)
	}
	if len(data) > MaxSheetBytes {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrSheetTooLarge, MaxSheetBytes)
	}

	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode skin sheet: %w", err)
	}
	if cfg.Width > MaxSheetDim || cfg.Height > MaxSheetDim {
		return nil, fmt.Errorf("%w: %dx%d exceeds %dx%d", ErrSheetTooLarge, cfg.Width, cfg.Height, MaxSheetDim, MaxSheetDim)
	}
	if cfg.Width < SheetSize || cfg.Height < SheetSize/2 {
		return nil, fmt.Errorf("%w: %dx%d is smaller than %dx%d", ErrSheetTooSmall, cfg.Width, cfg.Height, SheetSize, SheetSize/2)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode skin sheet: %w", err)
	}
	return img, nil
}

// DefaultSheet returns a plain built-in character used when no skin file is
// available: first layer only, second layer left transparent.
func DefaultSheet() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, SheetSize, SheetSize))

	skinTone := color.NRGBA{R: 186, G: 134, B: 102, A: 255}
	hair := color.NRGBA{R: 58, G: 40, B: 24, A: 255}
	shirt := color.NRGBA{R: 0, G: 168, B: 168, A: 255}
	pants := color.NRGBA{R: 60, G: 56, B: 160, A: 255}
	shoes := color.NRGBA{R: 70, G: 70, B: 70, A: 255}
	eyeWhite := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	eye := color.NRGBA{R: 82, G: 61, B: 137, A: 255}
	mouth := color.NRGBA{R: 106, G: 64, B: 48, A: 255}

	fill := func(x, y, w, h int, c color.NRGBA) {
		xdraw.Draw(img, image.Rect(x, y, x+w, y+h), image.NewUniform(c), image.Point{}, xdraw.Src)
	}

	// head: all faces skin, hair on top and upper band
	fill(0, 8, 32, 8, skinTone)
	fill(8, 0, 16, 8, hair)
	fill(0, 8, 32, 2, hair)
	fill(9, 12, 1, 1, eyeWhite)
	fill(10, 12, 1, 1, eye)
	fill(13, 12, 1, 1, eye)
	fill(14, 12, 1, 1, eyeWhite)
	fill(11, 14, 2, 1, mouth)

	// body
	fill(16, 20, 24, 12, shirt)
	fill(20, 16, 16, 4, shirt)

	// arms: sleeve then skin
	fill(40, 20, 16, 12, skinTone)
	fill(40, 20, 16, 4, shirt)
	fill(44, 16, 8, 4, shirt)

	// legs
	fill(0, 20, 16, 12, pants)
	fill(0, 30, 16, 2, shoes)
	fill(4, 16, 8, 4, pants)

	return img
}
