package render

import (
	"image"
	"image/color"

	"github.com/gdamore/tcell/v2"
)

const (
	upperHalf = '▀'
	lowerHalf = '▄'
)

// opaque applies the sprite transparency rule: alpha below half is see-through.
func opaque(c color.Color) (color.NRGBA, bool) {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	_, _, _, a := c.RGBA()
	return n, a >= 0x8000
}

func toColor(c color.NRGBA) tcell.Color {
	return RGB(c.R, c.G, c.B)
}

// StampImage draws img at cell (x, y) with two pixels per cell using
// half-block characters (1 pixel = 1 column, 2 pixels = 1 row).
// Transparent pixels keep whatever background the cell already has.
func (e *Engine) StampImage(x, y int, img image.Image) {
	if img == nil {
		return
	}
	b := img.Bounds()
	rows := (b.Dy() + 1) / 2
	for row := 0; row < rows; row++ {
		sy := y + row
		if sy < 0 || sy >= e.height {
			continue
		}
		for px := 0; px < b.Dx(); px++ {
			sx := x + px
			if sx < 0 || sx >= e.width {
				continue
			}

			top, topOK := opaque(img.At(b.Min.X+px, b.Min.Y+row*2))
			var bot color.NRGBA
			botOK := false
			if row*2+1 < b.Dy() {
				bot, botOK = opaque(img.At(b.Min.X+px, b.Min.Y+row*2+1))
			}

			under := e.next[sy][sx].Bg
			switch {
			case topOK && botOK:
				e.next[sy][sx] = Cell{Ch: upperHalf, Fg: toColor(top), Bg: toColor(bot)}
			case topOK:
				e.next[sy][sx] = Cell{Ch: upperHalf, Fg: toColor(top), Bg: under}
			case botOK:
				e.next[sy][sx] = Cell{Ch: lowerHalf, Fg: toColor(bot), Bg: under}
			}
		}
	}
}

// ImageCells returns the size in cells that StampImage covers for img.
func ImageCells(img image.Image) (int, int) {
	if img == nil {
		return 0, 0
	}
	b := img.Bounds()
	return b.Dx(), (b.Dy() + 1) / 2
}
