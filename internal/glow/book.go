// Package glow draws the enchanted book: a small book sprite with an
// animated enchantment tint that fades in and out.
package glow

import (
	"image"
	"image/color"
	"time"
)

const (
	// SpriteSize is the edge length of the book sprite in pixels.
	SpriteSize = 16
	// TimeStep is how far the shader clock moves per frame.
	TimeStep = 0.01
)

// Book is the enchanted book sprite and its animation state.
type Book struct {
	noise *SimplexNoise
	base  *image.NRGBA
	fader Fader
	time  float64
}

// NewBook creates a book whose noise and cover grain derive from seed.
func NewBook(seed uint64) *Book {
	n := NewSimplexNoise(seed)
	return &Book{noise: n, base: bookSprite(n)}
}

// Toggle starts fading the enchantment in or out.
func (b *Book) Toggle() { b.fader.Toggle() }

// Enchanted reports whether the enchantment is fading in or fully shown.
func (b *Book) Enchanted() bool { return b.fader.Rising() }

// Opacity returns the current enchantment opacity.
func (b *Book) Opacity() float64 { return b.fader.Opacity() }

// Time returns the shader clock.
func (b *Book) Time() float64 { return b.time }

// Step advances one frame: the shader clock ticks and the fade progresses
// by dt.
func (b *Book) Step(dt time.Duration) {
	b.time += TimeStep
	b.fader.Advance(dt)
}

// Base returns the unshaded sprite.
func (b *Book) Base() *image.NRGBA { return b.base }

// Frame renders the sprite with the current enchantment applied.
func (b *Book) Frame() *image.NRGBA {
	bounds := b.base.Bounds()
	out := image.NewNRGBA(bounds)
	o := b.fader.Opacity()

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := b.base.NRGBAAt(x, y)
			if c.A == 0 {
				continue
			}
			u := (float64(x) + 0.5) / float64(bounds.Dx())
			v := (float64(y) + 0.5) / float64(bounds.Dy())
			g, ok := Shade(b.noise, c, u, v, b.time, o)
			if !ok {
				out.SetNRGBA(x, y, c)
				continue
			}
			r, gg, bb := Over(c, g).RGB255()
			out.SetNRGBA(x, y, color.NRGBA{R: r, G: gg, B: bb, A: c.A})
		}
	}
	return out
}

// bookSprite draws a closed book seen from the front: a leather cover with
// noise grain, a darker spine on the left and page edges on the right.
func bookSprite(n *SimplexNoise) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, SpriteSize, SpriteSize))

	spine := color.NRGBA{R: 74, G: 38, B: 22, A: 255}
	pages := color.NRGBA{R: 232, G: 220, B: 188, A: 255}
	clasp := color.NRGBA{R: 212, G: 175, B: 55, A: 255}

	for y := 2; y < SpriteSize-1; y++ {
		for x := 2; x < SpriteSize-2; x++ {
			switch {
			case x == 2 || x == 3:
				img.SetNRGBA(x, y, spine)
			case x == SpriteSize-3:
				img.SetNRGBA(x, y, pages)
			default:
				grain := n.Fractal(float64(x), float64(y), 0.35, 3, 2, 0.5)
				shade := uint8(90 + 50*grain)
				img.SetNRGBA(x, y, color.NRGBA{R: shade + 20, G: shade / 2, B: shade / 4, A: 255})
			}
		}
	}
	img.SetNRGBA(SpriteSize-4, SpriteSize/2, clasp)
	img.SetNRGBA(SpriteSize-4, SpriteSize/2-1, clasp)
	return img
}
