package glow

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// discardAlpha is the alpha below which a shaded pixel is dropped.
const discardAlpha = 0.1

// pulse is the strength of the pink overlay; the pulse is frozen.
var pulse = 0.5 + 0.5*math.Sin(0.5)

// Tint is a shaded colour with straight alpha, components in [0, 1].
type Tint struct{ R, G, B, A float64 }

// Shade computes the enchantment colour for a pixel of base at texture
// coordinate (u, v), time t and the given opacity. The second result is
// false when the pixel is discarded.
func Shade(n *SimplexNoise, base color.NRGBA, u, v, t, opacity float64) (Tint, bool) {
	b := Tint{
		R: float64(base.R) / 255,
		G: float64(base.G) / 255,
		B: float64(base.B) / 255,
		A: float64(base.A) / 255,
	}
	o := opacity

	noise := n.Noise3D(u*3, v*3, t*1.5)
	ov := Tint{R: 0.25 * o, G: 0.05 * o, B: 0.6 * o}
	k := noise + 0.5

	out := Tint{
		R: 1 - (1-b.R*o)*(1-ov.R*k),
		G: 1 - (1-b.G*o)*(1-ov.G*k),
		B: 1 - (1-b.B*o)*(1-ov.B*k),
		A: b.A * 0.7 * o,
	}

	if b.A > 0.9 {
		out.R += 0.05 * o
		out.G += 0.03 * o
		out.B += 0.4 * o
	}

	pink := Tint{R: 1 * o * pulse, G: 0.2 * o * pulse, B: 0.8 * o * pulse, A: 0.2 * o * pulse}
	out.R += pink.R * 0.2 * o
	out.G += pink.G * 0.2 * o
	out.B += pink.B * 0.2 * o

	out = Tint{
		R: mix(out.R, pink.R, pink.A),
		G: mix(out.G, pink.G, pink.A),
		B: mix(out.B, pink.B, pink.A),
		A: mix(out.A, pink.A, pink.A),
	}
	out.A *= 0.5

	if out.A < discardAlpha {
		return Tint{}, false
	}
	out.R, out.G, out.B = clamp01(out.R), clamp01(out.G), clamp01(out.B)
	out.A = clamp01(out.A)
	return out, true
}

// Over blends a shaded pixel onto the base colour it was computed from.
func Over(base color.NRGBA, glow Tint) colorful.Color {
	c := colorful.Color{
		R: float64(base.R) / 255,
		G: float64(base.G) / 255,
		B: float64(base.B) / 255,
	}
	return c.BlendRgb(colorful.Color{R: glow.R, G: glow.G, B: glow.B}, glow.A).Clamped()
}

func mix(x, y, a float64) float64 {
	return x*(1-a) + y*a
}

func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}
