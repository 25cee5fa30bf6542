package skin

import (
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

const (
	// layerScale enlarges accessory layers so they sit slightly proud of the body.
	layerScale = 1.1
)

// Surface is the raster a skin is composited onto. It carries a canvas-style
// current transform; Save/restore bracket every change to it.
type Surface struct {
	img   *image.RGBA
	ctm   Matrix
	stack []Matrix
}

// NewSurface allocates a transparent surface of w x h pixels.
func NewSurface(w, h int) *Surface {
	return &Surface{
		img: image.NewRGBA(image.Rect(0, 0, w, h)),
		ctm: Identity(),
	}
}

// Image returns the backing pixel buffer.
func (s *Surface) Image() *image.RGBA {
	return s.img
}

// Size returns the surface dimensions in pixels.
func (s *Surface) Size() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

// Transform returns the current transform.
func (s *Surface) Transform() Matrix {
	return s.ctm
}

// Depth returns the number of saved transforms.
func (s *Surface) Depth() int {
	return len(s.stack)
}

// Clear resets every pixel to transparent and drops any saved transforms.
func (s *Surface) Clear() {
	xdraw.Draw(s.img, s.img.Bounds(), image.Transparent, image.Point{}, xdraw.Src)
	s.ctm = Identity()
	s.stack = s.stack[:0]
}

// Save pushes the current transform and returns the function that restores
// it. Callers defer the returned function.
func (s *Surface) Save() (restore func()) {
	s.stack = append(s.stack, s.ctm)
	depth := len(s.stack)
	return func() {
		if len(s.stack) < depth {
			return
		}
		s.ctm = s.stack[depth-1]
		s.stack = s.stack[:depth-1]
	}
}

// Scoped runs fn with the current transform saved; the transform is restored
// when fn returns or panics.
func (s *Surface) Scoped(fn func() error) error {
	restore := s.Save()
	defer restore()
	return fn()
}

// Scale post-multiplies the current transform by a scale.
func (s *Surface) Scale(x, y float64) {
	s.ctm = s.ctm.Multiply(Scale(x, y))
}

// Translate post-multiplies the current transform by a translation.
func (s *Surface) Translate(x, y float64) {
	s.ctm = s.ctm.Multiply(Translate(x, y))
}

// PaintRegion copies d.Source of src onto d.Dest. A mirrored region is
// flipped first; a layered region is then scaled up by 1.1 and nudged
// inwards. The transform in effect before the call is always restored.
func (s *Surface) PaintRegion(src image.Image, d RegionDescriptor) {
	_ = s.Scoped(func() error {
		dest := d.Dest
		if d.Mirror {
			s.Scale(-1, 1)
			dest = MirrorRect(dest)
		}
		if d.Layer {
			s.Scale(layerScale, layerScale)
			s.Translate(-d.Dest.W/9, -d.Dest.H/10)
		}
		s.DrawImage(src, d.Source, dest)
		return nil
	})
}

// DrawImage draws the sr portion of src into dr under the current transform
// using nearest-neighbour sampling and source-over compositing. Pixels that
// fall outside the surface are clipped.
func (s *Surface) DrawImage(src image.Image, sr, dr Rect) {
	if sr.W <= 0 || sr.H <= 0 || dr.W == 0 || dr.H == 0 {
		return
	}
	srcRect := image.Rect(int(sr.X), int(sr.Y), int(sr.X+sr.W), int(sr.Y+sr.H)).Intersect(src.Bounds())
	if srcRect.Empty() {
		return
	}

	place := Translate(dr.X, dr.Y).
		Multiply(Scale(dr.W/sr.W, dr.H/sr.H)).
		Multiply(Translate(-sr.X, -sr.Y))
	m := s.ctm.Multiply(place)

	s2d := f64.Aff3{m.A, m.B, m.C, m.D, m.E, m.F}
	xdraw.NearestNeighbor.Transform(s.img, s2d, src, srcRect, xdraw.Over, nil)
}

// NRGBAAt returns the non-premultiplied colour at (x, y), matching what a
// canvas readback reports.
func (s *Surface) NRGBAAt(x, y int) color.NRGBA {
	return color.NRGBAModel.Convert(s.img.RGBAAt(x, y)).(color.NRGBA)
}
