package skin

import (
	"image"
	"image/color"
	"testing"

	xdraw "golang.org/x/image/draw"
)

var black = color.RGBA{A: 255}

func fillSurface(s *Surface, r image.Rectangle, c color.Color) {
	xdraw.Draw(s.Image(), r, image.NewUniform(c), image.Point{}, xdraw.Src)
}

func TestHasOverlayContent(t *testing.T) {
	tests := []struct {
		name  string
		paint func(s *Surface)
		want  bool
	}{
		{
			name:  "nothing painted",
			paint: func(s *Surface) {},
			want:  false,
		},
		{
			name: "all black",
			paint: func(s *Surface) {
				fillSurface(s, image.Rect(0, 0, 10, 10), black)
			},
			want: false,
		},
		{
			name: "all one colour",
			paint: func(s *Surface) {
				fillSurface(s, image.Rect(0, 0, 10, 10), red)
			},
			want: false,
		},
		{
			name: "mostly coloured with some black",
			paint: func(s *Surface) {
				fillSurface(s, image.Rect(0, 0, 10, 10), red)
				fillSurface(s, image.Rect(0, 0, 10, 1), black)
				fillSurface(s, image.Rect(0, 1, 9, 2), black)
			},
			want: true, // 19 black of 100
		},
		{
			name: "exactly a fifth black",
			paint: func(s *Surface) {
				fillSurface(s, image.Rect(0, 0, 10, 10), red)
				fillSurface(s, image.Rect(0, 0, 10, 2), black)
			},
			want: false, // ratio 0.8 is not above 0.8
		},
		{
			name: "near black counts as black",
			paint: func(s *Surface) {
				fillSurface(s, image.Rect(0, 0, 10, 10), color.RGBA{R: 19, G: 19, B: 19, A: 255})
			},
			want: false,
		},
		{
			name: "transparent pixels are ignored",
			paint: func(s *Surface) {
				fillSurface(s, image.Rect(0, 0, 10, 1), black)
				fillSurface(s, image.Rect(0, 9, 10, 10), red)
				fillSurface(s, image.Rect(0, 8, 10, 9), green)
				fillSurface(s, image.Rect(0, 7, 10, 8), blue)
				fillSurface(s, image.Rect(0, 6, 10, 7), yellow)
				fillSurface(s, image.Rect(0, 5, 10, 6), red)
			},
			want: true, // 10 black of 60 painted
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSurface(10, 10)
			tt.paint(s)
			if got := HasOverlayContent(s, nil, 10, 10); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestHasOverlayContentExcludesRects(t *testing.T) {
	s := NewSurface(10, 10)
	fillSurface(s, image.Rect(0, 0, 10, 10), black)
	fillSurface(s, image.Rect(5, 0, 10, 10), red)
	fillSurface(s, image.Rect(5, 0, 10, 1), black)

	// Left half black: with it, the ratio is far too low.
	if HasOverlayContent(s, nil, 10, 10) {
		t.Error("expected mostly black surface to have no overlay")
	}
	// Masking the black half leaves 5 black of 50.
	if !HasOverlayContent(s, []Rect{R(0, 0, 5, 10)}, 10, 10) {
		t.Error("expected overlay once the black half is excluded")
	}
	// Masking everything leaves nothing to judge.
	if HasOverlayContent(s, []Rect{R(0, 0, 10, 10)}, 10, 10) {
		t.Error("expected no overlay when every pixel is excluded")
	}
}

func TestHasOverlayContentScansTopLeft64(t *testing.T) {
	s := NewSurface(128, 128)
	fillSurface(s, image.Rect(0, 0, 64, 64), red)
	fillSurface(s, image.Rect(0, 0, 64, 1), black)
	// Black outside the scanned area must not count.
	fillSurface(s, image.Rect(64, 0, 128, 128), black)
	fillSurface(s, image.Rect(0, 64, 64, 128), black)

	if !HasOverlayContent(s, nil, 128, 128) {
		t.Error("expected pixels beyond 64x64 to be ignored")
	}
	// A smaller requested area narrows the scan further.
	if HasOverlayContent(s, nil, 64, 1) {
		t.Error("expected all-black first row to report no overlay")
	}
}
