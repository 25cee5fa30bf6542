package skin

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// bodyOrder is the paint order of the first-layer regions below the head.
var bodyOrder = []Region{Body, ArmLeft, ArmRight, LegLeft, LegRight}

// accessoryOrder is the paint order of the second-layer regions below the head.
var accessoryOrder = []Region{BodyAccessory, ArmLeftAccessory, ArmRightAccessory, LegLeftAccessory, LegRightAccessory}

// Composite paints a character from sheet onto s, replacing whatever s held.
// The layout is derived from the surface size (width/4 by height/8 parts).
// It returns whether the second layer was drawn.
//
// The overlay decision is made on a probe holding the sheet itself, with the
// six first-layer source areas masked out: what remains is the sheet's
// background and second layer.
func Composite(s *Surface, sheet image.Image) bool {
	s.Clear()

	w, h := s.Size()
	layout := BuildLayout(float64(w)/4, float64(h)/8)

	for _, r := range bodyOrder {
		s.PaintRegion(sheet, layout[r])
	}

	overlay := sheetHasOverlay(sheet, layout)

	heads := []Region{Head}
	if overlay {
		for _, r := range accessoryOrder {
			s.PaintRegion(sheet, layout[r])
		}
		heads = append(heads, HeadAccessory)
	}
	for _, r := range heads {
		s.PaintRegion(sheet, layout[r])
	}

	return overlay
}

// CompositeImage composites sheet onto a new w x h surface.
func CompositeImage(sheet image.Image, w, h int) (*image.RGBA, bool) {
	s := NewSurface(w, h)
	overlay := Composite(s, sheet)
	return s.Image(), overlay
}

func sheetHasOverlay(sheet image.Image, layout NamedLayout) bool {
	b := sheet.Bounds()
	probe := NewSurface(b.Dx(), b.Dy())
	xdraw.Draw(probe.img, probe.img.Bounds(), sheet, b.Min, xdraw.Over)

	excluded := make([]Rect, 0, len(BaseRegions))
	for _, r := range BaseRegions {
		excluded = append(excluded, layout[r].Source)
	}
	return HasOverlayContent(probe, excluded, b.Dx(), b.Dy())
}
