package skin

const (
	// legacyArea bounds the scan to the classic 64x64 skin sheet.
	legacyArea = 64

	blackChannelMax = 20
	blackAlphaMin   = 235

	overlayRatioMin = 0.8
)

// HasOverlayContent reports whether the painted pixels outside excluded look
// like real second-layer art rather than an empty or flat-black placeholder.
//
// Only the top-left 64x64 pixels are scanned. Fully transparent pixels are
// ignored. Of the rest, near-black opaque pixels are counted against the
// total; the surface has overlay content when the non-black share is above
// 0.8 but not exactly 1. Nothing painted at all means no overlay.
func HasOverlayContent(s *Surface, excluded []Rect, width, height int) bool {
	sw, sh := s.Size()
	maxX := min(legacyArea, width, sw)
	maxY := min(legacyArea, height, sh)

	total, black := 0, 0
	for y := 0; y < maxY; y++ {
		for x := 0; x < maxX; x++ {
			if isExcluded(excluded, x, y) {
				continue
			}
			c := s.NRGBAAt(x, y)
			if c.A == 0 {
				continue
			}
			total++
			if c.R < blackChannelMax && c.G < blackChannelMax && c.B < blackChannelMax && c.A > blackAlphaMin {
				black++
			}
		}
	}

	if total == 0 {
		return false
	}
	ratio := 1 - float64(black)/float64(total)
	return ratio > overlayRatioMin && ratio != 1
}

func isExcluded(rects []Rect, x, y int) bool {
	for _, r := range rects {
		if r.Contains(x, y) {
			return true
		}
	}
	return false
}
