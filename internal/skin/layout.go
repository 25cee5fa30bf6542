package skin

import "fmt"

// Rect is an axis-aligned rectangle in pixel units. Destination rectangles
// may carry fractional coordinates.
type Rect struct {
	X, Y, W, H float64
}

// R is a shorthand to build a Rect.
func R(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Contains reports whether the pixel at integer coordinate (x, y) falls inside r.
func (r Rect) Contains(x, y int) bool {
	fx, fy := float64(x), float64(y)
	return fx >= r.X && fx < r.X+r.W && fy >= r.Y && fy < r.Y+r.H
}

// MirrorRect returns the destination rectangle to draw into after a
// horizontal scale(-1, 1), so that the drawn pixels land back on r.
func MirrorRect(r Rect) Rect {
	r.X = -r.X - r.W
	return r
}

// Region names one rectangular area of a character sprite sheet.
type Region int

const (
	Head Region = iota
	Body
	ArmLeft
	ArmRight
	LegLeft
	LegRight
	HeadAccessory
	BodyAccessory
	ArmLeftAccessory
	ArmRightAccessory
	LegLeftAccessory
	LegRightAccessory

	regionCount
)

var regionNames = [regionCount]string{
	"head", "body", "arm_left", "arm_right", "leg_left", "leg_right",
	"head_accessory", "body_accessory", "arm_left_accessory",
	"arm_right_accessory", "leg_left_accessory", "leg_right_accessory",
}

func (r Region) String() string {
	if r < 0 || r >= regionCount {
		return fmt.Sprintf("region(%d)", int(r))
	}
	return regionNames[r]
}

// ParseRegion maps a region name such as "arm_left_accessory" back to its Region.
func ParseRegion(name string) (Region, bool) {
	for i, n := range regionNames {
		if n == name {
			return Region(i), true
		}
	}
	return 0, false
}

// Regions returns all twelve regions in declaration order.
func Regions() []Region {
	out := make([]Region, regionCount)
	for i := range out {
		out[i] = Region(i)
	}
	return out
}

// BaseRegions are the first-layer regions. The heuristic excludes all six;
// the compositor paints head separately so it always ends up on top.
var BaseRegions = []Region{Head, Body, ArmLeft, ArmRight, LegLeft, LegRight}

// RegionDescriptor describes how one region is copied from the sheet onto
// the surface.
type RegionDescriptor struct {
	Source Rect
	Dest   Rect

	// Mirror flips the region horizontally about its destination centerline.
	Mirror bool
	// Layer enlarges the region by 1.1x so it floats above the base region.
	Layer bool
	// Overlay marks the second-layer (accessory) regions.
	Overlay bool
}

// NamedLayout maps each of the twelve regions to its descriptor.
type NamedLayout map[Region]RegionDescriptor

// Lookup returns the descriptor for a region name.
func (l NamedLayout) Lookup(name string) (RegionDescriptor, bool) {
	r, ok := ParseRegion(name)
	if !ok {
		return RegionDescriptor{}, false
	}
	d, ok := l[r]
	return d, ok
}

// Dests returns the destination rectangles of the given regions, in order.
func (l NamedLayout) Dests(regions []Region) []Rect {
	out := make([]Rect, 0, len(regions))
	for _, r := range regions {
		out = append(out, l[r].Dest)
	}
	return out
}

// BuildLayout returns the region table for a canvas of 4*partW by 8*partH
// pixels. Source rectangles address a standard 64x64 skin sheet.
//
// A few destinations carry small fixed pixel nudges (the accessory arms and
// legs, the overlapping legs). A nudge that would push a rectangle past the
// canvas edge is cancelled by shifting the rectangle back inside; sizes are
// never changed.
func BuildLayout(partW, partH float64) NamedLayout {
	pw, ph := partW, partH

	l := NamedLayout{
		Head:     {Source: R(8, 8, 8, 8), Dest: R(pw, 0, pw*2, ph*2)},
		Body:     {Source: R(20, 20, 8, 12), Dest: R(pw, ph*2, pw*2, ph*3)},
		ArmLeft:  {Source: R(44, 20, 4, 12), Dest: R(0, ph*2, pw, ph*3)},
		ArmRight: {Source: R(44, 20, 4, 12), Dest: R(pw*3, ph*2, pw, ph*3), Mirror: true},
		LegLeft:  {Source: R(4, 20, 4, 12), Dest: R(pw, ph*5, pw+0.25, ph*3)},
		LegRight: {Source: R(4, 20, 4, 12), Dest: R(pw*2-0.25, ph*5, pw, ph*3), Mirror: true},

		HeadAccessory:     {Source: R(40, 8, 8, 8), Dest: R(pw, 0, pw*2, ph*2), Layer: true, Overlay: true},
		BodyAccessory:     {Source: R(20, 36, 8, 12), Dest: R(pw, ph*2, pw*2, ph*3), Layer: true, Overlay: true},
		ArmLeftAccessory:  {Source: R(60, 52, 4, 12), Dest: R(-4, ph*2, pw, ph*3), Overlay: true},
		ArmRightAccessory: {Source: R(52, 52, 4, 12), Dest: R(pw*3, ph*2, pw, ph*3), Overlay: true},
		LegLeftAccessory:  {Source: R(4, 36, 4, 12), Dest: R(pw-2, ph*5, pw, ph*3), Layer: true, Overlay: true},
		LegRightAccessory: {Source: R(4, 52, 4, 12), Dest: R(pw*2-4, ph*5, pw, ph*3), Layer: true, Overlay: true},
	}

	w, h := pw*4, ph*8
	for r, d := range l {
		d.Dest = fitWithin(d.Dest, w, h)
		l[r] = d
	}
	return l
}

func fitWithin(r Rect, w, h float64) Rect {
	if r.X+r.W > w {
		r.X = w - r.W
	}
	if r.X < 0 {
		r.X = 0
	}
	if r.Y+r.H > h {
		r.Y = h - r.H
	}
	if r.Y < 0 {
		r.Y = 0
	}
	return r
}
