package glow

import "time"

const (
	// FadeStep is the opacity change per fade step.
	FadeStep = 0.04
	// FadeInterval is the time between fade steps.
	FadeInterval = 16 * time.Millisecond
)

// Fader moves an opacity toward 0 or 1 in fixed steps.
type Fader struct {
	opacity float64
	rising  bool
	pending time.Duration
}

// FadeIn starts moving the opacity toward 1.
func (f *Fader) FadeIn() {
	f.rising = true
}

// FadeOut starts moving the opacity toward 0.
func (f *Fader) FadeOut() {
	f.rising = false
}

// Toggle reverses the fade direction.
func (f *Fader) Toggle() {
	f.rising = !f.rising
}

// Rising reports whether the fader is heading toward 1.
func (f *Fader) Rising() bool {
	return f.rising
}

// Opacity returns the current opacity in [0, 1].
func (f *Fader) Opacity() float64 {
	return f.opacity
}

// Advance applies every whole fade step that fits into dt plus the time
// carried over from earlier calls.
func (f *Fader) Advance(dt time.Duration) {
	f.pending += dt
	steps := int(f.pending / FadeInterval)
	f.pending -= time.Duration(steps) * FadeInterval

	for ; steps > 0; steps-- {
		if f.rising {
			f.opacity = min(1, f.opacity+FadeStep)
		} else {
			f.opacity = max(0, f.opacity-FadeStep)
		}
	}
}
