package app

import "time"

const TickRate = 20 // ticks per second

// FrameInterval is the wall time of one tick.
const FrameInterval = time.Second / TickRate

// SecsToTicks converts a duration in seconds to hub ticks.
func SecsToTicks(s float64) int {
	t := int(s * TickRate)
	if t < 1 {
		t = 1
	}
	return t
}

// DefaultDebounce is how long a search query must stay unchanged before it
// is looked up.
const DefaultDebounce = 300 * time.Millisecond

// MaxQueryLen is the longest accepted username.
const MaxQueryLen = 16
