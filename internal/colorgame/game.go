// Package colorgame implements the colour guessing game: one of the shown
// swatches matches the target colour, and each win adds another swatch.
package colorgame

import (
	"errors"
	"math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"
)

// StartColors is the number of swatches in a fresh round.
const StartColors = 2

// Outcome is the state of the current round.
type Outcome int

const (
	Pending Outcome = iota
	Correct
	Incorrect
)

func (o Outcome) String() string {
	switch o {
	case Correct:
		return "Correct!"
	case Incorrect:
		return "Incorrect!"
	default:
		return ""
	}
}

var (
	ErrAlreadyGuessed = errors.New("colorgame: round already decided")
	ErrOutOfRange     = errors.New("colorgame: no such swatch")
	ErrNotDecided     = errors.New("colorgame: round not decided")
)

// Game holds one player's colour game.
type Game struct {
	rng *rand.Rand

	colors  []colorful.Color
	answer  int
	guess   int
	outcome Outcome

	count int
	score int
	best  int
}

// New starts a game with StartColors swatches. best seeds the best score.
func New(rng *rand.Rand, best int) *Game {
	g := &Game{rng: rng, count: StartColors, best: best}
	g.deal()
	return g
}

func (g *Game) deal() {
	g.colors = make([]colorful.Color, g.count)
	for i := range g.colors {
		g.colors[i] = colorful.Color{
			R: float64(g.rng.IntN(256)) / 255,
			G: float64(g.rng.IntN(256)) / 255,
			B: float64(g.rng.IntN(256)) / 255,
		}
	}
	g.answer = g.rng.IntN(g.count)
	g.guess = -1
	g.outcome = Pending
}

// Colors returns the swatches of the current round.
func (g *Game) Colors() []colorful.Color { return g.colors }

// Target returns the colour to match.
func (g *Game) Target() colorful.Color { return g.colors[g.answer] }

// AnswerIndex returns the index of the matching swatch.
func (g *Game) AnswerIndex() int { return g.answer }

// Guessed returns the index of the last guess, or -1.
func (g *Game) Guessed() int { return g.guess }

func (g *Game) Outcome() Outcome { return g.outcome }
func (g *Game) Score() int       { return g.score }
func (g *Game) Best() int        { return g.best }

// Guess picks swatch i. A round can only be guessed once.
func (g *Game) Guess(i int) (Outcome, error) {
	if g.outcome != Pending {
		return g.outcome, ErrAlreadyGuessed
	}
	if i < 0 || i >= len(g.colors) {
		return Pending, ErrOutOfRange
	}
	g.guess = i
	if i == g.answer {
		g.outcome = Correct
	} else {
		g.outcome = Incorrect
	}
	return g.outcome, nil
}

// Distance is the CIEDE2000 difference between the guessed swatch and the
// target. It is 0 before a guess and after a correct one.
func (g *Game) Distance() float64 {
	if g.guess < 0 {
		return 0
	}
	return g.colors[g.guess].DistanceCIEDE2000(g.Target())
}

// Continue moves on after a correct guess: the score goes up, the best is
// saved and the next round has one more swatch.
func (g *Game) Continue() error {
	if g.outcome != Correct {
		return ErrNotDecided
	}
	g.score++
	g.saveBest()
	g.count++
	g.deal()
	return nil
}

// Retry restarts after a wrong guess with StartColors swatches and a zero
// score. The best score survives.
func (g *Game) Retry() error {
	if g.outcome != Incorrect {
		return ErrNotDecided
	}
	g.saveBest()
	g.score = 0
	g.count = StartColors
	g.deal()
	return nil
}

func (g *Game) saveBest() {
	if g.score > g.best {
		g.best = g.score
	}
}
