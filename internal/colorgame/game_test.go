package colorgame

import (
	"errors"
	"math/rand/v2"
	"testing"
)

func newGame(best int) *Game {
	return New(rand.New(rand.NewPCG(1, 2)), best)
}

func wrongIndex(g *Game) int {
	return (g.AnswerIndex() + 1) % len(g.Colors())
}

func TestNewGame(t *testing.T) {
	g := newGame(4)
	if len(g.Colors()) != StartColors {
		t.Fatalf("expected %d colours, got %d", StartColors, len(g.Colors()))
	}
	if g.Outcome() != Pending || g.Score() != 0 || g.Best() != 4 {
		t.Errorf("unexpected start state: outcome=%v score=%d best=%d", g.Outcome(), g.Score(), g.Best())
	}
	if g.Target() != g.Colors()[g.AnswerIndex()] {
		t.Error("expected target to be one of the swatches")
	}
	for _, c := range g.Colors() {
		if len(c.Hex()) != 7 {
			t.Errorf("expected #rrggbb, got %q", c.Hex())
		}
	}
}

func TestWinningStreak(t *testing.T) {
	g := newGame(0)

	for round := 1; round <= 5; round++ {
		out, err := g.Guess(g.AnswerIndex())
		if err != nil || out != Correct {
			t.Fatalf("round %d: expected Correct, got %v err=%v", round, out, err)
		}
		if g.Distance() != 0 {
			t.Errorf("round %d: expected zero distance for a correct guess, got %v", round, g.Distance())
		}
		if err := g.Continue(); err != nil {
			t.Fatalf("round %d: Continue: %v", round, err)
		}
		if g.Score() != round || g.Best() != round {
			t.Errorf("round %d: expected score and best %d, got %d/%d", round, round, g.Score(), g.Best())
		}
		if len(g.Colors()) != StartColors+round {
			t.Errorf("round %d: expected %d colours, got %d", round, StartColors+round, len(g.Colors()))
		}
		if g.Outcome() != Pending || g.Guessed() != -1 {
			t.Errorf("round %d: expected a fresh round", round)
		}
	}
}

func TestLosingResets(t *testing.T) {
	g := newGame(0)
	g.Guess(g.AnswerIndex())
	g.Continue()
	g.Guess(g.AnswerIndex())
	g.Continue()

	out, err := g.Guess(wrongIndex(g))
	if err != nil || out != Incorrect {
		t.Fatalf("expected Incorrect, got %v err=%v", out, err)
	}
	if g.Distance() < 0 {
		t.Errorf("expected non-negative distance, got %v", g.Distance())
	}
	if err := g.Retry(); err != nil {
		t.Fatalf("Retry: %v", err)
	}
	if g.Score() != 0 || g.Best() != 2 {
		t.Errorf("expected score 0 best 2, got %d/%d", g.Score(), g.Best())
	}
	if len(g.Colors()) != StartColors {
		t.Errorf("expected %d colours after retry, got %d", StartColors, len(g.Colors()))
	}
}

func TestBestIsNotLowered(t *testing.T) {
	g := newGame(10)
	g.Guess(g.AnswerIndex())
	g.Continue()
	if g.Best() != 10 {
		t.Errorf("expected stored best 10 to survive, got %d", g.Best())
	}
}

func TestGuessErrors(t *testing.T) {
	tests := []struct {
		name string
		run  func(g *Game) error
		want error
	}{
		{"out of range", func(g *Game) error { _, err := g.Guess(99); return err }, ErrOutOfRange},
		{"negative", func(g *Game) error { _, err := g.Guess(-1); return err }, ErrOutOfRange},
		{"twice", func(g *Game) error {
			g.Guess(0)
			_, err := g.Guess(1)
			return err
		}, ErrAlreadyGuessed},
		{"continue before guess", func(g *Game) error { return g.Continue() }, ErrNotDecided},
		{"retry before guess", func(g *Game) error { return g.Retry() }, ErrNotDecided},
		{"continue after loss", func(g *Game) error {
			g.Guess(wrongIndex(g))
			return g.Continue()
		}, ErrNotDecided},
		{"retry after win", func(g *Game) error {
			g.Guess(g.AnswerIndex())
			return g.Retry()
		}, ErrNotDecided},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.run(newGame(0)); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}
