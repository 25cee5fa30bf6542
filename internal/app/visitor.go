package app

import (
	"image"

	"termfolio/internal/colorgame"
	"termfolio/internal/glow"
	"termfolio/internal/render"
	"termfolio/internal/skin"
)

// Action represents a visitor input action.
type Action int

const (
	ActionNone Action = iota
	ActionUp
	ActionDown
	ActionLeft
	ActionRight
	ActionEnter
	ActionBack
	ActionBackspace
	ActionTab
	ActionRune
	ActionResize
	ActionQuit
)

// InputEvent carries a visitor action into the hub.
type InputEvent struct {
	VisitorID string
	Action    Action
	Rune      rune

	// Width and Height are set for ActionResize.
	Width, Height int
}

// Page is the screen a visitor is on.
type Page int

const (
	PageHome Page = iota
	PageColour
	PageLife
)

// Home menu entries.
const (
	homeColour = iota
	homeLife
	homeQuit
)

var homeItems = []string{"Colour Game", "Secret Life", "Quit"}

// Visitor holds the page state of one connected session. It is owned by
// the hub goroutine.
type Visitor struct {
	ID   string
	Name string
	Page Page

	Width, Height int
	quit          bool

	homeSel int

	game      *colorgame.Game
	best      int
	colourSel int

	focus     render.LifeFocus
	query     string
	pending   bool
	dueTick   uint64
	seq       uint64
	searching bool
	source    skin.Source
	sheet     image.Image
	character *image.RGBA
	overlay   bool
	canvasW   int
	canvasH   int

	menuOpen bool
	menu     int
	image    int
	large    bool
	task     int
	book     *glow.Book
}

// cycle steps i by dir through [0, n), wrapping at both ends.
func cycle(i, n, dir int) int {
	if n <= 0 {
		return 0
	}
	if dir > 0 {
		return (i + 1) % n
	}
	return (i + n - 1) % n
}
