package render

import (
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Cell represents a single terminal cell with full RGB color.
type Cell struct {
	Ch     rune
	Fg, Bg tcell.Color
	Bold   bool
}

var sentinel = Cell{Ch: '\x00', Fg: tcell.NewRGBColor(255, 0, 0), Bg: tcell.NewRGBColor(0, 0, 255), Bold: true}

// View is one page of the interface, drawn into an engine buffer.
type View interface {
	Draw(e *Engine)
}

// Engine is a per-session double-buffer diff renderer.
type Engine struct {
	width, height int
	current       [][]Cell
	next          [][]Cell
	firstFrame    bool
}

// NewEngine creates a renderer for the given terminal dimensions.
func NewEngine(width, height int) *Engine {
	e := &Engine{
		width:      width,
		height:     height,
		firstFrame: true,
	}
	e.current = e.makeBuffer(sentinel)
	e.next = e.makeBuffer(Cell{})
	return e
}

// Resize adjusts the renderer for a new terminal size.
func (e *Engine) Resize(width, height int) {
	e.width = width
	e.height = height
	e.current = e.makeBuffer(sentinel)
	e.next = e.makeBuffer(Cell{})
	e.firstFrame = true
}

// Size returns the buffer dimensions in cells.
func (e *Engine) Size() (int, int) {
	return e.width, e.height
}

func (e *Engine) makeBuffer(fill Cell) [][]Cell {
	buf := make([][]Cell, e.height)
	for y := 0; y < e.height; y++ {
		buf[y] = make([]Cell, e.width)
		for x := 0; x < e.width; x++ {
			buf[y][x] = fill
		}
	}
	return buf
}

// Render draws v and produces the ANSI byte output for the cells that
// changed since the previous frame.
func (e *Engine) Render(v View, termW, termH int) string {
	if termW != e.width || termH != e.height {
		e.Resize(termW, termH)
	}
	v.Draw(e)
	return e.emitDiff()
}

// Paint draws v onto a tcell screen and shows it.
func (e *Engine) Paint(v View, s tcell.Screen) {
	w, h := s.Size()
	if w != e.width || h != e.height {
		e.Resize(w, h)
	}
	v.Draw(e)
	for y := 0; y < e.height; y++ {
		for x := 0; x < e.width; x++ {
			c := e.next[y][x]
			ch := c.Ch
			if ch == 0 {
				ch = ' '
			}
			style := tcell.StyleDefault.Foreground(c.Fg).Background(c.Bg).Bold(c.Bold)
			s.SetContent(x, y, ch, nil, style)
		}
	}
	s.Show()
	e.current, e.next = e.next, e.current
	e.firstFrame = false
}

// CellAt returns the most recently drawn cell at (x, y).
func (e *Engine) CellAt(x, y int) Cell {
	if x < 0 || x >= e.width || y < 0 || y >= e.height {
		return Cell{}
	}
	return e.current[y][x]
}

// Fill clears the next frame to blank cells on bg.
func (e *Engine) Fill(bg tcell.Color) {
	c := Cell{Ch: ' ', Bg: bg}
	for y := 0; y < e.height; y++ {
		for x := 0; x < e.width; x++ {
			e.next[y][x] = c
		}
	}
}

// SetCell writes one cell, ignoring positions off screen.
func (e *Engine) SetCell(x, y int, c Cell) {
	if x >= 0 && x < e.width && y >= 0 && y < e.height {
		e.next[y][x] = c
	}
}

// writeText writes colored text into a bounded region [col, maxCol). Returns the next column position.
func (e *Engine) writeText(row, col, maxCol int, text string, fg, bg tcell.Color, bold bool) int {
	for _, r := range text {
		if col >= maxCol || col >= e.width {
			break
		}
		e.SetCell(col, row, Cell{Ch: r, Fg: fg, Bg: bg, Bold: bold})
		col++
	}
	return col
}

// drawCenteredText draws text centered on the given row.
func (e *Engine) drawCenteredText(row int, text string, fg, bg tcell.Color, bold bool) {
	runes := []rune(text)
	cx := (e.width - len(runes)) / 2
	for i, r := range runes {
		e.SetCell(cx+i, row, Cell{Ch: r, Fg: fg, Bg: bg, Bold: bold})
	}
}

// drawBox draws a single-line border around the w x h area at (x, y) and
// fills its inside with bg.
func (e *Engine) drawBox(x, y, w, h int, border, bg tcell.Color) {
	if w < 2 || h < 2 {
		return
	}
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			ch := ' '
			switch {
			case row == y && col == x:
				ch = '┌'
			case row == y && col == x+w-1:
				ch = '┐'
			case row == y+h-1 && col == x:
				ch = '└'
			case row == y+h-1 && col == x+w-1:
				ch = '┘'
			case row == y || row == y+h-1:
				ch = '─'
			case col == x || col == x+w-1:
				ch = '│'
			}
			e.SetCell(col, row, Cell{Ch: ch, Fg: border, Bg: bg})
		}
	}
}

// drawBoxTitle writes a title into the top border of a box.
func (e *Engine) drawBoxTitle(x, y, w int, title string, fg, bg tcell.Color) {
	if w < 6 {
		return
	}
	e.writeText(y, x+2, x+w-2, " "+title+" ", fg, bg, true)
}

// emitDiff performs the buffer diff and produces ANSI output.
func (e *Engine) emitDiff() string {
	var sb strings.Builder
	sb.Grow(16384)

	lastRow, lastCol := -1, -1
	for y := 0; y < e.height; y++ {
		for x := 0; x < e.width; x++ {
			nc := e.next[y][x]
			if e.firstFrame || nc != e.current[y][x] {
				// Only emit cursor position if not consecutive
				if y != lastRow || x != lastCol {
					sb.WriteString(MoveTo(y+1, x+1))
				}
				WriteCellSGR(&sb, nc)
				lastRow = y
				lastCol = x + 1
			}
		}
	}

	if sb.Len() > 0 {
		sb.WriteString(Reset)
	}

	e.current, e.next = e.next, e.current
	e.firstFrame = false

	return sb.String()
}
