package render

import (
	"fmt"
	"image"

	"github.com/gdamore/tcell/v2"
)

// Page palette.
var (
	BgColor     = RGB(18, 16, 24)
	FgColor     = RGB(225, 222, 230)
	DimColor    = RGB(120, 116, 140)
	AccentColor = RGB(255, 105, 180)
	BorderColor = RGB(88, 84, 120)
	PanelColor  = RGB(30, 27, 40)
)

// Link is one entry of the home page link list.
type Link struct {
	Title string
	URL   string
}

// HomeView is the landing page: a title, a short note, the menu and the
// link list.
type HomeView struct {
	Title    string
	Note     string
	Items    []string
	Selected int
	Links    []Link
	User     string
}

// Draw implements View.
func (v HomeView) Draw(e *Engine) {
	e.Fill(BgColor)
	if e.width < 10 || e.height < 6 {
		e.drawCenteredText(0, v.Title, AccentColor, BgColor, true)
		return
	}

	row := max(1, e.height/2-(len(v.Items)+len(v.Links)+6)/2)
	e.drawCenteredText(row, v.Title, AccentColor, BgColor, true)
	row += 2

	for _, line := range wrapLines(v.Note, min(e.width-4, 60)) {
		e.drawCenteredText(row, line, DimColor, BgColor, false)
		row++
	}
	row++

	for i, l := range v.Links {
		text := fmt.Sprintf("• %s  %s", l.Title, l.URL)
		e.drawCenteredText(row+i, text, FgColor, BgColor, false)
	}
	row += len(v.Links) + 1

	boxW := 0
	for _, item := range v.Items {
		boxW = max(boxW, len([]rune(item))+6)
	}
	boxH := len(v.Items) + 2
	bx := (e.width - boxW) / 2
	e.drawBox(bx, row, boxW, boxH, BorderColor, PanelColor)
	for i, item := range v.Items {
		fg, bg, bold := FgColor, PanelColor, false
		label := "  " + item
		if i == v.Selected {
			fg, bg, bold = BgColor, AccentColor, true
			label = "> " + item
		}
		col := e.writeText(row+1+i, bx+1, bx+boxW-1, label, fg, bg, bold)
		for ; col < bx+boxW-1; col++ {
			e.SetCell(col, row+1+i, Cell{Ch: ' ', Bg: bg})
		}
	}

	hint := "↑/↓ select · enter open · q quit"
	if v.User != "" {
		hint = v.User + " · " + hint
	}
	e.drawCenteredText(e.height-1, hint, DimColor, BgColor, false)
}

// Swatch is one answer button of the colour game.
type Swatch struct {
	Label string
	Color tcell.Color
}

// ColourView is the colour game page.
type ColourView struct {
	Target   tcell.Color
	Swatches []Swatch
	Selected int
	Answer   int
	Score    int
	Best     int
	// Message is empty while the round is undecided.
	Message  string
	Won      bool
	Distance float64
}

// Decided reports whether the round has been guessed.
func (v ColourView) Decided() bool {
	return v.Message != ""
}

// Draw implements View.
func (v ColourView) Draw(e *Engine) {
	e.Fill(BgColor)

	score := fmt.Sprintf("Score: %d    Best: %d", v.Score, v.Best)
	e.drawCenteredText(1, score, FgColor, BgColor, true)

	boxW := min(e.width-4, 44)
	boxH := min(max(e.height-12, 3), 12)
	bx := (e.width - boxW) / 2
	by := 3
	for y := by; y < by+boxH; y++ {
		for x := bx; x < bx+boxW; x++ {
			e.SetCell(x, y, Cell{Ch: ' ', Bg: v.Target})
		}
	}

	if v.Decided() {
		msg := v.Message
		if !v.Won && v.Distance > 0 {
			msg = fmt.Sprintf("%s  (ΔE %.1f)", v.Message, v.Distance)
		}
		action := "[enter] Retry"
		if v.Won {
			action = "[enter] Continue"
		}
		mid := by + boxH/2
		e.drawCenteredText(mid-1, msg, contrast(v.Target), v.Target, true)
		e.drawCenteredText(mid+1, action, contrast(v.Target), v.Target, false)
	}

	// answer buttons wrap onto as many rows as they need
	row := by + boxH + 1
	col := 2
	for i, s := range v.Swatches {
		label := " " + s.Label + " "
		w := len([]rune(label)) + 2
		if col+w > e.width-1 {
			row += 2
			col = 2
		}
		fg, bg, bold := FgColor, PanelColor, false
		switch {
		case v.Decided() && i == v.Answer:
			fg, bg, bold = contrast(s.Color), s.Color, true
		case v.Decided():
			fg, bg = contrast(s.Color), s.Color
		case i == v.Selected:
			fg, bg, bold = BgColor, AccentColor, true
		}
		e.SetCell(col, row, Cell{Ch: '[', Fg: DimColor, Bg: BgColor})
		e.writeText(row, col+1, e.width, label, fg, bg, bold)
		e.SetCell(col+w-1, row, Cell{Ch: ']', Fg: DimColor, Bg: BgColor})
		col += w + 1
	}

	e.drawCenteredText(e.height-1, "←/→ select · enter guess · esc home", DimColor, BgColor, false)
}

// contrast picks black or white text for legibility on bg.
func contrast(bg tcell.Color) tcell.Color {
	r, g, b := bg.RGB()
	if r < 0 {
		return FgColor
	}
	if 299*r+587*g+114*b > 128000 {
		return RGB(0, 0, 0)
	}
	return RGB(255, 255, 255)
}

// CharacterView shows a single composited skin, used by the local viewer.
type CharacterView struct {
	Title   string
	Image   image.Image
	Variant string
	Overlay bool
}

// Draw implements View.
func (v CharacterView) Draw(e *Engine) {
	e.Fill(BgColor)
	e.drawCenteredText(0, v.Title, AccentColor, BgColor, true)

	img := Fit(v.Image, e.width-2, e.height-3)
	cw, ch := ImageCells(img)
	e.StampImage((e.width-cw)/2, 1+(e.height-2-ch)/2, img)

	info := fmt.Sprintf("model: %s · overlay: %v · q quit", v.Variant, v.Overlay)
	e.drawCenteredText(e.height-1, info, DimColor, BgColor, false)
}
