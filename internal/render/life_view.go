package render

import (
	"fmt"
	"image"

	"github.com/gdamore/tcell/v2"

	"termfolio/internal/tasks"
)

// LifeFocus is the part of the Secret Life page receiving keys.
type LifeFocus int

const (
	FocusSearch LifeFocus = iota
	FocusInfo
)

// Info menu entries, in nav bar order.
const (
	MenuPlugin = iota
	MenuGallery
	MenuTasks
	MenuStats
)

// MenuNames are the nav bar labels.
var MenuNames = []string{"Plugin", "Gallery", "Tasks", "Stats"}

// GalleryItem is the gallery image on show.
type GalleryItem struct {
	Name  string
	Image image.Image
	Index int
	Count int
}

// TaskItem is the task on show.
type TaskItem struct {
	Task  tasks.Task
	Index int
	Count int
}

// LifeView is the Secret Life page: event info with its sub-menus on the
// left, the skin search and composited character on the right.
type LifeView struct {
	Title    string
	Subtitle string
	Focus    LifeFocus

	Query     string
	Searching bool
	Variant   string
	Overlay   bool
	Character image.Image

	Intro    []string
	MenuOpen bool
	Menu     int
	Plugin   []string
	Gallery  GalleryItem
	Large    bool
	Task     *TaskItem
	Stats    []string

	Book      image.Image
	Enchanted bool
}

// CharacterCanvas returns the pixel size the character should be
// composited at for a terminal of termW x termH cells. The canvas keeps the
// 1:2 figure proportions and fits beside the info column.
func CharacterCanvas(termW, termH int) (w, h int) {
	k := min((termH-8)/16, (termW/3)/16)
	k = max(1, min(k, 3))
	return 16 * k, 32 * k
}

// Draw implements View.
func (v LifeView) Draw(e *Engine) {
	e.Fill(BgColor)
	if v.Large {
		v.drawLarge(e)
		return
	}

	col := e.writeText(0, 1, e.width, v.Title, AccentColor, BgColor, true)
	e.writeText(0, col+2, e.width, v.Subtitle, DimColor, BgColor, false)

	cw, _ := CharacterCanvas(e.width, e.height)
	rightW := cw + 2
	rx := e.width - rightW - 1
	v.drawCharacter(e, rx, 2, rightW)
	v.drawInfo(e, 1, 2, rx-1, e.height-1)

	hint := "type a username · tab info · esc home"
	if v.Focus == FocusInfo {
		hint = "enter more · ↑/↓ menu · ←/→ browse · e enchant · tab search · esc home"
	}
	e.writeText(e.height-1, 1, e.width, hint, DimColor, BgColor, false)
}

func (v LifeView) drawCharacter(e *Engine, x, y, w int) {
	border := BorderColor
	if v.Focus == FocusSearch {
		border = AccentColor
	}
	e.drawBox(x, y, w, 3, border, PanelColor)
	if v.Query == "" && v.Focus != FocusSearch {
		e.writeText(y+1, x+1, x+w-1, "Enter a username...", DimColor, PanelColor, false)
	} else {
		q := []rune(v.Query)
		if room := w - 3; len(q) > room && room > 0 {
			q = q[len(q)-room:]
		}
		col := e.writeText(y+1, x+1, x+w-1, string(q), FgColor, PanelColor, false)
		if v.Focus == FocusSearch {
			e.SetCell(col, y+1, Cell{Ch: '_', Fg: AccentColor, Bg: PanelColor, Bold: true})
		}
	}

	status := fmt.Sprintf("model: %s", v.Variant)
	if v.Overlay {
		status += " +layer"
	}
	if v.Searching {
		status = "searching..."
	}
	e.writeText(y+3, x+1, x+w, status, DimColor, BgColor, false)

	e.StampImage(x+1, y+4, v.Character)
	_, ch := ImageCells(v.Character)

	if v.Book == nil {
		return
	}
	bw, bh := ImageCells(v.Book)
	by := y + 5 + ch
	if by+bh+1 >= e.height {
		return
	}
	e.StampImage(x+(w-bw)/2, by, v.Book)
	label := "book"
	if v.Enchanted {
		label = "enchanted book"
	}
	lc := x + (w-len([]rune(label)))/2
	e.writeText(by+bh, lc, x+w, label, DimColor, BgColor, false)
}

func (v LifeView) drawInfo(e *Engine, x, y, maxCol, maxRow int) {
	width := maxCol - x
	if width < 8 {
		return
	}

	row := y
	for i, p := range v.Intro {
		if i > 0 {
			row++
		}
		row = e.writeLines(row, x, maxCol, maxRow, wrapLines(p, width), FgColor, BgColor)
	}
	row++

	label := "[ Read More ]"
	if v.MenuOpen {
		label = "[ See Less ]"
	}
	fg := FgColor
	if v.Focus == FocusInfo {
		fg = AccentColor
	}
	if row < maxRow {
		e.writeText(row, x, maxCol, label, fg, BgColor, true)
	}
	row += 2
	if !v.MenuOpen || row >= maxRow {
		return
	}

	col := x
	for i, name := range MenuNames {
		fg, bg := DimColor, BgColor
		if i == v.Menu {
			fg, bg = BgColor, AccentColor
		}
		col = e.writeText(row, col, maxCol, " "+name+" ", fg, bg, i == v.Menu)
		col++
	}
	row += 2

	switch v.Menu {
	case MenuPlugin:
		for i, p := range v.Plugin {
			if i > 0 {
				row++
			}
			row = e.writeLines(row, x, maxCol, maxRow, wrapLines(p, width), FgColor, BgColor)
		}
	case MenuGallery:
		v.drawGallery(e, x, row, maxCol, maxRow)
	case MenuTasks:
		v.drawTask(e, x, row, maxCol, maxRow)
	case MenuStats:
		e.writeLines(row, x, maxCol, maxRow, v.Stats, FgColor, BgColor)
	}
}

func (v LifeView) drawGallery(e *Engine, x, row, maxCol, maxRow int) {
	g := v.Gallery
	if g.Count == 0 {
		e.writeText(row, x, maxCol, "No images.", DimColor, BgColor, false)
		return
	}
	nav := fmt.Sprintf("<  %s (%d/%d)  >", g.Name, g.Index+1, g.Count)
	e.writeText(row, x, maxCol, nav, FgColor, BgColor, false)
	row++

	img := Fit(g.Image, maxCol-x, maxRow-row)
	e.StampImage(x, row, img)
}

func (v LifeView) drawTask(e *Engine, x, row, maxCol, maxRow int) {
	if v.Task == nil {
		e.writeText(row, x, maxCol, "No tasks.", DimColor, BgColor, false)
		return
	}
	t := v.Task.Task
	width := maxCol - x

	e.writeText(row, x, maxCol, "Task Name: "+t.Name, FgColor, BgColor, false)
	row++
	col := e.writeText(row, x, maxCol, "Task Difficulty: ", FgColor, BgColor, false)
	e.writeText(row, col, maxCol, t.Difficulty.String(), tcell.GetColor(t.Difficulty.Hex()), BgColor, true)
	row += 2

	desc := tasks.Wrap("Task Description: "+t.Description, width, tasks.MaxDescLines)
	row = e.writeLines(row, x, maxCol, maxRow, desc, FgColor, BgColor)
	row++

	if row < maxRow {
		col = e.writeText(row, x, maxCol, "Reward: ", FgColor, BgColor, false)
		e.writeText(row, col, maxCol, fmt.Sprintf("%d tokens", t.EffectiveReward()), AccentColor, BgColor, true)
	}
	row += 2
	if row < maxRow {
		e.writeText(row, x, maxCol, fmt.Sprintf("<  %d/%d  >", v.Task.Index+1, v.Task.Count), DimColor, BgColor, false)
	}
}

func (v LifeView) drawLarge(e *Engine) {
	g := v.Gallery
	e.drawCenteredText(0, fmt.Sprintf("%s (%d/%d)", g.Name, g.Index+1, g.Count), AccentColor, BgColor, true)
	img := Fit(g.Image, e.width, e.height-2)
	cw, ch := ImageCells(img)
	e.StampImage((e.width-cw)/2, 1+(e.height-2-ch)/2, img)
	e.drawCenteredText(e.height-1, "←/→ browse · enter close", DimColor, BgColor, false)
}
