package render

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"termfolio/internal/tasks"
)

type fillView struct {
	bg   tcell.Color
	text string
}

func (v fillView) Draw(e *Engine) {
	e.Fill(v.bg)
	e.writeText(0, 0, e.width, v.text, FgColor, v.bg, false)
}

func TestRenderDiffsAgainstPreviousFrame(t *testing.T) {
	e := NewEngine(10, 3)

	first := e.Render(fillView{bg: BgColor, text: "hi"}, 10, 3)
	if !strings.Contains(first, "h") || !strings.HasSuffix(first, Reset) {
		t.Fatalf("expected full first frame, got %q", first)
	}

	if again := e.Render(fillView{bg: BgColor, text: "hi"}, 10, 3); again != "" {
		t.Errorf("expected no output for an unchanged frame, got %q", again)
	}

	changed := e.Render(fillView{bg: BgColor, text: "ho"}, 10, 3)
	if !strings.Contains(changed, MoveTo(1, 2)) || !strings.Contains(changed, "o") {
		t.Errorf("expected only the changed cell, got %q", changed)
	}
	if strings.Contains(changed, MoveTo(1, 1)) {
		t.Errorf("unchanged cell (1,1) re-emitted: %q", changed)
	}
}

func TestRenderResizeRedrawsEverything(t *testing.T) {
	e := NewEngine(4, 2)
	e.Render(fillView{bg: BgColor}, 4, 2)

	out := e.Render(fillView{bg: BgColor}, 6, 2)
	if got := strings.Count(out, " "); got != 12 {
		t.Errorf("expected 12 cells after resize, got %d in %q", got, out)
	}
	if w, h := e.Size(); w != 6 || h != 2 {
		t.Errorf("expected 6x2, got %dx%d", w, h)
	}
}

func TestWriteCellSGR(t *testing.T) {
	var sb strings.Builder
	WriteCellSGR(&sb, Cell{Ch: 'x', Fg: RGB(1, 2, 3), Bg: RGB(4, 5, 6), Bold: true})
	if got, want := sb.String(), "\x1b[0;1;38;2;1;2;3;48;2;4;5;6mx"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}

	sb.Reset()
	WriteCellSGR(&sb, Cell{})
	if got, want := sb.String(), "\x1b[0;38;2;0;0;0;48;2;0;0;0m "; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

type stampView struct {
	img image.Image
}

func (v stampView) Draw(e *Engine) {
	e.Fill(BgColor)
	e.StampImage(1, 0, v.img)
}

func TestStampImageHalfBlocks(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 3))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	img.Set(0, 1, color.NRGBA{G: 255, A: 255})
	img.Set(1, 1, color.NRGBA{B: 255, A: 255})
	img.Set(2, 0, color.NRGBA{R: 255, G: 255, A: 40})
	img.Set(0, 2, color.NRGBA{R: 9, G: 9, B: 9, A: 255})

	e := NewEngine(5, 3)
	e.Render(stampView{img: img}, 5, 3)

	tests := []struct {
		name string
		x, y int
		want Cell
	}{
		{"both halves", 1, 0, Cell{Ch: upperHalf, Fg: RGB(255, 0, 0), Bg: RGB(0, 255, 0)}},
		{"bottom only", 2, 0, Cell{Ch: lowerHalf, Fg: RGB(0, 0, 255), Bg: BgColor}},
		{"translucent skipped", 3, 0, Cell{Ch: ' ', Bg: BgColor}},
		{"odd last row", 1, 1, Cell{Ch: upperHalf, Fg: RGB(9, 9, 9), Bg: BgColor}},
		{"outside image", 0, 0, Cell{Ch: ' ', Bg: BgColor}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.CellAt(tt.x, tt.y); got != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestStampImageClipsToScreen(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 40, 40))
	e := NewEngine(4, 4)
	e.Fill(BgColor)
	e.StampImage(-10, -10, img)
	e.StampImage(2, 2, img)
	e.StampImage(2, 2, nil)
}

func TestFit(t *testing.T) {
	tests := []struct {
		name       string
		w, h       int
		cols, rows int
		wantW      int
		wantH      int
	}{
		{"already fits", 10, 10, 20, 10, 10, 10},
		{"width bound", 100, 50, 20, 20, 20, 10},
		{"height bound", 50, 100, 40, 10, 10, 20},
		{"tiny", 300, 2, 3, 3, 3, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := image.NewNRGBA(image.Rect(0, 0, tt.w, tt.h))
			got := Fit(img, tt.cols, tt.rows).Bounds()
			if got.Dx() != tt.wantW || got.Dy() != tt.wantH {
				t.Errorf("expected %dx%d, got %dx%d", tt.wantW, tt.wantH, got.Dx(), got.Dy())
			}
		})
	}
}

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, image.NewNRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
}

func TestLoadGallery(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "2.png"), 4, 2)
	writePNG(t, filepath.Join(dir, "0.png"), 2, 2)
	writePNG(t, filepath.Join(dir, "1.PNG"), 3, 2)
	if err := os.WriteFile(filepath.Join(dir, "broken.png"), []byte("not a png"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	g, err := LoadGallery(dir, nil)
	if err != nil {
		t.Fatalf("LoadGallery: %v", err)
	}
	want := []string{"0", "1", "2"}
	if g.Len() != len(want) {
		t.Fatalf("expected %d images, got %d (%v)", len(want), g.Len(), g.Names)
	}
	for i, name := range want {
		if g.Names[i] != name {
			t.Errorf("image %d: expected %s, got %s", i, name, g.Names[i])
		}
		if w := g.Images[i].Bounds().Dx(); w != i+2 {
			t.Errorf("image %d: expected width %d, got %d", i, i+2, w)
		}
	}

	if _, err := LoadGallery(filepath.Join(dir, "missing"), nil); err == nil {
		t.Error("expected error for missing directory")
	}
	var empty *Gallery
	if empty.Len() != 0 {
		t.Error("expected nil gallery to be empty")
	}
}

func TestPaintSimulationScreen(t *testing.T) {
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	defer s.Fini()
	s.SetSize(12, 4)

	e := NewEngine(1, 1)
	e.Paint(fillView{bg: RGB(10, 20, 30), text: "paint"}, s)

	if w, h := e.Size(); w != 12 || h != 4 {
		t.Fatalf("expected engine resized to 12x4, got %dx%d", w, h)
	}
	r, _, style, _ := s.GetContent(1, 0)
	if r != 'a' {
		t.Errorf("expected 'a' at (1,0), got %q", r)
	}
	_, bg, _ := style.Decompose()
	if bg != RGB(10, 20, 30) {
		t.Errorf("expected background %v, got %v", RGB(10, 20, 30), bg)
	}
	if r, _, _, _ := s.GetContent(11, 3); r != ' ' {
		t.Errorf("expected blank at (11,3), got %q", r)
	}
}

func TestViewsDrawAtAnySize(t *testing.T) {
	book := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	views := []View{
		HomeView{Title: "termfolio", Note: "under construction", Items: []string{"Colour Game", "Quit"}, Links: []Link{{"GitHub Page", "https://example.com"}}},
		ColourView{Target: RGB(1, 2, 3), Swatches: []Swatch{{"#010203", RGB(1, 2, 3)}, {"#ffffff", RGB(255, 255, 255)}}, Message: "Incorrect!", Distance: 12.5},
		LifeView{Title: "Secret Life", Intro: []string{"one two three"}, MenuOpen: true, Menu: MenuTasks, Task: &TaskItem{Task: tasks.Task{Name: "Hug", Difficulty: tasks.Hard}, Count: 1}, Book: book},
		LifeView{Large: true, Gallery: GalleryItem{Name: "0", Image: book, Count: 1}},
		CharacterView{Title: "skin", Image: book, Variant: "normal"},
	}
	sizes := [][2]int{{1, 1}, {8, 4}, {40, 12}, {120, 40}}
	for _, v := range views {
		for _, sz := range sizes {
			e := NewEngine(sz[0], sz[1])
			e.Render(v, sz[0], sz[1])
		}
	}
}

func TestColourViewRevealsAnswer(t *testing.T) {
	v := ColourView{
		Target:   RGB(200, 0, 0),
		Swatches: []Swatch{{"#c80000", RGB(200, 0, 0)}, {"#00c800", RGB(0, 200, 0)}},
		Answer:   0,
		Selected: 1,
	}
	e := NewEngine(60, 24)
	e.Render(v, 60, 24)
	text := screenText(e)
	if !strings.Contains(text, "#c80000") || strings.Contains(text, "Retry") {
		t.Fatalf("unexpected undecided frame:\n%s", text)
	}

	v.Message = "Incorrect!"
	e.Render(v, 60, 24)
	if text := screenText(e); !strings.Contains(text, "Retry") {
		t.Errorf("expected retry action once decided:\n%s", text)
	}
}

// screenText returns the drawn characters, one line per row.
func screenText(e *Engine) string {
	var sb strings.Builder
	w, h := e.Size()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			ch := e.CellAt(x, y).Ch
			if ch == 0 {
				ch = ' '
			}
			sb.WriteRune(ch)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func TestLifeViewTaskDifficultyColour(t *testing.T) {
	v := LifeView{
		Intro:    []string{"intro"},
		MenuOpen: true,
		Menu:     MenuTasks,
		Focus:    FocusInfo,
		Task:     &TaskItem{Task: tasks.Task{Name: "Hug", Description: "Hug a player", Difficulty: tasks.Red}, Index: 0, Count: 3},
	}
	e := NewEngine(100, 40)
	e.Render(v, 100, 40)

	want := tcell.GetColor(tasks.Red.Hex())
	found := false
	for y := 0; y < 40 && !found; y++ {
		for x := 0; x < 100; x++ {
			if c := e.CellAt(x, y); c.Ch == 'R' && c.Fg == want {
				found = true
				break
			}
		}
	}
	if !found {
		t.Error("expected difficulty name drawn in its colour")
	}
}

func TestCharacterCanvas(t *testing.T) {
	tests := []struct {
		w, h         int
		wantW, wantH int
	}{
		{80, 24, 16, 32},
		{200, 60, 48, 96},
		{200, 42, 32, 64},
		{10, 5, 16, 32},
	}
	for _, tt := range tests {
		if w, h := CharacterCanvas(tt.w, tt.h); w != tt.wantW || h != tt.wantH {
			t.Errorf("%dx%d: expected %dx%d, got %dx%d", tt.w, tt.h, tt.wantW, tt.wantH, w, h)
		}
	}
}
