package main

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"strconv"

	"github.com/gdamore/tcell/v2"

	"termfolio/internal/render"
	"termfolio/internal/skin"
	"termfolio/internal/tasks"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		printUsage(stderr)
		return 1
	}

	cmd := args[0]
	args = args[1:]

	switch cmd {
	case "render":
		if len(args) != 2 && len(args) != 4 {
			fmt.Fprintln(stderr, "Usage: skintool render <sheet.png> <out.png> [width height]")
			return 1
		}
		return runRender(args, stdout, stderr)
	case "view":
		if len(args) != 1 {
			fmt.Fprintln(stderr, "Usage: skintool view <sheet.png>")
			return 1
		}
		return runView(args[0], stderr)
	case "tasks":
		if len(args) != 1 {
			fmt.Fprintln(stderr, "Usage: skintool tasks <taskbase.json>")
			return 1
		}
		return runTasks(args[0], stdout, stderr)
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", cmd)
		printUsage(stderr)
		return 1
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `Usage: skintool <command> <args>

Commands:
  render <sheet.png> <out.png> [w h]   Composite a skin sheet to a PNG (default 161x323)
  view   <sheet.png>                   Show the composited skin in the terminal
  tasks  <taskbase.json>               List a task base with rewards`)
}

func loadSheet(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return skin.DecodeSheet(f)
}

// --- render ---

func runRender(args []string, stdout, stderr io.Writer) int {
	w, h := 161, 323
	if len(args) == 4 {
		var errW, errH error
		w, errW = strconv.Atoi(args[2])
		h, errH = strconv.Atoi(args[3])
		if errW != nil || errH != nil || w < 1 || h < 1 {
			fmt.Fprintln(stderr, "FAIL: width and height must be positive integers")
			return 1
		}
	}

	sheet, err := loadSheet(args[0])
	if err != nil {
		fmt.Fprintf(stderr, "FAIL: %v\n", err)
		return 1
	}

	img, overlay := skin.CompositeImage(sheet, w, h)

	out, err := os.Create(args[1])
	if err != nil {
		fmt.Fprintf(stderr, "FAIL: %v\n", err)
		return 1
	}
	if err := png.Encode(out, img); err != nil {
		out.Close()
		fmt.Fprintf(stderr, "FAIL: encode %s: %v\n", args[1], err)
		return 1
	}
	if err := out.Close(); err != nil {
		fmt.Fprintf(stderr, "FAIL: %v\n", err)
		return 1
	}

	fmt.Fprintf(stdout, "Wrote %s (%dx%d, second layer: %v)\n", args[1], w, h, overlay)
	return 0
}

// --- view ---

func runView(path string, stderr io.Writer) int {
	sheet, err := loadSheet(path)
	if err != nil {
		fmt.Fprintf(stderr, "FAIL: %v\n", err)
		return 1
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(stderr, "FAIL: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(stderr, "FAIL: %v\n", err)
		return 1
	}
	defer screen.Fini()

	engine := render.NewEngine(screen.Size())
	draw := func() {
		cols, rows := screen.Size()
		k := max(1, min(cols/16, (rows-2)/16))
		img, overlay := skin.CompositeImage(sheet, 16*k, 32*k)
		engine.Paint(render.CharacterView{
			Title:   path,
			Image:   img,
			Variant: "unknown",
			Overlay: overlay,
		}, screen)
	}

	draw()
	for {
		switch ev := screen.PollEvent().(type) {
		case nil:
			return 0
		case *tcell.EventResize:
			screen.Sync()
			draw()
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
				return 0
			}
		}
	}
}

// --- tasks ---

func runTasks(path string, stdout, stderr io.Writer) int {
	list, err := tasks.Load(path)
	if err != nil {
		fmt.Fprintf(stderr, "FAIL: %v\n", err)
		return 1
	}

	counts := make(map[tasks.Difficulty]int)
	for i, t := range list {
		counts[t.Difficulty]++
		fmt.Fprintf(stdout, "%3d. %s [%s] %d tokens\n", i+1, t.Name, t.Difficulty, t.EffectiveReward())
		for _, line := range t.DescriptionLines(72) {
			fmt.Fprintf(stdout, "     %s\n", line)
		}
	}

	fmt.Fprintf(stdout, "\n%d tasks:", len(list))
	for d := tasks.Normal; d <= tasks.Shiny; d++ {
		fmt.Fprintf(stdout, " %s=%d", d, counts[d])
	}
	fmt.Fprintln(stdout)
	return 0
}
