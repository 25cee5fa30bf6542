package main

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testTaskbase = `{
	"shrine": {"name": "Build a shrine", "description": "Build a shrine to another player.", "difficulty": 0, "reward": 8},
	"bed":    {"name": "Steal a bed", "description": "Take someone's bed without being seen.", "difficulty": 1}
}`

func writeFixtures(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	sheet := image.NewNRGBA(image.Rect(0, 0, 64, 64))
	for y := 8; y < 16; y++ {
		for x := 8; x < 16; x++ {
			sheet.Set(x, y, color.NRGBA{R: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, sheet); err != nil {
		t.Fatal(err)
	}

	files := map[string][]byte{
		"sheet.png":     buf.Bytes(),
		"broken.png":    []byte("not a png"),
		"taskbase.json": []byte(testTaskbase),
		"empty.json":    []byte("{}"),
	}
	for name, data := range files {
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestRun(t *testing.T) {
	dir := writeFixtures(t)
	in := func(name string) string { return filepath.Join(dir, name) }

	tests := []struct {
		name      string
		args      []string
		wantCode  int
		wantOut   []string
		wantErr   string
		wantImage image.Point
	}{
		{name: "no command", args: nil, wantCode: 1, wantErr: "Usage: skintool <command>"},
		{name: "unknown command", args: []string{"paint"}, wantCode: 1, wantErr: "Unknown command: paint"},
		{name: "render usage", args: []string{"render", in("sheet.png")}, wantCode: 1, wantErr: "Usage: skintool render"},
		{name: "render three args", args: []string{"render", in("sheet.png"), in("a.png"), "32"}, wantCode: 1, wantErr: "Usage: skintool render"},
		{name: "render bad size", args: []string{"render", in("sheet.png"), in("a.png"), "32", "x"}, wantCode: 1, wantErr: "positive integers"},
		{name: "render zero size", args: []string{"render", in("sheet.png"), in("a.png"), "0", "64"}, wantCode: 1, wantErr: "positive integers"},
		{name: "render missing sheet", args: []string{"render", in("nope.png"), in("a.png")}, wantCode: 1, wantErr: "FAIL:"},
		{name: "render broken sheet", args: []string{"render", in("broken.png"), in("a.png")}, wantCode: 1, wantErr: "decode skin sheet"},
		{
			name:      "render default size",
			args:      []string{"render", in("sheet.png"), in("default.png")},
			wantOut:   []string{"(161x323, second layer: false)"},
			wantImage: image.Pt(161, 323),
		},
		{
			name:      "render sized",
			args:      []string{"render", in("sheet.png"), in("small.png"), "32", "64"},
			wantOut:   []string{"small.png (32x64"},
			wantImage: image.Pt(32, 64),
		},
		{name: "view usage", args: []string{"view"}, wantCode: 1, wantErr: "Usage: skintool view"},
		{name: "tasks usage", args: []string{"tasks"}, wantCode: 1, wantErr: "Usage: skintool tasks"},
		{name: "tasks missing file", args: []string{"tasks", in("nope.json")}, wantCode: 1, wantErr: "FAIL:"},
		{name: "tasks empty base", args: []string{"tasks", in("empty.json")}, wantCode: 1, wantErr: "FAIL:"},
		{
			name: "tasks listing",
			args: []string{"tasks", in("taskbase.json")},
			wantOut: []string{
				"  1. Build a shrine [Normal] 8 tokens",
				"  2. Steal a bed [Hard] 17 tokens",
				"2 tasks: Normal=1 Hard=1 Red=0 Shiny=0",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := run(tt.args, &stdout, &stderr)
			if code != tt.wantCode {
				t.Fatalf("expected exit %d, got %d (stderr %q)", tt.wantCode, code, stderr.String())
			}
			for _, want := range tt.wantOut {
				if !strings.Contains(stdout.String(), want) {
					t.Errorf("expected stdout to contain %q, got %q", want, stdout.String())
				}
			}
			if tt.wantErr != "" && !strings.Contains(stderr.String(), tt.wantErr) {
				t.Errorf("expected stderr to contain %q, got %q", tt.wantErr, stderr.String())
			}
			if tt.wantCode == 0 && stderr.Len() != 0 {
				t.Errorf("expected no stderr output, got %q", stderr.String())
			}

			if tt.wantImage == (image.Point{}) {
				return
			}
			f, err := os.Open(tt.args[2])
			if err != nil {
				t.Fatal(err)
			}
			defer f.Close()
			img, err := png.Decode(f)
			if err != nil {
				t.Fatalf("decode output: %v", err)
			}
			if got := img.Bounds().Size(); got != tt.wantImage {
				t.Errorf("expected %v output, got %v", tt.wantImage, got)
			}
		})
	}
}
