package render

import (
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	xdraw "golang.org/x/image/draw"
)

// LoadImage reads a PNG from disk.
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// Gallery is an ordered set of images shown one at a time.
type Gallery struct {
	Names  []string
	Images []image.Image
}

// Len returns the number of images.
func (g *Gallery) Len() int {
	if g == nil {
		return 0
	}
	return len(g.Images)
}

// LoadGallery loads every PNG in dir, sorted by file name. Files that fail
// to decode are skipped with a warning. A missing directory is an error.
func LoadGallery(dir string, logger *slog.Logger) (*Gallery, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read gallery dir %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".png") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	g := &Gallery{}
	for _, name := range names {
		path := filepath.Join(dir, name)
		img, err := LoadImage(path)
		if err != nil {
			if logger != nil {
				logger.Warn("skipping gallery image", "path", path, "err", err)
			}
			continue
		}
		g.Names = append(g.Names, strings.TrimSuffix(name, filepath.Ext(name)))
		g.Images = append(g.Images, img)
	}
	return g, nil
}

// Fit scales img down, keeping its aspect ratio, so it covers at most
// cols x rows cells when stamped. Images that already fit are returned as-is.
func Fit(img image.Image, cols, rows int) image.Image {
	if img == nil || cols <= 0 || rows <= 0 {
		return img
	}
	b := img.Bounds()
	maxW, maxH := cols, rows*2
	if b.Dx() <= maxW && b.Dy() <= maxH {
		return img
	}

	w, h := maxW, b.Dy()*maxW/b.Dx()
	if h > maxH {
		h = maxH
		w = b.Dx() * maxH / b.Dy()
	}
	w, h = max(w, 1), max(h, 1)

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}
