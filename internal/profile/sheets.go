package profile

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"termfolio/internal/skin"
)

const maxCachedSheets = 64

// SheetLoader fetches and decodes skin sheets. Remote sheets are fetched
// over HTTP; anything else is a file under the local skins directory.
type SheetLoader struct {
	http     *http.Client
	dir      string
	fallback string
	log      *slog.Logger

	mu     sync.Mutex
	sheets map[string]image.Image
}

// NewSheetLoader returns a loader reading local sheets from dir. When the
// fallback file itself is missing, the built-in default sheet is used.
func NewSheetLoader(dir, fallback string, hc *http.Client, logger *slog.Logger) *SheetLoader {
	if hc == nil {
		hc = &http.Client{Timeout: 5 * time.Second}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SheetLoader{
		http:     hc,
		dir:      dir,
		fallback: fallback,
		log:      logger,
		sheets:   make(map[string]image.Image),
	}
}

// Load returns the decoded sheet at u. Decoded sheets are kept in memory.
func (l *SheetLoader) Load(ctx context.Context, u string) (image.Image, error) {
	l.mu.Lock()
	img, ok := l.sheets[u]
	l.mu.Unlock()
	if ok {
		return img, nil
	}

	var err error
	if strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") {
		img, err = l.fetch(ctx, u)
	} else {
		img, err = l.open(u)
	}
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	if len(l.sheets) >= maxCachedSheets {
		clear(l.sheets)
	}
	l.sheets[u] = img
	l.mu.Unlock()
	return img, nil
}

func (l *SheetLoader) fetch(ctx context.Context, u string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch sheet: %w", err)
	}
	resp, err := l.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch sheet %s: %w", u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch sheet %s: unexpected status %d", u, resp.StatusCode)
	}
	return skin.DecodeSheet(resp.Body)
}

func (l *SheetLoader) open(name string) (image.Image, error) {
	path := filepath.Join(l.dir, filepath.Clean("/"+name))
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) && name == l.fallback {
		l.log.Debug("fallback sheet missing, using built-in", "path", path)
		return skin.DefaultSheet(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("open sheet: %w", err)
	}
	defer f.Close()

	img, err := skin.DecodeSheet(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}
