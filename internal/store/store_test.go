package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"termfolio/internal/skin"
)

func TestOpenAppliesPragmas(t *testing.T) {
	st := OpenMemory(t, WithBusyTimeout(5000))

	var busyTimeout int
	if err := st.db.QueryRow("PRAGMA busy_timeout").Scan(&busyTimeout); err != nil {
		t.Fatal(err)
	}
	if busyTimeout != 5000 {
		t.Fatalf("busy_timeout = %d, want 5000", busyTimeout)
	}

	var fk int
	if err := st.db.QueryRow("PRAGMA foreign_keys").Scan(&fk); err != nil {
		t.Fatal(err)
	}
	if fk != 1 {
		t.Fatalf("foreign_keys = %d, want 1", fk)
	}
}

func TestOpenFileWithMkdirAll(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "termfolio.db")
	st, err := Open(path, WithMkdirAll())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer st.Close()

	if _, err := st.RecordScore(context.Background(), "alice", 3); err != nil {
		t.Fatalf("RecordScore: %v", err)
	}
}

func TestSkinCache(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	st := OpenMemory(t, WithClock(func() time.Time { return now }))
	ctx := context.Background()

	if _, ok, err := st.CachedSkin(ctx, "Notch", time.Hour); err != nil || ok {
		t.Fatalf("expected miss on empty cache, got ok=%v err=%v", ok, err)
	}

	src := skin.Source{URL: "http://textures.example/abc", Variant: skin.Slim}
	if err := st.SaveSkin(ctx, "Notch", "069a79f4", src); err != nil {
		t.Fatalf("SaveSkin: %v", err)
	}

	got, ok, err := st.CachedSkin(ctx, "notch", time.Hour)
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if got != src {
		t.Errorf("expected %+v, got %+v", src, got)
	}

	now = now.Add(2 * time.Hour)
	if _, ok, _ := st.CachedSkin(ctx, "Notch", time.Hour); ok {
		t.Error("expected expired entry to miss")
	}

	// A later save replaces the entry and refreshes its age.
	src.Variant = skin.Normal
	if err := st.SaveSkin(ctx, "NOTCH", "069a79f4", src); err != nil {
		t.Fatalf("SaveSkin: %v", err)
	}
	got, ok, _ = st.CachedSkin(ctx, "Notch", time.Hour)
	if !ok || got.Variant != skin.Normal {
		t.Errorf("expected refreshed normal entry, got %+v ok=%v", got, ok)
	}
}

func TestRecordScoreKeepsBest(t *testing.T) {
	st := OpenMemory(t)
	ctx := context.Background()

	if best, err := st.BestScore(ctx, "alice"); err != nil || best != 0 {
		t.Fatalf("expected 0 for unknown player, got %d err=%v", best, err)
	}

	tests := []struct {
		score int
		want  int
	}{
		{3, 3},
		{1, 3},
		{7, 7},
		{0, 7},
	}
	for _, tt := range tests {
		best, err := st.RecordScore(ctx, "alice", tt.score)
		if err != nil {
			t.Fatalf("RecordScore(%d): %v", tt.score, err)
		}
		if best != tt.want {
			t.Errorf("RecordScore(%d) = %d, want %d", tt.score, best, tt.want)
		}
	}

	if best, _ := st.BestScore(ctx, "alice"); best != 7 {
		t.Errorf("expected stored best 7, got %d", best)
	}
	if best, _ := st.BestScore(ctx, "bob"); best != 0 {
		t.Errorf("expected other players unaffected, got %d", best)
	}
}
