package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image/png"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"termfolio/internal/app"
	"termfolio/internal/skin"
	"termfolio/internal/tasks"
)

// MaxSkinDim bounds the requested composite size.
const MaxSkinDim = 1024

// HTTPDeps are the collaborators of the HTTP server.
type HTTPDeps struct {
	Resolver app.Resolver
	Sheets   app.SheetSource
	Tasks    []tasks.Task
	// Width and Height are the default composite size.
	Width  int
	Height int
	Logger *slog.Logger
}

// HTTPServer serves composited skins and the task base.
type HTTPServer struct {
	addr   string
	deps   HTTPDeps
	logger *slog.Logger
	router *chi.Mux
}

// NewHTTPServer builds the router for addr.
func NewHTTPServer(addr string, d HTTPDeps) *HTTPServer {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Width <= 0 || d.Height <= 0 {
		d.Width, d.Height = 161, 323
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	s := &HTTPServer{addr: addr, deps: d, logger: d.Logger, router: r}
	r.Get("/healthz", s.handleHealth)
	r.Get("/skins/{name}.png", s.handleSkin)
	r.Get("/tasks", s.handleTasks)
	return s
}

// Handler returns the router.
func (s *HTTPServer) Handler() http.Handler {
	return s.router
}

// Start serves until ctx is done, then shuts down gracefully.
func (s *HTTPServer) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Warn("http shutdown", "error", err)
		}
	}()

	s.logger.Info("http server listening", "addr", s.addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

func (s *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok\n"))
}

// handleSkin composites the named player's skin and returns it as PNG.
func (s *HTTPServer) handleSkin(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	width, err := dimParam(r, "w", s.deps.Width)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	height, err := dimParam(r, "h", s.deps.Height)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	src, sheet := app.ResolveSheet(r.Context(), s.deps.Resolver, s.deps.Sheets, name, s.logger)
	img, overlay := skin.CompositeImage(sheet, width, height)

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=300")
	w.Header().Set("X-Skin-Variant", string(src.Variant))
	w.Header().Set("X-Skin-Overlay", strconv.FormatBool(overlay))
	if err := png.Encode(w, img); err != nil {
		s.logger.Error("encode skin", "name", name, "error", err)
	}
}

func dimParam(r *http.Request, key string, def int) (int, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 || n > MaxSkinDim {
		return 0, fmt.Errorf("invalid %s: must be 1..%d", key, MaxSkinDim)
	}
	return n, nil
}

type taskResponse struct {
	Key            string `json:"key"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	Difficulty     int    `json:"difficulty"`
	DifficultyName string `json:"difficulty_name"`
	Color          string `json:"color"`
	Reward         int    `json:"reward"`
}

func (s *HTTPServer) handleTasks(w http.ResponseWriter, r *http.Request) {
	resp := make([]taskResponse, len(s.deps.Tasks))
	for i, t := range s.deps.Tasks {
		resp[i] = taskResponse{
			Key:            t.Key,
			Name:           t.Name,
			Description:    t.Description,
			Difficulty:     int(t.Difficulty),
			DifficultyName: t.Difficulty.String(),
			Color:          t.Difficulty.Hex(),
			Reward:         t.EffectiveReward(),
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
