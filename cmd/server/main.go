package main

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"flag"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	"termfolio/internal/app"
	"termfolio/internal/config"
	"termfolio/internal/profile"
	"termfolio/internal/render"
	"termfolio/internal/server"
	"termfolio/internal/store"
	"termfolio/internal/tasks"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	cfg, err := config.LoadConfigFile(*configPath)
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	logger := newLogger(cfg)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Generate host key if it doesn't exist
	if err := ensureHostKey(cfg.SSH.HostKey, logger); err != nil {
		return err
	}

	st, err := store.Open(cfg.Store.Path, store.WithMkdirAll())
	if err != nil {
		return err
	}
	defer st.Close()

	hc := &http.Client{Timeout: cfg.Mojang.Timeout}
	resolver := profile.NewClient(
		profile.WithHTTPClient(hc),
		profile.WithAPIBase(cfg.Mojang.APIBase),
		profile.WithSessionBase(cfg.Mojang.SessionBase),
		profile.WithCache(st, cfg.Skin.CacheTTL),
		profile.WithFallback(cfg.Skin.Fallback),
		profile.WithLogger(logger),
	)
	sheets := profile.NewSheetLoader(cfg.Assets.Dir, cfg.Skin.Fallback, hc, logger)

	taskPath := filepath.Join(cfg.Assets.Dir, "minecraft", "serverdata", "taskbase.json")
	taskList, err := tasks.Load(taskPath)
	if err != nil {
		logger.Warn("no task base", "path", taskPath, "error", err)
	}

	galleryDir := filepath.Join(cfg.Assets.Dir, "minecraft", "gallery")
	gallery, err := render.LoadGallery(galleryDir, logger)
	if err != nil {
		logger.Warn("no gallery", "dir", galleryDir, "error", err)
	}
	logger.Info("assets loaded", "tasks", len(taskList), "gallery", gallery.Len())

	hub := app.NewHub(app.Deps{
		Resolver: resolver,
		Sheets:   sheets,
		Scores:   st,
		Tasks:    taskList,
		Gallery:  gallery,
		Logger:   logger,
		Debounce: cfg.Skin.Debounce,
	})

	var wg sync.WaitGroup
	errCh := make(chan error, 2)

	wg.Add(1)
	go func() {
		defer wg.Done()
		hub.Run(ctx)
	}()

	if cfg.HTTP.Addr != "" {
		httpServer := server.NewHTTPServer(cfg.HTTP.Addr, server.HTTPDeps{
			Resolver: resolver,
			Sheets:   sheets,
			Tasks:    taskList,
			Width:    cfg.Skin.Width,
			Height:   cfg.Skin.Height,
			Logger:   logger,
		})
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := httpServer.Start(ctx); err != nil {
				errCh <- err
				stop()
			}
		}()
	}

	sshServer := server.NewSSHServer(cfg.SSH.Addr, cfg.SSH.HostKey, hub, logger)
	if _, port, err := net.SplitHostPort(cfg.SSH.Addr); err == nil {
		logger.Info("starting termfolio", "connect", "ssh -p "+port+" YourName@localhost")
	}
	if err := sshServer.Start(ctx); err != nil {
		errCh <- err
		stop()
	}

	wg.Wait()
	close(errCh)

	var errs []error
	for err := range errCh {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func ensureHostKey(path string, logger *slog.Logger) error {
	if _, err := os.Stat(path); err == nil {
		return nil // key already exists
	}

	logger.Info("generating new host key", "path", path)
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return err
	}

	keyBytes, err := x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		return err
	}

	pemBlock := &pem.Block{
		Type:  "PRIVATE KEY",
		Bytes: keyBytes,
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return err
		}
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	return pem.Encode(f, pemBlock)
}
