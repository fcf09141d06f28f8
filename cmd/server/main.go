package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/inamate/pathguide/internal/app"
	"github.com/inamate/pathguide/internal/codeview"
	"github.com/inamate/pathguide/internal/config"
	"github.com/inamate/pathguide/internal/document"
	mw "github.com/inamate/pathguide/internal/middleware"
	"github.com/inamate/pathguide/internal/session"
	"github.com/inamate/pathguide/internal/sketch"
	"github.com/inamate/pathguide/internal/static"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	page, err := loadPage(cfg.ManifestPath)
	if err != nil {
		slog.Error("load page", "error", err, "path", cfg.ManifestPath)
		os.Exit(1)
	}

	hl := codeview.NewChroma(codeview.DefaultLanguage, cfg.CodeStyle)
	sketchCfg := sketch.Config{
		Width:       cfg.CanvasWidth,
		Height:      cfg.CanvasHeight,
		Tolerance:   cfg.HitTolerance,
		Scale:       cfg.CanvasScale,
		Highlighter: hl,
		Logger:      slog.Default(),
	}

	// Every session and every request gets its own app.
	newApp := func() (*app.App, error) {
		return app.FromManifest(page, sketchCfg)
	}
	if _, err := newApp(); err != nil {
		slog.Error("build sketches", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := session.NewHub(newApp, slog.Default())
	go hub.Run(ctx)

	staticHandler, err := static.NewHandler(newApp, hl, slog.Default())
	if err != nil {
		slog.Error("static handler", "error", err)
		os.Exit(1)
	}

	r := mux.NewRouter()

	// Global middleware
	r.Use(mw.Recovery)
	r.Use(mw.Logger)
	r.Use(mw.CORS(cfg.Origins()))

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	r.HandleFunc("/", staticHandler.Page).Methods("GET")
	r.PathPrefix("/static/").Handler(staticHandler.Assets()).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/sketches", staticHandler.List).Methods("GET")
	api.HandleFunc("/sketches/{name}/code", staticHandler.Code).Methods("GET")
	api.HandleFunc("/sketches/{name}/snapshot.png", staticHandler.Snapshot).Methods("GET")
	api.HandleFunc("/sketches/{name}/export.cpp", staticHandler.Export).Methods("GET")

	// WebSocket endpoint
	r.HandleFunc("/ws/sketch", hub.Handler(cfg.OriginPatterns()))

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down server")

		// Close sessions before the listener goes away
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		srv.Shutdown(shutdownCtx)
	}()

	slog.Info("server starting", "addr", addr, "sketches", len(page.Sections))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

func loadPage(path string) (*document.Page, error) {
	if path == "" {
		return document.Default()
	}
	return document.LoadFile(path)
}
