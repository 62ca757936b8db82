package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lysyi3m/tumblr-postmap/app/api"
	"github.com/lysyi3m/tumblr-postmap/app/canvas"
	"github.com/lysyi3m/tumblr-postmap/app/cfg"
	"github.com/lysyi3m/tumblr-postmap/app/loop"
	"github.com/lysyi3m/tumblr-postmap/app/mapview"
	"github.com/lysyi3m/tumblr-postmap/app/pager"
	"github.com/lysyi3m/tumblr-postmap/app/tumblr"
)

func main() {
	cfg, err := cfg.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if cfg == nil {
		// help was shown
		return
	}

	if cfg.Debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	slog.Info("Starting Tumblr PostMap", "version", cfg.Version, "blog", cfg.BlogURL, "source", cfg.Source, "tag", cfg.Tag)

	opts, err := mapOptions(cfg)
	if err != nil {
		slog.Error("Invalid map options", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	page := canvas.NewPage()
	page.AddContainer(cfg.ContainerID, cfg.ParentWidth)
	location := canvas.NewLocation(cfg.Hash)

	sessionLoop := loop.New(loop.DefaultQueueSize)
	go sessionLoop.Run(ctx)

	plugin := &mapview.Plugin{
		Document:     page,
		Engines:      page,
		Source:       newSource(cfg),
		Location:     location,
		Loop:         sessionLoop,
		PollInterval: cfg.PollInterval,
	}

	session, ok := plugin.Attach(ctx, cfg.ContainerID, opts)
	if !ok {
		slog.Error("Map could not be attached", "container", cfg.ContainerID)
		os.Exit(1)
	}

	m, _ := page.Map(opts.MapID)

	if cfg.Serve {
		if err := serve(ctx, cfg, api.NewHandler(sessionLoop, session, m, location, cfg.Version)); err != nil {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
		return
	}

	if err := session.Wait(ctx); err != nil {
		slog.Error("Failed to load posts", "error", err)
		os.Exit(1)
	}

	if err := render(ctx, cfg.Output, sessionLoop, session, m); err != nil {
		slog.Error("Failed to write map", "output", cfg.Output, "error", err)
		os.Exit(1)
	}
}

func newSource(c *cfg.Cfg) pager.Source {
	httpClient := tumblr.NewHTTPClient(c.Timeout)

	if c.Source == cfg.SourceRSS {
		return tumblr.NewRSSSource(httpClient, c.BlogURL, c.UserAgent)
	}
	return tumblr.NewClient(httpClient, c.BlogURL, c.Callback, c.Tag, c.UserAgent)
}

// mapOptions layers the options file and command-line overrides over the
// defaults.
func mapOptions(cfg *cfg.Cfg) (mapview.Options, error) {
	opts := mapview.DefaultOptions()

	if cfg.MapConfig != "" {
		if err := mapview.LoadOptionsFile(cfg.MapConfig, &opts); err != nil {
			return opts, err
		}
	}

	if cfg.MapID != "" {
		opts.MapID = cfg.MapID
	}
	if cfg.MapWidth != "" || cfg.MapHeight != "" {
		opts.MapSize = &mapview.Size{Width: cfg.MapWidth, Height: cfg.MapHeight}
	}

	return opts, opts.Validate()
}

func render(ctx context.Context, output string, l *loop.Loop, session *mapview.Session, m *canvas.Map) error {
	var data []byte
	var marshalErr error

	if err := l.Do(ctx, func() {
		data, marshalErr = json.MarshalIndent(m.FeatureCollection(session.State()), "", "  ")
	}); err != nil {
		return err
	}
	if marshalErr != nil {
		return fmt.Errorf("failed to encode map: %w", marshalErr)
	}
	data = append(data, '\n')

	if output == "" || output == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}

	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	slog.Info("Map written", "output", output, "bytes", len(data))
	return nil
}

func serve(ctx context.Context, cfg *cfg.Cfg, handler *api.Handler) error {
	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      api.NewServer(handler),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "port", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("Shutdown signal received")
	case err := <-serverErrChan:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTP server shutdown error: %w", err)
	}

	slog.Info("Tumblr PostMap shutdown complete")
	return nil
}
