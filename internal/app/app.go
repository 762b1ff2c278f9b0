package app

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/filedag/internal/render"
	"github.com/vk/filedag/internal/theme"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	inR      io.Reader
	logger   *slog.Logger
	config   *Config
	theme    *theme.Theme
	renderer render.Renderer
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger and loaded theme.
// The document goes to outW, logs go to logW, and inR is the fallback
// summary source when no file path is configured.
func NewApp(outW io.Writer, logW io.Writer, inR io.Reader, cfg *Config, renderer render.Renderer) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	th, err := theme.Load(cfg.ThemePath)
	if err != nil {
		// A failure to load config is a fatal startup error.
		return nil, fmt.Errorf("failed to load theme: %w", err)
	}
	logger.Debug("Theme loaded.", "path", cfg.ThemePath)

	if renderer == nil {
		renderer = render.NewDotRenderer(cfg.DotBinary)
	}

	return &App{
		outW:     outW,
		inR:      inR,
		logger:   logger,
		config:   cfg,
		theme:    th,
		renderer: renderer,
	}, nil
}

// Theme returns the loaded theme. This is primarily for testing.
func (a *App) Theme() *theme.Theme {
	return a.theme
}
