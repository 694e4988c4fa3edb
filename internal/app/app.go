package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/stargaze/internal/apod"
	"github.com/five82/stargaze/internal/config"
	"github.com/five82/stargaze/internal/daterange"
	"github.com/five82/stargaze/internal/diag"
	"github.com/five82/stargaze/internal/gallery"
	"github.com/five82/stargaze/internal/prefs"
	"github.com/five82/stargaze/internal/ui"
)

// Options configure the stargaze application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/stargaze/prefs.toml
	Start      string // optional initial range; both empty uses the selector default
	End        string
	Debug      bool
}

// Run boots the stargaze TUI until the user quits or the context is
// cancelled.
func Run(ctx context.Context, opts Options) error {
	uiOpts, cleanup, err := prepare(ctx, opts)
	if err != nil {
		return err
	}
	defer cleanup()

	err = ui.Run(uiOpts)
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		uiOpts.Logger.Info("shutdown signal received")
		return nil
	}
	if err != nil {
		uiOpts.Logger.Error("ui exited", zap.Error(err))
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

// prepare builds every collaborator the UI needs.
func prepare(ctx context.Context, opts Options) (ui.Options, func(), error) {
	if err := config.LoadDotEnv(); err != nil {
		return ui.Options{}, nil, err
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return ui.Options{}, nil, fmt.Errorf("load stargaze config: %w", err)
	}

	logger, err := diag.NewFileLogger(cfg.LogFile, opts.Debug)
	if err != nil {
		return ui.Options{}, nil, fmt.Errorf("init logger: %w", err)
	}
	cleanup := func() { _ = logger.Sync() }

	key := cfg.ClientKey()
	client, err := apod.NewClient(cfg.APIURL, key, apod.WithTimeout(cfg.Timeout))
	if err != nil {
		cleanup()
		return ui.Options{}, nil, fmt.Errorf("init feed client: %w", err)
	}

	userPrefs, _ := prefs.Load(opts.PrefsPath)

	ctrl := gallery.NewController(time.Now, cfg.ExcerptLength)
	selector := daterange.New(cfg.RangeDays, time.Now)

	logger.Info("stargaze starting",
		zap.String("api_url", client.Endpoint()),
		zap.Bool("api_key", key != ""),
		zap.Bool("demo_key", key == config.DemoKey),
		zap.Duration("timeout", cfg.Timeout),
	)

	return ui.Options{
		Context:    ctx,
		Client:     client,
		Controller: &ctrl,
		Selector:   &selector,
		Logger:     logger,
		Timeout:    cfg.Timeout,
		Prefs:      userPrefs,
		PrefsPath:  opts.PrefsPath,
		LogPath:    cfg.LogFile,
		Start:      opts.Start,
		End:        opts.End,
	}, cleanup, nil
}
