package app

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"socpredict/internal/config"
	"socpredict/internal/logging"
)

// RunOptions configures Run.
type RunOptions struct {
	Options

	// ConfigPath is watched for live reloads when non-empty.
	ConfigPath string

	// NewService builds a service for reloaded endpoints.
	NewService func(cfg *config.Config) Service

	// ThemeOverride, when set, wins over ui.theme on every reload.
	ThemeOverride string
}

// reloadMsg turns a watcher callback into the message the model applies.
func (o RunOptions) reloadMsg(cfg *config.Config, err error) ConfigReloadedMsg {
	if err != nil {
		return ConfigReloadedMsg{Err: err}
	}
	msg := ConfigReloadedMsg{Theme: cfg.UI.Theme}
	if o.ThemeOverride != "" {
		msg.Theme = o.ThemeOverride
	}
	if o.NewService != nil {
		msg.Service = o.NewService(cfg)
	}
	return msg
}

// Run starts the interactive client on the alternate screen and blocks
// until the user quits.
func Run(opts RunOptions) error {
	if opts.Logger == nil {
		opts.Logger = logging.Get(logging.CategoryUI)
	}
	p := tea.NewProgram(New(opts.Options), tea.WithAltScreen())

	if opts.ConfigPath != "" {
		w, err := config.NewWatcher(opts.ConfigPath, func(cfg *config.Config, err error) {
			p.Send(opts.reloadMsg(cfg, err))
		})
		if err != nil {
			opts.Logger.Warn("config watcher unavailable", zap.Error(err))
		} else {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			if err := w.Start(ctx); err != nil {
				opts.Logger.Warn("config watcher not started", zap.Error(err))
			}
			defer w.Close()
		}
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}
