package ui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/stargaze/internal/apod"
	"github.com/five82/stargaze/internal/gallery"
)

var errNoClient = errors.New("no feed client configured")

// runEffects performs logging inline and turns fetches into commands.
func (m Model) runEffects(effects []gallery.Effect) []tea.Cmd {
	var cmds []tea.Cmd
	for _, eff := range effects {
		switch e := eff.(type) {
		case gallery.FetchRange:
			m.logger.Debug("fetch range",
				zap.Uint64("seq", e.Seq),
				zap.Stringer("range", e.Range),
			)
			cmds = append(cmds, fetchRangeCmd(m.ctx, m.client, m.timeout, e))
		case gallery.FetchRandom:
			m.logger.Debug("fetch fact")
			cmds = append(cmds, fetchFactCmd(m.ctx, m.client, m.timeout))
		case gallery.LogFailure:
			m.logFailure(e)
		}
	}
	return cmds
}

func fetchRangeCmd(ctx context.Context, client apod.Fetcher, timeout time.Duration, e gallery.FetchRange) tea.Cmd {
	return func() tea.Msg {
		if client == nil {
			return gallery.RangeLoaded{Seq: e.Seq, Err: errNoClient}
		}
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		entries, err := client.FetchRange(ctx, e.Range)
		return gallery.RangeLoaded{Seq: e.Seq, Entries: entries, Err: err}
	}
}

func fetchFactCmd(ctx context.Context, client apod.Fetcher, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		if client == nil {
			return gallery.FactLoaded{Err: errNoClient}
		}
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		entry, err := client.FetchRandom(ctx)
		return gallery.FactLoaded{Entry: entry, Err: err}
	}
}

// logFailure records a failure. Rejected input is a warning; everything
// else is an error.
func (m Model) logFailure(e gallery.LogFailure) {
	fields := []zap.Field{zap.String("op", e.Op), zap.Error(e.Err)}
	var apiErr *apod.Error
	if errors.As(e.Err, &apiErr) {
		fields = append(fields, zap.Stringer("kind", apiErr.Kind))
		if apiErr.Status != 0 {
			fields = append(fields, zap.Int("status", apiErr.Status))
		}
	}
	if apod.KindOf(e.Err) == apod.KindValidation || errors.Is(e.Err, apod.ErrMissingDates) {
		m.logger.Warn(e.Op+" rejected", fields...)
		return
	}
	m.logger.Error(e.Op+" failed", fields...)
}
