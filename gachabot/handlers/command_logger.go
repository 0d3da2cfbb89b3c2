package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/tensuraworld/gachabot/gachabot/config"
	"github.com/tensuraworld/gachabot/gachabot/metrics"
)

// Wrapper decorates command and component handlers with logging, metrics
// and throttling. Either dependency may be nil.
type Wrapper struct {
	Metrics  *metrics.Metrics
	Throttle *Throttle
	Timeout  time.Duration
}

func NewWrapper(m *metrics.Metrics, t *Throttle) *Wrapper {
	return &Wrapper{Metrics: m, Throttle: t, Timeout: config.CommandExecutionTimeout}
}

// outcome turns a handler result into the status label used in logs and
// metrics.
func outcome(err error, took time.Duration) string {
	switch {
	case err != nil:
		return "failed"
	case took > config.SlowCommandThreshold:
		return "slow"
	default:
		return "success"
	}
}

// run waits for fn up to the wrapper's timeout.
func (w *Wrapper) run(fn func() error) (timedOut bool, err error) {
	timeout := w.Timeout
	if timeout <= 0 {
		timeout = config.CommandExecutionTimeout
	}

	done := make(chan error, 1)
	go func() {
		done <- fn()
	}()

	select {
	case err := <-done:
		return false, err
	case <-time.After(timeout):
		return true, fmt.Errorf("timed out after %s", timeout)
	}
}

func (w *Wrapper) WrapWithLogging(name string, h handler.CommandHandler) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		start := time.Now()
		base := []any{
			slog.String("type", "cmd"),
			slog.String("name", name),
			slog.String("user_id", e.User().ID.String()),
			slog.String("user_name", e.User().Username),
		}

		if !w.Throttle.Allow(context.Background(), int64(e.User().ID)) {
			w.Metrics.Throttled(name)
			slog.Warn("Command throttled", append(base, slog.String("status", "throttled"))...)
			return e.CreateMessage(discord.MessageCreate{
				Content: "⏳ Slow down a little. Try again in a few seconds.",
				Flags:   discord.MessageFlagEphemeral,
			})
		}

		slog.Debug("Command started", append(base,
			slog.Any("guild_id", e.GuildID()),
			slog.String("channel_id", e.ChannelID().String()),
		)...)

		timedOut, err := w.run(func() error { return h(e) })
		took := time.Since(start)

		if timedOut {
			w.Metrics.ObserveCommand(name, "timeout", took)
			slog.Error("Command timed out", append(base, slog.String("status", "timeout"), slog.Any("error", err))...)
			return err
		}

		status := outcome(err, took)
		w.Metrics.ObserveCommand(name, status, took)
		attrs := append(base, slog.Duration("took", took), slog.String("status", status))
		switch status {
		case "failed":
			slog.Error("Command failed", append(attrs, slog.Any("error", err))...)
		case "slow":
			slog.Warn("Command executed slowly", attrs...)
		default:
			slog.Info("Command completed", attrs...)
		}
		return err
	}
}

func (w *Wrapper) WrapComponentWithLogging(name string, h handler.ComponentHandler) handler.ComponentHandler {
	return func(e *handler.ComponentEvent) error {
		start := time.Now()
		base := []any{
			slog.String("type", "component"),
			slog.String("name", name),
			slog.String("user_id", e.User().ID.String()),
			slog.String("user_name", e.User().Username),
			slog.String("custom_id", e.Data.CustomID()),
		}

		if !w.Throttle.Allow(context.Background(), int64(e.User().ID)) {
			w.Metrics.Throttled(name)
			slog.Warn("Component throttled", append(base, slog.String("status", "throttled"))...)
			return e.CreateMessage(discord.MessageCreate{
				Content: "⏳ Slow down a little. Try again in a few seconds.",
				Flags:   discord.MessageFlagEphemeral,
			})
		}

		timedOut, err := w.run(func() error { return h(e) })
		took := time.Since(start)

		if timedOut {
			w.Metrics.ObserveCommand(name, "timeout", took)
			slog.Error("Component interaction timed out", append(base, slog.String("status", "timeout"), slog.Any("error", err))...)
			return err
		}

		status := outcome(err, took)
		w.Metrics.ObserveCommand(name, status, took)
		attrs := append(base, slog.Duration("took", took), slog.String("status", status))
		switch status {
		case "failed":
			slog.Error("Component interaction failed", append(attrs, slog.Any("error", err))...)
		case "slow":
			slog.Warn("Component interaction executed slowly", attrs...)
		default:
			slog.Info("Component interaction completed", attrs...)
		}
		return err
	}
}
