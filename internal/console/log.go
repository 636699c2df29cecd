package console

import (
	"context"
	"log/slog"

	"prison-admin/internal/state"
)

const logLabel = "Console"

func (c *Console) logDebug(msg string, attrs ...any) {
	c.log(slog.LevelDebug, "DEBUG", msg, attrs...)
}

func (c *Console) logInfo(msg string, attrs ...any) {
	c.log(slog.LevelInfo, "INFO", msg, attrs...)
}

func (c *Console) logError(msg string, attrs ...any) {
	c.log(slog.LevelError, "ERROR", msg, attrs...)
}

// log writes to slog and, when the level is enabled, to the activity log
// shown in the web UI.
func (c *Console) log(level slog.Level, name, msg string, attrs ...any) {
	allAttrs := append([]any{"component", logLabel}, attrs...)
	slog.Log(context.Background(), level, msg, allAttrs...)

	if c.state != nil && slog.Default().Enabled(context.Background(), level) {
		c.state.AddLog(name, logLabel, state.FormatLogMessage(name, msg, allAttrs...))
	}
}
