package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"prison-admin/internal/apiclient"
	"prison-admin/internal/config"
	"prison-admin/internal/console"
	"prison-admin/internal/entity"
	"prison-admin/internal/modal"
	"prison-admin/internal/notify"
	"prison-admin/internal/refcache"
	"prison-admin/internal/state"
	"prison-admin/internal/web"
)

// version is set at build time via -ldflags "-X main.version=v1.0.0"
var version = "dev"

var appState *state.AppState

func main() {
	// Load config first to get log level
	cfg, err := config.Load()
	if err != nil {
		// Can't use logInfo yet as slog isn't configured
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Configure slog with JSON handler and configured log level
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))

	appState = state.New(500, cfg.APIURL, cfg.StateFile)

	logInfo("Starting prison-admin", "version", version)
	logInfo("Records API", "url", cfg.APIURL, "timeout", cfg.APITimeout.String(), "rate_limit", cfg.APIRateLimit)
	logInfo("List configuration", "page_size", cfg.PageSize, "list_limit", cfg.ListLimit, "search_debounce", cfg.SearchDebounce.String())
	if cfg.StateFile != "" {
		logDebug("State file configured", "path", cfg.StateFile)
	}

	metrics := apiclient.NewMetrics("prison_admin")
	api := apiclient.New(apiclient.Options{
		BaseURL:   cfg.APIURL,
		Timeout:   cfg.APITimeout,
		RateLimit: cfg.APIRateLimit,
		Metrics:   metrics,
	})

	notifier := notify.New(cfg.ToastTTL)
	overlay := modal.New()
	c := console.New(console.Options{
		API:            api,
		Entities:       entity.Default(),
		Cache:          refcache.New(api, refcache.DefaultSources()...),
		Notifier:       notifier,
		Modal:          overlay,
		State:          appState,
		PageSize:       cfg.PageSize,
		ListLimit:      cfg.ListLimit,
		SearchDebounce: cfg.SearchDebounce,
	})
	defer c.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Health monitor runs until shutdown
	go c.MonitorHealth(ctx, cfg.HealthInterval)

	// Open the restored page so the first client sees data
	go func() {
		page := string(appState.Page())
		if err := c.Navigate(ctx, page); err != nil {
			logError("Initial page load failed", "page", page, "error", err)
		}
	}()

	webServer := web.New(web.Options{
		Console:  c,
		State:    appState,
		Notifier: notifier,
		Modal:    overlay,
		Metrics:  metrics.Handler(),
		Port:     cfg.WebPort,
		Version:  version,
	})
	if err := webServer.Start(ctx); err != nil {
		logError("Web server failed", "error", err)
		os.Exit(1)
	}
	logInfo("Shutting down gracefully")
}

func logDebug(msg string, attrs ...any) {
	// Add component as first attribute
	allAttrs := append([]any{"component", "Main"}, attrs...)
	slog.Debug(msg, allAttrs...)

	// Only add to web UI if this level is enabled
	if appState != nil && slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		appState.AddLog("DEBUG", "Main", state.FormatLogMessage("DEBUG", msg, allAttrs...))
	}
}

func logInfo(msg string, attrs ...any) {
	allAttrs := append([]any{"component", "Main"}, attrs...)
	slog.Info(msg, allAttrs...)

	if appState != nil && slog.Default().Enabled(context.Background(), slog.LevelInfo) {
		appState.AddLog("INFO", "Main", state.FormatLogMessage("INFO", msg, allAttrs...))
	}
}

func logError(msg string, attrs ...any) {
	allAttrs := append([]any{"component", "Main"}, attrs...)
	slog.Error(msg, allAttrs...)

	if appState != nil && slog.Default().Enabled(context.Background(), slog.LevelError) {
		appState.AddLog("ERROR", "Main", state.FormatLogMessage("ERROR", msg, allAttrs...))
	}
}

// parseLogLevel converts a string log level to slog.Level
func parseLogLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
