// Command chat-collector ingests live Twitch chat for a configured set of
// channels and persists messages, bits, actions, and resubs into Postgres,
// tracking username-change history for every observed user. It:
//   - Loads configuration and initializes structured logging.
//   - Connects to Postgres and applies embedded migrations.
//   - Onboards each configured channel (Helix id lookup, local channel row,
//     IRC join) and then streams chat until the feed terminates.
//   - Exposes a minimal HTTP server with /healthz, /readyz, and /metrics.
//
// Feed termination is fatal by design; there is no reconnect. Run it under a
// supervisor that restarts the process.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/onnwee/chat-collector/chat"
	"github.com/onnwee/chat-collector/config"
	"github.com/onnwee/chat-collector/db"
	"github.com/onnwee/chat-collector/server"
	"github.com/onnwee/chat-collector/telemetry"
	"github.com/onnwee/chat-collector/twitchapi"
)

func main() {
	// Load .env file if present (local dev convenience only; production relies on real env)
	_ = godotenv.Load()

	// Configure logging (level + format). Defaults: level=info, format=text.
	lvl := slog.LevelInfo
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	case "info", "":
		// keep default
	default:
		tmp := slog.New(slog.NewTextHandler(os.Stdout, nil))
		tmp.Warn("unknown LOG_LEVEL, using info", slog.String("value", os.Getenv("LOG_LEVEL")))
	}
	var handler slog.Handler
	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	}
	slog.SetDefault(slog.New(handler))

	// Config
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", slog.Any("err", err))
		os.Exit(1)
	}
	if err := cfg.ValidateCollectorReady(); err != nil {
		slog.Error("config invalid", slog.Any("err", err))
		os.Exit(1)
	}

	// Initialize OpenTelemetry tracing (optional; requires OTEL_EXPORTER_OTLP_ENDPOINT)
	shutdownTracing, err := telemetry.InitTracing("chat-collector", "1.0.0")
	if err != nil {
		slog.Error("tracing initialization failed", slog.Any("err", err))
		os.Exit(1)
	}
	defer shutdownTracing()

	// DB
	database, err := db.Connect(cfg.DBDsn)
	if err != nil {
		slog.Error("failed to open db", slog.Any("err", err))
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("failed to close database", slog.Any("err", err))
		}
	}()

	slog.Info("running database migrations")
	if err := db.RunMigrations(database); err != nil {
		slog.Error("failed to migrate db", slog.Any("err", err))
		os.Exit(1)
	}

	// Root context with graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// HTTP server (health/readiness/metrics)
	go func() {
		if err := server.Start(ctx, database, cfg.HTTPAddr); err != nil {
			slog.Error("http server exited with error", slog.Any("err", err))
		}
	}()

	collector := &chat.Collector{
		DB: database,
		Helix: &twitchapi.HelixClient{
			AppTokenSource: &twitchapi.TokenSource{
				ClientID:     cfg.TwitchClientID,
				ClientSecret: cfg.TwitchClientSecret,
			},
			ClientID: cfg.TwitchClientID,
		},
		Feed:           chat.NewIRCFeed(),
		Channels:       cfg.TwitchChannels,
		AcquireTimeout: time.Duration(cfg.DBAcquireTimeoutSeconds) * time.Second,
	}

	// Run only returns on failure; a terminated feed means the process is
	// done and the supervisor restarts it.
	err = collector.Run(ctx)
	if ctx.Err() != nil {
		slog.Info("shutting down")
		return
	}
	slog.Error("collector terminated", slog.Any("err", err))
	os.Exit(1)
}
