package chat

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	twitch "github.com/gempir/go-twitch-irc/v4"

	"github.com/onnwee/chat-collector/store"
	"github.com/onnwee/chat-collector/telemetry"
	"github.com/onnwee/chat-collector/twitchapi"
)

const defaultAcquireTimeout = 5 * time.Second

// Collector owns the ingestion pipeline for a set of channels.
type Collector struct {
	DB       *sql.DB
	Helix    *twitchapi.HelixClient
	Feed     Feed
	Channels []string

	// AcquireTimeout bounds how long the dispatcher waits for a pooled
	// connection before dropping an event. Zero means the default (5s).
	AcquireTimeout time.Duration
}

// Run onboards the configured channels and streams until the feed terminates.
// It only returns on failure: an onboarding error, context cancellation, or
// feed termination, all of which are fatal for the process.
func (c *Collector) Run(ctx context.Context) error {
	if err := c.onboard(ctx); err != nil {
		return err
	}

	go c.dispatch(ctx)

	err := c.Feed.Listen(ctx)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		return fmt.Errorf("chat feed terminated: %w", err)
	}
	return errors.New("chat feed terminated")
}

// dispatch pulls events in delivery order and spawns one handler goroutine
// per event. It never waits for a handler; persisted write order across
// events is not guaranteed, each message row carries its own send_time.
func (c *Collector) dispatch(ctx context.Context) {
	timeout := c.AcquireTimeout
	if timeout <= 0 {
		timeout = defaultAcquireTimeout
	}

	for msg := range c.Feed.Events() {
		acquireCtx, cancel := context.WithTimeout(ctx, timeout)
		conn, err := c.DB.Conn(acquireCtx)
		cancel()
		if err != nil {
			// Pool exhaustion must not stall ingestion; this one event is
			// lost and not retried.
			slog.Error("dropping event: no database connection", slog.Any("err", err))
			telemetry.EventsDropped.Inc()
			continue
		}

		go c.handle(ctx, conn, msg)
	}
}

// handle processes a single event on its borrowed connection. Failures are
// logged and counted; they never affect sibling handlers or the dispatcher.
func (c *Collector) handle(ctx context.Context, conn *sql.Conn, msg twitch.Message) {
	defer func() {
		if err := conn.Close(); err != nil {
			slog.Warn("failed to release pooled connection", slog.Any("err", err))
		}
	}()

	ctx, span := telemetry.StartSpan(ctx, "chat", "chat.handle_event")
	defer span.End()

	var err error
	telemetry.TimeFunc(telemetry.HandlerDuration, func() {
		err = c.process(ctx, conn, msg)
	})
	if err != nil {
		telemetry.HandlerFailures.Inc()
		telemetry.RecordError(span, err)
		slog.Error("failed to record chat event", slog.Any("err", err))
	}
}

func (c *Collector) process(ctx context.Context, conn *sql.Conn, msg twitch.Message) error {
	ev, err := classify(msg)
	if err != nil {
		return fmt.Errorf("classify event: %w", err)
	}
	if ev == nil {
		telemetry.EventsIgnored.Inc()
		return nil
	}

	ch, err := store.GetChannelByTwitchID(ctx, conn, ev.TwitchChannelID)
	if err != nil {
		return err
	}
	if ch == nil {
		// Events only arrive for joined channels; a miss here means the
		// onboarding invariant was broken.
		return fmt.Errorf("no local channel for twitch channel id %s", ev.TwitchChannelID)
	}

	renamed, err := store.RecordMessage(ctx, conn, store.RecordParams{
		Msg:          ev.Msg,
		MsgType:      ev.Kind,
		ChannelID:    ch.ID,
		SendTime:     ev.SentAt,
		Bits:         ev.Bits,
		Resub:        ev.Resub,
		TwitchUserID: ev.TwitchUserID,
		Username:     ev.Username,
	})
	if err != nil {
		return err
	}

	telemetry.MessagesRecorded.Inc()
	if renamed {
		telemetry.RenamesRecorded.Inc()
	}
	if ev.Resub != nil {
		telemetry.ResubsRecorded.Inc()
	}
	slog.Debug("recorded chat event",
		slog.String("kind", string(ev.Kind)),
		slog.String("channel", ch.ChannelName),
		slog.String("user", ev.Username),
	)
	return nil
}
