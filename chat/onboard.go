package chat

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/onnwee/chat-collector/store"
	"github.com/onnwee/chat-collector/telemetry"
)

// onboard resolves every configured channel name to its platform id, ensures
// a local channel row exists, and joins the feed; sequentially, in config
// order. Any failure aborts the whole startup: a misconfigured channel list
// must not result in partial silent operation.
func (c *Collector) onboard(ctx context.Context) error {
	// Fail fast on bad credentials; the token is cached for the process
	// lifetime and onboarding never re-acquires it per channel.
	if _, err := c.Helix.AppTokenSource.Get(ctx); err != nil {
		return fmt.Errorf("twitch app token: %w", err)
	}

	for _, name := range c.Channels {
		slog.Info("joining channel", slog.String("channel", name))

		info, err := c.Helix.GetChannelByLogin(ctx, name)
		if err != nil {
			return fmt.Errorf("resolve channel %q: %w", name, err)
		}
		if info == nil {
			return fmt.Errorf("channel %q does not exist on twitch", name)
		}

		if _, err := store.CreateChannelIfNotExists(ctx, c.DB, info.ID, name); err != nil {
			return fmt.Errorf("onboard channel %q: %w", name, err)
		}

		c.Feed.Join(name)
		telemetry.JoinedChannelsGauge.Inc()
	}
	return nil
}
