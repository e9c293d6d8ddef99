package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// GetChannelByTwitchID looks up a channel by its platform id. Returns
// (nil, nil) when no such channel exists locally.
func GetChannelByTwitchID(ctx context.Context, q DBTX, twitchChannelID string) (*Channel, error) {
	var ch Channel
	err := q.QueryRowContext(ctx,
		`SELECT id, uuid, twitch_channel_id, channel_name FROM channels WHERE twitch_channel_id = $1`,
		twitchChannelID,
	).Scan(&ch.ID, &ch.UUID, &ch.TwitchChannelID, &ch.ChannelName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get channel %s: %w", twitchChannelID, err)
	}
	return &ch, nil
}

// CreateChannelIfNotExists returns the existing channel for the given platform
// id or creates it. Lookup-then-insert, not an atomic upsert: onboarding runs
// serially at startup, so the race window doesn't matter.
func CreateChannelIfNotExists(ctx context.Context, q DBTX, twitchChannelID, channelName string) (*Channel, error) {
	ch, err := GetChannelByTwitchID(ctx, q, twitchChannelID)
	if err != nil {
		return nil, err
	}
	if ch != nil {
		return ch, nil
	}
	return createChannel(ctx, q, twitchChannelID, channelName)
}

func createChannel(ctx context.Context, q DBTX, twitchChannelID, channelName string) (*Channel, error) {
	var ch Channel
	err := q.QueryRowContext(ctx,
		`INSERT INTO channels (twitch_channel_id, channel_name) VALUES ($1, $2)
		 RETURNING id, uuid, twitch_channel_id, channel_name`,
		twitchChannelID, channelName,
	).Scan(&ch.ID, &ch.UUID, &ch.TwitchChannelID, &ch.ChannelName)
	if err != nil {
		return nil, fmt.Errorf("create channel %s: %w", channelName, err)
	}
	return &ch, nil
}
