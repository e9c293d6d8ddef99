package chat

import (
	"context"
	"log/slog"

	twitch "github.com/gempir/go-twitch-irc/v4"
)

// Feed is the capability interface over the chat transport: an ordered event
// source plus a join operation. The IRC implementation is used in production;
// tests script events through an in-memory feed.
type Feed interface {
	// Join subscribes the feed to a channel's events. Safe to call before
	// Listen; joins are replayed on connect.
	Join(channel string)
	// Events yields parsed events in delivery order. The channel is closed
	// when the feed terminates.
	Events() <-chan twitch.Message
	// Listen connects and blocks until the feed terminates or ctx is
	// cancelled. A feed never reconnects; returning means the stream is over.
	Listen(ctx context.Context) error
}

// IRCFeed adapts a go-twitch-irc client to the Feed interface. The client is
// anonymous: reading chat requires no authentication, only Helix lookups do.
type IRCFeed struct {
	client *twitch.Client
	events chan twitch.Message
}

// NewIRCFeed creates a feed delivering private messages and user notices for
// joined channels.
func NewIRCFeed() *IRCFeed {
	f := &IRCFeed{
		client: twitch.NewAnonymousClient(),
		events: make(chan twitch.Message, 64),
	}
	f.client.OnPrivateMessage(func(m twitch.PrivateMessage) {
		f.events <- &m
	})
	f.client.OnUserNoticeMessage(func(m twitch.UserNoticeMessage) {
		f.events <- &m
	})
	return f
}

func (f *IRCFeed) Join(channel string) {
	f.client.Join(channel)
}

func (f *IRCFeed) Events() <-chan twitch.Message {
	return f.events
}

func (f *IRCFeed) Listen(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			if err := f.client.Disconnect(); err != nil {
				slog.Warn("twitch irc disconnect error", slog.Any("err", err))
			}
		case <-done:
		}
	}()
	err := f.client.Connect()
	close(done)
	close(f.events)
	return err
}
