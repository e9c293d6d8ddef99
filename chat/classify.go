package chat

import (
	"fmt"
	"strconv"
	"time"

	twitch "github.com/gempir/go-twitch-irc/v4"

	"github.com/onnwee/chat-collector/store"
)

// Event is a classified chat event, carrying everything the recorder needs.
type Event struct {
	Kind store.MsgType
	Msg  string

	TwitchChannelID string
	TwitchUserID    string
	Username        string

	// SentAt is the upstream server timestamp, not the local clock.
	SentAt time.Time

	// Bits is set only for Kind == MsgTypeBits.
	Bits *int64
	// Resub is set only for Kind == MsgTypeSub.
	Resub *store.NewResub
}

// classify maps a raw feed event to an Event. A (nil, nil) return means the
// event is outside the recorded categories and is silently ignored: fresh
// subs, resubs without a user message, and every non-PRIVMSG/USERNOTICE
// message type. Errors are reserved for malformed payloads (unrecognized sub
// plan, garbled month count); the caller logs and drops those.
func classify(msg twitch.Message) (*Event, error) {
	switch m := msg.(type) {
	case *twitch.PrivateMessage:
		return classifyPrivate(m), nil
	case *twitch.UserNoticeMessage:
		return classifyUserNotice(m)
	}
	return nil, nil
}

func classifyPrivate(m *twitch.PrivateMessage) *Event {
	ev := &Event{
		Kind:            store.MsgTypeMessage,
		Msg:             m.Message,
		TwitchChannelID: m.RoomID,
		TwitchUserID:    m.User.ID,
		Username:        m.User.Name,
		SentAt:          m.Time,
	}
	// Bits beat the action marker when both are present.
	switch {
	case m.Bits > 0:
		ev.Kind = store.MsgTypeBits
		bits := int64(m.Bits)
		ev.Bits = &bits
	case m.Action:
		ev.Kind = store.MsgTypeAction
	}
	return ev
}

func classifyUserNotice(m *twitch.UserNoticeMessage) (*Event, error) {
	// Only renewals are recorded. A first-time sub ("sub") carries no
	// cumulative history and is ignored, as are raids, gifts and the rest of
	// the user-notice family.
	if m.MsgID != "resub" {
		return nil, nil
	}
	// Resubs without an attached user message are ignored too.
	if m.Message == "" {
		return nil, nil
	}

	tier, err := store.ParseTier(m.MsgParams["msg-param-sub-plan"])
	if err != nil {
		return nil, fmt.Errorf("resub from %s: %w", m.User.Name, err)
	}
	months, err := strconv.ParseInt(m.MsgParams["msg-param-cumulative-months"], 10, 16)
	if err != nil || months < 0 {
		return nil, fmt.Errorf("resub from %s: bad cumulative months %q", m.User.Name, m.MsgParams["msg-param-cumulative-months"])
	}

	return &Event{
		Kind:            store.MsgTypeSub,
		Msg:             m.Message,
		TwitchChannelID: m.RoomID,
		TwitchUserID:    m.User.ID,
		Username:        m.User.Name,
		SentAt:          m.Time,
		Resub: &store.NewResub{
			CumulativeMonth: int16(months),
			Tier:            tier,
		},
	}, nil
}
