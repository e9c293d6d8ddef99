package chat

import (
	"testing"
	"time"

	twitch "github.com/gempir/go-twitch-irc/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onnwee/chat-collector/store"
)

func privMsg(mutate func(*twitch.PrivateMessage)) *twitch.PrivateMessage {
	m := &twitch.PrivateMessage{
		User:    twitch.User{ID: "100", Name: "alice"},
		Message: "hello",
		RoomID:  "200",
		Time:    time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	if mutate != nil {
		mutate(m)
	}
	return m
}

func resubNotice(mutate func(*twitch.UserNoticeMessage)) *twitch.UserNoticeMessage {
	m := &twitch.UserNoticeMessage{
		User:    twitch.User{ID: "100", Name: "alice"},
		Message: "thanks!",
		RoomID:  "200",
		Time:    time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		MsgID:   "resub",
		MsgParams: map[string]string{
			"msg-param-sub-plan":          "2000",
			"msg-param-cumulative-months": "5",
		},
	}
	if mutate != nil {
		mutate(m)
	}
	return m
}

func TestClassifyPrivateMessage(t *testing.T) {
	tests := []struct {
		name     string
		msg      *twitch.PrivateMessage
		wantKind store.MsgType
		wantBits *int64
	}{
		{
			name:     "plain message",
			msg:      privMsg(nil),
			wantKind: store.MsgTypeMessage,
		},
		{
			name:     "action message",
			msg:      privMsg(func(m *twitch.PrivateMessage) { m.Action = true }),
			wantKind: store.MsgTypeAction,
		},
		{
			name:     "bits message",
			msg:      privMsg(func(m *twitch.PrivateMessage) { m.Bits = 100 }),
			wantKind: store.MsgTypeBits,
			wantBits: int64Ptr(100),
		},
		{
			name: "bits beat action marker",
			msg: privMsg(func(m *twitch.PrivateMessage) {
				m.Bits = 50
				m.Action = true
			}),
			wantKind: store.MsgTypeBits,
			wantBits: int64Ptr(50),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, err := classify(tt.msg)
			require.NoError(t, err)
			require.NotNil(t, ev)
			assert.Equal(t, tt.wantKind, ev.Kind)
			assert.Equal(t, tt.msg.Message, ev.Msg)
			assert.Equal(t, tt.msg.RoomID, ev.TwitchChannelID)
			assert.Equal(t, tt.msg.User.ID, ev.TwitchUserID)
			assert.Equal(t, tt.msg.User.Name, ev.Username)
			assert.True(t, ev.SentAt.Equal(tt.msg.Time))
			assert.Nil(t, ev.Resub)
			if tt.wantBits == nil {
				assert.Nil(t, ev.Bits)
			} else {
				require.NotNil(t, ev.Bits)
				assert.Equal(t, *tt.wantBits, *ev.Bits)
			}
		})
	}
}

func TestClassifyUserNotice(t *testing.T) {
	t.Run("resub", func(t *testing.T) {
		ev, err := classify(resubNotice(nil))
		require.NoError(t, err)
		require.NotNil(t, ev)
		assert.Equal(t, store.MsgTypeSub, ev.Kind)
		assert.Equal(t, "thanks!", ev.Msg)
		require.NotNil(t, ev.Resub)
		assert.Equal(t, store.TierTwo, ev.Resub.Tier)
		assert.Equal(t, int16(5), ev.Resub.CumulativeMonth)
	})

	t.Run("prime resub", func(t *testing.T) {
		ev, err := classify(resubNotice(func(m *twitch.UserNoticeMessage) {
			m.MsgParams["msg-param-sub-plan"] = "Prime"
		}))
		require.NoError(t, err)
		require.NotNil(t, ev)
		assert.Equal(t, store.TierPrime, ev.Resub.Tier)
	})

	t.Run("fresh sub is ignored", func(t *testing.T) {
		ev, err := classify(resubNotice(func(m *twitch.UserNoticeMessage) { m.MsgID = "sub" }))
		require.NoError(t, err)
		assert.Nil(t, ev)
	})

	t.Run("other notice kinds are ignored", func(t *testing.T) {
		for _, msgID := range []string{"raid", "subgift", "announcement", "ritual"} {
			ev, err := classify(resubNotice(func(m *twitch.UserNoticeMessage) { m.MsgID = msgID }))
			require.NoError(t, err)
			assert.Nil(t, ev, "msg-id %s", msgID)
		}
	})

	t.Run("resub without user message is ignored", func(t *testing.T) {
		ev, err := classify(resubNotice(func(m *twitch.UserNoticeMessage) { m.Message = "" }))
		require.NoError(t, err)
		assert.Nil(t, ev)
	})

	t.Run("unrecognized sub plan is an error", func(t *testing.T) {
		ev, err := classify(resubNotice(func(m *twitch.UserNoticeMessage) {
			m.MsgParams["msg-param-sub-plan"] = "4000"
		}))
		require.Error(t, err)
		assert.Nil(t, ev)
		assert.Contains(t, err.Error(), "4000")
	})

	t.Run("garbled cumulative months is an error", func(t *testing.T) {
		ev, err := classify(resubNotice(func(m *twitch.UserNoticeMessage) {
			m.MsgParams["msg-param-cumulative-months"] = "many"
		}))
		require.Error(t, err)
		assert.Nil(t, ev)
	})
}

func TestClassifyOtherMessageTypes(t *testing.T) {
	ev, err := classify(&twitch.WhisperMessage{Message: "psst"})
	require.NoError(t, err)
	assert.Nil(t, ev)

	ev, err = classify(&twitch.ClearChatMessage{})
	require.NoError(t, err)
	assert.Nil(t, ev)
}

func int64Ptr(v int64) *int64 { return &v }
