package store

import (
	"context"
	"fmt"
	"time"
)

// RecordParams carries everything needed to persist one classified event.
type RecordParams struct {
	Msg       string
	MsgType   MsgType
	ChannelID int32
	SendTime  time.Time
	// Bits is nil for events without a bits donation.
	Bits *int64
	// Resub, when set, is persisted first and referenced by the message.
	Resub *NewResub

	TwitchUserID string
	Username     string
}

// RecordMessage turns a classified event into committed rows: resolve or
// create the sending user, reconcile their username, persist the optional
// resub, and insert the message. It reports whether a rename was recorded
// along the way, so callers can count renames without reaching into the
// store.
//
// The steps are deliberately not wrapped in one transaction. If the message
// insert fails after the user was created or renamed, that identity work
// stands on its own and a retried event re-resolves the existing user:
// at-least-once, idempotent on identity.
func RecordMessage(ctx context.Context, db TxDBTX, p RecordParams) (renamed bool, err error) {
	user, err := GetUserByTwitchID(ctx, db, p.TwitchUserID)
	if err != nil {
		return false, err
	}
	if user == nil {
		if user, err = CreateUser(ctx, db, p.TwitchUserID, p.Username); err != nil {
			return false, err
		}
	}

	// Unconditional: a no-op for fresh users, a rename-log append otherwise.
	renamed, err = ReconcileUsername(ctx, db, user, p.Username, p.SendTime)
	if err != nil {
		return false, err
	}

	var resubID *int32
	if p.Resub != nil {
		resub, err := CreateResub(ctx, db, *p.Resub)
		if err != nil {
			return renamed, err
		}
		resubID = &resub.ID
	}

	if _, err := db.ExecContext(ctx,
		`INSERT INTO messages (msg, msg_type, user_id, channel_id, resub_id, send_time, bits)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.Msg, p.MsgType, user.ID, p.ChannelID, resubID, p.SendTime, p.Bits,
	); err != nil {
		return renamed, fmt.Errorf("insert message for user %s in channel %d: %w", p.TwitchUserID, p.ChannelID, err)
	}
	return renamed, nil
}
