package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DBTX is the query surface shared by *sql.DB, *sql.Conn and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// TxDBTX additionally opens transactions; satisfied by *sql.DB and *sql.Conn.
type TxDBTX interface {
	DBTX
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

// MsgType classifies a recorded chat event. Stored as a varchar; the set is
// closed and anything else coming back from the database is a data error.
type MsgType string

const (
	// MsgTypeMessage is a normal chat message.
	MsgTypeMessage MsgType = "message"
	// MsgTypeAction is a /me message.
	MsgTypeAction MsgType = "action"
	// MsgTypeBits is a message carrying a bits donation.
	MsgTypeBits MsgType = "bits"
	// MsgTypeSub is a resub announcement message.
	MsgTypeSub MsgType = "sub"
)

// Valid reports whether t is one of the known message types.
func (t MsgType) Valid() bool {
	switch t {
	case MsgTypeMessage, MsgTypeAction, MsgTypeBits, MsgTypeSub:
		return true
	}
	return false
}

// Tier is the subscription tier of a resub, stored as a smallint.
type Tier int16

const (
	TierPrime Tier = 0
	TierOne   Tier = 1
	TierTwo   Tier = 2
	TierThree Tier = 3
)

// ParseTier maps the sub-plan string Twitch sends on a user notice to a Tier.
// Unrecognized values are an error, never defaulted: either the event is
// malformed or Twitch changed their API, and both deserve a loud log line.
func ParseTier(subPlan string) (Tier, error) {
	switch subPlan {
	case "Prime":
		return TierPrime, nil
	case "1000":
		return TierOne, nil
	case "2000":
		return TierTwo, nil
	case "3000":
		return TierThree, nil
	}
	return 0, fmt.Errorf("unrecognized sub plan %q", subPlan)
}

func (t Tier) String() string {
	switch t {
	case TierPrime:
		return "prime"
	case TierOne:
		return "tier1"
	case TierTwo:
		return "tier2"
	case TierThree:
		return "tier3"
	}
	return fmt.Sprintf("tier(%d)", int16(t))
}

// Channel is a joined Twitch channel. Created once during onboarding, never
// deleted. The uuid is the opaque identifier exposed to external consumers;
// twitch_channel_id is the platform's immutable id.
type Channel struct {
	ID              int32
	UUID            uuid.UUID
	TwitchChannelID string
	ChannelName     string
}

// User is an observed chat participant. twitch_user_id is the only stable
// identity key; the username field holds the latest observed name and may
// collide with other users' names.
type User struct {
	ID           int32
	UUID         uuid.UUID
	Username     string
	TwitchUserID string
}

// UserOldName is one entry in the append-only rename log: the name a user had
// before a change, and when the new name was first observed.
type UserOldName struct {
	ID                   int32
	UserID               int32
	Username             string
	FirstTimeWithNewName time.Time
}

// Resub is persisted subscription-renewal metadata referenced by exactly one
// message.
type Resub struct {
	ID              int32
	UUID            uuid.UUID
	CumulativeMonth int16
	Tier            Tier
}

// NewResub is the insertable form of Resub.
type NewResub struct {
	CumulativeMonth int16
	Tier            Tier
}

// Message is an immutable chat event row.
type Message struct {
	ID        int64
	UUID      uuid.UUID
	Msg       string
	MsgType   MsgType
	UserID    int32
	ChannelID int32
	ResubID   sql.NullInt32
	SendTime  time.Time
	Bits      sql.NullInt64
}
