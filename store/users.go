package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// GetUserByTwitchID looks up a user by their platform id. Returns (nil, nil)
// when the user has never been observed.
func GetUserByTwitchID(ctx context.Context, q DBTX, twitchUserID string) (*User, error) {
	var u User
	err := q.QueryRowContext(ctx,
		`SELECT id, uuid, username, twitch_user_id FROM users WHERE twitch_user_id = $1`,
		twitchUserID,
	).Scan(&u.ID, &u.UUID, &u.Username, &u.TwitchUserID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user %s: %w", twitchUserID, err)
	}
	return &u, nil
}

// CreateUser inserts a user first observed under the given username.
func CreateUser(ctx context.Context, q DBTX, twitchUserID, username string) (*User, error) {
	var u User
	err := q.QueryRowContext(ctx,
		`INSERT INTO users (username, twitch_user_id) VALUES ($1, $2)
		 RETURNING id, uuid, username, twitch_user_id`,
		username, twitchUserID,
	).Scan(&u.ID, &u.UUID, &u.Username, &u.TwitchUserID)
	if err != nil {
		return nil, fmt.Errorf("create user %s (%s): %w", username, twitchUserID, err)
	}
	return &u, nil
}

// ReconcileUsername records a username change and reports whether one
// happened. When the observed name matches the stored one this is a no-op.
// Otherwise the old name is appended to the rename log and the user's current
// username is updated, in one transaction: a reader must never see the rename
// record without the updated username or vice versa. The in-memory user is
// updated on success.
func ReconcileUsername(ctx context.Context, db TxDBTX, user *User, observedUsername string, observedAt time.Time) (bool, error) {
	if user.Username == observedUsername {
		return false, nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin rename tx for user %d: %w", user.ID, err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO users_old_names (user_id, username, first_time_with_new_name) VALUES ($1, $2, $3)`,
		user.ID, user.Username, observedAt,
	); err != nil {
		return false, fmt.Errorf("append old name %q for user %d: %w", user.Username, user.ID, err)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE users SET username = $1 WHERE id = $2`,
		observedUsername, user.ID,
	); err != nil {
		return false, fmt.Errorf("update username for user %d: %w", user.ID, err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit rename for user %d: %w", user.ID, err)
	}

	user.Username = observedUsername
	return true, nil
}

// ListOldNames returns the rename log for a user, oldest change first.
func ListOldNames(ctx context.Context, q DBTX, userID int32) ([]UserOldName, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT id, user_id, username, first_time_with_new_name
		 FROM users_old_names WHERE user_id = $1 ORDER BY id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list old names for user %d: %w", userID, err)
	}
	defer rows.Close() //nolint:errcheck

	var out []UserOldName
	for rows.Next() {
		var n UserOldName
		if err := rows.Scan(&n.ID, &n.UserID, &n.Username, &n.FirstTimeWithNewName); err != nil {
			return nil, fmt.Errorf("scan old name: %w", err)
		}
		out = append(out, n)
	}
	return out, rows.Err()
}
