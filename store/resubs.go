package store

import (
	"context"
	"fmt"
)

// CreateResub inserts subscription-renewal metadata and returns the stored
// row. The caller ties the returned id to exactly one message; resub rows are
// never reused.
func CreateResub(ctx context.Context, q DBTX, nr NewResub) (*Resub, error) {
	var r Resub
	err := q.QueryRowContext(ctx,
		`INSERT INTO resubs (cumulative_month, tier) VALUES ($1, $2)
		 RETURNING id, uuid, cumulative_month, tier`,
		nr.CumulativeMonth, nr.Tier,
	).Scan(&r.ID, &r.UUID, &r.CumulativeMonth, &r.Tier)
	if err != nil {
		return nil, fmt.Errorf("create resub (%s, %d months): %w", nr.Tier, nr.CumulativeMonth, err)
	}
	return &r, nil
}
