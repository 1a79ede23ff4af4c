package domain

import (
	"time"

	"github.com/google/uuid"
)

// AwardedItem is one item instance owned by a member, created by a draw.
// SourceCandyID references the CandyUnit consumed in the same transaction.
// Like candy, awards are soft-consumed on exchange and never deleted.
type AwardedItem struct {
	ID            uuid.UUID  `json:"id"`
	GuildID       string     `json:"guild_id"`
	UserID        string     `json:"user_id"`
	ItemID        int        `json:"item_id"`
	SourceCandyID uuid.UUID  `json:"source_candy_id"`
	CreatedAt     time.Time  `json:"created_at"`
	ExpiresAt     time.Time  `json:"expires_at"`
	ConsumedAt    *time.Time `json:"consumed_at,omitempty"`
}

// Spendable reports whether the award can still be exchanged at the given time.
func (a *AwardedItem) Spendable(now time.Time) bool {
	return a.ConsumedAt == nil && now.Before(a.ExpiresAt)
}

// Holding is the grouped inventory view: one row per item with at least one
// spendable award.
type Holding struct {
	ItemID         int       `json:"item_id"`
	Count          int       `json:"count"`
	EarliestExpiry time.Time `json:"earliest_expiry"`
}
