package domain

import (
	"time"

	"github.com/google/uuid"
)

// CandyTier distinguishes the two grant categories. The tier decides the
// batch size and which rate-limit window applies to the giver.
type CandyTier string

const (
	CandyTierNormal CandyTier = "normal"
	CandyTierSuper  CandyTier = "super"
)

// Valid reports whether the tier is one of the known values.
func (t CandyTier) Valid() bool {
	return t == CandyTierNormal || t == CandyTierSuper
}

// CandyUnit is one grantable token of the community currency. Units are
// soft-consumed: ConsumedAt is set exactly once and the row is never deleted.
type CandyUnit struct {
	ID         uuid.UUID  `json:"id"`
	GuildID    string     `json:"guild_id"`
	GiverID    string     `json:"giver_id"`
	ReceiverID string     `json:"receiver_id"`
	MessageID  string     `json:"message_id"` // origin message, dedupe key
	Tier       CandyTier  `json:"tier"`
	BatchSeq   int        `json:"batch_seq"` // position within a super batch, 0 for normal
	CreatedAt  time.Time  `json:"created_at"`
	ExpiresAt  time.Time  `json:"expires_at"`
	ConsumedAt *time.Time `json:"consumed_at,omitempty"`
}

// Spendable reports whether the unit can still be consumed at the given time.
func (c *CandyUnit) Spendable(now time.Time) bool {
	return c.ConsumedAt == nil && now.Before(c.ExpiresAt)
}
