package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/candystand/CandyBot_Go/internal/domain"
)

// Candy defines the interface for candy ledger persistence.
// The ledger is the only component that sets consumed_at on candy units;
// every mutation of that column goes through a CandyTx or GachaTx, and both
// are backed by the same consume query.
type Candy interface {
	BeginTx(ctx context.Context) (CandyTx, error)

	// SpendableBalance counts units with consumed_at null and expires_at > now.
	SpendableBalance(ctx context.Context, guildID, userID string, now time.Time) (int, error)

	// EarliestExpiry returns the soonest expiry among spendable units, or nil
	// when the member holds none.
	EarliestExpiry(ctx context.Context, guildID, userID string, now time.Time) (*time.Time, error)

	// GetCandyByIDs fetches units by id, in the given order.
	GetCandyByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.CandyUnit, error)
}

// CandyTx defines the transactional operations behind a grant. The duplicate
// check, the cap count and the insert must share one transaction so a
// concurrently re-delivered platform event cannot double-grant.
type CandyTx interface {
	Tx

	// LockGiver serializes grants per (guild, giver) for the rest of the
	// transaction. The cap count below is a plain read; without this lock two
	// concurrent grants for different messages both pass the count and the
	// giver lands over the cap.
	LockGiver(ctx context.Context, guildID, giverID string) error

	// GrantExists reports whether any unit already exists for the
	// (guild, giver, origin message, tier) key.
	GrantExists(ctx context.Context, guildID, giverID, messageID string, tier domain.CandyTier) (bool, error)

	// CountGrantsSince counts units of the tier the giver created at or after
	// the window start.
	CountGrantsSince(ctx context.Context, guildID, giverID string, tier domain.CandyTier, since time.Time) (int, error)

	// InsertCandy persists the units of one grant.
	InsertCandy(ctx context.Context, units []domain.CandyUnit) error

	// ConsumeCandy marks the n cheapest-to-lose spendable units
	// (FIFO by expires_at, then id) as consumed at now, locking the candidate
	// rows. Returns domain.ErrInsufficientBalance without side effects when
	// fewer than n are spendable.
	ConsumeCandy(ctx context.Context, guildID, userID string, n int, now time.Time) ([]domain.CandyUnit, error)
}
