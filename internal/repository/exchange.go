package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/candystand/CandyBot_Go/internal/domain"
)

// Exchange defines the interface for awarded item persistence on the
// exchange side. Only the exchange sets consumed_at on awards.
type Exchange interface {
	BeginTx(ctx context.Context) (ExchangeTx, error)

	// ListHoldings returns the grouped spendable holdings of a member,
	// one entry per item with count >= 1, ordered by item id.
	ListHoldings(ctx context.Context, guildID, userID string, now time.Time) ([]domain.Holding, error)
}

// ExchangeTx defines the transactional operations behind an exchange. The
// count and the consume share one transaction so two concurrent exchanges
// cannot spend the same holding twice.
type ExchangeTx interface {
	Tx

	// CountSpendableHoldings counts the member's spendable awards of the item,
	// locking them for the rest of the transaction.
	CountSpendableHoldings(ctx context.Context, guildID, userID string, itemID int, now time.Time) (int, error)

	// ConsumeHoldings marks the n oldest-by-expiry spendable awards of the
	// item as consumed at now and returns their ids in consumption order.
	ConsumeHoldings(ctx context.Context, guildID, userID string, itemID, n int, now time.Time) ([]uuid.UUID, error)
}
