package repository

import (
	"context"
	"time"

	"github.com/candystand/CandyBot_Go/internal/domain"
)

// Gacha defines the interface for draw engine persistence. A draw consumes
// candy and creates awards in one transaction; GachaTx therefore embeds the
// ledger's transactional consume.
type Gacha interface {
	BeginTx(ctx context.Context) (GachaTx, error)
}

// GachaTx defines the transactional operations behind a draw.
type GachaTx interface {
	Tx

	// ConsumeCandy is the ledger's consume, shared so the consume and the
	// award insert commit or roll back together.
	ConsumeCandy(ctx context.Context, guildID, userID string, n int, now time.Time) ([]domain.CandyUnit, error)

	// CountDrawsSinceLastJackpot counts the member's non-jackpot awards
	// created after their most recent jackpot award (or ever, if none).
	CountDrawsSinceLastJackpot(ctx context.Context, guildID, userID string) (int, error)

	// HasJackpotBetween reports whether the member holds a jackpot award
	// created in [from, to).
	HasJackpotBetween(ctx context.Context, guildID, userID string, from, to time.Time) (bool, error)

	// InsertAwards persists the awards of one draw call.
	InsertAwards(ctx context.Context, awards []domain.AwardedItem) error
}
