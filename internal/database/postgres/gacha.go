package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/candystand/CandyBot_Go/internal/domain"
	"github.com/candystand/CandyBot_Go/internal/repository"
)

// GachaRepository implements the draw engine repository for PostgreSQL
type GachaRepository struct {
	db *pgxpool.Pool
}

// NewGachaRepository creates a new GachaRepository
func NewGachaRepository(db *pgxpool.Pool) *GachaRepository {
	return &GachaRepository{db: db}
}

// GachaTx implements repository.GachaTx
type GachaTx struct {
	tx pgx.Tx
}

// BeginTx starts a new transaction
func (r *GachaRepository) BeginTx(ctx context.Context) (repository.GachaTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	return &GachaTx{tx: tx}, nil
}

// Commit commits the transaction
func (t *GachaTx) Commit(ctx context.Context) error {
	return mapConflictError(t.tx.Commit(ctx))
}

// Rollback rolls back the transaction
func (t *GachaTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

// ConsumeCandy marks the member's n soonest-expiring spendable units as
// consumed, in the same transaction that inserts the awards
func (t *GachaTx) ConsumeCandy(ctx context.Context, guildID, userID string, n int, now time.Time) ([]domain.CandyUnit, error) {
	return consumeCandy(ctx, t.tx, guildID, userID, n, now)
}

// CountDrawsSinceLastJackpot counts the member's non-jackpot awards created
// after their most recent jackpot, or all of them if they never hit one
func (t *GachaTx) CountDrawsSinceLastJackpot(ctx context.Context, guildID, userID string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM awarded_items a
		JOIN items i ON i.id = a.item_id
		WHERE a.guild_id = $1 AND a.user_id = $2 AND i.tier <> 'jackpot'
		  AND a.created_at > COALESCE((
			SELECT MAX(a2.created_at)
			FROM awarded_items a2
			JOIN items i2 ON i2.id = a2.item_id
			WHERE a2.guild_id = $1 AND a2.user_id = $2 AND i2.tier = 'jackpot'
		  ), '-infinity'::timestamptz)
	`

	var count int
	if err := t.tx.QueryRow(ctx, query, guildID, userID).Scan(&count); err != nil {
		return 0, mapConflictError(fmt.Errorf("%s: %w", ErrMsgFailedToCountDraws, err))
	}
	return count, nil
}

// HasJackpotBetween reports whether the member won a jackpot in [from, to)
func (t *GachaTx) HasJackpotBetween(ctx context.Context, guildID, userID string, from, to time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM awarded_items a
			JOIN items i ON i.id = a.item_id
			WHERE a.guild_id = $1 AND a.user_id = $2 AND i.tier = 'jackpot'
			  AND a.created_at >= $3 AND a.created_at < $4
		)
	`

	var exists bool
	if err := t.tx.QueryRow(ctx, query, guildID, userID, from, to).Scan(&exists); err != nil {
		return false, mapConflictError(fmt.Errorf("%s: %w", ErrMsgFailedToCheckJackpot, err))
	}
	return exists, nil
}

// InsertAwards persists the awards of one draw call
func (t *GachaTx) InsertAwards(ctx context.Context, awards []domain.AwardedItem) error {
	query := `
		INSERT INTO awarded_items (id, guild_id, user_id, item_id, source_candy_id, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	for _, award := range awards {
		_, err := t.tx.Exec(ctx, query,
			award.ID,
			award.GuildID,
			award.UserID,
			award.ItemID,
			award.SourceCandyID,
			award.CreatedAt,
			award.ExpiresAt,
		)
		if err != nil {
			return mapConflictError(fmt.Errorf("%s: %w", ErrMsgFailedToInsertAward, err))
		}
	}
	return nil
}
