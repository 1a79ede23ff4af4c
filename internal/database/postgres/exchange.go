package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/candystand/CandyBot_Go/internal/domain"
	"github.com/candystand/CandyBot_Go/internal/repository"
)

// ExchangeRepository implements the inventory exchange repository for PostgreSQL
type ExchangeRepository struct {
	db *pgxpool.Pool
}

// NewExchangeRepository creates a new ExchangeRepository
func NewExchangeRepository(db *pgxpool.Pool) *ExchangeRepository {
	return &ExchangeRepository{db: db}
}

// ExchangeTx implements repository.ExchangeTx
type ExchangeTx struct {
	tx pgx.Tx
}

// BeginTx starts a new transaction
func (r *ExchangeRepository) BeginTx(ctx context.Context) (repository.ExchangeTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	return &ExchangeTx{tx: tx}, nil
}

// Commit commits the transaction
func (t *ExchangeTx) Commit(ctx context.Context) error {
	return mapConflictError(t.tx.Commit(ctx))
}

// Rollback rolls back the transaction
func (t *ExchangeTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

// ListHoldings returns the member's spendable awards grouped by item
func (r *ExchangeRepository) ListHoldings(ctx context.Context, guildID, userID string, now time.Time) ([]domain.Holding, error) {
	query := `
		SELECT item_id, COUNT(*), MIN(expires_at)
		FROM awarded_items
		WHERE guild_id = $1 AND user_id = $2
		  AND consumed_at IS NULL AND expires_at > $3
		GROUP BY item_id
		ORDER BY item_id
	`

	rows, err := r.db.Query(ctx, query, guildID, userID, now)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryHoldings, err)
	}
	defer rows.Close()

	var holdings []domain.Holding
	for rows.Next() {
		var h domain.Holding
		if err := rows.Scan(&h.ItemID, &h.Count, &h.EarliestExpiry); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToScanHolding, err)
		}
		holdings = append(holdings, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return holdings, nil
}

// CountSpendableHoldings counts the member's spendable awards of the item.
// The candidate rows stay locked until the transaction ends.
func (t *ExchangeTx) CountSpendableHoldings(ctx context.Context, guildID, userID string, itemID int, now time.Time) (int, error) {
	query := `
		WITH locked AS (
			SELECT id FROM awarded_items
			WHERE guild_id = $1 AND user_id = $2 AND item_id = $3
			  AND consumed_at IS NULL AND expires_at > $4
			FOR UPDATE
		)
		SELECT COUNT(*) FROM locked
	`

	var count int
	if err := t.tx.QueryRow(ctx, query, guildID, userID, itemID, now).Scan(&count); err != nil {
		return 0, mapConflictError(fmt.Errorf("%s: %w", ErrMsgFailedToCountHoldings, err))
	}
	return count, nil
}

// ConsumeHoldings marks the n soonest-expiring spendable awards of the item
// as consumed and returns their ids in consumption order
func (t *ExchangeTx) ConsumeHoldings(ctx context.Context, guildID, userID string, itemID, n int, now time.Time) ([]uuid.UUID, error) {
	query := `
		WITH picked AS (
			SELECT id FROM awarded_items
			WHERE guild_id = $1 AND user_id = $2 AND item_id = $3
			  AND consumed_at IS NULL AND expires_at > $5
			ORDER BY expires_at, id
			LIMIT $4
			FOR UPDATE
		), updated AS (
			UPDATE awarded_items a
			SET consumed_at = $5
			FROM picked
			WHERE a.id = picked.id
			RETURNING a.id, a.expires_at
		)
		SELECT id FROM updated ORDER BY expires_at, id
	`

	rows, err := t.tx.Query(ctx, query, guildID, userID, itemID, n, now)
	if err != nil {
		return nil, mapConflictError(fmt.Errorf("%s: %w", ErrMsgFailedToConsumeAwards, err))
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToScanAward, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return ids, nil
}
