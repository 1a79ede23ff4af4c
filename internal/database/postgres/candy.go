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

const candyColumns = "id, guild_id, giver_id, receiver_id, message_id, tier, batch_seq, created_at, expires_at, consumed_at"

// CandyRepository implements the candy ledger repository for PostgreSQL
type CandyRepository struct {
	db *pgxpool.Pool
}

// NewCandyRepository creates a new CandyRepository
func NewCandyRepository(db *pgxpool.Pool) *CandyRepository {
	return &CandyRepository{db: db}
}

// CandyTx implements repository.CandyTx
type CandyTx struct {
	tx pgx.Tx
}

// BeginTx starts a new transaction
func (r *CandyRepository) BeginTx(ctx context.Context) (repository.CandyTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	return &CandyTx{tx: tx}, nil
}

// Commit commits the transaction
func (t *CandyTx) Commit(ctx context.Context) error {
	return mapConflictError(t.tx.Commit(ctx))
}

// Rollback rolls back the transaction
func (t *CandyTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

// SpendableBalance counts unconsumed, unexpired units held by a member
func (r *CandyRepository) SpendableBalance(ctx context.Context, guildID, userID string, now time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM candy_units
		WHERE guild_id = $1 AND receiver_id = $2
		  AND consumed_at IS NULL AND expires_at > $3
	`

	var count int
	if err := r.db.QueryRow(ctx, query, guildID, userID, now).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToCountBalance, err)
	}
	return count, nil
}

// EarliestExpiry returns the soonest expiry among the member's spendable
// units, or nil when there are none
func (r *CandyRepository) EarliestExpiry(ctx context.Context, guildID, userID string, now time.Time) (*time.Time, error) {
	query := `
		SELECT MIN(expires_at)
		FROM candy_units
		WHERE guild_id = $1 AND receiver_id = $2
		  AND consumed_at IS NULL AND expires_at > $3
	`

	var expiry *time.Time
	if err := r.db.QueryRow(ctx, query, guildID, userID, now).Scan(&expiry); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetEarliestExpiry, err)
	}
	return expiry, nil
}

// GetCandyByIDs fetches units by id, returned in the order of ids
func (r *CandyRepository) GetCandyByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.CandyUnit, error) {
	if len(ids) == 0 {
		return []domain.CandyUnit{}, nil
	}

	query := fmt.Sprintf(`SELECT %s FROM candy_units WHERE id = ANY($1)`, candyColumns)

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetCandyByIDs, err)
	}
	defer rows.Close()

	units, err := scanCandyUnits(rows)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]domain.CandyUnit, len(units))
	for _, unit := range units {
		byID[unit.ID] = unit
	}
	ordered := make([]domain.CandyUnit, 0, len(units))
	for _, id := range ids {
		if unit, ok := byID[id]; ok {
			ordered = append(ordered, unit)
		}
	}
	return ordered, nil
}

// LockGiver takes a transaction-scoped advisory lock on the (guild, giver)
// pair. Released automatically at commit or rollback.
func (t *CandyTx) LockGiver(ctx context.Context, guildID, giverID string) error {
	query := `SELECT pg_advisory_xact_lock(hashtext($1), hashtext($2))`

	if _, err := t.tx.Exec(ctx, query, guildID, giverID); err != nil {
		return mapConflictError(fmt.Errorf("%s: %w", ErrMsgFailedToLockGiver, err))
	}
	return nil
}

// GrantExists reports whether a grant with the same origin already landed
func (t *CandyTx) GrantExists(ctx context.Context, guildID, giverID, messageID string, tier domain.CandyTier) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM candy_units
			WHERE guild_id = $1 AND giver_id = $2 AND message_id = $3 AND tier = $4
		)
	`

	var exists bool
	if err := t.tx.QueryRow(ctx, query, guildID, giverID, messageID, tier).Scan(&exists); err != nil {
		return false, mapConflictError(fmt.Errorf("%s: %w", ErrMsgFailedToCheckGrantExists, err))
	}
	return exists, nil
}

// CountGrantsSince counts distinct grants of the tier by the giver at or
// after the window start. A super grant spans several rows but counts once.
func (t *CandyTx) CountGrantsSince(ctx context.Context, guildID, giverID string, tier domain.CandyTier, since time.Time) (int, error) {
	query := `
		SELECT COUNT(DISTINCT message_id)
		FROM candy_units
		WHERE guild_id = $1 AND giver_id = $2 AND tier = $3 AND created_at >= $4
	`

	var count int
	if err := t.tx.QueryRow(ctx, query, guildID, giverID, tier, since).Scan(&count); err != nil {
		return 0, mapConflictError(fmt.Errorf("%s: %w", ErrMsgFailedToCountGrants, err))
	}
	return count, nil
}

// InsertCandy persists the units of one grant
func (t *CandyTx) InsertCandy(ctx context.Context, units []domain.CandyUnit) error {
	query := `
		INSERT INTO candy_units (id, guild_id, giver_id, receiver_id, message_id, tier, batch_seq, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	for _, unit := range units {
		_, err := t.tx.Exec(ctx, query,
			unit.ID,
			unit.GuildID,
			unit.GiverID,
			unit.ReceiverID,
			unit.MessageID,
			unit.Tier,
			unit.BatchSeq,
			unit.CreatedAt,
			unit.ExpiresAt,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrDuplicateGrant
			}
			return mapConflictError(fmt.Errorf("%s: %w", ErrMsgFailedToInsertCandy, err))
		}
	}
	return nil
}

// ConsumeCandy marks the member's n soonest-expiring spendable units as
// consumed and returns them in consumption order
func (t *CandyTx) ConsumeCandy(ctx context.Context, guildID, userID string, n int, now time.Time) ([]domain.CandyUnit, error) {
	return consumeCandy(ctx, t.tx, guildID, userID, n, now)
}

// consumeCandy is the single query that sets consumed_at on candy units.
// CandyTx and GachaTx both delegate here so the FIFO order and the
// insufficient-balance check cannot drift between them.
func consumeCandy(ctx context.Context, tx pgx.Tx, guildID, userID string, n int, now time.Time) ([]domain.CandyUnit, error) {
	// The picked CTE locks the candidate rows so a concurrent consume for
	// the same member blocks instead of double-spending.
	query := fmt.Sprintf(`
		WITH picked AS (
			SELECT id FROM candy_units
			WHERE guild_id = $1 AND receiver_id = $2
			  AND consumed_at IS NULL AND expires_at > $4
			ORDER BY expires_at, id
			LIMIT $3
			FOR UPDATE
		), updated AS (
			UPDATE candy_units c
			SET consumed_at = $4
			FROM picked
			WHERE c.id = picked.id
			RETURNING c.*
		)
		SELECT %s FROM updated ORDER BY expires_at, id
	`, candyColumns)

	rows, err := tx.Query(ctx, query, guildID, userID, n, now)
	if err != nil {
		return nil, mapConflictError(fmt.Errorf("%s: %w", ErrMsgFailedToConsumeCandy, err))
	}
	defer rows.Close()

	units, err := scanCandyUnits(rows)
	if err != nil {
		return nil, err
	}
	if len(units) < n {
		// The caller rolls back, so the partial update never lands.
		return nil, domain.ErrInsufficientBalance
	}
	return units, nil
}
