package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/candystand/CandyBot_Go/internal/domain"
)

// mapConflictError translates transient PostgreSQL failures into
// domain.ErrStorageConflict so the service layer can retry them.
// Other errors pass through unchanged.
func mapConflictError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case PgErrorCodeSerializationFailure, PgErrorCodeDeadlockDetected:
			return fmt.Errorf("%w: %s", domain.ErrStorageConflict, pgErr.Message)
		}
	}
	return err
}

// isUniqueViolation reports whether err is a unique constraint violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == PgErrorCodeUniqueViolation
}

func scanCandyUnits(rows pgx.Rows) ([]domain.CandyUnit, error) {
	var units []domain.CandyUnit
	for rows.Next() {
		var unit domain.CandyUnit
		err := rows.Scan(
			&unit.ID,
			&unit.GuildID,
			&unit.GiverID,
			&unit.ReceiverID,
			&unit.MessageID,
			&unit.Tier,
			&unit.BatchSeq,
			&unit.CreatedAt,
			&unit.ExpiresAt,
			&unit.ConsumedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToScanCandy, err)
		}
		units = append(units, unit)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return units, nil
}
