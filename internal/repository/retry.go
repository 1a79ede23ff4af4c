package repository

import (
	"context"
	"errors"

	"github.com/candystand/CandyBot_Go/internal/domain"
	"github.com/candystand/CandyBot_Go/internal/logger"
)

// ConflictRetryAttempts bounds how often a transient storage conflict
// (serialization failure, deadlock) is retried before it is surfaced.
const ConflictRetryAttempts = 3

// WithConflictRetry runs fn, retrying when it fails with
// domain.ErrStorageConflict. Business-rule results are never retried; fn must
// be safe to re-run from scratch (each attempt opens its own transaction).
func WithConflictRetry(ctx context.Context, fn func(ctx context.Context) error) error {
	var err error
	for attempt := 1; attempt <= ConflictRetryAttempts; attempt++ {
		err = fn(ctx)
		if err == nil || !errors.Is(err, domain.ErrStorageConflict) {
			return err
		}
		logger.FromContext(ctx).Warn("Retrying after storage conflict", "attempt", attempt, "error", err)
	}
	return err
}
