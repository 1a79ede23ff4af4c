package exchange

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/candystand/CandyBot_Go/internal/catalog"
	"github.com/candystand/CandyBot_Go/internal/clock"
	"github.com/candystand/CandyBot_Go/internal/domain"
	"github.com/candystand/CandyBot_Go/internal/event"
	"github.com/candystand/CandyBot_Go/internal/logger"
	"github.com/candystand/CandyBot_Go/internal/repository"
)

// Service defines the interface for exchange operations
type Service interface {
	// Exchange consumes amount spendable holdings of the item, oldest expiry
	// first, and returns the consumed award ids. An id outside the catalog
	// fails with domain.ErrItemNotFound; a missing or undersized holding of
	// a cataloged item fails with domain.ErrInsufficientHolding.
	Exchange(ctx context.Context, guildID, userID string, itemID, amount int) ([]uuid.UUID, error)

	// ListHoldings returns the member's grouped spendable holdings. Items
	// with zero spendable awards are omitted.
	ListHoldings(ctx context.Context, guildID, userID string) ([]domain.Holding, error)
}

type service struct {
	repo     repository.Exchange
	cat      *catalog.Catalog
	clk      clock.Clock
	eventBus event.Bus
}

// NewService creates a new exchange service
func NewService(repo repository.Exchange, cat *catalog.Catalog, clk clock.Clock, eventBus event.Bus) Service {
	return &service{
		repo:     repo,
		cat:      cat,
		clk:      clk,
		eventBus: eventBus,
	}
}

func (s *service) Exchange(ctx context.Context, guildID, userID string, itemID, amount int) ([]uuid.UUID, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgExchangeCalled, "guild_id", guildID, "user_id", userID, "item_id", itemID, "amount", amount)

	if amount <= 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrDetailAmountNotPositive)
	}

	if _, ok := s.cat.ItemByID(itemID); !ok {
		return nil, domain.ErrItemNotFound
	}

	var consumed []uuid.UUID
	err := repository.WithConflictRetry(ctx, func(ctx context.Context) error {
		var err error
		consumed, err = s.executeExchangeTx(ctx, guildID, userID, itemID, amount)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.publishCompleted(ctx, guildID, userID, itemID, amount)
	return consumed, nil
}

// executeExchangeTx counts and consumes in one transaction; the count locks
// the candidate rows so a concurrent exchange for the same member cannot
// spend the same holdings.
func (s *service) executeExchangeTx(ctx context.Context, guildID, userID string, itemID, amount int) ([]uuid.UUID, error) {
	now := s.clk.Now()

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToBeginTx, err)
	}
	defer repository.SafeRollback(ctx, tx)

	count, err := tx.CountSpendableHoldings(ctx, guildID, userID, itemID, now)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToCountHoldings, err)
	}
	if count < amount {
		return nil, domain.ErrInsufficientHolding
	}

	consumed, err := tx.ConsumeHoldings(ctx, guildID, userID, itemID, amount, now)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToConsumeHoldings, err)
	}
	if len(consumed) != amount {
		return nil, fmt.Errorf("%w: consumed %d of %d holdings", domain.ErrStorageConflict, len(consumed), amount)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToCommitTx, err)
	}
	return consumed, nil
}

func (s *service) ListHoldings(ctx context.Context, guildID, userID string) ([]domain.Holding, error) {
	holdings, err := s.repo.ListHoldings(ctx, guildID, userID, s.clk.Now())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToListHoldings, err)
	}
	return holdings, nil
}

func (s *service) publishCompleted(ctx context.Context, guildID, userID string, itemID, amount int) {
	if s.eventBus == nil {
		return
	}
	evt := event.NewExchangeCompletedEvent(guildID, userID, itemID, amount)
	if err := s.eventBus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Error(LogMsgFailedToPublishExchange, "error", err)
	}
}
