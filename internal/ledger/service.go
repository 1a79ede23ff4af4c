package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/candystand/CandyBot_Go/internal/clock"
	"github.com/candystand/CandyBot_Go/internal/domain"
	"github.com/candystand/CandyBot_Go/internal/event"
	"github.com/candystand/CandyBot_Go/internal/logger"
	"github.com/candystand/CandyBot_Go/internal/repository"
)

// Service defines the interface for candy ledger operations
type Service interface {
	// Grant creates the candy units of one grant: a single unit for normal
	// tier, a batch for super tier. At most one grant per
	// (guild, giver, origin message, tier).
	Grant(ctx context.Context, guildID, giverID, receiverID, messageID string, tier domain.CandyTier) ([]domain.CandyUnit, error)

	// Balance counts the member's spendable candy units.
	Balance(ctx context.Context, guildID, userID string) (int, error)

	// EarliestExpiry returns the soonest expiry among the member's spendable
	// units, or nil when there are none.
	EarliestExpiry(ctx context.Context, guildID, userID string) (*time.Time, error)

	// Consume marks the n soonest-expiring spendable units consumed, FIFO by
	// expiry. Fails atomically with domain.ErrInsufficientBalance when fewer
	// than n are spendable.
	Consume(ctx context.Context, guildID, userID string, n int) ([]domain.CandyUnit, error)
}

type service struct {
	repo     repository.Candy
	clk      clock.Clock
	eventBus event.Bus
}

// NewService creates a new ledger service
func NewService(repo repository.Candy, clk clock.Clock, eventBus event.Bus) Service {
	return &service{
		repo:     repo,
		clk:      clk,
		eventBus: eventBus,
	}
}

func (s *service) Grant(ctx context.Context, guildID, giverID, receiverID, messageID string, tier domain.CandyTier) ([]domain.CandyUnit, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgGrantCalled, "guild_id", guildID, "giver_id", giverID, "receiver_id", receiverID, "tier", tier)

	if err := validateGrantInput(guildID, giverID, receiverID, messageID, tier); err != nil {
		return nil, err
	}

	now := s.clk.Now()
	units := buildGrantUnits(guildID, giverID, receiverID, messageID, tier, now, s.clk.Location())

	err := repository.WithConflictRetry(ctx, func(ctx context.Context) error {
		return s.executeGrantTx(ctx, units, tier, now)
	})
	if err != nil {
		return nil, err
	}

	s.publishGranted(ctx, units)
	return units, nil
}

// executeGrantTx runs the duplicate check, the cap check and the insert as
// one atomic unit, so a re-delivered platform event cannot double-grant.
func (s *service) executeGrantTx(ctx context.Context, units []domain.CandyUnit, tier domain.CandyTier, now time.Time) error {
	u := units[0]

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToBeginTx, err)
	}
	defer repository.SafeRollback(ctx, tx)

	// Serializes concurrent grants from the same giver so the cap count
	// below cannot race a parallel insert for a different message.
	if err := tx.LockGiver(ctx, u.GuildID, u.GiverID); err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToLockGiver, err)
	}

	exists, err := tx.GrantExists(ctx, u.GuildID, u.GiverID, u.MessageID, tier)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToCheckDuplicate, err)
	}
	if exists {
		return domain.ErrDuplicateGrant
	}

	if err := s.checkGrantCap(ctx, tx, u.GuildID, u.GiverID, tier, now); err != nil {
		return err
	}

	if err := tx.InsertCandy(ctx, units); err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToInsertCandy, err)
	}

	return tx.Commit(ctx)
}

// checkGrantCap enforces the giver-side rate limit: a daily unit cap for
// normal tier, one batch per calendar month for super tier.
func (s *service) checkGrantCap(ctx context.Context, tx repository.CandyTx, guildID, giverID string, tier domain.CandyTier, now time.Time) error {
	loc := s.clk.Location()

	switch tier {
	case domain.CandyTierNormal:
		count, err := tx.CountGrantsSince(ctx, guildID, giverID, tier, clock.StartOfDay(now, loc))
		if err != nil {
			return fmt.Errorf("%s: %w", ErrContextFailedToCountGrants, err)
		}
		if count >= domain.DailyNormalGrantCap {
			return domain.ErrDailyCapExceeded
		}
	case domain.CandyTierSuper:
		count, err := tx.CountGrantsSince(ctx, guildID, giverID, tier, clock.StartOfMonth(now, loc))
		if err != nil {
			return fmt.Errorf("%s: %w", ErrContextFailedToCountGrants, err)
		}
		if count > 0 {
			return domain.ErrMonthlyCapExceeded
		}
	}
	return nil
}

func (s *service) Balance(ctx context.Context, guildID, userID string) (int, error) {
	balance, err := s.repo.SpendableBalance(ctx, guildID, userID, s.clk.Now())
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrContextFailedToGetBalance, err)
	}
	return balance, nil
}

func (s *service) EarliestExpiry(ctx context.Context, guildID, userID string) (*time.Time, error) {
	expiry, err := s.repo.EarliestExpiry(ctx, guildID, userID, s.clk.Now())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToGetExpiry, err)
	}
	return expiry, nil
}

func (s *service) Consume(ctx context.Context, guildID, userID string, n int) ([]domain.CandyUnit, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: consume count must be positive", domain.ErrInvalidInput)
	}

	var consumed []domain.CandyUnit
	err := repository.WithConflictRetry(ctx, func(ctx context.Context) error {
		tx, err := s.repo.BeginTx(ctx)
		if err != nil {
			return fmt.Errorf("%s: %w", ErrContextFailedToBeginTx, err)
		}
		defer repository.SafeRollback(ctx, tx)

		consumed, err = tx.ConsumeCandy(ctx, guildID, userID, n, s.clk.Now())
		if err != nil {
			return err
		}
		return tx.Commit(ctx)
	})
	if err != nil {
		return nil, err
	}
	return consumed, nil
}

func validateGrantInput(guildID, giverID, receiverID, messageID string, tier domain.CandyTier) error {
	if guildID == "" || giverID == "" || receiverID == "" || messageID == "" {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrDetailMissingGrantFields)
	}
	if !tier.Valid() {
		return domain.ErrInvalidTier
	}
	if giverID == receiverID {
		return domain.ErrSelfGrant
	}
	return nil
}

// buildGrantUnits constructs the units of one grant. All units of a super
// batch share the origin message and expiry; batch_seq keeps each row under
// the uniqueness constraint.
func buildGrantUnits(guildID, giverID, receiverID, messageID string, tier domain.CandyTier, now time.Time, loc *time.Location) []domain.CandyUnit {
	size := 1
	expiresAt := normalExpiry(now, loc)
	if tier == domain.CandyTierSuper {
		size = domain.SuperGrantBatchSize
		expiresAt = superExpiry(now, loc)
	}

	units := make([]domain.CandyUnit, size)
	for i := range units {
		units[i] = domain.CandyUnit{
			ID:         uuid.New(),
			GuildID:    guildID,
			GiverID:    giverID,
			ReceiverID: receiverID,
			MessageID:  messageID,
			Tier:       tier,
			BatchSeq:   i,
			CreatedAt:  now,
			ExpiresAt:  expiresAt,
		}
	}
	return units
}

func (s *service) publishGranted(ctx context.Context, units []domain.CandyUnit) {
	if s.eventBus == nil {
		return
	}
	u := units[0]
	evt := event.NewCandyGrantedEvent(u.GuildID, u.GiverID, u.ReceiverID, string(u.Tier), len(units))
	if err := s.eventBus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Error(LogMsgFailedToPublishGranted, "error", err)
	}
}
