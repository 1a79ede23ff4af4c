package gacha

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/candystand/CandyBot_Go/internal/catalog"
	"github.com/candystand/CandyBot_Go/internal/clock"
	"github.com/candystand/CandyBot_Go/internal/domain"
	"github.com/candystand/CandyBot_Go/internal/event"
	"github.com/candystand/CandyBot_Go/internal/logger"
	"github.com/candystand/CandyBot_Go/internal/random"
	"github.com/candystand/CandyBot_Go/internal/repository"
)

// DrawResult pairs one awarded item with its catalog entry for presentation.
type DrawResult struct {
	Award         domain.AwardedItem `json:"award"`
	Item          domain.Item        `json:"item"`
	PityTriggered bool               `json:"pity_triggered"`
}

// Service defines the interface for draw operations
type Service interface {
	// Draw consumes one candy unit and awards one weighted-random item.
	Draw(ctx context.Context, guildID, userID string) (*DrawResult, error)

	// DrawBatch performs domain.DrawBatchSize sequential draws as one atomic
	// unit. Fails with domain.ErrInsufficientBalance, creating nothing, when
	// the member holds fewer candy units than the batch size.
	DrawBatch(ctx context.Context, guildID, userID string) ([]DrawResult, error)
}

type service struct {
	repo     repository.Gacha
	cat      *catalog.Catalog
	clk      clock.Clock
	rng      random.Source
	eventBus event.Bus
}

// NewService creates a new gacha service
func NewService(repo repository.Gacha, cat *catalog.Catalog, clk clock.Clock, rng random.Source, eventBus event.Bus) Service {
	return &service{
		repo:     repo,
		cat:      cat,
		clk:      clk,
		rng:      rng,
		eventBus: eventBus,
	}
}

func (s *service) Draw(ctx context.Context, guildID, userID string) (*DrawResult, error) {
	results, err := s.draw(ctx, guildID, userID, 1)
	if err != nil {
		return nil, err
	}
	return &results[0], nil
}

func (s *service) DrawBatch(ctx context.Context, guildID, userID string) ([]DrawResult, error) {
	return s.draw(ctx, guildID, userID, domain.DrawBatchSize)
}

// draw consumes size candy units and creates size awards in one transaction.
// A batch is size sequential single draws: the jackpot-eligibility snapshot
// is taken once at the start and updated in memory after every selection, so
// a jackpot awarded mid-batch blocks further jackpots immediately.
func (s *service) draw(ctx context.Context, guildID, userID string, size int) ([]DrawResult, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgDrawCalled, "guild_id", guildID, "user_id", userID, "size", size)

	var results []DrawResult
	err := repository.WithConflictRetry(ctx, func(ctx context.Context) error {
		var err error
		results, err = s.executeDrawTx(ctx, guildID, userID, size)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.publishResults(ctx, guildID, userID, results)
	return results, nil
}

func (s *service) executeDrawTx(ctx context.Context, guildID, userID string, size int) ([]DrawResult, error) {
	now := s.clk.Now()
	loc := s.clk.Location()

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToBeginTx, err)
	}
	defer repository.SafeRollback(ctx, tx)

	// Consuming locks the candy rows, serializing concurrent draws for the
	// same member. Fails whole when fewer than size units are spendable.
	units, err := tx.ConsumeCandy(ctx, guildID, userID, size, now)
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientBalance) {
			return nil, err
		}
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToConsumeCandy, err)
	}

	yearStart := clock.StartOfYear(now, loc)
	yearEnd := yearStart.AddDate(1, 0, 0)
	hasJackpot, err := tx.HasJackpotBetween(ctx, guildID, userID, yearStart, yearEnd)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToCheckJackpot, err)
	}
	counter, err := tx.CountDrawsSinceLastJackpot(ctx, guildID, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToCountDraws, err)
	}

	eligible := !hasJackpot
	expiresAt := awardExpiry(now, loc)

	results := make([]DrawResult, 0, size)
	awards := make([]domain.AwardedItem, 0, size)
	for _, unit := range units {
		item, pity := s.selectItem(eligible, counter)
		if item.IsJackpot() {
			eligible = false
			counter = 0
		} else {
			counter++
		}

		award := domain.AwardedItem{
			ID:            uuid.New(),
			GuildID:       guildID,
			UserID:        userID,
			ItemID:        item.ID,
			SourceCandyID: unit.ID,
			CreatedAt:     now,
			ExpiresAt:     expiresAt,
		}
		awards = append(awards, award)
		results = append(results, DrawResult{Award: award, Item: item, PityTriggered: pity})
	}

	if err := tx.InsertAwards(ctx, awards); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToInsertAwards, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToCommitTx, err)
	}
	return results, nil
}

// selectItem resolves one draw. The pity rule forces the jackpot on the
// draw that would reach the threshold; otherwise the jackpot participates in
// the weighted pool only while the member is still eligible this year.
func (s *service) selectItem(eligible bool, counter int) (domain.Item, bool) {
	if eligible && counter+1 >= domain.PityThreshold {
		return s.cat.Jackpot(), true
	}
	return s.cat.Pick(s.rng.Uniform(), eligible), false
}

// awardExpiry gives awards the same horizon as normal candy: one month plus
// one day from local midnight of the draw day.
func awardExpiry(now time.Time, loc *time.Location) time.Time {
	return clock.StartOfDay(now, loc).AddDate(0, 1, 1)
}

func (s *service) publishResults(ctx context.Context, guildID, userID string, results []DrawResult) {
	if s.eventBus == nil {
		return
	}
	for _, r := range results {
		evt := event.NewGachaDrawnEvent(guildID, userID, r.Item.ID, r.Item.Name, string(r.Item.Tier), r.PityTriggered)
		if err := s.eventBus.Publish(ctx, evt); err != nil {
			logger.FromContext(ctx).Error(LogMsgFailedToPublishDrawn, "error", err)
		}
		if r.Item.IsJackpot() {
			jackpotEvt := event.NewGachaJackpotEvent(guildID, userID, r.Item.ID, r.Item.Name, r.PityTriggered)
			if err := s.eventBus.Publish(ctx, jackpotEvt); err != nil {
				logger.FromContext(ctx).Error(LogMsgFailedToPublishJackpot, "error", err)
			}
		}
	}
}
