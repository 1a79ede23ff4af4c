package gacha

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/candystand/CandyBot_Go/internal/catalog"
	"github.com/candystand/CandyBot_Go/internal/clock"
	"github.com/candystand/CandyBot_Go/internal/domain"
	"github.com/candystand/CandyBot_Go/internal/event"
	"github.com/candystand/CandyBot_Go/internal/random"
)

var tokyo = mustLoadLocation("Asia/Tokyo")

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

func drawTime() time.Time {
	return time.Date(2024, 6, 15, 20, 30, 0, 0, tokyo)
}

// testCatalog has total weight 100: item 1 covers [0,50), item 2 [50,80),
// item 3 [80,99), jackpot item 4 [99,100).
func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New([]domain.Item{
		{ID: 1, Name: "Konpeito", DropWeight: 50, Tier: domain.ItemTierNormal},
		{ID: 2, Name: "Caramel", DropWeight: 30, Tier: domain.ItemTierNormal},
		{ID: 3, Name: "Chocolate Coin", DropWeight: 19, Tier: domain.ItemTierNormal},
		{ID: 4, Name: "Golden Dango", DropWeight: 1, Tier: domain.ItemTierJackpot},
	})
	require.NoError(t, err)
	return cat
}

func makeCandy(n int) []domain.CandyUnit {
	units := make([]domain.CandyUnit, n)
	for i := range units {
		units[i] = domain.CandyUnit{ID: uuid.New(), GuildID: "guild1", ReceiverID: "bob"}
	}
	return units
}

// newDrawTx wires the happy-path transaction: n consumable units, the given
// pity counter, and the given this-year jackpot record.
func newDrawTx(n, counter int, hasJackpot bool) (*MockTx, *[]domain.AwardedItem) {
	tx := new(MockTx)
	tx.On("Commit", mock.Anything).Return(nil)
	tx.On("Rollback", mock.Anything).Return(nil)
	tx.On("ConsumeCandy", mock.Anything, "guild1", "bob", n, mock.Anything).Return(makeCandy(n), nil)
	tx.On("HasJackpotBetween", mock.Anything, "guild1", "bob", mock.Anything, mock.Anything).Return(hasJackpot, nil)
	tx.On("CountDrawsSinceLastJackpot", mock.Anything, "guild1", "bob").Return(counter, nil)

	var inserted []domain.AwardedItem
	tx.On("InsertAwards", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		inserted = args.Get(1).([]domain.AwardedItem)
	}).Return(nil)
	return tx, &inserted
}

func newServiceWithTx(t *testing.T, tx *MockTx, rng random.Source, bus event.Bus) Service {
	t.Helper()
	repo := new(MockRepository)
	repo.On("BeginTx", mock.Anything).Return(tx, nil)
	return NewService(repo, testCatalog(t), clock.NewFake(drawTime()), rng, bus)
}

func TestDrawInsufficientBalance(t *testing.T) {
	tx := new(MockTx)
	tx.On("Rollback", mock.Anything).Return(nil)
	tx.On("ConsumeCandy", mock.Anything, "guild1", "bob", 1, mock.Anything).
		Return(nil, domain.ErrInsufficientBalance)

	svc := newServiceWithTx(t, tx, random.Fixed(0), nil)

	_, err := svc.Draw(context.Background(), "guild1", "bob")
	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)
	tx.AssertNotCalled(t, "InsertAwards", mock.Anything, mock.Anything)
	tx.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestDrawAwardReferencesConsumedCandy(t *testing.T) {
	tx, inserted := newDrawTx(1, 0, false)
	svc := newServiceWithTx(t, tx, random.Fixed(0), nil)

	result, err := svc.Draw(context.Background(), "guild1", "bob")
	require.NoError(t, err)

	// Roll 0 lands in item 1's range.
	assert.Equal(t, 1, result.Item.ID)
	assert.False(t, result.PityTriggered)

	require.Len(t, *inserted, 1)
	award := (*inserted)[0]
	assert.Equal(t, result.Award.ID, award.ID)
	assert.NotEqual(t, uuid.Nil, award.SourceCandyID)
	assert.Equal(t, time.Date(2024, 7, 16, 0, 0, 0, 0, tokyo), award.ExpiresAt)
}

func TestDrawPityForcesJackpot(t *testing.T) {
	tx, _ := newDrawTx(1, domain.PityThreshold-1, false)
	// Roll 0 would pick item 1; pity overrides it.
	svc := newServiceWithTx(t, tx, random.Fixed(0), nil)

	result, err := svc.Draw(context.Background(), "guild1", "bob")
	require.NoError(t, err)
	assert.True(t, result.Item.IsJackpot())
	assert.True(t, result.PityTriggered)
}

func TestDrawPitySuppressedWhenIneligible(t *testing.T) {
	tx, _ := newDrawTx(1, domain.PityThreshold-1, true)
	// 0.995 would land on the jackpot in the full pool; with the jackpot
	// excluded it must resolve to a normal item.
	svc := newServiceWithTx(t, tx, random.Fixed(0.995), nil)

	result, err := svc.Draw(context.Background(), "guild1", "bob")
	require.NoError(t, err)
	assert.False(t, result.Item.IsJackpot())
	assert.False(t, result.PityTriggered)
}

func TestDrawJackpotByWeightWhenEligible(t *testing.T) {
	tx, _ := newDrawTx(1, 0, false)
	svc := newServiceWithTx(t, tx, random.Fixed(0.995), nil)

	result, err := svc.Draw(context.Background(), "guild1", "bob")
	require.NoError(t, err)
	assert.True(t, result.Item.IsJackpot())
	assert.False(t, result.PityTriggered)
}

func TestDrawBatchInsufficientBalance(t *testing.T) {
	tx := new(MockTx)
	tx.On("Rollback", mock.Anything).Return(nil)
	tx.On("ConsumeCandy", mock.Anything, "guild1", "bob", domain.DrawBatchSize, mock.Anything).
		Return(nil, domain.ErrInsufficientBalance)

	svc := newServiceWithTx(t, tx, random.Fixed(0), nil)

	_, err := svc.DrawBatch(context.Background(), "guild1", "bob")
	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)
	tx.AssertNotCalled(t, "InsertAwards", mock.Anything, mock.Anything)
}

func TestDrawBatchSingleJackpotPerBatch(t *testing.T) {
	tx, inserted := newDrawTx(domain.DrawBatchSize, domain.PityThreshold-1, false)
	// Every roll points at the jackpot range, but after the first jackpot the
	// member is ineligible for the rest of the batch.
	svc := newServiceWithTx(t, tx, random.Fixed(0.995), nil)

	results, err := svc.DrawBatch(context.Background(), "guild1", "bob")
	require.NoError(t, err)
	require.Len(t, results, domain.DrawBatchSize)

	jackpots := 0
	for _, r := range results {
		if r.Item.IsJackpot() {
			jackpots++
		}
	}
	assert.Equal(t, 1, jackpots)
	assert.True(t, results[0].Item.IsJackpot())
	assert.Len(t, *inserted, domain.DrawBatchSize)
}

func TestDrawBatchPityTriggersMidBatch(t *testing.T) {
	// Counter 145: draws 1-4 stay normal, the 5th reaches the threshold.
	tx, _ := newDrawTx(domain.DrawBatchSize, domain.PityThreshold-5, false)
	svc := newServiceWithTx(t, tx, random.Fixed(0), nil)

	results, err := svc.DrawBatch(context.Background(), "guild1", "bob")
	require.NoError(t, err)

	for i, r := range results {
		if i == 4 {
			assert.True(t, r.Item.IsJackpot(), "draw %d should hit pity", i)
			assert.True(t, r.PityTriggered)
		} else {
			assert.False(t, r.Item.IsJackpot(), "draw %d", i)
		}
	}
}

func TestDrawBatchAwardPerConsumedUnit(t *testing.T) {
	tx, inserted := newDrawTx(domain.DrawBatchSize, 0, false)
	svc := newServiceWithTx(t, tx, random.Seeded(7), nil)

	results, err := svc.DrawBatch(context.Background(), "guild1", "bob")
	require.NoError(t, err)

	require.Len(t, *inserted, domain.DrawBatchSize)
	seen := make(map[uuid.UUID]bool)
	for i, award := range *inserted {
		assert.Equal(t, results[i].Award.SourceCandyID, award.SourceCandyID)
		assert.False(t, seen[award.SourceCandyID], "candy unit consumed twice")
		seen[award.SourceCandyID] = true
	}
}

func TestDrawRetriesOnStorageConflict(t *testing.T) {
	conflictTx := new(MockTx)
	conflictTx.On("Rollback", mock.Anything).Return(nil)
	conflictTx.On("ConsumeCandy", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, domain.ErrStorageConflict).Once()

	okTx, _ := newDrawTx(1, 0, false)

	repo := new(MockRepository)
	repo.On("BeginTx", mock.Anything).Return(conflictTx, nil).Once()
	repo.On("BeginTx", mock.Anything).Return(okTx, nil)

	svc := NewService(repo, testCatalog(t), clock.NewFake(drawTime()), random.Fixed(0), nil)

	result, err := svc.Draw(context.Background(), "guild1", "bob")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Item.ID)
}

func TestDrawPublishesEvents(t *testing.T) {
	tx, _ := newDrawTx(1, domain.PityThreshold-1, false)

	bus := event.NewMemoryBus()
	var drawn, jackpot int
	bus.Subscribe(event.GachaDrawn, func(ctx context.Context, evt event.Event) error {
		drawn++
		return nil
	})
	bus.Subscribe(event.GachaJackpot, func(ctx context.Context, evt event.Event) error {
		jackpot++
		return nil
	})

	svc := newServiceWithTx(t, tx, random.Fixed(0), bus)

	_, err := svc.Draw(context.Background(), "guild1", "bob")
	require.NoError(t, err)
	assert.Equal(t, 1, drawn)
	assert.Equal(t, 1, jackpot)
}

func TestDrawJackpotExcludedAfterThisYearsWin(t *testing.T) {
	// Even a counter far past the threshold must not force a jackpot while
	// one already exists this calendar year.
	tx, _ := newDrawTx(1, domain.PityThreshold+50, true)
	svc := newServiceWithTx(t, tx, random.Fixed(0.9999), nil)

	result, err := svc.Draw(context.Background(), "guild1", "bob")
	require.NoError(t, err)
	assert.False(t, result.Item.IsJackpot())
}
