package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/candystand/CandyBot_Go/internal/clock"
	"github.com/candystand/CandyBot_Go/internal/domain"
	"github.com/candystand/CandyBot_Go/internal/event"
)

var tokyo = mustLoadLocation("Asia/Tokyo")

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

// grantTime is mid-afternoon on a plain weekday, away from any window edge.
func grantTime() time.Time {
	return time.Date(2024, 6, 15, 15, 4, 5, 0, tokyo)
}

func newGrantTx() *MockTx {
	tx := new(MockTx)
	tx.On("Commit", mock.Anything).Return(nil)
	tx.On("Rollback", mock.Anything).Return(nil)
	tx.On("LockGiver", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	return tx
}

func TestGrantRejectsSelfGrant(t *testing.T) {
	svc := NewService(new(MockRepository), clock.NewFake(grantTime()), nil)

	_, err := svc.Grant(context.Background(), "guild1", "alice", "alice", "msg1", domain.CandyTierNormal)
	assert.ErrorIs(t, err, domain.ErrSelfGrant)
}

func TestGrantRejectsInvalidTier(t *testing.T) {
	svc := NewService(new(MockRepository), clock.NewFake(grantTime()), nil)

	_, err := svc.Grant(context.Background(), "guild1", "alice", "bob", "msg1", domain.CandyTier("mega"))
	assert.ErrorIs(t, err, domain.ErrInvalidTier)
}

func TestGrantRejectsMissingFields(t *testing.T) {
	svc := NewService(new(MockRepository), clock.NewFake(grantTime()), nil)

	_, err := svc.Grant(context.Background(), "guild1", "alice", "bob", "", domain.CandyTierNormal)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGrantRejectsDuplicate(t *testing.T) {
	repo := new(MockRepository)
	tx := newGrantTx()
	repo.On("BeginTx", mock.Anything).Return(tx, nil)
	tx.On("GrantExists", mock.Anything, "guild1", "alice", "msg1", domain.CandyTierNormal).Return(true, nil)

	svc := NewService(repo, clock.NewFake(grantTime()), nil)

	_, err := svc.Grant(context.Background(), "guild1", "alice", "bob", "msg1", domain.CandyTierNormal)
	assert.ErrorIs(t, err, domain.ErrDuplicateGrant)
	tx.AssertNotCalled(t, "InsertCandy", mock.Anything, mock.Anything)
}

func TestGrantEnforcesDailyCap(t *testing.T) {
	repo := new(MockRepository)
	tx := newGrantTx()
	repo.On("BeginTx", mock.Anything).Return(tx, nil)
	tx.On("GrantExists", mock.Anything, "guild1", "alice", "msg4", domain.CandyTierNormal).Return(false, nil)

	startOfDay := time.Date(2024, 6, 15, 0, 0, 0, 0, tokyo)
	tx.On("CountGrantsSince", mock.Anything, "guild1", "alice", domain.CandyTierNormal, startOfDay).
		Return(domain.DailyNormalGrantCap, nil)

	svc := NewService(repo, clock.NewFake(grantTime()), nil)

	_, err := svc.Grant(context.Background(), "guild1", "alice", "bob", "msg4", domain.CandyTierNormal)
	assert.ErrorIs(t, err, domain.ErrDailyCapExceeded)
	tx.AssertNotCalled(t, "InsertCandy", mock.Anything, mock.Anything)
}

func TestGrantLocksGiverBeforeCapCount(t *testing.T) {
	repo := new(MockRepository)
	tx := new(MockTx)
	tx.On("Commit", mock.Anything).Return(nil)
	tx.On("Rollback", mock.Anything).Return(nil)

	var calls []string
	tx.On("LockGiver", mock.Anything, "guild1", "alice").Run(func(mock.Arguments) {
		calls = append(calls, "lock")
	}).Return(nil)
	tx.On("GrantExists", mock.Anything, "guild1", "alice", "msg1", domain.CandyTierNormal).Run(func(mock.Arguments) {
		calls = append(calls, "exists")
	}).Return(false, nil)
	tx.On("CountGrantsSince", mock.Anything, "guild1", "alice", domain.CandyTierNormal, mock.Anything).Run(func(mock.Arguments) {
		calls = append(calls, "count")
	}).Return(0, nil)
	tx.On("InsertCandy", mock.Anything, mock.Anything).Return(nil)

	repo.On("BeginTx", mock.Anything).Return(tx, nil)

	svc := NewService(repo, clock.NewFake(grantTime()), nil)

	_, err := svc.Grant(context.Background(), "guild1", "alice", "bob", "msg1", domain.CandyTierNormal)
	require.NoError(t, err)
	assert.Equal(t, []string{"lock", "exists", "count"}, calls)
}

func TestGrantFailsWhenGiverLockFails(t *testing.T) {
	repo := new(MockRepository)
	tx := new(MockTx)
	tx.On("Rollback", mock.Anything).Return(nil)
	tx.On("LockGiver", mock.Anything, "guild1", "alice").Return(errors.New("lock timeout"))
	repo.On("BeginTx", mock.Anything).Return(tx, nil)

	svc := NewService(repo, clock.NewFake(grantTime()), nil)

	_, err := svc.Grant(context.Background(), "guild1", "alice", "bob", "msg1", domain.CandyTierNormal)
	require.Error(t, err)
	tx.AssertNotCalled(t, "InsertCandy", mock.Anything, mock.Anything)
}

func TestGrantEnforcesMonthlySuperCap(t *testing.T) {
	repo := new(MockRepository)
	tx := newGrantTx()
	repo.On("BeginTx", mock.Anything).Return(tx, nil)
	tx.On("GrantExists", mock.Anything, "guild1", "alice", "msg1", domain.CandyTierSuper).Return(false, nil)

	startOfMonth := time.Date(2024, 6, 1, 0, 0, 0, 0, tokyo)
	tx.On("CountGrantsSince", mock.Anything, "guild1", "alice", domain.CandyTierSuper, startOfMonth).
		Return(domain.SuperGrantBatchSize, nil)

	svc := NewService(repo, clock.NewFake(grantTime()), nil)

	_, err := svc.Grant(context.Background(), "guild1", "alice", "bob", "msg1", domain.CandyTierSuper)
	assert.ErrorIs(t, err, domain.ErrMonthlyCapExceeded)
}

func TestGrantNormalCreatesOneUnit(t *testing.T) {
	repo := new(MockRepository)
	tx := newGrantTx()
	repo.On("BeginTx", mock.Anything).Return(tx, nil)
	tx.On("GrantExists", mock.Anything, "guild1", "alice", "msg1", domain.CandyTierNormal).Return(false, nil)
	tx.On("CountGrantsSince", mock.Anything, "guild1", "alice", domain.CandyTierNormal, mock.Anything).Return(0, nil)
	tx.On("InsertCandy", mock.Anything, mock.Anything).Return(nil)

	bus := event.NewMemoryBus()
	var published []event.Event
	bus.Subscribe(event.CandyGranted, func(ctx context.Context, evt event.Event) error {
		published = append(published, evt)
		return nil
	})

	svc := NewService(repo, clock.NewFake(grantTime()), bus)

	units, err := svc.Grant(context.Background(), "guild1", "alice", "bob", "msg1", domain.CandyTierNormal)
	require.NoError(t, err)
	require.Len(t, units, 1)

	u := units[0]
	assert.Equal(t, "bob", u.ReceiverID)
	assert.Equal(t, 0, u.BatchSeq)
	assert.Nil(t, u.ConsumedAt)
	// Midnight of June 15 plus one month and one day.
	assert.Equal(t, time.Date(2024, 7, 16, 0, 0, 0, 0, tokyo), u.ExpiresAt)

	require.Len(t, published, 1)
}

func TestGrantSuperCreatesBatch(t *testing.T) {
	repo := new(MockRepository)
	tx := newGrantTx()
	repo.On("BeginTx", mock.Anything).Return(tx, nil)
	tx.On("GrantExists", mock.Anything, "guild1", "alice", "msg1", domain.CandyTierSuper).Return(false, nil)
	tx.On("CountGrantsSince", mock.Anything, "guild1", "alice", domain.CandyTierSuper, mock.Anything).Return(0, nil)

	var inserted []domain.CandyUnit
	tx.On("InsertCandy", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		inserted = args.Get(1).([]domain.CandyUnit)
	}).Return(nil)

	svc := NewService(repo, clock.NewFake(grantTime()), nil)

	units, err := svc.Grant(context.Background(), "guild1", "alice", "bob", "msg1", domain.CandyTierSuper)
	require.NoError(t, err)
	require.Len(t, units, domain.SuperGrantBatchSize)
	require.Len(t, inserted, domain.SuperGrantBatchSize)

	for i, u := range units {
		assert.Equal(t, i, u.BatchSeq)
		assert.Equal(t, "msg1", u.MessageID)
		// Whole batch shares one expiry.
		assert.Equal(t, units[0].ExpiresAt, u.ExpiresAt)
		assert.NotEqual(t, [16]byte{}, [16]byte(u.ID))
	}
}

func TestGrantRetriesOnStorageConflict(t *testing.T) {
	repo := new(MockRepository)

	conflictTx := new(MockTx)
	conflictTx.On("Rollback", mock.Anything).Return(nil)
	conflictTx.On("LockGiver", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	conflictTx.On("GrantExists", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(false, domain.ErrStorageConflict).Once()

	okTx := newGrantTx()
	okTx.On("GrantExists", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
	okTx.On("CountGrantsSince", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(0, nil)
	okTx.On("InsertCandy", mock.Anything, mock.Anything).Return(nil)

	repo.On("BeginTx", mock.Anything).Return(conflictTx, nil).Once()
	repo.On("BeginTx", mock.Anything).Return(okTx, nil)

	svc := NewService(repo, clock.NewFake(grantTime()), nil)

	units, err := svc.Grant(context.Background(), "guild1", "alice", "bob", "msg1", domain.CandyTierNormal)
	require.NoError(t, err)
	assert.Len(t, units, 1)
}

func TestGrantSurfacesPersistentConflict(t *testing.T) {
	repo := new(MockRepository)
	tx := new(MockTx)
	tx.On("Rollback", mock.Anything).Return(nil)
	tx.On("LockGiver", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	tx.On("GrantExists", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(false, domain.ErrStorageConflict)
	repo.On("BeginTx", mock.Anything).Return(tx, nil)

	svc := NewService(repo, clock.NewFake(grantTime()), nil)

	_, err := svc.Grant(context.Background(), "guild1", "alice", "bob", "msg1", domain.CandyTierNormal)
	assert.ErrorIs(t, err, domain.ErrStorageConflict)
}

func TestBalance(t *testing.T) {
	repo := new(MockRepository)
	now := grantTime()
	repo.On("SpendableBalance", mock.Anything, "guild1", "bob", now).Return(3, nil)

	svc := NewService(repo, clock.NewFake(now), nil)

	balance, err := svc.Balance(context.Background(), "guild1", "bob")
	require.NoError(t, err)
	assert.Equal(t, 3, balance)
}

func TestEarliestExpiry(t *testing.T) {
	repo := new(MockRepository)
	now := grantTime()
	expiry := now.AddDate(0, 1, 1)
	repo.On("EarliestExpiry", mock.Anything, "guild1", "bob", now).Return(&expiry, nil)

	svc := NewService(repo, clock.NewFake(now), nil)

	got, err := svc.EarliestExpiry(context.Background(), "guild1", "bob")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Equal(expiry))
}

func TestConsumeRejectsNonPositiveCount(t *testing.T) {
	svc := NewService(new(MockRepository), clock.NewFake(grantTime()), nil)

	_, err := svc.Consume(context.Background(), "guild1", "bob", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestConsumeInsufficientBalance(t *testing.T) {
	repo := new(MockRepository)
	tx := new(MockTx)
	tx.On("Rollback", mock.Anything).Return(nil)
	repo.On("BeginTx", mock.Anything).Return(tx, nil)
	tx.On("ConsumeCandy", mock.Anything, "guild1", "bob", 2, mock.Anything).
		Return(nil, domain.ErrInsufficientBalance)

	svc := NewService(repo, clock.NewFake(grantTime()), nil)

	_, err := svc.Consume(context.Background(), "guild1", "bob", 2)
	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)
	tx.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestConsumeReturnsUnitsInOrder(t *testing.T) {
	now := grantTime()
	units := []domain.CandyUnit{
		{ExpiresAt: now.AddDate(0, 0, 1)},
		{ExpiresAt: now.AddDate(0, 0, 5)},
	}

	repo := new(MockRepository)
	tx := newGrantTx()
	repo.On("BeginTx", mock.Anything).Return(tx, nil)
	tx.On("ConsumeCandy", mock.Anything, "guild1", "bob", 2, now).Return(units, nil)

	svc := NewService(repo, clock.NewFake(now), nil)

	got, err := svc.Consume(context.Background(), "guild1", "bob", 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, got[0].ExpiresAt.Before(got[1].ExpiresAt))
}

func TestStorageErrorIsWrapped(t *testing.T) {
	repo := new(MockRepository)
	repo.On("SpendableBalance", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(0, errors.New("connection refused"))

	svc := NewService(repo, clock.NewFake(grantTime()), nil)

	_, err := svc.Balance(context.Background(), "guild1", "bob")
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrContextFailedToGetBalance)
}
