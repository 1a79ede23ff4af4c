package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/candystand/CandyBot_Go/internal/domain"
	"github.com/candystand/CandyBot_Go/internal/repository"
)

// MockRepository implements repository.Candy
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) BeginTx(ctx context.Context) (repository.CandyTx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.CandyTx), args.Error(1)
}

func (m *MockRepository) SpendableBalance(ctx context.Context, guildID, userID string, now time.Time) (int, error) {
	args := m.Called(ctx, guildID, userID, now)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) EarliestExpiry(ctx context.Context, guildID, userID string, now time.Time) (*time.Time, error) {
	args := m.Called(ctx, guildID, userID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*time.Time), args.Error(1)
}

func (m *MockRepository) GetCandyByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.CandyUnit, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CandyUnit), args.Error(1)
}

// MockTx implements repository.CandyTx
type MockTx struct {
	mock.Mock
}

func (m *MockTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTx) LockGiver(ctx context.Context, guildID, giverID string) error {
	args := m.Called(ctx, guildID, giverID)
	return args.Error(0)
}

func (m *MockTx) GrantExists(ctx context.Context, guildID, giverID, messageID string, tier domain.CandyTier) (bool, error) {
	args := m.Called(ctx, guildID, giverID, messageID, tier)
	return args.Bool(0), args.Error(1)
}

func (m *MockTx) CountGrantsSince(ctx context.Context, guildID, giverID string, tier domain.CandyTier, since time.Time) (int, error) {
	args := m.Called(ctx, guildID, giverID, tier, since)
	return args.Int(0), args.Error(1)
}

func (m *MockTx) InsertCandy(ctx context.Context, units []domain.CandyUnit) error {
	args := m.Called(ctx, units)
	return args.Error(0)
}

func (m *MockTx) ConsumeCandy(ctx context.Context, guildID, userID string, n int, now time.Time) ([]domain.CandyUnit, error) {
	args := m.Called(ctx, guildID, userID, n, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CandyUnit), args.Error(1)
}
