package exchange

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/candystand/CandyBot_Go/internal/domain"
	"github.com/candystand/CandyBot_Go/internal/repository"
)

// MockRepository implements repository.Exchange
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) BeginTx(ctx context.Context) (repository.ExchangeTx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.ExchangeTx), args.Error(1)
}

func (m *MockRepository) ListHoldings(ctx context.Context, guildID, userID string, now time.Time) ([]domain.Holding, error) {
	args := m.Called(ctx, guildID, userID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Holding), args.Error(1)
}

// MockTx implements repository.ExchangeTx
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

func (m *MockTx) CountSpendableHoldings(ctx context.Context, guildID, userID string, itemID int, now time.Time) (int, error) {
	args := m.Called(ctx, guildID, userID, itemID, now)
	return args.Int(0), args.Error(1)
}

func (m *MockTx) ConsumeHoldings(ctx context.Context, guildID, userID string, itemID, n int, now time.Time) ([]uuid.UUID, error) {
	args := m.Called(ctx, guildID, userID, itemID, n, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}
