package handler

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/candystand/CandyBot_Go/internal/domain"
	"github.com/candystand/CandyBot_Go/internal/gacha"
)

// MockLedgerService implements ledger.Service
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) Grant(ctx context.Context, guildID, giverID, receiverID, messageID string, tier domain.CandyTier) ([]domain.CandyUnit, error) {
	args := m.Called(ctx, guildID, giverID, receiverID, messageID, tier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CandyUnit), args.Error(1)
}

func (m *MockLedgerService) Balance(ctx context.Context, guildID, userID string) (int, error) {
	args := m.Called(ctx, guildID, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockLedgerService) EarliestExpiry(ctx context.Context, guildID, userID string) (*time.Time, error) {
	args := m.Called(ctx, guildID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*time.Time), args.Error(1)
}

func (m *MockLedgerService) Consume(ctx context.Context, guildID, userID string, n int) ([]domain.CandyUnit, error) {
	args := m.Called(ctx, guildID, userID, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CandyUnit), args.Error(1)
}

// MockGachaService implements gacha.Service
type MockGachaService struct {
	mock.Mock
}

func (m *MockGachaService) Draw(ctx context.Context, guildID, userID string) (*gacha.DrawResult, error) {
	args := m.Called(ctx, guildID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gacha.DrawResult), args.Error(1)
}

func (m *MockGachaService) DrawBatch(ctx context.Context, guildID, userID string) ([]gacha.DrawResult, error) {
	args := m.Called(ctx, guildID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]gacha.DrawResult), args.Error(1)
}

// MockExchangeService implements exchange.Service
type MockExchangeService struct {
	mock.Mock
}

func (m *MockExchangeService) Exchange(ctx context.Context, guildID, userID string, itemID, amount int) ([]uuid.UUID, error) {
	args := m.Called(ctx, guildID, userID, itemID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockExchangeService) ListHoldings(ctx context.Context, guildID, userID string) ([]domain.Holding, error) {
	args := m.Called(ctx, guildID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Holding), args.Error(1)
}

// MockDBPool mocks the database.Pool interface
type MockDBPool struct {
	mock.Mock
}

func (m *MockDBPool) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDBPool) Close() {
	m.Called()
}
