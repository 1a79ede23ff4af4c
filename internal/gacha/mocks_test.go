package gacha

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/candystand/CandyBot_Go/internal/domain"
	"github.com/candystand/CandyBot_Go/internal/repository"
)

// MockRepository implements repository.Gacha
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) BeginTx(ctx context.Context) (repository.GachaTx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.GachaTx), args.Error(1)
}

// MockTx implements repository.GachaTx
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

func (m *MockTx) ConsumeCandy(ctx context.Context, guildID, userID string, n int, now time.Time) ([]domain.CandyUnit, error) {
	args := m.Called(ctx, guildID, userID, n, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CandyUnit), args.Error(1)
}

func (m *MockTx) CountDrawsSinceLastJackpot(ctx context.Context, guildID, userID string) (int, error) {
	args := m.Called(ctx, guildID, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockTx) HasJackpotBetween(ctx context.Context, guildID, userID string, from, to time.Time) (bool, error) {
	args := m.Called(ctx, guildID, userID, from, to)
	return args.Bool(0), args.Error(1)
}

func (m *MockTx) InsertAwards(ctx context.Context, awards []domain.AwardedItem) error {
	args := m.Called(ctx, awards)
	return args.Error(0)
}
