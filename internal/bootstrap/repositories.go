package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/candystand/CandyBot_Go/internal/database/postgres"
	"github.com/candystand/CandyBot_Go/internal/repository"
)

// Repositories holds all repository implementations used by the application.
// This provides a centralized location for repository initialization and
// makes dependency injection clearer.
type Repositories struct {
	Candy    repository.Candy
	Gacha    repository.Gacha
	Exchange repository.Exchange
	Item     repository.Item
}

// InitializeRepositories creates all repository implementations.
func InitializeRepositories(dbPool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Candy:    postgres.NewCandyRepository(dbPool),
		Gacha:    postgres.NewGachaRepository(dbPool),
		Exchange: postgres.NewExchangeRepository(dbPool),
		Item:     postgres.NewItemRepository(dbPool),
	}
}
