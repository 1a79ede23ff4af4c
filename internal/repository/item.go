package repository

import (
	"context"

	"github.com/candystand/CandyBot_Go/internal/domain"
)

// Item defines the interface for item catalog persistence. The catalog is
// seeded by migration and read once at startup.
type Item interface {
	// GetAllItems returns every catalog item ordered by id ascending.
	GetAllItems(ctx context.Context) ([]domain.Item, error)
}
