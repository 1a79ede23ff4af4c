// Package catalog holds the immutable drawable item table. It is loaded once
// at process start and precomputes the cumulative-weight tables the draw
// engine selects from.
package catalog

import (
	"context"
	"fmt"
	"sort"

	"github.com/candystand/CandyBot_Go/internal/domain"
)

// Loader fetches the seeded item table, ordered by id ascending.
// Satisfied by repository.Item.
type Loader interface {
	GetAllItems(ctx context.Context) ([]domain.Item, error)
}

// Catalog is the validated, immutable item table. One item carries the
// jackpot tier; every drop weight is positive.
type Catalog struct {
	items   []domain.Item
	byID    map[int]domain.Item
	jackpot domain.Item

	full     *weightTable // jackpot participates at its configured weight
	nonJack  *weightTable // jackpot excluded entirely
}

// Load fetches and validates the catalog.
func Load(ctx context.Context, loader Loader) (*Catalog, error) {
	items, err := loader.GetAllItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToLoadItems, err)
	}
	return New(items)
}

// New builds a catalog from an item list. Exposed for tests.
func New(items []domain.Item) (*Catalog, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidCatalog, ErrDetailEmptyCatalog)
	}

	// Stable id order so a fixed uniform roll always resolves the same item.
	sorted := make([]domain.Item, len(items))
	copy(sorted, items)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	c := &Catalog{
		items: sorted,
		byID:  make(map[int]domain.Item, len(sorted)),
	}

	jackpots := 0
	var normal []domain.Item
	for _, item := range sorted {
		if item.DropWeight <= 0 {
			return nil, fmt.Errorf("%w: item %d %q has drop weight %d", domain.ErrInvalidCatalog, item.ID, item.Name, item.DropWeight)
		}
		if _, dup := c.byID[item.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate item id %d", domain.ErrInvalidCatalog, item.ID)
		}
		c.byID[item.ID] = item

		if item.IsJackpot() {
			jackpots++
			c.jackpot = item
		} else {
			normal = append(normal, item)
		}
	}
	if jackpots != 1 {
		return nil, fmt.Errorf("%w: expected exactly one jackpot item, found %d", domain.ErrInvalidCatalog, jackpots)
	}
	if len(normal) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidCatalog, ErrDetailOnlyJackpot)
	}

	var err error
	if c.full, err = newWeightTable(sorted); err != nil {
		return nil, err
	}
	if c.nonJack, err = newWeightTable(normal); err != nil {
		return nil, err
	}
	return c, nil
}

// Items returns the catalog in id order.
func (c *Catalog) Items() []domain.Item {
	out := make([]domain.Item, len(c.items))
	copy(out, c.items)
	return out
}

// ItemByID looks up one catalog entry.
func (c *Catalog) ItemByID(id int) (domain.Item, bool) {
	item, ok := c.byID[id]
	return item, ok
}

// Jackpot returns the designated jackpot item.
func (c *Catalog) Jackpot() domain.Item {
	return c.jackpot
}

// Pick maps one uniform roll in [0,1) to an item by cumulative weight.
// When includeJackpot is false the jackpot item is absent from the pool and
// its weight does not dilute the others.
func (c *Catalog) Pick(uniform float64, includeJackpot bool) domain.Item {
	if includeJackpot {
		return c.full.pick(uniform)
	}
	return c.nonJack.pick(uniform)
}
