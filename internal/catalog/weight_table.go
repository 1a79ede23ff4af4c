package catalog

import (
	"fmt"
	"sort"

	"github.com/candystand/CandyBot_Go/internal/domain"
)

// weightTable is an immutable cumulative-weight array over items already
// sorted by id. Selection is a single binary search, built once at load.
type weightTable struct {
	items      []domain.Item
	cumulative []int64
	total      int64
}

func newWeightTable(items []domain.Item) (*weightTable, error) {
	t := &weightTable{
		items:      items,
		cumulative: make([]int64, len(items)),
	}
	for i, item := range items {
		t.total += int64(item.DropWeight)
		t.cumulative[i] = t.total
	}
	if t.total <= 0 {
		return nil, fmt.Errorf("%w: non-positive total weight", domain.ErrInvalidCatalog)
	}
	return t, nil
}

// pick resolves a uniform roll in [0,1) to the item whose cumulative range
// contains floor(uniform*total).
func (t *weightTable) pick(uniform float64) domain.Item {
	if uniform < 0 {
		uniform = 0
	}
	target := int64(uniform * float64(t.total))
	if target >= t.total {
		target = t.total - 1
	}
	idx := sort.Search(len(t.cumulative), func(i int) bool {
		return t.cumulative[i] > target
	})
	return t.items[idx]
}
