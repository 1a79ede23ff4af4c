package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/candystand/CandyBot_Go/internal/catalog"
	"github.com/candystand/CandyBot_Go/internal/repository"
)

// LoadCatalog reads the full item table and builds the immutable draw
// catalog. The catalog is loaded once at startup; item changes ship as
// migrations and take effect on restart.
func LoadCatalog(ctx context.Context, itemRepo repository.Item) (*catalog.Catalog, error) {
	items, err := itemRepo.GetAllItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadCatalog, err)
	}

	cat, err := catalog.New(items)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadCatalog, err)
	}

	slog.Info(LogMsgCatalogLoaded, "items", len(items))
	return cat, nil
}
