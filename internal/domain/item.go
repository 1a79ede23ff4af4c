package domain

// ItemTier flags the special jackpot item in the catalog.
type ItemTier string

const (
	ItemTierNormal  ItemTier = "normal"
	ItemTierJackpot ItemTier = "jackpot"
)

// Item is a catalog entry. The catalog is seeded at deployment and immutable
// at runtime; items are shared across all guilds.
type Item struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	DropWeight  int      `json:"drop_weight"`
	Tier        ItemTier `json:"tier"`
}

// IsJackpot reports whether the item is the catalog's jackpot entry.
func (i *Item) IsJackpot() bool {
	return i.Tier == ItemTierJackpot
}
