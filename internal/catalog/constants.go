package catalog

// Error context messages for wrapped errors during catalog loading
const (
	ErrContextFailedToLoadItems = "failed to load item catalog"
)

// Error detail messages
const (
	ErrDetailEmptyCatalog = "no items configured"
	ErrDetailOnlyJackpot  = "no non-jackpot items configured"
)
