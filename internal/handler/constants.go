package handler

// Generic HTTP error messages for client responses.
// Both handlers and tests reference these constants to stay consistent.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"

	// Operation error messages
	ErrMsgGrantCandyFailed  = "Failed to grant candy"
	ErrMsgGetBalanceFailed  = "Failed to get balance"
	ErrMsgDrawFailed        = "Failed to draw"
	ErrMsgGetItemsFailed    = "Failed to get items"
	ErrMsgExchangeFailed    = "Failed to exchange"
	ErrMsgGetHoldingsFailed = "Failed to get holdings"
)
