package exchange

// Error context messages for wrapped errors
const (
	ErrContextFailedToBeginTx         = "failed to begin transaction"
	ErrContextFailedToCountHoldings   = "failed to count holdings"
	ErrContextFailedToConsumeHoldings = "failed to consume holdings"
	ErrContextFailedToCommitTx        = "failed to commit transaction"
	ErrContextFailedToListHoldings    = "failed to list holdings"
)

// Error detail messages
const (
	ErrDetailAmountNotPositive = "amount must be positive"
)

// Log messages
const (
	LogMsgExchangeCalled          = "Exchange called"
	LogMsgFailedToPublishExchange = "Failed to publish exchange event"
)
