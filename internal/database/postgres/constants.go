package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"
	// PgErrorCodeSerializationFailure is raised when a concurrent transaction invalidates this one
	PgErrorCodeSerializationFailure = "40001"
	// PgErrorCodeDeadlockDetected is raised when two transactions lock rows in opposite order
	PgErrorCodeDeadlockDetected = "40P01"
)

// Error Messages - Candy Operations
const (
	ErrMsgFailedToLockGiver         = "failed to lock giver"
	ErrMsgFailedToCheckGrantExists  = "failed to check grant existence"
	ErrMsgFailedToCountGrants       = "failed to count grants"
	ErrMsgFailedToInsertCandy       = "failed to insert candy unit"
	ErrMsgFailedToConsumeCandy      = "failed to consume candy"
	ErrMsgFailedToCountBalance      = "failed to count spendable balance"
	ErrMsgFailedToGetEarliestExpiry = "failed to get earliest expiry"
	ErrMsgFailedToGetCandyByIDs     = "failed to get candy by ids"
	ErrMsgFailedToScanCandy         = "failed to scan candy unit"
)

// Error Messages - Award Operations
const (
	ErrMsgFailedToCountDraws    = "failed to count draws since last jackpot"
	ErrMsgFailedToCheckJackpot  = "failed to check jackpot window"
	ErrMsgFailedToInsertAward   = "failed to insert award"
	ErrMsgFailedToCountHoldings = "failed to count spendable holdings"
	ErrMsgFailedToConsumeAwards = "failed to consume awards"
	ErrMsgFailedToScanAward     = "failed to scan award"
	ErrMsgFailedToQueryHoldings = "failed to query holdings"
	ErrMsgFailedToScanHolding   = "failed to scan holding"
)

// Error Messages - Item Operations
const (
	ErrMsgFailedToQueryItems = "failed to query items"
	ErrMsgFailedToScanItem   = "failed to scan item"
)

// Error Messages - Transaction Operations
const (
	ErrMsgFailedToBeginTransaction = "failed to begin transaction"
)
