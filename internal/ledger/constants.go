package ledger

// Error context messages for wrapped errors
const (
	ErrContextFailedToBeginTx        = "failed to begin transaction"
	ErrContextFailedToLockGiver      = "failed to lock giver for grant"
	ErrContextFailedToCheckDuplicate = "failed to check for duplicate grant"
	ErrContextFailedToCountGrants    = "failed to count grants in window"
	ErrContextFailedToInsertCandy    = "failed to insert candy units"
	ErrContextFailedToGetBalance     = "failed to get candy balance"
	ErrContextFailedToGetExpiry      = "failed to get earliest expiry"
)

// Error detail messages
const (
	ErrDetailMissingGrantFields = "guild, giver, receiver and message are required"
)

// Log messages
const (
	LogMsgGrantCalled            = "Grant called"
	LogMsgFailedToPublishGranted = "Failed to publish candy granted event"
)
