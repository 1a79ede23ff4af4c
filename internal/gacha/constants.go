package gacha

// Error context messages for wrapped errors
const (
	ErrContextFailedToBeginTx      = "failed to begin transaction"
	ErrContextFailedToConsumeCandy = "failed to consume candy"
	ErrContextFailedToCheckJackpot = "failed to check jackpot record"
	ErrContextFailedToCountDraws   = "failed to count draws since last jackpot"
	ErrContextFailedToInsertAwards = "failed to insert awards"
	ErrContextFailedToCommitTx     = "failed to commit transaction"
)

// Log messages
const (
	LogMsgDrawCalled             = "Draw called"
	LogMsgFailedToPublishDrawn   = "Failed to publish draw event"
	LogMsgFailedToPublishJackpot = "Failed to publish jackpot event"
)
