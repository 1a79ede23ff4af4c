package domain

// Grant policy defaults. These are the community-wide rules; they are not
// configurable per guild.
const (
	// DailyNormalGrantCap is the maximum normal-tier units one giver may
	// grant per local day.
	DailyNormalGrantCap = 3

	// SuperGrantBatchSize is the number of units a single super grant creates.
	SuperGrantBatchSize = 3
)

// Draw policy defaults.
const (
	// PityThreshold forces the jackpot on the Nth consecutive non-jackpot
	// draw since the member's last jackpot, when the member is still
	// jackpot-eligible this year.
	PityThreshold = 150

	// DrawBatchSize is the number of draws a batch draw performs.
	DrawBatchSize = 10
)
