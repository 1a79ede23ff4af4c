package discord

// Friendly message constants for Discord responses
const (
	// Candy
	MsgSelfGrant      = "🍬 **Nice Try!**\nYou can't give candy to yourself."
	MsgDuplicateGrant = "🍬 **Already Counted**\nThat message has already earned candy."
	MsgDailyCap       = "⏳ **Daily Limit Reached**\nYou've handed out all your candy for today."
	MsgMonthlyCap     = "🌟 **Super Candy Spent**\nYou already gave super candy this month."
	MsgNoCandy        = "🎰 **Not Enough Candy**\nDraws cost candy. Go earn some more!"

	// Items & holdings
	MsgItemNotFound   = "❓ **Item Not Found**\nMaybe check the spelling?"
	MsgNotEnoughItems = "🎒 **Not Enough Items**\nYou don't have enough of that item."

	// Storage
	MsgTryAgain = "⏳ **Whoa there!**\nThat clashed with another request. Try again."

	MsgGenericError = "❌ Something went wrong."
)
