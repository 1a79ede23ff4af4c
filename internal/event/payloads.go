package event

// Typed event payloads for type safety

// CandyGrantedPayloadV1 is the typed payload for candy granted events
type CandyGrantedPayloadV1 struct {
	GuildID    string `json:"guild_id"`
	GiverID    string `json:"giver_id"`
	ReceiverID string `json:"receiver_id"`
	Tier       string `json:"tier"`
	Count      int    `json:"count"`
}

// GachaDrawnPayloadV1 is the typed payload for draw events. One event is
// published per awarded item, including the jackpot (which additionally
// publishes a GachaJackpot event).
type GachaDrawnPayloadV1 struct {
	GuildID       string `json:"guild_id"`
	UserID        string `json:"user_id"`
	ItemID        int    `json:"item_id"`
	ItemName      string `json:"item_name"`
	ItemTier      string `json:"item_tier"`
	PityTriggered bool   `json:"pity_triggered"`
}

// ExchangeCompletedPayloadV1 is the typed payload for exchange events
type ExchangeCompletedPayloadV1 struct {
	GuildID string `json:"guild_id"`
	UserID  string `json:"user_id"`
	ItemID  int    `json:"item_id"`
	Amount  int    `json:"amount"`
}

// Type-safe event constructors

// NewCandyGrantedEvent creates a new candy granted event
func NewCandyGrantedEvent(guildID, giverID, receiverID, tier string, count int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    CandyGranted,
		Payload: CandyGrantedPayloadV1{
			GuildID:    guildID,
			GiverID:    giverID,
			ReceiverID: receiverID,
			Tier:       tier,
			Count:      count,
		},
	}
}

// NewGachaDrawnEvent creates a new draw event
func NewGachaDrawnEvent(guildID, userID string, itemID int, itemName, itemTier string, pityTriggered bool) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    GachaDrawn,
		Payload: GachaDrawnPayloadV1{
			GuildID:       guildID,
			UserID:        userID,
			ItemID:        itemID,
			ItemName:      itemName,
			ItemTier:      itemTier,
			PityTriggered: pityTriggered,
		},
	}
}

// NewGachaJackpotEvent creates a new jackpot event
func NewGachaJackpotEvent(guildID, userID string, itemID int, itemName string, pityTriggered bool) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    GachaJackpot,
		Payload: GachaDrawnPayloadV1{
			GuildID:       guildID,
			UserID:        userID,
			ItemID:        itemID,
			ItemName:      itemName,
			ItemTier:      "jackpot",
			PityTriggered: pityTriggered,
		},
	}
}

// NewExchangeCompletedEvent creates a new exchange event
func NewExchangeCompletedEvent(guildID, userID string, itemID, amount int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ExchangeCompleted,
		Payload: ExchangeCompletedPayloadV1{
			GuildID: guildID,
			UserID:  userID,
			ItemID:  itemID,
			Amount:  amount,
		},
	}
}
