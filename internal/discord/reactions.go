package discord

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/candystand/CandyBot_Go/internal/domain"
)

// handleReactionGrant turns candy-emoji reactions into grant requests.
// The message reacted to is the grant origin: its author receives the candy
// and its id deduplicates repeat reactions across restarts and retries.
func (b *Bot) handleReactionGrant(s *discordgo.Session, r *discordgo.MessageReactionAdd) {
	// DMs have no guild scope
	if r.GuildID == "" {
		return
	}

	tier, ok := b.grantTier(r.Emoji.Name)
	if !ok {
		return
	}

	msg, err := s.ChannelMessage(r.ChannelID, r.MessageID)
	if err != nil {
		slog.Warn("Failed to fetch reacted message", "error", err, "message_id", r.MessageID)
		return
	}
	if msg.Author == nil || msg.Author.Bot {
		return
	}
	// The API rejects self-grants too; skipping here avoids the round trip
	if msg.Author.ID == r.UserID {
		return
	}

	result, err := b.Client.GrantCandy(r.GuildID, r.UserID, msg.Author.ID, r.MessageID, string(tier))
	if err != nil {
		// Caps and duplicates are routine; only log unexpected failures loudly
		if strings.HasPrefix(err.Error(), "API error: ") {
			slog.Debug("Grant rejected", "error", err, "giver", r.UserID, "tier", tier)
		} else {
			slog.Warn("Grant failed", "error", err, "giver", r.UserID, "tier", tier)
		}
		return
	}

	slog.Info("Candy granted",
		"guild", r.GuildID,
		"giver", r.UserID,
		"receiver", msg.Author.ID,
		"tier", result.Tier,
		"granted", result.Granted)

	// Super grants are rare enough to celebrate in-channel
	if tier == domain.CandyTierSuper {
		giver := b.Names.DisplayName(s, r.GuildID, r.UserID)
		receiver := b.Names.DisplayName(s, r.GuildID, msg.Author.ID)
		announcement := fmt.Sprintf("🌟 **%s** gave **%s** super candy! (+%d)", giver, receiver, result.Granted)
		if _, err := s.ChannelMessageSend(r.ChannelID, announcement); err != nil {
			slog.Warn("Failed to announce super grant", "error", err)
		}
	}
}

// grantTier maps a reaction emoji to a candy tier.
func (b *Bot) grantTier(emojiName string) (domain.CandyTier, bool) {
	switch emojiName {
	case b.CandyEmoji:
		return domain.CandyTierNormal, true
	case b.SuperEmoji:
		return domain.CandyTierSuper, true
	default:
		return "", false
	}
}
