package discord

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/candystand/CandyBot_Go/internal/domain"
)

// GachaCommand returns the gacha command definition and handler
func GachaCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "gacha",
		Description: "Spend candy on the gacha",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "draw",
				Description: "Spend 1 candy on a single draw",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "draw10",
				Description: "Spend 10 candy on a ten-pull",
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		sub, _ := getSubcommand(i)

		var title string
		switch sub {
		case "draw":
			title = "🎰 Gacha Draw"
		case "draw10":
			title = "🎰 Gacha Ten-Pull"
		default:
			return
		}

		handleEmbedResponse(s, i, func() (string, error) {
			if i.GuildID == "" {
				return "", fmt.Errorf("this command only works in a server")
			}

			user := getInteractionUser(i)

			var results []DrawResult
			var err error
			if sub == "draw" {
				results, err = client.Draw(i.GuildID, user.ID)
			} else {
				results, err = client.DrawBatch(i.GuildID, user.ID)
			}
			if err != nil {
				return "", err
			}

			return formatDrawResults(results), nil
		}, ResponseConfig{
			Title: title,
			Color: 0x9b59b6, // Purple
		})
	}

	return cmd, handler
}

// formatDrawResults renders draw results as one line per item, with the
// jackpot and the pity charm called out.
func formatDrawResults(results []DrawResult) string {
	var sb strings.Builder
	pity := false
	jackpot := false

	for _, r := range results {
		if r.ItemTier == string(domain.ItemTierJackpot) {
			jackpot = true
			fmt.Fprintf(&sb, "🎉 **%s**: JACKPOT!\n", r.ItemName)
		} else {
			fmt.Fprintf(&sb, "• %s\n", r.ItemName)
		}
		if r.PityTriggered {
			pity = true
		}
	}

	if pity {
		sb.WriteString("\n🕯️ The pity charm kicked in. A jackpot was owed to you.")
	} else if jackpot {
		sb.WriteString("\nThe community jackpot for this year has been claimed!")
	}

	return sb.String()
}
