package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// CandyCommand returns the candy command definition and handler
func CandyCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "candy",
		Description: "Candy ledger",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "balance",
				Description: "Check your spendable candy",
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		sub, _ := getSubcommand(i)
		if sub != "balance" {
			return
		}

		handleEmbedResponse(s, i, func() (string, error) {
			if i.GuildID == "" {
				return "", fmt.Errorf("this command only works in a server")
			}

			user := getInteractionUser(i)
			balance, err := client.GetBalance(i.GuildID, user.ID)
			if err != nil {
				return "", err
			}

			if balance.Balance == 0 {
				return "You have no candy right now. React to good messages to hand some out, and earn some yourself!", nil
			}

			msg := fmt.Sprintf("You have **%s** candy.", formatCount(balance.Balance))
			if balance.EarliestExpiry != nil {
				msg += fmt.Sprintf("\nYour oldest candy melts %s.", formatExpiry(*balance.EarliestExpiry))
			}
			return msg, nil
		}, ResponseConfig{
			Title: "🍬 Candy Balance",
			Color: 0xe91e63, // Pink
		})
	}

	return cmd, handler
}
