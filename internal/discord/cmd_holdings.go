package discord

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// HoldingsCommand returns the holdings command definition and handler
func HoldingsCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "holdings",
		Description: "See the items you haven't turned in yet",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func() (string, error) {
			if i.GuildID == "" {
				return "", fmt.Errorf("this command only works in a server")
			}

			user := getInteractionUser(i)
			holdings, err := client.GetHoldings(i.GuildID, user.ID)
			if err != nil {
				return "", err
			}

			if len(holdings) == 0 {
				return "Your bag is empty. Try `/gacha draw`!", nil
			}

			names, err := itemNames(client)
			if err != nil {
				return "", err
			}

			var sb strings.Builder
			for _, h := range holdings {
				name := names[h.ItemID]
				if name == "" {
					name = fmt.Sprintf("Item #%d", h.ItemID)
				}
				fmt.Fprintf(&sb, "**%s** ×%s (oldest melts %s)\n",
					name, formatCount(h.Count), formatExpiry(h.EarliestExpiry))
			}
			return sb.String(), nil
		}, ResponseConfig{
			Title: "🎒 Your Holdings",
			Color: 0x3498db, // Blue
		})
	}

	return cmd, handler
}

// itemNames fetches the catalog and indexes display names by item id.
func itemNames(client *APIClient) (map[int]string, error) {
	items, err := client.GetItems()
	if err != nil {
		return nil, err
	}

	names := make(map[int]string, len(items))
	for _, item := range items {
		names[item.ID] = item.Name
	}
	return names, nil
}
