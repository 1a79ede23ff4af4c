package discord

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/candystand/CandyBot_Go/internal/handler"
)

// ExchangeCommand returns the exchange command definition and handler
func ExchangeCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "exchange",
		Description: "Turn in items you drew from the gacha",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "item",
				Description: "Item name to turn in",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "amount",
				Description: "How many to turn in (default: 1)",
				Required:    false,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func() (string, error) {
			if i.GuildID == "" {
				return "", fmt.Errorf("this command only works in a server")
			}

			user := getInteractionUser(i)
			options := getOptions(i)
			if len(options) == 0 {
				return "", fmt.Errorf("missing required item argument")
			}

			itemName := options[0].StringValue()
			amount := 1
			if len(options) > 1 {
				amount = int(options[1].IntValue())
			}

			item, err := findItemByName(client, itemName)
			if err != nil {
				return "", err
			}

			result, err := client.Exchange(i.GuildID, user.ID, item.ID, amount)
			if err != nil {
				return "", err
			}

			return fmt.Sprintf("Turned in **%d× %s**.", result.Consumed, item.Name), nil
		}, ResponseConfig{
			Title: "🔁 Exchange Complete",
			Color: 0x2ecc71, // Green
		})
	}

	return cmd, handler
}

// findItemByName resolves a catalog item by case-insensitive name match.
func findItemByName(client *APIClient, name string) (*CatalogItem, error) {
	items, err := client.GetItems()
	if err != nil {
		return nil, err
	}

	for idx := range items {
		if strings.EqualFold(items[idx].Name, name) {
			return &items[idx], nil
		}
	}

	return nil, errors.New(handler.ErrMsgItemNotFoundError)
}
