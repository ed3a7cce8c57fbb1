package client

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/daddeck/daddeck-api/internal/entities"
)

var getCardCmd = &cobra.Command{
	Use:   "get-card <card-id>",
	Short: "Show a single card",
	Args:  cobra.ExactArgs(1),
	RunE:  runGetCard,
}

func runGetCard(cmd *cobra.Command, args []string) error {
	data, err := doRequest(http.MethodGet, "/v1/cards/"+args[0], nil)
	if err != nil {
		return err
	}

	var card entities.Card
	if err := decodeField(data, "card", &card); err != nil {
		return err
	}

	printCard(&card, false)
	if card.FlavorText != "" {
		fmt.Printf("      %q\n", card.FlavorText)
	}
	for _, ability := range card.Abilities {
		fmt.Printf("      Ability: %s (%s on %s, %d%%, %d turns)\n",
			ability.Name, ability.Effect, ability.Target, ability.Chance, ability.Duration)
	}
	return nil
}
