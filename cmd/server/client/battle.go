package client

import (
	"fmt"
	"net/http"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/daddeck/daddeck-api/internal/engine"
	"github.com/daddeck/daddeck-api/internal/entities"
)

var (
	battlePlayer   string
	battleCard     string
	battleOpponent string
	battleVerbose  bool
)

var battleCmd = &cobra.Command{
	Use:   "battle",
	Short: "Simulate a battle with an owned card",
	RunE:  runBattle,
}

func init() {
	battleCmd.Flags().StringVar(&battlePlayer, "player", "", "player ID (required)")
	battleCmd.Flags().StringVar(&battleCard, "card", "", "owned card ID (required)")
	battleCmd.Flags().StringVar(&battleOpponent, "opponent", "", "opponent card ID, random when empty")
	battleCmd.Flags().BoolVar(&battleVerbose, "verbose", false, "print the full battle log")
	_ = battleCmd.MarkFlagRequired("player")
	_ = battleCmd.MarkFlagRequired("card")
}

func runBattle(cmd *cobra.Command, args []string) error {
	data, err := doRequest(http.MethodPost, "/v1/battles/simulate", map[string]any{
		"playerId":       battlePlayer,
		"cardId":         battleCard,
		"opponentCardId": battleOpponent,
	})
	if err != nil {
		return err
	}

	var result engine.BattleResult
	if err := decodeField(data, "result", &result); err != nil {
		return err
	}
	var playerCard, opponentCard entities.Card
	if err := decodeField(data, "playerCard", &playerCard); err != nil {
		return err
	}
	if err := decodeField(data, "opponentCard", &opponentCard); err != nil {
		return err
	}

	fmt.Printf("%s vs %s (%d turns)\n", playerCard.Name, opponentCard.Name, result.Turns)

	if battleVerbose {
		for _, entry := range result.Log {
			fmt.Printf("  turn %2d  %-12s %-14s %d\n",
				entry.Turn, entry.CardID, entry.Event, entry.Amount)
		}
	}

	switch {
	case result.Draw:
		color.Yellow("Draw after %d turns", result.Turns)
	case result.WinnerID == playerCard.ID:
		color.Green("%s wins! (HP left: %d)", playerCard.Name, result.RemainingHP[playerCard.ID])
	default:
		color.Red("%s loses to %s (HP left: %d)",
			playerCard.Name, opponentCard.Name, result.RemainingHP[opponentCard.ID])
	}
	return nil
}
