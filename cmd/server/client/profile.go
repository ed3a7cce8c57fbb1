package client

import (
	"fmt"
	"net/http"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/daddeck/daddeck-api/internal/entities"
)

var profileCmd = &cobra.Command{
	Use:   "profile <player-id>",
	Short: "Show a player's profile, stats, and badges",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfile,
}

func runProfile(cmd *cobra.Command, args []string) error {
	data, err := doRequest(http.MethodGet, "/v1/profiles/"+args[0], nil)
	if err != nil {
		return err
	}

	var prof entities.PlayerProfile
	if err := decodeField(data, "profile", &prof); err != nil {
		return err
	}
	var rank, score int64
	_ = decodeField(data, "rank", &rank)
	_ = decodeField(data, "score", &score)

	name := prof.DisplayName
	if name == "" {
		name = prof.PlayerID
	}
	color.White("%s", name)
	if prof.Bio != "" {
		fmt.Printf("  %s\n", prof.Bio)
	}
	if rank > 0 {
		fmt.Printf("  Leaderboard: rank %d, score %d\n", rank, score)
	}

	stats := prof.Stats
	fmt.Printf("  Packs opened: %d  Cards collected: %d  Holos: %d  Mythics: %d\n",
		stats.PacksOpened, stats.CardsCollected, stats.HolosPulled, stats.MythicsPulled)
	fmt.Printf("  Battles: %d won / %d lost  Crafts: %d ok / %d failed\n",
		stats.BattlesWon, stats.BattlesLost, stats.CraftsSucceeded, stats.CraftsFailed)

	for _, badge := range prof.Badges {
		color.Yellow("  🏅 %s", badge.Name)
	}
	return nil
}
