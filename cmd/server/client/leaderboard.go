package client

import (
	"fmt"
	"net/http"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/daddeck/daddeck-api/internal/orchestrators/profile"
)

var leaderboardLimit int64

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show the top collection scores",
	RunE:  runLeaderboard,
}

func init() {
	leaderboardCmd.Flags().Int64Var(&leaderboardLimit, "limit", 10, "entries to show")
}

func runLeaderboard(cmd *cobra.Command, args []string) error {
	data, err := doRequest(http.MethodGet, fmt.Sprintf("/v1/leaderboard?limit=%d", leaderboardLimit), nil)
	if err != nil {
		return err
	}

	var rows []*profile.LeaderboardRow
	if err := decodeField(data, "entries", &rows); err != nil {
		return err
	}

	for _, row := range rows {
		name := row.DisplayName
		if name == "" {
			name = row.PlayerID
		}
		line := fmt.Sprintf("%3d. %-24s %d", row.Rank, name, row.Score)
		switch row.Rank {
		case 1:
			color.Yellow("%s", line)
		case 2, 3:
			color.Cyan("%s", line)
		default:
			fmt.Println(line)
		}
	}
	return nil
}
