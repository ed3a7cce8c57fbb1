package client

import (
	"fmt"
	"net/http"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/daddeck/daddeck-api/internal/entities"
)

var (
	packPlayer string
	packType   string
	packCount  int32
	packDesign string
	packSeries int32
)

var openPackCmd = &cobra.Command{
	Use:   "open-pack",
	Short: "Open card packs for a player",
	RunE:  runOpenPack,
}

func init() {
	openPackCmd.Flags().StringVar(&packPlayer, "player", "", "player ID (required)")
	openPackCmd.Flags().StringVar(&packType, "type", "standard", "pack type: standard or premium")
	openPackCmd.Flags().Int32Var(&packCount, "count", 1, "packs to open")
	openPackCmd.Flags().StringVar(&packDesign, "design", "", "pack design: classic, retro, or foil")
	openPackCmd.Flags().Int32Var(&packSeries, "series", 0, "restrict pulls to a card series")
	_ = openPackCmd.MarkFlagRequired("player")
}

func runOpenPack(cmd *cobra.Command, args []string) error {
	body := map[string]any{
		"playerId": packPlayer,
		"type":     packType,
		"count":    packCount,
	}
	if packDesign != "" {
		body["design"] = packDesign
	}
	if packSeries != 0 {
		body["series"] = packSeries
	}

	data, err := doRequest(http.MethodPost, "/v1/packs/generate", body)
	if err != nil {
		return err
	}

	var packs []*entities.Pack
	if err := decodeField(data, "packs", &packs); err != nil {
		return err
	}

	for i, pack := range packs {
		color.White("Pack %d/%d (%s, best pull: %s):", i+1, len(packs), pack.Type, pack.BestRarity)
		for _, pc := range pack.Cards {
			printCard(pc.Card, pc.Holo)
		}
	}

	var badges []entities.Badge
	if err := decodeField(data, "awardedBadges", &badges); err == nil && len(badges) > 0 {
		for _, badge := range badges {
			color.Yellow("🏅 Badge earned: %s", badge.Name)
		}
	}

	fmt.Println()
	return nil
}
