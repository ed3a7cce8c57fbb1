package client

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/daddeck/daddeck-api/internal/orchestrators/collection"
)

var (
	collectionSort  string
	collectionOrder string
)

var collectionCmd = &cobra.Command{
	Use:   "collection <player-id>",
	Short: "Show a player's collection",
	Args:  cobra.ExactArgs(1),
	RunE:  runCollection,
}

func init() {
	collectionCmd.Flags().StringVar(&collectionSort, "sort", "rarity", "sort field: rarity, name, or date")
	collectionCmd.Flags().StringVar(&collectionOrder, "order", "", "sort direction: asc or desc")
}

func runCollection(cmd *cobra.Command, args []string) error {
	query := url.Values{"sortBy": {collectionSort}}
	if collectionOrder != "" {
		query.Set("sortOrder", collectionOrder)
	}

	data, err := doRequest(http.MethodGet, "/v1/collections/"+args[0]+"?"+query.Encode(), nil)
	if err != nil {
		return err
	}

	var entries []*collection.Entry
	if err := decodeField(data, "entries", &entries); err != nil {
		return err
	}
	var total, unique int32
	var score int64
	_ = decodeField(data, "totalCards", &total)
	_ = decodeField(data, "uniqueCards", &unique)
	_ = decodeField(data, "score", &score)

	fmt.Printf("Collection for %s: %d cards (%d unique), score %d\n", args[0], total, unique, score)
	for _, entry := range entries {
		printCard(entry.Card, entry.Holo)
		if entry.Count > 1 {
			fmt.Printf("      x%d\n", entry.Count)
		}
	}
	return nil
}
