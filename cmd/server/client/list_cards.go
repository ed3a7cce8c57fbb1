package client

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/daddeck/daddeck-api/internal/entities"
)

var (
	listRarity   string
	listType     string
	listSearch   string
	listPage     int
	listPageSize int
)

var listCardsCmd = &cobra.Command{
	Use:   "list-cards",
	Short: "List catalog cards with optional filters",
	RunE:  runListCards,
}

func init() {
	listCardsCmd.Flags().StringVar(&listRarity, "rarity", "", "filter by rarity")
	listCardsCmd.Flags().StringVar(&listType, "type", "", "filter by dad type")
	listCardsCmd.Flags().StringVar(&listSearch, "search", "", "search name and flavor text")
	listCardsCmd.Flags().IntVar(&listPage, "page", 1, "page number")
	listCardsCmd.Flags().IntVar(&listPageSize, "page-size", 20, "cards per page")
}

func runListCards(cmd *cobra.Command, args []string) error {
	query := url.Values{}
	if listRarity != "" {
		query.Set("rarity", listRarity)
	}
	if listType != "" {
		query.Set("type", listType)
	}
	if listSearch != "" {
		query.Set("search", listSearch)
	}
	query.Set("page", fmt.Sprint(listPage))
	query.Set("pageSize", fmt.Sprint(listPageSize))

	data, err := doRequest(http.MethodGet, "/v1/cards?"+query.Encode(), nil)
	if err != nil {
		return err
	}

	var cards []*entities.Card
	if err := decodeField(data, "cards", &cards); err != nil {
		return err
	}

	fmt.Printf("Found %d cards:\n", len(cards))
	for _, card := range cards {
		printCard(card, false)
	}
	return nil
}
