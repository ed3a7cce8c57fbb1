package client

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/daddeck/daddeck-api/internal/entities"
)

var recipesCmd = &cobra.Command{
	Use:   "recipes",
	Short: "List the crafting recipe table",
	RunE:  runRecipes,
}

func runRecipes(cmd *cobra.Command, args []string) error {
	data, err := doRequest(http.MethodGet, "/v1/crafting/recipes", nil)
	if err != nil {
		return err
	}

	var recipes []*entities.CraftingRecipe
	if err := decodeField(data, "recipes", &recipes); err != nil {
		return err
	}

	for _, recipe := range recipes {
		fmt.Printf("%-22s %d x %-9s -> %-9s  %d%% success\n",
			recipe.ID, recipe.InputCount, recipe.InputRarity, recipe.OutputRarity, recipe.SuccessRate)
	}
	return nil
}
