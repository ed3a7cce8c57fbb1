package engine

import (
	"math"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/daddeck/daddeck-api/internal/entities"
	"github.com/daddeck/daddeck-api/internal/errors"
)

// recipes is the fixed crafting table: five cards of a tier craft up to the
// next tier, with success rates dropping as the tiers climb.
var recipes = []*entities.CraftingRecipe{
	{
		ID:             "common_to_uncommon",
		InputRarity:    entities.RarityCommon,
		InputCount:     5,
		OutputRarity:   entities.RarityUncommon,
		OutputCount:    1,
		SuccessRate:    90,
		FailReturnRate: 0.5,
	},
	{
		ID:             "uncommon_to_rare",
		InputRarity:    entities.RarityUncommon,
		InputCount:     5,
		OutputRarity:   entities.RarityRare,
		OutputCount:    1,
		SuccessRate:    75,
		FailReturnRate: 0.5,
	},
	{
		ID:             "rare_to_epic",
		InputRarity:    entities.RarityRare,
		InputCount:     5,
		OutputRarity:   entities.RarityEpic,
		OutputCount:    1,
		SuccessRate:    60,
		FailReturnRate: 0.4,
	},
	{
		ID:             "epic_to_legendary",
		InputRarity:    entities.RarityEpic,
		InputCount:     5,
		OutputRarity:   entities.RarityLegendary,
		OutputCount:    1,
		SuccessRate:    45,
		FailReturnRate: 0.4,
	},
	{
		ID:             "legendary_to_mythic",
		InputRarity:    entities.RarityLegendary,
		InputCount:     5,
		OutputRarity:   entities.RarityMythic,
		OutputCount:    1,
		SuccessRate:    30,
		FailReturnRate: 0.25,
	},
}

// Recipes returns the full crafting table
func Recipes() []*entities.CraftingRecipe {
	return recipes
}

// RecipeByID looks up a recipe
func RecipeByID(id string) (*entities.CraftingRecipe, error) {
	for _, r := range recipes {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, errors.NotFoundf("recipe with ID %s not found", id)
}

// CraftOutcome is the result of resolving one craft
type CraftOutcome struct {
	Success     bool
	ConsumedIDs []string
	ReturnedIDs []string
}

// CraftResolver rolls crafting attempts
type CraftResolver struct {
	roller dice.Roller
}

// NewCraftResolver creates a craft resolver using the given dice roller
func NewCraftResolver(roller dice.Roller) (*CraftResolver, error) {
	if roller == nil {
		return nil, errors.InvalidArgument("roller is required")
	}
	return &CraftResolver{roller: roller}, nil
}

// Resolve rolls a single success check for the recipe over the selected
// inputs. On success all inputs are consumed. On failure a floor-rounded
// fraction of the inputs is returned, chosen at random; the rest are
// consumed.
func (c *CraftResolver) Resolve(recipe *entities.CraftingRecipe, inputIDs []string) (*CraftOutcome, error) {
	if recipe == nil {
		return nil, errors.InvalidArgument("recipe is required")
	}
	if int32(len(inputIDs)) != recipe.InputCount {
		return nil, errors.InvalidArgumentf(
			"recipe %s needs %d inputs, got %d", recipe.ID, recipe.InputCount, len(inputIDs))
	}

	roll, err := c.roller.Roll(100)
	if err != nil {
		return nil, errors.Wrap(err, "failed to roll craft check")
	}

	if int32(roll) <= recipe.SuccessRate {
		consumed := make([]string, len(inputIDs))
		copy(consumed, inputIDs)
		return &CraftOutcome{Success: true, ConsumedIDs: consumed}, nil
	}

	returnCount := int(math.Floor(recipe.FailReturnRate * float64(len(inputIDs))))
	if returnCount > len(inputIDs) {
		returnCount = len(inputIDs)
	}

	remaining := make([]string, len(inputIDs))
	copy(remaining, inputIDs)

	returned := make([]string, 0, returnCount)
	for i := 0; i < returnCount; i++ {
		pick, err := c.roller.Roll(len(remaining))
		if err != nil {
			return nil, errors.Wrap(err, "failed to roll return pick")
		}
		idx := pick - 1
		returned = append(returned, remaining[idx])
		remaining = append(remaining[:idx], remaining[idx+1:]...)
	}

	return &CraftOutcome{
		Success:     false,
		ConsumedIDs: remaining,
		ReturnedIDs: returned,
	}, nil
}
