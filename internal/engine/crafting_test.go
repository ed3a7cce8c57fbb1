package engine_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/daddeck/daddeck-api/internal/engine"
	"github.com/daddeck/daddeck-api/internal/entities"
)

type CraftingTestSuite struct {
	suite.Suite
}

func TestCraftingSuite(t *testing.T) {
	suite.Run(t, new(CraftingTestSuite))
}

func (s *CraftingTestSuite) TestRecipeTableCoversEveryTier() {
	table := engine.Recipes()
	s.Require().Len(table, 5)

	// Each recipe climbs exactly one tier and the table chains from
	// common all the way to mythic.
	next := entities.RarityCommon
	for _, recipe := range table {
		s.Assert().Equal(next, recipe.InputRarity, recipe.ID)
		up, ok := recipe.InputRarity.Next()
		s.Require().True(ok)
		s.Assert().Equal(up, recipe.OutputRarity, recipe.ID)
		s.Assert().Equal(int32(5), recipe.InputCount, recipe.ID)
		s.Assert().Equal(int32(1), recipe.OutputCount, recipe.ID)
		next = recipe.OutputRarity
	}
	s.Assert().Equal(entities.RarityMythic, next)
}

func (s *CraftingTestSuite) TestRecipeByID() {
	recipe, err := engine.RecipeByID("rare_to_epic")
	s.Require().NoError(err)
	s.Assert().Equal(entities.RarityRare, recipe.InputRarity)
	s.Assert().Equal(entities.RarityEpic, recipe.OutputRarity)
	s.Assert().Equal(int32(60), recipe.SuccessRate)

	_, err = engine.RecipeByID("lead_to_gold")
	s.Assert().Error(err)
}

func (s *CraftingTestSuite) TestResolveSuccessOnBoundaryRoll() {
	recipe, err := engine.RecipeByID("rare_to_epic")
	s.Require().NoError(err)

	// A roll equal to the success rate still succeeds
	resolver, err := engine.NewCraftResolver(&scriptedRoller{queue: []int{60}})
	s.Require().NoError(err)

	inputs := []string{"c1", "c2", "c3", "c4", "c5"}
	outcome, err := resolver.Resolve(recipe, inputs)
	s.Require().NoError(err)

	s.Assert().True(outcome.Success)
	s.Assert().ElementsMatch(inputs, outcome.ConsumedIDs)
	s.Assert().Empty(outcome.ReturnedIDs)
}

func (s *CraftingTestSuite) TestResolveFailureReturnsFlooredFraction() {
	recipe, err := engine.RecipeByID("rare_to_epic")
	s.Require().NoError(err)

	// Fail the check by one, then pick the first remaining card twice:
	// floor(0.4 * 5) = 2 materials come back.
	resolver, err := engine.NewCraftResolver(&scriptedRoller{queue: []int{61, 1, 1}})
	s.Require().NoError(err)

	inputs := []string{"c1", "c2", "c3", "c4", "c5"}
	outcome, err := resolver.Resolve(recipe, inputs)
	s.Require().NoError(err)

	s.Assert().False(outcome.Success)
	s.Assert().Equal([]string{"c1", "c2"}, outcome.ReturnedIDs)
	s.Assert().ElementsMatch([]string{"c3", "c4", "c5"}, outcome.ConsumedIDs)
}

func (s *CraftingTestSuite) TestResolveFailureLegendaryReturnsOne() {
	recipe, err := engine.RecipeByID("legendary_to_mythic")
	s.Require().NoError(err)

	// floor(0.25 * 5) = 1
	resolver, err := engine.NewCraftResolver(&scriptedRoller{queue: []int{99, 3}})
	s.Require().NoError(err)

	outcome, err := resolver.Resolve(recipe, []string{"l1", "l2", "l3", "l4", "l5"})
	s.Require().NoError(err)

	s.Assert().False(outcome.Success)
	s.Assert().Equal([]string{"l3"}, outcome.ReturnedIDs)
	s.Assert().ElementsMatch([]string{"l1", "l2", "l4", "l5"}, outcome.ConsumedIDs)
}

func (s *CraftingTestSuite) TestResolveValidation() {
	recipe, err := engine.RecipeByID("common_to_uncommon")
	s.Require().NoError(err)

	resolver, err := engine.NewCraftResolver(&scriptedRoller{})
	s.Require().NoError(err)

	_, err = resolver.Resolve(recipe, []string{"c1", "c2"})
	s.Assert().Error(err, "wrong input count")

	_, err = resolver.Resolve(nil, []string{"c1", "c2", "c3", "c4", "c5"})
	s.Assert().Error(err)

	_, err = engine.NewCraftResolver(nil)
	s.Assert().Error(err)
}
