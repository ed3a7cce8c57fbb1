package catalog_test

import (
	"testing"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/stretchr/testify/suite"

	"github.com/daddeck/daddeck-api/internal/catalog"
	"github.com/daddeck/daddeck-api/internal/entities"
	"github.com/daddeck/daddeck-api/internal/errors"
)

type CatalogTestSuite struct {
	suite.Suite
	catalog *catalog.Catalog
}

func (s *CatalogTestSuite) SetupTest() {
	c, err := catalog.New()
	s.Require().NoError(err)
	s.catalog = c
}

func TestCatalogSuite(t *testing.T) {
	suite.Run(t, new(CatalogTestSuite))
}

func (s *CatalogTestSuite) TestEmbeddedSetLoads() {
	s.Assert().Greater(s.catalog.Size(), 30)

	// Every rarity tier needs stock for the pack generator
	for _, rarity := range entities.Rarities() {
		s.Assert().NotEmpty(s.catalog.ByRarity(rarity), "no cards of rarity %s", rarity)
	}

	// Enough commons to fill guaranteed slots without duplicates
	s.Assert().GreaterOrEqual(len(s.catalog.ByRarity(entities.RarityCommon)), 7)
}

func (s *CatalogTestSuite) TestGet() {
	card, err := s.catalog.Get("bbq_dad_001")
	s.Require().NoError(err)
	s.Assert().Equal("Grillmaster Gary", card.Name)
	s.Assert().Equal(entities.RarityCommon, card.Rarity)
	s.Assert().Equal(entities.DadTypeBBQ, card.Type)

	_, err = s.catalog.Get("no_such_dad")
	s.Assert().True(errors.IsNotFound(err))

	_, err = s.catalog.Get("")
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *CatalogTestSuite) TestListFilters() {
	out, err := s.catalog.List(catalog.ListInput{Rarity: entities.RarityMythic})
	s.Require().NoError(err)
	s.Assert().Len(out.Cards, out.Pagination.TotalCards)
	for _, card := range out.Cards {
		s.Assert().Equal(entities.RarityMythic, card.Rarity)
	}

	out, err = s.catalog.List(catalog.ListInput{Type: entities.DadTypeLawn})
	s.Require().NoError(err)
	for _, card := range out.Cards {
		s.Assert().Equal(entities.DadTypeLawn, card.Type)
	}

	out, err = s.catalog.List(catalog.ListInput{Search: "grillmaster"})
	s.Require().NoError(err)
	s.Require().Len(out.Cards, 1)
	s.Assert().Equal("bbq_dad_001", out.Cards[0].ID)

	// flavor text is searched too
	out, err = s.catalog.List(catalog.ListInput{Search: "medium rare"})
	s.Require().NoError(err)
	s.Require().Len(out.Cards, 1)
	s.Assert().Equal("bbq_dad_001", out.Cards[0].ID)

	_, err = s.catalog.List(catalog.ListInput{Rarity: "ultra"})
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *CatalogTestSuite) TestListPagination() {
	out, err := s.catalog.List(catalog.ListInput{Page: 1, PageSize: 10})
	s.Require().NoError(err)
	s.Assert().Len(out.Cards, 10)
	s.Assert().True(out.Pagination.HasNext)
	s.Assert().Equal(s.catalog.Size(), out.Pagination.TotalCards)

	last := out.Pagination.TotalPages
	out, err = s.catalog.List(catalog.ListInput{Page: last, PageSize: 10})
	s.Require().NoError(err)
	s.Assert().False(out.Pagination.HasNext)
	s.Assert().NotEmpty(out.Cards)

	// Past the end is an empty page, not an error
	out, err = s.catalog.List(catalog.ListInput{Page: last + 5, PageSize: 10})
	s.Require().NoError(err)
	s.Assert().Empty(out.Cards)
}

func (s *CatalogTestSuite) TestRandomNoDuplicates() {
	drawn, err := s.catalog.Random(dice.DefaultRoller, catalog.RandomInput{Count: 10})
	s.Require().NoError(err)
	s.Require().Len(drawn, 10)

	seen := make(map[string]bool)
	for _, card := range drawn {
		s.Assert().False(seen[card.ID], "duplicate card %s", card.ID)
		seen[card.ID] = true
	}
}

func (s *CatalogTestSuite) TestRandomFiltersAndExclusions() {
	mythics := s.catalog.ByRarity(entities.RarityMythic)
	s.Require().NotEmpty(mythics)

	exclude := []string{mythics[0].ID}
	drawn, err := s.catalog.Random(dice.DefaultRoller, catalog.RandomInput{
		Count:   len(mythics) - 1,
		Rarity:  entities.RarityMythic,
		Exclude: exclude,
	})
	s.Require().NoError(err)
	for _, card := range drawn {
		s.Assert().Equal(entities.RarityMythic, card.Rarity)
		s.Assert().NotEqual(exclude[0], card.ID)
	}

	// Asking for more than the filtered pool holds fails cleanly
	_, err = s.catalog.Random(dice.DefaultRoller, catalog.RandomInput{
		Count:  len(mythics) + 1,
		Rarity: entities.RarityMythic,
	})
	s.Assert().True(errors.IsFailedPrecondition(err))
}

func (s *CatalogTestSuite) TestRandomValidation() {
	_, err := s.catalog.Random(dice.DefaultRoller, catalog.RandomInput{Count: 0})
	s.Assert().True(errors.IsInvalidArgument(err))

	_, err = s.catalog.Random(dice.DefaultRoller, catalog.RandomInput{Count: 11})
	s.Assert().True(errors.IsInvalidArgument(err))

	_, err = s.catalog.Random(nil, catalog.RandomInput{Count: 1})
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *CatalogTestSuite) TestSeriesView() {
	view, err := s.catalog.SeriesView(2)
	s.Require().NoError(err)

	total := 0
	for _, rarity := range entities.Rarities() {
		for _, card := range view.ByRarity(rarity) {
			s.Assert().Equal(int32(2), card.Series)
			total++
		}
	}
	s.Assert().Positive(total)

	// Series 2 carries no mythics; the view just returns an empty pool
	s.Assert().Empty(view.ByRarity(entities.RarityMythic))

	_, err = s.catalog.SeriesView(99)
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *CatalogTestSuite) TestLoadRejectsBadData() {
	testCases := []struct {
		name string
		data string
	}{
		{"malformed json", `{"cards": [`},
		{"empty set", `{"cards": []}`},
		{
			"unknown rarity",
			`{"cards": [{"id": "x", "name": "X", "rarity": "ultra", "type": "bbq",
				"stats": {"attack": 1, "defense": 1, "speed": 1, "stamina": 1}, "series": 1}]}`,
		},
		{
			"stat out of range",
			`{"cards": [{"id": "x", "name": "X", "rarity": "common", "type": "bbq",
				"stats": {"attack": 101, "defense": 1, "speed": 1, "stamina": 1}, "series": 1}]}`,
		},
		{
			"duplicate ids",
			`{"cards": [
				{"id": "x", "name": "X", "rarity": "common", "type": "bbq",
					"stats": {"attack": 1, "defense": 1, "speed": 1, "stamina": 1}, "series": 1},
				{"id": "x", "name": "X2", "rarity": "common", "type": "bbq",
					"stats": {"attack": 1, "defense": 1, "speed": 1, "stamina": 1}, "series": 1}
			]}`,
		},
		{
			"ability with bad chance",
			`{"cards": [{"id": "x", "name": "X", "rarity": "common", "type": "bbq",
				"stats": {"attack": 1, "defense": 1, "speed": 1, "stamina": 1}, "series": 1,
				"abilities": [{"name": "A", "effect": "burn", "target": "opponent", "chance": 0, "duration": 1}]}]}`,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := catalog.Load([]byte(tc.data))
			s.Assert().Error(err)
		})
	}
}
