package engine_test

import (
	"testing"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/stretchr/testify/suite"

	"github.com/daddeck/daddeck-api/internal/catalog"
	"github.com/daddeck/daddeck-api/internal/engine"
	"github.com/daddeck/daddeck-api/internal/entities"
)

type PackRollerTestSuite struct {
	suite.Suite
	catalog *catalog.Catalog
}

func (s *PackRollerTestSuite) SetupSuite() {
	c, err := catalog.New()
	s.Require().NoError(err)
	s.catalog = c
}

func TestPackRollerSuite(t *testing.T) {
	suite.Run(t, new(PackRollerTestSuite))
}

func (s *PackRollerTestSuite) TestStandardPackShape() {
	roller, err := engine.NewPackRoller(dice.DefaultRoller)
	s.Require().NoError(err)

	spec := engine.StandardPackSpec()

	// Run a batch of packs; structural guarantees must hold on every one
	for i := 0; i < 50; i++ {
		cards, err := roller.Generate(s.catalog, spec)
		s.Require().NoError(err)
		s.Require().Len(cards, spec.Size())

		seen := make(map[string]bool)
		for _, pc := range cards {
			s.Assert().False(seen[pc.Card.ID], "duplicate card %s in pack", pc.Card.ID)
			seen[pc.Card.ID] = true
		}

		// Guaranteed common slots
		for slot := 0; slot < 3; slot++ {
			s.Assert().Equal(entities.RarityCommon, cards[slot].Card.Rarity,
				"slot %d should be common", slot+1)
		}

		// Slot 4 is uncommon or better, slot 7 is rare or better
		s.Assert().True(cards[3].Card.Rarity.AtLeast(entities.RarityUncommon),
			"slot 4 got %s", cards[3].Card.Rarity)
		s.Assert().True(cards[6].Card.Rarity.AtLeast(entities.RarityRare),
			"hit slot got %s", cards[6].Card.Rarity)
	}
}

func (s *PackRollerTestSuite) TestPremiumPackShape() {
	roller, err := engine.NewPackRoller(dice.DefaultRoller)
	s.Require().NoError(err)

	spec := engine.PremiumPackSpec()

	for i := 0; i < 50; i++ {
		cards, err := roller.Generate(s.catalog, spec)
		s.Require().NoError(err)
		s.Require().Len(cards, spec.Size())

		s.Assert().True(cards[2].Card.Rarity.AtLeast(entities.RarityUncommon))
		s.Assert().True(cards[6].Card.Rarity.AtLeast(entities.RarityEpic),
			"premium hit slot got %s", cards[6].Card.Rarity)
	}
}

func (s *PackRollerTestSuite) TestHoloRoll() {
	// Holo lands only on the die's maximum face. Script every per-card roll:
	// rarity roll, card pick, holo roll; force the first holo on, rest off.
	script := &scriptedRoller{queue: []int{
		1, 20, // slot 1: card pick, holo hit
	}}
	roller, err := engine.NewPackRoller(script)
	s.Require().NoError(err)

	cards, err := roller.Generate(s.catalog, engine.StandardPackSpec())
	s.Require().NoError(err)
	s.Assert().True(cards[0].Holo)
	for _, pc := range cards[1:] {
		s.Assert().False(pc.Holo)
	}

	_, holos := engine.Summarize(cards)
	s.Assert().Equal(int32(1), holos)
}

func (s *PackRollerTestSuite) TestSummarize() {
	cards := []entities.PackCard{
		{Card: &entities.Card{ID: "a", Rarity: entities.RarityCommon}},
		{Card: &entities.Card{ID: "b", Rarity: entities.RarityLegendary}, Holo: true},
		{Card: &entities.Card{ID: "c", Rarity: entities.RarityRare}, Holo: true},
	}
	best, holos := engine.Summarize(cards)
	s.Assert().Equal(entities.RarityLegendary, best)
	s.Assert().Equal(int32(2), holos)
}

// fakeSource is a tiny CardSource for exercising pool-exhaustion fallback
type fakeSource map[entities.Rarity][]*entities.Card

func (f fakeSource) ByRarity(r entities.Rarity) []*entities.Card {
	return f[r]
}

func mkCard(id string, rarity entities.Rarity) *entities.Card {
	return &entities.Card{
		ID:     id,
		Name:   id,
		Rarity: rarity,
		Type:   entities.DadTypeBBQ,
		Stats:  entities.Stats{Attack: 10, Defense: 10, Speed: 10, Stamina: 10},
	}
}

func (s *PackRollerTestSuite) TestFallbackWhenPoolRunsDry() {
	// Only two commons exist; the third guaranteed-common slot must fall
	// back upward instead of failing, and the pack stays duplicate-free.
	source := fakeSource{
		entities.RarityCommon:    {mkCard("c1", entities.RarityCommon), mkCard("c2", entities.RarityCommon)},
		entities.RarityUncommon:  {mkCard("u1", entities.RarityUncommon), mkCard("u2", entities.RarityUncommon)},
		entities.RarityRare:      {mkCard("r1", entities.RarityRare), mkCard("r2", entities.RarityRare)},
		entities.RarityEpic:      {mkCard("e1", entities.RarityEpic)},
		entities.RarityLegendary: {mkCard("l1", entities.RarityLegendary)},
		entities.RarityMythic:    {mkCard("m1", entities.RarityMythic)},
	}

	roller, err := engine.NewPackRoller(&scriptedRoller{})
	s.Require().NoError(err)

	cards, err := roller.Generate(source, engine.StandardPackSpec())
	s.Require().NoError(err)
	s.Require().Len(cards, 7)

	seen := make(map[string]bool)
	for _, pc := range cards {
		s.Assert().False(seen[pc.Card.ID], "duplicate card %s", pc.Card.ID)
		seen[pc.Card.ID] = true
	}
}

func (s *PackRollerTestSuite) TestGenerateValidation() {
	roller, err := engine.NewPackRoller(&scriptedRoller{})
	s.Require().NoError(err)

	_, err = roller.Generate(nil, engine.StandardPackSpec())
	s.Assert().Error(err)

	_, err = roller.Generate(s.catalog, nil)
	s.Assert().Error(err)

	_, err = engine.NewPackRoller(nil)
	s.Assert().Error(err)
}
