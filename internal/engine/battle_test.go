package engine_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/daddeck/daddeck-api/internal/engine"
	"github.com/daddeck/daddeck-api/internal/entities"
)

type BattleTestSuite struct {
	suite.Suite
}

func TestBattleSuite(t *testing.T) {
	suite.Run(t, new(BattleTestSuite))
}

func battleCard(id string, dadType entities.DadType, stats entities.Stats, abilities ...entities.Ability) *entities.Card {
	return &entities.Card{
		ID:        id,
		Name:      id,
		Rarity:    entities.RarityCommon,
		Type:      dadType,
		Stats:     stats,
		Abilities: abilities,
	}
}

func (s *BattleTestSuite) TestDamageFormulaAndTypeAdvantage() {
	// bbq beats lawn: x attacks with advantage, y attacks with disadvantage.
	// Scripted swing rolls of 5 cancel the swing (5 - 5 = 0).
	x := battleCard("x", entities.DadTypeBBQ,
		entities.Stats{Attack: 40, Defense: 20, Speed: 50, Stamina: 50})
	y := battleCard("y", entities.DadTypeLawn,
		entities.Stats{Attack: 30, Defense: 30, Speed: 40, Stamina: 50})

	sim, err := engine.NewSimulator(&scriptedRoller{})
	s.Require().NoError(err)

	result, err := sim.Simulate(x, y)
	s.Require().NoError(err)

	// x is faster so it attacks first: (40 - 30/2 + 0) * 1.5 = 37
	s.Require().GreaterOrEqual(len(result.Log), 2)
	first := result.Log[0]
	s.Assert().Equal(engine.EventAttack, first.Event)
	s.Assert().Equal("x", first.CardID)
	s.Assert().Equal(int32(37), first.Amount)

	// y hits back at a disadvantage: (30 - 20/2 + 0) * 0.75 = 15
	second := result.Log[1]
	s.Assert().Equal(engine.EventAttack, second.Event)
	s.Assert().Equal("y", second.CardID)
	s.Assert().Equal(int32(15), second.Amount)

	// x out-damages y and must win before the cap
	s.Assert().Equal("x", result.WinnerID)
	s.Assert().False(result.Draw)
	s.Assert().Equal(int32(0), result.RemainingHP["y"])
}

func (s *BattleTestSuite) TestMinimumDamageFloor() {
	weak := battleCard("weak", entities.DadTypeBBQ,
		entities.Stats{Attack: 0, Defense: 100, Speed: 60, Stamina: 10})
	tank := battleCard("tank", entities.DadTypeBBQ,
		entities.Stats{Attack: 0, Defense: 100, Speed: 40, Stamina: 10})

	sim, err := engine.NewSimulator(&scriptedRoller{})
	s.Require().NoError(err)

	result, err := sim.Simulate(weak, tank)
	s.Require().NoError(err)

	for _, entry := range result.Log {
		if entry.Event == engine.EventAttack {
			s.Assert().Equal(int32(1), entry.Amount, "landed hits always do at least 1")
		}
	}
}

func (s *BattleTestSuite) TestStunSkipsExactlyOneTurn() {
	stunner := battleCard("stunner", entities.DadTypeBBQ,
		entities.Stats{Attack: 10, Defense: 50, Speed: 50, Stamina: 100},
		entities.Ability{Name: "Dad Joke", Effect: entities.EffectStun, Target: entities.TargetOpponent, Chance: 100, Duration: 1},
	)
	victim := battleCard("victim", entities.DadTypeBBQ,
		entities.Stats{Attack: 10, Defense: 50, Speed: 10, Stamina: 100})

	sim, err := engine.NewSimulator(&scriptedRoller{})
	s.Require().NoError(err)

	result, err := sim.Simulate(stunner, victim)
	s.Require().NoError(err)

	// Turn 1: stunner attacks and always lands the stun. Turn 2: victim
	// skips. The stun expires as it is consumed, so if the stunner lands
	// it again the victim only ever skips, never acts twice in a row.
	var sawSkip bool
	for _, entry := range result.Log {
		if entry.Event == engine.EventStunSkip {
			sawSkip = true
			s.Assert().Equal("victim", entry.CardID)
		}
	}
	s.Assert().True(sawSkip)

	// No victim attack can land while it is perma-stunned at 100% chance
	for _, entry := range result.Log {
		if entry.Event == engine.EventAttack {
			s.Assert().Equal("stunner", entry.CardID)
		}
	}
}

func (s *BattleTestSuite) TestBurnTicksAndStacks() {
	burner := battleCard("burner", entities.DadTypeBBQ,
		entities.Stats{Attack: 10, Defense: 50, Speed: 50, Stamina: 100},
		entities.Ability{Name: "Sear", Effect: entities.EffectBurn, Target: entities.TargetOpponent, Chance: 100, Duration: 3},
	)
	target := battleCard("target", entities.DadTypeBBQ,
		entities.Stats{Attack: 10, Defense: 50, Speed: 10, Stamina: 100})

	sim, err := engine.NewSimulator(&scriptedRoller{})
	s.Require().NoError(err)

	result, err := sim.Simulate(burner, target)
	s.Require().NoError(err)

	// First tick is a single stack (5), later ticks are double-stacked (7).
	// Stacks cap at 2 no matter how often the ability lands.
	var ticks []int32
	for _, entry := range result.Log {
		if entry.Event == engine.EventBurnTick {
			s.Assert().Equal("target", entry.CardID)
			ticks = append(ticks, entry.Amount)
		}
	}
	s.Require().NotEmpty(ticks)
	s.Assert().Equal(int32(5), ticks[0])
	for _, amount := range ticks[1:] {
		s.Assert().Equal(int32(7), amount, "capped second stack burns at diminished potency")
	}
}

func (s *BattleTestSuite) TestShieldReducesDamage() {
	// No swing variance; shield is pre-applied via a 100% self ability on
	// the defender's first action, so attacker hits before and after differ.
	attacker := battleCard("attacker", entities.DadTypeBBQ,
		entities.Stats{Attack: 50, Defense: 10, Speed: 50, Stamina: 100})
	turtle := battleCard("turtle", entities.DadTypeBBQ,
		entities.Stats{Attack: 5, Defense: 40, Speed: 10, Stamina: 100},
		entities.Ability{Name: "Hunker Down", Effect: entities.EffectShield, Target: entities.TargetSelf, Chance: 100, Duration: 3},
	)

	sim, err := engine.NewSimulator(&scriptedRoller{})
	s.Require().NoError(err)

	result, err := sim.Simulate(attacker, turtle)
	s.Require().NoError(err)

	var attackerHits []int32
	for _, entry := range result.Log {
		if entry.Event == engine.EventAttack && entry.CardID == "attacker" {
			attackerHits = append(attackerHits, entry.Amount)
		}
	}
	s.Require().GreaterOrEqual(len(attackerHits), 3)

	// Unshielded opening hit: 50 - 40/2 + 0 = 30
	s.Assert().Equal(int32(30), attackerHits[0])
	// One shield stack: 30 * 0.7 = 21
	s.Assert().Equal(int32(21), attackerHits[1])
	// Two stacks: 30 * 0.55 = 16 (integer math)
	s.Assert().Equal(int32(16), attackerHits[2])
}

func (s *BattleTestSuite) TestTurnCapDraw() {
	// Mirror match with a damage floor of 1: both sides chip evenly and the
	// cap decides. Equal HP fractions mean a draw.
	a := battleCard("a", entities.DadTypeBBQ,
		entities.Stats{Attack: 0, Defense: 100, Speed: 50, Stamina: 50})
	b := battleCard("b", entities.DadTypeBBQ,
		entities.Stats{Attack: 0, Defense: 100, Speed: 50, Stamina: 50})

	sim, err := engine.NewSimulator(&scriptedRoller{})
	s.Require().NoError(err)

	result, err := sim.Simulate(a, b)
	s.Require().NoError(err)

	s.Assert().True(result.Draw)
	s.Assert().Empty(result.WinnerID)
	s.Assert().Equal(int32(engine.MaxBattleTurns), result.Turns)
	s.Assert().Equal(result.RemainingHP["a"], result.RemainingHP["b"])

	last := result.Log[len(result.Log)-1]
	s.Assert().Equal(engine.EventTurnCap, last.Event)
}

func (s *BattleTestSuite) TestSimulateValidation() {
	card := battleCard("solo", entities.DadTypeBBQ, entities.Stats{})

	sim, err := engine.NewSimulator(&scriptedRoller{})
	s.Require().NoError(err)

	_, err = sim.Simulate(card, card)
	s.Assert().Error(err)

	_, err = sim.Simulate(nil, card)
	s.Assert().Error(err)

	_, err = engine.NewSimulator(nil)
	s.Assert().Error(err)
}
