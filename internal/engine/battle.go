package engine

import (
	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/daddeck/daddeck-api/internal/entities"
	"github.com/daddeck/daddeck-api/internal/errors"
)

// Battle tuning
const (
	// MaxBattleTurns caps a simulation before it is decided on remaining HP
	MaxBattleTurns = 50

	// MaxEffectStacks caps how many times one effect type applies
	MaxEffectStacks = 2

	// SwingDie adds a small random swing to each hit: Roll(SwingDie) - SwingOffset
	SwingDie    = 10
	SwingOffset = 5

	burnDamageFirstStack  = 5
	burnDamageSecondStack = 2 // half potency, floored

	shieldPctFirstStack  = 30
	shieldPctSecondStack = 15

	rallyPctFirstStack  = 20
	rallyPctSecondStack = 10

	advantageNum    = 150 // x1.5 when the attacker's type beats the defender's
	disadvantageNum = 75  // x0.75 the other way around
)

// typeBeats maps each dad type to the type it has advantage over
var typeBeats = map[entities.DadType]entities.DadType{
	entities.DadTypeBBQ:    entities.DadTypeLawn,
	entities.DadTypeLawn:   entities.DadTypeFixit,
	entities.DadTypeFixit:  entities.DadTypeCouch,
	entities.DadTypeCouch:  entities.DadTypeOffice,
	entities.DadTypeOffice: entities.DadTypeBBQ,
}

// BattleEvent labels a battle log entry
type BattleEvent string

// Battle log events
const (
	EventAttack        BattleEvent = "attack"
	EventBurnTick      BattleEvent = "burn_tick"
	EventStunSkip      BattleEvent = "stun_skip"
	EventEffectApplied BattleEvent = "effect_applied"
	EventEffectExpired BattleEvent = "effect_expired"
	EventKnockout      BattleEvent = "knockout"
	EventTurnCap       BattleEvent = "turn_cap"
)

// BattleLogEntry is one ordered entry in the battle log
type BattleLogEntry struct {
	Turn   int32                     `json:"turn"`
	CardID string                    `json:"cardId"`
	Event  BattleEvent               `json:"event"`
	Effect entities.StatusEffectType `json:"effect,omitempty"`
	Amount int32                     `json:"amount,omitempty"`
}

// BattleResult is the outcome of a simulation
type BattleResult struct {
	WinnerID    string           `json:"winnerId,omitempty"` // empty on a draw
	Draw        bool             `json:"draw"`
	Turns       int32            `json:"turns"`
	RemainingHP map[string]int32 `json:"remainingHp"`
	Log         []BattleLogEntry `json:"log"`
}

// ActiveEffect is a status effect applied to a combatant
type ActiveEffect struct {
	Type      entities.StatusEffectType
	Stacks    int32
	Remaining int32 // turns until expiry
}

type combatant struct {
	card    *entities.Card
	hp      int32
	maxHP   int32
	effects []*ActiveEffect
}

func (c *combatant) effect(t entities.StatusEffectType) *ActiveEffect {
	for _, e := range c.effects {
		if e.Type == t {
			return e
		}
	}
	return nil
}

// Simulator runs turn-based battles between two cards
type Simulator struct {
	roller dice.Roller
}

// NewSimulator creates a battle simulator using the given dice roller
func NewSimulator(roller dice.Roller) (*Simulator, error) {
	if roller == nil {
		return nil, errors.InvalidArgument("roller is required")
	}
	return &Simulator{roller: roller}, nil
}

// Simulate runs a battle to knockout or the turn cap. The faster card acts
// first; ties go to the first card.
func (s *Simulator) Simulate(first, second *entities.Card) (*BattleResult, error) {
	if first == nil || second == nil {
		return nil, errors.InvalidArgument("both cards are required")
	}
	if first.ID == second.ID {
		return nil, errors.InvalidArgument("a card cannot battle itself")
	}

	a := &combatant{card: first, hp: first.MaxHP(), maxHP: first.MaxHP()}
	b := &combatant{card: second, hp: second.MaxHP(), maxHP: second.MaxHP()}

	actor, other := a, b
	if second.Stats.Speed > first.Stats.Speed {
		actor, other = b, a
	}

	result := &BattleResult{RemainingHP: map[string]int32{}}

	for turn := int32(1); turn <= MaxBattleTurns; turn++ {
		result.Turns = turn

		if done, err := s.takeTurn(turn, actor, other, result); err != nil {
			return nil, err
		} else if done {
			return s.finish(result, a, b)
		}

		actor, other = other, actor
	}

	result.Log = append(result.Log, BattleLogEntry{
		Turn:  MaxBattleTurns,
		Event: EventTurnCap,
	})
	return s.finish(result, a, b)
}

// takeTurn runs one side's turn and reports whether the battle ended
func (s *Simulator) takeTurn(turn int32, actor, other *combatant, result *BattleResult) (bool, error) {
	if stun := actor.effect(entities.EffectStun); stun != nil {
		result.Log = append(result.Log, BattleLogEntry{
			Turn:   turn,
			CardID: actor.card.ID,
			Event:  EventStunSkip,
		})
	} else {
		damage, err := s.rollDamage(actor, other)
		if err != nil {
			return false, err
		}
		other.hp -= damage
		result.Log = append(result.Log, BattleLogEntry{
			Turn:   turn,
			CardID: actor.card.ID,
			Event:  EventAttack,
			Amount: damage,
		})

		if other.hp <= 0 {
			result.Log = append(result.Log, BattleLogEntry{
				Turn:   turn,
				CardID: other.card.ID,
				Event:  EventKnockout,
			})
			return true, nil
		}

		if err := s.triggerAbilities(turn, actor, other, result); err != nil {
			return false, err
		}
	}

	// End of the acting side's turn: burn ticks, then durations count down
	if burn := actor.effect(entities.EffectBurn); burn != nil {
		damage := burnDamage(burn.Stacks)
		actor.hp -= damage
		result.Log = append(result.Log, BattleLogEntry{
			Turn:   turn,
			CardID: actor.card.ID,
			Event:  EventBurnTick,
			Effect: entities.EffectBurn,
			Amount: damage,
		})
		if actor.hp <= 0 {
			result.Log = append(result.Log, BattleLogEntry{
				Turn:   turn,
				CardID: actor.card.ID,
				Event:  EventKnockout,
			})
			return true, nil
		}
	}

	s.expireEffects(turn, actor, result)
	return false, nil
}

func (s *Simulator) rollDamage(actor, other *combatant) (int32, error) {
	swing, err := s.roller.Roll(SwingDie)
	if err != nil {
		return 0, errors.Wrap(err, "failed to roll swing")
	}

	damage := actor.card.Stats.Attack - other.card.Stats.Defense/2 + int32(swing-SwingOffset)

	if rally := actor.effect(entities.EffectRally); rally != nil {
		damage = damage * (100 + rallyPct(rally.Stacks)) / 100
	}

	switch {
	case typeBeats[actor.card.Type] == other.card.Type:
		damage = damage * advantageNum / 100
	case typeBeats[other.card.Type] == actor.card.Type:
		damage = damage * disadvantageNum / 100
	}

	if shield := other.effect(entities.EffectShield); shield != nil {
		damage = damage * (100 - shieldPct(shield.Stacks)) / 100
	}

	// A landed hit always does something
	if damage < 1 {
		damage = 1
	}
	return damage, nil
}

func (s *Simulator) triggerAbilities(turn int32, actor, other *combatant, result *BattleResult) error {
	for _, ability := range actor.card.Abilities {
		roll, err := s.roller.Roll(100)
		if err != nil {
			return errors.Wrap(err, "failed to roll ability trigger")
		}
		if int32(roll) > ability.Chance {
			continue
		}

		target := other
		if ability.Target == entities.TargetSelf {
			target = actor
		}
		applyEffect(target, ability.Effect, ability.Duration)

		result.Log = append(result.Log, BattleLogEntry{
			Turn:   turn,
			CardID: target.card.ID,
			Event:  EventEffectApplied,
			Effect: ability.Effect,
		})
	}
	return nil
}

// applyEffect adds or stacks an effect. Stacks cap at MaxEffectStacks; a
// re-application past the cap only refreshes the duration.
func applyEffect(target *combatant, effectType entities.StatusEffectType, duration int32) {
	if existing := target.effect(effectType); existing != nil {
		if existing.Stacks < MaxEffectStacks {
			existing.Stacks++
		}
		if duration > existing.Remaining {
			existing.Remaining = duration
		}
		return
	}
	target.effects = append(target.effects, &ActiveEffect{
		Type:      effectType,
		Stacks:    1,
		Remaining: duration,
	})
}

func (s *Simulator) expireEffects(turn int32, c *combatant, result *BattleResult) {
	kept := c.effects[:0]
	for _, e := range c.effects {
		e.Remaining--
		if e.Remaining > 0 {
			kept = append(kept, e)
			continue
		}
		result.Log = append(result.Log, BattleLogEntry{
			Turn:   turn,
			CardID: c.card.ID,
			Event:  EventEffectExpired,
			Effect: e.Type,
		})
	}
	c.effects = kept
}

// finish decides the result from remaining HP
func (s *Simulator) finish(result *BattleResult, a, b *combatant) (*BattleResult, error) {
	result.RemainingHP[a.card.ID] = maxInt32(a.hp, 0)
	result.RemainingHP[b.card.ID] = maxInt32(b.hp, 0)

	switch {
	case a.hp <= 0 && b.hp <= 0:
		result.Draw = true
	case a.hp <= 0:
		result.WinnerID = b.card.ID
	case b.hp <= 0:
		result.WinnerID = a.card.ID
	default:
		// Turn cap: higher remaining HP fraction wins
		aFrac := int64(a.hp) * int64(b.maxHP)
		bFrac := int64(b.hp) * int64(a.maxHP)
		switch {
		case aFrac > bFrac:
			result.WinnerID = a.card.ID
		case bFrac > aFrac:
			result.WinnerID = b.card.ID
		default:
			result.Draw = true
		}
	}
	return result, nil
}

func burnDamage(stacks int32) int32 {
	if stacks >= 2 {
		return burnDamageFirstStack + burnDamageSecondStack
	}
	return burnDamageFirstStack
}

func shieldPct(stacks int32) int32 {
	if stacks >= 2 {
		return shieldPctFirstStack + shieldPctSecondStack
	}
	return shieldPctFirstStack
}

func rallyPct(stacks int32) int32 {
	if stacks >= 2 {
		return rallyPctFirstStack + rallyPctSecondStack
	}
	return rallyPctFirstStack
}

func maxInt32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}
