package engine

import (
	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/daddeck/daddeck-api/internal/entities"
	"github.com/daddeck/daddeck-api/internal/errors"
)

// PackRoller draws packs against a slot configuration
type PackRoller struct {
	roller dice.Roller
}

// NewPackRoller creates a pack roller using the given dice roller
func NewPackRoller(roller dice.Roller) (*PackRoller, error) {
	if roller == nil {
		return nil, errors.InvalidArgument("roller is required")
	}
	return &PackRoller{roller: roller}, nil
}

// Generate draws one pack worth of cards from the source. Guaranteed slots
// are honored, weighted slots roll their pool, and no card ID repeats within
// the pack. When a rarity pool is exhausted by the no-duplicate rule the
// slot falls back to the nearest lower rarity with stock, then upward.
func (p *PackRoller) Generate(source CardSource, spec *PackSpec) ([]entities.PackCard, error) {
	if source == nil {
		return nil, errors.InvalidArgument("card source is required")
	}
	if spec == nil || len(spec.Slots) == 0 {
		return nil, errors.InvalidArgument("pack spec is required")
	}

	drawn := make(map[string]bool, spec.Size())
	cards := make([]entities.PackCard, 0, spec.Size())

	for i, slot := range spec.Slots {
		rarity := slot.Guaranteed
		if rarity == "" {
			rolled, err := p.rollRarity(slot.Weights)
			if err != nil {
				return nil, err
			}
			rarity = rolled
		}

		card, err := p.drawCard(source, rarity, drawn)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to fill slot %d", i+1)
		}
		drawn[card.ID] = true

		holo, err := p.rollHolo(spec.HoloDie)
		if err != nil {
			return nil, err
		}

		cards = append(cards, entities.PackCard{
			Card: card,
			Holo: holo,
			Slot: int32(i + 1),
		})
	}

	return cards, nil
}

func (p *PackRoller) rollRarity(weights []RarityWeight) (entities.Rarity, error) {
	total := 0
	for _, w := range weights {
		total += w.Weight
	}
	if total <= 0 {
		return "", errors.InvalidArgument("slot has no positive weights")
	}

	roll, err := p.roller.Roll(total)
	if err != nil {
		return "", errors.Wrap(err, "failed to roll rarity")
	}

	cumulative := 0
	for _, w := range weights {
		cumulative += w.Weight
		if roll <= cumulative {
			return w.Rarity, nil
		}
	}
	// Unreachable with a well-behaved roller
	return weights[len(weights)-1].Rarity, nil
}

// drawCard picks an undrawn card of the rarity, falling back to lower tiers
// first and higher tiers second when the pool runs dry.
func (p *PackRoller) drawCard(source CardSource, rarity entities.Rarity, drawn map[string]bool) (*entities.Card, error) {
	tried := make(map[entities.Rarity]bool)

	for r := rarity; ; {
		if card, err := p.pickFromPool(source.ByRarity(r), drawn); err == nil {
			return card, nil
		}
		tried[r] = true
		prev, ok := r.Prev()
		if !ok {
			break
		}
		r = prev
	}

	for r := rarity; ; {
		next, ok := r.Next()
		if !ok {
			break
		}
		r = next
		if tried[r] {
			continue
		}
		if card, err := p.pickFromPool(source.ByRarity(r), drawn); err == nil {
			return card, nil
		}
	}

	return nil, errors.FailedPrecondition("all rarity pools exhausted")
}

func (p *PackRoller) pickFromPool(pool []*entities.Card, drawn map[string]bool) (*entities.Card, error) {
	available := make([]*entities.Card, 0, len(pool))
	for _, card := range pool {
		if !drawn[card.ID] {
			available = append(available, card)
		}
	}
	if len(available) == 0 {
		return nil, errors.FailedPrecondition("pool is empty")
	}

	roll, err := p.roller.Roll(len(available))
	if err != nil {
		return nil, errors.Wrap(err, "failed to roll card")
	}
	return available[roll-1], nil
}

func (p *PackRoller) rollHolo(die int) (bool, error) {
	if die <= 0 {
		return false, nil
	}
	roll, err := p.roller.Roll(die)
	if err != nil {
		return false, errors.Wrap(err, "failed to roll holo")
	}
	return roll == die, nil
}

// Summarize computes pack metadata from its cards
func Summarize(cards []entities.PackCard) (best entities.Rarity, holos int32) {
	best = entities.RarityCommon
	for _, pc := range cards {
		if pc.Card.Rarity.AtLeast(best) {
			best = pc.Card.Rarity
		}
		if pc.Holo {
			holos++
		}
	}
	return best, holos
}
