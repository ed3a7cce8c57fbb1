// Package engine implements the DadDeck rules calculators: pack generation,
// battle simulation, and crafting resolution. Everything here is
// deterministic given a dice.Roller; no package state, no persistence.
package engine

import (
	"github.com/daddeck/daddeck-api/internal/entities"
)

// CardSource supplies catalog cards by rarity. Satisfied by catalog.Catalog.
type CardSource interface {
	ByRarity(rarity entities.Rarity) []*entities.Card
}

// RarityWeight is one entry in a weighted rarity pool
type RarityWeight struct {
	Rarity entities.Rarity
	Weight int
}

// SlotSpec configures one card slot in a pack. Either Guaranteed is set,
// or Weights describes the pool the slot rolls against.
type SlotSpec struct {
	Guaranteed entities.Rarity
	Weights    []RarityWeight
}

// PackSpec is the full slot configuration for a pack type
type PackSpec struct {
	Type    entities.PackType
	Slots   []SlotSpec
	HoloDie int // a holo lands on the die's maximum face
}

// Size returns the number of cards the spec produces
func (s *PackSpec) Size() int {
	return len(s.Slots)
}

// StandardHoloDie gives roughly a 1-in-20 holo chance per card
const StandardHoloDie = 20

// PremiumHoloDie gives roughly a 1-in-10 holo chance per card
const PremiumHoloDie = 10

// StandardPackSpec returns the 7-slot standard pack configuration:
// three guaranteed commons, an uncommon-or-better slot, two open slots,
// and a rare-or-better hit slot.
func StandardPackSpec() *PackSpec {
	return &PackSpec{
		Type:    entities.PackTypeStandard,
		HoloDie: StandardHoloDie,
		Slots: []SlotSpec{
			{Guaranteed: entities.RarityCommon},
			{Guaranteed: entities.RarityCommon},
			{Guaranteed: entities.RarityCommon},
			{Weights: []RarityWeight{
				{entities.RarityUncommon, 850},
				{entities.RarityRare, 120},
				{entities.RarityEpic, 30},
			}},
			{Weights: []RarityWeight{
				{entities.RarityCommon, 600},
				{entities.RarityUncommon, 300},
				{entities.RarityRare, 80},
				{entities.RarityEpic, 20},
			}},
			{Weights: []RarityWeight{
				{entities.RarityCommon, 600},
				{entities.RarityUncommon, 300},
				{entities.RarityRare, 80},
				{entities.RarityEpic, 20},
			}},
			{Weights: []RarityWeight{
				{entities.RarityRare, 700},
				{entities.RarityEpic, 230},
				{entities.RarityLegendary, 60},
				{entities.RarityMythic, 10},
			}},
		},
	}
}

// PremiumPackSpec returns the 7-slot premium pack configuration with
// upgraded pools and a guaranteed epic-or-better hit slot.
func PremiumPackSpec() *PackSpec {
	return &PackSpec{
		Type:    entities.PackTypePremium,
		HoloDie: PremiumHoloDie,
		Slots: []SlotSpec{
			{Guaranteed: entities.RarityCommon},
			{Guaranteed: entities.RarityCommon},
			{Guaranteed: entities.RarityUncommon},
			{Weights: []RarityWeight{
				{entities.RarityUncommon, 700},
				{entities.RarityRare, 230},
				{entities.RarityEpic, 60},
				{entities.RarityLegendary, 10},
			}},
			{Weights: []RarityWeight{
				{entities.RarityUncommon, 500},
				{entities.RarityRare, 350},
				{entities.RarityEpic, 120},
				{entities.RarityLegendary, 25},
				{entities.RarityMythic, 5},
			}},
			{Weights: []RarityWeight{
				{entities.RarityUncommon, 500},
				{entities.RarityRare, 350},
				{entities.RarityEpic, 120},
				{entities.RarityLegendary, 25},
				{entities.RarityMythic, 5},
			}},
			{Weights: []RarityWeight{
				{entities.RarityEpic, 800},
				{entities.RarityLegendary, 170},
				{entities.RarityMythic, 30},
			}},
		},
	}
}

// PackSpecFor returns the spec for a pack type
func PackSpecFor(packType entities.PackType) (*PackSpec, bool) {
	switch packType {
	case entities.PackTypeStandard:
		return StandardPackSpec(), true
	case entities.PackTypePremium:
		return PremiumPackSpec(), true
	}
	return nil, false
}
