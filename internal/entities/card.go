// Package entities implements the DadDeck card game entities.
// NOTE: These are data-only structs. All rules calculations (pack rolls,
// battle damage, crafting odds) are done by the engine, not here.
package entities

// Rarity is the ordinal tier governing drop probability and card power
type Rarity string

// Rarity tiers, lowest to highest
const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
	RarityMythic    Rarity = "mythic"
)

// rarityOrder maps each rarity to its ordinal position
var rarityOrder = map[Rarity]int{
	RarityCommon:    0,
	RarityUncommon:  1,
	RarityRare:      2,
	RarityEpic:      3,
	RarityLegendary: 4,
	RarityMythic:    5,
}

// Rarities lists all tiers in ascending order
func Rarities() []Rarity {
	return []Rarity{
		RarityCommon,
		RarityUncommon,
		RarityRare,
		RarityEpic,
		RarityLegendary,
		RarityMythic,
	}
}

// IsValid reports whether the rarity is a known tier
func (r Rarity) IsValid() bool {
	_, ok := rarityOrder[r]
	return ok
}

// Order returns the ordinal position of the rarity, -1 if unknown
func (r Rarity) Order() int {
	if o, ok := rarityOrder[r]; ok {
		return o
	}
	return -1
}

// AtLeast reports whether r is the same tier or higher than other
func (r Rarity) AtLeast(other Rarity) bool {
	return r.IsValid() && other.IsValid() && r.Order() >= other.Order()
}

// Next returns the tier one above r. Mythic has no next tier.
func (r Rarity) Next() (Rarity, bool) {
	all := Rarities()
	o := r.Order()
	if o < 0 || o >= len(all)-1 {
		return "", false
	}
	return all[o+1], true
}

// Prev returns the tier one below r. Common has no previous tier.
func (r Rarity) Prev() (Rarity, bool) {
	all := Rarities()
	o := r.Order()
	if o <= 0 {
		return "", false
	}
	return all[o-1], true
}

// DadType is the elemental type of a card, used for battle advantages
type DadType string

// Dad types. Advantage runs in a cycle:
// bbq > lawn > fixit > couch > office > bbq
const (
	DadTypeBBQ    DadType = "bbq"
	DadTypeLawn   DadType = "lawn"
	DadTypeFixit  DadType = "fixit"
	DadTypeCouch  DadType = "couch"
	DadTypeOffice DadType = "office"
)

// DadTypes lists all card types
func DadTypes() []DadType {
	return []DadType{DadTypeBBQ, DadTypeLawn, DadTypeFixit, DadTypeCouch, DadTypeOffice}
}

// IsValid reports whether the type is known
func (t DadType) IsValid() bool {
	switch t {
	case DadTypeBBQ, DadTypeLawn, DadTypeFixit, DadTypeCouch, DadTypeOffice:
		return true
	}
	return false
}

// Stats is a card's stat block. All stats range 0-100.
type Stats struct {
	Attack  int32 `json:"attack"`
	Defense int32 `json:"defense"`
	Speed   int32 `json:"speed"`
	Stamina int32 `json:"stamina"`
}

// StatusEffectType identifies a battle status effect
type StatusEffectType string

// Status effects
const (
	EffectBurn   StatusEffectType = "burn"   // damage at end of turn
	EffectShield StatusEffectType = "shield" // reduces incoming damage
	EffectStun   StatusEffectType = "stun"   // skip the next turn
	EffectRally  StatusEffectType = "rally"  // boosts outgoing damage
)

// IsValid reports whether the effect type is known
func (e StatusEffectType) IsValid() bool {
	switch e {
	case EffectBurn, EffectShield, EffectStun, EffectRally:
		return true
	}
	return false
}

// AbilityTarget says which side of a battle an ability lands on
type AbilityTarget string

// Ability targets
const (
	TargetSelf     AbilityTarget = "self"
	TargetOpponent AbilityTarget = "opponent"
)

// Ability is a card ability that may apply a status effect during battle
type Ability struct {
	Name     string           `json:"name"`
	Effect   StatusEffectType `json:"effect"`
	Target   AbilityTarget    `json:"target"`
	Chance   int32            `json:"chance"`   // percent, 1-100
	Duration int32            `json:"duration"` // turns
}

// Card is a static card definition from the catalog
type Card struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Rarity     Rarity    `json:"rarity"`
	Type       DadType   `json:"type"`
	Stats      Stats     `json:"stats"`
	Abilities  []Ability `json:"abilities,omitempty"`
	FlavorText string    `json:"flavorText,omitempty"`
	Artwork    string    `json:"artwork,omitempty"`
	Series     int32     `json:"series"`
}

// MaxHP returns the card's battle hit points
func (c *Card) MaxHP() int32 {
	return 50 + c.Stats.Stamina
}
