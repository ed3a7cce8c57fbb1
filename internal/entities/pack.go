package entities

// PackType selects a slot configuration for pack generation
type PackType string

// Pack types
const (
	PackTypeStandard PackType = "standard"
	PackTypePremium  PackType = "premium"
)

// IsValid reports whether the pack type is known
func (p PackType) IsValid() bool {
	return p == PackTypeStandard || p == PackTypePremium
}

// Pack designs are cosmetic wrapper art, selectable at generation time
const (
	PackDesignClassic = "classic"
	PackDesignRetro   = "retro"
	PackDesignFoil    = "foil"
)

// IsValidPackDesign reports whether the design name is known
func IsValidPackDesign(design string) bool {
	switch design {
	case PackDesignClassic, PackDesignRetro, PackDesignFoil:
		return true
	}
	return false
}

// PackCard is a single drawn card instance inside a pack
type PackCard struct {
	Card *Card `json:"card"`
	Holo bool  `json:"holo"`
	Slot int32 `json:"slot"`
}

// Pack is an ordered set of drawn cards presented in one opening event
type Pack struct {
	ID         string     `json:"id"`
	PlayerID   string     `json:"playerId"`
	Type       PackType   `json:"type"`
	Design     string     `json:"design"`
	Series     int32      `json:"series,omitempty"`
	Cards      []PackCard `json:"cards"`
	BestRarity Rarity     `json:"bestRarity"`
	HoloCount  int32      `json:"holoCount"`
	OpenedAt   int64      `json:"openedAt"`
}
