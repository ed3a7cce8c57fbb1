package entities

// PlayerStats are the counters a profile accumulates over time
type PlayerStats struct {
	PacksOpened     int32 `json:"packsOpened"`
	CardsCollected  int32 `json:"cardsCollected"`
	BattlesWon      int32 `json:"battlesWon"`
	BattlesLost     int32 `json:"battlesLost"`
	CraftsSucceeded int32 `json:"craftsSucceeded"`
	CraftsFailed    int32 `json:"craftsFailed"`
	HolosPulled     int32 `json:"holosPulled"`
	MythicsPulled   int32 `json:"mythicsPulled"`
}

// Badge is an earned achievement on a profile
type Badge struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	EarnedAt int64  `json:"earnedAt"`
}

// PlayerProfile holds a player's stats, badges, and presentation fields
type PlayerProfile struct {
	PlayerID    string      `json:"playerId"`
	DisplayName string      `json:"displayName"`
	Avatar      string      `json:"avatar,omitempty"`
	Bio         string      `json:"bio,omitempty"`
	Stats       PlayerStats `json:"stats"`
	Badges      []Badge     `json:"badges,omitempty"`
	CreatedAt   int64       `json:"createdAt"`
	UpdatedAt   int64       `json:"updatedAt"`
}

// HasBadge reports whether the profile already earned the badge
func (p *PlayerProfile) HasBadge(id string) bool {
	for _, b := range p.Badges {
		if b.ID == id {
			return true
		}
	}
	return false
}
