package engine

import "github.com/daddeck/daddeck-api/internal/entities"

// BadgeRule awards a badge once its stat threshold is reached
type BadgeRule struct {
	ID     string
	Name   string
	Earned func(s entities.PlayerStats) bool
}

var badgeRules = []BadgeRule{
	{
		ID:     "first_pack",
		Name:   "Fresh Wrapper",
		Earned: func(s entities.PlayerStats) bool { return s.PacksOpened >= 1 },
	},
	{
		ID:     "pack_rat",
		Name:   "Pack Rat",
		Earned: func(s entities.PlayerStats) bool { return s.PacksOpened >= 25 },
	},
	{
		ID:     "shoebox_full",
		Name:   "Shoebox Full",
		Earned: func(s entities.PlayerStats) bool { return s.CardsCollected >= 100 },
	},
	{
		ID:     "holo_hunter",
		Name:   "Holo Hunter",
		Earned: func(s entities.PlayerStats) bool { return s.HolosPulled >= 10 },
	},
	{
		ID:     "mythic_moment",
		Name:   "Mythic Moment",
		Earned: func(s entities.PlayerStats) bool { return s.MythicsPulled >= 1 },
	},
	{
		ID:     "craft_apprentice",
		Name:   "Craft Apprentice",
		Earned: func(s entities.PlayerStats) bool { return s.CraftsSucceeded >= 5 },
	},
	{
		ID:     "backyard_champion",
		Name:   "Backyard Champion",
		Earned: func(s entities.PlayerStats) bool { return s.BattlesWon >= 10 },
	},
}

// BadgeRules returns the full badge table
func BadgeRules() []BadgeRule {
	return badgeRules
}

// AwardBadges appends any newly earned badges to the profile and reports
// what was added. Already earned badges are never re-awarded.
func AwardBadges(profile *entities.PlayerProfile, now int64) []entities.Badge {
	var added []entities.Badge
	for _, rule := range badgeRules {
		if profile.HasBadge(rule.ID) || !rule.Earned(profile.Stats) {
			continue
		}
		badge := entities.Badge{ID: rule.ID, Name: rule.Name, EarnedAt: now}
		profile.Badges = append(profile.Badges, badge)
		added = append(added, badge)
	}
	return added
}
