package engine

import (
	"github.com/daddeck/daddeck-api/internal/entities"
	"github.com/daddeck/daddeck-api/internal/errors"
)

// Rarity point values for the collection leaderboard. A holo copy is worth
// double its rarity points.
var rarityPoints = map[entities.Rarity]int64{
	entities.RarityCommon:    1,
	entities.RarityUncommon:  3,
	entities.RarityRare:      8,
	entities.RarityEpic:      20,
	entities.RarityLegendary: 50,
	entities.RarityMythic:    120,
}

// HoloMultiplier scales the score of holo copies
const HoloMultiplier = 2

// CardGetter resolves card IDs to card data
type CardGetter interface {
	Get(id string) (*entities.Card, error)
}

// RarityPoints returns the leaderboard value of one copy at the given rarity
func RarityPoints(rarity entities.Rarity) int64 {
	return rarityPoints[rarity]
}

// CollectionScore totals a collection's leaderboard score. Entries whose
// card ID is unknown to the source score nothing rather than failing the
// whole collection.
func CollectionScore(source CardGetter, col *entities.Collection) (int64, error) {
	if source == nil {
		return 0, errors.InvalidArgument("card source is required")
	}
	if col == nil {
		return 0, errors.InvalidArgument("collection is required")
	}

	var score int64
	for _, owned := range col.Cards {
		card, err := source.Get(owned.CardID)
		if err != nil {
			if errors.IsNotFound(err) {
				continue
			}
			return 0, err
		}
		points := rarityPoints[card.Rarity] * int64(owned.Count)
		if owned.Holo {
			points *= HoloMultiplier
		}
		score += points
	}
	return score, nil
}
