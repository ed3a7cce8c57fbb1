// Package battle implements the battle simulation orchestrator
package battle

//go:generate mockgen -destination=mock/mock_service.go -package=battlemock github.com/daddeck/daddeck-api/internal/orchestrators/battle Service

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/daddeck/daddeck-api/internal/catalog"
	"github.com/daddeck/daddeck-api/internal/engine"
	"github.com/daddeck/daddeck-api/internal/entities"
	"github.com/daddeck/daddeck-api/internal/errors"
	"github.com/daddeck/daddeck-api/internal/pkg/clock"
	"github.com/daddeck/daddeck-api/internal/repositories/collection"
	"github.com/daddeck/daddeck-api/internal/repositories/profile"
)

// Service defines the interface for battle operations
type Service interface {
	// SimulateBattle runs one battle between a card the player owns and an
	// opponent card, recording the outcome on the player's profile
	SimulateBattle(ctx context.Context, input *SimulateBattleInput) (*SimulateBattleOutput, error)
}

// SimulateBattleInput defines a battle request. An empty OpponentCardID
// draws a random opponent from the full card pool.
type SimulateBattleInput struct {
	PlayerID       string
	CardID         string
	OpponentCardID string
}

// SimulateBattleOutput defines the result of a battle request
type SimulateBattleOutput struct {
	Result        *engine.BattleResult
	PlayerCard    *entities.Card
	OpponentCard  *entities.Card
	AwardedBadges []entities.Badge
}

// Config holds the dependencies for the battle orchestrator
type Config struct {
	Catalog        *catalog.Catalog
	CollectionRepo collection.Repository
	ProfileRepo    profile.Repository
	Roller         dice.Roller
	Clock          clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Catalog == nil {
		vb.RequiredField("Catalog")
	}
	if c.CollectionRepo == nil {
		vb.RequiredField("CollectionRepo")
	}
	if c.ProfileRepo == nil {
		vb.RequiredField("ProfileRepo")
	}
	if c.Roller == nil {
		vb.RequiredField("Roller")
	}

	return vb.Build()
}

type orchestrator struct {
	catalog        *catalog.Catalog
	collectionRepo collection.Repository
	profileRepo    profile.Repository
	simulator      *engine.Simulator
	roller         dice.Roller
	clock          clock.Clock
}

// NewOrchestrator creates a new battle orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	simulator, err := engine.NewSimulator(cfg.Roller)
	if err != nil {
		return nil, err
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	return &orchestrator{
		catalog:        cfg.Catalog,
		collectionRepo: cfg.CollectionRepo,
		profileRepo:    cfg.ProfileRepo,
		simulator:      simulator,
		roller:         cfg.Roller,
		clock:          c,
	}, nil
}

func (o *orchestrator) SimulateBattle(ctx context.Context, input *SimulateBattleInput) (*SimulateBattleOutput, error) {
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument("player ID is required")
	}
	if input.CardID == "" {
		return nil, errors.InvalidArgument("card ID is required")
	}

	playerCard, err := o.catalog.Get(input.CardID)
	if err != nil {
		return nil, err
	}

	if err := o.checkOwnership(ctx, input.PlayerID, input.CardID); err != nil {
		return nil, err
	}

	opponentCard, err := o.pickOpponent(input)
	if err != nil {
		return nil, err
	}

	result, err := o.simulator.Simulate(playerCard, opponentCard)
	if err != nil {
		return nil, err
	}

	awarded, err := o.recordOutcome(ctx, input.PlayerID, playerCard.ID, result)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "battle simulated",
		"player_id", input.PlayerID,
		"card_id", playerCard.ID,
		"opponent_card_id", opponentCard.ID,
		"winner_id", result.WinnerID,
		"draw", result.Draw,
		"turns", result.Turns,
	)

	return &SimulateBattleOutput{
		Result:        result,
		PlayerCard:    playerCard,
		OpponentCard:  opponentCard,
		AwardedBadges: awarded,
	}, nil
}

// checkOwnership requires at least one copy, holo or not, in the collection
func (o *orchestrator) checkOwnership(ctx context.Context, playerID, cardID string) error {
	getOut, err := o.collectionRepo.Get(ctx, collection.GetInput{PlayerID: playerID})
	if err != nil {
		if errors.IsNotFound(err) {
			return errors.PermissionDeniedf("player %s does not own card %s", playerID, cardID)
		}
		return errors.Wrap(err, "failed to load collection")
	}

	for _, owned := range getOut.Collection.Cards {
		if owned.CardID == cardID && owned.Count > 0 {
			return nil
		}
	}
	return errors.PermissionDeniedf("player %s does not own card %s", playerID, cardID)
}

func (o *orchestrator) pickOpponent(input *SimulateBattleInput) (*entities.Card, error) {
	if input.OpponentCardID != "" {
		if input.OpponentCardID == input.CardID {
			return nil, errors.InvalidArgument("a card cannot battle itself")
		}
		return o.catalog.Get(input.OpponentCardID)
	}

	drawn, err := o.catalog.Random(o.roller, catalog.RandomInput{
		Count:   1,
		Exclude: []string{input.CardID},
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to draw opponent")
	}
	return drawn[0], nil
}

func (o *orchestrator) recordOutcome(ctx context.Context, playerID, playerCardID string, result *engine.BattleResult) ([]entities.Badge, error) {
	getOut, err := o.profileRepo.Get(ctx, profile.GetInput{PlayerID: playerID})
	var prof *entities.PlayerProfile
	if err != nil {
		if !errors.IsNotFound(err) {
			return nil, errors.Wrap(err, "failed to load profile")
		}
		prof = &entities.PlayerProfile{PlayerID: playerID}
	} else {
		prof = getOut.Profile
	}

	switch {
	case result.Draw:
		// draws count for neither side
	case result.WinnerID == playerCardID:
		prof.Stats.BattlesWon++
	default:
		prof.Stats.BattlesLost++
	}

	awarded := engine.AwardBadges(prof, o.clock.Now().Unix())

	if _, err := o.profileRepo.Save(ctx, profile.SaveInput{Profile: prof}); err != nil {
		return nil, errors.Wrap(err, "failed to save profile")
	}
	return awarded, nil
}
