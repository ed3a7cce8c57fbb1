// Package packs implements the pack opening orchestrator
package packs

//go:generate mockgen -destination=mock/mock_service.go -package=packsmock github.com/daddeck/daddeck-api/internal/orchestrators/packs Service

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/daddeck/daddeck-api/internal/catalog"
	"github.com/daddeck/daddeck-api/internal/engine"
	"github.com/daddeck/daddeck-api/internal/entities"
	"github.com/daddeck/daddeck-api/internal/errors"
	"github.com/daddeck/daddeck-api/internal/pkg/clock"
	"github.com/daddeck/daddeck-api/internal/pkg/idgen"
	"github.com/daddeck/daddeck-api/internal/repositories/collection"
	"github.com/daddeck/daddeck-api/internal/repositories/leaderboard"
	"github.com/daddeck/daddeck-api/internal/repositories/profile"
)

// MaxPacksPerRequest caps a single opening request
const MaxPacksPerRequest = 10

// Service defines the interface for pack operations
type Service interface {
	// GeneratePacks opens one or more packs for a player, adds the pulls to
	// their collection, and updates their profile and leaderboard score
	GeneratePacks(ctx context.Context, input *GeneratePacksInput) (*GeneratePacksOutput, error)
}

// GeneratePacksInput defines a pack opening request. Design picks wrapper
// art (default classic); Series restricts the card pools to one series.
type GeneratePacksInput struct {
	PlayerID string
	Type     entities.PackType
	Count    int32
	Design   string
	Series   int32
}

// GeneratePacksOutput defines the result of a pack opening request
type GeneratePacksOutput struct {
	Packs         []*entities.Pack
	AwardedBadges []entities.Badge
}

// Config holds the dependencies for the packs orchestrator
type Config struct {
	Catalog         *catalog.Catalog
	CollectionRepo  collection.Repository
	ProfileRepo     profile.Repository
	LeaderboardRepo leaderboard.Repository
	Roller          dice.Roller
	IDGenerator     idgen.Generator
	Clock           clock.Clock
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
	if c.LeaderboardRepo == nil {
		vb.RequiredField("LeaderboardRepo")
	}
	if c.Roller == nil {
		vb.RequiredField("Roller")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}

	return vb.Build()
}

type orchestrator struct {
	catalog         *catalog.Catalog
	collectionRepo  collection.Repository
	profileRepo     profile.Repository
	leaderboardRepo leaderboard.Repository
	packRoller      *engine.PackRoller
	idGen           idgen.Generator
	clock           clock.Clock
}

// NewOrchestrator creates a new packs orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	packRoller, err := engine.NewPackRoller(cfg.Roller)
	if err != nil {
		return nil, err
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	return &orchestrator{
		catalog:         cfg.Catalog,
		collectionRepo:  cfg.CollectionRepo,
		profileRepo:     cfg.ProfileRepo,
		leaderboardRepo: cfg.LeaderboardRepo,
		packRoller:      packRoller,
		idGen:           cfg.IDGenerator,
		clock:           c,
	}, nil
}

func (o *orchestrator) GeneratePacks(ctx context.Context, input *GeneratePacksInput) (*GeneratePacksOutput, error) {
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument("player ID is required")
	}
	spec, ok := engine.PackSpecFor(input.Type)
	if !ok {
		return nil, errors.InvalidArgumentf("unknown pack type: %s", input.Type)
	}
	if input.Count < 1 || input.Count > MaxPacksPerRequest {
		return nil, errors.InvalidArgumentf("count must be between 1 and %d", MaxPacksPerRequest)
	}

	design := input.Design
	if design == "" {
		design = entities.PackDesignClassic
	}
	if !entities.IsValidPackDesign(design) {
		return nil, errors.InvalidArgumentf("unknown pack design: %s", design)
	}

	var source engine.CardSource = o.catalog
	if input.Series != 0 {
		view, err := o.catalog.SeriesView(input.Series)
		if err != nil {
			return nil, err
		}
		source = view
	}

	col, err := o.loadOrCreateCollection(ctx, input.PlayerID)
	if err != nil {
		return nil, err
	}
	prof, err := o.loadOrCreateProfile(ctx, input.PlayerID)
	if err != nil {
		return nil, err
	}

	now := o.clock.Now().Unix()
	packs := make([]*entities.Pack, 0, input.Count)

	for i := int32(0); i < input.Count; i++ {
		cards, err := o.packRoller.Generate(source, spec)
		if err != nil {
			return nil, errors.Wrap(err, "failed to generate pack")
		}

		best, holos := engine.Summarize(cards)
		pack := &entities.Pack{
			ID:         o.idGen.Generate(),
			PlayerID:   input.PlayerID,
			Type:       input.Type,
			Design:     design,
			Series:     input.Series,
			Cards:      cards,
			BestRarity: best,
			HoloCount:  holos,
			OpenedAt:   now,
		}
		packs = append(packs, pack)

		o.recordPulls(col, prof, pack, now)
	}

	awarded := engine.AwardBadges(prof, now)

	if _, err := o.collectionRepo.Save(ctx, collection.SaveInput{Collection: col}); err != nil {
		return nil, errors.Wrap(err, "failed to save collection")
	}
	if _, err := o.profileRepo.Save(ctx, profile.SaveInput{Profile: prof}); err != nil {
		return nil, errors.Wrap(err, "failed to save profile")
	}
	if err := o.updateLeaderboard(ctx, input.PlayerID, col); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "packs opened",
		"player_id", input.PlayerID,
		"pack_type", input.Type,
		"count", len(packs),
		"badges_awarded", len(awarded),
	)

	return &GeneratePacksOutput{Packs: packs, AwardedBadges: awarded}, nil
}

// recordPulls folds one pack's cards into the collection and profile stats
func (o *orchestrator) recordPulls(col *entities.Collection, prof *entities.PlayerProfile, pack *entities.Pack, now int64) {
	for _, pc := range pack.Cards {
		owned := &entities.OwnedCard{CardID: pc.Card.ID, Holo: pc.Holo}
		key := owned.Key()
		if existing, ok := col.Cards[key]; ok {
			existing.Count++
		} else {
			owned.Count = 1
			owned.ObtainedAt = now
			col.Cards[key] = owned
		}

		prof.Stats.CardsCollected++
		if pc.Holo {
			prof.Stats.HolosPulled++
		}
		if pc.Card.Rarity == entities.RarityMythic {
			prof.Stats.MythicsPulled++
		}
	}
	prof.Stats.PacksOpened++
}

func (o *orchestrator) updateLeaderboard(ctx context.Context, playerID string, col *entities.Collection) error {
	score, err := engine.CollectionScore(o.catalog, col)
	if err != nil {
		return errors.Wrap(err, "failed to score collection")
	}
	if _, err := o.leaderboardRepo.SetScore(ctx, leaderboard.SetScoreInput{
		PlayerID: playerID,
		Score:    score,
	}); err != nil {
		return errors.Wrap(err, "failed to update leaderboard")
	}
	return nil
}

func (o *orchestrator) loadOrCreateCollection(ctx context.Context, playerID string) (*entities.Collection, error) {
	getOut, err := o.collectionRepo.Get(ctx, collection.GetInput{PlayerID: playerID})
	if err == nil {
		return getOut.Collection, nil
	}
	if !errors.IsNotFound(err) {
		return nil, errors.Wrap(err, "failed to load collection")
	}
	return &entities.Collection{
		PlayerID: playerID,
		Cards:    map[string]*entities.OwnedCard{},
	}, nil
}

func (o *orchestrator) loadOrCreateProfile(ctx context.Context, playerID string) (*entities.PlayerProfile, error) {
	getOut, err := o.profileRepo.Get(ctx, profile.GetInput{PlayerID: playerID})
	if err == nil {
		return getOut.Profile, nil
	}
	if !errors.IsNotFound(err) {
		return nil, errors.Wrap(err, "failed to load profile")
	}
	return &entities.PlayerProfile{PlayerID: playerID}, nil
}
