// Package crafting implements the card crafting orchestrator
package crafting

//go:generate mockgen -destination=mock/mock_service.go -package=craftingmock github.com/daddeck/daddeck-api/internal/orchestrators/crafting Service

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
	craftingrepo "github.com/daddeck/daddeck-api/internal/repositories/crafting"
	"github.com/daddeck/daddeck-api/internal/repositories/leaderboard"
	"github.com/daddeck/daddeck-api/internal/repositories/profile"
)

// CraftedHoloDie is rolled once per successful craft; the max face mints
// the output card as a holo.
const CraftedHoloDie = 10

// Service defines the interface for crafting operations
type Service interface {
	// StartSession opens a crafting session for a recipe. A player holds at
	// most one active session
	StartSession(ctx context.Context, input *StartSessionInput) (*StartSessionOutput, error)

	// SelectCard adds one owned copy to the active session
	SelectCard(ctx context.Context, input *SelectCardInput) (*SelectCardOutput, error)

	// DeselectCard removes one previously selected copy
	DeselectCard(ctx context.Context, input *DeselectCardInput) (*DeselectCardOutput, error)

	// GetSession retrieves the active session
	GetSession(ctx context.Context, input *GetSessionInput) (*GetSessionOutput, error)

	// CancelSession abandons the active session without consuming anything
	CancelSession(ctx context.Context, input *CancelSessionInput) (*CancelSessionOutput, error)

	// Craft resolves the active session, consuming materials and minting the
	// output card on success
	Craft(ctx context.Context, input *CraftInput) (*CraftOutput, error)

	// GetHistory retrieves the player's crafting history, newest first
	GetHistory(ctx context.Context, input *GetHistoryInput) (*GetHistoryOutput, error)

	// ListRecipes returns the crafting recipe table
	ListRecipes(ctx context.Context, input *ListRecipesInput) (*ListRecipesOutput, error)
}

// StartSessionInput defines the input for starting a session
type StartSessionInput struct {
	PlayerID string
	RecipeID string
}

// StartSessionOutput defines the output for starting a session
type StartSessionOutput struct {
	Session *entities.CraftingSession
	Recipe  *entities.CraftingRecipe
}

// SelectCardInput defines the input for selecting a card
type SelectCardInput struct {
	PlayerID string
	CardID   string
	Holo     bool
}

// SelectCardOutput defines the output for selecting a card
type SelectCardOutput struct {
	Session *entities.CraftingSession
}

// DeselectCardInput defines the input for deselecting a card
type DeselectCardInput struct {
	PlayerID string
	CardID   string
	Holo     bool
}

// DeselectCardOutput defines the output for deselecting a card
type DeselectCardOutput struct {
	Session *entities.CraftingSession
}

// GetSessionInput defines the input for getting the active session
type GetSessionInput struct {
	PlayerID string
}

// GetSessionOutput defines the output for getting the active session
type GetSessionOutput struct {
	Session *entities.CraftingSession
	Recipe  *entities.CraftingRecipe
}

// CancelSessionInput defines the input for cancelling the active session
type CancelSessionInput struct {
	PlayerID string
}

// CancelSessionOutput defines the output for cancelling the active session
type CancelSessionOutput struct{}

// CraftInput defines the input for resolving the active session
type CraftInput struct {
	PlayerID string
}

// CraftOutput defines the output for resolving the active session
type CraftOutput struct {
	Record        *entities.CraftingRecord
	OutputCard    *entities.Card
	AwardedBadges []entities.Badge
}

// GetHistoryInput defines the input for listing crafting history
type GetHistoryInput struct {
	PlayerID string
	Limit    int64
}

// GetHistoryOutput defines the output for listing crafting history
type GetHistoryOutput struct {
	Records []*entities.CraftingRecord
}

// ListRecipesInput defines the input for listing recipes
type ListRecipesInput struct{}

// ListRecipesOutput defines the output for listing recipes
type ListRecipesOutput struct {
	Recipes []*entities.CraftingRecipe
}

// Config holds the dependencies for the crafting orchestrator
type Config struct {
	Catalog         *catalog.Catalog
	CraftingRepo    craftingrepo.Repository
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
	if c.CraftingRepo == nil {
		vb.RequiredField("CraftingRepo")
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
	craftingRepo    craftingrepo.Repository
	collectionRepo  collection.Repository
	profileRepo     profile.Repository
	leaderboardRepo leaderboard.Repository
	resolver        *engine.CraftResolver
	roller          dice.Roller
	idGen           idgen.Generator
	clock           clock.Clock
}

// NewOrchestrator creates a new crafting orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	resolver, err := engine.NewCraftResolver(cfg.Roller)
	if err != nil {
		return nil, err
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	return &orchestrator{
		catalog:         cfg.Catalog,
		craftingRepo:    cfg.CraftingRepo,
		collectionRepo:  cfg.CollectionRepo,
		profileRepo:     cfg.ProfileRepo,
		leaderboardRepo: cfg.LeaderboardRepo,
		resolver:        resolver,
		roller:          cfg.Roller,
		idGen:           cfg.IDGenerator,
		clock:           c,
	}, nil
}

func (o *orchestrator) StartSession(ctx context.Context, input *StartSessionInput) (*StartSessionOutput, error) {
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument("player ID is required")
	}
	recipe, err := engine.RecipeByID(input.RecipeID)
	if err != nil {
		return nil, err
	}

	if _, err := o.craftingRepo.GetSession(ctx, craftingrepo.GetSessionInput{PlayerID: input.PlayerID}); err == nil {
		return nil, errors.FailedPrecondition("player already has an active crafting session")
	} else if !errors.IsNotFound(err) {
		return nil, errors.Wrap(err, "failed to check for active session")
	}

	session := &entities.CraftingSession{
		ID:        o.idGen.Generate(),
		PlayerID:  input.PlayerID,
		RecipeID:  recipe.ID,
		CardIDs:   []string{},
		State:     entities.CraftingStateSelecting,
		StartedAt: o.clock.Now().Unix(),
	}
	if _, err := o.craftingRepo.SaveSession(ctx, craftingrepo.SaveSessionInput{Session: session}); err != nil {
		return nil, errors.Wrap(err, "failed to save session")
	}

	return &StartSessionOutput{Session: session, Recipe: recipe}, nil
}

func (o *orchestrator) SelectCard(ctx context.Context, input *SelectCardInput) (*SelectCardOutput, error) {
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument("player ID is required")
	}
	if input.CardID == "" {
		return nil, errors.InvalidArgument("card ID is required")
	}

	session, recipe, err := o.activeSession(ctx, input.PlayerID)
	if err != nil {
		return nil, err
	}
	if int32(len(session.CardIDs)) >= recipe.InputCount {
		return nil, errors.FailedPreconditionf("recipe %s takes %d cards", recipe.ID, recipe.InputCount)
	}

	card, err := o.catalog.Get(input.CardID)
	if err != nil {
		return nil, err
	}
	if card.Rarity != recipe.InputRarity {
		return nil, errors.InvalidArgumentf(
			"recipe %s takes %s cards, %s is %s", recipe.ID, recipe.InputRarity, card.ID, card.Rarity)
	}

	key := entryKey(input.CardID, input.Holo)
	owned, err := o.ownedCopies(ctx, input.PlayerID, key)
	if err != nil {
		return nil, err
	}
	if owned <= selectedCopies(session.CardIDs, key) {
		return nil, errors.FailedPreconditionf("no unselected copy of %s available", key)
	}

	session.CardIDs = append(session.CardIDs, key)
	if _, err := o.craftingRepo.SaveSession(ctx, craftingrepo.SaveSessionInput{Session: session}); err != nil {
		return nil, errors.Wrap(err, "failed to save session")
	}

	return &SelectCardOutput{Session: session}, nil
}

func (o *orchestrator) DeselectCard(ctx context.Context, input *DeselectCardInput) (*DeselectCardOutput, error) {
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument("player ID is required")
	}

	session, _, err := o.activeSession(ctx, input.PlayerID)
	if err != nil {
		return nil, err
	}

	key := entryKey(input.CardID, input.Holo)
	removed := false
	for i, selected := range session.CardIDs {
		if selected == key {
			session.CardIDs = append(session.CardIDs[:i], session.CardIDs[i+1:]...)
			removed = true
			break
		}
	}
	if !removed {
		return nil, errors.NotFoundf("%s is not selected", key)
	}

	if _, err := o.craftingRepo.SaveSession(ctx, craftingrepo.SaveSessionInput{Session: session}); err != nil {
		return nil, errors.Wrap(err, "failed to save session")
	}

	return &DeselectCardOutput{Session: session}, nil
}

func (o *orchestrator) GetSession(ctx context.Context, input *GetSessionInput) (*GetSessionOutput, error) {
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument("player ID is required")
	}

	session, recipe, err := o.activeSession(ctx, input.PlayerID)
	if err != nil {
		return nil, err
	}
	return &GetSessionOutput{Session: session, Recipe: recipe}, nil
}

func (o *orchestrator) CancelSession(ctx context.Context, input *CancelSessionInput) (*CancelSessionOutput, error) {
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument("player ID is required")
	}

	if _, err := o.craftingRepo.DeleteSession(ctx, craftingrepo.DeleteSessionInput{PlayerID: input.PlayerID}); err != nil {
		return nil, err
	}
	return &CancelSessionOutput{}, nil
}

func (o *orchestrator) Craft(ctx context.Context, input *CraftInput) (*CraftOutput, error) {
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument("player ID is required")
	}

	session, recipe, err := o.activeSession(ctx, input.PlayerID)
	if err != nil {
		return nil, err
	}
	if int32(len(session.CardIDs)) != recipe.InputCount {
		return nil, errors.FailedPreconditionf(
			"recipe %s needs %d cards selected, have %d", recipe.ID, recipe.InputCount, len(session.CardIDs))
	}

	getOut, err := o.collectionRepo.Get(ctx, collection.GetInput{PlayerID: input.PlayerID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to load collection")
	}
	col := getOut.Collection

	// Selections may have gone stale since they were made
	for _, key := range dedupe(session.CardIDs) {
		owned := int32(0)
		if entry, ok := col.Cards[key]; ok {
			owned = entry.Count
		}
		if owned < selectedCopies(session.CardIDs, key) {
			return nil, errors.FailedPreconditionf("selected copy of %s is no longer owned", key)
		}
	}

	outcome, err := o.resolver.Resolve(recipe, session.CardIDs)
	if err != nil {
		return nil, err
	}

	now := o.clock.Now().Unix()
	for _, key := range outcome.ConsumedIDs {
		removeCopy(col, key)
	}

	record := &entities.CraftingRecord{
		ID:          o.idGen.Generate(),
		PlayerID:    input.PlayerID,
		RecipeID:    recipe.ID,
		ConsumedIDs: outcome.ConsumedIDs,
		ReturnedIDs: outcome.ReturnedIDs,
		Success:     outcome.Success,
		ResolvedAt:  now,
	}

	prof, err := o.loadOrCreateProfile(ctx, input.PlayerID)
	if err != nil {
		return nil, err
	}

	var outputCard *entities.Card
	if outcome.Success {
		outputCard, record.OutputHolo, err = o.mintOutput(recipe)
		if err != nil {
			return nil, err
		}
		record.OutputCardID = outputCard.ID
		addCopy(col, outputCard.ID, record.OutputHolo, now)
		prof.Stats.CraftsSucceeded++
	} else {
		prof.Stats.CraftsFailed++
	}

	awarded := engine.AwardBadges(prof, now)

	if _, err := o.collectionRepo.Save(ctx, collection.SaveInput{Collection: col}); err != nil {
		return nil, errors.Wrap(err, "failed to save collection")
	}
	if _, err := o.profileRepo.Save(ctx, profile.SaveInput{Profile: prof}); err != nil {
		return nil, errors.Wrap(err, "failed to save profile")
	}

	score, err := engine.CollectionScore(o.catalog, col)
	if err != nil {
		return nil, errors.Wrap(err, "failed to score collection")
	}
	if _, err := o.leaderboardRepo.SetScore(ctx, leaderboard.SetScoreInput{
		PlayerID: input.PlayerID,
		Score:    score,
	}); err != nil {
		return nil, errors.Wrap(err, "failed to update leaderboard")
	}

	if _, err := o.craftingRepo.AddRecord(ctx, craftingrepo.AddRecordInput{Record: record}); err != nil {
		return nil, errors.Wrap(err, "failed to record craft")
	}
	if _, err := o.craftingRepo.DeleteSession(ctx, craftingrepo.DeleteSessionInput{PlayerID: input.PlayerID}); err != nil {
		return nil, errors.Wrap(err, "failed to close session")
	}

	slog.InfoContext(ctx, "craft resolved",
		"player_id", input.PlayerID,
		"recipe_id", recipe.ID,
		"success", outcome.Success,
		"output_card_id", record.OutputCardID,
	)

	return &CraftOutput{Record: record, OutputCard: outputCard, AwardedBadges: awarded}, nil
}

func (o *orchestrator) GetHistory(ctx context.Context, input *GetHistoryInput) (*GetHistoryOutput, error) {
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument("player ID is required")
	}

	listOut, err := o.craftingRepo.ListRecords(ctx, craftingrepo.ListRecordsInput{
		PlayerID: input.PlayerID,
		Limit:    input.Limit,
	})
	if err != nil {
		return nil, err
	}
	return &GetHistoryOutput{Records: listOut.Records}, nil
}

func (o *orchestrator) ListRecipes(_ context.Context, _ *ListRecipesInput) (*ListRecipesOutput, error) {
	return &ListRecipesOutput{Recipes: engine.Recipes()}, nil
}

// activeSession loads the player's session together with its recipe
func (o *orchestrator) activeSession(ctx context.Context, playerID string) (*entities.CraftingSession, *entities.CraftingRecipe, error) {
	getOut, err := o.craftingRepo.GetSession(ctx, craftingrepo.GetSessionInput{PlayerID: playerID})
	if err != nil {
		return nil, nil, err
	}
	recipe, err := engine.RecipeByID(getOut.Session.RecipeID)
	if err != nil {
		return nil, nil, errors.Wrap(err, "session references unknown recipe")
	}
	return getOut.Session, recipe, nil
}

// mintOutput draws the crafted card and rolls its holo finish
func (o *orchestrator) mintOutput(recipe *entities.CraftingRecipe) (*entities.Card, bool, error) {
	drawn, err := o.catalog.Random(o.roller, catalog.RandomInput{
		Count:  1,
		Rarity: recipe.OutputRarity,
	})
	if err != nil {
		return nil, false, errors.Wrap(err, "failed to draw crafted card")
	}

	roll, err := o.roller.Roll(CraftedHoloDie)
	if err != nil {
		return nil, false, errors.Wrap(err, "failed to roll holo finish")
	}
	return drawn[0], roll == CraftedHoloDie, nil
}

func (o *orchestrator) ownedCopies(ctx context.Context, playerID, key string) (int32, error) {
	getOut, err := o.collectionRepo.Get(ctx, collection.GetInput{PlayerID: playerID})
	if err != nil {
		if errors.IsNotFound(err) {
			return 0, nil
		}
		return 0, errors.Wrap(err, "failed to load collection")
	}
	if entry, ok := getOut.Collection.Cards[key]; ok {
		return entry.Count, nil
	}
	return 0, nil
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

// entryKey mirrors entities.OwnedCard.Key for a card ID and finish
func entryKey(cardID string, holo bool) string {
	owned := entities.OwnedCard{CardID: cardID, Holo: holo}
	return owned.Key()
}

func selectedCopies(selected []string, key string) int32 {
	var n int32
	for _, s := range selected {
		if s == key {
			n++
		}
	}
	return n
}

func dedupe(keys []string) []string {
	seen := make(map[string]bool, len(keys))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	return out
}

// removeCopy decrements one copy at the entry key, dropping the entry at zero
func removeCopy(col *entities.Collection, key string) {
	entry, ok := col.Cards[key]
	if !ok {
		return
	}
	entry.Count--
	if entry.Count <= 0 {
		delete(col.Cards, key)
	}
}

// addCopy adds one copy of the card at the matching entry key
func addCopy(col *entities.Collection, cardID string, holo bool, now int64) {
	owned := &entities.OwnedCard{CardID: cardID, Holo: holo}
	key := owned.Key()
	if existing, ok := col.Cards[key]; ok {
		existing.Count++
		return
	}
	owned.Count = 1
	owned.ObtainedAt = now
	col.Cards[key] = owned
}
