// Package collection implements the collection view and backup orchestrator
package collection

//go:generate mockgen -destination=mock/mock_service.go -package=collectionmock github.com/daddeck/daddeck-api/internal/orchestrators/collection Service

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/daddeck/daddeck-api/internal/catalog"
	"github.com/daddeck/daddeck-api/internal/engine"
	"github.com/daddeck/daddeck-api/internal/entities"
	"github.com/daddeck/daddeck-api/internal/errors"
	"github.com/daddeck/daddeck-api/internal/pkg/clock"
	collectionrepo "github.com/daddeck/daddeck-api/internal/repositories/collection"
	"github.com/daddeck/daddeck-api/internal/repositories/leaderboard"
)

// Sort fields for collection views
const (
	SortByRarity = "rarity"
	SortByName   = "name"
	SortByDate   = "date"
)

// Sort directions. Each sort field has a natural default: rarity and date
// read highest and newest first, names read alphabetically.
const (
	SortOrderAsc  = "asc"
	SortOrderDesc = "desc"
)

const (
	// DefaultPageSize is used when a view request does not set one
	DefaultPageSize = 50
	// MaxPageSize caps entries per page
	MaxPageSize = 100
	// MaxBackupEntries caps the entries an imported backup may carry
	MaxBackupEntries = 10000
)

// Entry is one collection row joined with its card data
type Entry struct {
	Card       *entities.Card `json:"card"`
	Holo       bool           `json:"holo"`
	Count      int32          `json:"count"`
	ObtainedAt int64          `json:"obtainedAt"`
}

// Service defines the interface for collection operations
type Service interface {
	// GetCollection returns a sorted, paginated view of a player's cards
	GetCollection(ctx context.Context, input *GetCollectionInput) (*GetCollectionOutput, error)

	// Export produces a versioned JSON backup document
	Export(ctx context.Context, input *ExportInput) (*ExportOutput, error)

	// Import validates a backup document and replaces the player's collection
	Import(ctx context.Context, input *ImportInput) (*ImportOutput, error)
}

// GetCollectionInput defines the input for a collection view
type GetCollectionInput struct {
	PlayerID  string
	SortBy    string // rarity, name, or date; defaults to rarity
	SortOrder string // asc or desc; defaults per field
	Page      int32
	PageSize  int32
}

// GetCollectionOutput defines the output for a collection view
type GetCollectionOutput struct {
	PlayerID    string
	Entries     []*Entry
	TotalCards  int32
	UniqueCards int32
	Score       int64
	Page        int32
	PageSize    int32
	TotalPages  int32
}

// ExportInput defines the input for exporting a backup
type ExportInput struct {
	PlayerID string
}

// ExportOutput defines the output for exporting a backup
type ExportOutput struct {
	Backup *entities.CollectionBackup
}

// ImportInput defines the input for importing a backup
type ImportInput struct {
	PlayerID string
	Backup   *entities.CollectionBackup
}

// ImportOutput defines the output for importing a backup
type ImportOutput struct {
	Imported int32 // entries accepted
	Skipped  int32 // entries dropped for unknown card IDs
}

// Config holds the dependencies for the collection orchestrator
type Config struct {
	Catalog         *catalog.Catalog
	CollectionRepo  collectionrepo.Repository
	LeaderboardRepo leaderboard.Repository
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
	if c.LeaderboardRepo == nil {
		vb.RequiredField("LeaderboardRepo")
	}

	return vb.Build()
}

type orchestrator struct {
	catalog         *catalog.Catalog
	collectionRepo  collectionrepo.Repository
	leaderboardRepo leaderboard.Repository
	clock           clock.Clock
}

// NewOrchestrator creates a new collection orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	return &orchestrator{
		catalog:         cfg.Catalog,
		collectionRepo:  cfg.CollectionRepo,
		leaderboardRepo: cfg.LeaderboardRepo,
		clock:           c,
	}, nil
}

func (o *orchestrator) GetCollection(ctx context.Context, input *GetCollectionInput) (*GetCollectionOutput, error) {
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument("player ID is required")
	}

	sortBy := input.SortBy
	if sortBy == "" {
		sortBy = SortByRarity
	}
	switch sortBy {
	case SortByRarity, SortByName, SortByDate:
	default:
		return nil, errors.InvalidArgumentf("unknown sort field: %s", input.SortBy)
	}

	descending := sortBy != SortByName
	switch input.SortOrder {
	case "":
	case SortOrderAsc:
		descending = false
	case SortOrderDesc:
		descending = true
	default:
		return nil, errors.InvalidArgumentf("unknown sort order: %s", input.SortOrder)
	}

	col, err := o.loadOrEmpty(ctx, input.PlayerID)
	if err != nil {
		return nil, err
	}

	entries := make([]*Entry, 0, len(col.Cards))
	for _, owned := range col.Cards {
		card, err := o.catalog.Get(owned.CardID)
		if err != nil {
			if errors.IsNotFound(err) {
				slog.WarnContext(ctx, "collection entry references unknown card",
					"player_id", input.PlayerID,
					"card_id", owned.CardID)
				continue
			}
			return nil, err
		}
		entries = append(entries, &Entry{
			Card:       card,
			Holo:       owned.Holo,
			Count:      owned.Count,
			ObtainedAt: owned.ObtainedAt,
		})
	}

	sortEntries(entries, sortBy, descending)

	score, err := engine.CollectionScore(o.catalog, col)
	if err != nil {
		return nil, errors.Wrap(err, "failed to score collection")
	}

	page := input.Page
	if page < 1 {
		page = 1
	}
	pageSize := input.PageSize
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	total := int32(len(entries))
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages == 0 {
		totalPages = 1
	}

	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	return &GetCollectionOutput{
		PlayerID:    input.PlayerID,
		Entries:     entries[start:end],
		TotalCards:  col.TotalCards(),
		UniqueCards: total,
		Score:       score,
		Page:        page,
		PageSize:    pageSize,
		TotalPages:  totalPages,
	}, nil
}

func (o *orchestrator) Export(ctx context.Context, input *ExportInput) (*ExportOutput, error) {
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument("player ID is required")
	}

	col, err := o.loadOrEmpty(ctx, input.PlayerID)
	if err != nil {
		return nil, err
	}

	cards := make([]entities.OwnedCard, 0, len(col.Cards))
	for _, owned := range col.Cards {
		cards = append(cards, *owned)
	}
	sort.Slice(cards, func(i, j int) bool {
		if cards[i].CardID != cards[j].CardID {
			return cards[i].CardID < cards[j].CardID
		}
		return !cards[i].Holo && cards[j].Holo
	})

	return &ExportOutput{Backup: &entities.CollectionBackup{
		Version:    entities.BackupVersion,
		PlayerID:   input.PlayerID,
		ExportedAt: o.clock.Now().Unix(),
		Cards:      cards,
	}}, nil
}

func (o *orchestrator) Import(ctx context.Context, input *ImportInput) (*ImportOutput, error) {
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument("player ID is required")
	}
	if input.Backup == nil {
		return nil, errors.InvalidArgument("backup is required")
	}
	if input.Backup.Version != entities.BackupVersion {
		return nil, errors.InvalidArgumentf(
			"unsupported backup version %d, want %d", input.Backup.Version, entities.BackupVersion)
	}
	if len(input.Backup.Cards) > MaxBackupEntries {
		return nil, errors.InvalidArgumentf("backup exceeds %d entries", MaxBackupEntries)
	}

	now := o.clock.Now().Unix()
	col := &entities.Collection{
		PlayerID: input.PlayerID,
		Cards:    make(map[string]*entities.OwnedCard, len(input.Backup.Cards)),
	}

	var imported, skipped int32
	for i := range input.Backup.Cards {
		entry := input.Backup.Cards[i]
		if entry.CardID == "" {
			return nil, errors.InvalidArgumentf("backup entry %d has no card ID", i)
		}
		if entry.Count < 1 {
			return nil, errors.InvalidArgumentf("backup entry %s has count %d", entry.CardID, entry.Count)
		}
		if !o.catalog.Has(entry.CardID) {
			skipped++
			continue
		}

		if entry.ObtainedAt == 0 {
			entry.ObtainedAt = now
		}
		key := entry.Key()
		if existing, ok := col.Cards[key]; ok {
			existing.Count += entry.Count
		} else {
			col.Cards[key] = &entry
		}
		imported++
	}

	if _, err := o.collectionRepo.Save(ctx, collectionrepo.SaveInput{Collection: col}); err != nil {
		return nil, errors.Wrap(err, "failed to save collection")
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

	slog.InfoContext(ctx, "collection imported",
		"player_id", input.PlayerID,
		"imported", imported,
		"skipped", skipped,
	)

	return &ImportOutput{Imported: imported, Skipped: skipped}, nil
}

func (o *orchestrator) loadOrEmpty(ctx context.Context, playerID string) (*entities.Collection, error) {
	getOut, err := o.collectionRepo.Get(ctx, collectionrepo.GetInput{PlayerID: playerID})
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

// sortEntries orders by the primary sort field in the given direction.
// Ties always break by card ID then non-holo first, regardless of direction.
func sortEntries(entries []*Entry, sortBy string, descending bool) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if descending {
			a, b = b, a
		}
		switch sortBy {
		case SortByName:
			if a.Card.Name != b.Card.Name {
				return strings.ToLower(a.Card.Name) < strings.ToLower(b.Card.Name)
			}
		case SortByDate:
			if a.ObtainedAt != b.ObtainedAt {
				return a.ObtainedAt < b.ObtainedAt
			}
		default:
			if a.Card.Rarity != b.Card.Rarity {
				return a.Card.Rarity.Order() < b.Card.Rarity.Order()
			}
		}
		a, b = entries[i], entries[j]
		if a.Card.ID != b.Card.ID {
			return a.Card.ID < b.Card.ID
		}
		return !a.Holo && b.Holo
	})
}
