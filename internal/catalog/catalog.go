// Package catalog holds the static card database and its query operations.
// The card set ships embedded in the binary; a Catalog is immutable after
// load so it is safe for concurrent readers.
package catalog

import (
	_ "embed"
	"encoding/json"
	"sort"
	"strings"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/daddeck/daddeck-api/internal/entities"
	"github.com/daddeck/daddeck-api/internal/errors"
)

//go:embed data/cards.json
var embeddedCards []byte

const (
	// MaxRandomCount caps a single random draw request
	MaxRandomCount = 10

	// DefaultPageSize is used when a list request does not set one
	DefaultPageSize = 50
	// MaxPageSize caps cards per page
	MaxPageSize = 100
)

type cardFile struct {
	Cards []*entities.Card `json:"cards"`
}

// Catalog is the loaded card database
type Catalog struct {
	byID     map[string]*entities.Card
	ordered  []*entities.Card
	byRarity map[entities.Rarity][]*entities.Card
}

// New loads the embedded card set
func New() (*Catalog, error) {
	return Load(embeddedCards)
}

// Load parses and validates a card set from JSON
func Load(data []byte) (*Catalog, error) {
	var file cardFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrap(err, "failed to parse card data")
	}
	if len(file.Cards) == 0 {
		return nil, errors.InvalidArgument("card data contains no cards")
	}

	c := &Catalog{
		byID:     make(map[string]*entities.Card, len(file.Cards)),
		ordered:  make([]*entities.Card, 0, len(file.Cards)),
		byRarity: make(map[entities.Rarity][]*entities.Card),
	}

	for _, card := range file.Cards {
		if err := validateCard(card); err != nil {
			return nil, err
		}
		if _, exists := c.byID[card.ID]; exists {
			return nil, errors.InvalidArgumentf("duplicate card ID %q", card.ID)
		}
		c.byID[card.ID] = card
		c.ordered = append(c.ordered, card)
		c.byRarity[card.Rarity] = append(c.byRarity[card.Rarity], card)
	}

	sort.Slice(c.ordered, func(i, j int) bool {
		return c.ordered[i].ID < c.ordered[j].ID
	})

	return c, nil
}

func validateCard(card *entities.Card) error {
	vb := errors.NewValidationBuilder()

	if card.ID == "" {
		vb.RequiredField("ID")
	}
	if card.Name == "" {
		vb.RequiredField("Name")
	}
	if !card.Rarity.IsValid() {
		vb.InvalidField("Rarity", string(card.Rarity))
	}
	if !card.Type.IsValid() {
		vb.InvalidField("Type", string(card.Type))
	}
	for _, stat := range []struct {
		name  string
		value int32
	}{
		{"Stats.Attack", card.Stats.Attack},
		{"Stats.Defense", card.Stats.Defense},
		{"Stats.Speed", card.Stats.Speed},
		{"Stats.Stamina", card.Stats.Stamina},
	} {
		if stat.value < 0 || stat.value > 100 {
			vb.Fieldf(stat.name, "must be between 0 and 100, got %d", stat.value)
		}
	}
	for i, ability := range card.Abilities {
		if ability.Name == "" {
			vb.Fieldf("Abilities", "ability %d has no name", i)
		}
		if !ability.Effect.IsValid() {
			vb.Fieldf("Abilities", "ability %q has unknown effect %q", ability.Name, ability.Effect)
		}
		if ability.Target != entities.TargetSelf && ability.Target != entities.TargetOpponent {
			vb.Fieldf("Abilities", "ability %q has unknown target %q", ability.Name, ability.Target)
		}
		if ability.Chance < 1 || ability.Chance > 100 {
			vb.Fieldf("Abilities", "ability %q chance must be between 1 and 100", ability.Name)
		}
		if ability.Duration < 1 {
			vb.Fieldf("Abilities", "ability %q duration must be at least 1", ability.Name)
		}
	}

	if err := vb.Build(); err != nil {
		return errors.Wrapf(err, "invalid card %q", card.ID)
	}
	return nil
}

// Size returns the number of cards in the catalog
func (c *Catalog) Size() int {
	return len(c.ordered)
}

// Get returns a card by ID
func (c *Catalog) Get(id string) (*entities.Card, error) {
	if id == "" {
		return nil, errors.InvalidArgument("card ID cannot be empty")
	}
	card, ok := c.byID[id]
	if !ok {
		return nil, errors.NotFoundf("card with ID %s not found", id)
	}
	return card, nil
}

// Has reports whether a card ID exists in the catalog
func (c *Catalog) Has(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// ByRarity returns all cards of the given rarity in ID order
func (c *Catalog) ByRarity(rarity entities.Rarity) []*entities.Card {
	return c.byRarity[rarity]
}

// SeriesView is a rarity-pool view of the catalog restricted to one series
type SeriesView struct {
	byRarity map[entities.Rarity][]*entities.Card
}

// SeriesView builds a view over the given series. Fails when no card
// carries the series number.
func (c *Catalog) SeriesView(series int32) (*SeriesView, error) {
	view := &SeriesView{byRarity: make(map[entities.Rarity][]*entities.Card)}
	for _, card := range c.ordered {
		if card.Series == series {
			view.byRarity[card.Rarity] = append(view.byRarity[card.Rarity], card)
		}
	}
	if len(view.byRarity) == 0 {
		return nil, errors.InvalidArgumentf("no cards in series %d", series)
	}
	return view, nil
}

// ByRarity returns the series' cards of the given rarity in ID order
func (v *SeriesView) ByRarity(rarity entities.Rarity) []*entities.Card {
	return v.byRarity[rarity]
}

// ListInput filters and paginates a catalog listing
type ListInput struct {
	Page     int
	PageSize int
	Rarity   entities.Rarity
	Type     entities.DadType
	Series   int32
	Search   string
}

// Pagination describes a page of results
type Pagination struct {
	Page       int  `json:"page"`
	PageSize   int  `json:"pageSize"`
	TotalCards int  `json:"totalCards"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
}

// ListOutput is a page of catalog cards
type ListOutput struct {
	Cards      []*entities.Card
	Pagination Pagination
}

// List returns cards matching the filters, paginated
func (c *Catalog) List(input ListInput) (*ListOutput, error) {
	if input.Rarity != "" && !input.Rarity.IsValid() {
		return nil, errors.InvalidArgumentf("unknown rarity %q", input.Rarity)
	}
	if input.Type != "" && !input.Type.IsValid() {
		return nil, errors.InvalidArgumentf("unknown type %q", input.Type)
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

	search := strings.ToLower(strings.TrimSpace(input.Search))

	var matched []*entities.Card
	for _, card := range c.ordered {
		if input.Rarity != "" && card.Rarity != input.Rarity {
			continue
		}
		if input.Type != "" && card.Type != input.Type {
			continue
		}
		if input.Series != 0 && card.Series != input.Series {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(card.Name), search) &&
			!strings.Contains(strings.ToLower(card.FlavorText), search) {
			continue
		}
		matched = append(matched, card)
	}

	total := len(matched)
	totalPages := (total + pageSize - 1) / pageSize
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	return &ListOutput{
		Cards: matched[start:end],
		Pagination: Pagination{
			Page:       page,
			PageSize:   pageSize,
			TotalCards: total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
		},
	}, nil
}

// RandomInput selects random cards from the catalog
type RandomInput struct {
	Count   int
	Rarity  entities.Rarity
	Type    entities.DadType
	Exclude []string
}

// Random draws cards without replacement using the provided roller
func (c *Catalog) Random(roller dice.Roller, input RandomInput) ([]*entities.Card, error) {
	if roller == nil {
		return nil, errors.InvalidArgument("roller cannot be nil")
	}
	if input.Count < 1 || input.Count > MaxRandomCount {
		return nil, errors.InvalidArgumentf("count must be between 1 and %d", MaxRandomCount)
	}
	if input.Rarity != "" && !input.Rarity.IsValid() {
		return nil, errors.InvalidArgumentf("unknown rarity %q", input.Rarity)
	}
	if input.Type != "" && !input.Type.IsValid() {
		return nil, errors.InvalidArgumentf("unknown type %q", input.Type)
	}

	excluded := make(map[string]bool, len(input.Exclude))
	for _, id := range input.Exclude {
		excluded[id] = true
	}

	var pool []*entities.Card
	for _, card := range c.ordered {
		if input.Rarity != "" && card.Rarity != input.Rarity {
			continue
		}
		if input.Type != "" && card.Type != input.Type {
			continue
		}
		if excluded[card.ID] {
			continue
		}
		pool = append(pool, card)
	}

	if len(pool) < input.Count {
		return nil, errors.FailedPreconditionf(
			"not enough cards match the filters: need %d, have %d", input.Count, len(pool))
	}

	drawn := make([]*entities.Card, 0, input.Count)
	for i := 0; i < input.Count; i++ {
		roll, err := roller.Roll(len(pool))
		if err != nil {
			return nil, errors.Wrap(err, "failed to roll")
		}
		idx := roll - 1
		drawn = append(drawn, pool[idx])
		pool = append(pool[:idx], pool[idx+1:]...)
	}

	return drawn, nil
}
