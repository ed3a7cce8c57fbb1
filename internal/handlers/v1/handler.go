// Package v1 exposes the REST API surface
package v1

import (
	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/gin-gonic/gin"

	"github.com/daddeck/daddeck-api/internal/catalog"
	"github.com/daddeck/daddeck-api/internal/errors"
	"github.com/daddeck/daddeck-api/internal/events"
	"github.com/daddeck/daddeck-api/internal/orchestrators/auth"
	"github.com/daddeck/daddeck-api/internal/orchestrators/battle"
	"github.com/daddeck/daddeck-api/internal/orchestrators/collection"
	"github.com/daddeck/daddeck-api/internal/orchestrators/crafting"
	"github.com/daddeck/daddeck-api/internal/orchestrators/packs"
	"github.com/daddeck/daddeck-api/internal/orchestrators/profile"
	"github.com/daddeck/daddeck-api/internal/pkg/clock"
)

// HandlerConfig holds dependencies for the handler
type HandlerConfig struct {
	Catalog           *catalog.Catalog
	Events            *events.Table
	Roller            dice.Roller
	PackService       packs.Service
	BattleService     battle.Service
	CraftingService   crafting.Service
	CollectionService collection.Service
	ProfileService    profile.Service
	AuthService       auth.Service
	Clock             clock.Clock
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Catalog == nil {
		vb.RequiredField("Catalog")
	}
	if c.Events == nil {
		vb.RequiredField("Events")
	}
	if c.Roller == nil {
		vb.RequiredField("Roller")
	}
	if c.PackService == nil {
		vb.RequiredField("PackService")
	}
	if c.BattleService == nil {
		vb.RequiredField("BattleService")
	}
	if c.CraftingService == nil {
		vb.RequiredField("CraftingService")
	}
	if c.CollectionService == nil {
		vb.RequiredField("CollectionService")
	}
	if c.ProfileService == nil {
		vb.RequiredField("ProfileService")
	}
	if c.AuthService == nil {
		vb.RequiredField("AuthService")
	}

	return vb.Build()
}

// Handler implements the v1 REST API
type Handler struct {
	catalog           *catalog.Catalog
	events            *events.Table
	roller            dice.Roller
	packService       packs.Service
	battleService     battle.Service
	craftingService   crafting.Service
	collectionService collection.Service
	profileService    profile.Service
	authService       auth.Service
	clock             clock.Clock
}

// NewHandler creates a new handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	clk := cfg.Clock
	if clk == nil {
		clk = clock.New()
	}

	return &Handler{
		catalog:           cfg.Catalog,
		events:            cfg.Events,
		roller:            cfg.Roller,
		packService:       cfg.PackService,
		battleService:     cfg.BattleService,
		craftingService:   cfg.CraftingService,
		collectionService: cfg.CollectionService,
		profileService:    cfg.ProfileService,
		authService:       cfg.AuthService,
		clock:             clk,
	}, nil
}

// RegisterRoutes mounts the v1 API onto the router group. The middleware
// list runs on every route after request ID assignment.
func (h *Handler) RegisterRoutes(r gin.IRouter, middleware ...gin.HandlerFunc) {
	v1 := r.Group("/v1", append([]gin.HandlerFunc{RequestID()}, middleware...)...)

	cards := v1.Group("/cards")
	{
		cards.GET("", h.ListCards)
		cards.GET("/:id", h.GetCard)
		cards.POST("/random", h.RandomCards)
	}

	v1.POST("/packs/generate", h.GeneratePacks)

	collections := v1.Group("/collections")
	{
		collections.GET("/:playerID", h.GetCollection)
		collections.GET("/:playerID/export", h.ExportCollection)
		collections.POST("/:playerID/import", h.ImportCollection)
	}

	v1.POST("/battles/simulate", h.SimulateBattle)

	craftGroup := v1.Group("/crafting")
	{
		craftGroup.GET("/recipes", h.ListRecipes)
		craftGroup.POST("/sessions", h.StartCraftingSession)
		craftGroup.GET("/sessions/:playerID", h.GetCraftingSession)
		craftGroup.DELETE("/sessions/:playerID", h.CancelCraftingSession)
		craftGroup.POST("/sessions/:playerID/select", h.SelectCraftingCard)
		craftGroup.POST("/sessions/:playerID/deselect", h.DeselectCraftingCard)
		craftGroup.POST("/sessions/:playerID/craft", h.Craft)
		craftGroup.GET("/history/:playerID", h.GetCraftingHistory)
	}

	profiles := v1.Group("/profiles")
	{
		profiles.GET("/:playerID", h.GetProfile)
		profiles.PATCH("/:playerID", h.UpdateProfile)
	}

	v1.GET("/leaderboard", h.GetLeaderboard)

	eventGroup := v1.Group("/events")
	{
		eventGroup.GET("", h.ListEvents)
		eventGroup.GET("/:id", h.GetEvent)
	}

	keys := v1.Group("/auth/keys")
	{
		keys.POST("", h.CreateKey)
		keys.GET("", h.ListKeys)
		keys.DELETE("/:id", h.RevokeKey)
	}
}
