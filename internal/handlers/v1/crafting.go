package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/daddeck/daddeck-api/internal/errors"
	"github.com/daddeck/daddeck-api/internal/orchestrators/crafting"
)

// ListRecipes returns the full crafting recipe table
func (h *Handler) ListRecipes(c *gin.Context) {
	out, err := h.craftingService.ListRecipes(c.Request.Context(), &crafting.ListRecipesInput{})
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"recipes": out.Recipes})
}

type startSessionRequest struct {
	PlayerID string `json:"playerId"`
	RecipeID string `json:"recipeId"`
}

// StartCraftingSession opens a crafting session for a recipe
func (h *Handler) StartCraftingSession(c *gin.Context) {
	var req startSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.InvalidArgumentf("invalid request body: %v", err))
		return
	}

	out, err := h.craftingService.StartSession(c.Request.Context(), &crafting.StartSessionInput{
		PlayerID: req.PlayerID,
		RecipeID: req.RecipeID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusCreated, gin.H{
		"session": out.Session,
		"recipe":  out.Recipe,
	})
}

// GetCraftingSession returns a player's active session
func (h *Handler) GetCraftingSession(c *gin.Context) {
	out, err := h.craftingService.GetSession(c.Request.Context(), &crafting.GetSessionInput{
		PlayerID: c.Param("playerID"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{
		"session": out.Session,
		"recipe":  out.Recipe,
	})
}

// CancelCraftingSession abandons a player's active session
func (h *Handler) CancelCraftingSession(c *gin.Context) {
	_, err := h.craftingService.CancelSession(c.Request.Context(), &crafting.CancelSessionInput{
		PlayerID: c.Param("playerID"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"cancelled": true})
}

type selectCardRequest struct {
	CardID string `json:"cardId"`
	Holo   bool   `json:"holo"`
}

// SelectCraftingCard adds an owned card to the active session
func (h *Handler) SelectCraftingCard(c *gin.Context) {
	var req selectCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.InvalidArgumentf("invalid request body: %v", err))
		return
	}

	out, err := h.craftingService.SelectCard(c.Request.Context(), &crafting.SelectCardInput{
		PlayerID: c.Param("playerID"),
		CardID:   req.CardID,
		Holo:     req.Holo,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"session": out.Session})
}

// DeselectCraftingCard removes a card from the active session
func (h *Handler) DeselectCraftingCard(c *gin.Context) {
	var req selectCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.InvalidArgumentf("invalid request body: %v", err))
		return
	}

	out, err := h.craftingService.DeselectCard(c.Request.Context(), &crafting.DeselectCardInput{
		PlayerID: c.Param("playerID"),
		CardID:   req.CardID,
		Holo:     req.Holo,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"session": out.Session})
}

// Craft resolves the active session, consuming or returning materials
func (h *Handler) Craft(c *gin.Context) {
	out, err := h.craftingService.Craft(c.Request.Context(), &crafting.CraftInput{
		PlayerID: c.Param("playerID"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{
		"record":        out.Record,
		"outputCard":    out.OutputCard,
		"awardedBadges": out.AwardedBadges,
	})
}

// GetCraftingHistory lists a player's recent craft attempts, newest first
func (h *Handler) GetCraftingHistory(c *gin.Context) {
	var limit int64
	if raw := c.Query("limit"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			respondError(c, errors.InvalidArgumentf("limit must be an integer, got %q", raw))
			return
		}
		limit = v
	}

	out, err := h.craftingService.GetHistory(c.Request.Context(), &crafting.GetHistoryInput{
		PlayerID: c.Param("playerID"),
		Limit:    limit,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"records": out.Records})
}
