package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/daddeck/daddeck-api/internal/entities"
	"github.com/daddeck/daddeck-api/internal/errors"
	"github.com/daddeck/daddeck-api/internal/orchestrators/packs"
)

type generatePacksRequest struct {
	PlayerID string `json:"playerId"`
	Type     string `json:"type"`
	Count    int32  `json:"count"`
	Design   string `json:"design"`
	Series   int32  `json:"series"`
}

// GeneratePacks opens one or more packs for a player
func (h *Handler) GeneratePacks(c *gin.Context) {
	var req generatePacksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.InvalidArgumentf("invalid request body: %v", err))
		return
	}
	if req.Type == "" {
		req.Type = string(entities.PackTypeStandard)
	}
	if req.Count == 0 {
		req.Count = 1
	}

	out, err := h.packService.GeneratePacks(c.Request.Context(), &packs.GeneratePacksInput{
		PlayerID: req.PlayerID,
		Type:     entities.PackType(req.Type),
		Count:    req.Count,
		Design:   req.Design,
		Series:   req.Series,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{
		"packs":         out.Packs,
		"awardedBadges": out.AwardedBadges,
	})
}
