package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/daddeck/daddeck-api/internal/errors"
	"github.com/daddeck/daddeck-api/internal/orchestrators/battle"
)

type simulateBattleRequest struct {
	PlayerID       string `json:"playerId"`
	CardID         string `json:"cardId"`
	OpponentCardID string `json:"opponentCardId"`
}

// SimulateBattle runs a battle between an owned card and an opponent
func (h *Handler) SimulateBattle(c *gin.Context) {
	var req simulateBattleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.InvalidArgumentf("invalid request body: %v", err))
		return
	}

	out, err := h.battleService.SimulateBattle(c.Request.Context(), &battle.SimulateBattleInput{
		PlayerID:       req.PlayerID,
		CardID:         req.CardID,
		OpponentCardID: req.OpponentCardID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{
		"result":        out.Result,
		"playerCard":    out.PlayerCard,
		"opponentCard":  out.OpponentCard,
		"awardedBadges": out.AwardedBadges,
	})
}
