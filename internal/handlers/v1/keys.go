package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/daddeck/daddeck-api/internal/entities"
	"github.com/daddeck/daddeck-api/internal/errors"
	"github.com/daddeck/daddeck-api/internal/orchestrators/auth"
)

type createKeyRequest struct {
	Name           string   `json:"name"`
	Tier           string   `json:"tier"`
	ExpiresAt      int64    `json:"expiresAt"`
	AllowedOrigins []string `json:"allowedOrigins"`
}

// CreateKey issues a new API key. The secret appears only in this response.
func (h *Handler) CreateKey(c *gin.Context) {
	var req createKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.InvalidArgumentf("invalid request body: %v", err))
		return
	}
	if req.Tier == "" {
		req.Tier = string(entities.TierFree)
	}

	out, err := h.authService.CreateKey(c.Request.Context(), &auth.CreateKeyInput{
		Name:           req.Name,
		Tier:           entities.APITier(req.Tier),
		ExpiresAt:      req.ExpiresAt,
		AllowedOrigins: req.AllowedOrigins,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusCreated, gin.H{"apiKey": out.APIKey})
}

// ListKeys returns all issued keys with secrets stripped
func (h *Handler) ListKeys(c *gin.Context) {
	out, err := h.authService.ListKeys(c.Request.Context(), &auth.ListKeysInput{})
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"apiKeys": out.APIKeys})
}

// RevokeKey marks a key revoked by its record ID
func (h *Handler) RevokeKey(c *gin.Context) {
	_, err := h.authService.RevokeKey(c.Request.Context(), &auth.RevokeKeyInput{
		ID: c.Param("id"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"revoked": true})
}
