package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/daddeck/daddeck-api/internal/entities"
	"github.com/daddeck/daddeck-api/internal/errors"
	"github.com/daddeck/daddeck-api/internal/orchestrators/collection"
)

// GetCollection returns a sorted, paginated view of a player's cards
func (h *Handler) GetCollection(c *gin.Context) {
	input := &collection.GetCollectionInput{
		PlayerID:  c.Param("playerID"),
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
	}

	page, err := intQuery(c, "page")
	if err != nil {
		respondError(c, err)
		return
	}
	pageSize, err := intQuery(c, "pageSize")
	if err != nil {
		respondError(c, err)
		return
	}
	input.Page = int32(page)
	input.PageSize = int32(pageSize)

	out, err := h.collectionService.GetCollection(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{
		"playerId":    out.PlayerID,
		"entries":     out.Entries,
		"totalCards":  out.TotalCards,
		"uniqueCards": out.UniqueCards,
		"score":       out.Score,
		"page":        out.Page,
		"pageSize":    out.PageSize,
		"totalPages":  out.TotalPages,
	})
}

// ExportCollection produces a versioned backup document for download
func (h *Handler) ExportCollection(c *gin.Context) {
	out, err := h.collectionService.Export(c.Request.Context(), &collection.ExportInput{
		PlayerID: c.Param("playerID"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"backup": out.Backup})
}

type importCollectionRequest struct {
	Backup *entities.CollectionBackup `json:"backup"`
}

// ImportCollection replaces a player's collection from a backup document
func (h *Handler) ImportCollection(c *gin.Context) {
	var req importCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.InvalidArgumentf("invalid request body: %v", err))
		return
	}

	out, err := h.collectionService.Import(c.Request.Context(), &collection.ImportInput{
		PlayerID: c.Param("playerID"),
		Backup:   req.Backup,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{
		"imported": out.Imported,
		"skipped":  out.Skipped,
	})
}
