package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/daddeck/daddeck-api/internal/catalog"
	"github.com/daddeck/daddeck-api/internal/entities"
	"github.com/daddeck/daddeck-api/internal/errors"
)

// ListCards returns a filtered, paginated page of the card catalog
func (h *Handler) ListCards(c *gin.Context) {
	input := catalog.ListInput{
		Rarity: entities.Rarity(c.Query("rarity")),
		Type:   entities.DadType(c.Query("type")),
		Search: c.Query("search"),
	}

	var err error
	if input.Page, err = intQuery(c, "page"); err != nil {
		respondError(c, err)
		return
	}
	if input.PageSize, err = intQuery(c, "pageSize"); err != nil {
		respondError(c, err)
		return
	}

	series, err := intQuery(c, "series")
	if err != nil {
		respondError(c, err)
		return
	}
	input.Series = int32(series)

	out, err := h.catalog.List(input)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{
		"cards":      out.Cards,
		"pagination": out.Pagination,
	})
}

// GetCard returns a single card by ID
func (h *Handler) GetCard(c *gin.Context) {
	card, err := h.catalog.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"card": card})
}

type randomCardsRequest struct {
	Count   int      `json:"count"`
	Rarity  string   `json:"rarity"`
	Type    string   `json:"type"`
	Exclude []string `json:"exclude"`
}

// RandomCards draws random catalog cards matching optional filters
func (h *Handler) RandomCards(c *gin.Context) {
	var req randomCardsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.InvalidArgumentf("invalid request body: %v", err))
		return
	}
	if req.Count == 0 {
		req.Count = 1
	}

	cards, err := h.catalog.Random(h.roller, catalog.RandomInput{
		Count:   req.Count,
		Rarity:  entities.Rarity(req.Rarity),
		Type:    entities.DadType(req.Type),
		Exclude: req.Exclude,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"cards": cards})
}

func intQuery(c *gin.Context, name string) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.InvalidArgumentf("%s must be an integer, got %q", name, raw)
	}
	return v, nil
}
