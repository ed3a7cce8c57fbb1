package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/daddeck/daddeck-api/internal/entities"
)

// ListEvents returns the event calendar, optionally filtered by status
func (h *Handler) ListEvents(c *gin.Context) {
	now := h.clock.Now().Unix()
	list, err := h.events.List(now, entities.EventStatus(c.Query("status")))
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"events": list})
}

// GetEvent returns a single event by ID
func (h *Handler) GetEvent(c *gin.Context) {
	event, err := h.events.Get(h.clock.Now().Unix(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"event": event})
}
