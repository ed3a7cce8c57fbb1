package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health reports liveness and the loaded catalog size
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"catalogSize": h.catalog.Size(),
	})
}
