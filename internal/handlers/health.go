package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health reports liveness along with the configured record source
// GET /health
func Health(mode, source string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"mode":   mode,
			"source": source,
		})
	}
}
