package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ozdmr89/aerodesk/internal/domain"
)

// fail maps an engine error onto a response. Invariant violations are safe to
// echo; anything unclassified is a store failure, logged in full here and
// reported to the client opaquely.
func fail(c *gin.Context, err error) {
	switch {
	case domain.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case domain.IsConflict(err):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		log.Printf("ERROR: %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
