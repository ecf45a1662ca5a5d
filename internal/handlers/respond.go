package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/glowstack/storefront-api/internal/identity"
	"github.com/glowstack/storefront-api/internal/store"
)

// respondStoreError maps the store/identity error taxonomy onto distinct
// client-visible statuses. Anything uncategorized is reported generically
// instead of crashing the handler.
func respondStoreError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, identity.ErrInvalidIdentifier):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_identifier", "msg": err.Error()})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "msg": err.Error()})
	case errors.Is(err, store.ErrUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "store_unavailable", "msg": err.Error()})
	case errors.Is(err, store.ErrWriteFailed):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store_write_failed", "msg": err.Error()})
	default:
		log.Printf("unexpected handler error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
	}
}
