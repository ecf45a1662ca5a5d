package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/glowstack/storefront-api/internal/identity"
	"github.com/glowstack/storefront-api/internal/store"
)

// Products are seeded at startup and read-only over the API; there is no
// user-facing mutation path.
func registerProductRoutes(r *gin.Engine, cfg HandlerConfig) {
	r.GET("/api/products", func(c *gin.Context) {
		docs, err := cfg.Store.List(c.Request.Context(), store.CollectionProduct, nil, 0)
		if err != nil {
			respondStoreError(c, err)
			return
		}

		resources := make([]map[string]any, 0, len(docs))
		for _, doc := range docs {
			resources = append(resources, identity.Normalize(doc))
		}
		c.JSON(http.StatusOK, resources)
	})

	r.GET("/api/products/:id", func(c *gin.Context) {
		doc, err := cfg.Store.GetByID(c.Request.Context(), store.CollectionProduct, c.Param("id"))
		if err != nil {
			respondStoreError(c, err)
			return
		}
		c.JSON(http.StatusOK, identity.Normalize(doc))
	})
}
