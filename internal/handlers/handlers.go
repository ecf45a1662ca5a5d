// Package handlers wires per-resource logic on top of the store gateway
// and the identity codec. Routing and middleware stay in cmd/api.
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/glowstack/storefront-api/internal/aws"
	"github.com/glowstack/storefront-api/internal/store"
	"github.com/glowstack/storefront-api/internal/validation"
)

// HandlerConfig groups dependencies for all resource handlers.
type HandlerConfig struct {
	Store     store.API
	Publisher *aws.Publisher // optional: order-received events for fulfillment
	Metrics   *aws.Recorder  // optional: operational counters
	Table     string
	Region    string
}

// RegisterRoutes registers every API route.
func RegisterRoutes(r *gin.Engine, cfg HandlerConfig) {
	v := validation.New()

	registerDiagnosticsRoutes(r, cfg)
	registerProductRoutes(r, cfg)
	registerOrderRoutes(r, cfg, v)
	registerNewsletterRoutes(r, cfg, v)
}
