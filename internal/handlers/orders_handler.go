package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/glowstack/storefront-api/internal/store"
	"github.com/glowstack/storefront-api/internal/validation"
)

func registerOrderRoutes(r *gin.Engine, cfg HandlerConfig, v *validatorv10.Validate) {
	r.POST("/api/orders", func(c *gin.Context) {
		ctx := c.Request.Context()

		var req validation.CreateOrderRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			// BindAndValidate already wrote a 400
			return
		}

		// Persist the validated payload verbatim. Product ids in items are
		// opaque references; they are not checked against the catalog.
		items := make([]map[string]any, 0, len(req.Items))
		for _, it := range req.Items {
			items = append(items, map[string]any{
				"product_id": it.ProductID,
				"quantity":   it.Quantity,
			})
		}
		doc := store.Document{
			"name":    req.Name,
			"email":   req.Email,
			"address": req.Address,
			"city":    req.City,
			"country": req.Country,
			"items":   items,
		}
		if req.Notes != "" {
			doc["notes"] = req.Notes
		}

		id, err := cfg.Store.Insert(ctx, store.CollectionOrder, doc)
		if err != nil {
			respondStoreError(c, err)
			return
		}

		// The order is persisted; downstream notification is best-effort.
		if cfg.Publisher != nil {
			payload, _ := json.Marshal(map[string]string{"order_id": id, "email": req.Email})
			attrs := map[string]string{
				"order_id":       id,
				"correlation_id": c.GetHeader("X-Request-Id"),
			}
			if err := cfg.Publisher.SendOrderReceived(ctx, string(payload), attrs); err != nil {
				log.Printf("order %s: fulfillment notify failed: %v", id, err)
			}
		}
		if cfg.Metrics != nil {
			_ = cfg.Metrics.Count(ctx, "OrdersReceived")
		}

		c.JSON(http.StatusCreated, gin.H{"id": id, "status": "received"})
	})
}
