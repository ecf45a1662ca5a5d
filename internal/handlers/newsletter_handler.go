package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/glowstack/storefront-api/internal/store"
	"github.com/glowstack/storefront-api/internal/validation"
)

func registerNewsletterRoutes(r *gin.Engine, cfg HandlerConfig, v *validatorv10.Validate) {
	r.POST("/api/newsletter", func(c *gin.Context) {
		ctx := c.Request.Context()

		var req validation.NewsletterSignupRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		// Duplicate signups are idempotent by design: a second signup for
		// the same email reports the existing state without writing.
		exists, err := cfg.Store.Exists(ctx, store.CollectionNewsletter, store.Filter{"email": req.Email})
		if err != nil {
			respondStoreError(c, err)
			return
		}
		if exists {
			c.JSON(http.StatusOK, gin.H{"status": "already_subscribed"})
			return
		}

		id, err := cfg.Store.Insert(ctx, store.CollectionNewsletter, store.Document{"email": req.Email})
		if err != nil {
			respondStoreError(c, err)
			return
		}
		if cfg.Metrics != nil {
			_ = cfg.Metrics.Count(ctx, "NewsletterSignups")
		}

		c.JSON(http.StatusCreated, gin.H{"id": id, "status": "subscribed"})
	})
}
