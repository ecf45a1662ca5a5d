// Package seed populates the baseline catalog on first run. Seeding is
// best-effort: callers log the returned error and start serving anyway.
package seed

import (
	"context"
	"fmt"

	"github.com/glowstack/storefront-api/internal/store"
)

// baselineProducts is inserted in this exact order when the product
// collection is empty.
var baselineProducts = []store.Document{
	{
		"title":       "Aurora Glass Perfume",
		"description": "A luminous, floral scent with notes of iris and pear. Minimal bottle, maximal compliments.",
		"price":       59.0,
		"category":    "fragrance",
		"in_stock":    true,
		"image":       "https://images.unsplash.com/photo-1523297730390-9f2d9e9a8f49?q=80&w=1200&auto=format&fit=crop",
		"badge":       "Bestseller",
	},
	{
		"title":       "Velvet Matte Lipstick",
		"description": "Feather-light, full-impact color. Long-wear without the dry feel.",
		"price":       21.0,
		"category":    "makeup",
		"in_stock":    true,
		"image":       "https://images.unsplash.com/photo-1585386959984-a41552231658?q=80&w=1200&auto=format&fit=crop",
		"badge":       "New",
	},
	{
		"title":       "Silk Glow Highlighter",
		"description": "Ultra-fine shimmer for a lit-from-within finish.",
		"price":       28.0,
		"category":    "makeup",
		"in_stock":    true,
		"image":       "https://images.unsplash.com/photo-1596464716121-d9f0d2f6f9b0?q=80&w=1200&auto=format&fit=crop",
		"badge":       "Limited",
	},
	{
		"title":       "Cloud Cleanser",
		"description": "pH-balanced gel cleanser that leaves skin soft and fresh.",
		"price":       19.0,
		"category":    "skincare",
		"in_stock":    true,
		"image":       "https://images.unsplash.com/photo-1598440947619-2c35fc9aa808?q=80&w=1200&auto=format&fit=crop",
		"badge":       "Award-winning",
	},
}

// Products inserts the baseline catalog if the product collection is
// empty. Idempotent across restarts: any existing product makes it a
// no-op. A failure mid-batch is returned without rollback; already
// inserted products stay.
func Products(ctx context.Context, st store.API) error {
	if !st.Available() {
		return store.ErrUnavailable
	}

	count, err := st.Count(ctx, store.CollectionProduct, nil)
	if err != nil {
		return fmt.Errorf("seed: count products: %w", err)
	}
	if count > 0 {
		return nil
	}

	for i, p := range baselineProducts {
		if _, err := st.Insert(ctx, store.CollectionProduct, p); err != nil {
			return fmt.Errorf("seed: insert product %d of %d: %w", i+1, len(baselineProducts), err)
		}
	}
	return nil
}
