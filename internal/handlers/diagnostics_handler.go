package handlers

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

func registerDiagnosticsRoutes(r *gin.Engine, cfg HandlerConfig) {
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Storefront backend running"})
	})

	r.GET("/api/hello", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Hello from the storefront API!"})
	})

	// Informational snapshot of store reachability and configuration
	// presence. No schema contract.
	r.GET("/test", func(c *gin.Context) {
		available := cfg.Store.Available()
		status := "not_connected"
		if available {
			status = "connected"
		}
		c.JSON(http.StatusOK, gin.H{
			"backend": "running",
			"store": gin.H{
				"available":         available,
				"connection_status": status,
				"table":             cfg.Table,
				"region":            cfg.Region,
			},
			"store_endpoint_set": os.Getenv("STORE_ENDPOINT") != "",
			"store_table_set":    os.Getenv("STORE_TABLE") != "",
		})
	})
}
