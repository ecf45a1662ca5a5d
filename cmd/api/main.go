package main

import (
	"context"
	"log"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"

	internalaws "github.com/glowstack/storefront-api/internal/aws"
	"github.com/glowstack/storefront-api/internal/handlers"
	"github.com/glowstack/storefront-api/internal/seed"
	"github.com/glowstack/storefront-api/internal/store"
)

func setupRouter(cfg handlers.HandlerConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	handlers.RegisterRoutes(r, cfg)

	return r
}

func main() {
	ctx := context.Background()

	table := os.Getenv("STORE_TABLE")
	if table == "" {
		table = "storefront"
	}
	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = "us-east-1"
	}

	cfg := handlers.HandlerConfig{Table: table, Region: region}

	var gw *store.Gateway
	clients, err := internalaws.NewClients(ctx)
	if err != nil {
		// the process still starts; store-backed operations fail fast
		log.Printf("aws client init failed, store stays unavailable: %v", err)
		gw = store.Connect(ctx, nil, table)
	} else {
		gw = store.Connect(ctx, clients.DynamoDB, table)
		if queueURL := os.Getenv("ORDERS_QUEUE_URL"); queueURL != "" {
			cfg.Publisher = internalaws.NewPublisher(clients.SQS, queueURL)
		}
		if ns := os.Getenv("METRICS_NAMESPACE"); ns != "" {
			cfg.Metrics = internalaws.NewRecorder(clients.CloudWatch, ns)
		}
	}
	cfg.Store = gw

	// seeding is best-effort and must never prevent startup
	if err := seed.Products(ctx, gw); err != nil {
		log.Printf("seed products skipped: %v", err)
	}

	r := setupRouter(cfg)

	// if environment variable RUN_LOCAL is set to "true", run a local HTTP
	// server for development.
	if os.Getenv("RUN_LOCAL") == "true" {
		port := os.Getenv("PORT")
		if port == "" {
			port = "8080"
		}
		addr := ":" + port
		log.Printf("running local server on %s", addr)
		if err := r.Run(addr); err != nil {
			log.Fatalf("failed to run local server: %v", err)
		}
		return
	}

	// lambda adapter
	adapter := ginadapter.New(r)

	lambda.Start(func(ctx context.Context, req events.APIGatewayProxyRequest) (interface{}, error) {
		return adapter.ProxyWithContext(ctx, req)
	})
}
