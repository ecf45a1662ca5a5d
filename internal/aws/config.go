package aws

import (
	"context"
	"fmt"
	"os"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

func LoadAWSConfig(ctx context.Context) (sdkaws.Config, error) {
	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = "us-east-1" // default fallback
	}

	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(region),
	)
	if err != nil {
		return cfg, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return cfg, nil
}

// withStoreEndpoint points the DynamoDB client at STORE_ENDPOINT when set.
// STORE_ENDPOINT is the store connection string; unset means the SDK's
// default resolution.
func withStoreEndpoint() func(*dynamodb.Options) {
	return func(o *dynamodb.Options) {
		if ep := os.Getenv("STORE_ENDPOINT"); ep != "" {
			o.BaseEndpoint = sdkaws.String(ep)
		}
	}
}
