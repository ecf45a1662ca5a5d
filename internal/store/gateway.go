// Package store is the narrow facade over the underlying document
// collections. It owns the single store connection and its availability
// state; every resource handler goes through it.
package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"

	"github.com/glowstack/storefront-api/internal/aws"
	"github.com/glowstack/storefront-api/internal/identity"
)

// Collection names. Documents are schema-less; these are the only
// groupings the service reads or writes.
const (
	CollectionProduct    = "product"
	CollectionOrder      = "order"
	CollectionNewsletter = "newsletter"
)

// attrCollection is the partition key attribute. The sort key is the
// document's native id field (identity.NativeField).
const attrCollection = "col"

// existsPageSize bounds each page of the existence probe.
const existsPageSize = 100

// Document is a schema-less record as stored in a collection.
type Document map[string]any

// Filter matches documents whose attributes equal every listed value.
type Filter map[string]any

// API is the gateway contract handlers and the seeder depend on.
type API interface {
	Available() bool
	List(ctx context.Context, collection string, filter Filter, limit int) ([]Document, error)
	GetByID(ctx context.Context, collection, id string) (Document, error)
	Insert(ctx context.Context, collection string, doc Document) (string, error)
	Count(ctx context.Context, collection string, filter Filter) (int, error)
	Exists(ctx context.Context, collection string, filter Filter) (bool, error)
}

// Gateway stores every collection in a single DynamoDB table, partition
// key = collection name, sort key = external id string.
type Gateway struct {
	client    aws.DynamoDBAPI
	table     string
	available bool
}

// Connect builds the gateway and probes the table once. If the probe fails
// the gateway stays unavailable for the process lifetime and every
// operation fails fast with ErrUnavailable; there is no automatic retry.
func Connect(ctx context.Context, client aws.DynamoDBAPI, table string) *Gateway {
	g := &Gateway{client: client, table: table}
	if client == nil || table == "" {
		return g
	}
	if _, err := client.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: &table}); err != nil {
		log.Printf("store: connect to table %q failed: %v", table, err)
		return g
	}
	g.available = true
	return g
}

// Available reports whether the initial connection succeeded.
func (g *Gateway) Available() bool { return g.available }

// List returns all documents in the collection matching filter, up to
// limit (0 means unlimited), in store order.
func (g *Gateway) List(ctx context.Context, collection string, filter Filter, limit int) ([]Document, error) {
	if !g.available {
		return nil, ErrUnavailable
	}
	input, err := g.queryInput(collection, filter)
	if err != nil {
		return nil, err
	}

	docs := []Document{}
	for {
		if limit > 0 {
			remaining := limit - len(docs)
			input.Limit = sdkaws.Int32(int32(remaining))
		}
		out, err := g.client.Query(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("%w: list %s: %v", ErrUnavailable, collection, err)
		}
		for _, item := range out.Items {
			doc, err := unmarshalDocument(item)
			if err != nil {
				return nil, fmt.Errorf("list %s: %w", collection, err)
			}
			docs = append(docs, doc)
			if limit > 0 && len(docs) >= limit {
				return docs, nil
			}
		}
		if out.LastEvaluatedKey == nil {
			return docs, nil
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
}

// GetByID fetches exactly one document. A malformed id fails with
// ErrInvalidIdentifier before any store call; a well-formed id with no
// document fails with ErrNotFound.
func (g *Gateway) GetByID(ctx context.Context, collection, id string) (Document, error) {
	native, err := identity.DecodeID(id)
	if err != nil {
		return nil, err
	}
	if !g.available {
		return nil, ErrUnavailable
	}

	out, err := g.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &g.table,
		Key:       g.key(collection, identity.EncodeID(native)),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: get %s/%s: %v", ErrUnavailable, collection, id, err)
	}
	if len(out.Item) == 0 {
		return nil, fmt.Errorf("%w: %s/%s", ErrNotFound, collection, id)
	}
	return unmarshalDocument(out.Item)
}

// Insert assigns a fresh identity, persists the document, and returns its
// external id. The conditional put guarantees a failed insert leaves no
// visible document behind.
func (g *Gateway) Insert(ctx context.Context, collection string, doc Document) (string, error) {
	if !g.available {
		return "", ErrUnavailable
	}

	external := identity.EncodeID(identity.NewID())
	item, err := attributevalue.MarshalMap(map[string]any(doc))
	if err != nil {
		return "", fmt.Errorf("%w: marshal %s document: %v", ErrWriteFailed, collection, err)
	}
	item[attrCollection] = &types.AttributeValueMemberS{Value: collection}
	item[identity.NativeField] = &types.AttributeValueMemberS{Value: external}

	_, err = g.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                &g.table,
		Item:                     item,
		ConditionExpression:      sdkaws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{"#id": identity.NativeField},
	})
	if err != nil {
		var ae smithy.APIError
		if errors.As(err, &ae) && ae.ErrorCode() == "ConditionalCheckFailedException" {
			return "", fmt.Errorf("%w: id collision inserting into %s", ErrWriteFailed, collection)
		}
		return "", fmt.Errorf("%w: insert into %s: %v", ErrWriteFailed, collection, err)
	}
	return external, nil
}

// Count returns the number of documents matching filter.
func (g *Gateway) Count(ctx context.Context, collection string, filter Filter) (int, error) {
	if !g.available {
		return 0, ErrUnavailable
	}
	input, err := g.queryInput(collection, filter)
	if err != nil {
		return 0, err
	}
	input.Select = types.SelectCount

	total := 0
	for {
		out, err := g.client.Query(ctx, input)
		if err != nil {
			return 0, fmt.Errorf("%w: count %s: %v", ErrUnavailable, collection, err)
		}
		total += int(out.Count)
		if out.LastEvaluatedKey == nil {
			return total, nil
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
}

// Exists reports whether at least one document matches filter. The probe
// pages through the collection and stops at the first match.
func (g *Gateway) Exists(ctx context.Context, collection string, filter Filter) (bool, error) {
	if !g.available {
		return false, ErrUnavailable
	}
	input, err := g.queryInput(collection, filter)
	if err != nil {
		return false, err
	}
	input.Select = types.SelectCount
	input.Limit = sdkaws.Int32(existsPageSize)

	for {
		out, err := g.client.Query(ctx, input)
		if err != nil {
			return false, fmt.Errorf("%w: exists %s: %v", ErrUnavailable, collection, err)
		}
		if out.Count > 0 {
			return true, nil
		}
		if out.LastEvaluatedKey == nil {
			return false, nil
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
}

func (g *Gateway) key(collection, externalID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		attrCollection:       &types.AttributeValueMemberS{Value: collection},
		identity.NativeField: &types.AttributeValueMemberS{Value: externalID},
	}
}

// queryInput builds a collection-scoped query with an optional equality
// filter. Filter keys are ordered so expressions are deterministic.
func (g *Gateway) queryInput(collection string, filter Filter) (*dynamodb.QueryInput, error) {
	names := map[string]string{"#col": attrCollection}
	values := map[string]types.AttributeValue{
		":col": &types.AttributeValueMemberS{Value: collection},
	}

	input := &dynamodb.QueryInput{
		TableName:                 &g.table,
		KeyConditionExpression:    sdkaws.String("#col = :col"),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
	}

	if len(filter) > 0 {
		keys := make([]string, 0, len(filter))
		for k := range filter {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		clauses := make([]string, 0, len(keys))
		for i, k := range keys {
			n := fmt.Sprintf("#f%d", i)
			v := fmt.Sprintf(":v%d", i)
			av, err := attributevalue.Marshal(filter[k])
			if err != nil {
				return nil, fmt.Errorf("marshal filter field %q: %w", k, err)
			}
			names[n] = k
			values[v] = av
			clauses = append(clauses, n+" = "+v)
		}
		input.FilterExpression = sdkaws.String(strings.Join(clauses, " AND "))
	}

	return input, nil
}

func unmarshalDocument(item map[string]types.AttributeValue) (Document, error) {
	var doc map[string]any
	if err := attributevalue.UnmarshalMap(item, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal document: %w", err)
	}
	delete(doc, attrCollection)
	return doc, nil
}
