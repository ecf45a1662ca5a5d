package store

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"sync"

	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// mockDynamo is a small in-memory stand-in for the DynamoDB client. It
// keeps documents per collection in insertion order and understands the
// specific expressions the gateway builds.
type mockDynamo struct {
	mu    sync.Mutex
	items map[string][]map[string]types.AttributeValue

	// pageSize, when > 0, caps every Query page to force pagination.
	pageSize int

	describeErr error
	putErr      error
	queryErr    error
	getErr      error

	putCalls   int
	getCalls   int
	queryCalls int
}

func newMockDynamo() *mockDynamo {
	return &mockDynamo{items: map[string][]map[string]types.AttributeValue{}}
}

func (m *mockDynamo) DescribeTable(ctx context.Context, params *dyn.DescribeTableInput, optFns ...func(*dyn.Options)) (*dyn.DescribeTableOutput, error) {
	if m.describeErr != nil {
		return nil, m.describeErr
	}
	return &dyn.DescribeTableOutput{}, nil
}

func (m *mockDynamo) PutItem(ctx context.Context, params *dyn.PutItemInput, optFns ...func(*dyn.Options)) (*dyn.PutItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.putCalls++
	if m.putErr != nil {
		return nil, m.putErr
	}

	col := stringAttr(params.Item["col"])
	id := stringAttr(params.Item["_id"])
	if col == "" || id == "" {
		return nil, errors.New("mock: item missing key attributes")
	}

	if params.ConditionExpression != nil && strings.Contains(*params.ConditionExpression, "attribute_not_exists") {
		if m.find(col, id) != nil {
			return nil, &types.ConditionalCheckFailedException{}
		}
	}
	m.items[col] = append(m.items[col], params.Item)
	return &dyn.PutItemOutput{}, nil
}

func (m *mockDynamo) GetItem(ctx context.Context, params *dyn.GetItemInput, optFns ...func(*dyn.Options)) (*dyn.GetItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getCalls++
	if m.getErr != nil {
		return nil, m.getErr
	}

	col := stringAttr(params.Key["col"])
	id := stringAttr(params.Key["_id"])
	item := m.find(col, id)
	if item == nil {
		return &dyn.GetItemOutput{}, nil
	}
	return &dyn.GetItemOutput{Item: item}, nil
}

func (m *mockDynamo) Query(ctx context.Context, params *dyn.QueryInput, optFns ...func(*dyn.Options)) (*dyn.QueryOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queryCalls++
	if m.queryErr != nil {
		return nil, m.queryErr
	}

	col := stringAttr(params.ExpressionAttributeValues[":col"])
	all := m.items[col]

	// resume after ExclusiveStartKey
	start := 0
	if params.ExclusiveStartKey != nil {
		lastID := stringAttr(params.ExclusiveStartKey["_id"])
		for i, item := range all {
			if stringAttr(item["_id"]) == lastID {
				start = i + 1
				break
			}
		}
	}

	// page bound: the smaller of the request Limit and the mock page size
	max := len(all) - start
	if params.Limit != nil && int(*params.Limit) < max {
		max = int(*params.Limit)
	}
	if m.pageSize > 0 && m.pageSize < max {
		max = m.pageSize
	}

	scanned := all[start:]
	if len(scanned) > max {
		scanned = scanned[:max]
	}

	var matched []map[string]types.AttributeValue
	for _, item := range scanned {
		if matchesFilter(item, params) {
			matched = append(matched, item)
		}
	}

	out := &dyn.QueryOutput{Count: int32(len(matched))}
	if params.Select != types.SelectCount {
		out.Items = matched
	}
	if start+len(scanned) < len(all) && len(scanned) > 0 {
		last := scanned[len(scanned)-1]
		out.LastEvaluatedKey = map[string]types.AttributeValue{
			"col": last["col"],
			"_id": last["_id"],
		}
	}
	return out, nil
}

// matchesFilter applies the gateway's "#fN = :vN" equality clauses.
func matchesFilter(item map[string]types.AttributeValue, params *dyn.QueryInput) bool {
	if params.FilterExpression == nil {
		return true
	}
	for n, attr := range params.ExpressionAttributeNames {
		if !strings.HasPrefix(n, "#f") {
			continue
		}
		want := params.ExpressionAttributeValues[":v"+n[2:]]
		got, ok := item[attr]
		if !ok || !reflect.DeepEqual(got, want) {
			return false
		}
	}
	return true
}

func (m *mockDynamo) find(col, id string) map[string]types.AttributeValue {
	for _, item := range m.items[col] {
		if stringAttr(item["_id"]) == id {
			return item
		}
	}
	return nil
}

func stringAttr(av types.AttributeValue) string {
	if s, ok := av.(*types.AttributeValueMemberS); ok {
		return s.Value
	}
	return ""
}
