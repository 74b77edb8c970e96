package services

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"kindred_server/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// fakeDynamo is an in-memory DynamoAPI used by the service tests. It
// understands the key schemas of this project's tables and the expression
// shapes the services actually issue (equality, comparison,
// attribute_exists/attribute_not_exists, AND/OR, SET assignments).
type fakeDynamo struct {
	mu     sync.Mutex
	tables map[string]map[string]map[string]types.AttributeValue
}

var fakeKeySchemas = map[string][2]string{
	models.UserProfilesTable: {"userId", ""},
	models.SwipesTable:       {"voterId", "targetId"},
	models.MatchesTable:      {"matchId", ""},
	models.MessagesTable:     {"matchId", "messageId"},
	models.MeetupsTable:      {"matchId", "meetupId"},
	models.BlocksTable:       {"blockerId", "blockedId"},
	models.ReportsTable:      {"reportId", ""},
}

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{tables: make(map[string]map[string]map[string]types.AttributeValue)}
}

func (f *fakeDynamo) table(name string) map[string]map[string]types.AttributeValue {
	if _, ok := f.tables[name]; !ok {
		f.tables[name] = make(map[string]map[string]types.AttributeValue)
	}
	return f.tables[name]
}

func (f *fakeDynamo) itemKey(tableName string, item map[string]types.AttributeValue) (string, error) {
	schema, ok := fakeKeySchemas[tableName]
	if !ok {
		return "", fmt.Errorf("fakeDynamo: unknown table %q", tableName)
	}
	pk, ok := item[schema[0]].(*types.AttributeValueMemberS)
	if !ok {
		return "", fmt.Errorf("fakeDynamo: item in %q is missing key attribute %q", tableName, schema[0])
	}
	if schema[1] == "" {
		return pk.Value, nil
	}
	sk, ok := item[schema[1]].(*types.AttributeValueMemberS)
	if !ok {
		return "", fmt.Errorf("fakeDynamo: item in %q is missing key attribute %q", tableName, schema[1])
	}
	return pk.Value + "|" + sk.Value, nil
}

func (f *fakeDynamo) count(tableName string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.tables[tableName])
}

func conditionFailed() error {
	return &types.ConditionalCheckFailedException{Message: aws.String("The conditional request failed")}
}

func (f *fakeDynamo) PutItem(_ context.Context, params *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	tableName := aws.ToString(params.TableName)
	key, err := f.itemKey(tableName, params.Item)
	if err != nil {
		return nil, err
	}

	table := f.table(tableName)
	if params.ConditionExpression != nil {
		existing := table[key]
		if !evalExpr(existing, aws.ToString(params.ConditionExpression), params.ExpressionAttributeNames, params.ExpressionAttributeValues) {
			return nil, conditionFailed()
		}
	}
	table[key] = params.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) GetItem(_ context.Context, params *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	tableName := aws.ToString(params.TableName)
	key, err := f.itemKey(tableName, params.Key)
	if err != nil {
		return nil, err
	}
	item := f.table(tableName)[key]
	return &dynamodb.GetItemOutput{Item: item}, nil
}

func (f *fakeDynamo) Query(_ context.Context, params *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	tableName := aws.ToString(params.TableName)
	table := f.table(tableName)

	keys := make([]string, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var items []map[string]types.AttributeValue
	for _, k := range keys {
		if evalExpr(table[k], aws.ToString(params.KeyConditionExpression), params.ExpressionAttributeNames, params.ExpressionAttributeValues) {
			items = append(items, table[k])
		}
	}
	if params.Limit != nil && int32(len(items)) > *params.Limit {
		items = items[:*params.Limit]
	}
	return &dynamodb.QueryOutput{Items: items}, nil
}

func (f *fakeDynamo) UpdateItem(_ context.Context, params *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	tableName := aws.ToString(params.TableName)
	key, err := f.itemKey(tableName, params.Key)
	if err != nil {
		return nil, err
	}

	table := f.table(tableName)
	item := table[key]
	if params.ConditionExpression != nil {
		if !evalExpr(item, aws.ToString(params.ConditionExpression), params.ExpressionAttributeNames, params.ExpressionAttributeValues) {
			return nil, conditionFailed()
		}
	}
	if item == nil {
		// DynamoDB upserts on update; seed the item with its key attrs.
		item = make(map[string]types.AttributeValue)
		for name, value := range params.Key {
			item[name] = value
		}
		table[key] = item
	}
	applySet(item, aws.ToString(params.UpdateExpression), params.ExpressionAttributeNames, params.ExpressionAttributeValues)
	return &dynamodb.UpdateItemOutput{Attributes: item}, nil
}

func (f *fakeDynamo) DeleteItem(_ context.Context, params *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	tableName := aws.ToString(params.TableName)
	key, err := f.itemKey(tableName, params.Key)
	if err != nil {
		return nil, err
	}
	delete(f.table(tableName), key)
	return &dynamodb.DeleteItemOutput{}, nil
}

func (f *fakeDynamo) Scan(_ context.Context, params *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	tableName := aws.ToString(params.TableName)
	table := f.table(tableName)

	keys := make([]string, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var items []map[string]types.AttributeValue
	for _, k := range keys {
		if params.FilterExpression == nil ||
			evalExpr(table[k], aws.ToString(params.FilterExpression), params.ExpressionAttributeNames, params.ExpressionAttributeValues) {
			items = append(items, table[k])
		}
	}
	return &dynamodb.ScanOutput{Items: items}, nil
}

func (f *fakeDynamo) BatchWriteItem(_ context.Context, params *dynamodb.BatchWriteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for tableName, requests := range params.RequestItems {
		table := f.table(tableName)
		for _, request := range requests {
			switch {
			case request.DeleteRequest != nil:
				key, err := f.itemKey(tableName, request.DeleteRequest.Key)
				if err != nil {
					return nil, err
				}
				delete(table, key)
			case request.PutRequest != nil:
				key, err := f.itemKey(tableName, request.PutRequest.Item)
				if err != nil {
					return nil, err
				}
				table[key] = request.PutRequest.Item
			}
		}
	}
	return &dynamodb.BatchWriteItemOutput{}, nil
}

// flakyDynamo injects transient batch-write failures in front of another
// DynamoAPI, for exercising retry paths.
type flakyDynamo struct {
	DynamoAPI
	failBatchWrites int
}

func (f *flakyDynamo) BatchWriteItem(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error) {
	if f.failBatchWrites > 0 {
		f.failBatchWrites--
		return nil, fmt.Errorf("provisioned throughput exceeded")
	}
	return f.DynamoAPI.BatchWriteItem(ctx, params, optFns...)
}

// --- expression evaluation -------------------------------------------------

// resolvePath follows a possibly-nested, possibly-#-aliased document path.
func resolvePath(item map[string]types.AttributeValue, path string, names map[string]string) (types.AttributeValue, bool) {
	if item == nil {
		return nil, false
	}
	parts := strings.Split(path, ".")
	current := item
	for i, part := range parts {
		if alias, ok := names[part]; ok {
			part = alias
		}
		attr, ok := current[part]
		if !ok {
			return nil, false
		}
		if i == len(parts)-1 {
			return attr, true
		}
		nested, ok := attr.(*types.AttributeValueMemberM)
		if !ok {
			return nil, false
		}
		current = nested.Value
	}
	return nil, false
}

func compareValues(a, b types.AttributeValue) (int, bool) {
	switch av := a.(type) {
	case *types.AttributeValueMemberS:
		if bv, ok := b.(*types.AttributeValueMemberS); ok {
			return strings.Compare(av.Value, bv.Value), true
		}
	case *types.AttributeValueMemberN:
		if bv, ok := b.(*types.AttributeValueMemberN); ok {
			an, err1 := strconv.ParseInt(av.Value, 10, 64)
			bn, err2 := strconv.ParseInt(bv.Value, 10, 64)
			if err1 != nil || err2 != nil {
				return 0, false
			}
			switch {
			case an < bn:
				return -1, true
			case an > bn:
				return 1, true
			}
			return 0, true
		}
	}
	return 0, false
}

// splitTopLevel splits expr on sep outside of parentheses.
func splitTopLevel(expr, sep string) []string {
	var parts []string
	depth := 0
	last := 0
	for i := 0; i+len(sep) <= len(expr); i++ {
		switch expr[i] {
		case '(':
			depth++
		case ')':
			depth--
		}
		if depth == 0 && expr[i:i+len(sep)] == sep {
			parts = append(parts, expr[last:i])
			last = i + len(sep)
			i += len(sep) - 1
		}
	}
	parts = append(parts, expr[last:])
	return parts
}

func stripOuterParens(expr string) string {
	expr = strings.TrimSpace(expr)
	for strings.HasPrefix(expr, "(") && strings.HasSuffix(expr, ")") {
		depth := 0
		balanced := true
		for i := 0; i < len(expr)-1; i++ {
			switch expr[i] {
			case '(':
				depth++
			case ')':
				depth--
			}
			if depth == 0 {
				balanced = false
				break
			}
		}
		if !balanced {
			break
		}
		expr = strings.TrimSpace(expr[1 : len(expr)-1])
	}
	return expr
}

// evalExpr evaluates the subset of DynamoDB condition syntax the services
// use: comparisons, attribute_exists/attribute_not_exists and AND/OR.
func evalExpr(item map[string]types.AttributeValue, expr string, names map[string]string, values map[string]types.AttributeValue) bool {
	expr = stripOuterParens(expr)

	if ors := splitTopLevel(expr, " OR "); len(ors) > 1 {
		for _, sub := range ors {
			if evalExpr(item, sub, names, values) {
				return true
			}
		}
		return false
	}
	if ands := splitTopLevel(expr, " AND "); len(ands) > 1 {
		for _, sub := range ands {
			if !evalExpr(item, sub, names, values) {
				return false
			}
		}
		return true
	}

	switch {
	case strings.HasPrefix(expr, "attribute_not_exists(") && strings.HasSuffix(expr, ")"):
		path := expr[len("attribute_not_exists(") : len(expr)-1]
		_, ok := resolvePath(item, path, names)
		return !ok
	case strings.HasPrefix(expr, "attribute_exists(") && strings.HasSuffix(expr, ")"):
		path := expr[len("attribute_exists(") : len(expr)-1]
		_, ok := resolvePath(item, path, names)
		return ok
	}

	for _, op := range []string{" <> ", " < ", " = "} {
		idx := strings.Index(expr, op)
		if idx < 0 {
			continue
		}
		left := strings.TrimSpace(expr[:idx])
		right := strings.TrimSpace(expr[idx+len(op):])
		attr, ok := resolvePath(item, left, names)
		if !ok {
			return false
		}
		value, ok := values[right]
		if !ok {
			return false
		}
		cmp, comparable := compareValues(attr, value)
		if !comparable {
			return false
		}
		switch strings.TrimSpace(op) {
		case "<>":
			return cmp != 0
		case "<":
			return cmp < 0
		case "=":
			return cmp == 0
		}
	}
	return false
}

// applySet applies "SET path = :val, ..." update expressions.
func applySet(item map[string]types.AttributeValue, expr string, names map[string]string, values map[string]types.AttributeValue) {
	expr = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(expr), "SET "))
	for _, assignment := range strings.Split(expr, ",") {
		parts := strings.SplitN(assignment, "=", 2)
		if len(parts) != 2 {
			continue
		}
		path := strings.TrimSpace(parts[0])
		valueRef := strings.TrimSpace(parts[1])
		value, ok := values[valueRef]
		if !ok {
			continue
		}

		segments := strings.Split(path, ".")
		current := item
		for i, segment := range segments {
			if alias, ok := names[segment]; ok {
				segment = alias
			}
			if i == len(segments)-1 {
				current[segment] = value
				break
			}
			nested, ok := current[segment].(*types.AttributeValueMemberM)
			if !ok {
				nested = &types.AttributeValueMemberM{Value: make(map[string]types.AttributeValue)}
				current[segment] = nested
			}
			current = nested.Value
		}
	}
}
