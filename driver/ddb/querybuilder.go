/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/mapstore/storagemodels"
)

// QueryBuilder provides a fluent interface for building query parameters
// against the table or one of its indexes. The zero operator set queries by
// partition key alone.
type QueryBuilder struct {
	tableName  string
	indexName  string
	pkAttr     string
	skAttr     string
	pkValue    string
	skValue    string
	skUpper    string
	skOperator string // "=", "begins_with", ">", "<", ">=", "<=", "BETWEEN"
	filters    []string
	filterVals map[string]types.AttributeValue
	limit      *int32
	forward    *bool
}

// Query creates a builder for the bucket's table using the table keys.
func (b *Bucket) Query() *QueryBuilder {
	return &QueryBuilder{
		tableName:  b.tableName,
		pkAttr:     pkAttr,
		skAttr:     skAttr,
		filterVals: make(map[string]types.AttributeValue),
	}
}

// WithIndex targets a secondary index with its own key attribute names.
func (q *QueryBuilder) WithIndex(indexName, partitionAttr, sortAttr string) *QueryBuilder {
	q.indexName = indexName
	q.pkAttr = partitionAttr
	q.skAttr = sortAttr
	return q
}

// WithPartitionKey sets the partition key value.
func (q *QueryBuilder) WithPartitionKey(value string) *QueryBuilder {
	q.pkValue = value
	return q
}

// WithSortKey sets the sort key value with the equals operator.
func (q *QueryBuilder) WithSortKey(value string) *QueryBuilder {
	q.skValue = value
	q.skOperator = "="
	return q
}

// WithSortKeyPrefix matches sort keys beginning with prefix.
func (q *QueryBuilder) WithSortKeyPrefix(prefix string) *QueryBuilder {
	q.skValue = prefix
	q.skOperator = "begins_with"
	return q
}

// WithSortKeyGreaterThan matches sort keys strictly above value.
func (q *QueryBuilder) WithSortKeyGreaterThan(value string) *QueryBuilder {
	q.skValue = value
	q.skOperator = ">"
	return q
}

// WithSortKeyLessThan matches sort keys strictly below value.
func (q *QueryBuilder) WithSortKeyLessThan(value string) *QueryBuilder {
	q.skValue = value
	q.skOperator = "<"
	return q
}

// WithSortKeyBetween matches sort keys in the inclusive range [start, end].
func (q *QueryBuilder) WithSortKeyBetween(start, end string) *QueryBuilder {
	q.skValue = start
	q.skUpper = end
	q.skOperator = "BETWEEN"
	return q
}

// After matches sort keys after a timestamp, formatted as RFC 3339 so that
// lexical order matches chronological order.
func (q *QueryBuilder) After(timestamp time.Time) *QueryBuilder {
	return q.WithSortKeyGreaterThan(timestamp.Format(time.RFC3339))
}

// Before matches sort keys before a timestamp.
func (q *QueryBuilder) Before(timestamp time.Time) *QueryBuilder {
	return q.WithSortKeyLessThan(timestamp.Format(time.RFC3339))
}

// Between matches sort keys between two timestamps.
func (q *QueryBuilder) Between(start, end time.Time) *QueryBuilder {
	return q.WithSortKeyBetween(start.Format(time.RFC3339), end.Format(time.RFC3339))
}

// WithFilter adds a filter expression; multiple filters are ANDed.
func (q *QueryBuilder) WithFilter(expression string, values map[string]types.AttributeValue) *QueryBuilder {
	q.filters = append(q.filters, expression)
	for k, v := range values {
		q.filterVals[k] = v
	}
	return q
}

// WithLimit caps the number of returned values.
func (q *QueryBuilder) WithLimit(limit int32) *QueryBuilder {
	q.limit = aws.Int32(limit)
	return q
}

// Latest orders results newest first.
func (q *QueryBuilder) Latest() *QueryBuilder {
	q.forward = aws.Bool(false)
	return q
}

// Oldest orders results oldest first.
func (q *QueryBuilder) Oldest() *QueryBuilder {
	q.forward = aws.Bool(true)
	return q
}

// Build constructs the final query parameters.
func (q *QueryBuilder) Build() (*storagemodels.QueryParams, error) {
	keyCondition, values, err := q.keyCondition()
	if err != nil {
		return nil, err
	}

	params := &storagemodels.QueryParams{
		TableName:                 q.tableName,
		KeyConditionExpression:    keyCondition,
		ExpressionAttributeValues: values,
		Limit:                     q.limit,
		ScanIndexForward:          q.forward,
	}
	if q.indexName != "" {
		params.IndexName = aws.String(q.indexName)
	}
	if len(q.filters) > 0 {
		params.FilterExpression = aws.String(strings.Join(q.filters, " AND "))
		for k, v := range q.filterVals {
			params.ExpressionAttributeValues[k] = v
		}
	}
	return params, nil
}

// BuildDelete constructs delete parameters matching the same key condition.
// Filters, limits and ordering do not apply to deletes.
func (q *QueryBuilder) BuildDelete() (*storagemodels.DeleteParams, error) {
	keyCondition, values, err := q.keyCondition()
	if err != nil {
		return nil, err
	}
	params := &storagemodels.DeleteParams{
		TableName:                 q.tableName,
		KeyConditionExpression:    keyCondition,
		ExpressionAttributeValues: values,
	}
	if q.indexName != "" {
		params.IndexName = aws.String(q.indexName)
	}
	return params, nil
}

func (q *QueryBuilder) keyCondition() (string, map[string]types.AttributeValue, error) {
	if q.pkValue == "" {
		return "", nil, fmt.Errorf("partition key value is required")
	}

	conditions := []string{q.pkAttr + " = :pk"}
	values := map[string]types.AttributeValue{
		":pk": &types.AttributeValueMemberS{Value: q.pkValue},
	}

	if q.skValue != "" {
		switch q.skOperator {
		case "=", ">", "<", ">=", "<=":
			conditions = append(conditions, fmt.Sprintf("%s %s :sk", q.skAttr, q.skOperator))
			values[":sk"] = &types.AttributeValueMemberS{Value: q.skValue}
		case "begins_with":
			conditions = append(conditions, fmt.Sprintf("begins_with(%s, :sk)", q.skAttr))
			values[":sk"] = &types.AttributeValueMemberS{Value: q.skValue}
		case "BETWEEN":
			conditions = append(conditions, fmt.Sprintf("%s BETWEEN :sk AND :sk2", q.skAttr))
			values[":sk"] = &types.AttributeValueMemberS{Value: q.skValue}
			values[":sk2"] = &types.AttributeValueMemberS{Value: q.skUpper}
		default:
			return "", nil, fmt.Errorf("unknown sort key operator %q", q.skOperator)
		}
	}

	return strings.Join(conditions, " AND "), values, nil
}
