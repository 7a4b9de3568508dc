/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"
	"time"

	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/mapstore/storagemodels"
)

const (
	queryMaxRetries   = 3
	queryRetryBackoff = 100 * time.Millisecond
)

// ExecuteQuery runs a query and returns every matching value, following
// pagination to the end. Transient service errors are retried with
// exponential backoff; retry policy lives here, below the repository
// façades.
func (b *Bucket) ExecuteQuery(ctx context.Context, params *storagemodels.QueryParams) ([]*storagemodels.NativeEntity, error) {
	input := queryInput(params)

	var out []*storagemodels.NativeEntity
	for {
		page, err := b.queryWithRetry(ctx, input)
		if err != nil {
			return nil, err
		}
		for _, item := range page.Items {
			if native := nativeFrom(item); native != nil {
				out = append(out, native)
			}
		}
		if params.Limit != nil && int32(len(out)) >= *params.Limit {
			return out[:*params.Limit], nil
		}
		if len(page.LastEvaluatedKey) == 0 {
			return out, nil
		}
		input.ExclusiveStartKey = page.LastEvaluatedKey
	}
}

// ExecuteDelete removes every value matching the query: it pages through the
// matching keys, then deletes them in batches. There is no cross-item
// atomicity; a failure leaves earlier batches deleted.
func (b *Bucket) ExecuteDelete(ctx context.Context, params *storagemodels.DeleteParams) error {
	keyCondition := params.KeyConditionExpression
	input := &sdk.QueryInput{
		TableName:                 &params.TableName,
		KeyConditionExpression:    &keyCondition,
		ExpressionAttributeValues: params.ExpressionAttributeValues,
		IndexName:                 params.IndexName,
		// Only the table keys are needed to issue the deletes.
		ProjectionExpression: strPtr(pkAttr + ", " + skAttr),
	}

	var requests []types.WriteRequest
	for {
		page, err := b.queryWithRetry(ctx, input)
		if err != nil {
			return err
		}
		for _, item := range page.Items {
			key := map[string]types.AttributeValue{
				pkAttr: item[pkAttr],
				skAttr: item[skAttr],
			}
			requests = append(requests, types.WriteRequest{
				DeleteRequest: &types.DeleteRequest{Key: key},
			})
			if len(requests) == maxBatchWrite {
				if err := b.batchWrite(ctx, requests); err != nil {
					return err
				}
				requests = requests[:0]
			}
		}
		if len(page.LastEvaluatedKey) == 0 {
			break
		}
		input.ExclusiveStartKey = page.LastEvaluatedKey
	}
	if len(requests) > 0 {
		return b.batchWrite(ctx, requests)
	}
	return nil
}

// queryWithRetry executes one query page, retrying transient failures.
func (b *Bucket) queryWithRetry(ctx context.Context, input *sdk.QueryInput) (*sdk.QueryOutput, error) {
	var lastErr error

	for attempt := 0; attempt <= queryMaxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		out, err := b.client.Query(ctx, input)
		if err == nil {
			return out, nil
		}
		lastErr = err

		if !isRetryableError(err) {
			return nil, err
		}
		if attempt < queryMaxRetries {
			backoff := time.Duration(attempt+1) * queryRetryBackoff
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}
	}

	return nil, fmt.Errorf("query failed after %d retries: %w", queryMaxRetries, lastErr)
}

func queryInput(params *storagemodels.QueryParams) *sdk.QueryInput {
	keyCondition := params.KeyConditionExpression
	return &sdk.QueryInput{
		TableName:                 &params.TableName,
		KeyConditionExpression:    &keyCondition,
		ExpressionAttributeValues: params.ExpressionAttributeValues,
		FilterExpression:          params.FilterExpression,
		IndexName:                 params.IndexName,
		Limit:                     params.Limit,
		ExclusiveStartKey:         params.ExclusiveStartKey,
		ScanIndexForward:          params.ScanIndexForward,
	}
}

// isRetryableError determines if a DynamoDB error is retryable.
func isRetryableError(err error) bool {
	switch err.(type) {
	case *types.ProvisionedThroughputExceededException:
		return true
	case *types.RequestLimitExceeded:
		return true
	case *types.InternalServerError:
		return true
	}
	if awsErr, ok := err.(interface{ IsRetryable() bool }); ok {
		return awsErr.IsRetryable()
	}
	return false
}

func strPtr(s string) *string {
	return &s
}
