/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/mapstore/storagemodels"
)

const (
	pkAttr  = "PK"
	skAttr  = "SK"
	ttlAttr = "ExpiresAt"

	// DynamoDB limits per batch call.
	maxBatchGet   = 100
	maxBatchWrite = 25

	maxBatchRounds = 5
)

// Bucket implements the driver contract over a single DynamoDB table. Values
// are stored under PK = SK = the storage key; a time-to-live, when set, lives
// in a numeric epoch-seconds attribute wired to the table's TTL setting.
type Bucket struct {
	client    *sdk.Client
	tableName string
}

// NewClient initializes a DynamoDB client using static AWS credentials.
func NewClient(awsAccessKey, awsSecretKey, awsRegion string) (*sdk.Client, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(awsRegion),
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(awsAccessKey, awsSecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}
	return sdk.NewFromConfig(cfg), nil
}

// New constructs a Bucket over a table, creating a client from static
// credentials.
func New(awsAccessKey, awsSecretKey, awsRegion, tableName string) (*Bucket, error) {
	client, err := NewClient(awsAccessKey, awsSecretKey, awsRegion)
	if err != nil {
		return nil, fmt.Errorf("failed to create DynamoDB client: %w", err)
	}
	return NewWithClient(client, tableName), nil
}

// NewWithClient constructs a Bucket over an existing client, which lets
// callers share one client across tables or inject custom endpoints.
func NewWithClient(client *sdk.Client, tableName string) *Bucket {
	return &Bucket{client: client, tableName: tableName}
}

// Name identifies the driver in error messages.
func (b *Bucket) Name() string {
	return "dynamodb"
}

// TableName returns the backing table.
func (b *Bucket) TableName() string {
	return b.tableName
}

// Put stores a native value, inserting or replacing.
func (b *Bucket) Put(ctx context.Context, native *storagemodels.NativeEntity) error {
	_, err := b.client.PutItem(ctx, &sdk.PutItemInput{
		TableName: &b.tableName,
		Item:      b.itemFor(native, nil),
	})
	if err != nil {
		return fmt.Errorf("PutItem failed: %w", err)
	}
	return nil
}

// PutWithTTL stores a native value that DynamoDB expires after ttl.
func (b *Bucket) PutWithTTL(ctx context.Context, native *storagemodels.NativeEntity, ttl time.Duration) error {
	expires := time.Now().Add(ttl).Unix()
	_, err := b.client.PutItem(ctx, &sdk.PutItemInput{
		TableName: &b.tableName,
		Item:      b.itemFor(native, &expires),
	})
	if err != nil {
		return fmt.Errorf("PutItem failed: %w", err)
	}
	return nil
}

// Update replaces an existing value, failing when the key is absent.
func (b *Bucket) Update(ctx context.Context, native *storagemodels.NativeEntity) error {
	condition := "attribute_exists(" + pkAttr + ")"
	_, err := b.client.PutItem(ctx, &sdk.PutItemInput{
		TableName:           &b.tableName,
		Item:                b.itemFor(native, nil),
		ConditionExpression: &condition,
	})
	if err != nil {
		return fmt.Errorf("conditional PutItem failed: %w", err)
	}
	return nil
}

// Get fetches a native value by key. Absent keys yield (nil, nil), as do
// values whose TTL has lapsed but which DynamoDB has not reaped yet.
func (b *Bucket) Get(ctx context.Context, key string) (*storagemodels.NativeEntity, error) {
	out, err := b.client.GetItem(ctx, &sdk.GetItemInput{
		TableName: &b.tableName,
		Key:       keyFor(key),
	})
	if err != nil {
		return nil, fmt.Errorf("GetItem error: %w", err)
	}
	if out.Item == nil {
		return nil, nil
	}
	native := nativeFrom(out.Item)
	if native == nil {
		return nil, nil
	}
	return native, nil
}

// GetAll fetches native values for multiple keys via BatchGetItem, chunked to
// the service limit. Absent keys are omitted; the returned order follows the
// request order of the keys that were found.
func (b *Bucket) GetAll(ctx context.Context, keys []string) ([]*storagemodels.NativeEntity, error) {
	found := make(map[string]*storagemodels.NativeEntity, len(keys))

	for start := 0; start < len(keys); start += maxBatchGet {
		end := start + maxBatchGet
		if end > len(keys) {
			end = len(keys)
		}
		requestKeys := make([]map[string]types.AttributeValue, 0, end-start)
		for _, key := range keys[start:end] {
			requestKeys = append(requestKeys, keyFor(key))
		}

		for round := 0; len(requestKeys) > 0; round++ {
			if round >= maxBatchRounds {
				return nil, fmt.Errorf("BatchGetItem left %d unprocessed keys after %d rounds", len(requestKeys), round)
			}
			out, err := b.client.BatchGetItem(ctx, &sdk.BatchGetItemInput{
				RequestItems: map[string]types.KeysAndAttributes{
					b.tableName: {Keys: requestKeys},
				},
			})
			if err != nil {
				return nil, fmt.Errorf("BatchGetItem error: %w", err)
			}
			for _, item := range out.Responses[b.tableName] {
				if native := nativeFrom(item); native != nil {
					found[native.Key] = native
				}
			}
			requestKeys = out.UnprocessedKeys[b.tableName].Keys
		}
	}

	out := make([]*storagemodels.NativeEntity, 0, len(found))
	for _, key := range keys {
		if native, ok := found[key]; ok {
			out = append(out, native)
			delete(found, key)
		}
	}
	return out, nil
}

// Remove deletes the value stored under key. Deleting an absent key is not an
// error.
func (b *Bucket) Remove(ctx context.Context, key string) error {
	_, err := b.client.DeleteItem(ctx, &sdk.DeleteItemInput{
		TableName: &b.tableName,
		Key:       keyFor(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete item in DynamoDB: %w", err)
	}
	return nil
}

// RemoveAll deletes the values stored under keys via BatchWriteItem, chunked
// to the service limit.
func (b *Bucket) RemoveAll(ctx context.Context, keys []string) error {
	for start := 0; start < len(keys); start += maxBatchWrite {
		end := start + maxBatchWrite
		if end > len(keys) {
			end = len(keys)
		}
		requests := make([]types.WriteRequest, 0, end-start)
		for _, key := range keys[start:end] {
			requests = append(requests, types.WriteRequest{
				DeleteRequest: &types.DeleteRequest{Key: keyFor(key)},
			})
		}
		if err := b.batchWrite(ctx, requests); err != nil {
			return err
		}
	}
	return nil
}

// Go runs fn on its own goroutine. Asynchronous façades dispatch their work
// here.
func (b *Bucket) Go(fn func()) {
	go fn()
}

// batchWrite issues one BatchWriteItem chunk, re-driving unprocessed items.
func (b *Bucket) batchWrite(ctx context.Context, requests []types.WriteRequest) error {
	for round := 0; len(requests) > 0; round++ {
		if round >= maxBatchRounds {
			return fmt.Errorf("BatchWriteItem left %d unprocessed requests after %d rounds", len(requests), round)
		}
		out, err := b.client.BatchWriteItem(ctx, &sdk.BatchWriteItemInput{
			RequestItems: map[string][]types.WriteRequest{
				b.tableName: requests,
			},
		})
		if err != nil {
			return fmt.Errorf("BatchWriteItem error: %w", err)
		}
		requests = out.UnprocessedItems[b.tableName]
	}
	return nil
}

// itemFor builds the stored item: the native attributes plus the table keys
// and, when set, the TTL attribute. The key attributes always follow
// native.Key, so the caller's converter cannot desynchronize them.
func (b *Bucket) itemFor(native *storagemodels.NativeEntity, expires *int64) map[string]types.AttributeValue {
	item := make(map[string]types.AttributeValue, len(native.Item)+3)
	for k, v := range native.Item {
		item[k] = v
	}
	item[pkAttr] = &types.AttributeValueMemberS{Value: native.Key}
	item[skAttr] = &types.AttributeValueMemberS{Value: native.Key}
	if expires != nil {
		item[ttlAttr] = &types.AttributeValueMemberN{Value: strconv.FormatInt(*expires, 10)}
	}
	return item
}

// keyFor builds the single-object table key, PK = SK = key.
func keyFor(key string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		pkAttr: &types.AttributeValueMemberS{Value: key},
		skAttr: &types.AttributeValueMemberS{Value: key},
	}
}

// nativeFrom rebuilds a NativeEntity from a stored item, dropping the table
// key and TTL attributes. It returns nil for items whose TTL has lapsed;
// DynamoDB reaps expired items lazily, so reads must filter them.
func nativeFrom(item map[string]types.AttributeValue) *storagemodels.NativeEntity {
	if expiresAttr, ok := item[ttlAttr].(*types.AttributeValueMemberN); ok {
		expires, err := strconv.ParseInt(expiresAttr.Value, 10, 64)
		if err == nil && expires <= time.Now().Unix() {
			return nil
		}
	}

	var key string
	if pk, ok := item[pkAttr].(*types.AttributeValueMemberS); ok {
		key = pk.Value
	}

	attrs := make(map[string]types.AttributeValue, len(item))
	for k, v := range item {
		if k == pkAttr || k == skAttr || k == ttlAttr {
			continue
		}
		attrs[k] = v
	}
	return &storagemodels.NativeEntity{Key: key, Item: attrs}
}
