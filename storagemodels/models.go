/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

import (
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// NativeEntity is the database-native representation of an entity produced by
// a converter. It is owned transiently by the persistence workflow during a
// single operation and never retained beyond the call.
type NativeEntity struct {
	// Key is the storage key for the value.
	Key string
	// Item holds the database-native attributes.
	Item map[string]types.AttributeValue
}

// QueryParams defines criteria for a driver query. The mapping core passes it
// through to the driver unchanged and does not interpret its structure.
type QueryParams struct {
	// TableName is the table to query.
	TableName string
	// KeyConditionExpression is the primary condition for the query.
	KeyConditionExpression string
	// FilterExpression is an optional filter expression.
	FilterExpression *string
	// ExpressionAttributeValues contains the values for expression placeholders.
	ExpressionAttributeValues map[string]types.AttributeValue
	// IndexName is optional if you wish to query a secondary index.
	IndexName *string
	// Limit defines an optional limit per query page.
	Limit *int32
	// ExclusiveStartKey for pagination
	ExclusiveStartKey map[string]types.AttributeValue
	// ScanIndexForward specifies the order for index traversal.
	// If true (default), traversal is in ascending order.
	// If false, traversal is in descending order.
	ScanIndexForward *bool
}

// DeleteParams defines criteria for a driver-side delete. Like QueryParams it
// is opaque to the mapping core: matching items are resolved and removed by
// the driver.
type DeleteParams struct {
	// TableName is the table to delete from.
	TableName string
	// KeyConditionExpression selects the items to delete.
	KeyConditionExpression string
	// ExpressionAttributeValues contains the values for expression placeholders.
	ExpressionAttributeValues map[string]types.AttributeValue
	// IndexName is optional if the selection runs against a secondary index.
	IndexName *string
}
