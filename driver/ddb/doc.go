/*
Package ddb provides the DynamoDB bucket manager.

The Bucket implements every driver capability over a single table:
  - Put / Get / GetAll / Remove / RemoveAll on PK = SK = storage key
  - PutWithTTL through a numeric epoch-seconds attribute (ExpiresAt),
    wired to the table's TTL setting
  - Update as a conditional put (attribute_exists)
  - ExecuteQuery / ExecuteDelete with pagination and retry of transient
    service errors
  - Go, dispatching asynchronous repository work onto plain goroutines

Multi-key reads and removals use BatchGetItem and BatchWriteItem, chunked to
the service limits and re-driving unprocessed entries.

The Query builder constructs query parameters fluently:

	params, err := bucket.Query().
	    WithPartitionKey("PLAYER#123").
	    WithSortKeyPrefix("MATCH#").
	    WithLimit(50).
	    Build()

DynamoDB reaps TTL-expired items lazily, so reads filter values whose
ExpiresAt has lapsed.
*/
package ddb
