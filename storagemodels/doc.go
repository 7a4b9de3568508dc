/*
Package storagemodels defines the data structures shared between the mapstore
mapping core and its drivers.

Key Types:

NativeEntity:
The database-native form of an entity, produced by a converter on the way in
and handed back by the driver on the way out:

	type NativeEntity struct {
	    Key  string
	    Item map[string]types.AttributeValue
	}

QueryParams / DeleteParams:
Opaque criteria objects for driver-side queries and deletes:

	params := &QueryParams{
	    TableName:              "my-table",
	    KeyConditionExpression: "PK = :pk",
	    ExpressionAttributeValues: map[string]types.AttributeValue{
	        ":pk": &types.AttributeValueMemberS{Value: "USER#123"},
	    },
	    IndexName: aws.String("GSI1"),
	    Limit:     aws.Int32(100),
	}

The mapping core never inspects these criteria; it only forwards them to a
driver capable of executing them.
*/
package storagemodels
