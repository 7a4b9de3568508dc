/*
Package convert defines the entity/native conversion contract consumed by the
persistence workflow, plus the default index-map based implementation.

The Converter interface is the only conversion surface the mapping core
depends on:

	type Converter[T any] interface {
	    ToNative(entity *T) (*storagemodels.NativeEntity, error)
	    FromNative(native *storagemodels.NativeEntity) (*T, error)
	}

FromNative returning (nil, nil) means "this value is not a T"; repositories
filter such results out rather than failing.

IndexMapConverter is the stock implementation. It marshals entities through
the attributevalue codec, expands the index map registered for T (macros like
"USER#{ID}" are filled from entity fields), uses the expanded PK as the
storage key, and stamps an EntityType attribute used for polymorphic
round-trips:

	registry.RegisterIndexMap[Player](map[string]string{
	    "PK": "PLAYER#{ID}",
	    "SK": "PLAYER#{ID}",
	})
	conv := convert.NewIndexMapConverter[Player]()
	native, err := conv.ToNative(&player)
*/
package convert
