/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package convert

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/mapstore/errors"
	"github.com/suparena/mapstore/registry"
	"github.com/suparena/mapstore/storagemodels"
)

// EntityTypeAttribute is injected into every native value at persist time and
// drives polymorphic unmarshaling on the way back.
const EntityTypeAttribute = "EntityType"

// Converter maps entities of type T to their database-native representation
// and back. FromNative returns (nil, nil) when the native value does not
// represent a T; callers treat that as an empty result, not an error.
type Converter[T any] interface {
	ToNative(entity *T) (*storagemodels.NativeEntity, error)
	FromNative(native *storagemodels.NativeEntity) (*T, error)
}

// IndexMapConverter is the default Converter implementation. It marshals
// entities with the attributevalue codec and derives the storage key from the
// index map registered for T, expanding macros such as "USER#{ID}" from
// entity fields.
type IndexMapConverter[T any] struct {
	typeName string
}

var macroPattern = regexp.MustCompile(`{([^}]+)}`)

// NewIndexMapConverter constructs a converter for T. The entity type name
// recorded in the EntityType attribute defaults to T's Go type name.
func NewIndexMapConverter[T any]() *IndexMapConverter[T] {
	var zero T
	return &IndexMapConverter[T]{typeName: reflect.TypeOf(zero).Name()}
}

// NewIndexMapConverterWithName constructs a converter recording a custom
// entity type name, for callers whose registered names differ from the Go
// type name.
func NewIndexMapConverterWithName[T any](name string) *IndexMapConverter[T] {
	return &IndexMapConverter[T]{typeName: name}
}

// TypeName returns the entity type name this converter stamps onto native
// values.
func (c *IndexMapConverter[T]) TypeName() string {
	return c.typeName
}

// ToNative converts an entity to its native form. The registered index map is
// expanded against the entity's fields; the expanded PK pattern becomes the
// storage key and all expanded patterns are added as string attributes.
func (c *IndexMapConverter[T]) ToNative(entity *T) (*storagemodels.NativeEntity, error) {
	if entity == nil {
		return nil, errors.NewNilArgumentError("entity")
	}

	indexMap, ok := registry.GetIndexMap[T]()
	if !ok {
		return nil, errors.NewConversionError(c.typeName, fmt.Errorf("no index map registered"))
	}

	item, err := attributevalue.MarshalMap(entity)
	if err != nil {
		return nil, errors.NewConversionError(c.typeName, err)
	}

	expanded, err := expandIndexMap(indexMap, entity)
	if err != nil {
		return nil, errors.NewConversionError(c.typeName, err)
	}
	for field, value := range expanded {
		item[field] = &types.AttributeValueMemberS{Value: value}
	}
	item[EntityTypeAttribute] = &types.AttributeValueMemberS{Value: c.typeName}

	key := expanded["PK"]
	if key == "" {
		return nil, errors.NewConversionError(c.typeName, fmt.Errorf("index map produced an empty PK"))
	}

	return &storagemodels.NativeEntity{Key: key, Item: item}, nil
}

// FromNative converts a native value back to an entity. A value stamped with
// a different EntityType converts to (nil, nil).
func (c *IndexMapConverter[T]) FromNative(native *storagemodels.NativeEntity) (*T, error) {
	if native == nil {
		return nil, errors.NewNilArgumentError("native")
	}

	if attr, ok := native.Item[EntityTypeAttribute]; ok {
		var name string
		if err := attributevalue.Unmarshal(attr, &name); err != nil {
			return nil, errors.NewConversionError(c.typeName, err)
		}
		if name != c.typeName {
			return nil, nil
		}
	}

	// Strip the bookkeeping attribute before unmarshaling.
	item := make(map[string]types.AttributeValue, len(native.Item))
	for k, v := range native.Item {
		if k == EntityTypeAttribute {
			continue
		}
		item[k] = v
	}

	entity := new(T)
	if err := attributevalue.UnmarshalMap(item, entity); err != nil {
		return nil, errors.NewConversionError(c.typeName, err)
	}
	return entity, nil
}

// Key derives the storage key for an entity without building the full native
// value. Façades use it for key-only operations such as Remove.
func (c *IndexMapConverter[T]) Key(entity *T) (string, error) {
	native, err := c.ToNative(entity)
	if err != nil {
		return "", err
	}
	return native.Key, nil
}

// expandIndexMap replaces {Field} macros in each index map pattern with the
// corresponding entity field value. A macro that does not resolve to a scalar
// entity field is an error: expanding it to the empty string would collapse
// distinct entities onto one prefix-only key.
func expandIndexMap(indexMap map[string]string, keysInput any) (map[string]string, error) {
	av, err := attributevalue.MarshalMap(keysInput)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal keys input: %w", err)
	}
	values := macroValues(keysInput, av)

	res := make(map[string]string, len(indexMap))
	for fieldName, pattern := range indexMap {
		var unresolved string
		expanded := macroPattern.ReplaceAllStringFunc(pattern, func(macro string) string {
			field := strings.Trim(macro, "{}")
			val, ok := values[field]
			if !ok {
				unresolved = field
				return ""
			}
			s, scalar := attributeToString(val)
			if !scalar {
				unresolved = field
				return ""
			}
			return s
		})
		if unresolved != "" {
			return nil, fmt.Errorf("cannot expand macro {%s} in index map pattern %q: no scalar entity field", unresolved, pattern)
		}
		res[fieldName] = expanded
	}
	return res, nil
}

// macroValues indexes the marshaled attributes under every name a macro may
// reference a field by: the attribute name the codec chose, the Go field
// name, and the dynamodbav/json tag names. Generated models commonly tag
// fields with names that differ from the Go identifiers.
func macroValues(entity any, av map[string]types.AttributeValue) map[string]types.AttributeValue {
	values := make(map[string]types.AttributeValue, len(av))
	for k, v := range av {
		values[k] = v
	}

	t := reflect.TypeOf(entity)
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return values
	}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		attrName := field.Name
		if name := tagName(field.Tag.Get("dynamodbav")); name != "" {
			attrName = name
		}
		val, ok := av[attrName]
		if !ok {
			continue
		}
		values[field.Name] = val
		if name := tagName(field.Tag.Get("json")); name != "" {
			values[name] = val
		}
	}
	return values
}

// tagName extracts the name portion of a struct tag value.
func tagName(tag string) string {
	if idx := strings.Index(tag, ","); idx >= 0 {
		tag = tag[:idx]
	}
	if tag == "-" {
		return ""
	}
	return tag
}

// attributeToString renders scalar attribute values; the second return
// reports whether the member was a renderable scalar.
func attributeToString(val types.AttributeValue) (string, bool) {
	switch tv := val.(type) {
	case *types.AttributeValueMemberS:
		return tv.Value, true
	case *types.AttributeValueMemberN:
		return tv.Value, true
	case *types.AttributeValueMemberBOOL:
		return fmt.Sprintf("%v", tv.Value), true
	default:
		return "", false
	}
}
