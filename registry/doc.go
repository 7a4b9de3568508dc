/*
Package registry manages type registration and index mapping for mapstore.

The registry system enables:
  - Polymorphic entity storage in a single table
  - Dynamic type resolution based on EntityType attributes
  - Flexible key patterns through index maps

Type Registry:
Maps entity type names to unmarshal functions:

	registry.RegisterType("Player", func(item map[string]types.AttributeValue) (interface{}, error) {
	    var p Player
	    if err := attributevalue.UnmarshalMap(item, &p); err != nil {
	        return nil, err
	    }
	    return &p, nil
	})

Index Map Registry:
Associates Go types with storage key patterns:

	registry.RegisterIndexMap[Player](map[string]string{
	    "PK": "PLAYER#{ID}",
	    "SK": "PLAYER#{ID}",
	})

Index maps can also be loaded from YAML produced at build time, see
LoadIndexMaps.

The registries are thread-safe and should be populated during initialization,
typically in init() functions or through generated code.
*/
package registry
