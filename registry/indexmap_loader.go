/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadIndexMaps reads index-map definitions in YAML form, keyed by entity
// type name:
//
//	Player:
//	  PK: "PLAYER#{ID}"
//	  SK: "PLAYER#{ID}"
//	RatingRecord:
//	  PK: "PLAYER#{PlayerID}"
//	  SK: "RATING#{RatingID}"
//
// The result is keyed by type name; callers register each map against its Go
// type with RegisterIndexMap, typically during initialization:
//
//	maps, _ := registry.LoadIndexMapsFile("indexmaps.yaml")
//	registry.RegisterIndexMap[Player](maps["Player"])
func LoadIndexMaps(r io.Reader) (map[string]map[string]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read index maps: %w", err)
	}

	maps := make(map[string]map[string]string)
	if err := yaml.Unmarshal(data, &maps); err != nil {
		return nil, fmt.Errorf("parse index maps: %w", err)
	}

	for name, m := range maps {
		if len(m) == 0 {
			return nil, fmt.Errorf("index map for %q is empty", name)
		}
		if _, ok := m["PK"]; !ok {
			return nil, fmt.Errorf("index map for %q has no PK pattern", name)
		}
	}
	return maps, nil
}

// LoadIndexMapsFile is a convenience wrapper around LoadIndexMaps for a file
// on disk.
func LoadIndexMapsFile(path string) (map[string]map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open index maps file: %w", err)
	}
	defer f.Close()
	return LoadIndexMaps(f)
}
