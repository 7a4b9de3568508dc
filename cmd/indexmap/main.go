// Command indexmap validates index map YAML files.
//
// Usage:
//
//	indexmap [-version] file.yaml [file.yaml...]
//
// Each file holds a map of entity type name to index map:
//
//	Player:
//	  PK: "PLAYER#{ID}"
//	  SK: "PLAYER#{ID}"
//
// The command fails on the first file whose maps are malformed, which makes
// it suitable as a CI check for configuration kept next to the code.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/suparena/mapstore"
	"github.com/suparena/mapstore/registry"
)

var (
	versionFlag = flag.Bool("version", false, "Show version information")
	vFlag       = flag.Bool("v", false, "Show version information (short)")
	quietFlag   = flag.Bool("q", false, "Suppress per-file output")
)

func main() {
	flag.Parse()

	if *versionFlag || *vFlag {
		info := mapstore.GetVersionInfo()
		fmt.Printf("MapStore indexmap version %s\n", info.Version)
		fmt.Printf("Git commit: %s\n", info.GitCommit)
		fmt.Printf("Build date: %s\n", info.BuildDate)
		fmt.Printf("Go version: %s\n", info.GoVersion)
		os.Exit(0)
	}

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: indexmap [-version] file.yaml [file.yaml...]")
		os.Exit(2)
	}

	for _, path := range flag.Args() {
		maps, err := registry.LoadIndexMapsFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "indexmap: %s: %v\n", path, err)
			os.Exit(1)
		}
		if *quietFlag {
			continue
		}
		fmt.Printf("%s: %d index map(s)\n", path, len(maps))
		names := make([]string, 0, len(maps))
		for name := range maps {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("  %s: PK=%q\n", name, maps[name]["PK"])
		}
	}
}
