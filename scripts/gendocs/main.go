// Package main generates markdown documentation from leapflow's cobra commands,
// configuration keys and node type registry.
//
// Usage:
//
//	go run ./scripts/gendocs -gen=cli -outdir=docs/cli
//	go run ./scripts/gendocs -gen=config -outdir=docs/reference
//	go run ./scripts/gendocs -gen=nodes -outdir=docs/reference
//	go run ./scripts/gendocs -gen=all
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

var (
	genFlag    = flag.String("gen", "all", "what to generate: cli, config, nodes, all")
	outDirFlag = flag.String("outdir", "", "output directory (defaults based on gen type)")
)

// generators maps each -gen value to its generator and default output directory.
var generators = map[string]struct {
	run        func(outDir string) error
	defaultDir string
}{
	"cli":    {generateCLIDocs, filepath.Join("docs", "cli")},
	"config": {generateSchemaDocs, filepath.Join("docs", "reference")},
	"nodes":  {generateNodeTypeDocs, filepath.Join("docs", "reference")},
}

func main() {
	flag.Parse()

	names := []string{*genFlag}
	if *genFlag == "all" {
		names = []string{"cli", "config", "nodes"}
	} else if _, ok := generators[*genFlag]; !ok {
		log.Fatalf("unknown -gen value: %s (use: cli, config, nodes, all)", *genFlag)
	}

	root, err := moduleRoot()
	if err != nil {
		log.Fatalf("failed to find module root: %v", err)
	}

	for _, name := range names {
		gen := generators[name]
		outDir := filepath.Join(root, gen.defaultDir)
		if *outDirFlag != "" && len(names) == 1 {
			outDir = *outDirFlag
		}
		if err := gen.run(outDir); err != nil {
			log.Fatalf("failed to generate %s docs: %v", name, err)
		}
	}
}

// moduleRoot returns the nearest directory at or above the working directory
// that holds a go.mod file.
func moduleRoot() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for dir := wd; ; {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		next := filepath.Dir(dir)
		if next == dir {
			return "", fmt.Errorf("no go.mod at or above %s", wd)
		}
		dir = next
	}
}
