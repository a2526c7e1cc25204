package core_test

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

const modulePath = "github.com/leapstack-labs/leapflow"

// importsOf returns import path -> importing file for the non-test files in dir.
func importsOf(t *testing.T, dir string) map[string]string {
	t.Helper()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", dir, err)
	}

	fset := token.NewFileSet()
	imports := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".go") || strings.HasSuffix(entry.Name(), "_test.go") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		f, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if err != nil {
			t.Errorf("Failed to parse %s: %v", path, err)
			continue
		}
		for _, imp := range f.Imports {
			importPath, _ := strconv.Unquote(imp.Path.Value)
			imports[importPath] = entry.Name()
		}
	}
	return imports
}

// TestCoreImportsOnlyStdlib verifies pkg/core depends on nothing but the standard library.
func TestCoreImportsOnlyStdlib(t *testing.T) {
	for importPath, file := range importsOf(t, ".") {
		// Stdlib paths have no dot in their first element
		if first, _, _ := strings.Cut(importPath, "/"); strings.Contains(first, ".") {
			t.Errorf("%s imports non-stdlib package: %s", file, importPath)
		}
	}
}

// TestDomainPackagesAreTransportFree verifies the graph model and validator
// never depend on the HTTP or CLI layers built on top of them.
func TestDomainPackagesAreTransportFree(t *testing.T) {
	domain := []string{"template", "registry", "dag", "pipeline", "submission"}
	forbidden := []string{
		"net/http",
		modulePath + "/internal/api",
		modulePath + "/internal/server",
		modulePath + "/internal/cli",
	}

	for _, pkg := range domain {
		dir := filepath.Join("..", "..", "internal", pkg)
		for importPath, file := range importsOf(t, dir) {
			for _, f := range forbidden {
				if importPath == f || strings.HasPrefix(importPath, f+"/") {
					t.Errorf("internal/%s/%s imports %s (domain packages must not depend on transports)", pkg, file, importPath)
				}
			}
		}
	}
}
