//go:build governance

package core_test

import (
	"maps"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/go/packages"
)

// singleUserAllowed names exported core identifiers that may have one user.
// Typed errors (suffix "Error") are also exempt: they are built in one
// package and matched elsewhere through errors.Is.
var singleUserAllowed = map[string]bool{
	"PortDirection": true,
	"PortInput":     true,
	"PortOutput":    true,
}

// coreUsers maps every exported identifier of pkg/core to the set of module
// packages (relative paths) that reference it.
func coreUsers(t *testing.T) map[string]map[string]bool {
	t.Helper()

	pkgs, err := packages.Load(&packages.Config{
		Mode: packages.NeedName | packages.NeedTypes | packages.NeedTypesInfo | packages.NeedImports | packages.NeedDeps,
	}, modulePath+"/...")
	require.NoError(t, err)

	corePath := modulePath + "/pkg/core"
	idx := slices.IndexFunc(pkgs, func(p *packages.Package) bool { return p.PkgPath == corePath })
	require.GreaterOrEqual(t, idx, 0, "pkg/core not loaded")

	users := make(map[string]map[string]bool)
	scope := pkgs[idx].Types.Scope()
	for _, name := range scope.Names() {
		if scope.Lookup(name).Exported() {
			users[name] = make(map[string]bool)
		}
	}

	for _, p := range pkgs {
		if p.PkgPath == corePath || p.TypesInfo == nil {
			continue
		}
		rel := strings.TrimPrefix(p.PkgPath, modulePath+"/")
		for _, obj := range p.TypesInfo.Uses {
			if obj.Pkg() == nil || obj.Pkg().Path() != corePath {
				continue
			}
			if set, ok := users[obj.Name()]; ok {
				set[rel] = true
			}
		}
	}
	return users
}

// TestGovernance_CoreCohesion keeps pkg/core limited to types shared by more
// than one package. A type with a single user belongs in that package.
func TestGovernance_CoreCohesion(t *testing.T) {
	for name, set := range coreUsers(t) {
		if singleUserAllowed[name] || strings.HasSuffix(name, "Error") {
			continue
		}
		if len(set) == 0 {
			t.Logf("core.%s is unused", name)
			continue
		}
		assert.Greater(t, len(set), 1,
			"core.%s is used only by %v; move it into that package", name, slices.Collect(maps.Keys(set)))
	}
}
