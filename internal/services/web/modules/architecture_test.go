package modules

import (
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

var featureAreas = []string{"public", "registration", "dashboard"}

// moduleImports returns import paths per non-test file of one feature area.
func moduleImports(t *testing.T, area string) map[string][]string {
	t.Helper()
	files, err := filepath.Glob(filepath.Join(area, "*.go"))
	if err != nil {
		t.Fatalf("glob %s: %v", area, err)
	}
	out := map[string][]string{}
	fset := token.NewFileSet()
	for _, file := range files {
		if strings.HasSuffix(file, "_test.go") {
			continue
		}
		parsed, err := parser.ParseFile(fset, file, nil, parser.ImportsOnly)
		if err != nil {
			t.Fatalf("parse imports for %s: %v", file, err)
		}
		for _, imp := range parsed.Imports {
			path, err := strconv.Unquote(imp.Path.Value)
			if err != nil {
				t.Fatalf("unquote %s: %v", imp.Path.Value, err)
			}
			out[file] = append(out[file], path)
		}
	}
	return out
}

func TestFeatureModuleImportBoundaries(t *testing.T) {
	t.Parallel()

	forbidden := []struct {
		fragment string
		reason   string
	}{
		{"/internal/services/web/modules/", "sibling feature module"},
		{"/internal/services/web/storage", "storage must arrive through a gateway"},
		{"modernc.org/sqlite", "storage driver"},
		{"database/sql", "storage driver"},
	}
	for _, area := range featureAreas {
		for file, imports := range moduleImports(t, area) {
			for _, path := range imports {
				for _, rule := range forbidden {
					if strings.Contains(path, rule.fragment) {
						t.Errorf("%s imports %q (%s)", file, path, rule.reason)
					}
				}
			}
		}
	}
}

func TestFeatureModulesShareFileLayout(t *testing.T) {
	t.Parallel()

	for _, area := range featureAreas {
		for _, file := range []string{"module.go", "routes.go", "routes_test.go", "handlers.go"} {
			if _, err := os.Stat(filepath.Join(area, file)); err != nil {
				t.Errorf("module %q missing %s: %v", area, file, err)
			}
		}
	}
}

func TestMountLeavesGatewaysToComposition(t *testing.T) {
	t.Parallel()

	gatewayFields := map[string]bool{"Registration": true, "DraftTokens": true, "Participants": true}
	for _, area := range []string{"registration", "dashboard"} {
		moduleFile := filepath.Join(area, "module.go")
		mount := findMethod(t, moduleFile, "Mount")
		ast.Inspect(mount.Body, func(n ast.Node) bool {
			sel, ok := n.(*ast.SelectorExpr)
			if !ok {
				return true
			}
			if ident, ok := sel.X.(*ast.Ident); ok && ident.Name == "deps" && gatewayFields[sel.Sel.Name] {
				t.Errorf("%s Mount reads deps.%s; pass it to the module constructor instead", moduleFile, sel.Sel.Name)
			}
			return true
		})
	}
}

func findMethod(t *testing.T, file, name string) *ast.FuncDecl {
	t.Helper()
	parsed, err := parser.ParseFile(token.NewFileSet(), file, nil, parser.SkipObjectResolution)
	if err != nil {
		t.Fatalf("parse %s: %v", file, err)
	}
	for _, decl := range parsed.Decls {
		if fn, ok := decl.(*ast.FuncDecl); ok && fn.Name.Name == name && fn.Body != nil {
			return fn
		}
	}
	t.Fatalf("%s has no %s method", file, name)
	return nil
}
