package doctest

import (
	"go/ast"
	goparser "go/parser"
	"go/token"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// publicPackages are the importable packages of the module.
var publicPackages = []string{"document", "oaserrors", "transformer", "walker"}

// repoRoot resolves the repository root from this test file's location.
func repoRoot(t *testing.T) string {
	t.Helper()
	_, thisFile, _, ok := runtime.Caller(0)
	require.True(t, ok, "runtime.Caller(0) failed to retrieve file path")
	return filepath.Join(filepath.Dir(thisFile), "..", "..")
}

// TestPackageDocOptions verifies that every exported With* function of a
// package is mentioned in its doc.go.
func TestPackageDocOptions(t *testing.T) {
	root := repoRoot(t)

	for _, pkg := range publicPackages {
		t.Run(pkg, func(t *testing.T) {
			pkgDir := filepath.Join(root, pkg)

			sourceOpts := extractWithFunctions(t, pkgDir)
			if len(sourceOpts) == 0 {
				t.Skipf("no With* functions found in %s", pkg)
			}

			data, err := os.ReadFile(filepath.Join(pkgDir, "doc.go"))
			require.NoError(t, err, "every public package has a doc.go")
			doc := string(data)

			for _, fn := range sourceOpts {
				assert.Contains(t, doc, fn, "function %s() exists in %s/ source but is not mentioned in doc.go", fn, pkg)
			}
		})
	}
}

// extractWithFunctions uses go/ast to find all exported With* functions
// (not methods) in the given package directory, excluding test files.
func extractWithFunctions(t *testing.T, dir string) []string {
	t.Helper()

	var funcs []string
	for _, file := range parsePackageFiles(t, dir, 0) {
		for _, decl := range file.Decls {
			fn, ok := decl.(*ast.FuncDecl)
			if !ok || fn.Recv != nil {
				continue
			}
			if fn.Name.IsExported() && strings.HasPrefix(fn.Name.Name, "With") {
				funcs = append(funcs, fn.Name.Name)
			}
		}
	}
	return funcs
}

// parsePackageFiles parses the non-test Go files of dir.
func parsePackageFiles(t *testing.T, dir string, mode goparser.Mode) []*ast.File {
	t.Helper()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err, "reading package dir %s", dir)

	fset := token.NewFileSet()
	var files []*ast.File
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}
		f, err := goparser.ParseFile(fset, filepath.Join(dir, name), nil, mode)
		require.NoError(t, err, "parsing %s", name)
		files = append(files, f)
	}
	return files
}
