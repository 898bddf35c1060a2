package version

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// DefaultIdentifier is the variable name an expression resolves when no
// explicit identifier is given.
const DefaultIdentifier = "VersionTuple"

// ErrLookup is returned when an expression names a module that cannot be
// loaded or an identifier that does not exist in it.
var ErrLookup = errors.New("lookup failed")

// moduleHandle is the result of the first resolution stage: a parsed Go
// module (single file or package directory) plus the directory that becomes
// the source tree hint.
type moduleHandle struct {
	files []*ast.File
	dir   string
}

// FromExpression builds a Version from an expression of the form
// "path[:identifier]". The path names a Go source file or package directory;
// the identifier (default "VersionTuple") names a top-level variable holding
// a 5-element tuple literal, e.g.
//
//	var VersionTuple = [5]any{1, 9, 2, "dev", 0}
//
// Resolution happens in two explicit stages: load the module, then look up
// the identifier. Either stage failing returns an error wrapping ErrLookup
// with the stage's reason. The module's directory becomes the source tree
// hint for VCS probing.
func FromExpression(expr string, opts ...Option) (*Version, error) {
	path := expr
	identifier := DefaultIdentifier
	if idx := strings.IndexByte(expr, ':'); idx >= 0 {
		path = expr[:idx]
		if rest := expr[idx+1:]; rest != "" {
			identifier = rest
		}
	}
	if path == "" {
		return nil, fmt.Errorf("%w: empty module path in expression %q", ErrLookup, expr)
	}

	handle, err := resolveModule(path)
	if err != nil {
		return nil, fmt.Errorf("%w: unable to load module %q: %v", ErrLookup, path, err)
	}

	tuple, err := resolveAttribute(handle, identifier)
	if err != nil {
		return nil, fmt.Errorf("%w: unable to access %q in %q: %v", ErrLookup, identifier, path, err)
	}

	return New(tuple.major, tuple.minor, tuple.micro, tuple.level, tuple.serial,
		append([]Option{WithSourceTree(handle.dir)}, opts...)...)
}

// resolveModule parses the Go source at path. A .go file is parsed alone;
// a directory is parsed as a package, skipping test files.
func resolveModule(path string) (*moduleHandle, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	fset := token.NewFileSet()

	if !info.IsDir() {
		file, err := parser.ParseFile(fset, path, nil, 0)
		if err != nil {
			return nil, err
		}
		dir, err := filepath.Abs(filepath.Dir(path))
		if err != nil {
			return nil, err
		}
		return &moduleHandle{files: []*ast.File{file}, dir: dir}, nil
	}

	pkgs, err := parser.ParseDir(fset, path, func(fi os.FileInfo) bool {
		return !strings.HasSuffix(fi.Name(), "_test.go")
	}, 0)
	if err != nil {
		return nil, err
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no Go source files in %s", path)
	}

	var files []*ast.File
	for _, pkg := range pkgs {
		for _, file := range pkg.Files {
			files = append(files, file)
		}
	}
	dir, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	return &moduleHandle{files: files, dir: dir}, nil
}

// rawTuple holds the five components extracted from a tuple literal before
// validation.
type rawTuple struct {
	major, minor, micro int
	level               ReleaseLevel
	serial              int
}

// resolveAttribute finds a top-level variable named identifier whose value is
// a 5-element composite literal and extracts its components.
func resolveAttribute(handle *moduleHandle, identifier string) (*rawTuple, error) {
	for _, file := range handle.files {
		for _, decl := range file.Decls {
			gen, ok := decl.(*ast.GenDecl)
			if !ok || (gen.Tok != token.VAR && gen.Tok != token.CONST) {
				continue
			}
			for _, spec := range gen.Specs {
				vs, ok := spec.(*ast.ValueSpec)
				if !ok {
					continue
				}
				for i, name := range vs.Names {
					if name.Name != identifier || i >= len(vs.Values) {
						continue
					}
					return extractTuple(vs.Values[i])
				}
			}
		}
	}
	return nil, fmt.Errorf("no top-level variable %q", identifier)
}

// extractTuple reads (major, minor, micro, level, serial) out of a composite
// literal expression.
func extractTuple(expr ast.Expr) (*rawTuple, error) {
	lit, ok := expr.(*ast.CompositeLit)
	if !ok {
		return nil, fmt.Errorf("value is not a composite literal")
	}
	if len(lit.Elts) != 5 {
		return nil, fmt.Errorf("tuple must have 5 elements, got %d", len(lit.Elts))
	}

	var t rawTuple
	var err error
	if t.major, err = intElement(lit.Elts[0]); err != nil {
		return nil, fmt.Errorf("major: %w", err)
	}
	if t.minor, err = intElement(lit.Elts[1]); err != nil {
		return nil, fmt.Errorf("minor: %w", err)
	}
	if t.micro, err = intElement(lit.Elts[2]); err != nil {
		return nil, fmt.Errorf("micro: %w", err)
	}
	level, err := stringElement(lit.Elts[3])
	if err != nil {
		return nil, fmt.Errorf("release level: %w", err)
	}
	t.level = ReleaseLevel(level)
	if t.serial, err = intElement(lit.Elts[4]); err != nil {
		return nil, fmt.Errorf("serial: %w", err)
	}
	return &t, nil
}

// intElement evaluates an integer literal, allowing a leading unary minus so
// that negative components reach validation instead of failing extraction.
func intElement(expr ast.Expr) (int, error) {
	neg := false
	if unary, ok := expr.(*ast.UnaryExpr); ok && unary.Op == token.SUB {
		neg = true
		expr = unary.X
	}
	lit, ok := expr.(*ast.BasicLit)
	if !ok || lit.Kind != token.INT {
		return 0, fmt.Errorf("expected integer literal")
	}
	n, err := strconv.Atoi(lit.Value)
	if err != nil {
		return 0, err
	}
	if neg {
		n = -n
	}
	return n, nil
}

func stringElement(expr ast.Expr) (string, error) {
	lit, ok := expr.(*ast.BasicLit)
	if !ok || lit.Kind != token.STRING {
		return "", fmt.Errorf("expected string literal")
	}
	return strconv.Unquote(lit.Value)
}
