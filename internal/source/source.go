// Package source recovers the literal text of call arguments from Go source
// files, so that checks can quote the expressions they were given.
package source

import (
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"sync"
)

type file struct {
	fset *token.FileSet
	ast  *ast.File
	src  []byte
}

var (
	lock  sync.Mutex
	files = map[string]*file{}
)

// Args returns the source text of the arguments of the call to fn that
// spans the given line of path. If several nested calls match, the innermost
// one wins. It returns nil if the file cannot be read, no call matches, or
// the line holds sibling calls that a line number cannot tell apart.
func Args(path string, line int, fn string) []string {
	f, err := load(path)
	if err != nil {
		return nil
	}

	var calls []*ast.CallExpr
	ast.Inspect(f.ast, func(n ast.Node) bool {
		call, ok := n.(*ast.CallExpr)
		if !ok {
			return true
		}
		start, end := f.fset.Position(call.Pos()).Line, f.fset.Position(call.End()).Line
		if line < start || line > end {
			return true
		}
		if calleeName(call.Fun) == fn {
			calls = append(calls, call)
		}
		return true
	})

	match := innermost(calls)
	if match == nil {
		return nil
	}

	args := make([]string, len(match.Args))
	for i, arg := range match.Args {
		args[i] = f.text(arg)
	}
	return args
}

// Arg returns the text of the i-th argument of the call, or def.
func Arg(path string, line int, fn string, i int, def string) string {
	args := Args(path, line, fn)
	if i < 0 || i >= len(args) {
		return def
	}
	return args[i]
}

// innermost returns the call nested in all the others, or nil.
func innermost(calls []*ast.CallExpr) *ast.CallExpr {
	var match *ast.CallExpr
	for _, call := range calls {
		if match == nil || call.End()-call.Pos() < match.End()-match.Pos() {
			match = call
		}
	}
	for _, call := range calls {
		if call.Pos() > match.Pos() || call.End() < match.End() {
			return nil
		}
	}
	return match
}

func (f *file) text(n ast.Node) string {
	start, end := f.fset.Position(n.Pos()).Offset, f.fset.Position(n.End()).Offset
	if start < 0 || end > len(f.src) || start > end {
		return ""
	}
	return string(f.src[start:end])
}

func calleeName(expr ast.Expr) string {
	switch obj := expr.(type) {
	case *ast.Ident:
		return obj.Name
	case *ast.SelectorExpr:
		return obj.Sel.Name
	case *ast.IndexExpr:
		// explicit instantiation, i.e. Panics[*MyErr](...)
		return calleeName(obj.X)
	case *ast.IndexListExpr:
		return calleeName(obj.X)
	case *ast.ParenExpr:
		return calleeName(obj.X)
	}
	return ""
}

func load(path string) (*file, error) {
	lock.Lock()
	defer lock.Unlock()

	if f, ok := files[path]; ok {
		return f, nil
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	fset := token.NewFileSet()
	tree, err := parser.ParseFile(fset, path, src, 0)
	if err != nil {
		return nil, err
	}
	f := &file{fset: fset, ast: tree, src: src}
	files[path] = f
	return f, nil
}
