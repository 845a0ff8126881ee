// Package timeutc reports time.Now readings that are not converted to UTC.
//
// Todo timestamps are persisted and serialized in UTC; a local reading that
// leaks into an item shifts createdAt and completedAt by the host offset.
package timeutc

import (
	"go/ast"
	"go/types"
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

const (
	analyzerName = "timeutc"

	callMessage  = "time.Now() should be followed by .UTC() for timezone consistency"
	valueMessage = "time.Now used as a value returns local time; wrap it in a func that calls .UTC()"
)

// Analyzer detects time.Now() calls without .UTC() and time.Now passed as a function value.
var Analyzer = &analysis.Analyzer{
	Name:     analyzerName,
	Doc:      "checks that time.Now readings are converted with .UTC()",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

func run(pass *analysis.Pass) (any, error) {
	ins := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	suppressed := nolintLines(pass)

	ins.WithStack([]ast.Node{(*ast.Ident)(nil)}, func(n ast.Node, push bool, stack []ast.Node) bool {
		if !push {
			return true
		}
		id := n.(*ast.Ident)
		if !isTimeNow(pass.TypesInfo.Uses[id]) {
			return true
		}

		// expr is time.Now as written: a qualified selector, or the bare
		// identifier under a dot import.
		var expr ast.Expr = id
		depth := len(stack) - 2
		if sel, ok := parentAt(stack, depth).(*ast.SelectorExpr); ok && sel.Sel == id {
			expr = sel
			depth--
		}

		if suppressed.has(pass, id) {
			return true
		}

		call, ok := parentAt(stack, depth).(*ast.CallExpr)
		if !ok || call.Fun != expr {
			pass.Reportf(expr.Pos(), valueMessage)
			return true
		}

		if sel, ok := parentAt(stack, depth-1).(*ast.SelectorExpr); ok && sel.X == call && sel.Sel.Name == "UTC" {
			return true
		}
		pass.Reportf(call.Pos(), callMessage)
		return true
	})

	return nil, nil
}

func parentAt(stack []ast.Node, i int) ast.Node {
	if i < 0 || i >= len(stack) {
		return nil
	}
	return stack[i]
}

// isTimeNow reports whether obj is the function time.Now, whatever name the package was imported under.
func isTimeNow(obj types.Object) bool {
	fn, ok := obj.(*types.Func)
	if !ok || fn.Pkg() == nil {
		return false
	}
	return fn.Pkg().Path() == "time" && fn.Name() == "Now"
}

// lineSet maps a file name to the lines that carry a nolint directive for this analyzer.
type lineSet map[string]map[int]bool

// has reports whether n sits on a suppressed line or directly below one.
func (s lineSet) has(pass *analysis.Pass, n ast.Node) bool {
	pos := pass.Fset.Position(n.Pos())
	lines := s[pos.Filename]
	return lines[pos.Line] || lines[pos.Line-1]
}

func nolintLines(pass *analysis.Pass) lineSet {
	set := lineSet{}
	for _, f := range pass.Files {
		for _, cg := range f.Comments {
			for _, c := range cg.List {
				if !suppresses(c.Text) {
					continue
				}
				pos := pass.Fset.Position(c.Pos())
				if set[pos.Filename] == nil {
					set[pos.Filename] = map[int]bool{}
				}
				set[pos.Filename][pos.Line] = true
			}
		}
	}
	return set
}

// suppresses accepts //nolint and //nolint:a,b,timeutc.
func suppresses(comment string) bool {
	text := strings.TrimSpace(strings.TrimPrefix(comment, "//"))
	if !strings.HasPrefix(text, "nolint") {
		return false
	}
	rest := strings.TrimPrefix(text, "nolint")
	if !strings.HasPrefix(rest, ":") {
		return true
	}
	linters, _, _ := strings.Cut(strings.TrimPrefix(rest, ":"), " ")
	for _, name := range strings.Split(linters, ",") {
		if name == analyzerName {
			return true
		}
	}
	return false
}
