// Package extractor recovers the structural model of a scaffolded Go test
// file. It recognizes only the layout produced by package emitter and never
// guesses: anything ambiguous is reported as a *domain.ParseError.
package extractor

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"strconv"
	"strings"

	"btt/internal/domain"
	"btt/internal/emitter"
	"btt/internal/naming"
)

// Extractor parses scaffolded test files
type Extractor struct{}

// NewExtractor creates a new Extractor
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Scope is one extracted scope and the place it occupies in the source
type Scope struct {
	Node     *domain.ModelNode
	Param    string // Name of the *testing.T parameter inside the body
	Start    int    // Byte offset of the function or t.Run statement, doc comment included
	End      int    // Byte offset just past the statement
	Rbrace   int    // Byte offset of the closing brace of the body
	Children []*Scope
}

// Source is a parsed scaffolded file
type Source struct {
	Model *domain.Model
	Roots []*Scope
}

// Extract parses src and rebuilds its scope forest. Top-level declarations
// other than Test_ functions and statements other than direct t.Run calls are
// user code and are ignored.
func (e *Extractor) Extract(filename string, src []byte) (*domain.Model, error) {
	source, err := e.Parse(filename, src)
	if err != nil {
		return nil, err
	}
	return source.Model, nil
}

// Parse is Extract keeping the byte spans of every scope
func (e *Extractor) Parse(filename string, src []byte) (*Source, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filename, src, parser.ParseComments)
	if err != nil {
		return nil, &domain.ParseError{Reason: "source is not valid Go", Err: err}
	}

	x := &extraction{fset: fset, comments: file.Comments}
	source := &Source{Model: &domain.Model{}}
	seen := make(map[string]int)

	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Recv != nil || !strings.HasPrefix(fn.Name.Name, emitter.RootPrefix) {
			continue
		}

		line := x.line(fn.Pos())
		id := strings.TrimPrefix(fn.Name.Name, emitter.RootPrefix)
		if !naming.IsIdentifier(id) {
			return nil, &domain.ParseError{
				Line:   line,
				Reason: fmt.Sprintf("test function %s does not carry a scaffolded identifier", fn.Name.Name),
			}
		}

		param, ok := testingParam(fn.Type)
		if !ok || fn.Body == nil {
			return nil, &domain.ParseError{
				Path:   []string{id},
				Line:   line,
				Reason: fmt.Sprintf("%s must have the signature func(t *testing.T)", fn.Name.Name),
			}
		}

		if first, dup := seen[id]; dup {
			return nil, &domain.ParseError{
				Path:   []string{id},
				Line:   line,
				Reason: fmt.Sprintf("duplicate test function, first declared on line %d", first),
			}
		}
		seen[id] = line

		root, err := x.scope(id, line, fn.Body, param, nil)
		if err != nil {
			return nil, err
		}
		start := fn.Pos()
		if fn.Doc != nil {
			start = fn.Doc.Pos()
		}
		root.Start, root.End = x.offset(start), x.offset(fn.End())
		source.Roots = append(source.Roots, root)
		source.Model.Roots = append(source.Model.Roots, root.Node)
	}

	if len(source.Roots) == 0 {
		return nil, &domain.ParseError{Reason: "no scaffolded test functions found"}
	}

	return source, nil
}

type extraction struct {
	fset     *token.FileSet
	comments []*ast.CommentGroup
}

func (x *extraction) line(pos token.Pos) int {
	return x.fset.Position(pos).Line
}

func (x *extraction) offset(pos token.Pos) int {
	return x.fset.Position(pos).Offset
}

// scope builds the node for one test function or subtest body
func (x *extraction) scope(id string, line int, body *ast.BlockStmt, param string, parent []string) (*Scope, error) {
	path := append(append([]string{}, parent...), id)
	node := &domain.ModelNode{
		Identifier:  id,
		Kind:        domain.KindLeaf,
		Description: x.description(body),
		Line:        line,
	}
	result := &Scope{Node: node, Param: param, Rbrace: x.offset(body.Rbrace)}

	seen := make(map[string]int)
	for _, stmt := range body.List {
		call, ok := subtestCall(stmt, param)
		if !ok {
			continue
		}

		childLine := x.line(call.Pos())
		if len(call.Args) != 2 {
			return nil, &domain.ParseError{Path: path, Line: childLine, Reason: param + ".Run must take a name and a function"}
		}

		lit, ok := call.Args[0].(*ast.BasicLit)
		if !ok || lit.Kind != token.STRING {
			return nil, &domain.ParseError{Path: path, Line: childLine, Reason: "subtest name is not a string literal"}
		}
		childID, err := strconv.Unquote(lit.Value)
		if err != nil {
			return nil, &domain.ParseError{Path: path, Line: childLine, Reason: "malformed subtest name", Err: err}
		}
		if !naming.IsIdentifier(childID) {
			return nil, &domain.ParseError{
				Path:   path,
				Line:   childLine,
				Reason: fmt.Sprintf("subtest name %q does not follow the identifier convention", childID),
			}
		}

		fn, ok := call.Args[1].(*ast.FuncLit)
		if !ok {
			return nil, &domain.ParseError{Path: append(path, childID), Line: childLine, Reason: "subtest body is not a function literal"}
		}
		childParam, ok := testingParam(fn.Type)
		if !ok {
			return nil, &domain.ParseError{Path: append(path, childID), Line: childLine, Reason: "subtest function must be func(t *testing.T)"}
		}

		if first, dup := seen[childID]; dup {
			return nil, &domain.ParseError{
				Path:   append(path, childID),
				Line:   childLine,
				Reason: fmt.Sprintf("duplicate subtest, first declared on line %d", first),
			}
		}
		seen[childID] = childLine

		child, err := x.scope(childID, childLine, fn.Body, childParam, path)
		if err != nil {
			return nil, err
		}
		child.Start, child.End = x.offset(stmt.Pos()), x.offset(stmt.End())
		result.Children = append(result.Children, child)
		node.Children = append(node.Children, child.Node)
	}

	if len(node.Children) > 0 {
		node.Kind = domain.KindBranch
	}
	return result, nil
}

// description returns the comment opening a body, before its first statement
func (x *extraction) description(body *ast.BlockStmt) string {
	limit := body.Rbrace
	if len(body.List) > 0 {
		limit = body.List[0].Pos()
	}
	for _, group := range x.comments {
		if group.Pos() <= body.Lbrace {
			continue
		}
		if group.End() > limit {
			break
		}
		return strings.TrimSpace(group.Text())
	}
	return ""
}

// subtestCall matches a statement of the form <param>.Run(...)
func subtestCall(stmt ast.Stmt, param string) (*ast.CallExpr, bool) {
	expr, ok := stmt.(*ast.ExprStmt)
	if !ok {
		return nil, false
	}
	call, ok := expr.X.(*ast.CallExpr)
	if !ok {
		return nil, false
	}
	sel, ok := call.Fun.(*ast.SelectorExpr)
	if !ok || sel.Sel.Name != "Run" {
		return nil, false
	}
	recv, ok := sel.X.(*ast.Ident)
	if !ok || recv.Name != param {
		return nil, false
	}
	return call, true
}

// testingParam returns the parameter name of a func(t *testing.T) signature
func testingParam(fn *ast.FuncType) (string, bool) {
	if fn.Results != nil && len(fn.Results.List) > 0 {
		return "", false
	}
	if fn.Params == nil || len(fn.Params.List) != 1 {
		return "", false
	}
	field := fn.Params.List[0]
	if len(field.Names) != 1 || field.Names[0].Name == "_" {
		return "", false
	}
	star, ok := field.Type.(*ast.StarExpr)
	if !ok {
		return "", false
	}
	sel, ok := star.X.(*ast.SelectorExpr)
	if !ok || sel.Sel.Name != "T" {
		return "", false
	}
	pkg, ok := sel.X.(*ast.Ident)
	if !ok || pkg.Name != "testing" {
		return "", false
	}
	return field.Names[0].Name, true
}
