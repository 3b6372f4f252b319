// Package resolver assigns a type to every expression of a parsed module.
// Resolution is fail-fast: the first error aborts the whole call and no
// partial tree is returned.
package resolver

import (
	"errors"
	"fmt"
	"strings"

	"componentengine/internal/ast"
	"componentengine/internal/typed"
	"componentengine/internal/types"
)

// Error is a resolution failure at a source position. Err wraps one of the
// sentinels in package types.
type Error struct {
	Path string
	Span ast.Span
	Err  error
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Path != "" {
		b.WriteString(e.Path)
		b.WriteByte(':')
	}
	fmt.Fprintf(&b, "%d:%d: %v", e.Span.Start.Line, e.Span.Start.Col, e.Err)
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// errorAt attaches span to err unless err already carries a position.
func errorAt(span ast.Span, err error) error {
	var resolveErr *Error
	if errors.As(err, &resolveErr) {
		return err
	}
	return &Error{Span: span, Err: err}
}

func errorf(span ast.Span, sentinel error, format string, args ...interface{}) error {
	return &Error{Span: span, Err: fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...))}
}

// Resolver resolves expressions. Types resolves the annotations written on
// arrow function parameters.
type Resolver struct {
	Types TypeResolver
}

func New(typeResolver TypeResolver) *Resolver {
	if typeResolver == nil {
		typeResolver = DeclaredTypes(nil)
	}
	return &Resolver{Types: typeResolver}
}

// Resolve types expr under scope. Only the built-in type names are
// available to parameter annotations.
func Resolve(expr ast.Expr, scope *types.Scope) (typed.Expr, error) {
	return New(nil).Resolve(expr, scope)
}

func (r *Resolver) Resolve(expr ast.Expr, scope *types.Scope) (typed.Expr, error) {
	switch e := expr.(type) {
	case *ast.ValueReference:
		return r.resolveReference(e, scope)
	case *ast.NumberLiteral:
		return &typed.Literal{Info: typed.Info{Node: e, T: types.Number()}}, nil
	case *ast.StringLiteral:
		return &typed.Literal{Info: typed.Info{Node: e, T: types.String()}}, nil
	case *ast.BooleanLiteral:
		return &typed.Literal{Info: typed.Info{Node: e, T: types.Boolean()}}, nil
	case *ast.NullLiteral:
		return &typed.Literal{Info: typed.Info{Node: e, T: types.Null()}}, nil
	case *ast.TemplateLiteral:
		return r.resolveTemplate(e, scope)
	case *ast.AccessChain:
		return r.resolveAccess(e, scope)
	case *ast.IndexAccess:
		return r.resolveIndex(e, scope)
	case *ast.FunctionCall:
		return r.resolveCall(e, scope)
	case *ast.BinaryOperation:
		return r.resolveBinary(e, scope)
	case *ast.UnaryOperation:
		return r.resolveUnary(e, scope)
	case *ast.TernaryOperation:
		return r.resolveTernary(e, scope)
	case *ast.MatchExpression:
		return r.resolveMatch(e, scope)
	case *ast.ArrowFunction:
		return r.resolveArrow(e, scope, nil)
	case *ast.TagLiteral:
		return r.resolveTag(e, scope)
	default:
		return nil, fmt.Errorf("resolve: unsupported expression %T", expr)
	}
}
