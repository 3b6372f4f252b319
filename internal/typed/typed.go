// Package typed holds the resolver's output: a tree mirroring the AST in
// which every expression carries its resolved type.
package typed

import (
	"componentengine/internal/ast"
	"componentengine/internal/types"
)

// Expr is the closed set of typed expression nodes.
type Expr interface {
	Type() types.Type
	Source() ast.Expr
	typedNode()
}

// Info is embedded in every node: the source expression and its type.
type Info struct {
	Node ast.Expr
	T    types.Type
}

func (i Info) Type() types.Type { return i.T }
func (i Info) Source() ast.Expr { return i.Node }
func (i Info) Span() ast.Span   { return i.Node.GetSpan() }

type Reference struct {
	Info
	Name string
}

// Literal is a number, string, boolean or null literal.
type Literal struct {
	Info
}

// Template lists the embedded values of a template literal in source
// order.
type Template struct {
	Info
	Values []Expr
}

type Access struct {
	Info
	Parent Expr
	Key    string
	// Field is the type of Key itself, without the null that a
	// short-circuited chain adds.
	Field types.Type
	// ShortCircuits is set when this segment or an earlier one was written
	// ?. on a nullable parent.
	ShortCircuits bool
}

type Index struct {
	Info
	Parent Expr
	Index  Expr
}

type Call struct {
	Info
	Callee Expr
	Args   []Expr
}

type Binary struct {
	Info
	Operator ast.BinaryOperator
	Left     Expr
	Right    Expr
}

type Unary struct {
	Info
	Operator ast.UnaryOperator
	Operand  Expr
}

type Ternary struct {
	Info
	Condition Expr
	Then      Expr
	Else      Expr
}

type MatchArm struct {
	Conditions []Expr // nil for the default arm
	Result     Expr
}

type Match struct {
	Info
	Subject Expr
	Arms    []MatchArm
}

type Param struct {
	Name string
	Type types.Type
}

type Arrow struct {
	Info
	Params []Param
	Body   Expr
}

type Attribute struct {
	Name  string
	Value Expr // nil for a bare attribute
}

// Tag is a resolved tag literal. Component is set when the tag names a
// component rather than an intrinsic element.
type Tag struct {
	Info
	Name       string
	Component  *types.Function
	Attributes []Attribute
	Children   []Expr
}

// Text is literal text between tags. It is typed string.
type Text struct {
	Info
	Value string
}

func (*Reference) typedNode() {}
func (*Literal) typedNode()   {}
func (*Template) typedNode()  {}
func (*Access) typedNode()    {}
func (*Index) typedNode()     {}
func (*Call) typedNode()      {}
func (*Binary) typedNode()    {}
func (*Unary) typedNode()     {}
func (*Ternary) typedNode()   {}
func (*Match) typedNode()     {}
func (*Arrow) typedNode()     {}
func (*Tag) typedNode()       {}
func (*Text) typedNode()      {}
