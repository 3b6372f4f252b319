package ast

type Module struct {
	Path    string
	Imports []ImportDecl
	Decls   []Decl
}

type ImportDecl struct {
	From  string
	Names []ImportName
	Span  Span
}

type ImportName struct {
	Name string
	Span Span
}

// Decl is the closed set of top-level declarations.
type Decl interface {
	declNode()
	DeclName() string
	Exported() bool
	GetSpan() Span
}

type PropertyDecl struct {
	Name string
	Type *TypeReference
	Span Span
}

type ComponentDecl struct {
	Name   string
	Export bool
	Props  []PropertyDecl
	Return Expr
	Span   Span
}

func (*ComponentDecl) declNode()          {}
func (d *ComponentDecl) DeclName() string { return d.Name }
func (d *ComponentDecl) Exported() bool   { return d.Export }
func (d *ComponentDecl) GetSpan() Span    { return d.Span }

type StructDecl struct {
	Name   string
	Export bool
	Props  []PropertyDecl
	Span   Span
}

func (*StructDecl) declNode()          {}
func (d *StructDecl) DeclName() string { return d.Name }
func (d *StructDecl) Exported() bool   { return d.Export }
func (d *StructDecl) GetSpan() Span    { return d.Span }

type InterfaceDecl struct {
	Name   string
	Export bool
	Props  []PropertyDecl
	Span   Span
}

func (*InterfaceDecl) declNode()          {}
func (d *InterfaceDecl) DeclName() string { return d.Name }
func (d *InterfaceDecl) Exported() bool   { return d.Export }
func (d *InterfaceDecl) GetSpan() Span    { return d.Span }

type EnumMember struct {
	Name  string
	Value Expr // optional literal, e.g. H1(1)
	Span  Span
}

type EnumDecl struct {
	Name    string
	Export  bool
	Members []EnumMember
	Span    Span
}

func (*EnumDecl) declNode()          {}
func (d *EnumDecl) DeclName() string { return d.Name }
func (d *EnumDecl) Exported() bool   { return d.Export }
func (d *EnumDecl) GetSpan() Span    { return d.Span }
