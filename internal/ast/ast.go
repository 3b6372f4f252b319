package ast

type Span struct {
	Start Position
	End   Position
}

type Position struct {
	Line int
	Col  int
}

// Expr is the closed set of expression nodes. Every implementation lives
// in this file.
type Expr interface {
	exprNode()
	GetSpan() Span
}

type ValueReference struct {
	Name string
	Span Span
}

func (*ValueReference) exprNode()       {}
func (e *ValueReference) GetSpan() Span { return e.Span }

type NumberFormat int

const (
	NumberDecimal NumberFormat = iota
	NumberBinary
	NumberOctal
	NumberHexadecimal
)

type NumberLiteral struct {
	Value  float64
	Text   string
	Format NumberFormat
	Span   Span
}

func (*NumberLiteral) exprNode()       {}
func (e *NumberLiteral) GetSpan() Span { return e.Span }

type StringLiteral struct {
	Value string
	Span  Span
}

func (*StringLiteral) exprNode()       {}
func (e *StringLiteral) GetSpan() Span { return e.Span }

type BooleanLiteral struct {
	Value bool
	Span  Span
}

func (*BooleanLiteral) exprNode()       {}
func (e *BooleanLiteral) GetSpan() Span { return e.Span }

type NullLiteral struct {
	Span Span
}

func (*NullLiteral) exprNode()       {}
func (e *NullLiteral) GetSpan() Span { return e.Span }

// TemplateSegment is either a literal fragment (Expr == nil) or an
// embedded expression.
type TemplateSegment struct {
	Text string
	Expr Expr
}

// TemplateLiteral represents `hello ${name}`. Empty fragments are never
// stored.
type TemplateLiteral struct {
	Segments []TemplateSegment
	Span     Span
}

func (*TemplateLiteral) exprNode()       {}
func (e *TemplateLiteral) GetSpan() Span { return e.Span }

type AccessType int

const (
	AccessMandatory AccessType = iota // "."
	AccessOptional                    // "?."
)

func (a AccessType) String() string {
	if a == AccessOptional {
		return "?."
	}
	return "."
}

// AccessChain is one segment of a.b?.c; Parent points inward, so the
// outermost segment is the root of the chain.
type AccessChain struct {
	Parent Expr
	Access AccessType
	Key    string
	Span   Span
}

func (*AccessChain) exprNode()       {}
func (e *AccessChain) GetSpan() Span { return e.Span }

type IndexAccess struct {
	Parent Expr
	Index  Expr
	Span   Span
}

func (*IndexAccess) exprNode()       {}
func (e *IndexAccess) GetSpan() Span { return e.Span }

type FunctionCall struct {
	Callee Expr
	Args   []Expr
	Span   Span
}

func (*FunctionCall) exprNode()       {}
func (e *FunctionCall) GetSpan() Span { return e.Span }

type BinaryOperator int

const (
	OpAdd BinaryOperator = iota
	OpSubtract
	OpMultiply
	OpDivide
	OpModulo
	OpEqual
	OpNotEqual
	OpLess
	OpLessEqual
	OpGreater
	OpGreaterEqual
	OpAnd
	OpOr
)

func (op BinaryOperator) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSubtract:
		return "-"
	case OpMultiply:
		return "*"
	case OpDivide:
		return "/"
	case OpModulo:
		return "%"
	case OpEqual:
		return "==="
	case OpNotEqual:
		return "!=="
	case OpLess:
		return "<"
	case OpLessEqual:
		return "<="
	case OpGreater:
		return ">"
	case OpGreaterEqual:
		return ">="
	case OpAnd:
		return "&&"
	case OpOr:
		return "||"
	default:
		return "?"
	}
}

// Arithmetic reports whether op takes numeric operands.
func (op BinaryOperator) Arithmetic() bool {
	return op <= OpModulo
}

// Relational reports whether op is one of < <= > >=.
func (op BinaryOperator) Relational() bool {
	return op >= OpLess && op <= OpGreaterEqual
}

// Equality reports whether op is === or !==.
func (op BinaryOperator) Equality() bool {
	return op == OpEqual || op == OpNotEqual
}

// Logical reports whether op is && or ||.
func (op BinaryOperator) Logical() bool {
	return op == OpAnd || op == OpOr
}

type BinaryOperation struct {
	Left     Expr
	Operator BinaryOperator
	Right    Expr
	Span     Span
}

func (*BinaryOperation) exprNode()       {}
func (e *BinaryOperation) GetSpan() Span { return e.Span }

type UnaryOperator int

const (
	OpNot UnaryOperator = iota
)

func (op UnaryOperator) String() string {
	return "!"
}

type UnaryOperation struct {
	Operator UnaryOperator
	Operand  Expr
	Span     Span
}

func (*UnaryOperation) exprNode()       {}
func (e *UnaryOperation) GetSpan() Span { return e.Span }

type TernaryOperation struct {
	Condition Expr
	Then      Expr
	Else      Expr
	Span      Span
}

func (*TernaryOperation) exprNode()       {}
func (e *TernaryOperation) GetSpan() Span { return e.Span }

// MatchArm pairs conditions with a result. Conditions is nil for the
// default arm.
type MatchArm struct {
	Conditions []Expr
	Result     Expr
	Span       Span
}

func (a MatchArm) IsDefault() bool {
	return a.Conditions == nil
}

// MatchExpression keeps its arms in source order; at most one arm is the
// default and it is always last.
type MatchExpression struct {
	Subject Expr
	Arms    []MatchArm
	Span    Span
}

func (*MatchExpression) exprNode()       {}
func (e *MatchExpression) GetSpan() Span { return e.Span }

type Param struct {
	Name string
	Type *TypeReference // nil when the type comes from the call site
	Span Span
}

type ArrowFunction struct {
	Params []Param
	Body   Expr
	Span   Span
}

func (*ArrowFunction) exprNode()       {}
func (e *ArrowFunction) GetSpan() Span { return e.Span }

// TagLiteral represents <div class="x">children</div>. An empty Name is a
// fragment.
type TagLiteral struct {
	Name        string
	Attributes  []TagAttribute
	Children    []TagChild
	SelfClosing bool
	Span        Span
}

func (*TagLiteral) exprNode()       {}
func (e *TagLiteral) GetSpan() Span { return e.Span }

// TagAttribute has a nil Value for bare boolean attributes.
type TagAttribute struct {
	Name  string
	Value Expr
	Span  Span
}

type TagChildKind int

const (
	TagChildText TagChildKind = iota
	TagChildTag
	TagChildExpr
)

type TagChild struct {
	Kind TagChildKind
	Text string
	Tag  *TagLiteral
	Expr Expr
	Span Span
}

// TypeReference is a textual type such as string, Item[] or ?Item.
type TypeReference struct {
	Name       string
	IsArray    bool
	IsOptional bool
	Span       Span
}

func (t *TypeReference) String() string {
	s := t.Name
	if t.IsArray {
		s += "[]"
	}
	if t.IsOptional {
		s = "?" + s
	}
	return s
}
