package formatter

import (
	"strings"

	"componentengine/internal/ast"
	"componentengine/internal/parser"
)

// Formatter prints modules and expressions in canonical layout
type Formatter struct {
	indent int
	buf    strings.Builder
}

// New creates a new Formatter
func New() *Formatter {
	return &Formatter{}
}

// Format parses a source file and returns the formatted code
func (f *Formatter) Format(path, src string) (string, error) {
	mod, err := parser.ParseModule(path, src)
	if err != nil {
		return "", err
	}
	return f.FormatModule(mod), nil
}

// FormatModule formats an AST module
func (f *Formatter) FormatModule(mod *ast.Module) string {
	f.buf.Reset()
	f.indent = 0

	for _, imp := range mod.Imports {
		f.formatImport(imp)
	}

	if len(mod.Imports) > 0 && len(mod.Decls) > 0 {
		f.buf.WriteString("\n")
	}

	for i, decl := range mod.Decls {
		f.formatDecl(decl)
		if i < len(mod.Decls)-1 {
			f.buf.WriteString("\n")
		}
	}

	return f.buf.String()
}

// FormatExpr formats a single expression
func (f *Formatter) FormatExpr(expr ast.Expr) string {
	f.buf.Reset()
	f.indent = 0
	f.formatExpr(expr)
	return f.buf.String()
}

func (f *Formatter) writeIndent() {
	for i := 0; i < f.indent; i++ {
		f.buf.WriteString("  ")
	}
}

func (f *Formatter) formatImport(imp ast.ImportDecl) {
	f.buf.WriteString("from \"")
	f.buf.WriteString(escapeString(imp.From))
	f.buf.WriteString("\" import { ")
	for i, name := range imp.Names {
		if i > 0 {
			f.buf.WriteString(", ")
		}
		f.buf.WriteString(name.Name)
	}
	f.buf.WriteString(" }\n")
}

func (f *Formatter) formatDecl(decl ast.Decl) {
	f.writeIndent()
	if decl.Exported() {
		f.buf.WriteString("export ")
	}
	switch d := decl.(type) {
	case *ast.ComponentDecl:
		f.formatComponentDecl(d)
	case *ast.StructDecl:
		f.buf.WriteString("struct ")
		f.buf.WriteString(d.Name)
		f.formatProps(d.Props)
		f.buf.WriteString("}\n")
	case *ast.InterfaceDecl:
		f.buf.WriteString("interface ")
		f.buf.WriteString(d.Name)
		f.formatProps(d.Props)
		f.buf.WriteString("}\n")
	case *ast.EnumDecl:
		f.formatEnumDecl(d)
	}
}

func (f *Formatter) formatComponentDecl(d *ast.ComponentDecl) {
	f.buf.WriteString("component ")
	f.buf.WriteString(d.Name)
	f.formatProps(d.Props)
	f.indent++
	if len(d.Props) > 0 {
		f.buf.WriteString("\n")
	}
	f.writeIndent()
	f.buf.WriteString("return ")
	f.formatExpr(d.Return)
	f.buf.WriteString("\n")
	f.indent--
	f.buf.WriteString("}\n")
}

// formatProps writes the opening brace and one property per line.
func (f *Formatter) formatProps(props []ast.PropertyDecl) {
	f.buf.WriteString(" {\n")
	f.indent++
	for _, p := range props {
		f.writeIndent()
		f.buf.WriteString(p.Name)
		f.buf.WriteString(": ")
		f.buf.WriteString(p.Type.String())
		f.buf.WriteString("\n")
	}
	f.indent--
}

func (f *Formatter) formatEnumDecl(d *ast.EnumDecl) {
	f.buf.WriteString("enum ")
	f.buf.WriteString(d.Name)
	f.buf.WriteString(" {\n")
	f.indent++
	for _, m := range d.Members {
		f.writeIndent()
		f.buf.WriteString(m.Name)
		if m.Value != nil {
			f.buf.WriteString("(")
			f.formatExpr(m.Value)
			f.buf.WriteString(")")
		}
		f.buf.WriteString("\n")
	}
	f.indent--
	f.buf.WriteString("}\n")
}

func (f *Formatter) formatExpr(expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.ValueReference:
		f.buf.WriteString(e.Name)
	case *ast.NumberLiteral:
		f.buf.WriteString(e.Text)
	case *ast.BooleanLiteral:
		if e.Value {
			f.buf.WriteString("true")
		} else {
			f.buf.WriteString("false")
		}
	case *ast.NullLiteral:
		f.buf.WriteString("null")
	case *ast.StringLiteral:
		f.buf.WriteString("\"")
		f.buf.WriteString(escapeString(e.Value))
		f.buf.WriteString("\"")
	case *ast.TemplateLiteral:
		f.formatTemplate(e)
	case *ast.AccessChain:
		f.formatOperand(e.Parent, parser.PrecedenceAccess)
		f.buf.WriteString(e.Access.String())
		f.buf.WriteString(e.Key)
	case *ast.IndexAccess:
		f.formatOperand(e.Parent, parser.PrecedenceAccess)
		f.buf.WriteString("[")
		f.formatExpr(e.Index)
		f.buf.WriteString("]")
	case *ast.FunctionCall:
		f.formatOperand(e.Callee, parser.PrecedenceAccess)
		f.buf.WriteString("(")
		for i, arg := range e.Args {
			if i > 0 {
				f.buf.WriteString(", ")
			}
			f.formatExpr(arg)
		}
		f.buf.WriteString(")")
	case *ast.UnaryOperation:
		f.buf.WriteString(e.Operator.String())
		f.formatOperand(e.Operand, parser.PrecedenceUnary)
	case *ast.BinaryOperation:
		f.formatBinary(e)
	case *ast.TernaryOperation:
		f.formatOperand(e.Condition, parser.PrecedenceTernary+1)
		f.buf.WriteString(" ? ")
		f.formatOperand(e.Then, parser.PrecedenceTernary)
		f.buf.WriteString(" : ")
		f.formatOperand(e.Else, parser.PrecedenceTernary)
	case *ast.MatchExpression:
		f.formatMatch(e)
	case *ast.ArrowFunction:
		f.formatArrow(e)
	case *ast.TagLiteral:
		f.formatTag(e)
	}
}

// formatOperand wraps expr in parentheses when it binds looser than min.
func (f *Formatter) formatOperand(expr ast.Expr, min parser.Precedence) {
	if precedence(expr) < min {
		f.buf.WriteString("(")
		f.formatExpr(expr)
		f.buf.WriteString(")")
		return
	}
	f.formatExpr(expr)
}

// formatBinary keeps the left-associative grouping: a right operand of the
// same precedence needs parentheses, a left one does not.
func (f *Formatter) formatBinary(e *ast.BinaryOperation) {
	prec := parser.PrecedenceOfOperator(e.Operator)
	f.formatOperand(e.Left, prec)
	f.buf.WriteString(" ")
	f.buf.WriteString(e.Operator.String())
	f.buf.WriteString(" ")
	f.formatOperand(e.Right, prec+1)
}

func precedence(expr ast.Expr) parser.Precedence {
	switch e := expr.(type) {
	case *ast.BinaryOperation:
		return parser.PrecedenceOfOperator(e.Operator)
	case *ast.TernaryOperation:
		return parser.PrecedenceTernary
	case *ast.ArrowFunction:
		return parser.PrecedenceSequence
	case *ast.UnaryOperation:
		return parser.PrecedenceUnary
	default:
		return parser.PrecedenceGroup
	}
}

func (f *Formatter) formatTemplate(e *ast.TemplateLiteral) {
	f.buf.WriteString("`")
	for _, seg := range e.Segments {
		if seg.Expr == nil {
			f.buf.WriteString(escapeTemplate(seg.Text))
			continue
		}
		f.buf.WriteString("${")
		f.formatExpr(seg.Expr)
		f.buf.WriteString("}")
	}
	f.buf.WriteString("`")
}

func (f *Formatter) formatMatch(e *ast.MatchExpression) {
	f.buf.WriteString("match (")
	f.formatExpr(e.Subject)
	f.buf.WriteString(") {\n")
	f.indent++
	for _, arm := range e.Arms {
		f.writeIndent()
		if arm.IsDefault() {
			f.buf.WriteString("default")
		}
		for i, cond := range arm.Conditions {
			if i > 0 {
				f.buf.WriteString(", ")
			}
			f.formatExpr(cond)
		}
		f.buf.WriteString(" -> ")
		f.formatExpr(arm.Result)
		f.buf.WriteString("\n")
	}
	f.indent--
	f.writeIndent()
	f.buf.WriteString("}")
}

func (f *Formatter) formatArrow(e *ast.ArrowFunction) {
	f.buf.WriteString("(")
	for i, param := range e.Params {
		if i > 0 {
			f.buf.WriteString(", ")
		}
		f.buf.WriteString(param.Name)
		if param.Type != nil {
			f.buf.WriteString(": ")
			f.buf.WriteString(param.Type.String())
		}
	}
	f.buf.WriteString(") => ")
	f.formatExpr(e.Body)
}

func (f *Formatter) formatTag(e *ast.TagLiteral) {
	f.buf.WriteString("<")
	f.buf.WriteString(e.Name)
	for _, attr := range e.Attributes {
		f.buf.WriteString(" ")
		f.buf.WriteString(attr.Name)
		if attr.Value != nil {
			f.buf.WriteString("=")
			if strLit, ok := attr.Value.(*ast.StringLiteral); ok {
				f.buf.WriteString("\"")
				f.buf.WriteString(escapeString(strLit.Value))
				f.buf.WriteString("\"")
			} else {
				f.buf.WriteString("{")
				f.formatExpr(attr.Value)
				f.buf.WriteString("}")
			}
		}
	}
	if e.SelfClosing {
		f.buf.WriteString(" />")
		return
	}
	f.buf.WriteString(">")

	// element children go on their own lines, text and values stay inline
	hasElementChildren := false
	for _, child := range e.Children {
		if child.Kind == ast.TagChildTag {
			hasElementChildren = true
			break
		}
	}

	if hasElementChildren {
		f.indent++
		for _, child := range e.Children {
			f.buf.WriteString("\n")
			f.writeIndent()
			f.formatTagChild(child, true)
		}
		f.indent--
		f.buf.WriteString("\n")
		f.writeIndent()
	} else {
		for _, child := range e.Children {
			f.formatTagChild(child, false)
		}
	}

	f.buf.WriteString("</")
	f.buf.WriteString(e.Name)
	f.buf.WriteString(">")
}

func (f *Formatter) formatTagChild(child ast.TagChild, ownLine bool) {
	switch child.Kind {
	case ast.TagChildText:
		if ownLine {
			f.buf.WriteString(strings.TrimSpace(child.Text))
		} else {
			f.buf.WriteString(child.Text)
		}
	case ast.TagChildExpr:
		f.buf.WriteString("{")
		f.formatExpr(child.Expr)
		f.buf.WriteString("}")
	case ast.TagChildTag:
		f.formatTag(child.Tag)
	}
}

func escapeString(s string) string {
	var result strings.Builder
	for _, r := range s {
		switch r {
		case '\n':
			result.WriteString("\\n")
		case '\t':
			result.WriteString("\\t")
		case '\r':
			result.WriteString("\\r")
		case '\\':
			result.WriteString("\\\\")
		case '"':
			result.WriteString("\\\"")
		default:
			result.WriteRune(r)
		}
	}
	return result.String()
}

func escapeTemplate(s string) string {
	var result strings.Builder
	for i, r := range s {
		switch {
		case r == '`' || r == '\\':
			result.WriteRune('\\')
			result.WriteRune(r)
		case r == '$' && strings.HasPrefix(s[i:], "${"):
			result.WriteString("\\$")
		default:
			result.WriteRune(r)
		}
	}
	return result.String()
}
