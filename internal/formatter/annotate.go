package formatter

import (
	"fmt"
	"strconv"

	"componentengine/internal/ast"
	"componentengine/internal/typed"
)

// AnnotateModuleTypes prints every component of a resolved module as a
// tree with the resolved type of each node.
func (f *Formatter) AnnotateModuleTypes(mod *typed.Module) string {
	f.buf.Reset()
	f.indent = 0

	for i, c := range mod.Components {
		if i > 0 {
			f.buf.WriteString("\n")
		}
		if c.Export {
			f.buf.WriteString("export ")
		}
		fmt.Fprintf(&f.buf, "component %s: %s\n", c.Name, c.Type)
		f.indent++
		for _, field := range c.Props.Fields {
			f.writeIndent()
			fmt.Fprintf(&f.buf, "%s: %s\n", field.Name, field.Type)
		}
		if c.Return != nil {
			f.writeIndent()
			f.buf.WriteString("return\n")
			f.indent++
			f.annotateExpr(c.Return)
			f.indent--
		}
		f.indent--
	}
	return f.buf.String()
}

// AnnotateExpr prints one typed expression tree.
func (f *Formatter) AnnotateExpr(expr typed.Expr) string {
	f.buf.Reset()
	f.indent = 0
	f.annotateExpr(expr)
	return f.buf.String()
}

func (f *Formatter) annotateExpr(expr typed.Expr) {
	f.writeIndent()
	fmt.Fprintf(&f.buf, "%s: %s\n", label(expr), expr.Type())
	f.indent++
	for _, child := range typed.Children(expr) {
		f.annotateExpr(child)
	}
	f.indent--
}

func label(expr typed.Expr) string {
	switch e := expr.(type) {
	case *typed.Reference:
		return e.Name
	case *typed.Literal:
		return New().FormatExpr(e.Source())
	case *typed.Text:
		return strconv.Quote(e.Value)
	case *typed.Template:
		return "template"
	case *typed.Access:
		if chain, ok := e.Source().(*ast.AccessChain); ok {
			return chain.Access.String() + e.Key
		}
		return "." + e.Key
	case *typed.Index:
		return "[]"
	case *typed.Call:
		return "call"
	case *typed.Binary:
		return e.Operator.String()
	case *typed.Unary:
		return e.Operator.String()
	case *typed.Ternary:
		return "?:"
	case *typed.Match:
		return "match"
	case *typed.Arrow:
		return "=>"
	case *typed.Tag:
		return "<" + e.Name + ">"
	default:
		return fmt.Sprintf("%T", expr)
	}
}
