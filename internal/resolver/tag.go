package resolver

import (
	"unicode"
	"unicode/utf8"

	"componentengine/internal/ast"
	"componentengine/internal/typed"
	"componentengine/internal/types"
)

// resolveTag types a tag literal as element. A capitalised name refers to
// a component in scope whose props record must accept the attributes.
func (r *Resolver) resolveTag(e *ast.TagLiteral, scope *types.Scope) (typed.Expr, error) {
	tag := &typed.Tag{Info: typed.Info{Node: e, T: types.Element()}, Name: e.Name}

	var props *types.Record
	if isComponentName(e.Name) {
		t, err := scope.Lookup(e.Name)
		if err != nil {
			return nil, errorAt(e.Span, err)
		}
		fn, rec, ok := componentSignature(t)
		if !ok {
			return nil, errorf(e.Span, types.ErrNotCallable, "%s is %s, not a component", e.Name, t)
		}
		tag.Component = fn
		props = rec
	}

	seen := make(map[string]bool, len(e.Attributes))
	for _, attr := range e.Attributes {
		if seen[attr.Name] {
			return nil, errorf(attr.Span, types.ErrDuplicateDeclaration, "attribute %s", attr.Name)
		}
		seen[attr.Name] = true

		var value typed.Expr
		valueType := types.Boolean()
		if attr.Value != nil {
			v, err := r.Resolve(attr.Value, scope)
			if err != nil {
				return nil, err
			}
			value = v
			valueType = v.Type()
		}
		if props != nil {
			want, ok := props.Field(attr.Name)
			if !ok {
				return nil, errorf(attr.Span, types.ErrInvalidPropertyAccess, "%s has no property %q", e.Name, attr.Name)
			}
			if !types.AssignableTo(valueType, want) {
				return nil, errorf(attr.Span, types.ErrTypeMismatch, "property %s is %s, got %s", attr.Name, want, valueType)
			}
		}
		tag.Attributes = append(tag.Attributes, typed.Attribute{Name: attr.Name, Value: value})
	}
	if props != nil {
		for _, f := range props.Fields {
			if !seen[f.Name] && !types.IsNullable(f.Type) {
				return nil, errorf(e.Span, types.ErrTypeMismatch, "%s requires property %s", e.Name, f.Name)
			}
		}
	}

	for _, child := range e.Children {
		switch child.Kind {
		case ast.TagChildText:
			tag.Children = append(tag.Children, &typed.Text{Info: typed.Info{Node: &ast.StringLiteral{Value: child.Text, Span: child.Span}, T: types.String()}, Value: child.Text})
		case ast.TagChildTag:
			nested, err := r.resolveTag(child.Tag, scope)
			if err != nil {
				return nil, err
			}
			tag.Children = append(tag.Children, nested)
		case ast.TagChildExpr:
			value, err := r.Resolve(child.Expr, scope)
			if err != nil {
				return nil, err
			}
			if !renderable(value.Type()) {
				return nil, errorf(child.Span, types.ErrTypeMismatch, "cannot render %s as a child", value.Type())
			}
			tag.Children = append(tag.Children, value)
		}
	}
	return tag, nil
}

func isComponentName(name string) bool {
	first, _ := utf8.DecodeRuneInString(name)
	return unicode.IsUpper(first)
}

// componentSignature matches the shape every component has: one props
// record in, one element out.
func componentSignature(t types.Type) (*types.Function, *types.Record, bool) {
	fn, ok := t.(*types.Function)
	if !ok || len(fn.Params) != 1 || fn.Return.Kind() != types.KindElement {
		return nil, nil, false
	}
	rec, ok := fn.Params[0].(*types.Record)
	if !ok {
		return nil, nil, false
	}
	return fn, rec, true
}

// renderable reports whether t may appear between tags: elements, text
// values and arrays or unions of those.
func renderable(t types.Type) bool {
	switch t := t.(type) {
	case *types.Array:
		return renderable(t.Elem)
	case *types.Union:
		for _, m := range t.Members {
			if !renderable(m) {
				return false
			}
		}
		return true
	default:
		return t.Kind() == types.KindElement || types.IsPrimitive(t)
	}
}
