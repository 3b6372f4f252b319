package resolver

import (
	"componentengine/internal/ast"
	"componentengine/internal/types"
)

// TypeResolver materialises a written type reference.
type TypeResolver interface {
	ResolveType(ref *ast.TypeReference) (types.Type, error)
}

// DeclaredTypes resolves the built-in type names and, after them, the
// names in the map.
type DeclaredTypes map[string]types.Type

func (d DeclaredTypes) ResolveType(ref *ast.TypeReference) (types.Type, error) {
	t, ok := builtinType(ref.Name)
	if !ok {
		t, ok = d[ref.Name]
	}
	if !ok {
		return nil, errorf(ref.Span, types.ErrUnknownType, "%s", ref.Name)
	}
	if ref.IsArray {
		t = types.NewArray(t)
	}
	if ref.IsOptional {
		t = types.Optional(t)
	}
	return t, nil
}

func builtinType(name string) (types.Type, bool) {
	switch name {
	case "number":
		return types.Number(), true
	case "string":
		return types.String(), true
	case "boolean":
		return types.Boolean(), true
	case "null":
		return types.Null(), true
	case "element":
		return types.Element(), true
	default:
		return nil, false
	}
}
