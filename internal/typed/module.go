package typed

import (
	"componentengine/internal/ast"
	"componentengine/internal/types"
)

// Module is a resolved source file.
type Module struct {
	Path       string
	Source     *ast.Module
	Components []*Component
	// Types is the type namespace: declared and imported structs,
	// interfaces and enums.
	Types map[string]types.Type
	// Values is the value namespace: components and enum names.
	Values  map[string]types.Type
	Exports map[string]Export
}

// Export is what an importing module sees under one name. Either side may
// be nil: a struct has no value, a component has no type.
type Export struct {
	Type  types.Type
	Value types.Type
}

type Component struct {
	Name   string
	Export bool
	Props  *types.Record
	Type   *types.Function
	Return Expr
}

// Component returns the component declared under name, or nil.
func (m *Module) Component(name string) *Component {
	for _, c := range m.Components {
		if c.Name == name {
			return c
		}
	}
	return nil
}
