package resolver

import (
	"errors"
	"fmt"

	"componentengine/internal/ast"
	"componentengine/internal/typed"
	"componentengine/internal/types"
)

// ImportLookup hands out the resolved module behind an import path.
type ImportLookup interface {
	Lookup(from string) (*typed.Module, error)
}

// ImportFunc adapts a function to ImportLookup.
type ImportFunc func(from string) (*typed.Module, error)

func (f ImportFunc) Lookup(from string) (*typed.Module, error) {
	return f(from)
}

// ResolveModule resolves every declaration of mod. Name clashes are
// reported before any expression is looked at. globals may be nil.
func ResolveModule(mod *ast.Module, imports ImportLookup, globals *types.Scope) (*typed.Module, error) {
	out, err := resolveModule(mod, imports, globals)
	if err != nil {
		var resolveErr *Error
		if errors.As(err, &resolveErr) && resolveErr.Path == "" {
			resolveErr.Path = mod.Path
		}
		return nil, err
	}
	return out, nil
}

func resolveModule(mod *ast.Module, imports ImportLookup, globals *types.Scope) (*typed.Module, error) {
	if err := checkDuplicates(mod); err != nil {
		return nil, err
	}
	out := &typed.Module{
		Path:    mod.Path,
		Source:  mod,
		Types:   map[string]types.Type{},
		Values:  map[string]types.Type{},
		Exports: map[string]typed.Export{},
	}
	if err := bindImports(out, mod.Imports, imports); err != nil {
		return nil, err
	}

	// Declare every named type before filling any record so that fields
	// may refer to types declared later in the file.
	records := map[string]*types.Record{}
	for _, decl := range mod.Decls {
		switch d := decl.(type) {
		case *ast.StructDecl:
			records[d.Name] = types.NewRecord(d.Name, nil)
			out.Types[d.Name] = records[d.Name]
		case *ast.InterfaceDecl:
			records[d.Name] = types.NewRecord(d.Name, nil)
			out.Types[d.Name] = records[d.Name]
		case *ast.EnumDecl:
			enum, err := declareEnum(d)
			if err != nil {
				return nil, err
			}
			out.Types[d.Name] = enum
			out.Values[d.Name] = &types.EnumStatic{Enum: enum}
		}
	}

	typeResolver := DeclaredTypes(out.Types)
	var components []*ast.ComponentDecl
	for _, decl := range mod.Decls {
		switch d := decl.(type) {
		case *ast.StructDecl:
			if err := fillRecord(records[d.Name], d.Props, typeResolver); err != nil {
				return nil, err
			}
		case *ast.InterfaceDecl:
			if err := fillRecord(records[d.Name], d.Props, typeResolver); err != nil {
				return nil, err
			}
		case *ast.ComponentDecl:
			props := types.NewRecord(d.Name+"Props", nil)
			if err := fillRecord(props, d.Props, typeResolver); err != nil {
				return nil, err
			}
			fn := types.NewFunction([]types.Type{props}, types.Element())
			out.Values[d.Name] = fn
			out.Components = append(out.Components, &typed.Component{Name: d.Name, Export: d.Export, Props: props, Type: fn})
			components = append(components, d)
		}
	}

	if globals == nil {
		globals = types.NewScope(nil)
	}
	root := globals.Push(out.Values)
	r := New(typeResolver)
	for i, d := range components {
		c := out.Components[i]
		bindings := make(map[string]types.Type, len(c.Props.Fields))
		for _, f := range c.Props.Fields {
			bindings[f.Name] = f.Type
		}
		ret, err := r.Resolve(d.Return, root.Push(bindings))
		if err != nil {
			return nil, err
		}
		if !types.AssignableTo(ret.Type(), types.Element()) {
			return nil, errorf(d.Return.GetSpan(), types.ErrTypeMismatch, "component %s must return element, got %s", d.Name, ret.Type())
		}
		c.Return = ret
	}

	for _, decl := range mod.Decls {
		if !decl.Exported() {
			continue
		}
		name := decl.DeclName()
		out.Exports[name] = typed.Export{Type: out.Types[name], Value: out.Values[name]}
	}
	return out, nil
}

// checkDuplicates rejects repeated import, declaration, property and enum
// member names.
func checkDuplicates(mod *ast.Module) error {
	top := map[string]bool{}
	for _, imp := range mod.Imports {
		for _, name := range imp.Names {
			if top[name.Name] {
				return errorf(name.Span, types.ErrDuplicateDeclaration, "import %s", name.Name)
			}
			top[name.Name] = true
		}
	}
	for _, decl := range mod.Decls {
		name := decl.DeclName()
		if top[name] {
			return errorf(decl.GetSpan(), types.ErrDuplicateDeclaration, "%s is already declared", name)
		}
		top[name] = true

		var props []ast.PropertyDecl
		switch d := decl.(type) {
		case *ast.ComponentDecl:
			props = d.Props
		case *ast.StructDecl:
			props = d.Props
		case *ast.InterfaceDecl:
			props = d.Props
		case *ast.EnumDecl:
			members := map[string]bool{}
			for _, m := range d.Members {
				if members[m.Name] {
					return errorf(m.Span, types.ErrDuplicateDeclaration, "%s.%s", d.Name, m.Name)
				}
				members[m.Name] = true
			}
		}
		seen := map[string]bool{}
		for _, p := range props {
			if seen[p.Name] {
				return errorf(p.Span, types.ErrDuplicateDeclaration, "property %s of %s", p.Name, name)
			}
			seen[p.Name] = true
		}
	}
	return nil
}

func bindImports(out *typed.Module, decls []ast.ImportDecl, imports ImportLookup) error {
	for _, imp := range decls {
		if imports == nil {
			return errorf(imp.Span, types.ErrUndefinedVariable, "cannot import from %q", imp.From)
		}
		dep, err := imports.Lookup(imp.From)
		if err != nil {
			return errorAt(imp.Span, fmt.Errorf("import %q: %w", imp.From, err))
		}
		for _, name := range imp.Names {
			exp, ok := dep.Exports[name.Name]
			if !ok {
				return errorf(name.Span, types.ErrUndefinedVariable, "%q does not export %s", imp.From, name.Name)
			}
			if exp.Type != nil {
				out.Types[name.Name] = exp.Type
			}
			if exp.Value != nil {
				out.Values[name.Name] = exp.Value
			}
		}
	}
	return nil
}

func fillRecord(rec *types.Record, props []ast.PropertyDecl, typeResolver TypeResolver) error {
	fields := make([]types.Field, len(props))
	for i, p := range props {
		t, err := typeResolver.ResolveType(p.Type)
		if err != nil {
			return err
		}
		fields[i] = types.Field{Name: p.Name, Type: t}
	}
	rec.SetFields(fields)
	return nil
}

// declareEnum builds the enum type. Members with values must all use the
// same literal kind.
func declareEnum(d *ast.EnumDecl) (*types.Enum, error) {
	names := make([]string, len(d.Members))
	var valueKind types.Kind
	for i, m := range d.Members {
		names[i] = m.Name
		if m.Value == nil {
			continue
		}
		kind := types.KindNumber
		if _, ok := m.Value.(*ast.StringLiteral); ok {
			kind = types.KindString
		}
		if valueKind != types.KindInvalid && kind != valueKind {
			return nil, errorf(m.Span, types.ErrTypeMismatch, "%s.%s is %s, other members are %s", d.Name, m.Name, kind, valueKind)
		}
		valueKind = kind
	}
	return types.NewEnum(d.Name, names), nil
}
