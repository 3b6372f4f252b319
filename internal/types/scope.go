package types

import "fmt"

// Scope maps names to types. A scope is never modified after it is built;
// Push returns a child and leaves the receiver as it was, so one scope can
// seed any number of sibling resolutions.
type Scope struct {
	parent *Scope
	vars   map[string]Type
}

func NewScope(bindings map[string]Type) *Scope {
	return &Scope{vars: copyBindings(bindings)}
}

func (s *Scope) Push(bindings map[string]Type) *Scope {
	return &Scope{parent: s, vars: copyBindings(bindings)}
}

// Lookup searches the scope and then its ancestors.
func (s *Scope) Lookup(name string) (Type, error) {
	for cur := s; cur != nil; cur = cur.parent {
		if t, ok := cur.vars[name]; ok {
			return t, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUndefinedVariable, name)
}

func (s *Scope) Parent() *Scope {
	return s.parent
}

func copyBindings(bindings map[string]Type) map[string]Type {
	vars := make(map[string]Type, len(bindings))
	for name, t := range bindings {
		vars[name] = t
	}
	return vars
}
