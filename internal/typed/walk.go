package typed

// Children returns the direct sub-expressions of e in source order.
func Children(e Expr) []Expr {
	switch e := e.(type) {
	case *Template:
		return e.Values
	case *Access:
		return []Expr{e.Parent}
	case *Index:
		return []Expr{e.Parent, e.Index}
	case *Call:
		return append([]Expr{e.Callee}, e.Args...)
	case *Binary:
		return []Expr{e.Left, e.Right}
	case *Unary:
		return []Expr{e.Operand}
	case *Ternary:
		return []Expr{e.Condition, e.Then, e.Else}
	case *Match:
		out := []Expr{e.Subject}
		for _, arm := range e.Arms {
			out = append(out, arm.Conditions...)
			out = append(out, arm.Result)
		}
		return out
	case *Arrow:
		return []Expr{e.Body}
	case *Tag:
		var out []Expr
		for _, attr := range e.Attributes {
			if attr.Value != nil {
				out = append(out, attr.Value)
			}
		}
		return append(out, e.Children...)
	default:
		return nil
	}
}

// Walk visits e and its descendants depth first. Returning false from fn
// skips the children of that node.
func Walk(e Expr, fn func(Expr) bool) {
	if e == nil || !fn(e) {
		return
	}
	for _, child := range Children(e) {
		Walk(child, fn)
	}
}
