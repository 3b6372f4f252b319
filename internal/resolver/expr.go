package resolver

import (
	"componentengine/internal/ast"
	"componentengine/internal/typed"
	"componentengine/internal/types"
)

func (r *Resolver) resolveReference(e *ast.ValueReference, scope *types.Scope) (typed.Expr, error) {
	t, err := scope.Lookup(e.Name)
	if err != nil {
		return nil, errorAt(e.Span, err)
	}
	return &typed.Reference{Info: typed.Info{Node: e, T: t}, Name: e.Name}, nil
}

func (r *Resolver) resolveTemplate(e *ast.TemplateLiteral, scope *types.Scope) (typed.Expr, error) {
	var values []typed.Expr
	for _, seg := range e.Segments {
		if seg.Expr == nil {
			continue
		}
		value, err := r.Resolve(seg.Expr, scope)
		if err != nil {
			return nil, err
		}
		if !embeddable(value.Type()) {
			return nil, errorf(seg.Expr.GetSpan(), types.ErrTypeMismatch, "cannot embed %s in a template literal", value.Type())
		}
		values = append(values, value)
	}
	return &typed.Template{Info: typed.Info{Node: e, T: types.String()}, Values: values}, nil
}

// resolveAccess types one segment of an access chain. A ?. segment on a
// nullable parent short-circuits: null is stripped before the lookup and
// the rest of the chain is nullable. Later segments look up the field type
// without that null, so a null declared on a field still needs its own ?.
func (r *Resolver) resolveAccess(e *ast.AccessChain, scope *types.Scope) (typed.Expr, error) {
	parent, err := r.Resolve(e.Parent, scope)
	if err != nil {
		return nil, err
	}
	base := parent.Type()
	shortCircuits := false
	if prev, ok := parent.(*typed.Access); ok && prev.ShortCircuits {
		base = prev.Field
		shortCircuits = true
	}
	if e.Access == ast.AccessOptional && types.IsNullable(base) {
		base = types.StripNull(base)
		shortCircuits = true
	}
	field, err := types.Access(base, e.Key)
	if err != nil {
		return nil, errorAt(e.Span, err)
	}
	t := field
	if shortCircuits {
		t = types.Optional(field)
	}
	return &typed.Access{Info: typed.Info{Node: e, T: t}, Parent: parent, Key: e.Key, Field: field, ShortCircuits: shortCircuits}, nil
}

func (r *Resolver) resolveIndex(e *ast.IndexAccess, scope *types.Scope) (typed.Expr, error) {
	parent, err := r.Resolve(e.Parent, scope)
	if err != nil {
		return nil, err
	}
	arr, ok := parent.Type().(*types.Array)
	if !ok {
		return nil, errorf(e.Span, types.ErrInvalidPropertyAccess, "cannot index %s", parent.Type())
	}
	index, err := r.Resolve(e.Index, scope)
	if err != nil {
		return nil, err
	}
	if index.Type().Kind() != types.KindNumber {
		return nil, errorf(e.Index.GetSpan(), types.ErrTypeMismatch, "index must be number, got %s", index.Type())
	}
	return &typed.Index{Info: typed.Info{Node: e, T: arr.Elem}, Parent: parent, Index: index}, nil
}

func (r *Resolver) resolveBinary(e *ast.BinaryOperation, scope *types.Scope) (typed.Expr, error) {
	left, err := r.Resolve(e.Left, scope)
	if err != nil {
		return nil, err
	}
	right, err := r.Resolve(e.Right, scope)
	if err != nil {
		return nil, err
	}
	t, err := types.BinaryOperation(left.Type(), e.Operator, right.Type())
	if err != nil {
		return nil, errorAt(e.Span, err)
	}
	return &typed.Binary{Info: typed.Info{Node: e, T: t}, Operator: e.Operator, Left: left, Right: right}, nil
}

// resolveUnary accepts booleans and nullable values; !x on a nullable x
// tests for null.
func (r *Resolver) resolveUnary(e *ast.UnaryOperation, scope *types.Scope) (typed.Expr, error) {
	operand, err := r.Resolve(e.Operand, scope)
	if err != nil {
		return nil, err
	}
	t := operand.Type()
	if t.Kind() != types.KindBoolean && !types.IsNullable(t) {
		return nil, errorf(e.Span, types.ErrIncompatibleOperands, "%s%s", e.Operator, t)
	}
	return &typed.Unary{Info: typed.Info{Node: e, T: types.Boolean()}, Operator: e.Operator, Operand: operand}, nil
}

func (r *Resolver) resolveTernary(e *ast.TernaryOperation, scope *types.Scope) (typed.Expr, error) {
	cond, err := r.Resolve(e.Condition, scope)
	if err != nil {
		return nil, err
	}
	if cond.Type().Kind() != types.KindBoolean {
		return nil, errorf(e.Condition.GetSpan(), types.ErrNonBooleanCondition, "%s", cond.Type())
	}
	thenExpr, err := r.Resolve(e.Then, scope)
	if err != nil {
		return nil, err
	}
	elseExpr, err := r.Resolve(e.Else, scope)
	if err != nil {
		return nil, err
	}
	t := types.Expand(thenExpr.Type(), elseExpr.Type())
	return &typed.Ternary{Info: typed.Info{Node: e, T: t}, Condition: cond, Then: thenExpr, Else: elseExpr}, nil
}

// resolveMatch resolves every arm against the same subject scope and folds
// the arm types left to right, seeded by the first arm. When the subject is
// an enum value its members may be written bare in arm conditions.
func (r *Resolver) resolveMatch(e *ast.MatchExpression, scope *types.Scope) (typed.Expr, error) {
	subject, err := r.Resolve(e.Subject, scope)
	if err != nil {
		return nil, err
	}
	condScope := scope
	if enum, ok := types.StripNull(subject.Type()).(*types.Enum); ok {
		members := make(map[string]types.Type, len(enum.Members))
		for _, m := range enum.Members {
			members[m] = enum
		}
		condScope = scope.Push(members)
	}

	var result types.Type
	arms := make([]typed.MatchArm, 0, len(e.Arms))
	for _, arm := range e.Arms {
		var conds []typed.Expr
		for _, c := range arm.Conditions {
			cond, err := r.Resolve(c, condScope)
			if err != nil {
				return nil, err
			}
			if !types.Comparable(subject.Type(), cond.Type()) {
				return nil, errorf(c.GetSpan(), types.ErrTypeMismatch, "cannot match %s against %s", cond.Type(), subject.Type())
			}
			conds = append(conds, cond)
		}
		res, err := r.Resolve(arm.Result, scope.Push(nil))
		if err != nil {
			return nil, err
		}
		if result == nil {
			result = res.Type()
		} else {
			result = types.Expand(result, res.Type())
		}
		arms = append(arms, typed.MatchArm{Conditions: conds, Result: res})
	}
	return &typed.Match{Info: typed.Info{Node: e, T: result}, Subject: subject, Arms: arms}, nil
}

// resolveCall resolves the callee first so that arrow function arguments
// can take their parameter types from the callee's signature.
func (r *Resolver) resolveCall(e *ast.FunctionCall, scope *types.Scope) (typed.Expr, error) {
	callee, err := r.Resolve(e.Callee, scope)
	if err != nil {
		return nil, err
	}
	fn, ok := callee.Type().(*types.Function)
	if !ok {
		return nil, errorf(e.Callee.GetSpan(), types.ErrNotCallable, "%s", callee.Type())
	}
	if len(e.Args) != len(fn.Params) {
		return nil, errorf(e.Span, types.ErrTypeMismatch, "%s takes %d arguments, got %d", fn, len(fn.Params), len(e.Args))
	}
	args := make([]typed.Expr, len(e.Args))
	for i, argExpr := range e.Args {
		var arg typed.Expr
		contract, isFunc := fn.Params[i].(*types.Function)
		if arrow, isArrow := argExpr.(*ast.ArrowFunction); isArrow && isFunc {
			arg, err = r.resolveArrow(arrow, scope, contract)
		} else {
			arg, err = r.Resolve(argExpr, scope)
		}
		if err != nil {
			return nil, err
		}
		if !types.AssignableTo(arg.Type(), fn.Params[i]) {
			return nil, errorf(argExpr.GetSpan(), types.ErrTypeMismatch, "argument %d: cannot use %s as %s", i+1, arg.Type(), fn.Params[i])
		}
		args[i] = arg
	}
	return &typed.Call{Info: typed.Info{Node: e, T: fn.Return}, Callee: callee, Args: args}, nil
}

// resolveArrow types an arrow function. With a contract, unannotated
// parameters take the contract's parameter types; without one every
// parameter must be annotated.
func (r *Resolver) resolveArrow(e *ast.ArrowFunction, scope *types.Scope, contract *types.Function) (typed.Expr, error) {
	if contract != nil && len(e.Params) != len(contract.Params) {
		return nil, errorf(e.Span, types.ErrTypeMismatch, "expected %d parameters, got %d", len(contract.Params), len(e.Params))
	}
	bindings := make(map[string]types.Type, len(e.Params))
	params := make([]typed.Param, len(e.Params))
	paramTypes := make([]types.Type, len(e.Params))
	for i, p := range e.Params {
		if _, dup := bindings[p.Name]; dup {
			return nil, errorf(p.Span, types.ErrDuplicateDeclaration, "parameter %s", p.Name)
		}
		var t types.Type
		switch {
		case p.Type != nil:
			declared, err := r.Types.ResolveType(p.Type)
			if err != nil {
				return nil, errorAt(p.Type.Span, err)
			}
			if contract != nil && !types.AssignableTo(contract.Params[i], declared) {
				return nil, errorf(p.Span, types.ErrTypeMismatch, "parameter %s is %s, expected %s", p.Name, declared, contract.Params[i])
			}
			t = declared
		case contract != nil:
			t = contract.Params[i]
		default:
			return nil, errorf(p.Span, types.ErrUnknownType, "cannot infer the type of parameter %s", p.Name)
		}
		bindings[p.Name] = t
		params[i] = typed.Param{Name: p.Name, Type: t}
		paramTypes[i] = t
	}
	body, err := r.Resolve(e.Body, scope.Push(bindings))
	if err != nil {
		return nil, err
	}
	fn := types.NewFunction(paramTypes, body.Type())
	return &typed.Arrow{Info: typed.Info{Node: e, T: fn}, Params: params, Body: body}, nil
}

// embeddable reports whether t can be printed into text.
func embeddable(t types.Type) bool {
	if u, ok := t.(*types.Union); ok {
		for _, m := range u.Members {
			if !types.IsPrimitive(m) {
				return false
			}
		}
		return true
	}
	return types.IsPrimitive(t)
}
