package types

import (
	"fmt"

	"componentengine/internal/ast"
)

// Access is the type of t.key.
func Access(t Type, key string) (Type, error) {
	switch t := t.(type) {
	case *Record:
		if field, ok := t.Field(key); ok {
			return field, nil
		}
	case *EnumStatic:
		if t.Enum.HasMember(key) {
			return t.Enum, nil
		}
	case *Array:
		if key == "length" {
			return Number(), nil
		}
	}
	return nil, fmt.Errorf("%w: %s has no property %q", ErrInvalidPropertyAccess, t, key)
}

// BinaryOperation is the type of l op r.
func BinaryOperation(l Type, op ast.BinaryOperator, r Type) (Type, error) {
	switch {
	case op == ast.OpAdd:
		if isString(l) && concatenable(r) || isString(r) && concatenable(l) {
			return String(), nil
		}
		if isNumber(l) && isNumber(r) {
			return Number(), nil
		}
	case op.Arithmetic():
		if isNumber(l) && isNumber(r) {
			return Number(), nil
		}
	case op.Relational():
		if isNumber(l) && isNumber(r) || isString(l) && isString(r) {
			return Boolean(), nil
		}
	case op.Equality():
		if Comparable(l, r) {
			return Boolean(), nil
		}
	case op.Logical():
		return Expand(l, r), nil
	}
	return nil, fmt.Errorf("%w: %s %s %s", ErrIncompatibleOperands, l, op, r)
}

// Expand is the smallest type that describes a value of either a or b.
// Diverging types are kept apart as a union rather than erased.
func Expand(a, b Type) Type {
	if Equals(a, b) {
		return a
	}
	return NewUnion(a, b)
}

// Comparable reports whether values of a and b may be tested with ===.
func Comparable(a, b Type) bool {
	if a.Kind() == KindNull || b.Kind() == KindNull {
		return true
	}
	return AssignableTo(a, b) || AssignableTo(b, a)
}

// AssignableTo reports whether a value of src may be used where dst is
// expected.
func AssignableTo(src, dst Type) bool {
	return assignable(src, dst, map[[2]Type]bool{})
}

// seen holds record pairs already under comparison; a pair met again is
// assumed to hold so self-referencing records terminate.
func assignable(src, dst Type, seen map[[2]Type]bool) bool {
	if src == nil || dst == nil {
		return false
	}
	if Equals(src, dst) {
		return true
	}
	if u, ok := src.(*Union); ok {
		for _, member := range u.Members {
			if !assignable(member, dst, seen) {
				return false
			}
		}
		return true
	}
	if u, ok := dst.(*Union); ok {
		for _, member := range u.Members {
			if assignable(src, member, seen) {
				return true
			}
		}
		return false
	}
	if src.Kind() != dst.Kind() {
		return false
	}
	switch src := src.(type) {
	case *Array:
		return assignable(src.Elem, dst.(*Array).Elem, seen)
	case *Function:
		want := dst.(*Function)
		if len(src.Params) != len(want.Params) {
			return false
		}
		for i := range src.Params {
			if !assignable(want.Params[i], src.Params[i], seen) {
				return false
			}
		}
		return assignable(src.Return, want.Return, seen)
	case *Record:
		key := [2]Type{src, dst}
		if seen[key] {
			return true
		}
		seen[key] = true
		// a record satisfies an interface that asks for a subset of its fields
		want := dst.(*Record)
		for _, f := range want.Fields {
			have, ok := src.Field(f.Name)
			if !ok || !assignable(have, f.Type, seen) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func isNumber(t Type) bool {
	return t.Kind() == KindNumber
}

func isString(t Type) bool {
	return t.Kind() == KindString
}

func concatenable(t Type) bool {
	switch t.Kind() {
	case KindString, KindNumber, KindBoolean:
		return true
	default:
		return false
	}
}
