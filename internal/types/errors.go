package types

import "errors"

var (
	ErrUndefinedVariable     = errors.New("undefined variable")
	ErrInvalidPropertyAccess = errors.New("invalid property access")
	ErrDuplicateDeclaration  = errors.New("duplicate declaration")
	ErrNotCallable           = errors.New("not callable")
	ErrIncompatibleOperands  = errors.New("incompatible operands")
	ErrNonBooleanCondition   = errors.New("condition is not boolean")
	ErrTypeMismatch          = errors.New("type mismatch")
	ErrUnknownType           = errors.New("unknown type")
)
