package types

import (
	"fmt"
	"strings"
)

type Kind int

const (
	KindInvalid Kind = iota
	KindNumber
	KindString
	KindBoolean
	KindNull
	KindElement
	KindFunction
	KindRecord
	KindEnum
	KindEnumStatic
	KindArray
	KindUnion
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBoolean:
		return "boolean"
	case KindNull:
		return "null"
	case KindElement:
		return "element"
	case KindFunction:
		return "function"
	case KindRecord:
		return "record"
	case KindEnum:
		return "enum"
	case KindEnumStatic:
		return "enum namespace"
	case KindArray:
		return "array"
	case KindUnion:
		return "union"
	default:
		return "invalid"
	}
}

// Type is the closed set of resolved types. Every implementation lives in
// this file.
type Type interface {
	Kind() Kind
	String() string
	typeNode()
}

type Primitive struct {
	kind Kind
}

func (*Primitive) typeNode()        {}
func (p *Primitive) Kind() Kind     { return p.kind }
func (p *Primitive) String() string { return p.kind.String() }

var (
	numberType  = &Primitive{kind: KindNumber}
	stringType  = &Primitive{kind: KindString}
	booleanType = &Primitive{kind: KindBoolean}
	nullType    = &Primitive{kind: KindNull}
	elementType = &Primitive{kind: KindElement}
)

func Number() Type  { return numberType }
func String() Type  { return stringType }
func Boolean() Type { return booleanType }
func Null() Type    { return nullType }

// Element is the type of every tag literal.
func Element() Type { return elementType }

// IsPrimitive reports whether t is one of the scalar types that can be
// embedded in text.
func IsPrimitive(t Type) bool {
	switch t.Kind() {
	case KindNumber, KindString, KindBoolean, KindNull, KindEnum:
		return true
	default:
		return false
	}
}

type Function struct {
	Params []Type
	Return Type
}

func NewFunction(params []Type, ret Type) *Function {
	return &Function{Params: params, Return: ret}
}

func (*Function) typeNode()  {}
func (*Function) Kind() Kind { return KindFunction }
func (f *Function) String() string {
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.String()
	}
	return fmt.Sprintf("(%s) => %s", strings.Join(params, ", "), f.Return)
}

type Field struct {
	Name string
	Type Type
}

// Record is a struct, an interface or a component's props. Named records
// compare by name so self-referencing declarations terminate.
type Record struct {
	Name   string
	Fields []Field
	index  map[string]Type
}

func NewRecord(name string, fields []Field) *Record {
	r := &Record{Name: name}
	r.SetFields(fields)
	return r
}

// SetFields replaces the field list. Declarations are materialised in two
// steps so that fields may refer back to the record itself.
func (r *Record) SetFields(fields []Field) {
	r.Fields = fields
	r.index = make(map[string]Type, len(fields))
	for _, f := range fields {
		r.index[f.Name] = f.Type
	}
}

func (r *Record) Field(name string) (Type, bool) {
	t, ok := r.index[name]
	return t, ok
}

func (*Record) typeNode()  {}
func (*Record) Kind() Kind { return KindRecord }
func (r *Record) String() string {
	if r.Name != "" {
		return r.Name
	}
	fields := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		fields[i] = f.Name + ": " + f.Type.String()
	}
	return "{" + strings.Join(fields, ", ") + "}"
}

// Enum is the type of an enum value such as Level.H1.
type Enum struct {
	Name    string
	Members []string
}

func NewEnum(name string, members []string) *Enum {
	return &Enum{Name: name, Members: members}
}

func (e *Enum) HasMember(name string) bool {
	for _, m := range e.Members {
		if m == name {
			return true
		}
	}
	return false
}

func (*Enum) typeNode()        {}
func (*Enum) Kind() Kind       { return KindEnum }
func (e *Enum) String() string { return e.Name }

// EnumStatic is the type of the bare enum name, through which members are
// reached.
type EnumStatic struct {
	Enum *Enum
}

func (*EnumStatic) typeNode()        {}
func (*EnumStatic) Kind() Kind       { return KindEnumStatic }
func (e *EnumStatic) String() string { return "typeof " + e.Enum.Name }

type Array struct {
	Elem Type
}

func NewArray(elem Type) *Array {
	return &Array{Elem: elem}
}

func (*Array) typeNode()  {}
func (*Array) Kind() Kind { return KindArray }
func (a *Array) String() string {
	if a.Elem.Kind() == KindUnion || a.Elem.Kind() == KindFunction {
		return "(" + a.Elem.String() + ")[]"
	}
	return a.Elem.String() + "[]"
}

// Union is the widened type of diverging branches and of optional values.
// Members are flat and distinct; build it through NewUnion.
type Union struct {
	Members []Type
}

func (*Union) typeNode()  {}
func (*Union) Kind() Kind { return KindUnion }
func (u *Union) String() string {
	members := make([]string, len(u.Members))
	for i, m := range u.Members {
		members[i] = m.String()
	}
	return strings.Join(members, " | ")
}

// NewUnion flattens nested unions and drops duplicates. A single surviving
// member is returned as is; no members yields nil.
func NewUnion(members ...Type) Type {
	var flat []Type
	for _, member := range members {
		if member == nil {
			continue
		}
		if u, ok := member.(*Union); ok {
			flat = append(flat, u.Members...)
			continue
		}
		flat = append(flat, member)
	}
	if len(flat) == 0 {
		return nil
	}
	var unique []Type
	for _, member := range flat {
		found := false
		for _, existing := range unique {
			if Equals(member, existing) {
				found = true
				break
			}
		}
		if !found {
			unique = append(unique, member)
		}
	}
	if len(unique) == 1 {
		return unique[0]
	}
	return &Union{Members: unique}
}

// Optional is the type written ?T.
func Optional(t Type) Type {
	return NewUnion(t, Null())
}

func IsNullable(t Type) bool {
	switch t := t.(type) {
	case *Primitive:
		return t.kind == KindNull
	case *Union:
		for _, m := range t.Members {
			if m.Kind() == KindNull {
				return true
			}
		}
	}
	return false
}

// StripNull removes null from a union. Stripping a bare null returns it
// unchanged.
func StripNull(t Type) Type {
	u, ok := t.(*Union)
	if !ok {
		return t
	}
	var rest []Type
	for _, m := range u.Members {
		if m.Kind() != KindNull {
			rest = append(rest, m)
		}
	}
	return NewUnion(rest...)
}

// Equals compares types structurally. Declared records and enums only
// equal themselves.
func Equals(a, b Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a == b {
		return true
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch a := a.(type) {
	case *Primitive:
		return true
	case *Function:
		o := b.(*Function)
		if len(a.Params) != len(o.Params) {
			return false
		}
		for i := range a.Params {
			if !Equals(a.Params[i], o.Params[i]) {
				return false
			}
		}
		return Equals(a.Return, o.Return)
	case *Record:
		o := b.(*Record)
		// declared records are distinct types even when their names match
		if a.Name != "" || o.Name != "" {
			return false
		}
		if len(a.Fields) != len(o.Fields) {
			return false
		}
		for i := range a.Fields {
			if a.Fields[i].Name != o.Fields[i].Name || !Equals(a.Fields[i].Type, o.Fields[i].Type) {
				return false
			}
		}
		return true
	case *Enum:
		return false
	case *EnumStatic:
		return a.Enum == b.(*EnumStatic).Enum
	case *Array:
		return Equals(a.Elem, b.(*Array).Elem)
	case *Union:
		o := b.(*Union)
		if len(a.Members) != len(o.Members) {
			return false
		}
		used := make([]bool, len(o.Members))
		for _, member := range a.Members {
			found := false
			for i, other := range o.Members {
				if used[i] {
					continue
				}
				if Equals(member, other) {
					used[i] = true
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
		return true
	default:
		return false
	}
}
