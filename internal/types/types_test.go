package types_test

import (
	"errors"
	"testing"

	"componentengine/internal/ast"
	"componentengine/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUnion(t *testing.T) {
	t.Run("flattens and deduplicates", func(t *testing.T) {
		inner := types.NewUnion(types.Number(), types.String())
		u := types.NewUnion(inner, types.Number(), types.Boolean())

		union, ok := u.(*types.Union)
		require.True(t, ok)
		assert.Len(t, union.Members, 3)
		assert.Equal(t, "number | string | boolean", u.String())
	})

	t.Run("single member collapses", func(t *testing.T) {
		assert.Equal(t, types.Number(), types.NewUnion(types.Number(), types.Number()))
	})

	t.Run("order does not matter for equality", func(t *testing.T) {
		a := types.NewUnion(types.Number(), types.String())
		b := types.NewUnion(types.String(), types.Number())
		assert.True(t, types.Equals(a, b))
	})
}

func TestExpand(t *testing.T) {
	assert.Equal(t, types.Number(), types.Expand(types.Number(), types.Number()))

	widened := types.Expand(types.Number(), types.String())
	assert.True(t, types.Equals(types.NewUnion(types.Number(), types.String()), widened))

	// folding a third branch keeps the union flat
	folded := types.Expand(widened, types.Number())
	assert.True(t, types.Equals(widened, folded))
}

func TestAccess(t *testing.T) {
	item := types.NewRecord("Item", []types.Field{{Name: "label", Type: types.String()}})
	level := types.NewEnum("Level", []string{"H1", "H2"})

	type testCase struct {
		name   string
		parent types.Type
		key    string
		want   types.Type
	}

	testCases := []testCase{
		{name: "record field", parent: item, key: "label", want: types.String()},
		{name: "enum member", parent: &types.EnumStatic{Enum: level}, key: "H2", want: level},
		{name: "array length", parent: types.NewArray(item), key: "length", want: types.Number()},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := types.Access(tc.parent, tc.key)
			require.NoError(t, err)
			assert.True(t, types.Equals(tc.want, got), "got %s", got)
		})
	}

	invalid := []testCase{
		{name: "missing field", parent: item, key: "price"},
		{name: "missing enum member", parent: &types.EnumStatic{Enum: level}, key: "H3"},
		{name: "enum value", parent: level, key: "H1"},
		{name: "primitive", parent: types.String(), key: "length"},
		{name: "function", parent: types.NewFunction(nil, types.Number()), key: "x"},
	}

	for _, tc := range invalid {
		t.Run(tc.name, func(t *testing.T) {
			_, err := types.Access(tc.parent, tc.key)
			require.Error(t, err)
			assert.True(t, errors.Is(err, types.ErrInvalidPropertyAccess))
		})
	}
}

func TestBinaryOperation(t *testing.T) {
	type testCase struct {
		name  string
		left  types.Type
		op    ast.BinaryOperator
		right types.Type
		want  types.Type
	}

	testCases := []testCase{
		{name: "number addition", left: types.Number(), op: ast.OpAdd, right: types.Number(), want: types.Number()},
		{name: "string concatenation", left: types.String(), op: ast.OpAdd, right: types.String(), want: types.String()},
		{name: "string wins over number", left: types.Number(), op: ast.OpAdd, right: types.String(), want: types.String()},
		{name: "modulo", left: types.Number(), op: ast.OpModulo, right: types.Number(), want: types.Number()},
		{name: "number comparison", left: types.Number(), op: ast.OpLess, right: types.Number(), want: types.Boolean()},
		{name: "string comparison", left: types.String(), op: ast.OpGreaterEqual, right: types.String(), want: types.Boolean()},
		{name: "equality", left: types.String(), op: ast.OpEqual, right: types.String(), want: types.Boolean()},
		{name: "equality with null", left: types.Optional(types.String()), op: ast.OpNotEqual, right: types.Null(), want: types.Boolean()},
		{name: "logical widens", left: types.Boolean(), op: ast.OpOr, right: types.String(), want: types.NewUnion(types.Boolean(), types.String())},
		{name: "logical on same type", left: types.Boolean(), op: ast.OpAnd, right: types.Boolean(), want: types.Boolean()},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := types.BinaryOperation(tc.left, tc.op, tc.right)
			require.NoError(t, err)
			assert.True(t, types.Equals(tc.want, got), "got %s", got)
		})
	}

	incompatible := []testCase{
		{name: "subtract strings", left: types.String(), op: ast.OpSubtract, right: types.String()},
		{name: "add element", left: types.Element(), op: ast.OpAdd, right: types.Number()},
		{name: "compare mixed", left: types.Number(), op: ast.OpLess, right: types.String()},
		{name: "equality of unrelated", left: types.Number(), op: ast.OpEqual, right: types.Boolean()},
	}

	for _, tc := range incompatible {
		t.Run(tc.name, func(t *testing.T) {
			_, err := types.BinaryOperation(tc.left, tc.op, tc.right)
			require.Error(t, err)
			assert.True(t, errors.Is(err, types.ErrIncompatibleOperands))
			assert.Contains(t, err.Error(), tc.left.String())
			assert.Contains(t, err.Error(), tc.op.String())
			assert.Contains(t, err.Error(), tc.right.String())
		})
	}
}

func TestAssignableTo(t *testing.T) {
	named := types.NewRecord("Named", []types.Field{{Name: "name", Type: types.String()}})
	person := types.NewRecord("Person", []types.Field{
		{Name: "name", Type: types.String()},
		{Name: "age", Type: types.Number()},
	})

	assert.True(t, types.AssignableTo(types.Number(), types.Optional(types.Number())))
	assert.True(t, types.AssignableTo(types.Null(), types.Optional(types.Number())))
	assert.False(t, types.AssignableTo(types.Optional(types.Number()), types.Number()))
	assert.True(t, types.AssignableTo(types.NewUnion(types.Number(), types.String()), types.NewUnion(types.String(), types.Number(), types.Null())))
	assert.True(t, types.AssignableTo(person, named))
	assert.False(t, types.AssignableTo(named, person))
	assert.True(t, types.AssignableTo(types.NewArray(person), types.NewArray(named)))
	assert.False(t, types.AssignableTo(types.String(), types.Number()))
}

func TestSelfReferencingRecords(t *testing.T) {
	node := types.NewRecord("Node", nil)
	node.SetFields([]types.Field{{Name: "next", Type: types.Optional(node)}})
	link := types.NewRecord("Link", nil)
	link.SetFields([]types.Field{{Name: "next", Type: types.Optional(link)}})

	assert.True(t, types.Equals(node, node))
	assert.False(t, types.Equals(node, link))
	assert.True(t, types.AssignableTo(node, link))

	next, err := types.Access(node, "next")
	require.NoError(t, err)
	assert.Equal(t, "Node | null", next.String())
}

func TestDeclaredTypesWithTheSameName(t *testing.T) {
	labelled := types.NewRecord("Item", []types.Field{{Name: "label", Type: types.String()}})
	priced := types.NewRecord("Item", []types.Field{{Name: "price", Type: types.Number()}})
	alsoLabelled := types.NewRecord("Item", []types.Field{{Name: "label", Type: types.String()}})

	assert.False(t, types.Equals(labelled, priced))
	assert.False(t, types.AssignableTo(priced, labelled))
	assert.True(t, types.AssignableTo(alsoLabelled, labelled), "matching fields still satisfy the record")

	a := types.NewEnum("Level", []string{"H1"})
	b := types.NewEnum("Level", []string{"H1"})
	assert.True(t, types.Equals(a, a))
	assert.False(t, types.Equals(a, b))
	assert.Len(t, types.NewUnion(a, b).(*types.Union).Members, 2)
}

func TestNullable(t *testing.T) {
	opt := types.Optional(types.String())
	assert.True(t, types.IsNullable(opt))
	assert.False(t, types.IsNullable(types.String()))
	assert.Equal(t, types.String(), types.StripNull(opt))
}

func TestScope(t *testing.T) {
	root := types.NewScope(map[string]types.Type{"a": types.Number()})
	left := root.Push(map[string]types.Type{"b": types.String()})
	right := root.Push(map[string]types.Type{"a": types.Boolean()})

	got, err := left.Lookup("a")
	require.NoError(t, err)
	assert.Equal(t, types.Number(), got)

	got, err = right.Lookup("a")
	require.NoError(t, err)
	assert.Equal(t, types.Boolean(), got, "inner binding shadows the parent")

	_, err = right.Lookup("b")
	assert.True(t, errors.Is(err, types.ErrUndefinedVariable), "siblings do not see each other")

	_, err = root.Lookup("b")
	assert.True(t, errors.Is(err, types.ErrUndefinedVariable), "pushing leaves the parent untouched")
	assert.Same(t, root, left.Parent())
}

func TestScopeCopiesBindings(t *testing.T) {
	bindings := map[string]types.Type{"a": types.Number()}
	scope := types.NewScope(bindings)
	bindings["a"] = types.String()

	got, err := scope.Lookup("a")
	require.NoError(t, err)
	assert.Equal(t, types.Number(), got)
}
