package resolver_test

import (
	"errors"
	"testing"

	"componentengine/internal/parser"
	"componentengine/internal/resolver"
	"componentengine/internal/typed"
	"componentengine/internal/types"
	"github.com/kr/pretty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolveString(t *testing.T, src string, scope *types.Scope) (typed.Expr, error) {
	t.Helper()
	expr, err := parser.ParseExpressionString(src)
	require.NoError(t, err, "parse %q", src)
	return resolver.Resolve(expr, scope)
}

func testScope() *types.Scope {
	level := types.NewEnum("Level", []string{"H1", "H2"})
	item := types.NewRecord("Item", []types.Field{
		{Name: "label", Type: types.String()},
		{Name: "price", Type: types.Number()},
		{Name: "tags", Type: types.NewArray(types.String())},
	})
	card := types.NewRecord("CardProps", []types.Field{
		{Name: "title", Type: types.String()},
		{Name: "subtitle", Type: types.Optional(types.String())},
	})
	inner := types.NewRecord("Inner", []types.Field{{Name: "c", Type: types.Number()}})
	outer := types.NewRecord("Outer", []types.Field{{Name: "b", Type: types.Optional(inner)}})
	return types.NewScope(map[string]types.Type{
		"a":     types.NewRecord("", []types.Field{{Name: "b", Type: types.Number()}}),
		"outer": types.Optional(outer),
		"o":     outer,
		"cond":  types.Boolean(),
		"count": types.Number(),
		"name":  types.String(),
		"item":  item,
		"maybe": types.Optional(item),
		"items": types.NewArray(item),
		"level": level,
		"Level": &types.EnumStatic{Enum: level},
		"Card":  types.NewFunction([]types.Type{card}, types.Element()),
		"map": types.NewFunction([]types.Type{
			types.NewArray(item),
			types.NewFunction([]types.Type{item}, types.String()),
		}, types.NewArray(types.String())),
	})
}

func TestResolve(t *testing.T) {
	type testCase struct {
		name  string
		input string
		want  types.Type
	}

	scope := testScope()
	item, err := scope.Lookup("item")
	require.NoError(t, err)
	level, err := scope.Lookup("level")
	require.NoError(t, err)

	testCases := []testCase{
		{name: "record field", input: "a.b", want: types.Number()},
		{name: "literals", input: "1 + 2 * 3", want: types.Number()},
		{name: "concatenation", input: "'n = ' + count", want: types.String()},
		{name: "comparison", input: "count >= 2 && cond", want: types.Boolean()},
		{name: "same branch types", input: "cond ? 1 : 2", want: types.Number()},
		{name: "diverging branch types", input: "cond ? 1 : 'x'", want: types.NewUnion(types.Number(), types.String())},
		{name: "nested ternary folds", input: "cond ? 1 : cond ? 'x' : 2", want: types.NewUnion(types.Number(), types.String())},
		{name: "not", input: "!cond", want: types.Boolean()},
		{name: "not on nullable", input: "!maybe", want: types.Boolean()},
		{name: "optional access strips null", input: "maybe?.label", want: types.Optional(types.String())},
		{name: "optional access short-circuits the chain", input: "maybe?.tags.length", want: types.Optional(types.Number())},
		{name: "optional access on non-null parent", input: "item?.price", want: types.Number()},
		{name: "optional access on each nullable segment", input: "outer?.b?.c", want: types.Optional(types.Number())},
		{name: "index", input: "items[0]", want: item},
		{name: "array length", input: "items.length", want: types.Number()},
		{name: "enum member", input: "Level.H2", want: level},
		{name: "template", input: "`${name} costs ${item.price}`", want: types.String()},
		{name: "match folds arm types", input: "match (level) { H1 -> 1 H2 -> 'two' default -> 3 }", want: types.NewUnion(types.Number(), types.String())},
		{name: "match on qualified members", input: "match level { Level.H1 -> <h1/> default -> <h2/> }", want: types.Element()},
		{name: "call takes arrow parameter types from the callee", input: "map(items, (it) => it.label)", want: types.NewArray(types.String())},
		{name: "bare arrow argument", input: "map(items, it => it.label + '!')", want: types.NewArray(types.String())},
		{name: "annotated arrow", input: "(x: number, y: number) => x * y", want: types.NewFunction([]types.Type{types.Number(), types.Number()}, types.Number())},
		{name: "intrinsic tag", input: "<div class={name} hidden>{count} items</div>", want: types.Element()},
		{name: "component tag", input: "<Card title={item.label} />", want: types.Element()},
		{name: "rendering arrays", input: "<ul>{map(items, (it) => it.label)}</ul>", want: types.Element()},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := resolveString(t, tc.input, scope)
			require.NoError(t, err)
			t.Log(pretty.Sprint(got.Type()))

			assert.True(t, types.Equals(tc.want, got.Type()), "want %s, got %s", tc.want, got.Type())
		})
	}
}

func TestResolveErrors(t *testing.T) {
	type testCase struct {
		name     string
		input    string
		sentinel error
	}

	testCases := []testCase{
		{name: "undeclared field", input: "a.c", sentinel: types.ErrInvalidPropertyAccess},
		{name: "undefined variable", input: "missing + 1", sentinel: types.ErrUndefinedVariable},
		{name: "access on primitive", input: "count.value", sentinel: types.ErrInvalidPropertyAccess},
		{name: "mandatory access on nullable", input: "maybe.label", sentinel: types.ErrInvalidPropertyAccess},
		{name: "mandatory access on nullable field", input: "o.b.c", sentinel: types.ErrInvalidPropertyAccess},
		{name: "mandatory access on nullable field after ?.", input: "outer?.b.c", sentinel: types.ErrInvalidPropertyAccess},
		{name: "unknown enum member", input: "Level.H3", sentinel: types.ErrInvalidPropertyAccess},
		{name: "incompatible operands", input: "name - count", sentinel: types.ErrIncompatibleOperands},
		{name: "non-boolean condition", input: "count ? 1 : 2", sentinel: types.ErrNonBooleanCondition},
		{name: "not on number", input: "!count", sentinel: types.ErrIncompatibleOperands},
		{name: "calling a record", input: "item()", sentinel: types.ErrNotCallable},
		{name: "wrong argument count", input: "map(items)", sentinel: types.ErrTypeMismatch},
		{name: "arrow returns the wrong type", input: "map(items, (it) => it.price)", sentinel: types.ErrTypeMismatch},
		{name: "arrow annotation conflicts with callee", input: "map(items, (it: string) => it)", sentinel: types.ErrTypeMismatch},
		{name: "arrow without contract", input: "(x) => x", sentinel: types.ErrUnknownType},
		{name: "unknown annotation", input: "(x: Price) => x", sentinel: types.ErrUnknownType},
		{name: "index on record", input: "item[0]", sentinel: types.ErrInvalidPropertyAccess},
		{name: "record in template", input: "`${item}`", sentinel: types.ErrTypeMismatch},
		{name: "match condition type", input: "match (count) { 'one' -> 1 default -> 2 }", sentinel: types.ErrTypeMismatch},
		{name: "unknown component", input: "<Missing />", sentinel: types.ErrUndefinedVariable},
		{name: "not a component", input: "<Level />", sentinel: types.ErrNotCallable},
		{name: "unknown component property", input: "<Card title='x' color='red' />", sentinel: types.ErrInvalidPropertyAccess},
		{name: "component property type", input: "<Card title={count} />", sentinel: types.ErrTypeMismatch},
		{name: "missing component property", input: "<Card subtitle='x' />", sentinel: types.ErrTypeMismatch},
		{name: "duplicate attribute", input: "<div id='a' id='b'></div>", sentinel: types.ErrDuplicateDeclaration},
		{name: "record as child", input: "<p>{item}</p>", sentinel: types.ErrTypeMismatch},
	}

	scope := testScope()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := resolveString(t, tc.input, scope)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.sentinel), "got %v", err)

			var resolveErr *resolver.Error
			require.True(t, errors.As(err, &resolveErr), "got %T", err)
			assert.NotZero(t, resolveErr.Span.Start.Line)
		})
	}
}

func TestResolveErrorPosition(t *testing.T) {
	_, err := resolveString(t, "a.b +\n  a.c", testScope())
	require.Error(t, err)

	var resolveErr *resolver.Error
	require.True(t, errors.As(err, &resolveErr))
	assert.Equal(t, 2, resolveErr.Span.Start.Line)
	assert.Equal(t, 3, resolveErr.Span.Start.Col)
	assert.Contains(t, err.Error(), "2:3: invalid property access")
}

func TestResolveLeavesScopeUntouched(t *testing.T) {
	scope := testScope()
	_, err := resolveString(t, "map(items, (name) => name.label)", scope)
	require.NoError(t, err)

	got, err := scope.Lookup("name")
	require.NoError(t, err)
	assert.Equal(t, types.String(), got, "the arrow parameter only shadows inside its body")
}

func TestTypedTree(t *testing.T) {
	got, err := resolveString(t, "cond ? a.b : count + 1", testScope())
	require.NoError(t, err)

	ternary, ok := got.(*typed.Ternary)
	require.True(t, ok, "got %T", got)
	assert.Equal(t, types.Boolean(), ternary.Condition.Type())

	access, ok := ternary.Then.(*typed.Access)
	require.True(t, ok)
	assert.Equal(t, "b", access.Key)
	assert.Equal(t, types.Number(), access.Type())

	var visited int
	typed.Walk(got, func(e typed.Expr) bool {
		visited++
		assert.NotNil(t, e.Type(), "%T has no type", e)
		return true
	})
	// ternary, cond, a.b, a, count + 1, count, 1
	assert.Equal(t, 7, visited)
}
