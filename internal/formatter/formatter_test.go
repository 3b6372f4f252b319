package formatter

import (
	"testing"

	"componentengine/internal/parser"
	"componentengine/internal/resolver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const messyModule = `from "./button.afx" import {Button,Action}
export   enum Level { H1(1) H2(2) }
struct Item { label: string, tags: ?string[] }
export component Card {
title: string
items: Item[]
return <section class="card"><h1>{title}</h1>{match level { Level.H1 -> 'big' default -> "small" }}</section>
}
`

const formattedModule = `from "./button.afx" import { Button, Action }

export enum Level {
  H1(1)
  H2(2)
}

struct Item {
  label: string
  tags: ?string[]
}

export component Card {
  title: string
  items: Item[]

  return <section class="card">
    <h1>{title}</h1>
    {match (level) {
      Level.H1 -> "big"
      default -> "small"
    }}
  </section>
}
`

func TestFormatModule(t *testing.T) {
	out, err := New().Format("card.afx", messyModule)
	require.NoError(t, err)
	assert.Equal(t, formattedModule, out)
}

func TestFormatIsIdempotent(t *testing.T) {
	out, err := New().Format("card.afx", formattedModule)
	require.NoError(t, err)
	assert.Equal(t, formattedModule, out)
}

func TestFormatSyntaxError(t *testing.T) {
	_, err := New().Format("bad.afx", "component {")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.afx:1:")
}

func TestFormatExpr(t *testing.T) {
	type testCase struct {
		input string
		want  string
	}

	testCases := []testCase{
		{input: "(a + b) * c", want: "(a + b) * c"},
		{input: "a + (b + c)", want: "a + (b + c)"},
		{input: "(a + b) + c", want: "a + b + c"},
		{input: "a || b && c", want: "a || b && c"},
		{input: "(a || b) && c", want: "(a || b) && c"},
		{input: "(((foo)))", want: "foo"},
		{input: "!(a && b)", want: "!(a && b)"},
		{input: "!a.b", want: "!a.b"},
		{input: "(a ? b : c) ? d : e", want: "(a ? b : c) ? d : e"},
		{input: "a ? b : (c ? d : e)", want: "a ? b : c ? d : e"},
		{input: "(a + b).length", want: "(a + b).length"},
		{input: "a?.b.c", want: "a?.b.c"},
		{input: "items[i + 1]", want: "items[i + 1]"},
		{input: "f(x => x + 1, 'y')", want: `f((x) => x + 1, "y")`},
		{input: "(a: number) => a", want: "(a: number) => a"},
		{input: "`hi ${name}!`", want: "`hi ${name}!`"},
		{input: "0x1F + 1.5e3", want: "0x1F + 1.5e3"},
		{input: "match x { A, B -> 1 default -> 2 }", want: "match (x) {\n  A, B -> 1\n  default -> 2\n}"},
		{input: "<br/>", want: "<br />"},
		{input: "<p>Hello {name}!</p>", want: "<p>Hello {name}!</p>"},
		{input: "<input disabled value={v}></input>", want: "<input disabled value={v}></input>"},
		{input: "<>{a}</>", want: "<>{a}</>"},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			expr, err := parser.ParseExpressionString(tc.input)
			require.NoError(t, err)

			got := New().FormatExpr(expr)
			assert.Equal(t, tc.want, got)

			// the output parses back to the same text
			again, err := parser.ParseExpressionString(got)
			require.NoError(t, err)
			assert.Equal(t, got, New().FormatExpr(again))
		})
	}
}

func TestAnnotateModuleTypes(t *testing.T) {
	mod, err := parser.ParseModule("greeting.afx", `export component Greeting { name: string return <p>Hello {name}</p> }`)
	require.NoError(t, err)
	resolved, err := resolver.ResolveModule(mod, nil, nil)
	require.NoError(t, err)

	want := `export component Greeting: (GreetingProps) => element
  name: string
  return
    <p>: element
      "Hello ": string
      name: string
`
	assert.Equal(t, want, New().AnnotateModuleTypes(resolved))
}
