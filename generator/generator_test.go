// Copyright 2026 The luadense Authors
// SPDX-License-Identifier: MIT

package generator

import (
	"strings"
	"testing"

	"github.com/luadense/luadense/luaast"
)

func mustWriteExpression(t *testing.T, budget int, e luaast.Expression) string {
	t.Helper()
	g := New(budget)
	g.WriteExpression(e)
	return g.IntoText()
}

func mustWriteBlock(t *testing.T, budget int, b *luaast.Block) string {
	t.Helper()
	g := New(budget)
	g.WriteBlock(b)
	return g.IntoText()
}

func ident(name string) *luaast.Identifier {
	return &luaast.Identifier{Name: name}
}

// TestScenarios covers the concrete scenario table in the project's
// source specification (§8).
func TestScenarios(t *testing.T) {
	t.Run("local assignment", func(t *testing.T) {
		b := &luaast.Block{
			Statements: []luaast.Statement{
				&luaast.LocalAssignStatement{
					Names:  []*luaast.Identifier{ident("x")},
					Values: []luaast.Expression{&luaast.DecimalNumber{Value: 1}},
				},
			},
		}
		got := mustWriteBlock(t, 80, b)
		if want := "local x=1"; got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("call chain disambiguation", func(t *testing.T) {
		printCall := &luaast.ExpressionStatement{
			Call: &luaast.FunctionCall{
				Prefix:    ident("print"),
				Arguments: luaast.StringArguments{String: &luaast.StringExpression{Value: "hi"}},
			},
		}
		chained := &luaast.ExpressionStatement{
			Call: &luaast.FunctionCall{
				Prefix: &luaast.ParenExpression{Inner: &luaast.DecimalNumber{Value: 1}},
				Arguments: luaast.TupleArguments{},
			},
		}
		b := &luaast.Block{Statements: []luaast.Statement{printCall, chained}}
		got := mustWriteBlock(t, 80, b)
		if want := `print"hi";(1)()`; got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("concat after digit needs space", func(t *testing.T) {
		b := &luaast.Block{
			Last: luaast.ReturnStatement{
				Expressions: []luaast.Expression{
					&luaast.BinaryExpression{
						Operator: luaast.Concat,
						Left:     &luaast.DecimalNumber{Value: 1},
						Right:    &luaast.DecimalNumber{Value: 2},
					},
				},
			},
		}
		got := mustWriteBlock(t, 80, b)
		if want := "return 1 ..2"; got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("double unary minus needs space", func(t *testing.T) {
		e := &luaast.UnaryExpression{
			Operator: luaast.Minus,
			Operand: &luaast.UnaryExpression{
				Operator: luaast.Minus,
				Operand:  ident("b"),
			},
		}
		b := &luaast.Block{
			Statements: []luaast.Statement{
				&luaast.AssignStatement{
					Variables: []luaast.Expression{ident("a")},
					Values:    []luaast.Expression{e},
				},
			},
		}
		got := mustWriteBlock(t, 80, b)
		if want := "a=- -b"; got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("table constructor", func(t *testing.T) {
		e := &luaast.TableExpression{
			Entries: []luaast.TableEntry{
				luaast.FieldEntry{Field: ident("a"), Value: &luaast.DecimalNumber{Value: 1}},
				luaast.IndexEntry{Key: ident("k"), Value: &luaast.DecimalNumber{Value: 2}},
				luaast.PositionalEntry{Value: &luaast.DecimalNumber{Value: 3}},
			},
		}
		b := &luaast.Block{
			Statements: []luaast.Statement{
				&luaast.AssignStatement{
					Variables: []luaast.Expression{ident("t")},
					Values:    []luaast.Expression{e},
				},
			},
		}
		got := mustWriteBlock(t, 80, b)
		if want := "t={a=1,[k]=2,3}"; got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("empty numeric for", func(t *testing.T) {
		b := &luaast.Block{
			Statements: []luaast.Statement{
				&luaast.NumericForStatement{
					Identifier: ident("i"),
					Start:      &luaast.DecimalNumber{Value: 1},
					Stop:       &luaast.DecimalNumber{Value: 10},
					Block:      &luaast.Block{},
				},
			},
		}
		got := mustWriteBlock(t, 80, b)
		if want := "for i=1,10 do end"; got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})
}

func TestSpecialFloats(t *testing.T) {
	tests := []struct {
		name string
		n    *luaast.DecimalNumber
		want string
	}{
		{"nan", &luaast.DecimalNumber{Value: nan()}, "(0/0)"},
		{"+inf", &luaast.DecimalNumber{Value: posInf()}, "(1/0)"},
		{"-inf", &luaast.DecimalNumber{Value: negInf()}, "(-1/0)"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := mustWriteExpression(t, 80, test.n)
			if got != test.want {
				t.Errorf("got %q, want %q", got, test.want)
			}
		})
	}
}

func TestColumnBudgetNeverSplitsAtom(t *testing.T) {
	long := strings.Repeat("a", 120)
	got := mustWriteExpression(t, 10, ident(long))
	// The identifier alone overflows the budget, so pushStr breaks the
	// line before it; the identifier itself is never split.
	if want := "\n" + long; got != want {
		t.Errorf("long identifier was mangled: got %q, want %q", got, want)
	}
}

func TestColumnBudgetWrapsLongExpression(t *testing.T) {
	var e luaast.Expression = &luaast.DecimalNumber{Value: 0}
	for i := 1; i < 40; i++ {
		e = &luaast.BinaryExpression{Operator: luaast.Add, Left: e, Right: &luaast.DecimalNumber{Value: float64(i)}}
	}
	got := mustWriteExpression(t, 20, e)
	for _, line := range strings.Split(got, "\n") {
		if len(line) > 20 {
			t.Errorf("line exceeds budget: %q (%d chars)", line, len(line))
		}
	}
}

func TestIdempotence(t *testing.T) {
	e := &luaast.BinaryExpression{
		Operator: luaast.Add,
		Left:     ident("a"),
		Right:    &luaast.BinaryExpression{Operator: luaast.Multiply, Left: ident("b"), Right: ident("c")},
	}
	first := mustWriteExpression(t, 80, e)
	second := mustWriteExpression(t, 80, e)
	if first != second {
		t.Errorf("non-deterministic output: %q vs %q", first, second)
	}
}

func TestIntoTextTwicePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic calling IntoText twice")
		}
	}()
	g := New(80)
	g.IntoText()
	g.IntoText()
}

func nan() float64     { var z float64; return z / z }
func posInf() float64  { var z float64; return 1 / z }
func negInf() float64  { var z float64; return -1 / z }
