// Copyright 2026 The luadense Authors
// SPDX-License-Identifier: MIT

package generator

import (
	"io"
	"strings"
	"testing"

	"github.com/luadense/luadense/internal/lualex"
	"github.com/luadense/luadense/luaast"
)

// scanKinds re-lexes src with the Lua scanner and returns the ordered
// token kinds, standing in for a full reparse: it lets the tests below
// assert that dense output tokenizes to the same token sequence a
// human-formatted rendering would, without needing a parser.
func scanKinds(t *testing.T, src string) []lualex.TokenKind {
	t.Helper()
	scanner := lualex.NewScanner(strings.NewReader(src))
	var kinds []lualex.TokenKind
	for {
		tok, err := scanner.Scan()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("scanning %q: %v", src, err)
		}
		kinds = append(kinds, tok.Kind)
	}
	return kinds
}

func TestTokenizationInvariant(t *testing.T) {
	b := &luaast.Block{
		Statements: []luaast.Statement{
			&luaast.LocalAssignStatement{
				Names:  []*luaast.Identifier{ident("x"), ident("y")},
				Values: []luaast.Expression{&luaast.DecimalNumber{Value: 1}, &luaast.DecimalNumber{Value: 2}},
			},
			&luaast.ExpressionStatement{
				Call: &luaast.FunctionCall{
					Prefix:    ident("print"),
					Arguments: luaast.TupleArguments{Values: []luaast.Expression{ident("x")}},
				},
			},
		},
	}
	got := mustWriteBlock(t, 80, b)
	kinds := scanKinds(t, got)
	want := []lualex.TokenKind{
		lualex.LocalToken, lualex.IdentifierToken, lualex.CommaToken, lualex.IdentifierToken,
		lualex.AssignToken, lualex.NumeralToken, lualex.CommaToken, lualex.NumeralToken,
		lualex.IdentifierToken, lualex.LParenToken, lualex.IdentifierToken, lualex.RParenToken,
	}
	if len(kinds) != len(want) {
		t.Fatalf("token count = %d, want %d (output %q, kinds %v)", len(kinds), len(want), got, kinds)
	}
	for i, k := range kinds {
		if k != want[i] {
			t.Errorf("token %d = %v, want %v (output %q)", i, k, want[i], got)
		}
	}
}

func TestConcatDoesNotMergeWithPrecedingNumber(t *testing.T) {
	e := &luaast.BinaryExpression{
		Operator: luaast.Concat,
		Left:     &luaast.DecimalNumber{Value: 1},
		Right:    &luaast.DecimalNumber{Value: 2},
	}
	got := mustWriteExpression(t, 80, e)
	kinds := scanKinds(t, got)
	want := []lualex.TokenKind{lualex.NumeralToken, lualex.ConcatToken, lualex.NumeralToken}
	if len(kinds) != len(want) {
		t.Fatalf("got kinds %v from %q, want %v", kinds, got, want)
	}
	for i, k := range kinds {
		if k != want[i] {
			t.Errorf("token %d = %v, want %v (output %q)", i, k, want[i], got)
		}
	}
}
