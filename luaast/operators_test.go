// Copyright 2026 The luadense Authors
// SPDX-License-Identifier: MIT

package luaast

import "testing"

func TestBinaryOperatorParenthesization(t *testing.T) {
	tests := []struct {
		name      string
		op        BinaryOperator
		left      Expression
		right     Expression
		wantLeft  bool
		wantRight bool
	}{
		{
			name:      "add around lower precedence left",
			op:        Add,
			left:      &BinaryExpression{Operator: Or, Left: &Identifier{Name: "a"}, Right: &Identifier{Name: "b"}},
			wantLeft:  true,
			wantRight: false,
		},
		{
			name:      "subtract needs parens on right at same precedence",
			op:        Subtract,
			right:     &BinaryExpression{Operator: Subtract, Left: &Identifier{Name: "b"}, Right: &Identifier{Name: "c"}},
			wantRight: true,
		},
		{
			name: "add is left-associative, no parens for left same precedence",
			op:   Add,
			left: &BinaryExpression{Operator: Subtract, Left: &Identifier{Name: "a"}, Right: &Identifier{Name: "b"}},
		},
		{
			name:      "power right-associative needs parens on left at same precedence",
			op:        Power,
			left:      &BinaryExpression{Operator: Power, Left: &Identifier{Name: "a"}, Right: &Identifier{Name: "b"}},
			wantLeft:  true,
			wantRight: false,
		},
		{
			name:  "power does not need parens on right at same precedence",
			op:    Power,
			right: &BinaryExpression{Operator: Power, Left: &Identifier{Name: "b"}, Right: &Identifier{Name: "c"}},
		},
		{
			name:     "unary as left operand of power needs parens",
			op:       Power,
			left:     &UnaryExpression{Operator: Minus, Operand: &Identifier{Name: "a"}},
			wantLeft: true,
		},
		{
			name: "unary as left operand of non-power never needs parens",
			op:   Multiply,
			left: &UnaryExpression{Operator: Minus, Operand: &Identifier{Name: "a"}},
		},
		{
			name:  "unary as right operand never needs parens, even for power",
			op:    Power,
			right: &UnaryExpression{Operator: Minus, Operand: &Identifier{Name: "a"}},
		},
		{
			name: "atomic operands never need parens",
			op:   Add,
			left: &Identifier{Name: "a"},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if test.left != nil {
				if got := test.op.LeftNeedsParentheses(test.left); got != test.wantLeft {
					t.Errorf("LeftNeedsParentheses = %v, want %v", got, test.wantLeft)
				}
			}
			if test.right != nil {
				if got := test.op.RightNeedsParentheses(test.right); got != test.wantRight {
					t.Errorf("RightNeedsParentheses = %v, want %v", got, test.wantRight)
				}
			}
		})
	}
}

func TestPrecedesUnaryExpression(t *testing.T) {
	for op := Or; op <= Power; op++ {
		want := op == Power
		if got := op.PrecedesUnaryExpression(); got != want {
			t.Errorf("%v.PrecedesUnaryExpression() = %v, want %v", op, got, want)
		}
	}
}

func TestOperatorText(t *testing.T) {
	tests := []struct {
		op   BinaryOperator
		want string
	}{
		{Concat, ".."},
		{Power, "^"},
		{NotEqual, "~="},
		{FloorDivide, "//"},
	}
	for _, test := range tests {
		if got := test.op.ToLuaText(); got != test.want {
			t.Errorf("%v.ToLuaText() = %q, want %q", test.op, got, test.want)
		}
	}
}
