// Copyright 2026 The luadense Authors
// SPDX-License-Identifier: MIT

package luaast

// NumberExpression is implemented by the three numeric literal forms.
type NumberExpression interface {
	Expression
	isNumberExpression()
}

// DecimalNumber is a base-10 float or integer literal, optionally with a
// recorded decimal exponent (`1e10`, `1E10`). Special float values are
// rendered by the generator as the Lua idioms `(0/0)`, `(1/0)`, `(-1/0)`;
// see spec.md §4.3.
type DecimalNumber struct {
	Value     float64
	Exponent  *int // nil if the literal had no explicit exponent
	Uppercase bool // case of the recorded 'e'/'E', ignored if Exponent is nil
}

func (*DecimalNumber) isExpression()       {}
func (*DecimalNumber) isNumberExpression() {}

// HexNumber is a `0x`/`0X` literal over an integer payload, optionally
// with a binary exponent introduced by `p`/`P`.
type HexNumber struct {
	Value         uint64
	XUppercase    bool
	Exponent      *int
	ExponentUpper bool
}

func (*HexNumber) isExpression()       {}
func (*HexNumber) isNumberExpression() {}

// BinaryNumber is a `0b`/`0B` literal, a Lua extension found in some
// dialects in this ecosystem.
type BinaryNumber struct {
	Value      uint64
	BUppercase bool
}

func (*BinaryNumber) isExpression()       {}
func (*BinaryNumber) isNumberExpression() {}
