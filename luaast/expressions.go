// Copyright 2026 The luadense Authors
// SPDX-License-Identifier: MIT

package luaast

// Expression is implemented by every Lua expression variant.
type Expression interface {
	isExpression()
}

// PrefixExpression is the subset of expressions that can be followed by
// `(args)`, `.field`, `[index]`, or `:method(args)`: identifiers,
// parenthesized expressions, calls, field accesses, and index accesses.
// It exists so the walker can detect the `statement)(statement` call-chain
// hazard described in spec.md §4.3.
type PrefixExpression interface {
	Expression
	isPrefixExpr()
}

// NilExpression is the `nil` literal.
type NilExpression struct{}

func (NilExpression) isExpression() {}

// TrueExpression is the `true` literal.
type TrueExpression struct{}

func (TrueExpression) isExpression() {}

// FalseExpression is the `false` literal.
type FalseExpression struct{}

func (FalseExpression) isExpression() {}

// VarArgExpression is `...`.
type VarArgExpression struct{}

func (VarArgExpression) isExpression() {}

// StringExpression wraps a raw string value. Escaping and long-bracket
// selection are out of scope for this module (spec.md §1): Raw, if set,
// is treated as already being valid, self-delimited Lua source text
// (typically a pre-selected long-bracket literal) and is emitted
// verbatim; otherwise the generator quotes Value itself.
type StringExpression struct {
	Value string
	Raw   string // pre-rendered long-bracket form, e.g. "[[abc]]"; empty if unset
}

func (*StringExpression) isExpression() {}

// BinaryExpression is `left operator right`.
type BinaryExpression struct {
	Operator BinaryOperator
	Left     Expression
	Right    Expression
}

func (*BinaryExpression) isExpression() {}

// UnaryExpression is `operator operand`.
type UnaryExpression struct {
	Operator UnaryOperator
	Operand  Expression
}

func (*UnaryExpression) isExpression() {}

// ParenExpression is `(inner)`, an explicit parenthesization that also
// truncates a call/varargs expression to exactly one value.
type ParenExpression struct {
	Inner Expression
}

func (*ParenExpression) isExpression() {}
func (*ParenExpression) isPrefixExpr() {}

// FunctionExpression is an anonymous `function(params) block end`.
type FunctionExpression struct {
	Parameters []*Identifier
	IsVariadic bool
	Block      *Block
}

func (*FunctionExpression) isExpression() {}

// Arguments is implemented by the three call-argument forms: a
// parenthesized tuple, a single string literal, or a single table
// constructor.
type Arguments interface {
	isArguments()
}

// TupleArguments is `(expr, expr, ...)`.
type TupleArguments struct {
	Values []Expression
}

func (TupleArguments) isArguments() {}

// StringArguments is a call with a single string-literal argument and no
// parentheses, e.g. `print "hi"`.
type StringArguments struct {
	String *StringExpression
}

func (StringArguments) isArguments() {}

// TableArguments is a call with a single table-constructor argument and
// no parentheses, e.g. `setmetatable{}`.
type TableArguments struct {
	Table *TableExpression
}

func (TableArguments) isArguments() {}

// FunctionCall is `prefix[:method]arguments`.
type FunctionCall struct {
	Prefix    PrefixExpression
	Method    *Identifier // nil for a plain call, set for prefix:method(...)
	Arguments Arguments
}

func (*FunctionCall) isExpression() {}
func (*FunctionCall) isPrefixExpr() {}

// FieldExpression is `prefix.field`.
type FieldExpression struct {
	Prefix PrefixExpression
	Field  *Identifier
}

func (*FieldExpression) isExpression() {}
func (*FieldExpression) isPrefixExpr() {}

// IndexExpression is `prefix[index]`.
type IndexExpression struct {
	Prefix PrefixExpression
	Index  Expression
}

func (*IndexExpression) isExpression() {}
func (*IndexExpression) isPrefixExpr() {}

// IfBranchExpression is one `elseif cond then result` arm of an
// IfExpression.
type IfBranchExpression struct {
	Condition Expression
	Result    Expression
}

// IfExpression is the Lua-extension conditional expression
// `if cond then result [elseif cond then result]... else result`.
type IfExpression struct {
	Condition  Expression
	Result     Expression
	Branches   []IfBranchExpression
	ElseResult Expression
}

func (*IfExpression) isExpression() {}

// TableExpression is `{ entries }`.
type TableExpression struct {
	Entries []TableEntry
}

func (*TableExpression) isExpression() {}
