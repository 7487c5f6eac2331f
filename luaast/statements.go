// Copyright 2026 The luadense Authors
// SPDX-License-Identifier: MIT

package luaast

// Identifier is a Lua name, used both as an expression and as a binder
// (parameter, local variable, loop variable, field name).
type Identifier struct {
	Name string
}

func (*Identifier) isExpression() {}
func (*Identifier) isPrefixExpr() {}

// AssignStatement is `variables = values`.
type AssignStatement struct {
	Variables []Expression // each a PrefixExpression in a well-formed AST
	Values    []Expression
}

func (*AssignStatement) isStatement() {}

// CompoundAssignStatement is the Lua-extension `variable op= value` form.
// Its operator's textual rendering is delegated to CompoundOperator
// (spec.md's Open Question: the form isn't fixed by the core spec).
type CompoundAssignStatement struct {
	Variable Expression
	Operator CompoundOperator
	Value    Expression
}

func (*CompoundAssignStatement) isStatement() {}

// LocalAssignStatement is `local names [= values]`.
type LocalAssignStatement struct {
	Names  []*Identifier
	Values []Expression // nil/empty means no "= values" clause
}

func (*LocalAssignStatement) isStatement() {}

// LocalFunctionStatement is `local function name(params) block end`.
type LocalFunctionStatement struct {
	Name       string
	Parameters []*Identifier
	IsVariadic bool
	Block      *Block
}

func (*LocalFunctionStatement) isStatement() {}

// FunctionName is the dotted/method name of a FunctionStatement:
// `base.field1.field2[:method]`.
type FunctionName struct {
	Base       *Identifier
	FieldNames []*Identifier
	Method     *Identifier // nil if not a method definition
}

// FunctionStatement is `function name(params) block end`.
type FunctionStatement struct {
	Name       FunctionName
	Parameters []*Identifier
	IsVariadic bool
	Block      *Block
}

func (*FunctionStatement) isStatement() {}

// DoStatement is `do block end`.
type DoStatement struct {
	Block *Block
}

func (*DoStatement) isStatement() {}

// WhileStatement is `while condition do block end`.
type WhileStatement struct {
	Condition Expression
	Block     *Block
}

func (*WhileStatement) isStatement() {}

// RepeatStatement is `repeat block until condition`.
type RepeatStatement struct {
	Block     *Block
	Condition Expression
}

func (*RepeatStatement) isStatement() {}

// NumericForStatement is `for identifier = start, stop [, step] do block end`.
type NumericForStatement struct {
	Identifier *Identifier
	Start      Expression
	Stop       Expression
	Step       Expression // nil if not present
	Block      *Block
}

func (*NumericForStatement) isStatement() {}

// GenericForStatement is `for identifiers in expressions do block end`.
type GenericForStatement struct {
	Identifiers []*Identifier
	Expressions []Expression
	Block       *Block
}

func (*GenericForStatement) isStatement() {}

// IfBranch is one `if`/`elseif` arm of an IfStatement.
type IfBranch struct {
	Condition Expression
	Block     *Block
}

// IfStatement is `if ... then ... [elseif ... then ...]... [else ...] end`.
type IfStatement struct {
	Branches []IfBranch // first branch's keyword is "if", the rest "elseif"
	Else     *Block     // nil if there is no else clause
}

func (*IfStatement) isStatement() {}

// ExpressionStatement is a bare function call used as a statement.
type ExpressionStatement struct {
	Call *FunctionCall
}

func (*ExpressionStatement) isStatement() {}
