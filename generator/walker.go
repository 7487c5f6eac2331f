// Copyright 2026 The luadense Authors
// SPDX-License-Identifier: MIT

package generator

import (
	"fmt"

	"github.com/luadense/luadense/luaast"
)

func unsupportedNodeMessage(what string, node any) string {
	return fmt.Sprintf("generator: unsupported %s node %T", what, node)
}

// WriteBlock emits b's statements followed by its optional last
// statement. A call statement is itself a prefix expression at the
// grammar level, so Lua's statement parser will greedily extend it
// with a following '(' as a further call rather than starting a new
// statement; a ';' is emitted between two such statements to block
// that continuation.
func (g *Generator) WriteBlock(b *luaast.Block) {
	if b == nil {
		return
	}
	for i, s := range b.Statements {
		if i > 0 && statementEndsWithPrefixSuffix(b.Statements[i-1]) && statementStartsWithParen(s) {
			g.pushChar(';')
		}
		g.WriteStatement(s)
	}
	if b.Last != nil {
		g.WriteLastStatement(b.Last)
	}
}

// statementEndsWithPrefixSuffix reports whether s is itself a call
// statement, making its printed form a prefix expression that Lua's
// parser would try to extend with a directly-following '('.
func statementEndsWithPrefixSuffix(s luaast.Statement) bool {
	_, ok := s.(*luaast.ExpressionStatement)
	return ok
}

// statementStartsWithParen reports whether s's printed form begins
// with '('. Only a call statement can: its leftmost prefix expression
// is a parenthesized expression, e.g. the statement "(f)()".
func statementStartsWithParen(s luaast.Statement) bool {
	es, ok := s.(*luaast.ExpressionStatement)
	if !ok || es.Call == nil {
		return false
	}
	return leftmostPrefixIsParen(es.Call.Prefix)
}

func leftmostPrefixIsParen(p luaast.PrefixExpression) bool {
	switch p := p.(type) {
	case *luaast.ParenExpression:
		return true
	case *luaast.FunctionCall:
		return leftmostPrefixIsParen(p.Prefix)
	case *luaast.FieldExpression:
		return leftmostPrefixIsParen(p.Prefix)
	case *luaast.IndexExpression:
		return leftmostPrefixIsParen(p.Prefix)
	default:
		return false
	}
}

// WriteStatement emits a single statement.
func (g *Generator) WriteStatement(s luaast.Statement) {
	switch s := s.(type) {
	case *luaast.AssignStatement:
		g.writeExprList(s.Variables)
		g.pushChar('=')
		g.writeExprList(s.Values)
	case *luaast.CompoundAssignStatement:
		g.WriteExpression(s.Variable)
		g.pushStr(s.Operator.ToLuaText())
		g.WriteExpression(s.Value)
	case *luaast.LocalAssignStatement:
		g.pushStr("local")
		g.writeIdentList(s.Names)
		if len(s.Values) > 0 {
			g.pushChar('=')
			g.writeExprList(s.Values)
		}
	case *luaast.LocalFunctionStatement:
		g.pushStr("local")
		g.pushStr("function")
		g.pushStr(s.Name)
		g.pushChar('(')
		g.writeParameterList(s.Parameters, s.IsVariadic)
		g.pushChar(')')
		g.WriteBlock(s.Block)
		g.pushStr("end")
	case *luaast.FunctionStatement:
		g.pushStr("function")
		g.pushStr(s.Name.Base.Name)
		for _, f := range s.Name.FieldNames {
			g.pushChar('.')
			g.pushStr(f.Name)
		}
		if s.Name.Method != nil {
			g.pushChar(':')
			g.pushStr(s.Name.Method.Name)
		}
		g.pushChar('(')
		g.writeParameterList(s.Parameters, s.IsVariadic)
		g.pushChar(')')
		g.WriteBlock(s.Block)
		g.pushStr("end")
	case *luaast.DoStatement:
		g.pushStr("do")
		g.WriteBlock(s.Block)
		g.pushStr("end")
	case *luaast.WhileStatement:
		g.pushStr("while")
		g.WriteExpression(s.Condition)
		g.pushStr("do")
		g.WriteBlock(s.Block)
		g.pushStr("end")
	case *luaast.RepeatStatement:
		g.pushStr("repeat")
		g.WriteBlock(s.Block)
		g.pushStr("until")
		g.WriteExpression(s.Condition)
	case *luaast.NumericForStatement:
		g.pushStr("for")
		g.pushStr(s.Identifier.Name)
		g.pushChar('=')
		g.WriteExpression(s.Start)
		g.pushChar(',')
		g.WriteExpression(s.Stop)
		if s.Step != nil {
			g.pushChar(',')
			g.WriteExpression(s.Step)
		}
		g.pushStr("do")
		g.WriteBlock(s.Block)
		g.pushStr("end")
	case *luaast.GenericForStatement:
		g.pushStr("for")
		g.writeIdentList(s.Identifiers)
		g.pushStr("in")
		g.writeExprList(s.Expressions)
		g.pushStr("do")
		g.WriteBlock(s.Block)
		g.pushStr("end")
	case *luaast.IfStatement:
		for i, branch := range s.Branches {
			if i == 0 {
				g.pushStr("if")
			} else {
				g.pushStr("elseif")
			}
			g.WriteExpression(branch.Condition)
			g.pushStr("then")
			g.WriteBlock(branch.Block)
		}
		if s.Else != nil {
			g.pushStr("else")
			g.WriteBlock(s.Else)
		}
		g.pushStr("end")
	case *luaast.ExpressionStatement:
		g.WriteExpression(s.Call)
	default:
		panic(unsupportedNodeMessage("statement", s))
	}
}

// WriteLastStatement emits a block's terminating break, continue, or
// return statement.
func (g *Generator) WriteLastStatement(s luaast.LastStatement) {
	switch s := s.(type) {
	case luaast.BreakStatement:
		g.pushStr("break")
	case luaast.ContinueStatement:
		g.pushStr("continue")
	case luaast.ReturnStatement:
		g.pushStr("return")
		g.writeExprList(s.Expressions)
	default:
		panic(unsupportedNodeMessage("last statement", s))
	}
}

// WriteExpression emits a single expression, inserting the
// parentheses its context requires.
func (g *Generator) WriteExpression(e luaast.Expression) {
	switch e := e.(type) {
	case luaast.NilExpression:
		g.pushStr("nil")
	case luaast.TrueExpression:
		g.pushStr("true")
	case luaast.FalseExpression:
		g.pushStr("false")
	case luaast.VarArgExpression:
		g.pushWithBreakPredicate("...", breakVarArgs)
	case *luaast.DecimalNumber:
		g.writeDecimalNumber(e)
	case *luaast.HexNumber:
		g.writeHexNumber(e)
	case *luaast.BinaryNumber:
		g.writeBinaryNumber(e)
	case *luaast.StringExpression:
		g.writeStringExpression(e)
	case *luaast.Identifier:
		g.pushStr(e.Name)
	case *luaast.BinaryExpression:
		g.writeBinaryExpression(e)
	case *luaast.UnaryExpression:
		g.writeUnaryExpression(e)
	case *luaast.ParenExpression:
		g.pushChar('(')
		g.WriteExpression(e.Inner)
		g.pushChar(')')
	case *luaast.FunctionExpression:
		g.pushStr("function")
		g.pushChar('(')
		g.writeParameterList(e.Parameters, e.IsVariadic)
		g.pushChar(')')
		g.WriteBlock(e.Block)
		g.pushStr("end")
	case *luaast.FunctionCall:
		g.writeFunctionCall(e)
	case *luaast.FieldExpression:
		g.WriteExpression(e.Prefix)
		g.pushChar('.')
		g.pushStr(e.Field.Name)
	case *luaast.IndexExpression:
		g.WriteExpression(e.Prefix)
		g.pushChar('[')
		g.WriteExpression(e.Index)
		g.pushChar(']')
	case *luaast.IfExpression:
		g.writeIfExpression(e)
	case *luaast.TableExpression:
		g.writeTableExpression(e)
	default:
		panic(unsupportedNodeMessage("expression", e))
	}
}

func (g *Generator) writeBinaryExpression(e *luaast.BinaryExpression) {
	op := e.Operator
	if op.LeftNeedsParentheses(e.Left) {
		g.pushChar('(')
		g.WriteExpression(e.Left)
		g.pushChar(')')
	} else {
		g.WriteExpression(e.Left)
	}

	if op == luaast.Concat {
		g.pushWithBreakPredicate(op.ToLuaText(), breakConcat)
	} else {
		g.pushStr(op.ToLuaText())
	}

	if op.RightNeedsParentheses(e.Right) {
		g.pushChar('(')
		g.WriteExpression(e.Right)
		g.pushChar(')')
	} else {
		g.WriteExpression(e.Right)
	}
}

func (g *Generator) writeUnaryExpression(e *luaast.UnaryExpression) {
	if e.Operator == luaast.Minus {
		g.pushWithBreakPredicate("-", breakMinus)
	} else {
		g.pushStr(e.Operator.ToLuaText())
	}

	if bin, ok := e.Operand.(*luaast.BinaryExpression); ok && !bin.Operator.PrecedesUnaryExpression() {
		g.pushChar('(')
		g.WriteExpression(e.Operand)
		g.pushChar(')')
		return
	}
	g.WriteExpression(e.Operand)
}

func (g *Generator) writeFunctionCall(e *luaast.FunctionCall) {
	g.WriteExpression(e.Prefix)
	if e.Method != nil {
		g.pushChar(':')
		g.pushStr(e.Method.Name)
	}
	g.writeArguments(e.Arguments)
}

func (g *Generator) writeArguments(args luaast.Arguments) {
	switch args := args.(type) {
	case luaast.TupleArguments:
		g.mergeChar('(')
		g.writeExprList(args.Values)
		g.pushChar(')')
	case luaast.StringArguments:
		g.writeStringExpression(args.String)
	case luaast.TableArguments:
		g.writeTableExpression(args.Table)
	default:
		panic(unsupportedNodeMessage("arguments", args))
	}
}

func (g *Generator) writeIfExpression(e *luaast.IfExpression) {
	g.pushStr("if")
	g.WriteExpression(e.Condition)
	g.pushStr("then")
	g.WriteExpression(e.Result)
	for _, branch := range e.Branches {
		g.pushStr("elseif")
		g.WriteExpression(branch.Condition)
		g.pushStr("then")
		g.WriteExpression(branch.Result)
	}
	g.pushStr("else")
	g.WriteExpression(e.ElseResult)
}

func (g *Generator) writeTableExpression(t *luaast.TableExpression) {
	g.pushChar('{')
	writeList(g, t.Entries, g.writeTableEntry)
	g.pushChar('}')
}

func (g *Generator) writeTableEntry(entry luaast.TableEntry) {
	switch entry := entry.(type) {
	case luaast.FieldEntry:
		g.pushStr(entry.Field.Name)
		g.pushChar('=')
		g.WriteExpression(entry.Value)
	case luaast.IndexEntry:
		g.pushChar('[')
		g.WriteExpression(entry.Key)
		g.pushChar(']')
		g.pushChar('=')
		g.WriteExpression(entry.Value)
	case luaast.PositionalEntry:
		g.WriteExpression(entry.Value)
	default:
		panic(unsupportedNodeMessage("table entry", entry))
	}
}

// writeParameterList emits a comma-separated identifier list followed,
// if variadic, by a leading comma (only when params is non-empty) and
// "...".
func (g *Generator) writeParameterList(params []*luaast.Identifier, variadic bool) {
	writeList(g, params, func(p *luaast.Identifier) { g.pushStr(p.Name) })
	if variadic {
		if len(params) > 0 {
			g.pushChar(',')
		}
		g.pushWithBreakPredicate("...", breakVarArgs)
	}
}

func (g *Generator) writeExprList(exprs []luaast.Expression) {
	writeList(g, exprs, g.WriteExpression)
}

func (g *Generator) writeIdentList(idents []*luaast.Identifier) {
	writeList(g, idents, func(id *luaast.Identifier) { g.pushStr(id.Name) })
}

// writeList emits each of items, separated by ',', via emit. It is the
// shared shape behind every comma-separated construct the walker emits:
// variable/value lists, parameter lists, identifier lists, table entries,
// and call-argument tuples, mirroring the source generator's single
// for-each-and-between traversal helper used at every one of those call
// sites instead of a repeated "emit separator unless first" loop.
func writeList[T any](g *Generator, items []T, emit func(T)) {
	for i, item := range items {
		if i > 0 {
			g.pushChar(',')
		}
		emit(item)
	}
}
