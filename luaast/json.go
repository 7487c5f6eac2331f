// Copyright 2026 The luadense Authors
// SPDX-License-Identifier: MIT

package luaast

import (
	"encoding/json"
	"fmt"

	jsonv2 "github.com/go-json-experiment/json"
)

// This file gives the AST a JSON wire format, the concrete shape of "the
// external AST module" (spec.md §6) used for I/O by the luadense CLI and
// the format HTTP service (SPEC_FULL.md §4.7). Encoding goes through
// github.com/go-json-experiment/json, mirroring the jsonv2/jsontext
// pairing the teacher repository uses in zbstore.Nullable; each
// polymorphic node is written as a small envelope carrying a "kind"
// discriminator plus its own fields, with child nodes recursively
// captured as json.RawMessage.
//
// There is deliberately no generic reflection-based encoding here: Go
// interfaces (Statement, Expression, ...) have no JSON shape of their
// own, so every type that holds one is given an explicit MarshalJSON/
// UnmarshalJSON pair that dispatches on "kind".

// MarshalJSON encodes the block as {"statements": [...], "last": ... | null}.
func (b *Block) MarshalJSON() ([]byte, error) {
	if b == nil {
		return []byte("null"), nil
	}
	stmts := make([]json.RawMessage, len(b.Statements))
	for i, s := range b.Statements {
		raw, err := marshalStatement(s)
		if err != nil {
			return nil, err
		}
		stmts[i] = raw
	}
	var last json.RawMessage
	if b.Last != nil {
		raw, err := marshalLastStatement(b.Last)
		if err != nil {
			return nil, err
		}
		last = raw
	} else {
		last = json.RawMessage("null")
	}
	return jsonv2.Marshal(struct {
		Statements []json.RawMessage `json:"statements"`
		Last       json.RawMessage   `json:"last"`
	}{stmts, last})
}

// UnmarshalJSON decodes a block encoded by MarshalJSON.
func (b *Block) UnmarshalJSON(data []byte) error {
	var wire struct {
		Statements []json.RawMessage `json:"statements"`
		Last       json.RawMessage   `json:"last"`
	}
	if err := jsonv2.Unmarshal(data, &wire); err != nil {
		return fmt.Errorf("unmarshal lua block: %w", err)
	}
	stmts := make([]Statement, len(wire.Statements))
	for i, raw := range wire.Statements {
		s, err := unmarshalStatement(raw)
		if err != nil {
			return fmt.Errorf("unmarshal lua block: statement %d: %w", i, err)
		}
		stmts[i] = s
	}
	b.Statements = stmts
	b.Last = nil
	if len(wire.Last) > 0 && string(wire.Last) != "null" {
		last, err := unmarshalLastStatement(wire.Last)
		if err != nil {
			return fmt.Errorf("unmarshal lua block: last statement: %w", err)
		}
		b.Last = last
	}
	return nil
}

func marshalExprList(exprs []Expression) ([]json.RawMessage, error) {
	out := make([]json.RawMessage, len(exprs))
	for i, e := range exprs {
		raw, err := marshalExpression(e)
		if err != nil {
			return nil, err
		}
		out[i] = raw
	}
	return out, nil
}

func unmarshalExprList(raws []json.RawMessage) ([]Expression, error) {
	out := make([]Expression, len(raws))
	for i, raw := range raws {
		e, err := unmarshalExpression(raw)
		if err != nil {
			return nil, fmt.Errorf("expression %d: %w", i, err)
		}
		out[i] = e
	}
	return out, nil
}

func marshalIdentList(idents []*Identifier) []string {
	out := make([]string, len(idents))
	for i, id := range idents {
		out[i] = id.Name
	}
	return out
}

func unmarshalIdentList(names []string) []*Identifier {
	out := make([]*Identifier, len(names))
	for i, n := range names {
		out[i] = &Identifier{Name: n}
	}
	return out
}

// --- Statement ---

func marshalStatement(s Statement) (json.RawMessage, error) {
	switch s := s.(type) {
	case *AssignStatement:
		vars, err := marshalExprList(s.Variables)
		if err != nil {
			return nil, err
		}
		vals, err := marshalExprList(s.Values)
		if err != nil {
			return nil, err
		}
		return jsonv2.Marshal(struct {
			Kind      string            `json:"kind"`
			Variables []json.RawMessage `json:"variables"`
			Values    []json.RawMessage `json:"values"`
		}{"assign", vars, vals})
	case *CompoundAssignStatement:
		variable, err := marshalExpression(s.Variable)
		if err != nil {
			return nil, err
		}
		value, err := marshalExpression(s.Value)
		if err != nil {
			return nil, err
		}
		return jsonv2.Marshal(struct {
			Kind     string          `json:"kind"`
			Variable json.RawMessage `json:"variable"`
			Operator string          `json:"operator"`
			Value    json.RawMessage `json:"value"`
		}{"compoundassign", variable, s.Operator.ToLuaText(), value})
	case *LocalAssignStatement:
		vals, err := marshalExprList(s.Values)
		if err != nil {
			return nil, err
		}
		return jsonv2.Marshal(struct {
			Kind   string            `json:"kind"`
			Names  []string          `json:"names"`
			Values []json.RawMessage `json:"values"`
		}{"localassign", marshalIdentList(s.Names), vals})
	case *LocalFunctionStatement:
		block, err := s.Block.MarshalJSON()
		if err != nil {
			return nil, err
		}
		return jsonv2.Marshal(struct {
			Kind       string          `json:"kind"`
			Name       string          `json:"name"`
			Parameters []string        `json:"parameters"`
			Variadic   bool            `json:"variadic"`
			Block      json.RawMessage `json:"block"`
		}{"localfunction", s.Name, marshalIdentList(s.Parameters), s.IsVariadic, block})
	case *FunctionStatement:
		block, err := s.Block.MarshalJSON()
		if err != nil {
			return nil, err
		}
		var method string
		if s.Name.Method != nil {
			method = s.Name.Method.Name
		}
		return jsonv2.Marshal(struct {
			Kind       string          `json:"kind"`
			Base       string          `json:"base"`
			Fields     []string        `json:"fields"`
			Method     string          `json:"method,omitempty"`
			Parameters []string        `json:"parameters"`
			Variadic   bool            `json:"variadic"`
			Block      json.RawMessage `json:"block"`
		}{"function", s.Name.Base.Name, marshalIdentList(s.Name.FieldNames), method, marshalIdentList(s.Parameters), s.IsVariadic, block})
	case *DoStatement:
		block, err := s.Block.MarshalJSON()
		if err != nil {
			return nil, err
		}
		return jsonv2.Marshal(struct {
			Kind  string          `json:"kind"`
			Block json.RawMessage `json:"block"`
		}{"do", block})
	case *WhileStatement:
		cond, err := marshalExpression(s.Condition)
		if err != nil {
			return nil, err
		}
		block, err := s.Block.MarshalJSON()
		if err != nil {
			return nil, err
		}
		return jsonv2.Marshal(struct {
			Kind      string          `json:"kind"`
			Condition json.RawMessage `json:"condition"`
			Block     json.RawMessage `json:"block"`
		}{"while", cond, block})
	case *RepeatStatement:
		cond, err := marshalExpression(s.Condition)
		if err != nil {
			return nil, err
		}
		block, err := s.Block.MarshalJSON()
		if err != nil {
			return nil, err
		}
		return jsonv2.Marshal(struct {
			Kind      string          `json:"kind"`
			Block     json.RawMessage `json:"block"`
			Condition json.RawMessage `json:"condition"`
		}{"repeat", block, cond})
	case *NumericForStatement:
		start, err := marshalExpression(s.Start)
		if err != nil {
			return nil, err
		}
		stop, err := marshalExpression(s.Stop)
		if err != nil {
			return nil, err
		}
		var step json.RawMessage
		if s.Step != nil {
			step, err = marshalExpression(s.Step)
			if err != nil {
				return nil, err
			}
		}
		block, err := s.Block.MarshalJSON()
		if err != nil {
			return nil, err
		}
		return jsonv2.Marshal(struct {
			Kind       string          `json:"kind"`
			Identifier string          `json:"identifier"`
			Start      json.RawMessage `json:"start"`
			Stop       json.RawMessage `json:"stop"`
			Step       json.RawMessage `json:"step,omitempty"`
			Block      json.RawMessage `json:"block"`
		}{"numericfor", s.Identifier.Name, start, stop, step, block})
	case *GenericForStatement:
		exprs, err := marshalExprList(s.Expressions)
		if err != nil {
			return nil, err
		}
		block, err := s.Block.MarshalJSON()
		if err != nil {
			return nil, err
		}
		return jsonv2.Marshal(struct {
			Kind        string            `json:"kind"`
			Identifiers []string          `json:"identifiers"`
			Expressions []json.RawMessage `json:"expressions"`
			Block       json.RawMessage   `json:"block"`
		}{"genericfor", marshalIdentList(s.Identifiers), exprs, block})
	case *IfStatement:
		branches := make([]json.RawMessage, len(s.Branches))
		for i, br := range s.Branches {
			cond, err := marshalExpression(br.Condition)
			if err != nil {
				return nil, err
			}
			block, err := br.Block.MarshalJSON()
			if err != nil {
				return nil, err
			}
			raw, err := jsonv2.Marshal(struct {
				Condition json.RawMessage `json:"condition"`
				Block     json.RawMessage `json:"block"`
			}{cond, block})
			if err != nil {
				return nil, err
			}
			branches[i] = raw
		}
		var elseBlock json.RawMessage
		if s.Else != nil {
			raw, err := s.Else.MarshalJSON()
			if err != nil {
				return nil, err
			}
			elseBlock = raw
		}
		return jsonv2.Marshal(struct {
			Kind     string            `json:"kind"`
			Branches []json.RawMessage `json:"branches"`
			Else     json.RawMessage   `json:"else,omitempty"`
		}{"if", branches, elseBlock})
	case *ExpressionStatement:
		call, err := marshalExpression(s.Call)
		if err != nil {
			return nil, err
		}
		return jsonv2.Marshal(struct {
			Kind string          `json:"kind"`
			Call json.RawMessage `json:"call"`
		}{"exprstat", call})
	default:
		return nil, fmt.Errorf("marshal lua statement: unsupported type %T", s)
	}
}

func unmarshalStatement(data json.RawMessage) (Statement, error) {
	var peek struct {
		Kind string `json:"kind"`
	}
	if err := jsonv2.Unmarshal(data, &peek); err != nil {
		return nil, err
	}
	switch peek.Kind {
	case "assign":
		var wire struct {
			Variables []json.RawMessage `json:"variables"`
			Values    []json.RawMessage `json:"values"`
		}
		if err := jsonv2.Unmarshal(data, &wire); err != nil {
			return nil, err
		}
		vars, err := unmarshalExprList(wire.Variables)
		if err != nil {
			return nil, err
		}
		vals, err := unmarshalExprList(wire.Values)
		if err != nil {
			return nil, err
		}
		return &AssignStatement{Variables: vars, Values: vals}, nil
	case "compoundassign":
		var wire struct {
			Variable json.RawMessage `json:"variable"`
			Operator string          `json:"operator"`
			Value    json.RawMessage `json:"value"`
		}
		if err := jsonv2.Unmarshal(data, &wire); err != nil {
			return nil, err
		}
		variable, err := unmarshalExpression(wire.Variable)
		if err != nil {
			return nil, err
		}
		value, err := unmarshalExpression(wire.Value)
		if err != nil {
			return nil, err
		}
		op, ok := compoundOperatorByText[wire.Operator]
		if !ok {
			return nil, fmt.Errorf("unknown compound operator %q", wire.Operator)
		}
		return &CompoundAssignStatement{Variable: variable, Operator: op, Value: value}, nil
	case "localassign":
		var wire struct {
			Names  []string          `json:"names"`
			Values []json.RawMessage `json:"values"`
		}
		if err := jsonv2.Unmarshal(data, &wire); err != nil {
			return nil, err
		}
		vals, err := unmarshalExprList(wire.Values)
		if err != nil {
			return nil, err
		}
		return &LocalAssignStatement{Names: unmarshalIdentList(wire.Names), Values: vals}, nil
	case "localfunction":
		var wire struct {
			Name       string          `json:"name"`
			Parameters []string        `json:"parameters"`
			Variadic   bool            `json:"variadic"`
			Block      json.RawMessage `json:"block"`
		}
		if err := jsonv2.Unmarshal(data, &wire); err != nil {
			return nil, err
		}
		block := new(Block)
		if err := block.UnmarshalJSON(wire.Block); err != nil {
			return nil, err
		}
		return &LocalFunctionStatement{
			Name:       wire.Name,
			Parameters: unmarshalIdentList(wire.Parameters),
			IsVariadic: wire.Variadic,
			Block:      block,
		}, nil
	case "function":
		var wire struct {
			Base       string          `json:"base"`
			Fields     []string        `json:"fields"`
			Method     string          `json:"method"`
			Parameters []string        `json:"parameters"`
			Variadic   bool            `json:"variadic"`
			Block      json.RawMessage `json:"block"`
		}
		if err := jsonv2.Unmarshal(data, &wire); err != nil {
			return nil, err
		}
		block := new(Block)
		if err := block.UnmarshalJSON(wire.Block); err != nil {
			return nil, err
		}
		name := FunctionName{
			Base:       &Identifier{Name: wire.Base},
			FieldNames: unmarshalIdentList(wire.Fields),
		}
		if wire.Method != "" {
			name.Method = &Identifier{Name: wire.Method}
		}
		return &FunctionStatement{
			Name:       name,
			Parameters: unmarshalIdentList(wire.Parameters),
			IsVariadic: wire.Variadic,
			Block:      block,
		}, nil
	case "do":
		var wire struct {
			Block json.RawMessage `json:"block"`
		}
		if err := jsonv2.Unmarshal(data, &wire); err != nil {
			return nil, err
		}
		block := new(Block)
		if err := block.UnmarshalJSON(wire.Block); err != nil {
			return nil, err
		}
		return &DoStatement{Block: block}, nil
	case "while":
		var wire struct {
			Condition json.RawMessage `json:"condition"`
			Block     json.RawMessage `json:"block"`
		}
		if err := jsonv2.Unmarshal(data, &wire); err != nil {
			return nil, err
		}
		cond, err := unmarshalExpression(wire.Condition)
		if err != nil {
			return nil, err
		}
		block := new(Block)
		if err := block.UnmarshalJSON(wire.Block); err != nil {
			return nil, err
		}
		return &WhileStatement{Condition: cond, Block: block}, nil
	case "repeat":
		var wire struct {
			Block     json.RawMessage `json:"block"`
			Condition json.RawMessage `json:"condition"`
		}
		if err := jsonv2.Unmarshal(data, &wire); err != nil {
			return nil, err
		}
		block := new(Block)
		if err := block.UnmarshalJSON(wire.Block); err != nil {
			return nil, err
		}
		cond, err := unmarshalExpression(wire.Condition)
		if err != nil {
			return nil, err
		}
		return &RepeatStatement{Block: block, Condition: cond}, nil
	case "numericfor":
		var wire struct {
			Identifier string          `json:"identifier"`
			Start      json.RawMessage `json:"start"`
			Stop       json.RawMessage `json:"stop"`
			Step       json.RawMessage `json:"step"`
			Block      json.RawMessage `json:"block"`
		}
		if err := jsonv2.Unmarshal(data, &wire); err != nil {
			return nil, err
		}
		start, err := unmarshalExpression(wire.Start)
		if err != nil {
			return nil, err
		}
		stop, err := unmarshalExpression(wire.Stop)
		if err != nil {
			return nil, err
		}
		var step Expression
		if len(wire.Step) > 0 && string(wire.Step) != "null" {
			step, err = unmarshalExpression(wire.Step)
			if err != nil {
				return nil, err
			}
		}
		block := new(Block)
		if err := block.UnmarshalJSON(wire.Block); err != nil {
			return nil, err
		}
		return &NumericForStatement{
			Identifier: &Identifier{Name: wire.Identifier},
			Start:      start,
			Stop:       stop,
			Step:       step,
			Block:      block,
		}, nil
	case "genericfor":
		var wire struct {
			Identifiers []string          `json:"identifiers"`
			Expressions []json.RawMessage `json:"expressions"`
			Block       json.RawMessage   `json:"block"`
		}
		if err := jsonv2.Unmarshal(data, &wire); err != nil {
			return nil, err
		}
		exprs, err := unmarshalExprList(wire.Expressions)
		if err != nil {
			return nil, err
		}
		block := new(Block)
		if err := block.UnmarshalJSON(wire.Block); err != nil {
			return nil, err
		}
		return &GenericForStatement{
			Identifiers: unmarshalIdentList(wire.Identifiers),
			Expressions: exprs,
			Block:       block,
		}, nil
	case "if":
		var wire struct {
			Branches []json.RawMessage `json:"branches"`
			Else     json.RawMessage   `json:"else"`
		}
		if err := jsonv2.Unmarshal(data, &wire); err != nil {
			return nil, err
		}
		branches := make([]IfBranch, len(wire.Branches))
		for i, raw := range wire.Branches {
			var branchWire struct {
				Condition json.RawMessage `json:"condition"`
				Block     json.RawMessage `json:"block"`
			}
			if err := jsonv2.Unmarshal(raw, &branchWire); err != nil {
				return nil, err
			}
			cond, err := unmarshalExpression(branchWire.Condition)
			if err != nil {
				return nil, err
			}
			block := new(Block)
			if err := block.UnmarshalJSON(branchWire.Block); err != nil {
				return nil, err
			}
			branches[i] = IfBranch{Condition: cond, Block: block}
		}
		var elseBlock *Block
		if len(wire.Else) > 0 && string(wire.Else) != "null" {
			elseBlock = new(Block)
			if err := elseBlock.UnmarshalJSON(wire.Else); err != nil {
				return nil, err
			}
		}
		return &IfStatement{Branches: branches, Else: elseBlock}, nil
	case "exprstat":
		var wire struct {
			Call json.RawMessage `json:"call"`
		}
		if err := jsonv2.Unmarshal(data, &wire); err != nil {
			return nil, err
		}
		call, err := unmarshalExpression(wire.Call)
		if err != nil {
			return nil, err
		}
		fc, ok := call.(*FunctionCall)
		if !ok {
			return nil, fmt.Errorf("exprstat call is %T, not a function call", call)
		}
		return &ExpressionStatement{Call: fc}, nil
	default:
		return nil, fmt.Errorf("unmarshal lua statement: unknown kind %q", peek.Kind)
	}
}

// --- LastStatement ---

func marshalLastStatement(s LastStatement) (json.RawMessage, error) {
	switch s := s.(type) {
	case BreakStatement:
		return jsonv2.Marshal(struct {
			Kind string `json:"kind"`
		}{"break"})
	case ContinueStatement:
		return jsonv2.Marshal(struct {
			Kind string `json:"kind"`
		}{"continue"})
	case ReturnStatement:
		exprs, err := marshalExprList(s.Expressions)
		if err != nil {
			return nil, err
		}
		return jsonv2.Marshal(struct {
			Kind        string            `json:"kind"`
			Expressions []json.RawMessage `json:"expressions"`
		}{"return", exprs})
	default:
		return nil, fmt.Errorf("marshal lua last statement: unsupported type %T", s)
	}
}

func unmarshalLastStatement(data json.RawMessage) (LastStatement, error) {
	var peek struct {
		Kind string `json:"kind"`
	}
	if err := jsonv2.Unmarshal(data, &peek); err != nil {
		return nil, err
	}
	switch peek.Kind {
	case "break":
		return BreakStatement{}, nil
	case "continue":
		return ContinueStatement{}, nil
	case "return":
		var wire struct {
			Expressions []json.RawMessage `json:"expressions"`
		}
		if err := jsonv2.Unmarshal(data, &wire); err != nil {
			return nil, err
		}
		exprs, err := unmarshalExprList(wire.Expressions)
		if err != nil {
			return nil, err
		}
		return ReturnStatement{Expressions: exprs}, nil
	default:
		return nil, fmt.Errorf("unmarshal lua last statement: unknown kind %q", peek.Kind)
	}
}

var compoundOperatorByText = func() map[string]CompoundOperator {
	m := make(map[string]CompoundOperator, len(compoundOperatorText))
	for op, text := range compoundOperatorText {
		m[text] = op
	}
	return m
}()

var binaryOperatorByText = func() map[string]BinaryOperator {
	m := make(map[string]BinaryOperator, len(binaryOperatorText))
	for op, text := range binaryOperatorText {
		m[text] = op
	}
	return m
}()

var unaryOperatorByText = func() map[string]UnaryOperator {
	m := make(map[string]UnaryOperator, len(unaryOperatorText))
	for op, text := range unaryOperatorText {
		m[text] = op
	}
	return m
}()
