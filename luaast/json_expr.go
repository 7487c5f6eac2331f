// Copyright 2026 The luadense Authors
// SPDX-License-Identifier: MIT

package luaast

import (
	"encoding/json"
	"fmt"

	jsonv2 "github.com/go-json-experiment/json"
)

func marshalExpression(e Expression) (json.RawMessage, error) {
	switch e := e.(type) {
	case NilExpression:
		return jsonv2.Marshal(struct {
			Kind string `json:"kind"`
		}{"nil"})
	case TrueExpression:
		return jsonv2.Marshal(struct {
			Kind string `json:"kind"`
		}{"true"})
	case FalseExpression:
		return jsonv2.Marshal(struct {
			Kind string `json:"kind"`
		}{"false"})
	case VarArgExpression:
		return jsonv2.Marshal(struct {
			Kind string `json:"kind"`
		}{"vararg"})
	case *Identifier:
		return jsonv2.Marshal(struct {
			Kind string `json:"kind"`
			Name string `json:"name"`
		}{"identifier", e.Name})
	case *StringExpression:
		return jsonv2.Marshal(struct {
			Kind  string `json:"kind"`
			Value string `json:"value"`
			Raw   string `json:"raw,omitempty"`
		}{"string", e.Value, e.Raw})
	case *DecimalNumber:
		return jsonv2.Marshal(struct {
			Kind      string `json:"kind"`
			Value     float64 `json:"value"`
			Exponent  *int    `json:"exponent,omitempty"`
			Uppercase bool    `json:"uppercase,omitempty"`
		}{"number.decimal", e.Value, e.Exponent, e.Uppercase})
	case *HexNumber:
		return jsonv2.Marshal(struct {
			Kind          string `json:"kind"`
			Value         uint64 `json:"value"`
			XUppercase    bool   `json:"xUppercase,omitempty"`
			Exponent      *int   `json:"exponent,omitempty"`
			ExponentUpper bool   `json:"exponentUpper,omitempty"`
		}{"number.hex", e.Value, e.XUppercase, e.Exponent, e.ExponentUpper})
	case *BinaryNumber:
		return jsonv2.Marshal(struct {
			Kind       string `json:"kind"`
			Value      uint64 `json:"value"`
			BUppercase bool   `json:"bUppercase,omitempty"`
		}{"number.binary", e.Value, e.BUppercase})
	case *BinaryExpression:
		left, err := marshalExpression(e.Left)
		if err != nil {
			return nil, err
		}
		right, err := marshalExpression(e.Right)
		if err != nil {
			return nil, err
		}
		return jsonv2.Marshal(struct {
			Kind     string          `json:"kind"`
			Operator string          `json:"operator"`
			Left     json.RawMessage `json:"left"`
			Right    json.RawMessage `json:"right"`
		}{"binary", e.Operator.ToLuaText(), left, right})
	case *UnaryExpression:
		operand, err := marshalExpression(e.Operand)
		if err != nil {
			return nil, err
		}
		return jsonv2.Marshal(struct {
			Kind     string          `json:"kind"`
			Operator string          `json:"operator"`
			Operand  json.RawMessage `json:"operand"`
		}{"unary", e.Operator.ToLuaText(), operand})
	case *ParenExpression:
		inner, err := marshalExpression(e.Inner)
		if err != nil {
			return nil, err
		}
		return jsonv2.Marshal(struct {
			Kind  string          `json:"kind"`
			Inner json.RawMessage `json:"inner"`
		}{"paren", inner})
	case *FunctionExpression:
		block, err := e.Block.MarshalJSON()
		if err != nil {
			return nil, err
		}
		return jsonv2.Marshal(struct {
			Kind       string          `json:"kind"`
			Parameters []string        `json:"parameters"`
			Variadic   bool            `json:"variadic"`
			Block      json.RawMessage `json:"block"`
		}{"functionexpr", marshalIdentList(e.Parameters), e.IsVariadic, block})
	case *FunctionCall:
		prefix, err := marshalExpression(e.Prefix)
		if err != nil {
			return nil, err
		}
		args, err := marshalArguments(e.Arguments)
		if err != nil {
			return nil, err
		}
		var method string
		if e.Method != nil {
			method = e.Method.Name
		}
		return jsonv2.Marshal(struct {
			Kind      string          `json:"kind"`
			Prefix    json.RawMessage `json:"prefix"`
			Method    string          `json:"method,omitempty"`
			Arguments json.RawMessage `json:"arguments"`
		}{"call", prefix, method, args})
	case *FieldExpression:
		prefix, err := marshalExpression(e.Prefix)
		if err != nil {
			return nil, err
		}
		return jsonv2.Marshal(struct {
			Kind   string          `json:"kind"`
			Prefix json.RawMessage `json:"prefix"`
			Field  string          `json:"field"`
		}{"field", prefix, e.Field.Name})
	case *IndexExpression:
		prefix, err := marshalExpression(e.Prefix)
		if err != nil {
			return nil, err
		}
		index, err := marshalExpression(e.Index)
		if err != nil {
			return nil, err
		}
		return jsonv2.Marshal(struct {
			Kind   string          `json:"kind"`
			Prefix json.RawMessage `json:"prefix"`
			Index  json.RawMessage `json:"index"`
		}{"index", prefix, index})
	case *IfExpression:
		cond, err := marshalExpression(e.Condition)
		if err != nil {
			return nil, err
		}
		result, err := marshalExpression(e.Result)
		if err != nil {
			return nil, err
		}
		branches := make([]json.RawMessage, len(e.Branches))
		for i, br := range e.Branches {
			bc, err := marshalExpression(br.Condition)
			if err != nil {
				return nil, err
			}
			br_, err := marshalExpression(br.Result)
			if err != nil {
				return nil, err
			}
			raw, err := jsonv2.Marshal(struct {
				Condition json.RawMessage `json:"condition"`
				Result    json.RawMessage `json:"result"`
			}{bc, br_})
			if err != nil {
				return nil, err
			}
			branches[i] = raw
		}
		elseResult, err := marshalExpression(e.ElseResult)
		if err != nil {
			return nil, err
		}
		return jsonv2.Marshal(struct {
			Kind       string            `json:"kind"`
			Condition  json.RawMessage   `json:"condition"`
			Result     json.RawMessage   `json:"result"`
			Branches   []json.RawMessage `json:"branches,omitempty"`
			ElseResult json.RawMessage   `json:"elseResult"`
		}{"ifexpr", cond, result, branches, elseResult})
	case *TableExpression:
		entries := make([]json.RawMessage, len(e.Entries))
		for i, entry := range e.Entries {
			raw, err := marshalTableEntry(entry)
			if err != nil {
				return nil, err
			}
			entries[i] = raw
		}
		return jsonv2.Marshal(struct {
			Kind    string            `json:"kind"`
			Entries []json.RawMessage `json:"entries"`
		}{"table", entries})
	default:
		return nil, fmt.Errorf("marshal lua expression: unsupported type %T", e)
	}
}

func unmarshalExpression(data json.RawMessage) (Expression, error) {
	var peek struct {
		Kind string `json:"kind"`
	}
	if err := jsonv2.Unmarshal(data, &peek); err != nil {
		return nil, err
	}
	switch peek.Kind {
	case "nil":
		return NilExpression{}, nil
	case "true":
		return TrueExpression{}, nil
	case "false":
		return FalseExpression{}, nil
	case "vararg":
		return VarArgExpression{}, nil
	case "identifier":
		var wire struct {
			Name string `json:"name"`
		}
		if err := jsonv2.Unmarshal(data, &wire); err != nil {
			return nil, err
		}
		return &Identifier{Name: wire.Name}, nil
	case "string":
		var wire struct {
			Value string `json:"value"`
			Raw   string `json:"raw"`
		}
		if err := jsonv2.Unmarshal(data, &wire); err != nil {
			return nil, err
		}
		return &StringExpression{Value: wire.Value, Raw: wire.Raw}, nil
	case "number.decimal":
		var wire struct {
			Value     float64 `json:"value"`
			Exponent  *int    `json:"exponent"`
			Uppercase bool    `json:"uppercase"`
		}
		if err := jsonv2.Unmarshal(data, &wire); err != nil {
			return nil, err
		}
		return &DecimalNumber{Value: wire.Value, Exponent: wire.Exponent, Uppercase: wire.Uppercase}, nil
	case "number.hex":
		var wire struct {
			Value         uint64 `json:"value"`
			XUppercase    bool   `json:"xUppercase"`
			Exponent      *int   `json:"exponent"`
			ExponentUpper bool   `json:"exponentUpper"`
		}
		if err := jsonv2.Unmarshal(data, &wire); err != nil {
			return nil, err
		}
		return &HexNumber{Value: wire.Value, XUppercase: wire.XUppercase, Exponent: wire.Exponent, ExponentUpper: wire.ExponentUpper}, nil
	case "number.binary":
		var wire struct {
			Value      uint64 `json:"value"`
			BUppercase bool   `json:"bUppercase"`
		}
		if err := jsonv2.Unmarshal(data, &wire); err != nil {
			return nil, err
		}
		return &BinaryNumber{Value: wire.Value, BUppercase: wire.BUppercase}, nil
	case "binary":
		var wire struct {
			Operator string          `json:"operator"`
			Left     json.RawMessage `json:"left"`
			Right    json.RawMessage `json:"right"`
		}
		if err := jsonv2.Unmarshal(data, &wire); err != nil {
			return nil, err
		}
		op, ok := binaryOperatorByText[wire.Operator]
		if !ok {
			return nil, fmt.Errorf("unknown binary operator %q", wire.Operator)
		}
		left, err := unmarshalExpression(wire.Left)
		if err != nil {
			return nil, err
		}
		right, err := unmarshalExpression(wire.Right)
		if err != nil {
			return nil, err
		}
		return &BinaryExpression{Operator: op, Left: left, Right: right}, nil
	case "unary":
		var wire struct {
			Operator string          `json:"operator"`
			Operand  json.RawMessage `json:"operand"`
		}
		if err := jsonv2.Unmarshal(data, &wire); err != nil {
			return nil, err
		}
		op, ok := unaryOperatorByText[wire.Operator]
		if !ok {
			return nil, fmt.Errorf("unknown unary operator %q", wire.Operator)
		}
		operand, err := unmarshalExpression(wire.Operand)
		if err != nil {
			return nil, err
		}
		return &UnaryExpression{Operator: op, Operand: operand}, nil
	case "paren":
		var wire struct {
			Inner json.RawMessage `json:"inner"`
		}
		if err := jsonv2.Unmarshal(data, &wire); err != nil {
			return nil, err
		}
		inner, err := unmarshalExpression(wire.Inner)
		if err != nil {
			return nil, err
		}
		return &ParenExpression{Inner: inner}, nil
	case "functionexpr":
		var wire struct {
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
		return &FunctionExpression{Parameters: unmarshalIdentList(wire.Parameters), IsVariadic: wire.Variadic, Block: block}, nil
	case "call":
		var wire struct {
			Prefix    json.RawMessage `json:"prefix"`
			Method    string          `json:"method"`
			Arguments json.RawMessage `json:"arguments"`
		}
		if err := jsonv2.Unmarshal(data, &wire); err != nil {
			return nil, err
		}
		prefix, err := unmarshalExpression(wire.Prefix)
		if err != nil {
			return nil, err
		}
		prefixExpr, ok := prefix.(PrefixExpression)
		if !ok {
			return nil, fmt.Errorf("call prefix is %T, not a prefix expression", prefix)
		}
		args, err := unmarshalArguments(wire.Arguments)
		if err != nil {
			return nil, err
		}
		call := &FunctionCall{Prefix: prefixExpr, Arguments: args}
		if wire.Method != "" {
			call.Method = &Identifier{Name: wire.Method}
		}
		return call, nil
	case "field":
		var wire struct {
			Prefix json.RawMessage `json:"prefix"`
			Field  string          `json:"field"`
		}
		if err := jsonv2.Unmarshal(data, &wire); err != nil {
			return nil, err
		}
		prefix, err := unmarshalExpression(wire.Prefix)
		if err != nil {
			return nil, err
		}
		prefixExpr, ok := prefix.(PrefixExpression)
		if !ok {
			return nil, fmt.Errorf("field prefix is %T, not a prefix expression", prefix)
		}
		return &FieldExpression{Prefix: prefixExpr, Field: &Identifier{Name: wire.Field}}, nil
	case "index":
		var wire struct {
			Prefix json.RawMessage `json:"prefix"`
			Index  json.RawMessage `json:"index"`
		}
		if err := jsonv2.Unmarshal(data, &wire); err != nil {
			return nil, err
		}
		prefix, err := unmarshalExpression(wire.Prefix)
		if err != nil {
			return nil, err
		}
		prefixExpr, ok := prefix.(PrefixExpression)
		if !ok {
			return nil, fmt.Errorf("index prefix is %T, not a prefix expression", prefix)
		}
		index, err := unmarshalExpression(wire.Index)
		if err != nil {
			return nil, err
		}
		return &IndexExpression{Prefix: prefixExpr, Index: index}, nil
	case "ifexpr":
		var wire struct {
			Condition  json.RawMessage   `json:"condition"`
			Result     json.RawMessage   `json:"result"`
			Branches   []json.RawMessage `json:"branches"`
			ElseResult json.RawMessage   `json:"elseResult"`
		}
		if err := jsonv2.Unmarshal(data, &wire); err != nil {
			return nil, err
		}
		cond, err := unmarshalExpression(wire.Condition)
		if err != nil {
			return nil, err
		}
		result, err := unmarshalExpression(wire.Result)
		if err != nil {
			return nil, err
		}
		branches := make([]IfBranchExpression, len(wire.Branches))
		for i, raw := range wire.Branches {
			var branchWire struct {
				Condition json.RawMessage `json:"condition"`
				Result    json.RawMessage `json:"result"`
			}
			if err := jsonv2.Unmarshal(raw, &branchWire); err != nil {
				return nil, err
			}
			bc, err := unmarshalExpression(branchWire.Condition)
			if err != nil {
				return nil, err
			}
			br, err := unmarshalExpression(branchWire.Result)
			if err != nil {
				return nil, err
			}
			branches[i] = IfBranchExpression{Condition: bc, Result: br}
		}
		elseResult, err := unmarshalExpression(wire.ElseResult)
		if err != nil {
			return nil, err
		}
		return &IfExpression{Condition: cond, Result: result, Branches: branches, ElseResult: elseResult}, nil
	case "table":
		var wire struct {
			Entries []json.RawMessage `json:"entries"`
		}
		if err := jsonv2.Unmarshal(data, &wire); err != nil {
			return nil, err
		}
		entries := make([]TableEntry, len(wire.Entries))
		for i, raw := range wire.Entries {
			entry, err := unmarshalTableEntry(raw)
			if err != nil {
				return nil, err
			}
			entries[i] = entry
		}
		return &TableExpression{Entries: entries}, nil
	default:
		return nil, fmt.Errorf("unmarshal lua expression: unknown kind %q", peek.Kind)
	}
}

func marshalTableEntry(entry TableEntry) (json.RawMessage, error) {
	switch entry := entry.(type) {
	case FieldEntry:
		value, err := marshalExpression(entry.Value)
		if err != nil {
			return nil, err
		}
		return jsonv2.Marshal(struct {
			Kind  string          `json:"kind"`
			Field string          `json:"field"`
			Value json.RawMessage `json:"value"`
		}{"field", entry.Field.Name, value})
	case IndexEntry:
		key, err := marshalExpression(entry.Key)
		if err != nil {
			return nil, err
		}
		value, err := marshalExpression(entry.Value)
		if err != nil {
			return nil, err
		}
		return jsonv2.Marshal(struct {
			Kind  string          `json:"kind"`
			Key   json.RawMessage `json:"key"`
			Value json.RawMessage `json:"value"`
		}{"index", key, value})
	case PositionalEntry:
		value, err := marshalExpression(entry.Value)
		if err != nil {
			return nil, err
		}
		return jsonv2.Marshal(struct {
			Kind  string          `json:"kind"`
			Value json.RawMessage `json:"value"`
		}{"value", value})
	default:
		return nil, fmt.Errorf("marshal lua table entry: unsupported type %T", entry)
	}
}

func unmarshalTableEntry(data json.RawMessage) (TableEntry, error) {
	var peek struct {
		Kind string `json:"kind"`
	}
	if err := jsonv2.Unmarshal(data, &peek); err != nil {
		return nil, err
	}
	switch peek.Kind {
	case "field":
		var wire struct {
			Field string          `json:"field"`
			Value json.RawMessage `json:"value"`
		}
		if err := jsonv2.Unmarshal(data, &wire); err != nil {
			return nil, err
		}
		value, err := unmarshalExpression(wire.Value)
		if err != nil {
			return nil, err
		}
		return FieldEntry{Field: &Identifier{Name: wire.Field}, Value: value}, nil
	case "index":
		var wire struct {
			Key   json.RawMessage `json:"key"`
			Value json.RawMessage `json:"value"`
		}
		if err := jsonv2.Unmarshal(data, &wire); err != nil {
			return nil, err
		}
		key, err := unmarshalExpression(wire.Key)
		if err != nil {
			return nil, err
		}
		value, err := unmarshalExpression(wire.Value)
		if err != nil {
			return nil, err
		}
		return IndexEntry{Key: key, Value: value}, nil
	case "value":
		var wire struct {
			Value json.RawMessage `json:"value"`
		}
		if err := jsonv2.Unmarshal(data, &wire); err != nil {
			return nil, err
		}
		value, err := unmarshalExpression(wire.Value)
		if err != nil {
			return nil, err
		}
		return PositionalEntry{Value: value}, nil
	default:
		return nil, fmt.Errorf("unmarshal lua table entry: unknown kind %q", peek.Kind)
	}
}

func marshalArguments(args Arguments) (json.RawMessage, error) {
	switch args := args.(type) {
	case TupleArguments:
		values, err := marshalExprList(args.Values)
		if err != nil {
			return nil, err
		}
		return jsonv2.Marshal(struct {
			Kind   string            `json:"kind"`
			Values []json.RawMessage `json:"values"`
		}{"tuple", values})
	case StringArguments:
		str, err := marshalExpression(args.String)
		if err != nil {
			return nil, err
		}
		return jsonv2.Marshal(struct {
			Kind   string          `json:"kind"`
			String json.RawMessage `json:"string"`
		}{"string", str})
	case TableArguments:
		table, err := marshalExpression(args.Table)
		if err != nil {
			return nil, err
		}
		return jsonv2.Marshal(struct {
			Kind  string          `json:"kind"`
			Table json.RawMessage `json:"table"`
		}{"table", table})
	default:
		return nil, fmt.Errorf("marshal lua arguments: unsupported type %T", args)
	}
}

func unmarshalArguments(data json.RawMessage) (Arguments, error) {
	var peek struct {
		Kind string `json:"kind"`
	}
	if err := jsonv2.Unmarshal(data, &peek); err != nil {
		return nil, err
	}
	switch peek.Kind {
	case "tuple":
		var wire struct {
			Values []json.RawMessage `json:"values"`
		}
		if err := jsonv2.Unmarshal(data, &wire); err != nil {
			return nil, err
		}
		values, err := unmarshalExprList(wire.Values)
		if err != nil {
			return nil, err
		}
		return TupleArguments{Values: values}, nil
	case "string":
		var wire struct {
			String json.RawMessage `json:"string"`
		}
		if err := jsonv2.Unmarshal(data, &wire); err != nil {
			return nil, err
		}
		str, err := unmarshalExpression(wire.String)
		if err != nil {
			return nil, err
		}
		strExpr, ok := str.(*StringExpression)
		if !ok {
			return nil, fmt.Errorf("string arguments holds %T, not a string expression", str)
		}
		return StringArguments{String: strExpr}, nil
	case "table":
		var wire struct {
			Table json.RawMessage `json:"table"`
		}
		if err := jsonv2.Unmarshal(data, &wire); err != nil {
			return nil, err
		}
		table, err := unmarshalExpression(wire.Table)
		if err != nil {
			return nil, err
		}
		tableExpr, ok := table.(*TableExpression)
		if !ok {
			return nil, fmt.Errorf("table arguments holds %T, not a table expression", table)
		}
		return TableArguments{Table: tableExpr}, nil
	default:
		return nil, fmt.Errorf("unmarshal lua arguments: unknown kind %q", peek.Kind)
	}
}
