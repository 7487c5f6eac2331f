// Copyright 2026 The luadense Authors
// SPDX-License-Identifier: MIT

package luaast

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func exponentOf(n int) *int { return &n }

func TestBlockJSONRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		block *Block
	}{
		{
			name:  "empty",
			block: &Block{},
		},
		{
			name: "local assign and return",
			block: &Block{
				Statements: []Statement{
					&LocalAssignStatement{
						Names:  []*Identifier{{Name: "x"}, {Name: "y"}},
						Values: []Expression{&DecimalNumber{Value: 1}, &DecimalNumber{Value: 2}},
					},
				},
				Last: ReturnStatement{Expressions: []Expression{&Identifier{Name: "x"}}},
			},
		},
		{
			name: "call chain and table",
			block: &Block{
				Statements: []Statement{
					&ExpressionStatement{
						Call: &FunctionCall{
							Prefix: &Identifier{Name: "print"},
							Method: &Identifier{Name: "format"},
							Arguments: TupleArguments{
								Values: []Expression{
									&TableExpression{Entries: []TableEntry{
										FieldEntry{Field: &Identifier{Name: "a"}, Value: TrueExpression{}},
										IndexEntry{Key: &Identifier{Name: "k"}, Value: NilExpression{}},
										PositionalEntry{Value: VarArgExpression{}},
									}},
								},
							},
						},
					},
				},
				Last: BreakStatement{},
			},
		},
		{
			name: "operators and numbers",
			block: &Block{
				Statements: []Statement{
					&CompoundAssignStatement{
						Variable: &Identifier{Name: "x"},
						Operator: AddAssign,
						Value: &BinaryExpression{
							Operator: Power,
							Left:     &HexNumber{Value: 255, XUppercase: true, Exponent: exponentOf(3), ExponentUpper: true},
							Right:    &UnaryExpression{Operator: Minus, Operand: &BinaryNumber{Value: 5, BUppercase: true}},
						},
					},
				},
				Last: ContinueStatement{},
			},
		},
		{
			name: "functions and control flow",
			block: &Block{
				Statements: []Statement{
					&FunctionStatement{
						Name: FunctionName{
							Base:       &Identifier{Name: "obj"},
							FieldNames: []*Identifier{{Name: "sub"}},
							Method:     &Identifier{Name: "run"},
						},
						Parameters: []*Identifier{{Name: "a"}},
						IsVariadic: true,
						Block: &Block{
							Statements: []Statement{
								&IfStatement{
									Branches: []IfBranch{
										{Condition: &Identifier{Name: "a"}, Block: &Block{Last: ReturnStatement{}}},
									},
									Else: &Block{Statements: []Statement{
										&DoStatement{Block: &Block{}},
									}},
								},
							},
						},
					},
					&WhileStatement{
						Condition: &IfExpression{
							Condition:  TrueExpression{},
							Result:     &DecimalNumber{Value: 1},
							ElseResult: &DecimalNumber{Value: 2},
						},
						Block: &Block{},
					},
					&RepeatStatement{Block: &Block{}, Condition: FalseExpression{}},
					&NumericForStatement{
						Identifier: &Identifier{Name: "i"},
						Start:      &DecimalNumber{Value: 1},
						Stop:       &DecimalNumber{Value: 10},
						Step:       &DecimalNumber{Value: 2},
						Block:      &Block{},
					},
					&GenericForStatement{
						Identifiers: []*Identifier{{Name: "k"}, {Name: "v"}},
						Expressions: []Expression{&Identifier{Name: "pairs"}},
						Block:       &Block{},
					},
					&LocalFunctionStatement{
						Name:       "helper",
						Parameters: nil,
						IsVariadic: true,
						Block:      &Block{},
					},
				},
			},
		},
		{
			name: "string and paren and field/index",
			block: &Block{
				Statements: []Statement{
					&AssignStatement{
						Variables: []Expression{
							&FieldExpression{Prefix: &Identifier{Name: "t"}, Field: &Identifier{Name: "f"}},
						},
						Values: []Expression{
							&IndexExpression{
								Prefix: &ParenExpression{Inner: &StringExpression{Value: "hi\n", Raw: ""}},
								Index:  &DecimalNumber{Value: 1},
							},
						},
					},
				},
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			data, err := test.block.MarshalJSON()
			if err != nil {
				t.Fatalf("MarshalJSON: %v", err)
			}
			got := new(Block)
			if err := got.UnmarshalJSON(data); err != nil {
				t.Fatalf("UnmarshalJSON(%s): %v", data, err)
			}
			if diff := cmp.Diff(test.block, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s\njson: %s", diff, data)
			}
		})
	}
}
