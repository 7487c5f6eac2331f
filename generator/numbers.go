// Copyright 2026 The luadense Authors
// SPDX-License-Identifier: MIT

package generator

import (
	"math"
	"strconv"

	"github.com/luadense/luadense/luaast"
)

func (g *Generator) writeNumber(n luaast.NumberExpression) {
	switch n := n.(type) {
	case *luaast.DecimalNumber:
		g.writeDecimalNumber(n)
	case *luaast.HexNumber:
		g.writeHexNumber(n)
	case *luaast.BinaryNumber:
		g.writeBinaryNumber(n)
	default:
		panic(unsupportedNodeMessage("number", n))
	}
}

// writeDecimalNumber renders a base-10 literal. NaN and the two
// infinities have no Lua literal spelling, so they're rendered as the
// arithmetic idioms that produce them: (0/0), (1/0), (-1/0).
func (g *Generator) writeDecimalNumber(n *luaast.DecimalNumber) {
	var text string
	switch {
	case math.IsNaN(n.Value):
		text = "(0/0)"
	case math.IsInf(n.Value, 1):
		text = "(1/0)"
	case math.IsInf(n.Value, -1):
		text = "(-1/0)"
	default:
		text = strconv.FormatFloat(n.Value, 'g', -1, 64)
		if n.Exponent != nil {
			e := byte('e')
			if n.Uppercase {
				e = 'E'
			}
			text += string(e) + strconv.Itoa(*n.Exponent)
		}
	}
	g.pushStr(text)
}

func (g *Generator) writeHexNumber(n *luaast.HexNumber) {
	x := byte('x')
	if n.XUppercase {
		x = 'X'
	}
	text := "0" + string(x) + strconv.FormatUint(n.Value, 16)
	if n.Exponent != nil {
		p := byte('p')
		if n.ExponentUpper {
			p = 'P'
		}
		text += string(p) + strconv.Itoa(*n.Exponent)
	}
	g.pushStr(text)
}

func (g *Generator) writeBinaryNumber(n *luaast.BinaryNumber) {
	b := byte('b')
	if n.BUppercase {
		b = 'B'
	}
	g.pushStr("0" + string(b) + strconv.FormatUint(n.Value, 2))
}
