// Copyright 2026 The luadense Authors
// SPDX-License-Identifier: MIT

package generator

import (
	"github.com/luadense/luadense/internal/lualex"
	"github.com/luadense/luadense/luaast"
)

// RenderString returns the Lua source text for a string literal. Escape
// selection and long-bracket selection are out of scope for this
// package: if s has a pre-rendered long-bracket form (s.Raw), it is
// returned verbatim; otherwise the value is quoted with
// [lualex.Quote].
func RenderString(s *luaast.StringExpression) string {
	if s.Raw != "" {
		return s.Raw
	}
	return lualex.Quote(s.Value)
}

func (g *Generator) writeStringExpression(s *luaast.StringExpression) {
	text := RenderString(s)
	if len(text) > 0 && text[0] == '[' {
		g.pushWithBreakPredicate(text, breakLongString)
	} else {
		g.pushStr(text)
	}
}
