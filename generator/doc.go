// Copyright 2026 The luadense Authors
// SPDX-License-Identifier: MIT

// Package generator walks a [luaast.Block] and produces a textually
// minimal but semantically identical Lua program: whitespace is
// inserted only where Lua's lexical rules require it to keep adjacent
// tokens from merging, and line breaks are inserted only to keep lines
// under a configurable column budget.
//
// The package has three cooperating pieces: the [Generator] buffer and
// its layout primitives (push/merge operations that decide spacing and
// wrapping), the spacing oracle (a pure function of two characters),
// and the AST walker (the Write* methods, one per construct). The
// walker never performs I/O and never returns an error: it is total
// over well-formed ASTs, and a malformed one is a programming error
// that panics rather than propagating a result.
package generator
