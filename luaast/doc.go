// Copyright 2026 The luadense Authors
// SPDX-License-Identifier: MIT

// Package luaast defines the Lua abstract syntax tree node shapes consumed
// read-only by package generator.
//
// The nodes are deliberately data-only: there is no parser and no
// evaluator here. Parsing Lua source into these shapes is explicitly out
// of scope for this module (see SPEC_FULL.md); the types exist so the
// dense code generator has a concrete, testable AST to walk, and so that
// tools (the luadense CLI, the format HTTP service) have something to
// decode a JSON request body into.
package luaast
