// Copyright 2026 The luadense Authors
// SPDX-License-Identifier: MIT

package generator

import "github.com/luadense/luadense/internal/xslices"

// DefaultColumnBudget is the column budget [New] uses when the caller
// has no preference of its own.
const DefaultColumnBudget = 80

// Generator accumulates densely-packed Lua source text. The zero value
// is not usable; construct one with [New].
//
// Generator is single-threaded and non-reentrant: it holds no locks and
// performs no I/O, so all of its methods are safe to call only from one
// goroutine at a time, the same discipline as [strings.Builder].
type Generator struct {
	columnBudget int

	// output is a byte slice rather than a strings.Builder because
	// mergeChar's relocation has to pop bytes off the tail, which
	// strings.Builder cannot do.
	output []byte

	currentColumn      int
	lastFragmentLength int
	consumed           bool
}

// New returns a Generator with the given column budget, the soft upper
// bound on output line length. New panics if columnBudget is not
// positive.
func New(columnBudget int) *Generator {
	if columnBudget <= 0 {
		panic("generator.New: columnBudget must be positive")
	}
	return &Generator{columnBudget: columnBudget}
}

// IntoText consumes the generator and returns the accumulated text.
// IntoText panics if called more than once.
func (g *Generator) IntoText() string {
	if g.consumed {
		panic("generator: IntoText called twice")
	}
	g.consumed = true
	return string(g.output)
}

func (g *Generator) checkUsable() {
	if g.consumed {
		panic("generator: write after IntoText")
	}
}

func (g *Generator) lastByte() (b byte, ok bool) {
	if len(g.output) == 0 {
		return 0, false
	}
	return xslices.Last(g.output), true
}

func (g *Generator) lastFragment() string {
	if g.lastFragmentLength == 0 {
		return ""
	}
	return string(g.output[len(g.output)-g.lastFragmentLength:])
}

func (g *Generator) newline() {
	g.output = append(g.output, '\n')
	g.currentColumn = 0
}

// pushStr appends a non-empty fragment, inserting a space or newline
// before it when required by the spacing oracle or the column budget.
func (g *Generator) pushStr(fragment string) {
	g.checkUsable()
	if fragment == "" {
		panic("generator: empty fragment")
	}
	L := len(fragment)
	last, hasLast := g.lastByte()
	needsSpace := hasLast && spaceRequired(last, fragment[0])

	switch {
	case g.currentColumn >= g.columnBudget:
		g.newline()
	case needsSpace && g.currentColumn+L+1 > g.columnBudget:
		g.newline()
	case needsSpace:
		g.output = append(g.output, ' ')
		g.currentColumn++
	case g.currentColumn+L > g.columnBudget:
		g.newline()
	}

	g.output = append(g.output, fragment...)
	g.currentColumn += L
	g.lastFragmentLength = L
}

// pushChar behaves as pushStr with a one-character fragment.
func (g *Generator) pushChar(c byte) {
	g.pushStr(string(c))
}

// mergeChar appends c with the guarantee that it stays attached to the
// most recently pushed fragment, relocating that fragment onto a new
// line if necessary. It is used where separating the fragment from c
// would change the meaning of the program, e.g. the '(' that opens a
// call's argument list must never be pulled away from its callee.
func (g *Generator) mergeChar(c byte) {
	g.checkUsable()
	if g.currentColumn+1 <= g.columnBudget {
		g.output = append(g.output, c)
		g.currentColumn++
		g.lastFragmentLength++
		return
	}

	n := g.lastFragmentLength
	tail := append([]byte(nil), g.output[len(g.output)-n:]...)
	g.output = xslices.Pop(g.output, n)
	for len(g.output) > 0 && xslices.Last(g.output) == ' ' {
		g.output = xslices.Pop(g.output, 1)
	}
	g.output = append(g.output, '\n')
	g.output = append(g.output, tail...)
	g.output = append(g.output, c)
	g.currentColumn = n + 1
	g.lastFragmentLength = n + 1
}

// pushWithBreakPredicate appends fragment, forcing a separator ahead of
// it whenever predicate reports true of the text most recently pushed,
// independent of the plain spacing oracle. It exists for separators
// whose necessity depends on the previous fragment's content rather
// than merely its last character: concatenation after a number-like
// fragment, unary minus after another minus, "..." after a dot or
// digit, and long-bracket strings after '['.
func (g *Generator) pushWithBreakPredicate(fragment string, predicate func(lastFragment string) bool) {
	g.checkUsable()
	if fragment == "" {
		panic("generator: empty fragment")
	}
	L := len(fragment)
	if predicate(g.lastFragment()) {
		if g.currentColumn+1+L <= g.columnBudget {
			g.output = append(g.output, ' ')
			g.currentColumn++
		} else {
			g.newline()
		}
	} else if g.currentColumn+L > g.columnBudget {
		g.newline()
	}
	g.output = append(g.output, fragment...)
	g.currentColumn += L
	g.lastFragmentLength = L
}
