// Copyright 2026 The luadense Authors
// SPDX-License-Identifier: MIT

package generator

// isWordLike reports whether c is an ASCII letter, an ASCII digit, or
// underscore: the character class whose maximal runs Lua tokenizes as a
// single identifier, keyword, or number.
func isWordLike(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9' || c == '_'
}

// spaceRequired is the spacing oracle: a space must separate the
// buffer's last character from a fragment starting with first iff both
// are word-like, since Lua would otherwise read them as one token.
func spaceRequired(last, first byte) bool {
	return isWordLike(last) && isWordLike(first)
}

// breakConcat forces a separator before the ".." operator when the
// previous fragment ends in a digit or '.', so "1 .. 2" isn't read as
// the start of "1." followed by a stray '.'.
func breakConcat(lastFragment string) bool {
	if lastFragment == "" {
		return false
	}
	c := lastFragment[len(lastFragment)-1]
	return c == '.' || ('0' <= c && c <= '9')
}

// breakMinus forces a separator before a unary '-' when the previous
// fragment ends in '-', since "--" opens a comment.
func breakMinus(lastFragment string) bool {
	return lastFragment != "" && lastFragment[len(lastFragment)-1] == '-'
}

// breakVarArgs forces a separator before "..." under the same merging
// hazard as breakConcat.
func breakVarArgs(lastFragment string) bool {
	return breakConcat(lastFragment)
}

// breakLongString forces a separator before a long-bracket string
// literal ("[[...]]") when the previous fragment ends in '[', since
// "[[" would otherwise be read as the opening of a longer bracket.
func breakLongString(lastFragment string) bool {
	return lastFragment != "" && lastFragment[len(lastFragment)-1] == '['
}
