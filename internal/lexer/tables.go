// Package lexer: static operator/punctuation tables for MiniLang.
package lexer

// Operators lists MiniLang's operator lexemes, longest-match first where
// ambiguous (== before =, != has no single-char prefix meaning, etc).
var Operators = map[string]bool{
	"+": true, "-": true, "*": true, "/": true, "^": true,
	"=": true, "==": true, "!=": true, ">=": true, "<=": true,
	">": true, "<": true,
}

// Punctuations lists MiniLang's grouping/terminator punctuation.
var Punctuations = map[string]bool{
	"(": true, ")": true, "{": true, "}": true, ";": true,
}
