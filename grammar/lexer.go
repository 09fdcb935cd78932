// Package grammar holds the participle-based lexer and parse tree for the
// toy imperative language analyzed by this tool.
package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// Position is re-exported from participle so every grammar node can carry
// exact source coordinates without wrapping it.
type Position = lexer.Position

// ToyLexer tokenizes the toy language: skip/assign/if/while keywords are
// plain identifiers matched literally by the grammar, comments run from
// '#' to end of line, and integer literals are unsigned decimal.
var ToyLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{"Comment", `#[^\n]*`, nil},
		{"Ident", `[a-zA-Z_][a-zA-Z0-9_]*`, nil},
		{"Integer", `[0-9]+`, nil},
		{"Assign", `:=`, nil},
		{"Punct", `[(){}\[\],;]`, nil},
		{"Operator", `(=|<|!|&|\+|-|\*|/)`, nil},
		{"Whitespace", `[ \t\r\n]+`, nil},
	},
})
