package ast

import "github.com/LucaBru/abstract-interpreter/grammar"

// Position locates a node in source text. It mirrors participle's lexer
// position so semantic-tree nodes carry the same coordinates as the parse
// tree they were lowered from.
type Position struct {
	Filename string
	Offset   int
	Line     int
	Column   int
}

func fromGrammar(p grammar.Position) Position {
	return Position{
		Filename: p.Filename,
		Offset:   p.Offset,
		Line:     p.Line,
		Column:   p.Column,
	}
}

// EndOfProgram is a sentinel position that sorts after every real position
// in a source file, used to key the final post-state in an invariant map.
var EndOfProgram = Position{Line: 1<<31 - 1, Column: 1<<31 - 1}

// Before reports whether p occurs strictly earlier in the source than q,
// ordering first by line then by column.
func (p Position) Before(q Position) bool {
	if p.Line != q.Line {
		return p.Line < q.Line
	}
	return p.Column < q.Column
}
