// Package annotate renders an analysis run's invariants back into the
// analyzed source: a comment line above each while loop carrying its
// loop invariant, and a trailing comment carrying the program's final
// state.
package annotate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/LucaBru/abstract-interpreter/internal/ast"
	"github.com/LucaBru/abstract-interpreter/internal/interp"
)

type insertion struct {
	line int // 1-indexed line to insert before
	text string
}

// Annotate returns source with each while loop's invariant inserted as a
// "# { ... }" comment on the line above it, and the program's final
// state appended as a trailing comment. prog must have been built from
// source, and invariants must be the result of interpreting prog.
func Annotate(source string, prog *ast.Program, invariants *interp.Invariants) string {
	lines := strings.Split(source, "\n")

	var insertions []insertion
	collectWhileInvariants(prog.Body, invariants, &insertions)

	// Insert from the bottom up so earlier insertions don't shift the
	// line numbers later ones were computed against.
	sort.Slice(insertions, func(i, j int) bool { return insertions[i].line > insertions[j].line })
	for _, ins := range insertions {
		idx := ins.line - 1
		if idx < 0 {
			idx = 0
		}
		if idx > len(lines) {
			idx = len(lines)
		}
		lines = append(lines[:idx], append([]string{ins.text}, lines[idx:]...)...)
	}

	out := strings.Join(lines, "\n")
	out += fmt.Sprintf("\n# %s\n", invariants.Final())
	return out
}

func collectWhileInvariants(b *ast.Block, invariants *interp.Invariants, out *[]insertion) {
	for _, s := range b.Statements {
		collectStmtInvariants(s, invariants, out)
	}
}

func collectStmtInvariants(s ast.Stmt, invariants *interp.Invariants, out *[]insertion) {
	switch st := s.(type) {
	case *ast.WhileStmt:
		if inv, ok := invariants.At(st.Pos); ok {
			*out = append(*out, insertion{line: st.Pos.Line, text: fmt.Sprintf("# %s", inv)})
		}
		collectWhileInvariants(st.Body, invariants, out)
	case *ast.IfStmt:
		collectWhileInvariants(st.Then, invariants, out)
		collectWhileInvariants(st.Else, invariants, out)
	}
}
