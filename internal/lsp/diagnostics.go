package lsp

import (
	"github.com/alecthomas/participle/v2"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// parseErrorDiagnostics converts a grammar parse error into a single LSP
// diagnostic positioned at the offending token.
func parseErrorDiagnostics(err error) []protocol.Diagnostic {
	pe, ok := err.(participle.Error)
	if !ok {
		return []protocol.Diagnostic{{
			Range:    protocol.Range{},
			Severity: ptrSeverity(protocol.DiagnosticSeverityError),
			Source:   ptrString("toyanalyze"),
			Message:  err.Error(),
		}}
	}

	pos := pe.Position()
	return []protocol.Diagnostic{{
		Range: protocol.Range{
			Start: protocol.Position{Line: uint32(max0(pos.Line - 1)), Character: uint32(max0(pos.Column - 1))},
			End:   protocol.Position{Line: uint32(max0(pos.Line - 1)), Character: uint32(max0(pos.Column + 3))},
		},
		Severity: ptrSeverity(protocol.DiagnosticSeverityError),
		Source:   ptrString("toyanalyze"),
		Message:  pe.Message(),
	}}
}

func sendDiagnostics(ctx *glsp.Context, uri string, diagnostics []protocol.Diagnostic) {
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         protocol.DocumentUri(uri),
		Diagnostics: diagnostics,
	})
}

func max0(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity { return &s }
func ptrString(s string) *string                                            { return &s }
