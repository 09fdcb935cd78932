// Package lsp exposes the analyzer over the Language Server Protocol:
// open/change a .toy document and the server publishes parse-error
// diagnostics, and answers hover requests with the loop invariant
// nearest the cursor.
package lsp

import (
	"fmt"
	"log"
	"sync"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/LucaBru/abstract-interpreter/grammar"
	"github.com/LucaBru/abstract-interpreter/internal/ast"
	"github.com/LucaBru/abstract-interpreter/internal/config"
	"github.com/LucaBru/abstract-interpreter/internal/interp"
)

// analysis caches one document's parse and interpretation results.
type analysis struct {
	prog       *ast.Program
	invariants *interp.Invariants
}

// Handler implements the LSP handlers for the toy language.
type Handler struct {
	mu   sync.RWMutex
	docs map[string]*analysis
	cfg  config.Config
}

// NewHandler creates a Handler that analyzes every opened document under
// the given configuration.
func NewHandler(cfg config.Config) *Handler {
	return &Handler{docs: make(map[string]*analysis), cfg: cfg}
}

func (h *Handler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	log.Println("toyanalyze-lsp: initialize")
	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true),
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
			},
			HoverProvider: ptrBool(true),
		},
	}, nil
}

func (h *Handler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Println("toyanalyze-lsp: initialized")
	return nil
}

func (h *Handler) Shutdown(ctx *glsp.Context) error {
	return nil
}

func (h *Handler) SetTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	return nil
}

func (h *Handler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	h.analyzeAndPublish(ctx, string(params.TextDocument.URI), params.TextDocument.Text)
	return nil
}

func (h *Handler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	full, ok := params.ContentChanges[len(params.ContentChanges)-1].(protocol.TextDocumentContentChangeEventWhole)
	if !ok {
		return nil
	}
	h.analyzeAndPublish(ctx, string(params.TextDocument.URI), full.Text)
	return nil
}

func (h *Handler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	h.mu.Lock()
	delete(h.docs, string(params.TextDocument.URI))
	h.mu.Unlock()
	return nil
}

func (h *Handler) TextDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	h.mu.RLock()
	a, ok := h.docs[string(params.TextDocument.URI)]
	h.mu.RUnlock()
	if !ok || a.invariants == nil {
		return nil, nil
	}

	text := nearestInvariantText(a.invariants, int(params.Position.Line)+1)
	if text == "" {
		return nil, nil
	}
	return &protocol.Hover{
		Contents: protocol.MarkupContent{Kind: protocol.MarkupKindPlainText, Value: text},
	}, nil
}

func (h *Handler) analyzeAndPublish(ctx *glsp.Context, uri, source string) {
	parsed, err := grammar.ParseSource(uri, source)
	if err != nil {
		h.mu.Lock()
		h.docs[uri] = &analysis{}
		h.mu.Unlock()
		sendDiagnostics(ctx, uri, parseErrorDiagnostics(err))
		return
	}

	prog := ast.Build(parsed)
	in := interp.New(h.cfg)
	_, invariants := in.Run(prog)

	h.mu.Lock()
	h.docs[uri] = &analysis{prog: prog, invariants: invariants}
	h.mu.Unlock()

	sendDiagnostics(ctx, uri, nil)
}

// nearestInvariantText returns the loop invariant recorded at the
// closest while-loop position at or before line, which is what a hover
// over a loop body (rather than its exact head token) should show.
func nearestInvariantText(invariants *interp.Invariants, line int) string {
	bestLine, found := 0, false
	for _, pos := range invariants.Positions() {
		if pos == ast.EndOfProgram {
			continue
		}
		if pos.Line <= line && (!found || pos.Line > bestLine) {
			bestLine, found = pos.Line, true
		}
	}
	if !found {
		return ""
	}
	for _, pos := range invariants.Positions() {
		if pos.Line != bestLine {
			continue
		}
		if s, ok := invariants.At(pos); ok {
			return fmt.Sprintf("loop invariant: %s", s)
		}
	}
	return ""
}

func ptrBool(b bool) *bool { return &b }

func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind { return &k }
