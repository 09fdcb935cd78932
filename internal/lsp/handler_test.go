package lsp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/LucaBru/abstract-interpreter/internal/config"
	"github.com/LucaBru/abstract-interpreter/internal/domain"
	"github.com/LucaBru/abstract-interpreter/internal/lsp"
)

func testConfig() config.Config {
	return config.Config{Bounds: domain.Bounds{M: domain.Finite(-100), N: domain.Finite(100)}, NarrowingSteps: 3}
}

func TestInitializeAdvertisesHoverAndSyncCapabilities(t *testing.T) {
	h := lsp.NewHandler(testConfig())
	result, err := h.Initialize(nil, &protocol.InitializeParams{})
	assert.NoError(t, err)

	init, ok := result.(*protocol.InitializeResult)
	assert.True(t, ok)
	assert.NotNil(t, init.Capabilities.HoverProvider)
	assert.NotNil(t, init.Capabilities.TextDocumentSync)
}

func TestDidCloseForgetsDocument(t *testing.T) {
	h := lsp.NewHandler(testConfig())
	err := h.TextDocumentDidClose(nil, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: "file:///missing.toy"},
	})
	assert.NoError(t, err)
}

func TestHoverOnUnknownDocumentReturnsNil(t *testing.T) {
	h := lsp.NewHandler(testConfig())
	hover, err := h.TextDocumentHover(nil, &protocol.HoverParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: "file:///missing.toy"},
			Position:     protocol.Position{Line: 0, Character: 0},
		},
	})
	assert.NoError(t, err)
	assert.Nil(t, hover)
}
