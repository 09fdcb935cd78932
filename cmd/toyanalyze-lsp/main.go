// SPDX-License-Identifier: Apache-2.0
package main

import (
	"log"
	"os"

	"github.com/tliron/commonlog"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/LucaBru/abstract-interpreter/internal/config"
	"github.com/LucaBru/abstract-interpreter/internal/lsp"
)

const serverName = "toyanalyze"

var version = "0.1.0"

func main() {
	commonlog.Configure(1, nil)

	h := lsp.NewHandler(config.Load())

	handler := protocol.Handler{
		Initialize:            h.Initialize,
		Initialized:           h.Initialized,
		Shutdown:              h.Shutdown,
		SetTrace:              h.SetTrace,
		TextDocumentDidOpen:   h.TextDocumentDidOpen,
		TextDocumentDidChange: h.TextDocumentDidChange,
		TextDocumentDidClose:  h.TextDocumentDidClose,
		TextDocumentHover:     h.TextDocumentHover,
	}

	s := server.NewServer(&handler, serverName, false)

	log.Println("Starting toyanalyze LSP server...")
	if err := s.RunStdio(); err != nil {
		log.Println("Error starting toyanalyze LSP server:", err)
		os.Exit(1)
	}
}
