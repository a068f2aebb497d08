// Copyright © 2024 The ELPS authors

package lsp

import (
	"strings"
	"unicode/utf16"

	"github.com/luthersystems/epilepsy/formatter"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// textDocumentFormatting handles textDocument/formatting requests.  The
// result is a single edit replacing the whole document, or nil if the
// document is already formatted or does not parse.
func (s *Server) textDocumentFormatting(_ *glsp.Context, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	doc := s.docs.Get(params.TextDocument.URI)
	if doc == nil {
		return nil, nil
	}
	content, _, parseErr := doc.snapshot()
	if content == "" || parseErr != nil {
		return nil, nil
	}

	cfg := formatter.DefaultConfig()
	if tabSize, ok := params.Options["tabSize"]; ok {
		switch v := tabSize.(type) {
		case float64:
			if v > 0 {
				cfg.IndentSize = int(v)
			}
		case int:
			if v > 0 {
				cfg.IndentSize = v
			}
		}
	}

	formatted, err := formatter.FormatFile([]byte(content), uriToPath(params.TextDocument.URI), cfg)
	if err != nil || string(formatted) == content {
		return nil, nil
	}
	return []protocol.TextEdit{
		{
			Range:   protocol.Range{Start: protocol.Position{}, End: endPosition(content)},
			NewText: string(formatted),
		},
	}, nil
}

// endPosition returns the position following the last character of content.
func endPosition(content string) protocol.Position {
	line := strings.Count(content, "\n")
	last := content[strings.LastIndexByte(content, '\n')+1:]
	return protocol.Position{
		Line:      safeUint(line),
		Character: safeUint(len(utf16.Encode([]rune(last)))),
	}
}
