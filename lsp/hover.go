// Copyright © 2024 The ELPS authors

package lsp

import (
	"fmt"
	"strings"

	"github.com/luthersystems/epilepsy/lang/langlib/libhelp"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func (s *Server) textDocumentHover(_ *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	doc := s.docs.Get(params.TextDocument.URI)
	if doc == nil {
		return nil, nil
	}
	content, _, _ := doc.snapshot()
	name := wordAtPosition(content, int(params.Position.Line), int(params.Position.Character))
	if name == "" || !s.known(name) {
		return nil, nil
	}
	text, err := libhelp.Describe(s.registry, name)
	if err != nil {
		return nil, nil
	}
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: hoverMarkdown(text),
		},
	}, nil
}

// hoverMarkdown formats rendered operator documentation.  The first line,
// holding the kind and signature, becomes a code block.
func hoverMarkdown(text string) string {
	header, doc, _ := strings.Cut(strings.TrimRight(text, "\n"), "\n")
	var sb strings.Builder
	fmt.Fprintf(&sb, "```\n%s\n```", header)
	if doc != "" {
		fmt.Fprintf(&sb, "\n\n%s", doc)
	}
	return sb.String()
}
