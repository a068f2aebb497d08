// Copyright © 2024 The ELPS authors

package lsp

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// textDocumentReferences returns every use of the operator under the cursor
// in the same document.
func (s *Server) textDocumentReferences(_ *glsp.Context, params *protocol.ReferenceParams) ([]protocol.Location, error) {
	doc := s.docs.Get(params.TextDocument.URI)
	if doc == nil {
		return nil, nil
	}
	content, terms, _ := doc.snapshot()
	name := wordAtPosition(content, int(params.Position.Line), int(params.Position.Character))
	if name == "" || !s.known(name) {
		return nil, nil
	}
	var locs []protocol.Location
	for _, loc := range termReferences(terms, name) {
		locs = append(locs, protocol.Location{
			URI:   params.TextDocument.URI,
			Range: locationRange(loc, len(name)),
		})
	}
	return locs, nil
}
