// Copyright © 2024 The ELPS authors

package lsp

import (
	"github.com/luthersystems/epilepsy/lang"
	"github.com/muesli/reflow/truncate"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// symbolDetailWidth bounds the printed term shown beside a symbol.
const symbolDetailWidth = 60

// textDocumentDocumentSymbol lists the top-level terms of a document.
func (s *Server) textDocumentDocumentSymbol(_ *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	doc := s.docs.Get(params.TextDocument.URI)
	if doc == nil {
		return nil, nil
	}
	_, terms, _ := doc.snapshot()

	symbols := []protocol.DocumentSymbol{}
	for _, t := range terms {
		if t.Source == nil || t.Source.Line == 0 {
			continue
		}
		name := t.Str
		kind := protocol.SymbolKindFunction
		if !t.IsCall() {
			name = t.String()
			kind = protocol.SymbolKindConstant
		}
		name = truncate.StringWithTail(name, symbolDetailWidth, "...")
		r := locationRange(t.Source, len(name))
		detail := truncate.StringWithTail(t.String(), symbolDetailWidth, "...")
		symbols = append(symbols, protocol.DocumentSymbol{
			Name:           name,
			Detail:         &detail,
			Kind:           kind,
			Range:          r,
			SelectionRange: r,
		})
	}
	return symbols, nil
}

// termReferences returns the locations of every call to name and every atom
// equal to name in terms.  Atoms are included because operators are passed
// by name to while and match.
func termReferences(terms []*lang.Term, name string) []*lang.Location {
	var locs []*lang.Location
	var visit func(t *lang.Term)
	visit = func(t *lang.Term) {
		if t == nil {
			return
		}
		if (t.IsCall() || t.IsAtom()) && t.Str == name && t.Source != nil {
			locs = append(locs, t.Source)
		}
		for _, c := range t.Cells {
			visit(c)
		}
	}
	for _, t := range terms {
		visit(t)
	}
	return locs
}
