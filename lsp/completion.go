// Copyright © 2024 The ELPS authors

package lsp

import (
	"strings"

	"github.com/luthersystems/epilepsy/lang"
	"github.com/luthersystems/epilepsy/lang/langlib/libhelp"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func (s *Server) textDocumentCompletion(_ *glsp.Context, params *protocol.CompletionParams) (any, error) {
	doc := s.docs.Get(params.TextDocument.URI)
	if doc == nil {
		return nil, nil
	}
	content, _, _ := doc.snapshot()
	prefix := prefixAtPosition(content, int(params.Position.Line), int(params.Position.Character))
	return s.operatorCompletions(prefix), nil
}

// operatorCompletions returns an item for each registered operator whose
// name begins with prefix.
func (s *Server) operatorCompletions(prefix string) []protocol.CompletionItem {
	items := []protocol.CompletionItem{}
	for _, name := range s.registry.Names() {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		kind := s.completionItemKind(name)
		item := protocol.CompletionItem{
			Label: name,
			Kind:  &kind,
		}
		if sig, err := libhelp.Signature(s.registry, name); err == nil {
			item.Detail = &sig
		}
		if doc, err := s.registry.Doc(name); err == nil && strings.TrimSpace(doc) != "" {
			item.Documentation = &protocol.MarkupContent{
				Kind:  protocol.MarkupKindPlainText,
				Value: doc,
			}
		}
		items = append(items, item)
	}
	return items
}

func (s *Server) completionItemKind(name string) protocol.CompletionItemKind {
	if s.registry.IsOverloaded(name) {
		return protocol.CompletionItemKindFunction
	}
	op, err := s.registry.Lookup(name)
	if err == nil && op.Kind == lang.OpSpecial {
		return protocol.CompletionItemKindKeyword
	}
	return protocol.CompletionItemKindFunction
}
