// Copyright © 2024 The ELPS authors

package lsp

import (
	"fmt"
	"strings"

	"github.com/luthersystems/epilepsy/lang"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// textDocumentSignatureHelp finds the call enclosing the cursor and returns
// the signatures of its operator.  Overload groups return one signature per
// member with the first member able to take the active argument selected.
func (s *Server) textDocumentSignatureHelp(_ *glsp.Context, params *protocol.SignatureHelpParams) (*protocol.SignatureHelp, error) {
	doc := s.docs.Get(params.TextDocument.URI)
	if doc == nil {
		return nil, nil
	}
	content, _, _ := doc.snapshot()
	name, argIdx := enclosingCall(content, int(params.Position.Line), int(params.Position.Character))
	if name == "" {
		return nil, nil
	}

	var concrete []string
	if s.registry.IsOverloaded(name) {
		for _, n := range s.registry.Overloads(name) {
			c, err := s.registry.ResolveOverload(name, n)
			if err == nil {
				concrete = append(concrete, c)
			}
		}
	} else {
		concrete = []string{name}
	}

	help := &protocol.SignatureHelp{}
	active := -1
	for _, c := range concrete {
		op, err := s.registry.Lookup(c)
		if err != nil {
			continue
		}
		if active < 0 && argIdx < op.Arity {
			active = len(help.Signatures)
		}
		help.Signatures = append(help.Signatures, signatureInformation(name, op))
	}
	if len(help.Signatures) == 0 {
		return nil, nil
	}
	if active < 0 {
		active = len(help.Signatures) - 1
	}
	help.ActiveSignature = uintPtr(safeUint(active))
	help.ActiveParameter = uintPtr(safeUint(argIdx))
	return help, nil
}

// signatureInformation describes op as called by name.  Parameter labels are
// offsets into the signature label.
func signatureInformation(name string, op *lang.Operator) protocol.SignatureInformation {
	var label strings.Builder
	label.WriteString(name)
	label.WriteString("(")
	params := []protocol.ParameterInformation{}
	for i := 0; i < op.Arity; i++ {
		if i > 0 {
			label.WriteString(", ")
		}
		formal := fmt.Sprintf("arg%d", i)
		if i < len(op.Formals) {
			formal = op.Formals[i]
		}
		start := label.Len()
		label.WriteString(formal)
		params = append(params, protocol.ParameterInformation{
			Label: []protocol.UInteger{safeUint(start), safeUint(label.Len())},
		})
	}
	label.WriteString(")")

	info := protocol.SignatureInformation{
		Label:      label.String(),
		Parameters: params,
	}
	if doc := strings.TrimSpace(op.Doc); doc != "" {
		info.Documentation = protocol.MarkupContent{
			Kind:  protocol.MarkupKindPlainText,
			Value: doc,
		}
	}
	return info
}

// enclosingCall scans the text before the cursor for the innermost
// unclosed call.  It returns the operator name and the 0-based index of the
// argument under the cursor, or ("", 0) when the cursor is not inside a
// call.  A quote is not a call.
func enclosingCall(content string, line, col int) (string, int) {
	lines := strings.Split(content, "\n")
	if line < 0 || line >= len(lines) {
		return "", 0
	}
	if col > len(lines[line]) {
		col = len(lines[line])
	}
	var text strings.Builder
	for i := 0; i <= line; i++ {
		ln := lines[i]
		if i == line {
			ln = ln[:col]
		}
		if idx := strings.IndexByte(ln, ';'); idx >= 0 {
			ln = ln[:idx]
		}
		text.WriteString(ln)
		text.WriteByte('\n')
	}
	src := text.String()

	depth := 0
	argIdx := 0
	for i := len(src) - 1; i >= 0; i-- {
		switch src[i] {
		case ')':
			depth++
		case ',':
			if depth == 0 {
				argIdx++
			}
		case '(':
			if depth > 0 {
				depth--
				continue
			}
			name := strings.TrimRight(src[:i], " \t\n\r")
			start := len(name)
			for start > 0 && isTokenChar(name[start-1]) {
				start--
			}
			name = name[start:]
			if name == "v" || !lang.IsIdentifier(name) {
				return "", 0
			}
			return name, argIdx
		}
	}
	return "", 0
}

func uintPtr(v protocol.UInteger) *protocol.UInteger {
	return &v
}
