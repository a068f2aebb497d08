// Copyright © 2024 The ELPS authors

package lsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func formattingParams(options protocol.FormattingOptions) *protocol.DocumentFormattingParams {
	return &protocol.DocumentFormattingParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
		Options:      options,
	}
}

func TestFormatting(t *testing.T) {
	s := testServer(t)
	openDoc(s, "add( 1 ,2 )\nv( a  b )")
	edits, err := s.textDocumentFormatting(mockContext(), formattingParams(nil))
	require.NoError(t, err)
	require.Len(t, edits, 1)
	assert.Equal(t, "add(1, 2)\nv(a b)\n", edits[0].NewText)
	assert.Equal(t, protocol.Position{Line: 0, Character: 0}, edits[0].Range.Start)
	assert.Equal(t, protocol.Position{Line: 1, Character: 9}, edits[0].Range.End)
}

func TestFormattingTabSize(t *testing.T) {
	s := testServer(t)
	openDoc(s, "f(\nx)\n")
	edits, err := s.textDocumentFormatting(mockContext(), formattingParams(protocol.FormattingOptions{"tabSize": float64(4)}))
	require.NoError(t, err)
	require.Len(t, edits, 1)
	assert.Equal(t, "f(\n    x)\n", edits[0].NewText)
	assert.Equal(t, protocol.Position{Line: 2, Character: 0}, edits[0].Range.End)
}

func TestFormattingNoChange(t *testing.T) {
	s := testServer(t)
	openDoc(s, "inc(1)\n")
	edits, err := s.textDocumentFormatting(mockContext(), formattingParams(nil))
	require.NoError(t, err)
	assert.Nil(t, edits)
}

func TestFormattingParseError(t *testing.T) {
	s := testServer(t)
	openDoc(s, "inc( 1")
	edits, err := s.textDocumentFormatting(mockContext(), formattingParams(nil))
	require.NoError(t, err)
	assert.Nil(t, edits)

	edits, err = s.textDocumentFormatting(mockContext(), &protocol.DocumentFormattingParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: "file:///missing.ep"},
	})
	require.NoError(t, err)
	assert.Nil(t, edits)
}

func TestEndPosition(t *testing.T) {
	assert.Equal(t, protocol.Position{Line: 0, Character: 0}, endPosition(""))
	assert.Equal(t, protocol.Position{Line: 0, Character: 3}, endPosition("abc"))
	assert.Equal(t, protocol.Position{Line: 1, Character: 0}, endPosition("abc\n"))
	assert.Equal(t, protocol.Position{Line: 1, Character: 2}, endPosition("a\n😀"))
}
