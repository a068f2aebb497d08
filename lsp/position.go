// Copyright © 2024 The ELPS authors

package lsp

import (
	"strings"

	"github.com/luthersystems/epilepsy/lang"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// toLSPPosition converts a 1-based line and column to a 0-based LSP
// position.
func toLSPPosition(line, col int) protocol.Position {
	if line > 0 {
		line--
	}
	if col > 0 {
		col--
	}
	return protocol.Position{
		Line:      safeUint(line),
		Character: safeUint(col),
	}
}

// safeUint converts a non-negative int to protocol.UInteger, clamping
// negative values to zero.
func safeUint(n int) protocol.UInteger {
	if n < 0 {
		return 0
	}
	return protocol.UInteger(n) // #nosec G115 -- line/col are always small positive ints
}

// locationRange returns the range of width characters starting at loc.
func locationRange(loc *lang.Location, width int) protocol.Range {
	start := toLSPPosition(loc.Line, loc.Col)
	end := start
	end.Character += safeUint(width)
	return protocol.Range{Start: start, End: end}
}

// wordAtPosition extracts the token at the given 0-based LSP position.  The
// cursor can be inside or at the end of a token.
func wordAtPosition(content string, line, col int) string {
	lines := strings.Split(content, "\n")
	if line < 0 || line >= len(lines) {
		return ""
	}
	ln := lines[line]
	if col < 0 || col > len(ln) {
		return ""
	}
	start := col
	for start > 0 && isTokenChar(ln[start-1]) {
		start--
	}
	end := col
	for end < len(ln) && isTokenChar(ln[end]) {
		end++
	}
	return ln[start:end]
}

// prefixAtPosition returns the part of the token at the given position which
// precedes the cursor.
func prefixAtPosition(content string, line, col int) string {
	lines := strings.Split(content, "\n")
	if line < 0 || line >= len(lines) {
		return ""
	}
	ln := lines[line]
	if col < 0 || col > len(ln) {
		return ""
	}
	start := col
	for start > 0 && isTokenChar(ln[start-1]) {
		start--
	}
	return ln[start:col]
}

func isTokenChar(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', '(', ')', ',', ';':
		return false
	}
	return true
}

// uriToPath converts a file:// URI to a filesystem path.
func uriToPath(uri string) string {
	if path, ok := strings.CutPrefix(uri, "file://"); ok {
		return path
	}
	return uri
}

// pathToURI converts a filesystem path to a file:// URI.
func pathToURI(path string) string {
	if strings.HasPrefix(path, "/") {
		return "file://" + path
	}
	return path
}
