// Copyright © 2024 The ELPS authors

package diagnostic

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/luthersystems/epilepsy/lang"
	"github.com/luthersystems/epilepsy/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRenderer(sources map[string]string) *Renderer {
	return &Renderer{
		Color: ColorNever,
		SourceReader: func(name string) ([]byte, error) {
			s, ok := sources[name]
			if !ok {
				return nil, os.ErrNotExist
			}
			return []byte(s), nil
		},
	}
}

func render(t *testing.T, r *Renderer, d Diagnostic) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, d))
	return buf.String()
}

func TestRenderError(t *testing.T) {
	r := testRenderer(map[string]string{
		"test.ep": "add(1, frob(2))",
	})
	got := render(t, r, Diagnostic{
		Severity: SeverityError,
		Message:  "unknown-operator: unknown operator: frob",
		Spans: []Span{
			{File: "test.ep", Line: 1, Col: 8, Label: "not registered"},
		},
	})
	assert.Contains(t, got, "error: unknown-operator: unknown operator: frob\n")
	assert.Contains(t, got, "--> test.ep:1:8\n")
	assert.Contains(t, got, " 1 |  add(1, frob(2))\n")
	assert.Contains(t, got, "   |         ^^^^ not registered\n")
}

func TestRenderWarning(t *testing.T) {
	r := testRenderer(map[string]string{
		"test.ep": "inc(1)\nadd(1)",
	})
	got := render(t, r, Diagnostic{
		Severity: SeverityWarning,
		Message:  "add: no overload for 1 arguments",
		Spans:    []Span{{File: "test.ep", Line: 2, Col: 1, EndCol: 6}},
	})
	assert.Contains(t, got, "warning: add: no overload for 1 arguments")
	assert.Contains(t, got, "--> test.ep:2:1")
	assert.Contains(t, got, "add(1)")
	assert.Contains(t, got, "^^^^^^")
}

func TestRenderNoSource(t *testing.T) {
	r := testRenderer(nil)
	got := render(t, r, Diagnostic{
		Severity: SeverityError,
		Message:  "some error",
		Spans:    []Span{{File: "<stdin>", Line: 5, Col: 3}},
	})
	assert.Contains(t, got, "error: some error")
	assert.Contains(t, got, "--> <stdin>:5:3")
	assert.Contains(t, got, "|")
	assert.NotContains(t, got, "^")
}

func TestRenderNotes(t *testing.T) {
	r := testRenderer(nil)
	got := render(t, r, Diagnostic{
		Severity: SeverityError,
		Message:  "aborted: boom",
		Notes:    []string{"in abort at test.ep:1:1", "in fail at test.ep:3:2"},
	})
	assert.Contains(t, got, "= note: in abort at test.ep:1:1\n")
	assert.Contains(t, got, "= note: in fail at test.ep:3:2\n")
	assert.NotContains(t, got, "-->")
}

func TestRenderMultipleDiagnostics(t *testing.T) {
	r := testRenderer(nil)
	var buf bytes.Buffer
	err := r.RenderAll(&buf, []Diagnostic{
		{Severity: SeverityWarning, Message: "first"},
		{Severity: SeverityNote, Message: "second"},
	})
	require.NoError(t, err)
	assert.Equal(t, "warning: first\n\nnote: second\n", buf.String())
}

func TestRenderColor(t *testing.T) {
	r := testRenderer(nil)
	r.Color = ColorAlways
	got := render(t, r, Diagnostic{Severity: SeverityError, Message: "m"})
	assert.True(t, strings.HasPrefix(got, ansiPalette.boldRed+"error"), got)

	// a buffer is never a terminal
	r.Color = ColorAuto
	got = render(t, r, Diagnostic{Severity: SeverityError, Message: "m"})
	assert.Equal(t, "error: m\n", got)
}

func TestParseColorMode(t *testing.T) {
	for s, mode := range map[string]ColorMode{"": ColorAuto, "auto": ColorAuto, "always": ColorAlways, "never": ColorNever} {
		m, err := ParseColorMode(s)
		require.NoError(t, err)
		assert.Equal(t, mode, m, s)
	}
	_, err := ParseColorMode("sometimes")
	assert.Error(t, err)
}

func TestTokenEnd(t *testing.T) {
	assert.Equal(t, 3, tokenEnd("inc(1)", 1))
	assert.Equal(t, 5, tokenEnd("inc(1)", 5))
	assert.Equal(t, 7, tokenEnd("v(a bcd)", 5))
	assert.Equal(t, 9, tokenEnd("short", 9))
}

func TestFromError(t *testing.T) {
	_, err := parser.Parse("test.ep", []byte("f(1,\n  2"))
	d := FromError(err)
	assert.Equal(t, SeverityError, d.Severity)
	assert.True(t, strings.HasPrefix(d.Message, "syntax: "), d.Message)
	require.Len(t, d.Spans, 1)
	assert.Equal(t, "test.ep", d.Spans[0].File)

	call := lang.MustCall("abort", lang.Atom("boom")).WithSource(&lang.Location{File: "test.ep", Line: 2, Col: 3})
	reg := lang.NewRegistry()
	require.NoError(t, lang.RegisterControl(reg))
	ev, err := lang.NewEvaluator(reg)
	require.NoError(t, err)
	_, err = ev.Eval(call)
	d = FromError(err)
	assert.Equal(t, "aborted: boom", d.Message)
	assert.Equal(t, []Span{{File: "test.ep", Line: 2, Col: 3}}, d.Spans)
	assert.Equal(t, []string{"in abort at test.ep:2:3"}, d.Notes)

	d = FromError(errors.New("open x.ep: no such file"))
	assert.Equal(t, "open x.ep: no such file", d.Message)
	assert.Empty(t, d.Spans)
}
