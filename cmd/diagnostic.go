// Copyright © 2024 The ELPS authors

package cmd

import (
	"io"

	"github.com/luthersystems/epilepsy/diagnostic"
	lintpkg "github.com/luthersystems/epilepsy/lint"
	"github.com/spf13/viper"
)

func colorMode() diagnostic.ColorMode {
	mode, err := diagnostic.ParseColorMode(viper.GetString(keyColor))
	if err != nil {
		return diagnostic.ColorAuto
	}
	return mode
}

func newRenderer(sources map[string][]byte) *diagnostic.Renderer {
	return &diagnostic.Renderer{
		Color:        colorMode(),
		SourceReader: diagnostic.MapSource(sources),
	}
}

// lintDiagToDiagnostic converts a lint.Diagnostic to a diagnostic.Diagnostic.
func lintDiagToDiagnostic(ld lintpkg.Diagnostic) diagnostic.Diagnostic {
	sev := diagnostic.SeverityWarning
	switch ld.Severity {
	case lintpkg.SeverityError:
		sev = diagnostic.SeverityError
	case lintpkg.SeverityInfo:
		sev = diagnostic.SeverityNote
	}
	d := diagnostic.Diagnostic{
		Severity: sev,
		Message:  ld.Message + " (" + ld.Analyzer + ")",
	}
	if ld.Pos.Line > 0 {
		d.Spans = append(d.Spans, diagnostic.Span{
			File: ld.Pos.File,
			Line: ld.Pos.Line,
			Col:  ld.Pos.Col,
		})
	}
	d.Notes = append(d.Notes, ld.Notes...)
	d.Notes = append(d.Notes, "to suppress: add \"; nolint:"+ld.Analyzer+"\" as a comment on this line")
	return d
}

func renderLintDiagnostics(w io.Writer, r *diagnostic.Renderer, diags []lintpkg.Diagnostic) error {
	ds := make([]diagnostic.Diagnostic, len(diags))
	for i, ld := range diags {
		ds[i] = lintDiagToDiagnostic(ld)
	}
	return r.RenderAll(w, ds)
}
