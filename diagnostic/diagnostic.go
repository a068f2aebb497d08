// Copyright © 2024 The ELPS authors

// Package diagnostic renders evaluation and syntax errors as annotated
// source snippets for command line output.
package diagnostic

// Severity indicates the severity level of a diagnostic.
type Severity int

// Severity levels.
const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityNote
)

var severityStrings = []string{
	SeverityError:   "error",
	SeverityWarning: "warning",
	SeverityNote:    "note",
}

func (s Severity) String() string {
	if s < 0 || int(s) >= len(severityStrings) {
		return "unknown"
	}
	return severityStrings[s]
}

// Span is a region of source text to underline.
type Span struct {
	File   string // source name, looked up with the renderer's SourceReader
	Line   int    // 1-based
	Col    int    // 1-based
	EndCol int    // 1-based and inclusive; zero extends to the end of the token
	Label  string
}

// Diagnostic is an error or warning with optional source annotations and
// trailing notes.
type Diagnostic struct {
	Severity Severity
	Message  string
	Spans    []Span
	Notes    []string
}
