// Copyright © 2024 The ELPS authors

// Package lint provides static checks of term source files against an
// operator registry.
//
// The linter is modeled after go vet: each check is an independent Analyzer
// that receives parsed terms and reports diagnostics.  Embedders may define
// checks for their own operators alongside the built-in set.
package lint

import (
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"

	"github.com/luthersystems/epilepsy/lang"
	"github.com/luthersystems/epilepsy/parser"
	"golang.org/x/exp/slices"
)

// Severity indicates the severity level of a lint diagnostic.
type Severity int

// Severity levels.  The zero value takes the analyzer's severity.
const (
	severityUnset Severity = iota
	SeverityError
	SeverityWarning
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return "unknown"
	}
}

// MarshalJSON serializes the severity as a JSON string.
func (s Severity) MarshalJSON() ([]byte, error) {
	if s == severityUnset {
		return json.Marshal(SeverityWarning.String())
	}
	return json.Marshal(s.String())
}

// Analyzer defines a single lint check.
type Analyzer struct {
	// Name is a short identifier for the check, e.g. "operator-arity".
	Name string

	// Doc is a human-readable description.  The first line is a summary.
	Doc string

	// Severity is the default severity of reported diagnostics.
	Severity Severity

	// Run executes the check and calls pass.Report for each finding.
	Run func(pass *Pass) error
}

// Pass provides context to a running analyzer.
type Pass struct {
	Analyzer *Analyzer
	Filename string
	Terms    []*lang.Term

	// Registry holds the operators the source will be evaluated against.
	Registry *lang.Registry

	diagnostics []Diagnostic
}

// Report records a diagnostic finding.
func (p *Pass) Report(d Diagnostic) {
	d.Analyzer = p.Analyzer.Name
	if d.Severity == severityUnset {
		d.Severity = p.Analyzer.Severity
	}
	p.diagnostics = append(p.diagnostics, d)
}

// Reportf reports a diagnostic located at source.
func (p *Pass) Reportf(source *lang.Location, format string, args ...interface{}) {
	d := Diagnostic{Message: fmt.Sprintf(format, args...)}
	if source != nil {
		d.Pos = Position{File: source.File, Line: source.Line, Col: source.Col}
	}
	p.Report(d)
}

// Diagnostic is a single reported problem.
type Diagnostic struct {
	Pos      Position `json:"pos"`
	Message  string   `json:"message"`
	Analyzer string   `json:"analyzer"`
	Severity Severity `json:"severity"`
	Notes    []string `json:"notes,omitempty"`
}

// Position identifies a location in source text.
type Position struct {
	File string `json:"file"`
	Line int    `json:"line"`
	Col  int    `json:"col,omitempty"`
}

// String returns the position in file:line:col format.
func (p Position) String() string {
	if p.Line == 0 {
		return p.File
	}
	if p.Col > 0 {
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Col)
	}
	return fmt.Sprintf("%s:%d", p.File, p.Line)
}

// String returns the diagnostic in go vet style.
func (d Diagnostic) String() string {
	s := fmt.Sprintf("%s: %s (%s)", d.Pos, d.Message, d.Analyzer)
	for _, n := range d.Notes {
		s += "\n  = note: " + n
	}
	return s
}

// Linter runs a set of analyzers over source files.
type Linter struct {
	Analyzers []*Analyzer
	Registry  *lang.Registry
}

// LintFile parses and analyzes a single source file.  A syntax error is
// returned as an error.
func (l *Linter) LintFile(source []byte, filename string) ([]Diagnostic, error) {
	terms, err := parser.Parse(filename, source)
	if err != nil {
		return nil, err
	}
	return l.LintTerms(source, filename, terms)
}

// LintTerms analyzes terms already parsed from source.  Source is consulted
// only for nolint comments.
func (l *Linter) LintTerms(source []byte, filename string, terms []*lang.Term) ([]Diagnostic, error) {
	var all []Diagnostic
	for _, analyzer := range l.Analyzers {
		pass := &Pass{
			Analyzer: analyzer,
			Filename: filename,
			Terms:    terms,
			Registry: l.Registry,
		}
		if err := analyzer.Run(pass); err != nil {
			return nil, fmt.Errorf("%s: analyzer %s: %w", filename, analyzer.Name, err)
		}
		for i := range pass.diagnostics {
			if pass.diagnostics[i].Pos.File == "" {
				pass.diagnostics[i].Pos.File = filename
			}
		}
		all = append(all, pass.diagnostics...)
	}
	all = filterSuppressed(all, nolintLines(source))
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Pos.Line != all[j].Pos.Line {
			return all[i].Pos.Line < all[j].Pos.Line
		}
		return all[i].Pos.Col < all[j].Pos.Col
	})
	return all, nil
}

var nolintRegexp = regexp.MustCompile(`;\s*nolint(?::([\w,\- ]+))?\s*$`)

// nolintLines maps line numbers to the analyzers suppressed on them by a
// trailing ";nolint" or ";nolint:name,name" comment.  A nil slice
// suppresses every analyzer.
func nolintLines(source []byte) map[int][]string {
	lines := make(map[int][]string)
	for i, line := range strings.Split(string(source), "\n") {
		m := nolintRegexp.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		var names []string
		for _, name := range strings.Split(m[1], ",") {
			if name = strings.TrimSpace(name); name != "" {
				names = append(names, name)
			}
		}
		lines[i+1] = names
	}
	return lines
}

func filterSuppressed(diags []Diagnostic, nolint map[int][]string) []Diagnostic {
	var filtered []Diagnostic
	for _, d := range diags {
		names, ok := nolint[d.Pos.Line]
		if ok && (names == nil || slices.Contains(names, d.Analyzer)) {
			continue
		}
		filtered = append(filtered, d)
	}
	return filtered
}

// FormatText writes diagnostics in go vet text format.
func FormatText(w io.Writer, diags []Diagnostic) error {
	for _, d := range diags {
		if _, err := fmt.Fprintln(w, d.String()); err != nil {
			return err
		}
	}
	return nil
}

// FormatJSON writes diagnostics as JSON.
func FormatJSON(w io.Writer, diags []Diagnostic) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(diags)
}
