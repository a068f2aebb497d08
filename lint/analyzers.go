// Copyright © 2024 The ELPS authors

package lint

import (
	"fmt"
	"sort"
	"strings"

	"github.com/luthersystems/epilepsy/lang"
	"golang.org/x/exp/slices"
)

// AnalyzerUnknownOperator reports calls to operators that are not
// registered.
var AnalyzerUnknownOperator = &Analyzer{
	Name:     "unknown-operator",
	Severity: SeverityError,
	Doc: `Report calls to operators missing from the registry.

Evaluating such a call fails with an unknown-operator error.`,
	Run: func(pass *Pass) error {
		WalkCalls(pass.Terms, func(call *lang.Term) {
			if !Known(pass.Registry, call.Str) {
				pass.Reportf(call.Source, "unknown operator: %s", call.Str)
			}
		})
		return nil
	},
}

// AnalyzerOperatorArity reports calls whose argument count matches neither
// the operator's arity nor any member of its overload group.
var AnalyzerOperatorArity = &Analyzer{
	Name:     "operator-arity",
	Severity: SeverityError,
	Doc: `Report calls with the wrong number of arguments.

Overload groups accept any argument count they declare.`,
	Run: func(pass *Pass) error {
		WalkCalls(pass.Terms, func(call *lang.Term) {
			reg := pass.Registry
			got := len(call.Cells)
			if reg.IsOverloaded(call.Str) {
				arities := reg.Overloads(call.Str)
				if !slices.Contains(arities, got) {
					pass.Reportf(call.Source, "%s: no overload for %d arguments (have %s)", call.Str, got, joinInts(arities))
				}
				return
			}
			op, err := reg.Lookup(call.Str)
			if err == nil && op.Arity != got {
				pass.Reportf(call.Source, "%s: expected %d arguments (got %d)", call.Str, op.Arity, got)
			}
		})
		return nil
	},
}

// AnalyzerQuotedCall reports calls written inside a quote.  They are data
// and are never evaluated, which is rarely intended.
var AnalyzerQuotedCall = &Analyzer{
	Name:     "quoted-call",
	Severity: SeverityInfo,
	Doc: `Report calls inside v(...) which will never be evaluated.

A call inside a quote is inert data.  Move it out of the quote to
evaluate it.`,
	Run: func(pass *Pass) error {
		Walk(pass.Terms, func(t *lang.Term, quoted bool) {
			if t.IsCall() && quoted {
				pass.Reportf(t.Source, "call to %s inside a quote is never evaluated", t.Str)
			}
		})
		return nil
	},
}

// AnalyzerOperatorReference checks operator names passed as data to while,
// match and matchWithArgs.
var AnalyzerOperatorReference = &Analyzer{
	Name:     "operator-reference",
	Severity: SeverityWarning,
	Doc: `Report operator references that do not name a registered operator.

The predicate and step of while, and the arms of a literal match table,
are operator names.  A misspelled name fails only when it is reached.`,
	Run: func(pass *Pass) error {
		check := func(call, ref *lang.Term, role string) {
			if !ref.IsAtom() || !lang.IsIdentifier(ref.Str) {
				pass.Reportf(call.Source, "%s: %s is not an operator name: %v", call.Str, role, ref)
				return
			}
			if !Known(pass.Registry, ref.Str) {
				pass.Reportf(call.Source, "%s: %s names unknown operator: %s", call.Str, role, ref.Str)
			}
		}
		WalkCalls(pass.Terms, func(call *lang.Term) {
			switch call.Str {
			case "while":
				if len(call.Cells) == 3 {
					check(call, call.Cells[0], "predicate")
					check(call, call.Cells[1], "step")
				}
			case "match", "matchWithArgs":
				if len(call.Cells) < 2 || !call.Cells[1].IsSeq() {
					return
				}
				for _, row := range call.Cells[1].Items() {
					if !row.IsSeq() || row.Len() != 2 {
						pass.Reportf(call.Source, "%s: malformed arm: %v", call.Str, row)
						continue
					}
					check(call, row.Cells[1], fmt.Sprintf("arm %v", row.Cells[0]))
				}
			}
		})
		return nil
	},
}

// AnalyzerChoiceTag reports choice values built with a tag that is not an
// identifier.
var AnalyzerChoiceTag = &Analyzer{
	Name:     "choice-tag",
	Severity: SeverityError,
	Doc:      `Report choice calls whose literal tag is not an identifier.`,
	Run: func(pass *Pass) error {
		WalkCalls(pass.Terms, func(call *lang.Term) {
			if call.Str != "choice" || len(call.Cells) != 2 {
				return
			}
			tag := call.Cells[0]
			if tag.IsValue() && !(tag.IsAtom() && lang.IsIdentifier(tag.Str)) {
				pass.Reportf(call.Source, "choice tag is not an identifier: %v", tag)
			}
		})
		return nil
	},
}

// DefaultAnalyzers returns the built-in set of lint checks.
func DefaultAnalyzers() []*Analyzer {
	return []*Analyzer{
		AnalyzerUnknownOperator,
		AnalyzerOperatorArity,
		AnalyzerQuotedCall,
		AnalyzerOperatorReference,
		AnalyzerChoiceTag,
	}
}

// AnalyzerNames returns the sorted names of the default analyzers.
func AnalyzerNames() []string {
	analyzers := DefaultAnalyzers()
	names := make([]string, len(analyzers))
	for i, a := range analyzers {
		names[i] = a.Name
	}
	sort.Strings(names)
	return names
}

// AnalyzerDoc returns the summary line of every default analyzer.
func AnalyzerDoc() string {
	var b strings.Builder
	for _, a := range DefaultAnalyzers() {
		summary, _, _ := strings.Cut(a.Doc, "\n")
		fmt.Fprintf(&b, "  %s\n    %s\n\n", a.Name, summary)
	}
	return b.String()
}

func joinInts(ns []int) string {
	s := make([]string, len(ns))
	for i, n := range ns {
		s[i] = fmt.Sprint(n)
	}
	return strings.Join(s, ", ")
}
