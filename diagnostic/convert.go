// Copyright © 2024 The ELPS authors

package diagnostic

import (
	"errors"

	"github.com/luthersystems/epilepsy/lang"
	"github.com/luthersystems/epilepsy/parser"
)

// FromError converts err to a Diagnostic.  Evaluation errors are located at
// the failing call and list the call stack as notes.  Syntax errors are
// located where parsing stopped.
func FromError(err error) Diagnostic {
	var serr *parser.SyntaxError
	if errors.As(err, &serr) {
		return Diagnostic{
			Severity: SeverityError,
			Message:  "syntax: " + serr.Msg,
			Spans:    locationSpans(serr.Source),
		}
	}
	var lerr *lang.ErrorVal
	if !errors.As(err, &lerr) {
		return Diagnostic{Severity: SeverityError, Message: err.Error()}
	}
	d := Diagnostic{
		Severity: SeverityError,
		Message:  lerr.Condition + ": " + lerr.ErrorMessage(),
	}
	if lerr.Term != nil {
		d.Spans = locationSpans(lerr.Term.Source)
	}
	if lerr.Stack != nil {
		frames := lerr.Stack.Frames
		for i := len(frames) - 1; i >= 0; i-- {
			d.Notes = append(d.Notes, "in "+frames[i].Name+" at "+frames[i].Source.String())
		}
	}
	return d
}

func locationSpans(loc *lang.Location) []Span {
	if loc == nil {
		return nil
	}
	return []Span{{File: loc.File, Line: loc.Line, Col: loc.Col}}
}
