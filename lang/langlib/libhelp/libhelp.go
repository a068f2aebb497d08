// Copyright © 2024 The ELPS authors

// Package libhelp renders operator documentation for humans.
package libhelp

import (
	"fmt"
	"io"
	"strings"

	"github.com/luthersystems/epilepsy/lang"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
)

// WrapWidth is the column at which documentation is wrapped.
const WrapWidth = 72

// CheckMissing returns the sorted names of operators in reg which have no
// documentation.  Overload groups are documented by their members and are
// not reported.
func CheckMissing(reg *lang.Registry) []string {
	var missing []string
	for _, name := range reg.Names() {
		if reg.IsOverloaded(name) {
			continue
		}
		doc, err := reg.Doc(name)
		if err != nil || strings.TrimSpace(doc) == "" {
			missing = append(missing, name)
		}
	}
	return missing
}

// Signature returns the call syntax of the operator name, e.g. get(record,
// index).  Parameters with unknown names are numbered.
func Signature(reg *lang.Registry, name string) (string, error) {
	if reg.IsOverloaded(name) {
		arities := reg.Overloads(name)
		sigs := make([]string, len(arities))
		for i, n := range arities {
			concrete, err := reg.ResolveOverload(name, n)
			if err != nil {
				return "", err
			}
			sig, err := Signature(reg, concrete)
			if err != nil {
				return "", err
			}
			sigs[i] = name + strings.TrimPrefix(sig, concrete)
		}
		return strings.Join(sigs, " | "), nil
	}
	op, err := reg.Lookup(name)
	if err != nil {
		return "", err
	}
	formals := make([]string, op.Arity)
	for i := range formals {
		if i < len(op.Formals) {
			formals[i] = op.Formals[i]
		} else {
			formals[i] = fmt.Sprintf("arg%d", i)
		}
	}
	return fmt.Sprintf("%s(%s)", name, strings.Join(formals, ", ")), nil
}

// RenderOperator writes to w the kind, signature and documentation of the
// operator name.  The exact formatting is subject to change.
func RenderOperator(w io.Writer, reg *lang.Registry, name string) error {
	sig, err := Signature(reg, name)
	if err != nil {
		return err
	}
	kind := "overload"
	if !reg.IsOverloaded(name) {
		op, err := reg.Lookup(name)
		if err != nil {
			return err
		}
		kind = op.Kind.String()
	}
	_, err = fmt.Fprintf(w, "%s %s\n", kind, sig)
	if err != nil {
		return err
	}
	doc, err := reg.Doc(name)
	if err != nil {
		return err
	}
	doc = cleanDocstring(doc)
	if doc != "" {
		_, err = fmt.Fprintln(w, doc)
	}
	return err
}

// RenderAll writes documentation for every operator in reg to w, separated
// by blank lines.
func RenderAll(w io.Writer, reg *lang.Registry) error {
	for i, name := range reg.Names() {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		err := RenderOperator(w, reg, name)
		if err != nil {
			return fmt.Errorf("operator %s: %w", name, err)
		}
	}
	return nil
}

// Describe returns the rendered documentation of the operator name.
func Describe(reg *lang.Registry, name string) (string, error) {
	var buf strings.Builder
	err := RenderOperator(&buf, reg, name)
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

func cleanDocstring(doc string) string {
	doc = strings.Trim(doc, "\n")
	if strings.TrimSpace(doc) == "" {
		return ""
	}
	doc = indent.String(wordwrap.String(dedentDoc(doc), WrapWidth), 2)
	return strings.TrimRight(doc, " \n")
}

// dedentDoc removes the common leading whitespace of all lines after the
// first, which in a raw string literal carries no source indentation.
func dedentDoc(s string) string {
	s = strings.ReplaceAll(s, "\t", "    ")
	lines := strings.Split(s, "\n")
	minWS := -1
	for i, line := range lines {
		trimmed := strings.TrimLeft(line, " ")
		if trimmed == "" || (i == 0 && len(lines) > 1) {
			continue
		}
		if ws := len(line) - len(trimmed); minWS < 0 || ws < minWS {
			minWS = ws
		}
	}
	lines[0] = strings.TrimLeft(lines[0], " ")
	for i := 1; i < len(lines); i++ {
		switch {
		case strings.TrimSpace(lines[i]) == "":
			lines[i] = ""
		case minWS > 0 && len(lines[i]) >= minWS:
			lines[i] = lines[i][minWS:]
		}
	}
	return strings.Join(lines, "\n")
}
