// Copyright © 2024 The ELPS authors

package lang

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
)

// Type is the type of a Term.
type Type uint8

// Possible Type values
const (
	// TInvalid (0) is not a valid term type.
	TInvalid Type = iota
	// TValue terms are inert, fully reduced data.  An atom stores its token
	// in Term.Str.  A sequence stores its items in Term.Cells and has
	// Term.Seq set.  Items of a sequence are never reduced by the evaluator,
	// even when they are TCall terms.
	TValue
	// TCall terms are unevaluated applications.  The operator name is stored
	// in Term.Str and argument terms in Term.Cells.
	TCall
)

var typeStrings = []string{
	TInvalid: "INVALID",
	TValue:   "value",
	TCall:    "call",
}

func (t Type) String() string {
	if int(t) >= len(typeStrings) {
		return typeStrings[TInvalid]
	}
	return typeStrings[t]
}

// Location is the position of a term in source text.
type Location struct {
	File string
	Line int // starting at 1 when tracked
	Col  int // starting at 1 when tracked
}

func (loc *Location) String() string {
	switch {
	case loc == nil:
		return "<native code>"
	case loc.Line == 0:
		return loc.File
	case loc.Col == 0:
		return fmt.Sprintf("%s:%d", loc.File, loc.Line)
	default:
		return fmt.Sprintf("%s:%d:%d", loc.File, loc.Line, loc.Col)
	}
}

// Term is an expression of the calculus.  Terms are immutable once
// constructed and may be shared freely between goroutines.
type Term struct {
	// Source is the term's originating location in source text, if any.
	// Source is ignored by Equal.
	Source *Location

	// Str is the token of an atom or the operator name of a call.
	Str string

	// Cells holds the items of a sequence or the arguments of a call.
	Cells []*Term

	Type Type

	// Seq distinguishes sequence values from atoms.
	Seq bool
}

var identRegexp = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// IsIdentifier returns true if name can be used as an operator name.
func IsIdentifier(name string) bool {
	return identRegexp.MatchString(name)
}

// Atom returns a value holding the single token tok.  The empty token is the
// empty sequence.
func Atom(tok string) *Term {
	if tok == "" {
		return Quote()
	}
	return &Term{Type: TValue, Str: tok}
}

// Int returns an atom holding the decimal representation of n.
func Int(n int) *Term {
	return Atom(strconv.Itoa(n))
}

// Uint returns an atom holding the decimal representation of n.
func Uint(n uint64) *Term {
	return Atom(strconv.FormatUint(n, 10))
}

// Bool returns the canonical boolean atom for b, 1 or 0.
func Bool(b bool) *Term {
	if b {
		return Atom("1")
	}
	return Atom("0")
}

// Quote wraps items as inert data.  Like v(x) in the text syntax, quoting a
// single atom produces that atom.
func Quote(items ...*Term) *Term {
	if len(items) == 1 && items[0] != nil && items[0].IsAtom() {
		return items[0]
	}
	cells := make([]*Term, len(items))
	copy(cells, items)
	return &Term{Type: TValue, Seq: true, Cells: cells}
}

// Call returns an unevaluated application of the operator name to args.  Call
// does not evaluate anything.  A name that is not an identifier, or a nil
// argument, is reported as a malformed-term error.
func Call(name string, args ...*Term) (*Term, error) {
	if !IsIdentifier(name) {
		return nil, malformedf("invalid operator name: %q", name)
	}
	for i, arg := range args {
		if arg == nil {
			return nil, malformedf("%s: argument %d is nil", name, i)
		}
	}
	cells := make([]*Term, len(args))
	copy(cells, args)
	return &Term{Type: TCall, Str: name, Cells: cells}, nil
}

// MustCall is like Call but panics if the call is malformed.  It is intended
// for terms written literally in Go source.
func MustCall(name string, args ...*Term) *Term {
	t, err := Call(name, args...)
	if err != nil {
		panic(err)
	}
	return t
}

// WithSource returns a shallow copy of t located at loc.
func (t *Term) WithSource(loc *Location) *Term {
	cp := *t
	cp.Source = loc
	return &cp
}

// IsValue returns true if t is fully reduced.
func (t *Term) IsValue() bool {
	return t.Type == TValue
}

// IsCall returns true if t is an unevaluated application.
func (t *Term) IsCall() bool {
	return t.Type == TCall
}

// IsAtom returns true if t is a value holding a single token.
func (t *Term) IsAtom() bool {
	return t.Type == TValue && !t.Seq
}

// IsSeq returns true if t is a sequence value.
func (t *Term) IsSeq() bool {
	return t.Type == TValue && t.Seq
}

// Len returns the number of items in a sequence, the number of arguments of a
// call, or 1 for an atom.
func (t *Term) Len() int {
	if t.IsAtom() {
		return 1
	}
	return len(t.Cells)
}

// Items returns the items of a value.  An atom is its own single item.
func (t *Term) Items() []*Term {
	if t.IsAtom() {
		return []*Term{t}
	}
	return t.Cells
}

// Truthy reports the truthiness of a value.  The atoms 0 and false and the
// empty sequence are false.  A sequence with one item is as truthy as the
// item.  Everything else is true.
func (t *Term) Truthy() bool {
	switch {
	case t.IsAtom():
		return t.Str != "" && t.Str != "0" && t.Str != "false"
	case t.IsSeq():
		if len(t.Cells) == 1 {
			return t.Cells[0].Truthy()
		}
		return len(t.Cells) > 0
	default:
		return true
	}
}

// Equal returns true if t and other are structurally identical.  Source
// locations are not compared.
func (t *Term) Equal(other *Term) bool {
	if t == other {
		return true
	}
	if t == nil || other == nil {
		return false
	}
	if t.Type != other.Type || t.Seq != other.Seq || t.Str != other.Str {
		return false
	}
	if len(t.Cells) != len(other.Cells) {
		return false
	}
	for i := range t.Cells {
		if !t.Cells[i].Equal(other.Cells[i]) {
			return false
		}
	}
	return true
}

// String returns t in the text syntax accepted by the parser.
func (t *Term) String() string {
	var buf bytes.Buffer
	t.write(&buf)
	return buf.String()
}

func (t *Term) write(buf *bytes.Buffer) {
	if t == nil {
		buf.WriteString("<nil>")
		return
	}
	switch t.Type {
	case TValue:
		if !t.Seq {
			buf.WriteString(t.Str)
			return
		}
		buf.WriteString("v(")
		for i, c := range t.Cells {
			if i > 0 {
				buf.WriteString(" ")
			}
			c.write(buf)
		}
		buf.WriteString(")")
	case TCall:
		buf.WriteString(t.Str)
		buf.WriteString("(")
		for i, c := range t.Cells {
			if i > 0 {
				buf.WriteString(", ")
			}
			c.write(buf)
		}
		buf.WriteString(")")
	default:
		buf.WriteString(typeStrings[TInvalid])
	}
}
