// Copyright © 2024 The ELPS authors

// Package libchoice implements tagged unions.  A choice is the value
// v(tag payload) where tag is an identifier atom.
package libchoice

import (
	"github.com/luthersystems/epilepsy/lang"
	"github.com/luthersystems/epilepsy/lang/langlib/internal/libutil"
)

// LoadPackage adds the choice operators to reg.
func LoadPackage(reg *lang.Registry) error {
	return libutil.Register(reg, builtins)
}

var builtins = []*libutil.Builtin{
	libutil.FunctionDoc("choice", libutil.Formals("tag", "payload"), builtinChoice,
		`Returns the choice value with variant tag carrying payload.`),
	libutil.FunctionDoc("match", libutil.Formals("choice", "matcher"), builtinMatch,
		`
		Dispatches choice to the arm for its tag, passing the payload.  If
		matcher is an atom the arm is the operator named by matcher,
		an underscore and the tag.  Otherwise matcher is a table of the
		form v(v(Tag op) ...) naming an arm operator for each tag.  A tag
		with no arm is an unmatched-variant error.
		`),
	libutil.FunctionDoc("matchWithArgs", libutil.Formals("choice", "matcher", "extra"), builtinMatchWithArgs,
		`
		Like match but passes the items of extra to the arm after the
		payload.
		`),
	libutil.FunctionDoc("tagOf", libutil.Formals("choice"), builtinTagOf,
		`Returns the variant tag of choice.`),
	libutil.FunctionDoc("payloadOf", libutil.Formals("choice"), builtinPayloadOf,
		`Returns the payload of choice.`),
}

// New returns the choice value with variant tag carrying payload.
func New(tag string, payload *lang.Term) *lang.Term {
	return lang.Quote(lang.Atom(tag), payload)
}

// Split returns the tag and payload of the choice value c.
func Split(c *lang.Term) (string, *lang.Term, error) {
	if !c.IsSeq() || c.Len() != 2 {
		return "", nil, lang.TypeErrorf("not a choice: %v", c)
	}
	tag := c.Cells[0]
	if !tag.IsAtom() || !lang.IsIdentifier(tag.Str) {
		return "", nil, lang.TypeErrorf("not a choice: %v", c)
	}
	return tag.Str, c.Cells[1], nil
}

// Is returns true if c is a choice with variant tag.
func Is(c *lang.Term, tag string) (bool, error) {
	t, _, err := Split(c)
	if err != nil {
		return false, err
	}
	return t == tag, nil
}

func builtinChoice(env *lang.Env, args []*lang.Term) (*lang.Term, error) {
	tag := args[0]
	if !tag.IsAtom() || !lang.IsIdentifier(tag.Str) {
		return nil, lang.TypeErrorf("choice tag is not an identifier: %v", tag)
	}
	return New(tag.Str, args[1]), nil
}

func builtinMatch(env *lang.Env, args []*lang.Term) (*lang.Term, error) {
	return match(env, args[0], args[1], nil)
}

func builtinMatchWithArgs(env *lang.Env, args []*lang.Term) (*lang.Term, error) {
	return match(env, args[0], args[1], args[2].Items())
}

// match returns a call to the arm for c.  The evaluator reduces the call.
func match(env *lang.Env, c *lang.Term, matcher *lang.Term, extra []*lang.Term) (*lang.Term, error) {
	tag, payload, err := Split(c)
	if err != nil {
		return nil, err
	}
	arm, err := findArm(env.Registry(), tag, matcher)
	if err != nil {
		return nil, err
	}
	armArgs := make([]*lang.Term, 0, 1+len(extra))
	armArgs = append(armArgs, payload)
	armArgs = append(armArgs, extra...)
	return lang.Call(arm, armArgs...)
}

func findArm(reg *lang.Registry, tag string, matcher *lang.Term) (string, error) {
	if matcher.IsAtom() {
		arm := matcher.Str + "_" + tag
		if _, err := reg.Lookup(arm); err != nil && !reg.IsOverloaded(arm) {
			return "", lang.UnmatchedVariant(tag)
		}
		return arm, nil
	}
	for _, row := range matcher.Items() {
		if !row.IsSeq() || row.Len() != 2 || !row.Cells[0].IsAtom() || !row.Cells[1].IsAtom() {
			return "", lang.TypeErrorf("invalid match arm: %v", row)
		}
		if row.Cells[0].Str == tag {
			return row.Cells[1].Str, nil
		}
	}
	return "", lang.UnmatchedVariant(tag)
}

func builtinTagOf(env *lang.Env, args []*lang.Term) (*lang.Term, error) {
	tag, _, err := Split(args[0])
	if err != nil {
		return nil, err
	}
	return lang.Atom(tag), nil
}

func builtinPayloadOf(env *lang.Env, args []*lang.Term) (*lang.Term, error) {
	_, payload, err := Split(args[0])
	if err != nil {
		return nil, err
	}
	return payload, nil
}
