// Copyright © 2024 The ELPS authors

// Package libmaybe implements optional values as choices with the variants
// just and nothing.
package libmaybe

import (
	"github.com/luthersystems/epilepsy/lang"
	"github.com/luthersystems/epilepsy/lang/langlib/internal/libutil"
	"github.com/luthersystems/epilepsy/lang/langlib/libchoice"
)

// Variant tags.
const (
	TagJust    = "just"
	TagNothing = "nothing"
)

// LoadPackage adds the maybe operators to reg.
func LoadPackage(reg *lang.Registry) error {
	return libutil.Register(reg, builtins)
}

var builtins = []*libutil.Builtin{
	libutil.FunctionDoc("just", libutil.Formals("x"), builtinJust,
		`Returns a maybe holding x.`),
	libutil.FunctionDoc("nothing", libutil.Formals(), builtinNothing,
		`Returns the empty maybe.`),
	libutil.FunctionDoc("isJust", libutil.Formals("maybe"), builtinIsJust,
		`Returns 1 if maybe holds a value and 0 otherwise.`),
	libutil.FunctionDoc("isNothing", libutil.Formals("maybe"), builtinIsNothing,
		`Returns 1 if maybe is empty and 0 otherwise.`),
}

func builtinJust(env *lang.Env, args []*lang.Term) (*lang.Term, error) {
	return libchoice.New(TagJust, args[0]), nil
}

func builtinNothing(env *lang.Env, args []*lang.Term) (*lang.Term, error) {
	return libchoice.New(TagNothing, lang.Quote()), nil
}

func builtinIsJust(env *lang.Env, args []*lang.Term) (*lang.Term, error) {
	return is(args[0], TagJust)
}

func builtinIsNothing(env *lang.Env, args []*lang.Term) (*lang.Term, error) {
	return is(args[0], TagNothing)
}

func is(m *lang.Term, tag string) (*lang.Term, error) {
	tagOf, _, err := libchoice.Split(m)
	if err != nil {
		return nil, err
	}
	if tagOf != TagJust && tagOf != TagNothing {
		return nil, lang.TypeErrorf("not a maybe: %v", m)
	}
	return lang.Bool(tagOf == tag), nil
}
