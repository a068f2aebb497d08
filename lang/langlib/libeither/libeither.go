// Copyright © 2024 The ELPS authors

// Package libeither implements values which hold one of two alternatives as
// choices with the variants left and right.
package libeither

import (
	"github.com/luthersystems/epilepsy/lang"
	"github.com/luthersystems/epilepsy/lang/langlib/internal/libutil"
	"github.com/luthersystems/epilepsy/lang/langlib/libchoice"
)

// Variant tags.
const (
	TagLeft  = "left"
	TagRight = "right"
)

// LoadPackage adds the either operators to reg.
func LoadPackage(reg *lang.Registry) error {
	return libutil.Register(reg, builtins)
}

var builtins = []*libutil.Builtin{
	libutil.FunctionDoc("left", libutil.Formals("x"), builtinLeft,
		`Returns the left alternative holding x.`),
	libutil.FunctionDoc("right", libutil.Formals("x"), builtinRight,
		`Returns the right alternative holding x.`),
	libutil.FunctionDoc("isLeft", libutil.Formals("either"), builtinIsLeft,
		`Returns 1 if either is a left alternative and 0 otherwise.`),
	libutil.FunctionDoc("isRight", libutil.Formals("either"), builtinIsRight,
		`Returns 1 if either is a right alternative and 0 otherwise.`),
}

func builtinLeft(env *lang.Env, args []*lang.Term) (*lang.Term, error) {
	return libchoice.New(TagLeft, args[0]), nil
}

func builtinRight(env *lang.Env, args []*lang.Term) (*lang.Term, error) {
	return libchoice.New(TagRight, args[0]), nil
}

func builtinIsLeft(env *lang.Env, args []*lang.Term) (*lang.Term, error) {
	return is(args[0], TagLeft)
}

func builtinIsRight(env *lang.Env, args []*lang.Term) (*lang.Term, error) {
	return is(args[0], TagRight)
}

func is(e *lang.Term, tag string) (*lang.Term, error) {
	tagOf, _, err := libchoice.Split(e)
	if err != nil {
		return nil, err
	}
	if tagOf != TagLeft && tagOf != TagRight {
		return nil, lang.TypeErrorf("not an either: %v", e)
	}
	return lang.Bool(tagOf == tag), nil
}
