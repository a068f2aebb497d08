// Copyright © 2024 The ELPS authors

package libassert

import (
	"fmt"

	"github.com/luthersystems/epilepsy/lang"
	"github.com/luthersystems/epilepsy/lang/langlib/internal/libutil"
)

// LoadPackage adds the assertion operators to reg.
func LoadPackage(reg *lang.Registry) error {
	return libutil.Register(reg, builtins)
}

var builtins = []*libutil.Builtin{
	libutil.FunctionDoc("assert", libutil.Formals("x"), builtinAssert,
		`Aborts evaluation if x is false.  Returns v() otherwise.`),
	libutil.FunctionDoc("assertWithMsg", libutil.Formals("x", "message"), builtinAssertWithMsg,
		`Aborts evaluation with message if x is false.  Returns v()
		otherwise.`),
	libutil.FunctionDoc("assertEq", libutil.Formals("x", "y"), builtinAssertEq,
		`Aborts evaluation unless x and y are structurally equal.  Returns
		v() otherwise.`),
	libutil.FunctionDoc("assertEqWithMsg", libutil.Formals("x", "y", "message"), builtinAssertEqWithMsg,
		`Aborts evaluation with message unless x and y are structurally
		equal.  Returns v() otherwise.`),
}

func builtinAssert(env *lang.Env, args []*lang.Term) (*lang.Term, error) {
	if !args[0].Truthy() {
		return nil, env.Abort(fmt.Sprintf("assertion failed: %v", args[0]))
	}
	return lang.Quote(), nil
}

func builtinAssertWithMsg(env *lang.Env, args []*lang.Term) (*lang.Term, error) {
	if !args[0].Truthy() {
		return nil, env.Abort(libutil.Text(args[1]))
	}
	return lang.Quote(), nil
}

func builtinAssertEq(env *lang.Env, args []*lang.Term) (*lang.Term, error) {
	if !args[0].Equal(args[1]) {
		return nil, env.Abort(fmt.Sprintf("assertion failed: %v != %v", args[0], args[1]))
	}
	return lang.Quote(), nil
}

func builtinAssertEqWithMsg(env *lang.Env, args []*lang.Term) (*lang.Term, error) {
	if !args[0].Equal(args[1]) {
		return nil, env.Abort(libutil.Text(args[2]))
	}
	return lang.Quote(), nil
}
