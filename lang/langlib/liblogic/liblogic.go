// Copyright © 2024 The ELPS authors

package liblogic

import (
	"github.com/luthersystems/epilepsy/lang"
	"github.com/luthersystems/epilepsy/lang/langlib/internal/libutil"
)

// LoadPackage adds the boolean operators to reg.
func LoadPackage(reg *lang.Registry) error {
	return libutil.Register(reg, builtins)
}

var builtins = []*libutil.Builtin{
	libutil.FunctionDoc("not", libutil.Formals("x"), builtinNot,
		`Returns 1 if x is false and 0 otherwise.`),
	libutil.FunctionDoc("and", libutil.Formals("x", "y"), builtinAnd,
		`Returns 1 if both x and y are true and 0 otherwise.  Both
		arguments are evaluated.`),
	libutil.FunctionDoc("or", libutil.Formals("x", "y"), builtinOr,
		`Returns 1 if either x or y is true and 0 otherwise.  Both
		arguments are evaluated.`),
	libutil.FunctionDoc("xor", libutil.Formals("x", "y"), builtinXor,
		`Returns 1 if exactly one of x and y is true and 0 otherwise.`),
}

func builtinNot(env *lang.Env, args []*lang.Term) (*lang.Term, error) {
	return lang.Bool(!args[0].Truthy()), nil
}

func builtinAnd(env *lang.Env, args []*lang.Term) (*lang.Term, error) {
	return lang.Bool(args[0].Truthy() && args[1].Truthy()), nil
}

func builtinOr(env *lang.Env, args []*lang.Term) (*lang.Term, error) {
	return lang.Bool(args[0].Truthy() || args[1].Truthy()), nil
}

func builtinXor(env *lang.Env, args []*lang.Term) (*lang.Term, error) {
	return lang.Bool(args[0].Truthy() != args[1].Truthy()), nil
}
