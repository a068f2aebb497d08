// Copyright © 2024 The ELPS authors

package libvariadics

import (
	"github.com/luthersystems/epilepsy/lang"
	"github.com/luthersystems/epilepsy/lang/langlib/internal/libutil"
)

// LoadPackage adds the variadic argument operators to reg.
func LoadPackage(reg *lang.Registry) error {
	return libutil.Register(reg, builtins)
}

var builtins = []*libutil.Builtin{
	libutil.FunctionDoc("variadicsCount", libutil.Formals("args"), builtinCount,
		`Returns the number of items in args.  An atom counts as one item
		and v() as none.`),
	libutil.FunctionDoc("variadicsHead", libutil.Formals("args"), builtinHead,
		`Returns the first item of args.`),
	libutil.FunctionDoc("variadicsTail", libutil.Formals("args"), builtinTail,
		`Returns a value holding every item of args but the first.`),
}

func builtinCount(env *lang.Env, args []*lang.Term) (*lang.Term, error) {
	return lang.Int(args[0].Len()), nil
}

func builtinHead(env *lang.Env, args []*lang.Term) (*lang.Term, error) {
	items := args[0].Items()
	if len(items) == 0 {
		return nil, lang.TypeErrorf("variadicsHead: no arguments")
	}
	return items[0], nil
}

func builtinTail(env *lang.Env, args []*lang.Term) (*lang.Term, error) {
	items := args[0].Items()
	if len(items) == 0 {
		return nil, lang.TypeErrorf("variadicsTail: no arguments")
	}
	return lang.Quote(items[1:]...), nil
}
