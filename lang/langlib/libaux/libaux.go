// Copyright © 2024 The ELPS authors

package libaux

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/luthersystems/epilepsy/lang"
	"github.com/luthersystems/epilepsy/lang/langlib/internal/libutil"
)

// LoadPackage adds the auxiliary operators to reg.
func LoadPackage(reg *lang.Registry) error {
	return libutil.Register(reg, builtins)
}

var builtins = []*libutil.Builtin{
	libutil.FunctionDoc("cat", libutil.Formals("x", "y"), builtinCat,
		`Joins the tokens of x and y into a single atom.  v() joins as
		the empty token, so cat(v(), v()) is v().`),
	libutil.FunctionDoc("cat3", libutil.Formals("x", "y", "z"), builtinCat,
		`Joins the tokens of x, y and z into a single atom.`),
	libutil.FunctionDoc("cat4", libutil.Formals("x", "y", "z", "w"), builtinCat,
		`Joins the tokens of x, y, z and w into a single atom.`),
	libutil.FunctionDoc("stringify", libutil.Formals("x"), builtinStringify,
		`Returns an atom holding the printed form of x as a double quoted
		string literal.  Spaces, parentheses, commas and semicolons are
		written as hex escapes so the literal reads back as one atom.`),
	libutil.FunctionDoc("empty", libutil.Formals("x"), builtinEmpty,
		`Returns 1 if x is v() and 0 otherwise.`),
	libutil.FunctionDoc("id", libutil.Formals("x"), builtinID,
		`Returns x.`),
	libutil.FunctionDoc("expand", libutil.Formals("x"), builtinID,
		`Returns x.  Arguments are already fully evaluated, so expand
		only marks a place where evaluation is expected.`),
	libutil.FunctionDoc("consume", libutil.Formals("x"), builtinConsume,
		`Returns v() regardless of x.`),
	libutil.FunctionDoc("const", libutil.Formals("x", "ignored"), builtinConst,
		`Returns x.`),
	libutil.FunctionDoc("todo", libutil.Formals("name"), builtinTodo,
		`Aborts evaluation reporting that name is not yet implemented.`),
	libutil.FunctionDoc("todoWithMsg", libutil.Formals("name", "message"), builtinTodoWithMsg,
		`Like todo but includes message in the report.`),
	libutil.FunctionDoc("unimplemented", libutil.Formals("name"), builtinUnimplemented,
		`Aborts evaluation reporting that name is unimplemented.`),
	libutil.FunctionDoc("unimplementedWithMsg", libutil.Formals("name", "message"), builtinUnimplementedWithMsg,
		`Like unimplemented but includes message in the report.`),
}

func token(t *lang.Term) (string, error) {
	switch {
	case t.IsAtom():
		return t.Str, nil
	case t.IsSeq() && t.Len() == 0:
		return "", nil
	default:
		return "", lang.TypeErrorf("not a token: %v", t)
	}
}

func builtinCat(env *lang.Env, args []*lang.Term) (*lang.Term, error) {
	var b strings.Builder
	for _, arg := range args {
		tok, err := token(arg)
		if err != nil {
			return nil, err
		}
		b.WriteString(tok)
	}
	return lang.Atom(b.String()), nil
}

// delimEscaper rewrites characters which end an atom.
var delimEscaper = strings.NewReplacer(
	" ", `\x20`,
	"(", `\x28`,
	")", `\x29`,
	",", `\x2c`,
	";", `\x3b`,
)

func builtinStringify(env *lang.Env, args []*lang.Term) (*lang.Term, error) {
	return lang.Atom(delimEscaper.Replace(strconv.Quote(args[0].String()))), nil
}

func builtinEmpty(env *lang.Env, args []*lang.Term) (*lang.Term, error) {
	return lang.Bool(args[0].IsSeq() && args[0].Len() == 0), nil
}

func builtinID(env *lang.Env, args []*lang.Term) (*lang.Term, error) {
	return args[0], nil
}

func builtinConsume(env *lang.Env, args []*lang.Term) (*lang.Term, error) {
	return lang.Quote(), nil
}

func builtinConst(env *lang.Env, args []*lang.Term) (*lang.Term, error) {
	return args[0], nil
}

func builtinTodo(env *lang.Env, args []*lang.Term) (*lang.Term, error) {
	return nil, env.Abort(fmt.Sprintf("%s: not yet implemented", libutil.Text(args[0])))
}

func builtinTodoWithMsg(env *lang.Env, args []*lang.Term) (*lang.Term, error) {
	return nil, env.Abort(fmt.Sprintf("%s: not yet implemented: %s", libutil.Text(args[0]), libutil.Text(args[1])))
}

func builtinUnimplemented(env *lang.Env, args []*lang.Term) (*lang.Term, error) {
	return nil, env.Abort(fmt.Sprintf("%s: unimplemented", libutil.Text(args[0])))
}

func builtinUnimplementedWithMsg(env *lang.Env, args []*lang.Term) (*lang.Term, error) {
	return nil, env.Abort(fmt.Sprintf("%s: unimplemented: %s", libutil.Text(args[0]), libutil.Text(args[1])))
}
