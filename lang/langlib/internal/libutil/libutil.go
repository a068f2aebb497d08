// Copyright © 2024 The ELPS authors

package libutil

import "github.com/luthersystems/epilepsy/lang"

// FunctionDoc returns a function operator with a docstring.
func FunctionDoc(name string, formals []string, fun lang.Builtin, docs string) *Builtin {
	return &Builtin{name, formals, fun, docs}
}

// Formals returns its arguments as a parameter list.
func Formals(names ...string) []string {
	return names
}

// Register adds each of fns to reg as a function operator.
func Register(reg *lang.Registry, fns []*Builtin) error {
	defs := make([]lang.OperatorDef, len(fns))
	for i := range fns {
		defs[i] = fns[i]
	}
	return reg.AddOperators(lang.OpFunction, defs...)
}

// Builtin is an operator implemented in Go.
type Builtin struct {
	name    string
	formals []string
	fun     lang.Builtin
	docs    string
}

func (fun *Builtin) Name() string {
	return fun.name
}

func (fun *Builtin) Arity() int {
	return len(fun.formals)
}

func (fun *Builtin) Formals() []string {
	return fun.formals
}

func (fun *Builtin) Eval(env *lang.Env, args []*lang.Term) (*lang.Term, error) {
	return fun.fun(env, args)
}

func (fun *Builtin) Docstring() string {
	return fun.docs
}

// Text returns the text of a message argument.  An atom is its token and any
// other value is printed.
func Text(t *lang.Term) string {
	if t.IsAtom() {
		return t.Str
	}
	return t.String()
}
