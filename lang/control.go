// Copyright © 2024 The ELPS authors

package lang

import "github.com/sirupsen/logrus"

type langOperator struct {
	name    string
	formals []string
	kind    OperatorKind
	fun     Builtin
	doc     string
}

func (op *langOperator) Name() string {
	return op.name
}

func (op *langOperator) Arity() int {
	return len(op.formals)
}

func (op *langOperator) Formals() []string {
	return op.formals
}

func (op *langOperator) Eval(env *Env, args []*Term) (*Term, error) {
	return op.fun(env, args)
}

func (op *langOperator) Docstring() string {
	return op.doc
}

var langOperators = []*langOperator{
	{"if", []string{"cond", "then", "else"}, OpSpecial, opIf, `
		Evaluates cond and returns then if the result is truthy and else
		otherwise.  The selected branch is reduced by the caller and the
		other branch is never evaluated.`},
	{"while", []string{"pred", "step", "ctx"}, OpFunction, opWhile, `
		Applies the operator named by step to the loop context for as long
		as the operator named by pred returns a truthy value for it.
		Returns the final context.  Both operators must take one argument.`},
	{"abort", []string{"message"}, OpFunction, opAbort, `
		Stops evaluation with an aborted error carrying the message.`},
}

// RegisterControl adds the control operators if, while and abort to reg.
func RegisterControl(reg *Registry) error {
	for _, op := range langOperators {
		err := reg.AddOperators(op.kind, op)
		if err != nil {
			return err
		}
	}
	return nil
}

// IfExpr returns the term if(cond, then, els).  IfExpr panics if any
// argument is nil.
func IfExpr(cond, then, els *Term) *Term {
	return MustCall("if", cond, then, els)
}

// WhileLoop returns the term while(pred, step, ctx), where pred and step name
// registered operators of arity one.  WhileLoop panics if ctx is nil or an
// operator name is not an identifier.
func WhileLoop(pred, step string, ctx *Term) *Term {
	if !IsIdentifier(pred) || !IsIdentifier(step) {
		panic(malformedf("while: invalid operator reference: %q %q", pred, step))
	}
	return MustCall("while", Atom(pred), Atom(step), ctx)
}

func opIf(env *Env, args []*Term) (*Term, error) {
	cond, err := env.Eval(args[0])
	if err != nil {
		return nil, err
	}
	if cond.Truthy() {
		return args[1], nil
	}
	return args[2], nil
}

// loopState is the state of one in-flight while loop.
type loopState struct {
	context   *Term
	iteration int
}

func opWhile(env *Env, args []*Term) (*Term, error) {
	pred, step := args[0], args[1]
	for _, ref := range []*Term{pred, step} {
		if !ref.IsAtom() || !IsIdentifier(ref.Str) {
			return nil, TypeErrorf("while: not an operator reference: %v", ref)
		}
	}
	state := &loopState{context: args[2]}
	bound := env.Evaluator.MaxIterations
	for {
		ok, err := env.Apply(pred.Str, state.context)
		if err != nil {
			return nil, err
		}
		if !ok.Truthy() {
			return state.context, nil
		}
		if state.iteration >= bound {
			return nil, depthExceeded("while iterations", bound)
		}
		state.iteration++
		if env.Evaluator.Logger.IsLevelEnabled(logrus.DebugLevel) {
			env.Logger().WithField("iteration", state.iteration).Debugf("while: %v", state.context)
		}
		state.context, err = env.Apply(step.Str, state.context)
		if err != nil {
			return nil, err
		}
	}
}

func opAbort(env *Env, args []*Term) (*Term, error) {
	msg := args[0]
	if msg.IsAtom() {
		return nil, env.Abort(msg.Str)
	}
	return nil, env.Abort(msg.String())
}
