// Copyright © 2024 The ELPS authors

package lang

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
)

// Evaluator reduces terms using the operators of a sealed Registry.  An
// Evaluator is not modified after NewEvaluator returns and may be used by any
// number of goroutines at once.
type Evaluator struct {
	Registry      *Registry
	MaxDepth      int
	MaxNesting    int
	MaxIterations int
	MaxSteps      int
	Logger        *logrus.Logger
	Profiler      Profiler
}

// NewEvaluator returns an Evaluator for reg configured by config.  NewEvaluator
// seals reg, so all operators must be registered before it is called.
func NewEvaluator(reg *Registry, config ...Config) (*Evaluator, error) {
	if reg == nil {
		return nil, errors.New("nil registry")
	}
	ev := &Evaluator{
		Registry:      reg,
		MaxDepth:      DefaultMaxDepth,
		MaxNesting:    DefaultMaxNesting,
		MaxIterations: DefaultMaxIterations,
	}
	for _, fn := range config {
		err := fn(ev)
		if err != nil {
			return nil, err
		}
	}
	if ev.Logger == nil {
		ev.Logger = defaultLogger()
	}
	err := reg.checkOverloads()
	if err != nil {
		return nil, err
	}
	reg.Seal()
	return ev, nil
}

// Eval reduces t to a value.
func (ev *Evaluator) Eval(t *Term) (*Term, error) {
	return ev.EvalContext(context.Background(), t)
}

// EvalContext reduces t to a value.  Evaluation stops with a
// context-cancelled error once ctx is done.
func (ev *Evaluator) EvalContext(ctx context.Context, t *Term) (*Term, error) {
	return ev.NewEnv(ctx).Eval(t)
}

// NewEnv returns a fresh environment for one top-level evaluation.
func (ev *Evaluator) NewEnv(ctx context.Context) *Env {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Env{
		Evaluator: ev,
		Stack:     &CallStack{},
		ctx:       ctx,
	}
}

// Env is the state of one top-level evaluation.  An Env must not be shared
// between goroutines.
type Env struct {
	Evaluator *Evaluator
	Stack     *CallStack
	ctx       context.Context
	nesting   int
	steps     int
}

// Context returns the context of the evaluation.  Inside an operator
// implementation the context carries any span started by the Profiler.
func (env *Env) Context() context.Context {
	return env.ctx
}

// Registry returns the registry operators are resolved against.
func (env *Env) Registry() *Registry {
	return env.Evaluator.Registry
}

// Logger returns a logger annotated with the current evaluation position.
func (env *Env) Logger() logrus.FieldLogger {
	entry := env.Evaluator.Logger.WithFields(logrus.Fields{
		"nesting": env.nesting,
		"frames":  env.Stack.Height(),
	})
	if top := env.Stack.Top(); top != nil {
		entry = entry.WithField("op", top.Name)
	}
	return entry
}

// Abort returns an aborted error carrying msg.  An operator implementation
// aborts evaluation by returning the error.
func (env *Env) Abort(msg string) error {
	return Abort(msg)
}

// Apply evaluates a call to the operator name with args.
func (env *Env) Apply(name string, args ...*Term) (*Term, error) {
	call, err := Call(name, args...)
	if err != nil {
		return nil, env.associate(err, nil)
	}
	return env.Eval(call)
}

// Eval reduces t to a value.  Calls returned by operator implementations are
// reduced in a loop, not by recursion, up to the evaluator's MaxDepth.
func (env *Env) Eval(t *Term) (*Term, error) {
	if env.nesting >= env.Evaluator.MaxNesting {
		return nil, env.associate(depthExceeded("evaluation nesting", env.Evaluator.MaxNesting), t)
	}
	env.nesting++
	defer func() { env.nesting-- }()

	depth := 0
eval:
	if t == nil {
		return nil, env.associate(malformedf("nil term"), nil)
	}
	switch t.Type {
	case TValue:
		return t, nil
	case TCall:
	default:
		return nil, env.associate(malformedf("invalid term type: %v", t.Type), t)
	}
	err := env.checkCall(t)
	if err != nil {
		return nil, env.associate(err, t)
	}

	op, args, err := env.dispatch(t)
	if err != nil {
		return nil, env.associate(err, t)
	}

	env.steps++
	if env.Evaluator.MaxSteps > 0 && env.steps > env.Evaluator.MaxSteps {
		return nil, env.associate(depthExceeded("evaluation steps", env.Evaluator.MaxSteps), t)
	}

	log := env.Evaluator.Logger
	if log.IsLevelEnabled(logrus.DebugLevel) {
		log.WithFields(logrus.Fields{
			"op":      op.Name,
			"depth":   depth,
			"nesting": env.nesting,
		}).Debug("reduce")
	}

	res, err := env.invoke(op, t, args, depth)
	if err != nil {
		return nil, err
	}
	if res.IsCall() {
		depth++
		if depth > env.Evaluator.MaxDepth {
			return nil, env.associate(depthExceeded("evaluation depth", env.Evaluator.MaxDepth), t)
		}
		t = res
		goto eval
	}
	return res, nil
}

// checkCall validates the structure of t and the state of the evaluation
// context.
func (env *Env) checkCall(t *Term) error {
	if err := env.ctx.Err(); err != nil {
		return &ErrorVal{Condition: CondContextCancelled, Err: err}
	}
	if !IsIdentifier(t.Str) {
		return malformedf("invalid operator name: %q", t.Str)
	}
	for i, arg := range t.Cells {
		if arg == nil {
			return malformedf("%s: argument %d is nil", t.Str, i)
		}
	}
	return nil
}

// dispatch evaluates the arguments of t, unless t names a special operator,
// and resolves the operator which will receive them.  Overload targets are
// never special.
func (env *Env) dispatch(t *Term) (*Operator, []*Term, error) {
	reg := env.Evaluator.Registry
	op := reg.get(t.Str)
	args := t.Cells
	if op == nil || op.Kind != OpSpecial {
		var err error
		args, err = env.evalArgs(t.Cells)
		if err != nil {
			return nil, nil, err
		}
	}
	if op != nil {
		if len(args) != op.Arity {
			return nil, nil, &ErrorVal{
				Condition: CondArityMismatch,
				Name:      op.Name,
				Expected:  op.Arity,
				Got:       len(args),
			}
		}
		return op, args, nil
	}
	concrete, err := reg.ResolveOverload(t.Str, len(args))
	if err != nil {
		return nil, nil, err
	}
	op, err = reg.Lookup(concrete)
	if err != nil {
		return nil, nil, err
	}
	if len(args) != op.Arity {
		return nil, nil, &ErrorVal{
			Condition: CondArityMismatch,
			Name:      op.Name,
			Expected:  op.Arity,
			Got:       len(args),
		}
	}
	return op, args, nil
}

// evalArgs evaluates cells from left to right.  The first error stops
// evaluation of the remaining cells.
func (env *Env) evalArgs(cells []*Term) ([]*Term, error) {
	if len(cells) == 0 {
		return nil, nil
	}
	args := make([]*Term, len(cells))
	for i, c := range cells {
		v, err := env.Eval(c)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return args, nil
}

func (env *Env) invoke(op *Operator, call *Term, args []*Term, depth int) (*Term, error) {
	env.Stack.Push(call.Source, op.Name, depth)
	defer env.Stack.Pop()

	if p := env.Evaluator.Profiler; p != nil {
		ctx := env.ctx
		var end func()
		env.ctx, end = p.Start(ctx, op, call)
		defer func() {
			end()
			env.ctx = ctx
		}()
	}

	res, err := op.Call(env, args)
	if err != nil {
		return nil, env.associate(err, call)
	}
	if res == nil {
		return nil, env.associate(malformedf("%s: operator returned no term", op.Name), call)
	}
	return res, nil
}

// associate attaches the call stack and the failing term to err.  Errors that
// already carry a stack are returned unchanged so that the innermost failure
// is reported.
func (env *Env) associate(err error, t *Term) error {
	var lerr *ErrorVal
	if !errors.As(err, &lerr) {
		return &ErrorVal{
			Condition: CondGoError,
			Term:      t,
			Stack:     env.Stack.Copy(),
			Err:       err,
		}
	}
	if lerr.Stack != nil {
		return err
	}
	cp := *lerr
	if cp.Term == nil {
		cp.Term = t
	}
	cp.Stack = env.Stack.Copy()
	return &cp
}
