// Copyright © 2024 The ELPS authors

package lang

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Builtin is a Go function implementing an operator.  The length of args is
// always the operator's declared arity.  A Builtin may return a TCall term,
// which the evaluator continues to reduce.
type Builtin func(env *Env, args []*Term) (*Term, error)

// OperatorKind classifies how the evaluator passes arguments to an operator.
type OperatorKind uint8

// OperatorKind constants.  OpFunction indicates a normal operator.
const (
	// OpFunction operators receive fully evaluated arguments.
	OpFunction OperatorKind = iota
	// OpSpecial operators receive their argument terms unevaluated and decide
	// themselves what to reduce.
	OpSpecial
)

var opKindStrings = []string{
	OpFunction: "function",
	OpSpecial:  "special",
}

func (k OperatorKind) String() string {
	if int(k) >= len(opKindStrings) {
		return "invalid-operator-kind"
	}
	return opKindStrings[k]
}

// OperatorDef is an operator definition implemented in Go.
type OperatorDef interface {
	Name() string
	Arity() int
	Eval(env *Env, args []*Term) (*Term, error)
}

// OperatorDocumented is implemented by an OperatorDef which provides
// documentation.
type OperatorDocumented interface {
	OperatorDef
	Docstring() string
}

// OperatorFormals is implemented by an OperatorDef which names its
// parameters.
type OperatorFormals interface {
	OperatorDef
	Formals() []string
}

// Operator is a registry entry.
type Operator struct {
	Name    string
	Arity   int
	Kind    OperatorKind
	Doc     string
	Formals []string // parameter names, if known
	fun     Builtin
}

// Call invokes the operator implementation directly, without arity checks.
func (op *Operator) Call(env *Env, args []*Term) (*Term, error) {
	return op.fun(env, args)
}

// Registry maps operator names to implementations.  A Registry is populated
// during initialization and then sealed.  After Seal returns the registry is
// read-only and may be used by any number of concurrent evaluations without
// synchronization.
type Registry struct {
	mu        sync.Mutex
	sealed    atomic.Bool
	ops       map[string]*Operator
	overloads map[string]map[int]string
}

// NewRegistry initializes and returns an empty, unsealed Registry.
func NewRegistry() *Registry {
	return &Registry{
		ops:       make(map[string]*Operator),
		overloads: make(map[string]map[int]string),
	}
}

// Register adds a function operator with the given arity.
func (r *Registry) Register(name string, arity int, fun Builtin) error {
	return r.add(&Operator{Name: name, Arity: arity, Kind: OpFunction, fun: fun})
}

// RegisterSpecial adds an operator which receives unevaluated arguments.
func (r *Registry) RegisterSpecial(name string, arity int, fun Builtin) error {
	return r.add(&Operator{Name: name, Arity: arity, Kind: OpSpecial, fun: fun})
}

// AddOperators registers each of defs with the given kind.  Registration
// stops at the first error.
func (r *Registry) AddOperators(kind OperatorKind, defs ...OperatorDef) error {
	for _, def := range defs {
		op := &Operator{
			Name:  def.Name(),
			Arity: def.Arity(),
			Kind:  kind,
			fun:   def.Eval,
		}
		if doc, ok := def.(OperatorDocumented); ok {
			op.Doc = doc.Docstring()
		}
		if formals, ok := def.(OperatorFormals); ok {
			op.Formals = formals.Formals()
		}
		err := r.add(op)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *Registry) add(op *Operator) error {
	if !IsIdentifier(op.Name) {
		return malformedf("invalid operator name: %q", op.Name)
	}
	if op.Arity < 0 {
		return malformedf("%s: negative arity %d", op.Name, op.Arity)
	}
	if op.fun == nil {
		return malformedf("%s: nil implementation", op.Name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sealed.Load() {
		return &ErrorVal{Condition: CondRegistryMutatedAfterSeal, Name: op.Name}
	}
	if _, ok := r.ops[op.Name]; ok {
		return &ErrorVal{Condition: CondDuplicateOperator, Name: op.Name}
	}
	if _, ok := r.overloads[op.Name]; ok {
		return &ErrorVal{Condition: CondDuplicateOperator, Name: op.Name}
	}
	r.ops[op.Name] = op
	return nil
}

// RegisterOverload declares that a call to base with arity arguments is a
// call to the operator concrete.  The concrete operator does not need to be
// registered before RegisterOverload is called, but it may not be special.
func (r *Registry) RegisterOverload(base string, arity int, concrete string) error {
	if !IsIdentifier(base) {
		return malformedf("invalid overload name: %q", base)
	}
	if !IsIdentifier(concrete) {
		return malformedf("%s: invalid overload target: %q", base, concrete)
	}
	if arity < 0 {
		return malformedf("%s: negative arity %d", base, arity)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sealed.Load() {
		return &ErrorVal{Condition: CondRegistryMutatedAfterSeal, Name: base}
	}
	if _, ok := r.ops[base]; ok {
		return &ErrorVal{Condition: CondDuplicateOperator, Name: base}
	}
	if op := r.ops[concrete]; op != nil && op.Kind == OpSpecial {
		return specialOverloadTarget(base, concrete)
	}
	group, ok := r.overloads[base]
	if !ok {
		group = make(map[int]string)
		r.overloads[base] = group
	}
	if _, ok := group[arity]; ok {
		return &ErrorVal{Condition: CondDuplicateOperator, Name: base, Got: arity}
	}
	group[arity] = concrete
	return nil
}

// checkOverloads returns an error if an overload targets a special operator.
// Arguments of an overloaded call are evaluated before the target is known.
func (r *Registry) checkOverloads() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for base, group := range r.overloads {
		for _, concrete := range group {
			if op := r.ops[concrete]; op != nil && op.Kind == OpSpecial {
				return specialOverloadTarget(base, concrete)
			}
		}
	}
	return nil
}

func specialOverloadTarget(base, concrete string) error {
	return malformedf("%s: overload target is a special operator: %s", base, concrete)
}

// Seal makes the registry read-only.  Seal may be called more than once.
func (r *Registry) Seal() {
	r.mu.Lock()
	r.sealed.Store(true)
	r.mu.Unlock()
}

// Sealed returns true if Seal has been called.
func (r *Registry) Sealed() bool {
	return r.sealed.Load()
}

// Lookup returns the operator registered as name.
func (r *Registry) Lookup(name string) (*Operator, error) {
	op := r.get(name)
	if op == nil {
		return nil, &ErrorVal{Condition: CondUnknownOperator, Name: name}
	}
	return op, nil
}

// Doc returns the documentation of the operator name.  The documentation of
// an overload group lists its concrete operators.
func (r *Registry) Doc(name string) (string, error) {
	if op := r.get(name); op != nil {
		return op.Doc, nil
	}
	group := r.group(name)
	if group == nil {
		return "", &ErrorVal{Condition: CondUnknownOperator, Name: name}
	}
	var buf strings.Builder
	buf.WriteString("Overloaded on argument count:")
	for _, n := range r.Overloads(name) {
		fmt.Fprintf(&buf, "\n  %d => %s", n, group[n])
	}
	return buf.String(), nil
}

// ResolveOverload returns the name of the concrete operator for a call to
// base with count arguments.
func (r *Registry) ResolveOverload(base string, count int) (string, error) {
	group := r.group(base)
	if group == nil {
		return "", &ErrorVal{Condition: CondUnknownOperator, Name: base}
	}
	concrete, ok := group[count]
	if !ok {
		return "", &ErrorVal{Condition: CondNoOverloadForArity, Name: base, Got: count}
	}
	return concrete, nil
}

// IsOverloaded returns true if name is the base of an overload group.
func (r *Registry) IsOverloaded(name string) bool {
	return r.group(name) != nil
}

// Overloads returns the sorted arities declared for the overload group base.
func (r *Registry) Overloads(base string) []int {
	group := r.group(base)
	arities := maps.Keys(group)
	slices.Sort(arities)
	return arities
}

// Names returns the sorted names of all registered operators and overload
// groups.
func (r *Registry) Names() []string {
	if !r.sealed.Load() {
		r.mu.Lock()
		defer r.mu.Unlock()
	}
	names := maps.Keys(r.ops)
	names = append(names, maps.Keys(r.overloads)...)
	slices.Sort(names)
	return names
}

func (r *Registry) get(name string) *Operator {
	if !r.sealed.Load() {
		r.mu.Lock()
		defer r.mu.Unlock()
	}
	return r.ops[name]
}

func (r *Registry) group(name string) map[int]string {
	if !r.sealed.Load() {
		r.mu.Lock()
		defer r.mu.Unlock()
	}
	return r.overloads[name]
}
