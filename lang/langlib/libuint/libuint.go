// Copyright © 2024 The ELPS authors

// Package libuint implements arithmetic and comparison over unsigned integer
// atoms in the range [0, UintMax].
package libuint

import (
	"regexp"
	"strings"

	"github.com/luthersystems/epilepsy/lang"
	"github.com/luthersystems/epilepsy/lang/langlib/internal/libutil"
	"github.com/spf13/cast"
)

// UintMax is the largest value an unsigned integer atom may hold.
const UintMax = 65535

// LoadPackage adds the unsigned integer operators to reg, including the add
// overload group.
func LoadPackage(reg *lang.Registry) error {
	err := libutil.Register(reg, builtins)
	if err != nil {
		return err
	}
	err = reg.RegisterOverload("add", 2, "add2")
	if err != nil {
		return err
	}
	return reg.RegisterOverload("add", 3, "add3")
}

var builtins = []*libutil.Builtin{
	libutil.FunctionDoc("inc", libutil.Formals("x"), builtinInc,
		`Returns x plus one.  Incrementing UintMax is a type-error.`),
	libutil.FunctionDoc("dec", libutil.Formals("x"), builtinDec,
		`Returns x minus one.  Decrementing zero is a type-error.`),
	libutil.FunctionDoc("add2", libutil.Formals("x", "y"), builtinAdd2,
		`Returns the sum of x and y.  A sum larger than UintMax is a
		type-error.  Called as add(x, y).`),
	libutil.FunctionDoc("add3", libutil.Formals("x", "y", "z"), builtinAdd3,
		`Returns the sum of x, y and z.  A sum larger than UintMax is a
		type-error.  Called as add(x, y, z).`),
	libutil.FunctionDoc("eq", libutil.Formals("x", "y"), compare(func(x, y uint64) bool { return x == y }),
		`Returns 1 if x equals y and 0 otherwise.`),
	libutil.FunctionDoc("neq", libutil.Formals("x", "y"), compare(func(x, y uint64) bool { return x != y }),
		`Returns 1 if x does not equal y and 0 otherwise.`),
	libutil.FunctionDoc("greater", libutil.Formals("x", "y"), compare(func(x, y uint64) bool { return x > y }),
		`Returns 1 if x is greater than y and 0 otherwise.`),
	libutil.FunctionDoc("greaterEq", libutil.Formals("x", "y"), compare(func(x, y uint64) bool { return x >= y }),
		`Returns 1 if x is greater than or equal to y and 0 otherwise.`),
	libutil.FunctionDoc("lesser", libutil.Formals("x", "y"), compare(func(x, y uint64) bool { return x < y }),
		`Returns 1 if x is less than y and 0 otherwise.`),
	libutil.FunctionDoc("lesserEq", libutil.Formals("x", "y"), compare(func(x, y uint64) bool { return x <= y }),
		`Returns 1 if x is less than or equal to y and 0 otherwise.`),
}

var digitsRegexp = regexp.MustCompile(`^[0-9]+$`)

// Parse returns the value of the unsigned integer atom t.
func Parse(t *lang.Term) (uint64, error) {
	if !t.IsAtom() || !digitsRegexp.MatchString(t.Str) {
		return 0, lang.TypeErrorf("not an unsigned integer: %v", t)
	}
	// leading zeros would otherwise select octal
	s := strings.TrimLeft(t.Str, "0")
	if s == "" {
		s = "0"
	}
	n, err := cast.ToUint64E(s)
	if err != nil || n > UintMax {
		return 0, lang.TypeErrorf("unsigned integer out of range: %v", t)
	}
	return n, nil
}

func result(n uint64) (*lang.Term, error) {
	if n > UintMax {
		return nil, lang.TypeErrorf("unsigned integer overflow: %d", n)
	}
	return lang.Uint(n), nil
}

func sum(args []*lang.Term) (*lang.Term, error) {
	var total uint64
	for _, arg := range args {
		n, err := Parse(arg)
		if err != nil {
			return nil, err
		}
		total += n
	}
	return result(total)
}

func builtinInc(env *lang.Env, args []*lang.Term) (*lang.Term, error) {
	n, err := Parse(args[0])
	if err != nil {
		return nil, err
	}
	return result(n + 1)
}

func builtinDec(env *lang.Env, args []*lang.Term) (*lang.Term, error) {
	n, err := Parse(args[0])
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, lang.TypeErrorf("unsigned integer underflow")
	}
	return lang.Uint(n - 1), nil
}

func builtinAdd2(env *lang.Env, args []*lang.Term) (*lang.Term, error) {
	return sum(args)
}

func builtinAdd3(env *lang.Env, args []*lang.Term) (*lang.Term, error) {
	return sum(args)
}

func compare(fn func(x, y uint64) bool) lang.Builtin {
	return func(env *lang.Env, args []*lang.Term) (*lang.Term, error) {
		x, err := Parse(args[0])
		if err != nil {
			return nil, err
		}
		y, err := Parse(args[1])
		if err != nil {
			return nil, err
		}
		return lang.Bool(fn(x, y)), nil
	}
}
