// Copyright © 2024 The ELPS authors

package lang_test

import (
	"errors"
	"testing"

	"github.com/luthersystems/epilepsy/lang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func identity(env *lang.Env, args []*lang.Term) (*lang.Term, error) {
	return args[0], nil
}

func TestRegistry(t *testing.T) {
	reg := lang.NewRegistry()
	require.NoError(t, reg.Register("id", 1, identity))

	op, err := reg.Lookup("id")
	require.NoError(t, err)
	assert.Equal(t, "id", op.Name)
	assert.Equal(t, 1, op.Arity)
	assert.Equal(t, lang.OpFunction, op.Kind)

	_, err = reg.Lookup("missing")
	assert.True(t, errors.Is(err, lang.ErrUnknownOperator))

	err = reg.Register("id", 2, identity)
	assert.True(t, errors.Is(err, lang.ErrDuplicateOperator))
	err = reg.RegisterSpecial("id", 1, identity)
	assert.True(t, errors.Is(err, lang.ErrDuplicateOperator))

	err = reg.Register("bad name", 1, identity)
	assert.True(t, errors.Is(err, lang.ErrMalformedTerm))
	err = reg.Register("neg", -1, identity)
	assert.True(t, errors.Is(err, lang.ErrMalformedTerm))
	err = reg.Register("nilfun", 1, nil)
	assert.True(t, errors.Is(err, lang.ErrMalformedTerm))
}

func TestRegistryOverload(t *testing.T) {
	reg := lang.NewRegistry()
	require.NoError(t, reg.Register("add2", 2, identity))
	require.NoError(t, reg.Register("add3", 3, identity))
	require.NoError(t, reg.RegisterOverload("add", 3, "add3"))
	require.NoError(t, reg.RegisterOverload("add", 2, "add2"))

	name, err := reg.ResolveOverload("add", 2)
	require.NoError(t, err)
	assert.Equal(t, "add2", name)
	name, err = reg.ResolveOverload("add", 3)
	require.NoError(t, err)
	assert.Equal(t, "add3", name)

	_, err = reg.ResolveOverload("add", 4)
	assert.True(t, errors.Is(err, lang.ErrNoOverloadForArity))
	var lerr *lang.ErrorVal
	require.True(t, errors.As(err, &lerr))
	assert.Equal(t, "add", lerr.Name)
	assert.Equal(t, 4, lerr.Got)

	_, err = reg.ResolveOverload("sub", 2)
	assert.True(t, errors.Is(err, lang.ErrUnknownOperator))

	err = reg.RegisterOverload("add", 2, "add2")
	assert.True(t, errors.Is(err, lang.ErrDuplicateOperator))
	err = reg.RegisterOverload("add2", 1, "add2")
	assert.True(t, errors.Is(err, lang.ErrDuplicateOperator), "base shadowed by direct entry")
	err = reg.Register("add", 2, identity)
	assert.True(t, errors.Is(err, lang.ErrDuplicateOperator), "direct entry shadowing a group")

	assert.True(t, reg.IsOverloaded("add"))
	assert.False(t, reg.IsOverloaded("add2"))
	assert.Equal(t, []int{2, 3}, reg.Overloads("add"))
	assert.Equal(t, []string{"add", "add2", "add3"}, reg.Names())

	doc, err := reg.Doc("add")
	require.NoError(t, err)
	assert.Contains(t, doc, "2 => add2")
	assert.Contains(t, doc, "3 => add3")
}

func TestRegistrySeal(t *testing.T) {
	reg := lang.NewRegistry()
	require.NoError(t, reg.Register("id", 1, identity))
	assert.False(t, reg.Sealed())
	reg.Seal()
	assert.True(t, reg.Sealed())
	reg.Seal()

	err := reg.Register("late", 1, identity)
	assert.True(t, errors.Is(err, lang.ErrRegistryMutatedAfterSeal))
	err = reg.RegisterSpecial("late", 1, identity)
	assert.True(t, errors.Is(err, lang.ErrRegistryMutatedAfterSeal))
	err = reg.RegisterOverload("late", 1, "id")
	assert.True(t, errors.Is(err, lang.ErrRegistryMutatedAfterSeal))

	_, err = reg.Lookup("id")
	assert.NoError(t, err)
	_, err = reg.Lookup("late")
	assert.True(t, errors.Is(err, lang.ErrUnknownOperator))
}

func TestNewEvaluatorSeals(t *testing.T) {
	reg := lang.NewRegistry()
	_, err := lang.NewEvaluator(reg)
	require.NoError(t, err)
	assert.True(t, reg.Sealed())

	_, err = lang.NewEvaluator(lang.NewRegistry(), lang.WithMaxDepth(0))
	assert.Error(t, err)
}

func TestRegistryOverloadSpecialTarget(t *testing.T) {
	reg := lang.NewRegistry()
	require.NoError(t, reg.RegisterSpecial("quoted", 1, identity))
	err := reg.RegisterOverload("q", 1, "quoted")
	assert.True(t, errors.Is(err, lang.ErrMalformedTerm))

	reg = lang.NewRegistry()
	require.NoError(t, reg.RegisterOverload("q", 1, "quoted"))
	require.NoError(t, reg.RegisterSpecial("quoted", 1, identity))
	_, err = lang.NewEvaluator(reg)
	assert.True(t, errors.Is(err, lang.ErrMalformedTerm))
	assert.False(t, reg.Sealed())
}
