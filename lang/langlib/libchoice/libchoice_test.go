// Copyright © 2024 The ELPS authors

package libchoice_test

import (
	"testing"

	"github.com/luthersystems/epilepsy/lang"
	"github.com/luthersystems/epilepsy/lang/langlib/libchoice"
	"github.com/luthersystems/epilepsy/langtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shapeArms(reg *lang.Registry) error {
	err := reg.Register("shape_circle", 1, func(env *lang.Env, args []*lang.Term) (*lang.Term, error) {
		return lang.Atom("round"), nil
	})
	if err != nil {
		return err
	}
	return reg.Register("shape_square", 2, func(env *lang.Env, args []*lang.Term) (*lang.Term, error) {
		return lang.Quote(lang.Atom("corners"), args[1]), nil
	})
}

func TestChoice(t *testing.T) {
	tests := langtest.TestSuite{
		{"choice", langtest.TestSequence{
			{"choice(left, 5)", "v(left 5)", ""},
			{"tagOf(choice(right, v(a b)))", "right", ""},
			{"payloadOf(choice(right, v(a b)))", "v(a b)", ""},
			{"choice(1x, 5)", "", lang.CondTypeError},
			{"tagOf(v(a b c))", "", lang.CondTypeError},
			{"tagOf(5)", "", lang.CondTypeError},
		}},
		{"match table", langtest.TestSequence{
			{"match(left(5), v(v(left inc) v(right dec)))", "6", ""},
			{"match(right(5), v(v(left inc) v(right dec)))", "4", ""},
			{"match(choice(other, 5), v(v(left inc) v(right dec)))", "", lang.CondUnmatchedVariant},
			{"match(left(5), v(v(left inc dec)))", "", lang.CondTypeError},
			{"match(left(5), v(v(left missing)))", "", lang.CondUnknownOperator},
		}},
		{"match with args", langtest.TestSequence{
			{"matchWithArgs(left(5), v(v(left add) v(right const)), v(2 3))", "10", ""},
			{"matchWithArgs(right(5), v(v(left add) v(right const)), 9)", "5", ""},
		}},
		{"nested match reduces in place", langtest.TestSequence{
			{"match(left(match(right(3), v(v(right inc)))), v(v(left inc)))", "5", ""},
		}},
	}
	langtest.RunTestSuite(t, tests)
}

func TestMatchPrefix(t *testing.T) {
	tests := langtest.TestSuite{
		{"prefix arms", langtest.TestSequence{
			{"match(choice(circle, 1), shape)", "round", ""},
			{"matchWithArgs(choice(square, 2), shape, v(4))", "v(corners 4)", ""},
			{"match(choice(triangle, 3), shape)", "", lang.CondUnmatchedVariant},
			{"match(choice(square, 2), shape)", "", lang.CondArityMismatch},
		}},
	}
	langtest.RunTestSuiteLoaders(t, tests, []func(*lang.Registry) error{shapeArms})
}

func TestSplit(t *testing.T) {
	c := libchoice.New("left", lang.Atom("5"))
	tag, payload, err := libchoice.Split(c)
	require.NoError(t, err)
	assert.Equal(t, "left", tag)
	assert.Equal(t, "5", payload.String())

	ok, err := libchoice.Is(c, "left")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = libchoice.Is(c, "right")
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = libchoice.Split(lang.Atom("left"))
	assert.ErrorIs(t, err, lang.ErrTypeError)
}
