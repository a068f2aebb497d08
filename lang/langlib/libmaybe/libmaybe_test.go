// Copyright © 2024 The ELPS authors

package libmaybe_test

import (
	"testing"

	"github.com/luthersystems/epilepsy/lang"
	"github.com/luthersystems/epilepsy/langtest"
)

func TestMaybe(t *testing.T) {
	tests := langtest.TestSuite{
		{"construct", langtest.TestSequence{
			{"just(5)", "v(just 5)", ""},
			{"nothing()", "v(nothing v())", ""},
			{"isJust(just(5))", "1", ""},
			{"isJust(nothing())", "0", ""},
			{"isNothing(nothing())", "1", ""},
			{"isNothing(just(v()))", "0", ""},
			{"isJust(left(5))", "", lang.CondTypeError},
			{"isNothing(5)", "", lang.CondTypeError},
		}},
		{"match", langtest.TestSequence{
			{"match(just(5), v(v(just inc) v(nothing id)))", "6", ""},
			{"match(nothing(), v(v(just inc) v(nothing id)))", "v()", ""},
			{"payloadOf(just(v(a b)))", "v(a b)", ""},
		}},
	}
	langtest.RunTestSuite(t, tests)
}
