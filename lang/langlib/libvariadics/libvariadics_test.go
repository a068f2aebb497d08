// Copyright © 2024 The ELPS authors

package libvariadics_test

import (
	"testing"

	"github.com/luthersystems/epilepsy/lang"
	"github.com/luthersystems/epilepsy/langtest"
)

func TestVariadics(t *testing.T) {
	tests := langtest.TestSuite{
		{"count", langtest.TestSequence{
			{"variadicsCount(v(a b c))", "3", ""},
			{"variadicsCount(a)", "1", ""},
			{"variadicsCount(v())", "0", ""},
		}},
		{"head tail", langtest.TestSequence{
			{"variadicsHead(v(a b c))", "a", ""},
			{"variadicsTail(v(a b c))", "v(b c)", ""},
			{"variadicsTail(v(a b))", "b", ""},
			{"variadicsTail(a)", "v()", ""},
			{"variadicsHead(variadicsTail(v(a b c)))", "b", ""},
			{"variadicsHead(v())", "", lang.CondTypeError},
			{"variadicsTail(v())", "", lang.CondTypeError},
		}},
	}
	langtest.RunTestSuite(t, tests)
}
