// Copyright © 2024 The ELPS authors

package liblogic_test

import (
	"testing"

	"github.com/luthersystems/epilepsy/langtest"
)

func TestLogic(t *testing.T) {
	tests := langtest.TestSuite{
		{"not", langtest.TestSequence{
			{"not(0)", "1", ""},
			{"not(false)", "1", ""},
			{"not(v())", "1", ""},
			{"not(1)", "0", ""},
			{"not(v(a b))", "0", ""},
			{"not(v(v(0)))", "1", ""},
		}},
		{"binary", langtest.TestSequence{
			{"and(1, yes)", "1", ""},
			{"and(1, v())", "0", ""},
			{"or(0, false)", "0", ""},
			{"or(0, 1)", "1", ""},
			{"xor(1, 0)", "1", ""},
			{"xor(1, 1)", "0", ""},
			{"and(eq(1, 1), not(eq(1, 2)))", "1", ""},
		}},
	}
	langtest.RunTestSuite(t, tests)
}
