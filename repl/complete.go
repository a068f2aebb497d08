// Copyright © 2018 The ELPS authors

package repl

import (
	"strings"

	"github.com/luthersystems/epilepsy/lang"
)

// operatorCompleter implements readline.AutoCompleter by enumerating the
// operators of a registry.
type operatorCompleter struct {
	reg *lang.Registry
}

func (c *operatorCompleter) Do(line []rune, pos int) ([][]rune, int) {
	start := pos
	for start > 0 {
		ch := line[start-1]
		if ch == ' ' || ch == '\t' || ch == '(' || ch == ',' || ch == '\n' {
			break
		}
		start--
	}
	prefix := string(line[start:pos])
	if prefix == "" {
		return nil, 0
	}

	var result [][]rune
	for _, name := range c.reg.Names() {
		if strings.HasPrefix(name, prefix) {
			result = append(result, []rune(name[len(prefix):]))
		}
	}
	if len(result) == 0 {
		return nil, 0
	}
	return result, len(prefix)
}
