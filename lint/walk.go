// Copyright © 2024 The ELPS authors

package lint

import "github.com/luthersystems/epilepsy/lang"

// Walk calls fn for every term in the tree, depth-first.  Quoted is true for
// terms inside a sequence value, which are never evaluated.
func Walk(terms []*lang.Term, fn func(t *lang.Term, quoted bool)) {
	for _, t := range terms {
		walk(t, false, fn)
	}
}

func walk(t *lang.Term, quoted bool, fn func(*lang.Term, bool)) {
	if t == nil {
		return
	}
	fn(t, quoted)
	for _, c := range t.Cells {
		walk(c, quoted || t.IsSeq(), fn)
	}
}

// WalkCalls calls fn for every call the evaluator may reduce, that is every
// call not inside a quote.
func WalkCalls(terms []*lang.Term, fn func(call *lang.Term)) {
	Walk(terms, func(t *lang.Term, quoted bool) {
		if t.IsCall() && !quoted {
			fn(t)
		}
	})
}

// Known returns true if name is an operator or overload group in reg.
func Known(reg *lang.Registry, name string) bool {
	if reg.IsOverloaded(name) {
		return true
	}
	_, err := reg.Lookup(name)
	return err == nil
}
