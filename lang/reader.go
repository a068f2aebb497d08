// Copyright © 2024 The ELPS authors

package lang

import "io"

// Reader parses the text syntax of terms.
type Reader interface {
	// Read the contents of r and return the sequence of terms that it
	// contains.  The name is recorded in the source location of each term.
	Read(name string, r io.Reader) ([]*Term, error)
}
