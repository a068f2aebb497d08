// Copyright © 2024 The ELPS authors

package lang

import "context"

// Profiler observes operator invocations.  A single Profiler may be shared by
// concurrent evaluations so implementations must keep per-invocation state in
// the context they return rather than in the Profiler itself.
type Profiler interface {
	// Start marks the beginning of an invocation of op for the term call.
	// The returned context is visible to nested invocations and the returned
	// function marks the end of the invocation.
	Start(ctx context.Context, op *Operator, call *Term) (context.Context, func())
}
