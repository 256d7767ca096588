package workspace

import (
	"errors"
	"fmt"
)

// errMaterializationAbandoned is the cause passed to a materialization's
// context when its last reference is released before it completed. It is
// what context.Cause(ctx) returns for that context, while ctx.Err() reports
// context.Canceled; producers should treat it the same as any other
// ctx.Err().
var errMaterializationAbandoned = errors.New("workspace: materialization abandoned: last reference released")

// errInvariantf panics with a formatted message, for the InvariantViolated
// error kind: states that must never arise from correct caller usage (e.g.
// addReference on an already-cleaned-up entry, a negative refcount). These
// indicate a programming bug, not a runtime failure to recover from.
func errInvariantf(format string, args ...any) {
	panic(fmt.Sprintf("workspace: invariant violated: "+format, args...))
}
