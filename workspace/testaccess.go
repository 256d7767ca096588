package workspace

import (
	"context"

	"github.com/joeycumines/go-solutioncache/asset"
	"github.com/joeycumines/go-solutioncache/solution"
)

// TestAccess exposes internals of a Workspace for white-box tests. It is
// not part of the production contract (spec §6, "not part of the
// production contract") -- production code must never construct one.
type TestAccess struct {
	w *Workspace
}

// NewTestAccess wraps w for white-box test access.
func NewTestAccess(w *Workspace) TestAccess {
	return TestAccess{w: w}
}

// TryUpdateCurrentSolution exposes (*Workspace).tryUpdateCurrentSolution.
func (a TestAccess) TryUpdateCurrentSolution(newSnapshot solution.Snapshot, version int64) (solution.Snapshot, bool) {
	return a.w.tryUpdateCurrentSolution(newSnapshot, version)
}

// InternalRunWithSolution exposes (*Workspace).run directly, with full
// control over version and updatePrimary, for tests that need to exercise
// paths RunWithSolution/RunWithSolutionAndPromote don't surface on their
// own.
func (a TestAccess) InternalRunWithSolution(ctx context.Context, assets asset.Provider, checksum Checksum, version int64, updatePrimary bool, fn func(context.Context, solution.Snapshot) error) (solution.Snapshot, error) {
	return a.w.run(ctx, assets, checksum, version, updatePrimary, fn)
}

// CurrentVersion returns the workspace's current monotonic version.
func (a TestAccess) CurrentVersion() int64 {
	a.w.mu.Lock()
	defer a.w.mu.Unlock()
	return a.w.currentVersion
}

// AnyBranchRefCount returns the refcount of the any-branch cache's entry
// for checksum, and whether one is present at all.
func (a TestAccess) AnyBranchRefCount(checksum Checksum) (int, bool) {
	return entryRefCount(a.w.anyBranch, checksum)
}

// PrimaryBranchRefCount is AnyBranchRefCount for the primary-branch cache.
func (a TestAccess) PrimaryBranchRefCount(checksum Checksum) (int, bool) {
	return entryRefCount(a.w.primaryBranch, checksum)
}

func entryRefCount(c *checksumCache, checksum Checksum) (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[checksum]
	if !ok {
		return 0, false
	}
	return e.refcount, true
}
