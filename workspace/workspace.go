package workspace

import (
	"context"
	"sync"
	"time"

	"github.com/joeycumines/go-solutioncache/asset"
	"github.com/joeycumines/go-solutioncache/solution"
	"github.com/joeycumines/go-solutioncache/wslog"
	"golang.org/x/sync/errgroup"
)

// Workspace is the public façade over the solution cache: it holds the
// current primary Snapshot and its monotonic version, and the two
// checksumCache instances (any-branch, primary-branch) that materialize
// and pin snapshots by checksum. All three share one mutex (spec §5).
type Workspace struct {
	mu                   sync.Mutex
	host                 WorkspaceHost
	updater              Updater
	logger               wslog.Logger
	clock                func() time.Time
	assetSyncConcurrency int

	anyBranch     *checksumCache
	primaryBranch *checksumCache

	current        solution.Snapshot
	currentVersion int64
}

// New constructs a Workspace reporting to host, using config (which may be
// nil; config.Updater must not be, directly or via a nil Config -- New
// panics otherwise, mirroring this corpus's convention of panicking only
// on genuine misconfiguration).
func New(host WorkspaceHost, config *Config) *Workspace {
	if host == nil {
		panic("workspace: nil WorkspaceHost")
	}
	updater := config.updater()
	if updater == nil {
		panic("workspace: nil Updater")
	}

	w := &Workspace{
		host:                 host,
		updater:              updater,
		logger:               config.logger(),
		clock:                config.clock(),
		assetSyncConcurrency: config.assetSyncConcurrency(),
		currentVersion:       sentinelVersion,
	}
	w.anyBranch = newChecksumCache(&w.mu)
	w.primaryBranch = newChecksumCache(&w.mu)
	return w
}

// sentinelVersion is less than any legal version (spec §3, "Workspace
// state"): any real promotion, even version 0, supersedes it.
const sentinelVersion = -1

// RunWithSolution obtains (or reuses) the snapshot for checksum, invokes
// fn with it, and returns both the snapshot and fn's result. It never
// moves the primary pointer (spec §4.1 item 1).
func (w *Workspace) RunWithSolution(ctx context.Context, assets asset.Provider, checksum Checksum, fn func(context.Context, solution.Snapshot) error) (solution.Snapshot, error) {
	return w.run(ctx, assets, checksum, 0, false, fn)
}

// RunWithSolutionAndPromote is RunWithSolution, but additionally promotes
// the resulting snapshot to become the workspace's primary snapshot,
// provided version is greater than the current version (spec §4.1 item 2).
// fn may be nil, in which case no operation runs against the snapshot
// beyond the promotion itself. If checksum is already the current primary
// snapshot's checksum, that snapshot is returned at once and fn does not
// run.
func (w *Workspace) RunWithSolutionAndPromote(ctx context.Context, assets asset.Provider, checksum Checksum, version int64, fn func(context.Context, solution.Snapshot) error) (solution.Snapshot, error) {
	return w.run(ctx, assets, checksum, version, true, fn)
}

// UpdatePrimaryBranch is RunWithSolutionAndPromote with a no-op fn (spec
// §4.1 item 3).
func (w *Workspace) UpdatePrimaryBranch(ctx context.Context, assets asset.Provider, checksum Checksum, version int64) error {
	_, err := w.RunWithSolutionAndPromote(ctx, assets, checksum, version, nil)
	return err
}

// run implements the shared get-or-create algorithm of spec §4.1.
func (w *Workspace) run(ctx context.Context, assets asset.Provider, checksum Checksum, version int64, updatePrimary bool, fn func(context.Context, solution.Snapshot) error) (solution.Snapshot, error) {
	if updatePrimary {
		w.mu.Lock()
		current, match := w.current, w.current.Checksum == checksum
		w.mu.Unlock()
		if match {
			// (a): already primary. Idempotent fast path: no refcount is
			// touched and fn does not run.
			return current, nil
		}
	}

	// The any-branch materialization is the base every promotion builds on
	// top of (step e awaits it), so it's obtained unconditionally; run
	// keeps this reference alive for the whole call when updatePrimary, so
	// the primary producer's wait on it below can never race a premature
	// cancellation.
	anyEntry, hit := w.anyBranch.tryFastGet(checksum)
	if !hit {
		anyEntry = w.anyBranch.slowGetOrCreate(checksum, func(ctx context.Context) (solution.Snapshot, error) {
			return w.computeSnapshot(ctx, assets, checksum)
		})
	}

	entry, cache := anyEntry, w.anyBranch

	if updatePrimary {
		if primaryEntry, primaryHit := w.primaryBranch.tryFastGet(checksum); primaryHit {
			entry, cache = primaryEntry, w.primaryBranch
		} else {
			entry = w.primaryBranch.slowGetOrCreate(checksum, func(ctx context.Context) (solution.Snapshot, error) {
				snap, err := anyEntry.wait(ctx)
				if err != nil {
					return solution.Snapshot{}, err
				}
				promoted, _ := w.tryUpdateCurrentSolution(snap, version)
				return promoted, nil
			})
			cache = w.primaryBranch
		}
	}

	snapshot, err := entry.wait(ctx)

	var fnErr error
	if err == nil {
		if fn != nil {
			fnErr = fn(ctx, snapshot)
		}
		// Only a successful materialization is worth pinning: a caller
		// that observed a cancellation or materialization failure must
		// not add a reference that would keep a dead/failed entry from
		// ever reaching refcount zero (spec §8 scenario 5, "entry is
		// removed from map" on the sole caller's cancellation).
		cache.setLastRequested(checksum, entry)
		if updatePrimary {
			w.anyBranch.setLastRequested(checksum, anyEntry)
		}
	}

	w.mu.Lock()
	entry.release()
	if updatePrimary && entry != anyEntry {
		anyEntry.release()
	}
	w.mu.Unlock()

	if err != nil {
		return snapshot, err
	}
	return snapshot, fnErr
}

// tryUpdateCurrentSolution installs newSnapshot as the workspace's current
// primary snapshot, provided version is newer than any previously
// installed version (spec §4.2). It is exported to white-box tests only
// via TestAccess.
func (w *Workspace) tryUpdateCurrentSolution(newSnapshot solution.Snapshot, version int64) (solution.Snapshot, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if version <= w.currentVersion {
		return newSnapshot, false
	}

	prev := w.current
	w.currentVersion = version
	w.current = newSnapshot

	ctx := context.Background()
	if solution.Diff(prev, newSnapshot) == solution.ChangeAdded {
		w.host.ClearSolutionData(ctx)
		w.host.OnSolutionAdded(ctx, newSnapshot)
	} else {
		w.host.OnSolutionChanged(ctx, newSnapshot)
	}

	return newSnapshot, true
}

// computeSnapshot is the ComputeSnapshot producer of spec §4.4: it asks
// updater whether checksum can be reached by incrementally rebasing the
// current primary snapshot, and if not, synchronizes assets before asking
// updater to build a fresh Snapshot.
func (w *Workspace) computeSnapshot(ctx context.Context, assets asset.Provider, checksum Checksum) (solution.Snapshot, error) {
	incremental, err := w.updater.IsIncrementalUpdate(ctx, checksum)
	if err != nil {
		w.logFailure(ctx, checksum, err)
		return solution.Snapshot{}, err
	}

	if !incremental {
		if err := w.synchronizeAssets(ctx, assets, checksum); err != nil {
			w.logFailure(ctx, checksum, err)
			return solution.Snapshot{}, err
		}
	}

	snapshot, err := w.updater.CreateSolution(ctx, checksum)
	if err != nil {
		w.logFailure(ctx, checksum, err)
		return solution.Snapshot{}, err
	}
	return snapshot, nil
}

// synchronizeAssets performs the "bulk sync of all assets referenced by
// checksum" step of spec §4.4. If assets additionally implements
// asset.ProjectSynchronizer, the sync is fanned out across the checksum's
// projects with bounded concurrency; otherwise a single whole-checksum
// call is made. The project list comes from ProjectNames, not
// CreateSolutionInfo: CreateSolutionInfo's contract requires checksum's
// assets to already be synchronized, which is exactly what this method is
// about to do, so it can't be used to discover what to sync in the first
// place.
func (w *Workspace) synchronizeAssets(ctx context.Context, assets asset.Provider, checksum Checksum) error {
	projectSync, ok := assets.(asset.ProjectSynchronizer)
	if !ok {
		return assets.SynchronizeSolutionAssets(ctx, checksum)
	}

	names, err := projectSync.ProjectNames(ctx, checksum)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(w.assetSyncConcurrency)
	for _, name := range names {
		g.Go(func() error {
			return projectSync.SynchronizeProjectAssets(gctx, checksum, name)
		})
	}
	return g.Wait()
}

func (w *Workspace) logFailure(ctx context.Context, checksum Checksum, err error) {
	w.logger.Err().
		Err(err).
		Time("time", w.clock()).
		RawJSON("checksum", asset.AppendChecksumJSON(nil, checksum)).
		Log("solution materialization failed")
}
