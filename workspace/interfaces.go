package workspace

import (
	"context"

	"github.com/joeycumines/go-solutioncache/asset"
	"github.com/joeycumines/go-solutioncache/solution"
)

// Checksum identifies a logical solution snapshot. It is opaque and
// equality-comparable, so it can key a plain Go map directly.
type Checksum = solution.Checksum

// AssetProvider fetches and validates the assets (project/document bytes)
// referenced by a checksum, from whatever remote source the embedding host
// configures. It is the sole boundary the core crosses to reach the asset
// transfer layer, which this package never inspects further.
type AssetProvider = asset.Provider

// Updater performs solution materialization: deciding whether an
// incremental rebase of the workspace's current primary snapshot is
// possible, and building a fresh Snapshot when it is not.
type Updater interface {
	// IsIncrementalUpdate reports whether checksum can be reached by
	// rebasing the workspace's current primary snapshot, rather than a
	// full reconstruction from assets.
	IsIncrementalUpdate(ctx context.Context, checksum Checksum) (bool, error)
	// CreateSolution produces the Snapshot for checksum, either via
	// incremental rebase (if IsIncrementalUpdate returned true) or full
	// reconstruction from synchronized assets.
	CreateSolution(ctx context.Context, checksum Checksum) (solution.Snapshot, error)
}

// WorkspaceHost is the notification sink for changes to the workspace's
// primary snapshot, and exposes the snapshot currently installed. The
// embedding host owns deciding what to do with these notifications (e.g.
// re-running diagnostics). The core calls OnSolutionAdded,
// OnSolutionChanged and ClearSolutionData synchronously, while holding the
// workspace's shared mutex, so that notifications are issued in the same
// order as the version updates they report.
type WorkspaceHost interface {
	// OnSolutionAdded is called whenever TryUpdateCurrentSolution installs
	// a snapshot whose solution identity or primary file path differs from
	// the prior one.
	OnSolutionAdded(ctx context.Context, snapshot solution.Snapshot)
	// OnSolutionChanged is called whenever TryUpdateCurrentSolution installs
	// a snapshot sharing the prior one's solution identity and primary path.
	OnSolutionChanged(ctx context.Context, snapshot solution.Snapshot)
	// ClearSolutionData is invoked immediately before a solution-added
	// event, giving the host a chance to drop per-solution auxiliary
	// state tied to the outgoing snapshot.
	ClearSolutionData(ctx context.Context)
	// CurrentSnapshot returns the snapshot currently installed as primary.
	CurrentSnapshot() solution.Snapshot
}
