package asset

import (
	"context"
	"fmt"

	"github.com/joeycumines/go-solutioncache/solution"
)

// Provider synchronizes and describes the assets (project/document bytes)
// referenced by a solution.Checksum. It is the "AssetProvider" external
// collaborator of spec.md §6: an opaque remote-fetch-and-validate boundary
// that the cache core never inspects beyond calling these two methods.
type Provider interface {
	// SynchronizeSolutionAssets ensures all assets referenced by checksum are
	// available locally, fetching and validating them from the remote source
	// as needed.
	SynchronizeSolutionAssets(ctx context.Context, checksum solution.Checksum) error
	// CreateSolutionInfo returns the manifest describing checksum, once its
	// assets have been synchronized.
	CreateSolutionInfo(ctx context.Context, checksum solution.Checksum) (solution.Manifest, error)
}

// ProjectSynchronizer is an optional capability of a Provider: a Provider
// that can synchronize the assets of one project at a time implements it,
// letting callers fan the bulk sync of a checksum's assets out across its
// projects with bounded concurrency instead of one opaque whole-checksum
// call. Providers that can only sync a checksum as a unit simply don't
// implement it.
type ProjectSynchronizer interface {
	// ProjectNames reports the names of the projects checksum's solution
	// references, for fan-out. Unlike Provider.CreateSolutionInfo, it
	// carries no precondition that checksum's assets already be
	// synchronized -- it describes structure a remote source can report
	// up front, not the result of having fetched it.
	ProjectNames(ctx context.Context, checksum solution.Checksum) ([]string, error)
	// SynchronizeProjectAssets ensures one named project's assets are
	// available locally, the same way SynchronizeSolutionAssets does for
	// every project referenced by checksum.
	SynchronizeProjectAssets(ctx context.Context, checksum solution.Checksum, project string) error
}

// FetchError wraps a failure to synchronize or describe a checksum's assets,
// distinguishing it from solution-build failures (package solution) per
// spec.md §7's AssetFetchFailed / SolutionBuildFailed distinction.
type FetchError struct {
	Checksum solution.Checksum
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("asset: fetch failed for checksum %s: %v", e.Checksum, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
