// Package solutionbuilder provides a reference workspace.Updater: it
// resolves a checksum's solution.Manifest through an asset.Provider and
// reconstructs a solution.Snapshot from it, taking a cheap incremental path
// when enough of a candidate checksum's projects are unchanged from the
// last one it built.
package solutionbuilder

import (
	"context"
	"sync"

	"github.com/joeycumines/go-solutioncache/asset"
	"github.com/joeycumines/go-solutioncache/solution"
)

// Builder composes an asset.Provider to satisfy workspace.Updater. It keeps
// no reference to the workspace package: the interface is implemented
// structurally, the same way this corpus's components compose rather than
// import each other's callers.
type Builder struct {
	assets asset.Provider

	// MinSharedProjects is the minimum number of projects a candidate
	// checksum's manifest must share, unchanged, with the last manifest
	// Builder built from for IsIncrementalUpdate to report true. Defaults
	// to 1 if <= 0.
	MinSharedProjects int

	mu       sync.Mutex
	lastFull solution.Manifest
	hasLast  bool
}

// New returns a Builder drawing manifests from assets.
func New(assets asset.Provider) *Builder {
	return &Builder{assets: assets}
}

func (b *Builder) minShared() int {
	if b.MinSharedProjects <= 0 {
		return 1
	}
	return b.MinSharedProjects
}

// IsIncrementalUpdate reports whether checksum's manifest shares enough
// projects with the last manifest Builder built a full Snapshot from that
// CreateSolution can rebase instead of reconstructing from scratch.
func (b *Builder) IsIncrementalUpdate(ctx context.Context, checksum solution.Checksum) (bool, error) {
	manifest, err := b.assets.CreateSolutionInfo(ctx, checksum)
	if err != nil {
		return false, &asset.FetchError{Checksum: checksum, Err: err}
	}

	b.mu.Lock()
	last, hasLast := b.lastFull, b.hasLast
	b.mu.Unlock()
	if !hasLast {
		return false, nil
	}

	return solution.SharedProjectCount(last, manifest) >= b.minShared(), nil
}

// CreateSolution builds a fresh Snapshot for checksum from its manifest.
// Asset synchronization is the caller's responsibility (it already ran, or
// was skipped, by the time IsIncrementalUpdate reported incremental): this
// method only ever describes and assembles.
func (b *Builder) CreateSolution(ctx context.Context, checksum solution.Checksum) (solution.Snapshot, error) {
	manifest, err := b.assets.CreateSolutionInfo(ctx, checksum)
	if err != nil {
		return solution.Snapshot{}, &solution.BuildError{Checksum: checksum, Err: err}
	}

	b.mu.Lock()
	last, hasLast := b.lastFull, b.hasLast
	b.mu.Unlock()

	var snapshot solution.Snapshot
	if hasLast && solution.SharedProjectCount(last, manifest) >= b.minShared() {
		snapshot = rebase(last, manifest)
	} else {
		snapshot = build(manifest)
	}

	b.mu.Lock()
	b.lastFull = manifest
	b.hasLast = true
	b.mu.Unlock()

	return snapshot, nil
}

func build(manifest solution.Manifest) solution.Snapshot {
	projects := make([]solution.Project, len(manifest.Projects))
	for i, p := range manifest.Projects {
		projects[i] = solution.Project{
			Name:      p.Name,
			FilePath:  p.FilePath,
			Documents: p.Documents,
		}
	}
	return solution.Snapshot{
		Checksum:        manifest.Checksum,
		ID:              manifest.ID,
		PrimaryFilePath: manifest.PrimaryFilePath,
		Projects:        projects,
	}
}

// rebase constructs a Snapshot the same way build does. It's kept as a
// distinct call site, rather than folded into build, because it's the seam
// a more elaborate Builder would use to reuse prev's unchanged project
// state instead of rebuilding it -- exactly the optimization the
// incremental path exists to make room for.
func rebase(prev, manifest solution.Manifest) solution.Snapshot {
	return build(manifest)
}
