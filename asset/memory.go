package asset

import (
	"context"
	"fmt"
	"sync"

	"github.com/joeycumines/go-solutioncache/solution"
)

// MemoryProvider is a reference Provider backed by an in-memory map of
// checksum to solution.Manifest, registered ahead of time via Put. It exists
// for tests and local demos, standing in for the real (out of scope, per
// spec.md §1) network asset-transfer layer.
//
// MemoryProvider is safe for concurrent use.
type MemoryProvider struct {
	mu        sync.RWMutex
	manifests map[solution.Checksum]solution.Manifest

	// SyncDelay, if non-nil, is invoked by SynchronizeSolutionAssets before
	// returning, to simulate remote I/O latency. It must respect ctx.
	SyncDelay func(ctx context.Context) error

	// FailChecksums, if set, causes SynchronizeSolutionAssets to fail for the
	// named checksums, simulating a transient remote failure. Checksums are
	// removed from this set the first time they're attempted, so a second
	// attempt for the same checksum succeeds (matching spec.md §4.6: "a new
	// request with the same checksum arriving after cleanup starts a fresh
	// materialization").
	failMu        sync.Mutex
	FailChecksums map[solution.Checksum]error
}

// NewMemoryProvider constructs a MemoryProvider with no registered manifests.
func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{manifests: make(map[solution.Checksum]solution.Manifest)}
}

// Put registers manifest under its own Checksum, for later retrieval.
func (p *MemoryProvider) Put(manifest solution.Manifest) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.manifests[manifest.Checksum] = manifest
}

// SynchronizeSolutionAssets implements Provider.
func (p *MemoryProvider) SynchronizeSolutionAssets(ctx context.Context, checksum solution.Checksum) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := p.takeFailure(checksum); err != nil {
		return &FetchError{Checksum: checksum, Err: err}
	}

	if p.SyncDelay != nil {
		if err := p.SyncDelay(ctx); err != nil {
			return err
		}
	}

	p.mu.RLock()
	_, ok := p.manifests[checksum]
	p.mu.RUnlock()
	if !ok {
		return &FetchError{Checksum: checksum, Err: fmt.Errorf("unknown checksum")}
	}
	return nil
}

// ProjectNames implements ProjectSynchronizer. It reads the registered
// manifest's project names directly -- the same data CreateSolutionInfo
// would return -- since MemoryProvider's registration via Put is itself
// the only "remote description" it has, with no separate synchronized
// state to require first.
func (p *MemoryProvider) ProjectNames(ctx context.Context, checksum solution.Checksum) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.mu.RLock()
	manifest, ok := p.manifests[checksum]
	p.mu.RUnlock()
	if !ok {
		return nil, &FetchError{Checksum: checksum, Err: fmt.Errorf("unknown checksum")}
	}

	names := make([]string, len(manifest.Projects))
	for i, proj := range manifest.Projects {
		names[i] = proj.Name
	}
	return names, nil
}

// SynchronizeProjectAssets implements ProjectSynchronizer, by delegating to
// SynchronizeSolutionAssets: MemoryProvider has no per-project state, so
// there's nothing finer-grained to do, but implementing the interface lets
// callers exercise their bounded-concurrency fan-out path against it.
func (p *MemoryProvider) SynchronizeProjectAssets(ctx context.Context, checksum solution.Checksum, project string) error {
	return p.SynchronizeSolutionAssets(ctx, checksum)
}

// CreateSolutionInfo implements Provider.
func (p *MemoryProvider) CreateSolutionInfo(ctx context.Context, checksum solution.Checksum) (solution.Manifest, error) {
	if err := ctx.Err(); err != nil {
		return solution.Manifest{}, err
	}

	p.mu.RLock()
	manifest, ok := p.manifests[checksum]
	p.mu.RUnlock()
	if !ok {
		return solution.Manifest{}, &FetchError{Checksum: checksum, Err: fmt.Errorf("unknown checksum")}
	}
	return manifest, nil
}

// takeFailure consumes (and clears) a one-shot injected failure for checksum,
// if any was registered via FailChecksums.
func (p *MemoryProvider) takeFailure(checksum solution.Checksum) error {
	p.failMu.Lock()
	defer p.failMu.Unlock()
	if p.FailChecksums == nil {
		return nil
	}
	err, ok := p.FailChecksums[checksum]
	if !ok {
		return nil
	}
	delete(p.FailChecksums, checksum)
	return err
}
