package workspace

import (
	"context"
	"sync"

	"github.com/joeycumines/go-solutioncache/asset"
	"github.com/joeycumines/go-solutioncache/solution"
)

// registerManifest Puts an empty manifest for checksum into assets, so that
// synchronizeAssets's calls against it (SynchronizeSolutionAssets,
// ProjectNames) succeed rather than failing with "unknown checksum" --
// MemoryProvider only knows about checksums explicitly registered this way.
func registerManifest(assets *asset.MemoryProvider, checksum Checksum) {
	assets.Put(solution.Manifest{Checksum: checksum})
}

// fakeUpdater is a test Updater. IsIncrementalUpdate always reports false
// (forcing the full-reconstruction path so synchronizeAssets runs too),
// unless forceIncremental is set. CreateSolution ignores the asset layer
// entirely for its own snapshot construction.
type fakeUpdater struct {
	mu               sync.Mutex
	calls            map[Checksum]int
	cancelled        map[Checksum]bool
	forceIncremental bool

	// gate, if non-nil, must be received from (or ctx cancelled) before
	// CreateSolution returns a snapshot.
	gate chan struct{}

	// cancelledCh, if non-nil, receives checksum each time CreateSolution
	// observes its context cancelled while waiting on gate.
	cancelledCh chan Checksum
}

func newFakeUpdater() *fakeUpdater {
	return &fakeUpdater{
		calls:     make(map[Checksum]int),
		cancelled: make(map[Checksum]bool),
	}
}

func (u *fakeUpdater) IsIncrementalUpdate(ctx context.Context, checksum Checksum) (bool, error) {
	return u.forceIncremental, nil
}

func (u *fakeUpdater) CreateSolution(ctx context.Context, checksum Checksum) (solution.Snapshot, error) {
	u.mu.Lock()
	u.calls[checksum]++
	gate := u.gate
	u.mu.Unlock()

	if gate != nil {
		select {
		case <-ctx.Done():
			u.mu.Lock()
			u.cancelled[checksum] = true
			u.mu.Unlock()
			if u.cancelledCh != nil {
				u.cancelledCh <- checksum
			}
			return solution.Snapshot{}, context.Cause(ctx)
		case <-gate:
		}
	}

	return solution.Snapshot{
		Checksum:        checksum,
		ID:              solution.SolutionID("solution-" + checksum.String()),
		PrimaryFilePath: "primary-" + checksum.String(),
	}, nil
}

func (u *fakeUpdater) callCount(checksum Checksum) int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.calls[checksum]
}

func (u *fakeUpdater) wasCancelled(checksum Checksum) bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.cancelled[checksum]
}

// fakeHost is a test WorkspaceHost recording every notification it
// receives.
type fakeHost struct {
	mu      sync.Mutex
	current solution.Snapshot
	added   []solution.Snapshot
	changed []solution.Snapshot
	cleared int
}

func (h *fakeHost) OnSolutionAdded(ctx context.Context, snapshot solution.Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.added = append(h.added, snapshot)
	h.current = snapshot
}

func (h *fakeHost) OnSolutionChanged(ctx context.Context, snapshot solution.Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.changed = append(h.changed, snapshot)
	h.current = snapshot
}

func (h *fakeHost) ClearSolutionData(ctx context.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cleared++
}

func (h *fakeHost) CurrentSnapshot() solution.Snapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current
}

func checksumOf(b byte) Checksum {
	var c Checksum
	c[0] = b
	return c
}

// fakeProjectProvider is a minimal Provider additionally implementing
// asset.ProjectSynchronizer, recording which projects SynchronizeProjectAssets
// was called for, so synchronizeAssets's bounded fan-out can be exercised
// and asserted on directly.
type fakeProjectProvider struct {
	manifest solution.Manifest

	mu     sync.Mutex
	synced []string
}

func (p *fakeProjectProvider) SynchronizeSolutionAssets(ctx context.Context, checksum solution.Checksum) error {
	return nil
}

func (p *fakeProjectProvider) CreateSolutionInfo(ctx context.Context, checksum solution.Checksum) (solution.Manifest, error) {
	return p.manifest, nil
}

func (p *fakeProjectProvider) ProjectNames(ctx context.Context, checksum solution.Checksum) ([]string, error) {
	names := make([]string, len(p.manifest.Projects))
	for i, proj := range p.manifest.Projects {
		names[i] = proj.Name
	}
	return names, nil
}

func (p *fakeProjectProvider) SynchronizeProjectAssets(ctx context.Context, checksum solution.Checksum, project string) error {
	p.mu.Lock()
	p.synced = append(p.synced, project)
	p.mu.Unlock()
	return nil
}
