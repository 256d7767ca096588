// Package workspacehost provides a reference workspace.WorkspaceHost: an
// in-process sink that records the current snapshot, keeps a bounded ring
// of recent change events for test and demo observability, and fans each
// event out to registered listeners synchronously, in registration order.
package workspacehost

import (
	"context"
	"sync"

	"github.com/joeycumines/go-solutioncache/solution"
)

// ChangeEvent is one workspace-change notification, as recorded into the
// change ring.
type ChangeEvent struct {
	Kind     solution.ChangeKind
	Snapshot solution.Snapshot
}

// Listener observes a ChangeEvent. Listeners run synchronously, in
// registration order, on whatever goroutine reported the event. When the
// event comes from a workspace.Workspace, that goroutine holds the
// workspace's shared mutex for the whole call, listeners included.
type Listener func(ctx context.Context, event ChangeEvent)

const defaultRingSize = 32

// InMemory is a process-local WorkspaceHost: no persistence, unbounded
// growth impossible by construction (the ring overwrites its oldest entry
// once full).
type InMemory struct {
	mu        sync.Mutex
	current   solution.Snapshot
	listeners []Listener

	ring    []ChangeEvent
	ringPos int
	ringLen int

	// eventsSinceAdded counts change events observed since the last "added"
	// transition -- a minimal stand-in for the "per-solution auxiliary
	// state" spec.md §4.2 requires a host to clear before installing a
	// logically new solution.
	eventsSinceAdded int
}

// NewInMemory constructs an InMemory host with a change ring holding the
// most recent ringSize events (defaults to 32 if ringSize <= 0).
func NewInMemory(ringSize int) *InMemory {
	if ringSize <= 0 {
		ringSize = defaultRingSize
	}
	return &InMemory{ring: make([]ChangeEvent, ringSize)}
}

// AddListener registers fn to be called, synchronously and in registration
// order, for every subsequent change event.
func (h *InMemory) AddListener(fn Listener) {
	h.mu.Lock()
	h.listeners = append(h.listeners, fn)
	h.mu.Unlock()
}

// OnSolutionAdded implements workspace.WorkspaceHost.
func (h *InMemory) OnSolutionAdded(ctx context.Context, snapshot solution.Snapshot) {
	h.record(ctx, solution.ChangeAdded, snapshot)
}

// OnSolutionChanged implements workspace.WorkspaceHost.
func (h *InMemory) OnSolutionChanged(ctx context.Context, snapshot solution.Snapshot) {
	h.record(ctx, solution.ChangeChanged, snapshot)
}

// ClearSolutionData implements workspace.WorkspaceHost. It's always called
// immediately before OnSolutionAdded for an "added" transition (spec.md
// §4.2), so it resets the per-solution counter OnSolutionAdded is about to
// start accumulating again.
func (h *InMemory) ClearSolutionData(ctx context.Context) {
	h.mu.Lock()
	h.eventsSinceAdded = 0
	h.mu.Unlock()
}

// CurrentSnapshot implements workspace.WorkspaceHost.
func (h *InMemory) CurrentSnapshot() solution.Snapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current
}

// RecentEvents returns the events currently held in the change ring,
// oldest first.
func (h *InMemory) RecentEvents() []ChangeEvent {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]ChangeEvent, h.ringLen)
	start := h.ringPos - h.ringLen
	for i := range h.ringLen {
		out[i] = h.ring[(start+i+len(h.ring))%len(h.ring)]
	}
	return out
}

func (h *InMemory) record(ctx context.Context, kind solution.ChangeKind, snapshot solution.Snapshot) {
	h.mu.Lock()
	h.current = snapshot
	h.eventsSinceAdded++
	event := ChangeEvent{Kind: kind, Snapshot: snapshot}

	h.ring[h.ringPos] = event
	h.ringPos = (h.ringPos + 1) % len(h.ring)
	if h.ringLen < len(h.ring) {
		h.ringLen++
	}

	listeners := append([]Listener(nil), h.listeners...)
	h.mu.Unlock()

	for _, l := range listeners {
		l(ctx, event)
	}
}
