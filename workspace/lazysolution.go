package workspace

import (
	"context"
	"sync"

	"github.com/joeycumines/go-solutioncache/solution"
)

// producerFunc materializes the Snapshot for whatever checksum a
// refCountedLazySolution was constructed for. It must not touch the owning
// checksumCache's mutex synchronously -- it runs on its own goroutine,
// started eagerly by newRefCountedLazySolution, so waiters never contend on
// a "start" latch.
type producerFunc func(ctx context.Context) (solution.Snapshot, error)

// refCountedLazySolution is one materialization attempt: eagerly started,
// reference-counted, and self-removing from its owning cache the instant
// its reference count reaches zero.
//
// Every method that touches refcount, cleaned, or cancel requires the
// shared mutex (mu) to already be held by the caller -- this type has no
// locking of its own, by design, since its bookkeeping must be serialized
// with the checksumCache's map mutations and the Workspace's own state
// under the one shared mutex (spec §5, "single shared mutex").
type refCountedLazySolution struct {
	mu     *sync.Mutex
	cancel context.CancelCauseFunc

	done     chan struct{}
	snapshot solution.Snapshot
	err      error

	refcount int
	cleaned  bool
	cleanup  func()
}

// newRefCountedLazySolution constructs an entry with refcount 1 (the
// caller's own reference) and immediately schedules producer on a new
// goroutine, passing it a context that is cancelled (with
// errMaterializationAbandoned as its cause) the moment the last reference
// is released. cleanup is invoked, once, with mu held, when that happens.
func newRefCountedLazySolution(mu *sync.Mutex, producer producerFunc, cleanup func()) *refCountedLazySolution {
	ctx, cancel := context.WithCancelCause(context.Background())
	e := &refCountedLazySolution{
		mu:       mu,
		cancel:   cancel,
		done:     make(chan struct{}),
		refcount: 1,
		cleanup:  cleanup,
	}
	go func() {
		defer close(e.done)
		e.snapshot, e.err = producer(ctx)
	}()
	return e
}

// addReference increments the refcount. Precondition: mu held, refcount > 0.
func (e *refCountedLazySolution) addReference() {
	if e.cleaned || e.refcount <= 0 {
		errInvariantf("addReference on entry with refcount %d (cleaned=%v)", e.refcount, e.cleaned)
	}
	e.refcount++
}

// release decrements the refcount. If it reaches zero, the materialization
// is cancelled and cleanup is invoked, synchronously, before release
// returns. Precondition: mu held.
func (e *refCountedLazySolution) release() {
	if e.cleaned {
		errInvariantf("release on already-cleaned-up entry")
	}
	e.refcount--
	if e.refcount < 0 {
		errInvariantf("refcount went negative")
	}
	if e.refcount == 0 {
		e.cleaned = true
		e.cancel(errMaterializationAbandoned)
		if e.cleanup != nil {
			e.cleanup()
		}
	}
}

// wait blocks until the materialization completes or ctx is cancelled,
// whichever happens first. It does not itself touch refcount -- callers
// hold whatever reference keeps the entry (and thus the underlying
// goroutine) alive for the duration of the wait.
func (e *refCountedLazySolution) wait(ctx context.Context) (solution.Snapshot, error) {
	select {
	case <-ctx.Done():
		return solution.Snapshot{}, ctx.Err()
	case <-e.done:
		return e.snapshot, e.err
	}
}
