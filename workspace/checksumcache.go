package workspace

import "sync"

// checksumCache maps a Checksum to its in-flight or completed
// refCountedLazySolution, and pins the most recently requested entry with
// one supplementary reference so back-to-back requests for the same
// checksum reuse it instead of forcing a fresh materialization (spec §4.3).
//
// A Workspace holds two instances -- any-branch and primary-branch --
// constructed over the same *sync.Mutex, so the two caches and the
// Workspace's own state share one serialization domain.
type checksumCache struct {
	mu      *sync.Mutex
	entries map[Checksum]*refCountedLazySolution

	hasLastRequested      bool
	lastRequestedChecksum Checksum
	lastRequestedEntry    *refCountedLazySolution
}

func newChecksumCache(mu *sync.Mutex) *checksumCache {
	return &checksumCache{
		mu:      mu,
		entries: make(map[Checksum]*refCountedLazySolution),
	}
}

// tryFastGet returns, with an added reference, the entry pinned in the
// last-requested slot (if checksum matches it) or otherwise present in the
// map, under a single critical section.
func (c *checksumCache) tryFastGet(checksum Checksum) (*refCountedLazySolution, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.hasLastRequested && c.lastRequestedChecksum == checksum {
		c.lastRequestedEntry.addReference()
		return c.lastRequestedEntry, true
	}
	if e, ok := c.entries[checksum]; ok {
		e.addReference()
		return e, true
	}
	return nil, false
}

// slowGetOrCreate returns the existing entry for checksum (with an added
// reference) if one is present, or else installs and returns a freshly
// constructed one, whose producer is the eagerly-scheduled producer. The
// returned reference is the caller's own -- refcount starts at 1 for a new
// entry, meaning that 1 is the caller's.
func (c *checksumCache) slowGetOrCreate(checksum Checksum, producer producerFunc) *refCountedLazySolution {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[checksum]; ok {
		e.addReference()
		return e
	}

	var e *refCountedLazySolution
	e = newRefCountedLazySolution(c.mu, producer, func() {
		// Invoked from release(), with mu already held. ABA-safe: only
		// remove the map entry if it's still the same object this
		// closure was built for -- a newer entry may already have
		// replaced it.
		if cur, ok := c.entries[checksum]; ok && cur == e {
			delete(c.entries, checksum)
		}
	})
	c.entries[checksum] = e
	return e
}

// setLastRequested pins entry (already referenced by the caller) as the
// most recently requested entry for checksum, taking a supplementary
// reference of its own. It must be called with no lock held, since it
// acquires mu itself. The previously pinned entry is released in a second,
// separate critical section, after the swap's own critical section has
// already unlocked (spec §4.3 item 3, §9 "Deadlock on last requested
// swap"); that release, and the map-removing cleanup it may trigger, run
// with mu held and do not acquire it again.
func (c *checksumCache) setLastRequested(checksum Checksum, entry *refCountedLazySolution) {
	c.mu.Lock()
	entry.addReference()
	prevHas, prevEntry := c.hasLastRequested, c.lastRequestedEntry
	c.hasLastRequested = true
	c.lastRequestedChecksum = checksum
	c.lastRequestedEntry = entry
	c.mu.Unlock()

	if prevHas {
		c.mu.Lock()
		prevEntry.release()
		c.mu.Unlock()
	}
}
