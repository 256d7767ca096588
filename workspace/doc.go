// Package workspace implements a concurrency-safe cache that materializes
// checksum-identified solution snapshots on demand, shares an in-flight
// materialization across concurrent requesters, keeps the most recently
// requested snapshot alive against back-to-back repeat requests, and
// promotes snapshots to a monotonically versioned "primary" state.
//
// The three cooperating pieces are Workspace (the public façade), the
// unexported checksumCache (two instances: any-branch and primary-branch),
// and the unexported refCountedLazySolution (one materialization attempt,
// eagerly started, reference-counted, self-removing on last release).
// All three share a single mutex, injected at construction, so every
// bookkeeping decision about the cache maps, reference counts, the
// "last requested" slot, and the workspace's current snapshot/version is
// serialized on one lock. Expensive work -- materialization, asset sync,
// and the caller's own operation -- always runs with that lock released.
package workspace
