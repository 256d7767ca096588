// Package asset defines the Provider interface the workspace cache consumes
// to synchronize and describe the bytes behind a solution.Checksum, plus a
// MemoryProvider reference implementation for tests and local demos.
//
// The real network asset-transfer layer is an external collaborator
// (spec.md §1, §6) and out of scope for this repository; MemoryProvider
// exists purely to exercise Provider's contract end-to-end in tests.
package asset
