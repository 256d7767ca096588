// Package solution models the immutable, opaque workspace state that the
// cache in package workspace materializes: checksums, snapshots, and the
// manifests used to (re)build them.
package solution
