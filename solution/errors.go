package solution

import "fmt"

// BuildError wraps a failure to construct or rebase a Snapshot from a
// Manifest, distinguishing it from asset-fetch failures (package asset) per
// spec.md §7's AssetFetchFailed / SolutionBuildFailed distinction.
type BuildError struct {
	Checksum Checksum
	Err      error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("solution: build failed for checksum %s: %v", e.Checksum, e.Err)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}
