package solution

// ManifestProject describes one project's file membership, as fetched from
// the remote asset source. It's the expanded Go shape of spec.md's
// "SolutionInfo": enough for Builder to reconstruct or rebase a Snapshot
// without this package needing to know anything about how the bytes behind
// each file path were actually transferred.
type ManifestProject struct {
	Name      string
	FilePath  string
	Documents []string
}

// Manifest is the external solution-builder's view of a Checksum: the set of
// projects and files it names, sufficient to build or rebase a Snapshot.
type Manifest struct {
	Checksum        Checksum
	ID              SolutionID
	PrimaryFilePath string
	Projects        []ManifestProject
}

// SharedProjectCount returns how many projects (by Name) appear, unchanged
// in FilePath, in both manifests. It underlies the incremental-update
// heuristic in solutionbuilder.Builder.IsIncrementalUpdate.
func SharedProjectCount(a, b Manifest) int {
	byName := make(map[string]string, len(a.Projects))
	for _, p := range a.Projects {
		byName[p.Name] = p.FilePath
	}
	n := 0
	for _, p := range b.Projects {
		if fp, ok := byName[p.Name]; ok && fp == p.FilePath {
			n++
		}
	}
	return n
}
