package solution

// SolutionID identifies the logical solution a Snapshot belongs to,
// independent of the checksum of any particular version of its contents.
// Two snapshots with the same SolutionID but different checksums are
// different versions of the same solution; a change in SolutionID (or in
// PrimaryFilePath) is what distinguishes a freshly "added" solution from one
// that merely "changed", per Workspace.tryUpdateCurrentSolution.
type SolutionID string

// Project is a minimal, opaque-to-the-cache description of one project
// within a solution. The cache never inspects Documents; it exists so that
// Builder has something concrete to assemble into a Snapshot.
type Project struct {
	Name      string
	FilePath  string
	Documents []string
}

// Snapshot is an immutable view of project/file state, produced by an
// external solution builder (package solutionbuilder). It is cheap to hold:
// Projects is shared structure, never mutated in place once a Snapshot is
// constructed.
type Snapshot struct {
	Checksum        Checksum
	ID              SolutionID
	PrimaryFilePath string
	Projects        []Project
}

// Project looks up a project by name, returning false if absent.
func (s Snapshot) Project(name string) (Project, bool) {
	for _, p := range s.Projects {
		if p.Name == name {
			return p, true
		}
	}
	return Project{}, false
}

// ChangeKind classifies how installing a new Snapshot as the workspace
// primary relates to the previous one, per spec.md §4.2.
type ChangeKind int

const (
	// ChangeNone indicates no change was made (e.g. version too old).
	ChangeNone ChangeKind = iota
	// ChangeAdded indicates the new snapshot has a different SolutionID or
	// PrimaryFilePath to the previous one: a logically new solution.
	ChangeAdded
	// ChangeChanged indicates the new snapshot is a new version of the same
	// solution as the previous one.
	ChangeChanged
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeAdded:
		return "added"
	case ChangeChanged:
		return "changed"
	default:
		return "none"
	}
}

// Diff classifies installing next in place of prev, per
// Workspace.tryUpdateCurrentSolution's contract: if the solution identity or
// primary file path differ, it's an "added" transition (any per-solution
// auxiliary state must be cleared first); otherwise it's a "changed"
// transition. Diff is a pure function with no locking concerns, factored out
// of the cache so it can be tested directly.
func Diff(prev, next Snapshot) ChangeKind {
	if prev.ID != next.ID || prev.PrimaryFilePath != next.PrimaryFilePath {
		return ChangeAdded
	}
	return ChangeChanged
}
