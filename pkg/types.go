package pkg

// NOTE: please keep the kinds and their String cases in the same order.

// A SourceKind indicates where the code of a dependency comes from.
type SourceKind int

// Supported dependency sources.
const (
	UnknownSource SourceKind = iota // Not knowable from the manifest (e.g. inherited from a workspace)
	Registry                        // A registry version requirement (https://crates.io)
	Path                            // A local path dependency
	Git                             // A git repository
)

func (k SourceKind) String() string {
	switch k {
	case UnknownSource:
		return "unknown"
	case Registry:
		return "registry"
	case Path:
		return "path"
	case Git:
		return "git"
	}
	return ""
}

// A RevisionKind indicates which commit of a git dependency is selected.
type RevisionKind int

// Supported revision selectors, in increasing priority.
const (
	DefaultBranch RevisionKind = iota // HEAD of the repository's default branch
	Branch                            // HEAD of a named branch
	Tag                               // A named tag
	Commit                            // An explicit revision (commit hash or ref)
)

func (k RevisionKind) String() string {
	switch k {
	case DefaultBranch:
		return "default"
	case Branch:
		return "branch"
	case Tag:
		return "tag"
	case Commit:
		return "rev"
	}
	return ""
}
