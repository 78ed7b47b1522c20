// Package pkg defines the resolved activation state of a crate's dependencies.
package pkg

import (
	"encoding/json"
	"sort"
	"strings"
)

// A Source describes where a dependency's code is fetched from. Only the
// fields belonging to Kind are meaningful.
type Source struct {
	Kind SourceKind

	Version  string      `json:",omitempty"` // Registry
	Path     string      `json:",omitempty"` // Path
	URL      string      `json:",omitempty"` // Git
	Revision GitRevision `json:",omitempty"` // Git
}

// RegistrySource returns a registry source with the given version requirement.
func RegistrySource(version string) Source {
	return Source{Kind: Registry, Version: version}
}

// PathSource returns a local path source.
func PathSource(path string) Source {
	return Source{Kind: Path, Path: path}
}

// GitSource returns a git source for the repository at url.
func GitSource(url string, revision GitRevision) Source {
	return Source{Kind: Git, URL: url, Revision: revision}
}

// Unknown returns the source used when a dependency's origin cannot be
// determined from the local manifest.
func Unknown() Source {
	return Source{Kind: UnknownSource}
}

func (s Source) String() string {
	switch s.Kind {
	case Registry:
		return "registry:" + s.Version
	case Path:
		return "path:" + s.Path
	case Git:
		return "git:" + s.URL + "#" + s.Revision.String()
	case UnknownSource:
		return "unknown"
	}
	return ""
}

// A GitRevision selects the commit of a git dependency.
type GitRevision struct {
	Kind RevisionKind
	Name string `json:",omitempty"`
}

// DefaultBranchHead selects the HEAD of the default branch.
func DefaultBranchHead() GitRevision {
	return GitRevision{Kind: DefaultBranch}
}

// BranchRevision selects the HEAD of a branch.
func BranchRevision(name string) GitRevision {
	return GitRevision{Kind: Branch, Name: name}
}

// TagRevision selects a tag.
func TagRevision(name string) GitRevision {
	return GitRevision{Kind: Tag, Name: name}
}

// CommitRevision selects an explicit revision.
func CommitRevision(rev string) GitRevision {
	return GitRevision{Kind: Commit, Name: rev}
}

func (r GitRevision) String() string {
	switch r.Kind {
	case DefaultBranch:
		return "HEAD"
	case Branch, Tag, Commit:
		return r.Kind.String() + "=" + r.Name
	}
	return ""
}

// Features is a set of feature names.
type Features map[string]struct{}

// NewFeatures returns a set holding names.
func NewFeatures(names ...string) Features {
	f := make(Features, len(names))
	for _, name := range names {
		f.Add(name)
	}
	return f
}

func (f Features) Add(name string) {
	f[name] = struct{}{}
}

func (f Features) Has(name string) bool {
	_, ok := f[name]
	return ok
}

// Union returns a new set holding the features of f and every other set.
func (f Features) Union(others ...Features) Features {
	u := make(Features, len(f))
	for name := range f {
		u.Add(name)
	}
	for _, other := range others {
		for name := range other {
			u.Add(name)
		}
	}
	return u
}

// Sorted returns the feature names in lexical order.
func (f Features) Sorted() []string {
	names := make([]string, 0, len(f))
	for name := range f {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (f Features) String() string {
	return "{" + strings.Join(f.Sorted(), ", ") + "}"
}

// MarshalJSON encodes the set as a sorted list.
func (f Features) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.Sorted())
}

// An ActiveDependency is a dependency that is enabled for the current build.
type ActiveDependency struct {
	Source Source
	// DefaultFeatures is whether the dependency's own default features are
	// pulled in.
	DefaultFeatures bool
	// Features are the additional features explicitly requested.
	Features Features
}

// Dependencies maps dependency names (as written in the manifest) to their
// activation state.
type Dependencies map[string]ActiveDependency

// Names returns the dependency names in lexical order.
func (d Dependencies) Names() []string {
	names := make([]string, 0, len(d))
	for name := range d {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
