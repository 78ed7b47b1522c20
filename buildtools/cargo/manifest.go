// Package cargo reads Cargo manifests (Cargo.toml) and lockfiles (Cargo.lock).
package cargo

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/apex/log"

	"github.com/fossas/activedeps/errors"
	"github.com/fossas/activedeps/files"
)

const (
	ManifestFile = "Cargo.toml"
	LockFile     = "Cargo.lock"

	manifestDocs = "https://doc.rust-lang.org/cargo/reference/manifest.html"
)

// Manifest is the subset of Cargo.toml needed to decide which dependencies
// are active.
type Manifest struct {
	Package           Crate               `toml:"package"`
	Features          map[string][]string `toml:"features"`
	Dependencies      Table               `toml:"dependencies"`
	DevDependencies   Table               `toml:"dev-dependencies"`
	BuildDependencies Table               `toml:"build-dependencies"`
	Target            map[string]Target   `toml:"target"`
}

// Crate is the `[package]` section.
type Crate struct {
	Name  string `toml:"name"`
	Links string `toml:"links"`
}

// Target holds the dependency tables of a `[target.<name>]` section, where
// name is a target triple or a `cfg(...)` predicate.
type Target struct {
	Dependencies      Table `toml:"dependencies"`
	DevDependencies   Table `toml:"dev-dependencies"`
	BuildDependencies Table `toml:"build-dependencies"`
}

// Table is a dependency table as decoded from TOML. Values are either a
// version string or a table of details.
type Table map[string]interface{}

// Names returns the dependency names in lexical order.
func (t Table) Names() []string {
	return sortedKeys(t)
}

// Dependency parses the declaration of the dependency called name.
func (t Table) Dependency(name string) (Dependency, error) {
	raw, ok := t[name]
	if !ok {
		return Dependency{}, fmt.Errorf("no dependency named %q", name)
	}
	return ParseDependency(name, raw)
}

// FeatureNames returns the declared features in lexical order.
func (m Manifest) FeatureNames() []string {
	names := make([]string, 0, len(m.Features))
	for name := range m.Features {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TargetNames returns the `[target.*]` keys in lexical order.
func (m Manifest) TargetNames() []string {
	names := make([]string, 0, len(m.Target))
	for name := range m.Target {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ReadManifest reads and validates the Cargo.toml in dir.
func ReadManifest(dir string) (Manifest, error) {
	path := filepath.Join(dir, ManifestFile)

	ok, err := files.Exists(path)
	if err != nil {
		return Manifest{}, errors.Wrap(err, errors.Error{
			Type:    errors.Manifest,
			Message: fmt.Sprintf("could not open %s", path),
		})
	}
	if !ok {
		return Manifest{}, &errors.Error{
			Type:            errors.Manifest,
			Message:         fmt.Sprintf("%s does not exist", path),
			Troubleshooting: fmt.Sprintf("Make sure $CARGO_MANIFEST_DIR (or the manifest directory option) points at the crate root. It is currently `%s`.", dir),
			Link:            manifestDocs,
		}
	}

	var m Manifest
	err = files.ReadTOML(&m, path)
	if err != nil {
		return Manifest{}, errors.Wrap(err, errors.Error{
			Type:            errors.Manifest,
			Message:         fmt.Sprintf("could not parse %s", path),
			Troubleshooting: "Check that the manifest is valid TOML. `cargo metadata` reports the same problem with a precise location.",
			Link:            manifestDocs,
		})
	}

	err = m.validate()
	if err != nil {
		return Manifest{}, errors.Wrap(err, errors.Error{
			Type:            errors.Manifest,
			Message:         fmt.Sprintf("invalid dependency declaration in %s", path),
			Troubleshooting: "Dependencies must be a version string or a table such as { version = \"1.0\", features = [\"std\"] }.",
			Link:            "https://doc.rust-lang.org/cargo/reference/specifying-dependencies.html",
		})
	}

	log.WithFields(log.Fields{
		"path":         path,
		"dependencies": len(m.Dependencies),
		"targets":      len(m.Target),
		"features":     len(m.Features),
	}).Debug("read manifest")
	return m, nil
}

// validate checks that every dependency declaration is well-formed, including
// those of targets that will never be active.
func (m Manifest) validate() error {
	tables := map[string]Table{
		"dependencies":       m.Dependencies,
		"dev-dependencies":   m.DevDependencies,
		"build-dependencies": m.BuildDependencies,
	}
	for name, target := range m.Target {
		prefix := "target." + quoteKey(name) + "."
		tables[prefix+"dependencies"] = target.Dependencies
		tables[prefix+"dev-dependencies"] = target.DevDependencies
		tables[prefix+"build-dependencies"] = target.BuildDependencies
	}

	for _, section := range sortedTables(tables) {
		table := tables[section]
		for _, dep := range table.Names() {
			_, err := table.Dependency(dep)
			if err != nil {
				return fmt.Errorf("[%s] %s: %s", section, dep, err)
			}
		}
	}
	return nil
}

func quoteKey(key string) string {
	if strings.ContainsAny(key, "(). \"=") {
		return "'" + key + "'"
	}
	return key
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedTables(m map[string]Table) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
