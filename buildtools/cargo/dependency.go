package cargo

import (
	"fmt"

	"github.com/apex/log"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
)

// A DependencyKind is the form a dependency is declared in.
type DependencyKind int

const (
	Simple    DependencyKind = iota // foo = "1.0"
	Inherited                       // foo = { workspace = true }
	Detailed                        // foo = { version = "1.0", features = [...] }
)

func (k DependencyKind) String() string {
	switch k {
	case Simple:
		return "simple"
	case Inherited:
		return "inherited"
	case Detailed:
		return "detailed"
	}
	return ""
}

// Dependency is a single dependency declaration. Version is set for Simple
// declarations; Details for the others.
type Dependency struct {
	Kind    DependencyKind
	Version string
	Details Details
}

// Details are the keys of a dependency table. Absent string keys are empty.
type Details struct {
	Version  string
	Path     string
	Git      string
	Rev      string
	Tag      string
	Branch   string
	Registry string
	Package  string

	Workspace       bool
	Optional        bool
	DefaultFeatures bool
	Features        []string
}

// details is the decoding target for a dependency table. Cargo accepts both
// spellings of default-features.
type details struct {
	Version  string `mapstructure:"version"`
	Path     string `mapstructure:"path"`
	Git      string `mapstructure:"git"`
	Rev      string `mapstructure:"rev"`
	Tag      string `mapstructure:"tag"`
	Branch   string `mapstructure:"branch"`
	Registry string `mapstructure:"registry"`
	Package  string `mapstructure:"package"`

	Workspace             bool     `mapstructure:"workspace"`
	Optional              bool     `mapstructure:"optional"`
	DefaultFeatures       *bool    `mapstructure:"default-features"`
	DefaultFeaturesLegacy *bool    `mapstructure:"default_features"`
	Features              []string `mapstructure:"features"`
}

// ParseDependency converts a raw TOML value from a dependency table into a
// Dependency.
func ParseDependency(name string, raw interface{}) (Dependency, error) {
	switch v := raw.(type) {
	case string:
		return Dependency{Kind: Simple, Version: v}, nil
	case map[string]interface{}:
		d, err := decodeDetails(name, v)
		if err != nil {
			return Dependency{}, err
		}
		if d.Workspace {
			return Dependency{Kind: Inherited, Details: d}, nil
		}
		return Dependency{Kind: Detailed, Details: d}, nil
	}
	return Dependency{}, fmt.Errorf("dependency %q must be a string or a table, got %T", name, raw)
}

func decodeDetails(name string, table map[string]interface{}) (Details, error) {
	var raw details
	var md mapstructure.Metadata
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Metadata: &md,
		Result:   &raw,
	})
	if err != nil {
		return Details{}, err
	}
	err = decoder.Decode(table)
	if err != nil {
		return Details{}, errors.Wrapf(err, "could not decode dependency %q", name)
	}
	if len(md.Unused) > 0 {
		log.WithFields(log.Fields{
			"dependency": name,
			"keys":       md.Unused,
		}).Debug("ignoring dependency keys")
	}

	defaultFeatures := true
	switch {
	case raw.DefaultFeatures != nil:
		defaultFeatures = *raw.DefaultFeatures
	case raw.DefaultFeaturesLegacy != nil:
		defaultFeatures = *raw.DefaultFeaturesLegacy
	}

	return Details{
		Version:         raw.Version,
		Path:            raw.Path,
		Git:             raw.Git,
		Rev:             raw.Rev,
		Tag:             raw.Tag,
		Branch:          raw.Branch,
		Registry:        raw.Registry,
		Package:         raw.Package,
		Workspace:       raw.Workspace,
		Optional:        raw.Optional,
		DefaultFeatures: defaultFeatures,
		Features:        raw.Features,
	}, nil
}
