// Package rust determines which dependencies of a Rust crate are active for
// the build Cargo is currently running.
//
// It is meant to be called from a build step that Cargo has configured with
// its build script environment: $CARGO_MANIFEST_DIR, $TARGET, one
// $CARGO_FEATURE_<NAME> per enabled feature and one $CARGO_CFG_<KEY> per cfg
// option of the target.
package rust

import (
	"fmt"
	"os"
	"strings"

	"github.com/apex/log"
	"github.com/mitchellh/mapstructure"

	"github.com/fossas/activedeps/buildtools/cargo"
	"github.com/fossas/activedeps/cfg"
	"github.com/fossas/activedeps/env"
	"github.com/fossas/activedeps/errors"
	"github.com/fossas/activedeps/pkg"
)

type Analyzer struct {
	Env     env.Env
	Log     log.Interface
	Options Options
}

type Options struct {
	// ManifestDir overrides $CARGO_MANIFEST_DIR.
	ManifestDir string `mapstructure:"manifest-dir"`
	// Target overrides $TARGET.
	Target string `mapstructure:"target"`
	// SkipUnevaluable treats target predicates that cannot be evaluated as
	// inactive instead of failing.
	SkipUnevaluable bool `mapstructure:"skip-unevaluable"`
}

func New(e env.Env, options map[string]interface{}) (*Analyzer, error) {
	log.WithField("options", options).Debug("constructing analyzer")

	var opts Options
	err := mapstructure.Decode(options, &opts)
	if err != nil {
		return nil, errors.Wrap(err, errors.Error{
			Type:    errors.User,
			Message: "invalid analyzer options",
		})
	}
	log.WithField("options", opts).Debug("parsed analyzer options")

	return &Analyzer{
		Env:     e,
		Log:     log.Log,
		Options: opts,
	}, nil
}

// Enumerate returns the active dependencies of the crate Cargo is building,
// using the process environment. Any failure is fatal: the error is reported
// on STDERR and the process exits.
func Enumerate() pkg.Dependencies {
	a := &Analyzer{Env: env.OS{}, Log: log.Log}
	deps, err := a.Analyze()
	if err != nil {
		fmt.Fprint(os.Stderr, errors.Report(err))
		log.WithError(err).Fatal("could not enumerate active dependencies")
	}
	return deps
}

// Analyze reads the manifest and returns every active dependency.
// Dependencies of active target sections are applied after the unconditional
// ones, in key order, and replace earlier entries of the same name.
func (a *Analyzer) Analyze() (pkg.Dependencies, error) {
	dir, err := a.ManifestDir()
	if err != nil {
		return nil, err
	}
	m, err := cargo.ReadManifest(dir)
	if err != nil {
		return nil, err
	}

	act, err := a.featureActivation(m)
	if err != nil {
		return nil, err
	}

	deps := make(pkg.Dependencies)
	err = a.activate(deps, m.Dependencies, act)
	if err != nil {
		return nil, err
	}

	target, err := a.target()
	if err != nil {
		return nil, err
	}
	for _, name := range m.TargetNames() {
		active, err := a.targetActive(name, target)
		if err != nil {
			return nil, err
		}
		a.logger().WithFields(log.Fields{
			"target": name,
			"active": active,
		}).Debug("evaluated target")
		if !active {
			continue
		}
		err = a.activate(deps, m.Target[name].Dependencies, act)
		if err != nil {
			return nil, err
		}
	}

	return deps, nil
}

// ManifestDir returns the directory holding the crate's Cargo.toml.
func (a *Analyzer) ManifestDir() (string, error) {
	if a.Options.ManifestDir != "" {
		return a.Options.ManifestDir, nil
	}
	return env.Require(a.Env, env.ManifestDir)
}

func (a *Analyzer) target() (string, error) {
	if a.Options.Target != "" {
		return a.Options.Target, nil
	}
	return env.Require(a.Env, env.Target)
}

func (a *Analyzer) targetActive(name, target string) (bool, error) {
	if !strings.HasPrefix(name, "cfg") {
		return name == target, nil
	}

	root, err := cfg.Parse(name)
	if err != nil {
		return false, errors.Wrap(err, errors.Error{
			Type:            errors.Manifest,
			Message:         "malformed target section",
			Troubleshooting: fmt.Sprintf("The key of [target.'%s'] must be a target triple or a cfg(...) predicate.", name),
			Link:            "https://doc.rust-lang.org/cargo/reference/specifying-dependencies.html#platform-specific-dependencies",
		})
	}

	ev := cfg.Evaluator{Env: a.Env, Log: a.logger()}
	active, err := ev.EvalRoot(root)
	if err != nil {
		if a.Options.SkipUnevaluable {
			a.logger().WithError(err).WithField("target", name).Warn("treating target as inactive")
			return false, nil
		}
		return false, errors.Wrap(err, errors.Error{
			Type:            errors.Manifest,
			Message:         fmt.Sprintf("unsupported target predicate %s", name),
			Troubleshooting: "Only any(...), all(...), not(...) and key = \"value\" predicates can be evaluated. Enable the skip-unevaluable option to treat other predicates as inactive.",
		})
	}
	return active, nil
}

func (a *Analyzer) activate(deps pkg.Dependencies, table cargo.Table, act activation) error {
	for _, name := range table.Names() {
		dep, err := table.Dependency(name)
		if err != nil {
			return errors.Wrap(err, errors.Error{
				Type:    errors.Manifest,
				Message: "invalid dependency declaration",
			})
		}

		active, ok := a.resolve(name, dep, act)
		entry := a.logger().WithFields(log.Fields{
			"dependency": name,
			"kind":       dep.Kind,
		})
		if !ok {
			entry.Debug("optional dependency is disabled")
			continue
		}
		entry.WithFields(log.Fields{
			"source":   active.Source,
			"features": active.Features,
		}).Debug("dependency is active")
		deps[name] = active
	}
	return nil
}

// resolve applies a declaration to the feature activation map. It reports
// false for optional dependencies that are not enabled.
func (a *Analyzer) resolve(name string, dep cargo.Dependency, act activation) (pkg.ActiveDependency, bool) {
	requested := act.features[name]

	switch dep.Kind {
	case cargo.Simple:
		return pkg.ActiveDependency{
			Source:          pkg.RegistrySource(dep.Version),
			DefaultFeatures: true,
			Features:        requested.Union(),
		}, true

	case cargo.Inherited:
		if dep.Details.Optional && !a.enabled(name, act) {
			return pkg.ActiveDependency{}, false
		}
		// The source and default-features live in the workspace manifest.
		return pkg.ActiveDependency{
			Source:          pkg.Unknown(),
			DefaultFeatures: false,
			Features:        requested.Union(pkg.NewFeatures(dep.Details.Features...)),
		}, true

	case cargo.Detailed:
		if dep.Details.Optional && !a.enabled(name, act) {
			return pkg.ActiveDependency{}, false
		}
		return pkg.ActiveDependency{
			Source:          source(dep.Details),
			DefaultFeatures: dep.Details.DefaultFeatures,
			Features:        requested.Union(pkg.NewFeatures(dep.Details.Features...)),
		}, true
	}
	return pkg.ActiveDependency{}, false
}

func (a *Analyzer) enabled(name string, act activation) bool {
	return env.Enabled(a.Env, name) || act.deps[name]
}

func (a *Analyzer) logger() log.Interface {
	if a.Log == nil {
		return log.Log
	}
	return a.Log
}

func source(d cargo.Details) pkg.Source {
	switch {
	case d.Version != "":
		return pkg.RegistrySource(d.Version)
	case d.Path != "":
		return pkg.PathSource(d.Path)
	case d.Git != "":
		return pkg.GitSource(d.Git, revision(d))
	}
	return pkg.Unknown()
}

func revision(d cargo.Details) pkg.GitRevision {
	switch {
	case d.Rev != "":
		return pkg.CommitRevision(d.Rev)
	case d.Tag != "":
		return pkg.TagRevision(d.Tag)
	case d.Branch != "":
		return pkg.BranchRevision(d.Branch)
	}
	return pkg.DefaultBranchHead()
}
