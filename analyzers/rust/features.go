package rust

import (
	"fmt"
	"strings"

	"github.com/fossas/activedeps/buildtools/cargo"
	"github.com/fossas/activedeps/env"
	"github.com/fossas/activedeps/errors"
	"github.com/fossas/activedeps/pkg"
)

// activation is what the enabled features of the crate ask of its
// dependencies.
type activation struct {
	// features maps a dependency to the features requested through
	// "dependency/feature" directives.
	features map[string]pkg.Features
	// deps holds optional dependencies enabled through "dep:name" directives.
	deps map[string]bool
}

// featureActivation builds the feature activation map from the features that the
// environment reports as enabled.
func (a *Analyzer) featureActivation(m cargo.Manifest) (activation, error) {
	act := activation{
		features: make(map[string]pkg.Features),
		deps:     make(map[string]bool),
	}

	for _, feature := range m.FeatureNames() {
		if !env.Enabled(a.Env, feature) {
			continue
		}
		a.logger().WithField("feature", feature).Debug("feature is enabled")

		for _, directive := range m.Features[feature] {
			if strings.HasPrefix(directive, "dep:") {
				act.deps[strings.TrimPrefix(directive, "dep:")] = true
				continue
			}
			// Anything else without a separator names another feature of
			// this crate, whose own variable is checked separately.
			if !strings.Contains(directive, "/") {
				continue
			}

			parts := strings.Split(directive, "/")
			if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
				return activation{}, &errors.Error{
					Type:            errors.Manifest,
					Message:         fmt.Sprintf("malformed directive %q in feature %q", directive, feature),
					Troubleshooting: "Dependency features are written as \"dependency/feature\".",
					Link:            "https://doc.rust-lang.org/cargo/reference/features.html#dependency-features",
				}
			}

			dep := strings.TrimSuffix(parts[0], "?")
			if act.features[dep] == nil {
				act.features[dep] = pkg.NewFeatures()
			}
			act.features[dep].Add(parts[1])
		}
	}

	return act, nil
}
