// Package env implements read-only lookups of the variables Cargo exposes to
// build scripts.
package env

import (
	"os"
	"sort"
	"strings"

	"github.com/fossas/activedeps/errors"
)

// Variables set by Cargo for build scripts.
const (
	ManifestDir   = "CARGO_MANIFEST_DIR"
	Target        = "TARGET"
	FeaturePrefix = "CARGO_FEATURE_"
	CfgPrefix     = "CARGO_CFG_"
)

// ErrMissing is returned when a required variable is not set.
var ErrMissing = errors.New("required environment variable is not set")

// An Env looks up environment values by key.
type Env interface {
	Lookup(key string) (string, bool)
}

// OS is the environment of the current process.
type OS struct{}

func (OS) Lookup(key string) (string, bool) {
	return os.LookupEnv(key)
}

// Map is a fixed environment snapshot.
type Map map[string]string

func (m Map) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// Keys returns the keys of m in lexical order.
func (m Map) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Layered consults each Env in order and returns the first value found.
type Layered []Env

func (l Layered) Lookup(key string) (string, bool) {
	for _, e := range l {
		if e == nil {
			continue
		}
		if v, ok := e.Lookup(key); ok {
			return v, true
		}
	}
	return "", false
}

// Require looks up key, returning an error wrapping ErrMissing when it is not
// set.
func Require(e Env, key string) (string, error) {
	v, ok := e.Lookup(key)
	if !ok {
		return "", errors.Wrap(ErrMissing, errors.Error{
			Type:            errors.Environment,
			Message:         "$" + key + " is not set",
			Troubleshooting: "Cargo sets $" + key + " when it runs a build script. If you are running outside of Cargo, set it yourself.",
			Link:            "https://doc.rust-lang.org/cargo/reference/environment-variables.html#environment-variables-cargo-sets-for-build-scripts",
		})
	}
	return v, nil
}

// FeatureKey returns the variable that signals name is an enabled feature.
func FeatureKey(name string) string {
	return FeaturePrefix + normalize(name)
}

// CfgKey returns the variable holding the value of the cfg option name.
func CfgKey(name string) string {
	return CfgPrefix + normalize(name)
}

// Enabled reports whether the feature name is enabled. Only the presence of
// the variable matters.
func Enabled(e Env, name string) bool {
	_, ok := e.Lookup(FeatureKey(name))
	return ok
}

func normalize(name string) string {
	return strings.ToUpper(strings.Replace(name, "-", "_", -1))
}
