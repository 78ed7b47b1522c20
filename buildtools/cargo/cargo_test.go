package cargo_test

import (
	"path/filepath"
	"testing"

	"github.com/blang/semver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fossas/activedeps/buildtools/cargo"
	"github.com/fossas/activedeps/errors"
)

func TestReadManifest(t *testing.T) {
	m, err := cargo.ReadManifest(filepath.Join("testdata", "full"))
	require.NoError(t, err)

	assert.Equal(t, "example", m.Package.Name)
	assert.Equal(t, "example", m.Package.Links)
	assert.Equal(t, []string{"default", "extra", "std", "tls"}, m.FeatureNames())
	assert.Equal(t, []string{"foo/ext1", "foo/ext2"}, m.Features["extra"])
	assert.Equal(t, []string{"foo", "gitdep", "legacy", "local", "reqwest", "rustls", "serde", "shared"}, m.Dependencies.Names())
	assert.Equal(t, []string{"cc"}, m.BuildDependencies.Names())
	assert.Equal(t, []string{"pretty_assertions"}, m.DevDependencies.Names())
	assert.Equal(t, []string{`cfg(target_os = "windows")`, "x86_64-unknown-linux-gnu"}, m.TargetNames())
	assert.Equal(t, []string{"winapi"}, m.Target[`cfg(target_os = "windows")`].Dependencies.Names())
}

func TestDependencyForms(t *testing.T) {
	m, err := cargo.ReadManifest(filepath.Join("testdata", "full"))
	require.NoError(t, err)

	foo, err := m.Dependencies.Dependency("foo")
	assert.NoError(t, err)
	assert.Equal(t, cargo.Dependency{Kind: cargo.Simple, Version: "1.0"}, foo)

	serde, err := m.Dependencies.Dependency("serde")
	assert.NoError(t, err)
	assert.Equal(t, cargo.Detailed, serde.Kind)
	assert.Equal(t, "1.0.130", serde.Details.Version)
	assert.False(t, serde.Details.DefaultFeatures)
	assert.Equal(t, []string{"derive"}, serde.Details.Features)

	legacy, err := m.Dependencies.Dependency("legacy")
	assert.NoError(t, err)
	assert.False(t, legacy.Details.DefaultFeatures)

	local, err := m.Dependencies.Dependency("local")
	assert.NoError(t, err)
	assert.Equal(t, "../local", local.Details.Path)
	assert.True(t, local.Details.DefaultFeatures)
	assert.False(t, local.Details.Optional)

	shared, err := m.Dependencies.Dependency("shared")
	assert.NoError(t, err)
	assert.Equal(t, cargo.Inherited, shared.Kind)
	assert.True(t, shared.Details.Optional)
	assert.Equal(t, []string{"extra"}, shared.Details.Features)

	gitdep, err := m.Dependencies.Dependency("gitdep")
	assert.NoError(t, err)
	assert.Equal(t, "https://github.com/example/gitdep", gitdep.Details.Git)
	assert.Equal(t, "next", gitdep.Details.Branch)
	assert.Equal(t, "v1.2.3", gitdep.Details.Tag)
	assert.Empty(t, gitdep.Details.Rev)

	_, err = m.Dependencies.Dependency("missing")
	assert.Error(t, err)
}

func TestParseDependencyErrors(t *testing.T) {
	_, err := cargo.ParseDependency("foo", int64(1))
	assert.Error(t, err)

	_, err = cargo.ParseDependency("foo", map[string]interface{}{"version": int64(1)})
	assert.Error(t, err)

	_, err = cargo.ParseDependency("foo", map[string]interface{}{"features": "std"})
	assert.Error(t, err)
}

func TestParseDependencyDefaultFeaturesPrecedence(t *testing.T) {
	dep, err := cargo.ParseDependency("foo", map[string]interface{}{
		"version":          "1",
		"default-features": true,
		"default_features": false,
	})
	assert.NoError(t, err)
	assert.True(t, dep.Details.DefaultFeatures)
}

func TestReadManifestErrors(t *testing.T) {
	testcases := []string{"missing", "badtoml", "baddep", "badtarget"}
	for _, dir := range testcases {
		_, err := cargo.ReadManifest(filepath.Join("testdata", dir))
		if assert.Error(t, err, dir) {
			var e *errors.Error
			if assert.True(t, errors.As(err, &e), dir) {
				assert.Equal(t, errors.Manifest, e.Type, dir)
			}
		}
	}
}

func TestReadManifestNamesBadSection(t *testing.T) {
	_, err := cargo.ReadManifest(filepath.Join("testdata", "badtarget"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), `[target.'cfg(unix)'.dependencies] bar`)
}

func TestDependencyKindToString(t *testing.T) {
	assert.Equal(t, "simple", cargo.Simple.String())
	assert.Equal(t, "inherited", cargo.Inherited.String())
	assert.Equal(t, "detailed", cargo.Detailed.String())
	assert.Equal(t, "", cargo.DependencyKind(9).String())
}

func TestLockfile(t *testing.T) {
	path, err := cargo.FindLockfile(filepath.Join("testdata", "workspace", "member"))
	require.NoError(t, err)

	expected, err := filepath.Abs(filepath.Join("testdata", "workspace", "Cargo.lock"))
	require.NoError(t, err)
	assert.Equal(t, expected, path)

	lock, err := cargo.ReadLockfile(path)
	require.NoError(t, err)
	assert.Len(t, lock.Packages, 4)

	v, ok := lock.Locked("serde")
	assert.True(t, ok)
	assert.Equal(t, semver.MustParse("1.0.130"), v)

	v, ok = lock.Locked("member")
	assert.True(t, ok)
	assert.Equal(t, "0.1.0", v.String())

	_, ok = lock.Locked("weird")
	assert.False(t, ok)

	_, ok = lock.Locked("absent")
	assert.False(t, ok)
}

func TestWorkspaceMemberManifest(t *testing.T) {
	m, err := cargo.ReadManifest(filepath.Join("testdata", "workspace", "member"))
	require.NoError(t, err)

	serde, err := m.Dependencies.Dependency("serde")
	assert.NoError(t, err)
	assert.Equal(t, cargo.Inherited, serde.Kind)
}

func TestMissingLockfile(t *testing.T) {
	_, err := cargo.FindLockfile(filepath.Join("testdata", "nolock"))
	assert.Error(t, err)

	_, err = cargo.ReadLockfile(filepath.Join("testdata", "nolock", "Cargo.lock"))
	assert.Error(t, err)
}
