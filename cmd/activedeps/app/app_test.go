package app_test

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fossas/activedeps/cmd/activedeps/app"
	"github.com/fossas/activedeps/env"
	"github.com/fossas/activedeps/errors"
)

var crate = filepath.Join("testdata", "crate")

func run(t *testing.T, args ...string) (string, error) {
	a := app.New()
	var buf bytes.Buffer
	a.Writer = &buf
	a.ErrWriter = &buf
	err := a.Run(append([]string{"activedeps", "--manifest-dir", crate, "--target", "x86_64-unknown-linux-gnu"}, args...))
	return buf.String(), err
}

func lines(out string) map[string][]string {
	rows := make(map[string][]string)
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		rows[fields[0]] = fields[1:]
	}
	return rows
}

func TestText(t *testing.T) {
	out, err := run(t, "--cfg", "target_os=linux")
	require.NoError(t, err)

	rows := lines(out)
	assert.Len(t, rows, 3)
	assert.Equal(t, []string{"registry:0.14", "default-features=false", "features={}"}, rows["hyper"])
	assert.Equal(t, []string{"registry:0.2", "default-features=true", "features={}"}, rows["libc"])
	assert.Equal(t, []string{"registry:0.4", "default-features=true", "features={}"}, rows["log"])
}

func TestFeaturesFlag(t *testing.T) {
	out, err := run(t, "--features", "tls", "--cfg", "target_os=linux")
	require.NoError(t, err)

	rows := lines(out)
	assert.Len(t, rows, 4)
	assert.Equal(t, []string{"registry:0.14", "default-features=false", "features={tls}"}, rows["hyper"])
	assert.Equal(t, []string{"registry:0.20", "default-features=true", "features={}"}, rows["rustls"])
}

func TestInactiveTarget(t *testing.T) {
	out, err := run(t, "--cfg", "target_os=macos")
	require.NoError(t, err)

	rows := lines(out)
	assert.Len(t, rows, 2)
	assert.NotContains(t, rows, "libc")
	assert.NotContains(t, rows, "winapi")
}

func TestLocked(t *testing.T) {
	out, err := run(t, "--locked", "--cfg", "target_os=linux")
	require.NoError(t, err)

	rows := lines(out)
	assert.Equal(t, "locked=0.14.18", rows["hyper"][3])
	assert.Equal(t, "locked=0.2.121", rows["libc"][3])
	assert.Equal(t, "locked=0.4.16", rows["log"][3])
}

func TestJSON(t *testing.T) {
	out, err := run(t, "--json", "--locked", "--features", "tls", "--cfg", "target_os=linux")
	require.NoError(t, err)

	var results []struct {
		Name            string
		DefaultFeatures bool
		Features        []string
		Locked          string
		Source          struct {
			Version string
		}
	}
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 4)

	assert.Equal(t, "hyper", results[0].Name)
	assert.False(t, results[0].DefaultFeatures)
	assert.Equal(t, []string{"tls"}, results[0].Features)
	assert.Equal(t, "0.14", results[0].Source.Version)
	assert.Equal(t, "0.14.18", results[0].Locked)

	assert.Equal(t, "rustls", results[3].Name)
	assert.Equal(t, "0.20.4", results[3].Locked)
}

func TestTemplate(t *testing.T) {
	out, err := run(t, "--template", filepath.Join("testdata", "names.tmpl"), "--cfg", "target_os=linux")
	require.NoError(t, err)
	assert.Equal(t, "hyper registry:0.14\nlibc registry:0.2\nlog registry:0.4\n\n", out)
}

func TestInvalidCfg(t *testing.T) {
	_, err := run(t, "--cfg", "target_os")
	require.Error(t, err)

	var e *errors.Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, errors.User, e.Type)
}

func TestEnv(t *testing.T) {
	e, err := app.Env("tls, serde-json,", []string{"target_os=linux", `target_family = "unix"`})
	require.NoError(t, err)

	assert.Equal(t, env.Map{
		"CARGO_FEATURE_TLS":        "1",
		"CARGO_FEATURE_SERDE_JSON": "1",
		"CARGO_CFG_TARGET_OS":      "linux",
		"CARGO_CFG_TARGET_FAMILY":  "unix",
	}, e)
}

func TestOptions(t *testing.T) {
	options, err := app.Options("", "", true)
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"skip-unevaluable": true}, options)

	options, err = app.Options(crate, "wasm32-unknown-unknown", false)
	require.NoError(t, err)
	assert.Equal(t, crate, options["manifest-dir"])
	assert.Equal(t, "wasm32-unknown-unknown", options["target"])
}
