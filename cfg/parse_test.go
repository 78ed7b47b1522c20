package cfg_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fossas/activedeps/cfg"
)

func TestParseNameValue(t *testing.T) {
	expr, err := cfg.Parse(`cfg(target_os = "linux")`)
	require.NoError(t, err)

	assert.Equal(t, cfg.List, expr.Kind)
	assert.Equal(t, []string{"cfg"}, expr.Path)
	require.Len(t, expr.Args, 1)
	assert.Equal(t, cfg.Expr{
		Kind:  cfg.NameValue,
		Path:  []string{"target_os"},
		Value: cfg.Literal{Kind: cfg.String, Text: "linux"},
	}, expr.Args[0])
}

func TestParseNested(t *testing.T) {
	expr, err := cfg.Parse(`cfg(all(any(target_arch="x86_64", target_arch = "aarch64"), not(target_os="macos"),))`)
	require.NoError(t, err)
	assert.Equal(t, `cfg(all(any(target_arch = "x86_64", target_arch = "aarch64"), not(target_os = "macos")))`, expr.String())

	all := expr.Args[0]
	assert.Equal(t, cfg.List, all.Kind)
	assert.Len(t, all.Args, 2)
}

func TestParseLiteralsAndWords(t *testing.T) {
	expr, err := cfg.Parse(`cfg(any(unix, target_pointer_width = 64, "bare", true, core::arch))`)
	require.NoError(t, err)

	args := expr.Args[0].Args
	require.Len(t, args, 5)
	assert.Equal(t, cfg.Word, args[0].Kind)
	assert.Equal(t, cfg.NameValue, args[1].Kind)
	assert.Equal(t, cfg.Literal{Kind: cfg.Int, Text: "64"}, args[1].Value)
	assert.Equal(t, cfg.Expr{Kind: cfg.Lit, Value: cfg.Literal{Kind: cfg.String, Text: "bare"}}, args[2])
	assert.Equal(t, cfg.Expr{Kind: cfg.Lit, Value: cfg.Literal{Kind: cfg.Bool, Text: "true"}}, args[3])
	assert.Equal(t, []string{"core", "arch"}, args[4].Path)

	_, ok := args[4].Ident()
	assert.False(t, ok)
}

func TestParseEmptyLists(t *testing.T) {
	expr, err := cfg.Parse(`cfg()`)
	require.NoError(t, err)
	assert.Empty(t, expr.Args)

	expr, err = cfg.Parse(`cfg(any())`)
	require.NoError(t, err)
	assert.Empty(t, expr.Args[0].Args)
}

func TestParseErrors(t *testing.T) {
	testcases := []string{
		``,
		`cfg`,
		`cfg(unix`,
		`cfg(unix))`,
		`cfg(target_os = linux)`,
		`cfg(target_os = )`,
		`cfg(any(,))`,
		`cfg(a b)`,
		`cfg(core:arch)`,
		`cfg(target_os = "linux)`,
		`cfgx(unix)`,
		`x86_64-unknown-linux-gnu`,
	}
	for _, text := range testcases {
		_, err := cfg.Parse(text)
		if assert.Error(t, err, text) {
			_, ok := err.(*cfg.SyntaxError)
			assert.True(t, ok, "expected a *cfg.SyntaxError for %q, got %T", text, err)
		}
	}
}
