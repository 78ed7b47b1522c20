package errors_test

import (
	"fmt"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/fossas/activedeps/errors"
)

func init() {
	color.NoColor = true
}

func TestErrorMessage(t *testing.T) {
	cause := errors.New("no such file or directory")
	err := errors.Wrap(cause, errors.Error{
		Type:    errors.Manifest,
		Message: "could not read Cargo.toml",
	})

	assert.Equal(t, "could not read Cargo.toml: no such file or directory", err.Error())
	assert.True(t, errors.Is(err, cause))
}

func TestErrorMessageWithoutText(t *testing.T) {
	err := &errors.Error{Type: errors.Environment}
	assert.Equal(t, "environment error", err.Error())
}

func TestWrapKeepsExistingCause(t *testing.T) {
	original := errors.New("original")
	err := errors.Wrap(errors.New("other"), errors.Error{Cause: original})
	assert.Equal(t, original, err.Cause)
}

func TestReport(t *testing.T) {
	err := &errors.Error{
		Type:            errors.Manifest,
		Message:         "malformed feature directive",
		Troubleshooting: "Check the [features] table.",
		Link:            "https://doc.rust-lang.org/cargo/reference/features.html",
	}

	report := err.Report()
	assert.Contains(t, report, "ERROR: malformed feature directive")
	assert.Contains(t, report, "TROUBLESHOOTING:\nCheck the [features] table.")
	assert.Contains(t, report, "https://doc.rust-lang.org/cargo/reference/features.html")
}

func TestReportWrapped(t *testing.T) {
	inner := &errors.Error{Message: "inner", Troubleshooting: "do the thing"}
	wrapped := fmt.Errorf("outer: %w", inner)
	assert.Contains(t, errors.Report(wrapped), "do the thing")

	plain := errors.Report(errors.New("plain failure"))
	assert.Equal(t, "ERROR: plain failure\n", plain)
}
