// Package app implements the activedeps command, which prints the
// dependencies of a crate that are active for a build. It evaluates the same
// environment a build script sees, so it can be run by hand with flags that
// stand in for the variables Cargo would set.
package app

import (
	"fmt"
	"strings"

	"github.com/apex/log"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/urfave/cli"

	"github.com/fossas/activedeps/analyzers/rust"
	"github.com/fossas/activedeps/buildtools/cargo"
	"github.com/fossas/activedeps/cmd/activedeps/flags"
	"github.com/fossas/activedeps/cmd/activedeps/version"
	"github.com/fossas/activedeps/env"
	"github.com/fossas/activedeps/errors"
	activelog "github.com/fossas/activedeps/log"
)

func New() *cli.App {
	return &cli.App{
		Name:    "activedeps",
		Usage:   "List the dependencies of a Rust crate that are active for a build",
		Version: version.String(),
		Action:  Run,
		Flags:   flags.WithGlobalFlags(flags.WithOutputFlags(flags.WithBuildFlags(nil))),
	}
}

func Run(ctx *cli.Context) error {
	activelog.Init(ctx.Bool(flags.DebugFlagName))

	overrides, err := Env(ctx.String(flags.FeaturesFlagName), ctx.StringSlice(flags.CfgFlagName))
	if err != nil {
		return err
	}
	options, err := Options(ctx.String(flags.ManifestDirFlagName), ctx.String(flags.TargetFlagName), ctx.Bool(flags.SkipUnevaluableFlagName))
	if err != nil {
		return err
	}

	a, err := rust.New(env.Layered{overrides, env.OS{}}, options)
	if err != nil {
		return err
	}
	deps, err := a.Analyze()
	if err != nil {
		return err
	}

	var lock *cargo.Lockfile
	if ctx.Bool(flags.LockedFlagName) {
		dir, err := a.ManifestDir()
		if err != nil {
			return err
		}
		lock, err = readLockfile(dir)
		if err != nil {
			return err
		}
	}

	results := Results(deps, lock)
	switch {
	case ctx.Bool(flags.JSONFlagName):
		return PrintJSON(ctx.App.Writer, results)
	case ctx.String(flags.TemplateFlagName) != "":
		return PrintTemplate(ctx.App.Writer, ctx.String(flags.TemplateFlagName), results)
	}
	return PrintText(ctx.App.Writer, results)
}

// Env builds the Cargo variables that the --features and --cfg flags stand in
// for.
func Env(features string, cfgs []string) (env.Map, error) {
	e := env.Map{}
	for _, feature := range strings.Split(features, ",") {
		feature = strings.TrimSpace(feature)
		if feature == "" {
			continue
		}
		e[env.FeatureKey(feature)] = "1"
	}

	for _, option := range cfgs {
		parts := strings.SplitN(option, "=", 2)
		key := strings.TrimSpace(parts[0])
		if len(parts) != 2 || key == "" {
			return nil, &errors.Error{
				Type:            errors.User,
				Message:         fmt.Sprintf("invalid --cfg value %q", option),
				Troubleshooting: "Pass cfg options as key=value, for example `--cfg target_os=linux`.",
			}
		}
		e[env.CfgKey(key)] = strings.Trim(strings.TrimSpace(parts[1]), `"`)
	}

	log.WithField("env", e).Debug("simulated build environment")
	return e, nil
}

// Options converts flag values into analyzer options.
func Options(manifestDir, target string, skipUnevaluable bool) (map[string]interface{}, error) {
	options := map[string]interface{}{
		"skip-unevaluable": skipUnevaluable,
	}
	if manifestDir != "" {
		dir, err := homedir.Expand(manifestDir)
		if err != nil {
			return nil, errors.Wrap(err, errors.Error{
				Type:    errors.User,
				Message: fmt.Sprintf("could not expand --%s %s", flags.ManifestDirFlagName, manifestDir),
			})
		}
		options["manifest-dir"] = dir
	}
	if target != "" {
		options["target"] = target
	}
	return options, nil
}

func readLockfile(manifestDir string) (*cargo.Lockfile, error) {
	path, err := cargo.FindLockfile(manifestDir)
	if err != nil {
		return nil, errors.Wrap(err, errors.Error{
			Type:            errors.User,
			Message:         "--locked requires a Cargo.lock",
			Troubleshooting: "Run `cargo generate-lockfile` in the crate or workspace root.",
		})
	}
	lock, err := cargo.ReadLockfile(path)
	if err != nil {
		return nil, err
	}
	return &lock, nil
}
