package flags

import (
	"fmt"

	"github.com/urfave/cli"
)

func abbr(fullname string) string {
	return fmt.Sprintf("%c, %s", fullname[0], fullname)
}

func WithBuildFlags(f []cli.Flag) []cli.Flag {
	return append(f, Build...)
}

var (
	Build                   = []cli.Flag{ManifestDir, Target, Features, Cfg, SkipUnevaluable}
	ManifestDirFlagName     = "manifest-dir"
	ManifestDir             = cli.StringFlag{Name: abbr(ManifestDirFlagName), Usage: "directory containing Cargo.toml (default: $CARGO_MANIFEST_DIR)"}
	TargetFlagName          = "target"
	Target                  = cli.StringFlag{Name: abbr(TargetFlagName), Usage: "target triple being built for (default: $TARGET)"}
	FeaturesFlagName        = "features"
	Features                = cli.StringFlag{Name: abbr(FeaturesFlagName), Usage: "comma-separated features to treat as enabled, in addition to $CARGO_FEATURE_*"}
	CfgFlagName             = "cfg"
	Cfg                     = cli.StringSliceFlag{Name: CfgFlagName, Usage: "cfg option of the target as key=value, e.g. target_os=linux (repeatable)"}
	SkipUnevaluableFlagName = "skip-unevaluable"
	SkipUnevaluable         = cli.BoolFlag{Name: SkipUnevaluableFlagName, Usage: "treat target predicates that cannot be evaluated as inactive"}
)

func WithOutputFlags(f []cli.Flag) []cli.Flag {
	return append(f, Output...)
}

var (
	Output           = []cli.Flag{JSON, Template, Locked}
	JSONFlagName     = "json"
	JSON             = cli.BoolFlag{Name: abbr(JSONFlagName), Usage: "print results as JSON"}
	TemplateFlagName = "template"
	Template         = cli.StringFlag{Name: TemplateFlagName, Usage: "render results with a Go text/template file"}
	LockedFlagName   = "locked"
	Locked           = cli.BoolFlag{Name: abbr(LockedFlagName), Usage: "include the versions pinned in Cargo.lock"}
)

func WithGlobalFlags(f []cli.Flag) []cli.Flag {
	return append(f, Global...)
}

var (
	Global        = []cli.Flag{Debug}
	DebugFlagName = "debug"
	Debug         = cli.BoolFlag{Name: DebugFlagName, Usage: "print debug information to stderr"}
)
