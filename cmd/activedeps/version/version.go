package version

import (
	"fmt"
	"runtime"
)

// Set by linker flags at release time.
var (
	Version = "development"
	Commit  = "unknown"
)

func String() string {
	return fmt.Sprintf("%s (revision %s compiled with %s)", Version, Commit, runtime.Version())
}
