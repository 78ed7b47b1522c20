package cargo

import (
	"github.com/apex/log"
	"github.com/blang/semver"
	"github.com/pkg/errors"

	"github.com/fossas/activedeps/files"
)

// Lockfile is a Cargo.lock.
type Lockfile struct {
	Packages []Package `toml:"package"`
}

// Package is a single locked crate.
type Package struct {
	Name         string
	Version      string
	Source       string
	Dependencies []string
}

// FindLockfile returns the path of the Cargo.lock that applies to the crate in
// manifestDir. Workspace members share the lockfile at the workspace root, so
// parent directories are searched as well.
func FindLockfile(manifestDir string) (string, error) {
	path, err := files.FindUp(manifestDir, LockFile)
	if err == files.ErrDirNotFound {
		return "", errors.Errorf("no %s found in %s or its parents", LockFile, manifestDir)
	}
	return path, err
}

// ReadLockfile reads the Cargo.lock at path.
func ReadLockfile(path string) (Lockfile, error) {
	var lock Lockfile
	err := files.ReadTOML(&lock, path)
	if err != nil {
		return Lockfile{}, errors.Wrapf(err, "could not read lockfile %s", path)
	}
	return lock, nil
}

// Locked returns the locked version of the crate called name. When several
// versions of the crate are locked, the highest is returned.
func (l Lockfile) Locked(name string) (semver.Version, bool) {
	var best semver.Version
	found := false
	for _, p := range l.Packages {
		if p.Name != name {
			continue
		}
		v, err := semver.Parse(p.Version)
		if err != nil {
			log.WithError(err).WithFields(log.Fields{
				"package": p.Name,
				"version": p.Version,
			}).Debug("skipping unparseable locked version")
			continue
		}
		if !found || v.GT(best) {
			best = v
			found = true
		}
	}
	return best, found
}
