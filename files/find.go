package files

import (
	"errors"
	"path/filepath"
)

var (
	ErrDirNotFound = errors.New("no directory found during walk")
	ErrStopWalk    = errors.New("WalkUp: stop")
)

// A WalkUpFunc takes a directory and returns an error.
type WalkUpFunc func(dir string) error

// WalkUp calls walker with startdir and then each of its ancestors, up to and
// including the filesystem root.
//
// Returning ErrStopWalk from walker stops the walk, and WalkUp returns the
// directory it stopped at. Any other error stops the walk and is returned.
// If the walk reaches the root without stopping, WalkUp returns
// ErrDirNotFound.
func WalkUp(startdir string, walker WalkUpFunc) (string, error) {
	dir, err := filepath.Abs(startdir)
	if err != nil {
		return "", err
	}

	for {
		err := walker(dir)
		if err == ErrStopWalk {
			return dir, nil
		}
		if err != nil {
			return "", err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrDirNotFound
		}
		dir = parent
	}
}

// FindUp returns the path of the nearest regular file called name in startdir
// or one of its ancestors.
func FindUp(startdir, name string) (string, error) {
	dir, err := WalkUp(startdir, func(dir string) error {
		ok, err := Exists(dir, name)
		if err != nil {
			return err
		}
		if ok {
			return ErrStopWalk
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}
