// Package scratch manages the temporary directory that receives content
// displaced by an overwriting restore.
//
// An Area is acquired with Create and must be released with Release on every
// exit path, typically via defer. Release removes the directory only when it
// is empty; anything displaced into it stays on disk for the user to recover.
package scratch

import (
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/arthur-debert/dotty/pkg/errors"
	"github.com/arthur-debert/dotty/pkg/events"
	"github.com/arthur-debert/dotty/pkg/types"
	"github.com/rs/zerolog"
)

// DefaultPrefix is the directory name prefix used when none is configured
const DefaultPrefix = "dotty-"

const (
	suffixLength = 7
	maxAttempts  = 16
	alphanumeric = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// Area is one uniquely named scratch directory owned by a single restore
type Area struct {
	fs       types.FS
	path     string
	observer events.Observer
	released bool
	kept     bool
}

// Create allocates a new scratch directory named prefix plus a random
// alphanumeric suffix inside baseDir. An empty baseDir means os.TempDir().
func Create(fs types.FS, baseDir, prefix string, observer events.Observer) (*Area, error) {
	observer = events.OrNop(observer)
	if baseDir == "" {
		baseDir = os.TempDir()
	}

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		dir := filepath.Join(baseDir, prefix+randomSuffix(suffixLength))
		err := fs.Mkdir(dir, 0700)
		if err == nil {
			observer.Observe(events.Event{
				Kind:    events.KindScratchCreated,
				Level:   zerolog.DebugLevel,
				Message: "created scratch directory",
				Path:    dir,
			})
			return &Area{fs: fs, path: dir, observer: observer}, nil
		}
		lastErr = err
		if !os.IsExist(err) {
			break
		}
	}

	return nil, errors.Wrapf(lastErr, errors.ErrScratch, "failed to create temp dir in %s", baseDir)
}

// Path returns the scratch directory
func (a *Area) Path() string {
	return a.path
}

// Entry maps a managed relative path to its location inside the scratch
// directory, keeping the relative structure intact.
func (a *Area) Entry(relative string) string {
	return filepath.Join(a.path, relative)
}

// Kept reports whether Release left the directory in place
func (a *Area) Kept() bool {
	return a.kept
}

// Release removes the scratch directory if it is empty. It is safe to call
// more than once; later calls return the first result.
func (a *Area) Release() (kept bool, err error) {
	if a.released {
		return a.kept, nil
	}
	a.released = true

	entries, err := a.fs.ReadDir(a.path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		a.kept = true
		return true, errors.Wrapf(err, errors.ErrScratch, "failed to get contents of %s", a.path)
	}

	if len(entries) > 0 {
		a.kept = true
		a.observer.Observe(events.Event{
			Kind:    events.KindScratchKept,
			Level:   zerolog.WarnLevel,
			Message: "displaced files were kept in the scratch directory",
			Path:    a.path,
		})
		return true, nil
	}

	if err := a.fs.Remove(a.path); err != nil {
		a.kept = true
		return true, errors.Wrapf(err, errors.ErrScratch, "failed to remove %s", a.path)
	}
	a.observer.Observe(events.Event{
		Kind:    events.KindScratchRemoved,
		Level:   zerolog.DebugLevel,
		Message: "removed empty scratch directory",
		Path:    a.path,
	})
	return false, nil
}

func randomSuffix(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = alphanumeric[rand.IntN(len(alphanumeric))]
	}
	return string(b)
}
