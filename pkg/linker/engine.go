package linker

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/dotty/pkg/errors"
	"github.com/arthur-debert/dotty/pkg/events"
	"github.com/arthur-debert/dotty/pkg/paths"
	"github.com/arthur-debert/dotty/pkg/types"
	"github.com/rs/zerolog"
)

// Engine performs link and restore operations against a filesystem
type Engine struct {
	fs       types.FS
	observer events.Observer
}

// New creates an Engine. A nil observer discards events.
func New(fs types.FS, observer events.Observer) *Engine {
	return &Engine{fs: fs, observer: events.OrNop(observer)}
}

// State inspects path without following a final symlink
func (e *Engine) State(path string) (types.LinkState, error) {
	info, err := e.fs.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return types.LinkState{Kind: types.StateAbsent}, nil
		}
		return types.LinkState{}, errors.Wrapf(err, errors.ErrFileAccess, "unable to get metadata of %s", path)
	}

	if info.Mode()&os.ModeSymlink == 0 {
		return types.LinkState{Kind: types.StateRegular}, nil
	}

	target, err := e.fs.Readlink(path)
	if err != nil {
		return types.LinkState{}, errors.Wrapf(err, errors.ErrFileAccess, "unable to read symlink %s", path)
	}
	return types.LinkState{Kind: types.StateSymlink, Target: target}, nil
}

// ResolvesTo reports whether the symlink at link resolves to the same
// canonical location as target. Dangling links never match.
func (e *Engine) ResolvesTo(link, target string) bool {
	dest, err := e.fs.Readlink(link)
	if err != nil {
		return false
	}
	if !filepath.IsAbs(dest) {
		dest = filepath.Join(filepath.Dir(link), dest)
	}
	if _, err := e.fs.Stat(dest); err != nil {
		return false
	}

	resolved, err := paths.Canonicalize(dest)
	if err != nil {
		return false
	}
	canonicalTarget, err := paths.Canonicalize(target)
	if err != nil {
		return false
	}
	return resolved == canonicalTarget
}

func (e *Engine) emit(kind events.Kind, level zerolog.Level, msg, path, target string, err error) {
	e.observer.Observe(events.Event{
		Kind:    kind,
		Level:   level,
		Message: msg,
		Path:    path,
		Target:  target,
		Err:     err,
	})
}

// ensureParent creates the missing parent directories of path
func (e *Engine) ensureParent(path string) error {
	parent := filepath.Dir(path)
	if _, err := e.fs.Stat(parent); err == nil {
		return nil
	}
	if err := e.fs.MkdirAll(parent, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory %s", parent)
	}
	return nil
}
