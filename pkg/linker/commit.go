package linker

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/dotty/pkg/errors"
	"github.com/arthur-debert/dotty/pkg/events"
	"github.com/arthur-debert/dotty/pkg/types"
	"github.com/rs/zerolog"
)

// CommitIntoStore moves original to storeRoot/relative and replaces it with
// a symlink to the new location.
//
// If the store target already exists and original already links to it, the
// call is a no-op returning OutcomeAlreadyLinked. Any other existing store
// target is a CONFLICT and nothing is touched.
func (e *Engine) CommitIntoStore(original, relative, storeRoot string) (types.Outcome, error) {
	storeTarget := filepath.Join(storeRoot, relative)

	if _, err := e.fs.Lstat(storeTarget); err == nil {
		if e.ResolvesTo(original, storeTarget) {
			e.emit(events.KindAlreadyLinked, zerolog.DebugLevel, "already linked into the store", original, storeTarget, nil)
			return types.OutcomeAlreadyLinked, nil
		}
		return 0, errors.Newf(errors.ErrConflict, "%s already exists", storeTarget).
			WithPaths(original, storeTarget)
	} else if !os.IsNotExist(err) {
		return 0, errors.Wrapf(err, errors.ErrFileAccess, "unable to get metadata of %s", storeTarget).
			WithPaths(original, storeTarget)
	}

	if _, err := e.fs.Lstat(original); err != nil {
		if os.IsNotExist(err) {
			return 0, errors.Newf(errors.ErrPathNotFound, "%s does not exist", original).
				WithPaths(original, storeTarget)
		}
		return 0, errors.Wrapf(err, errors.ErrFileAccess, "unable to get metadata of %s", original).
			WithPaths(original, storeTarget)
	}

	if err := e.ensureParent(storeTarget); err != nil {
		return 0, withPaths(err, original, storeTarget)
	}

	e.emit(events.KindMoved, zerolog.TraceLevel, "moving into the store", original, storeTarget, nil)
	if err := e.fs.Rename(original, storeTarget); err != nil {
		return 0, errors.Wrapf(err, errors.ErrMove, "failed to move %s to %s", original, storeTarget).
			WithPaths(original, storeTarget)
	}

	if err := e.link(storeTarget, original); err != nil {
		e.emit(events.KindPartiallyApplied, zerolog.ErrorLevel,
			"moved into the store but could not create the symlink; create it by hand or move the content back",
			original, storeTarget, err)
		return 0, errors.Wrapf(err, errors.ErrPartiallyApplied,
			"%s was moved to %s but the symlink could not be created", original, storeTarget).
			WithPaths(original, storeTarget)
	}

	e.emit(events.KindMoved, zerolog.DebugLevel, "moved into the store and replaced with a symlink", original, storeTarget, nil)
	return types.OutcomeMoved, nil
}

// link creates a symlink at linkPath pointing to target, creating parents
func (e *Engine) link(target, linkPath string) error {
	if err := e.ensureParent(linkPath); err != nil {
		return err
	}
	if err := e.fs.Symlink(target, linkPath); err != nil {
		return errors.Wrapf(err, errors.ErrSymlinkCreate, "failed to create symlink %s to %s", linkPath, target)
	}
	return nil
}

func withPaths(err error, original, store string) error {
	if dottyErr, ok := err.(*errors.DottyError); ok {
		return dottyErr.WithPaths(original, store)
	}
	return err
}
