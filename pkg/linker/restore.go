package linker

import (
	"os"

	"github.com/arthur-debert/dotty/pkg/errors"
	"github.com/arthur-debert/dotty/pkg/events"
	"github.com/arthur-debert/dotty/pkg/scratch"
	"github.com/arthur-debert/dotty/pkg/types"
	"github.com/rs/zerolog"
)

// Restore puts storePath back at originalPath, as a symlink when asSymlink is
// set and as a recursive copy otherwise.
//
// A nil area means existing content at originalPath is never replaced: a
// regular file or directory yields WOULD_OVERWRITE_FILE, a symlink pointing
// anywhere but storePath yields WOULD_OVERWRITE_LINK. With an area, regular
// content is moved to area.Entry(relative) and stale symlinks are removed
// before the restore proceeds.
func (e *Engine) Restore(storePath, originalPath, relative string, area *scratch.Area, asSymlink bool) error {
	if _, err := e.fs.Stat(storePath); err != nil {
		if os.IsNotExist(err) {
			return errors.Newf(errors.ErrSourceMissing, "%s does not exist in the store", storePath).
				WithPaths(originalPath, storePath)
		}
		return errors.Wrapf(err, errors.ErrFileAccess, "unable to get metadata of %s", storePath).
			WithPaths(originalPath, storePath)
	}

	state, err := e.State(originalPath)
	if err != nil {
		return withPaths(err, originalPath, storePath)
	}

	switch state.Kind {
	case types.StateAbsent:
		// nothing in the way

	case types.StateSymlink:
		if e.ResolvesTo(originalPath, storePath) {
			if asSymlink {
				e.emit(events.KindAlreadyLinked, zerolog.DebugLevel, "already linked", originalPath, storePath, nil)
				return nil
			}
			// a copy was requested: our own link is replaced by the content
		} else if area == nil {
			return errors.Newf(errors.ErrWouldOverwriteLink,
				"%s is a symlink to %s, restoring would overwrite it", originalPath, state.Target).
				WithPaths(originalPath, storePath).
				WithDetail("target", state.Target)
		}

		if err := e.fs.Remove(originalPath); err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess, "failed to remove symlink %s", originalPath).
				WithPaths(originalPath, storePath)
		}
		e.emit(events.KindRemovedLink, zerolog.WarnLevel, "removed existing symlink", originalPath, state.Target, nil)

	case types.StateRegular:
		if area == nil {
			return errors.Newf(errors.ErrWouldOverwriteFile,
				"%s exists, restoring would overwrite it", originalPath).
				WithPaths(originalPath, storePath)
		}
		if err := e.displace(originalPath, area.Entry(relative)); err != nil {
			return withPaths(err, originalPath, storePath)
		}
	}

	return withPaths(e.create(storePath, originalPath, asSymlink), originalPath, storePath)
}

// displace moves existing content out of the way into the scratch area
func (e *Engine) displace(originalPath, dest string) error {
	if err := e.ensureParent(dest); err != nil {
		return err
	}
	if err := e.fs.Rename(originalPath, dest); err != nil {
		return errors.Wrapf(err, errors.ErrMove, "failed to move %s to %s", originalPath, dest)
	}
	e.emit(events.KindDisplaced, zerolog.WarnLevel, "moved existing content to the scratch area", originalPath, dest, nil)
	return nil
}

func (e *Engine) create(storePath, originalPath string, asSymlink bool) error {
	if asSymlink {
		if err := e.link(storePath, originalPath); err != nil {
			return err
		}
		e.emit(events.KindLinked, zerolog.DebugLevel, "linked", originalPath, storePath, nil)
		return nil
	}

	if err := e.ensureParent(originalPath); err != nil {
		return err
	}
	if err := e.copyTree(storePath, originalPath); err != nil {
		// originalPath was empty before the copy started, so only our partial copy is removed
		_ = e.fs.RemoveAll(originalPath)
		return err
	}
	e.emit(events.KindCopied, zerolog.DebugLevel, "copied", originalPath, storePath, nil)
	return nil
}
