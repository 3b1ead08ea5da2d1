package linker

import (
	"io"
	"os"
	"path/filepath"

	"github.com/arthur-debert/dotty/pkg/errors"
)

type copyJob struct {
	src string
	dst string
}

// copyTree copies src to dst byte for byte. Directories are walked with an
// explicit stack so depth is bounded only by the filesystem. Symlinks inside
// the tree are recreated, not followed. dst must not exist.
func (e *Engine) copyTree(src, dst string) error {
	stack := []copyJob{{src: src, dst: dst}}

	for len(stack) > 0 {
		job := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		info, err := e.fs.Lstat(job.src)
		if err != nil {
			return errors.Wrapf(err, errors.ErrCopy, "unable to get metadata of %s", job.src)
		}

		switch {
		case info.Mode()&os.ModeSymlink != 0:
			target, err := e.fs.Readlink(job.src)
			if err != nil {
				return errors.Wrapf(err, errors.ErrCopy, "unable to read symlink %s", job.src)
			}
			if err := e.fs.Symlink(target, job.dst); err != nil {
				return errors.Wrapf(err, errors.ErrCopy, "failed to create symlink %s", job.dst)
			}

		case info.IsDir():
			if err := e.fs.Mkdir(job.dst, info.Mode().Perm()|0700); err != nil {
				return errors.Wrapf(err, errors.ErrCopy, "failed to create directory %s", job.dst)
			}
			entries, err := e.fs.ReadDir(job.src)
			if err != nil {
				return errors.Wrapf(err, errors.ErrCopy, "failed to read directory %s", job.src)
			}
			for _, entry := range entries {
				stack = append(stack, copyJob{
					src: filepath.Join(job.src, entry.Name()),
					dst: filepath.Join(job.dst, entry.Name()),
				})
			}

		default:
			if err := e.copyFile(job.src, job.dst, info.Mode().Perm()); err != nil {
				return err
			}
		}
	}

	return nil
}

func (e *Engine) copyFile(src, dst string, perm os.FileMode) error {
	in, err := e.fs.Open(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrCopy, "failed to open %s", src)
	}
	defer func() { _ = in.Close() }()

	out, err := e.fs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return errors.Wrapf(err, errors.ErrCopy, "failed to create %s", dst)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return errors.Wrapf(err, errors.ErrCopy, "failed to copy %s to %s", src, dst)
	}
	if err := out.Sync(); err != nil {
		_ = out.Close()
		return errors.Wrapf(err, errors.ErrCopy, "failed to sync %s", dst)
	}
	if err := out.Close(); err != nil {
		return errors.Wrapf(err, errors.ErrCopy, "failed to close %s", dst)
	}
	return nil
}
