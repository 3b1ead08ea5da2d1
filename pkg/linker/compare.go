package linker

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/arthur-debert/dotty/pkg/errors"
)

// SameContent reports whether the tree at original holds exactly what the
// tree at store holds: same names, same file bytes, same link targets.
// Symlinks are compared by target and never followed.
func (e *Engine) SameContent(store, original string) (bool, error) {
	stack := []copyJob{{src: store, dst: original}}

	for len(stack) > 0 {
		job := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		want, err := e.fs.Lstat(job.src)
		if err != nil {
			return false, errors.Wrapf(err, errors.ErrFileAccess, "unable to get metadata of %s", job.src)
		}
		got, err := e.fs.Lstat(job.dst)
		if err != nil {
			if os.IsNotExist(err) {
				return false, nil
			}
			return false, errors.Wrapf(err, errors.ErrFileAccess, "unable to get metadata of %s", job.dst)
		}
		if want.Mode().Type() != got.Mode().Type() {
			return false, nil
		}

		switch {
		case want.Mode()&os.ModeSymlink != 0:
			a, errA := e.fs.Readlink(job.src)
			b, errB := e.fs.Readlink(job.dst)
			if errA != nil || errB != nil || a != b {
				return false, nil
			}

		case want.IsDir():
			wantEntries, err := e.fs.ReadDir(job.src)
			if err != nil {
				return false, errors.Wrapf(err, errors.ErrFileAccess, "failed to read directory %s", job.src)
			}
			gotEntries, err := e.fs.ReadDir(job.dst)
			if err != nil {
				return false, errors.Wrapf(err, errors.ErrFileAccess, "failed to read directory %s", job.dst)
			}
			if len(wantEntries) != len(gotEntries) {
				return false, nil
			}
			for _, entry := range wantEntries {
				stack = append(stack, copyJob{
					src: filepath.Join(job.src, entry.Name()),
					dst: filepath.Join(job.dst, entry.Name()),
				})
			}

		default:
			if want.Size() != got.Size() {
				return false, nil
			}
			a, err := e.fs.ReadFile(job.src)
			if err != nil {
				return false, errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", job.src)
			}
			b, err := e.fs.ReadFile(job.dst)
			if err != nil {
				return false, errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", job.dst)
			}
			if !bytes.Equal(a, b) {
				return false, nil
			}
		}
	}

	return true, nil
}
