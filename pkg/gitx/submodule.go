package gitx

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dotty/pkg/errors"
)

// AddSubmodule registers the repository already present at path, relative to
// the working tree, as a submodule whose remote is its own origin.
func (r *Repository) AddSubmodule(ctx context.Context, path string) error {
	nested := &Repository{git: r.git, dir: filepath.Join(r.dir, path)}
	url, err := nested.OriginURL(ctx)
	if err != nil {
		return err
	}

	r.git.logger.Debug().Str("path", path).Str("url", url).Msg("adding submodule")
	if _, err := r.git.run(ctx, r.dir, "submodule", "add", "-q", "--", url, path); err != nil {
		return errors.Wrapf(err, errors.ErrGit, "failed to add git submodule %s with url %s", path, url)
	}
	return nil
}

// Submodules lists submodule paths declared in .gitmodules
func (r *Repository) Submodules(ctx context.Context) ([]string, error) {
	out, err := r.git.run(ctx, r.dir, "config", "--file", ".gitmodules", "--get-regexp", `^submodule\..*\.path$`)
	if err != nil {
		// git config exits 1 when nothing matches or the file is absent
		if exitedWith(err, 1) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, errors.ErrGit, "failed to read submodules of %s", r.dir)
	}

	var paths []string
	for _, line := range strings.Split(out, "\n") {
		fields := strings.SplitN(strings.TrimSpace(line), " ", 2)
		if len(fields) == 2 {
			paths = append(paths, fields[1])
		}
	}
	return paths, nil
}

// UpdateSubmodules moves every submodule to the tip of its remote default
// branch and stages the new commits. It returns how many were updated.
func (r *Repository) UpdateSubmodules(ctx context.Context) (int, error) {
	paths, err := r.Submodules(ctx)
	if err != nil || len(paths) == 0 {
		return 0, err
	}

	r.git.logger.Debug().Int("count", len(paths)).Msg("updating submodules")
	if _, err := r.git.run(ctx, r.dir, "submodule", "update", "-q", "--init", "--recursive", "--remote"); err != nil {
		return 0, errors.Wrapf(err, errors.ErrGit, "failed to update submodules in git repository %s", r.dir)
	}
	if err := r.Stage(ctx, paths...); err != nil {
		return 0, err
	}
	return len(paths), nil
}
