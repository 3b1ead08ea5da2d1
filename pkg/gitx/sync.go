package gitx

import (
	"context"

	"github.com/arthur-debert/dotty/pkg/errors"
)

const originRemote = "origin"

// Sync fetches the current branch from origin, merges it and pushes the
// result back. A non-empty url replaces or creates origin first. Sync
// refuses to run with uncommitted changes.
func (r *Repository) Sync(ctx context.Context, url string) error {
	clean, err := r.IsClean(ctx)
	if err != nil {
		return err
	}
	if !clean {
		return errors.Newf(errors.ErrGit, "there are unstaged changes in %s", r.dir).
			WithDetail("dir", r.dir)
	}

	if url != "" {
		if err := r.setOrigin(ctx, url); err != nil {
			return err
		}
	}
	remoteURL, err := r.OriginURL(ctx)
	if err != nil {
		return err
	}

	branch, err := r.Branch(ctx)
	if err != nil {
		return errors.Wrapf(err, errors.ErrGit, "branch name could not be resolved in git repo %s", r.dir)
	}

	if r.remoteHasBranch(ctx, branch) {
		r.git.logger.Debug().Str("branch", branch).Str("remote", remoteURL).Msg("fetching branch")
		if _, err := r.git.run(ctx, r.dir, "fetch", "-q", originRemote, branch); err != nil {
			return err
		}
		r.git.logger.Debug().Msg("merging remote commit")
		if _, err := r.git.run(ctx, r.dir, "merge", "-q", "--no-edit", "-m", "Merge "+remoteURL, "FETCH_HEAD"); err != nil {
			return errors.Wrapf(err, errors.ErrGit, "merge conflicts detected in %s", r.dir)
		}
	}

	r.git.logger.Debug().Str("branch", branch).Msg("pushing branch")
	refspec := "refs/heads/" + branch + ":refs/heads/" + branch
	if _, err := r.git.run(ctx, r.dir, "push", "-q", originRemote, refspec); err != nil {
		return err
	}
	return nil
}

func (r *Repository) setOrigin(ctx context.Context, url string) error {
	current, err := r.git.run(ctx, r.dir, "remote", "get-url", originRemote)
	if err != nil {
		r.git.logger.Trace().Str("url", url).Msg("adding remote origin")
		_, err = r.git.run(ctx, r.dir, "remote", "add", originRemote, url)
		return err
	}
	if current == url {
		r.git.logger.Trace().Msg("remotes match")
		return nil
	}
	r.git.logger.Trace().Str("current", current).Msg("remote does not match; overwriting")
	_, err = r.git.run(ctx, r.dir, "remote", "set-url", originRemote, url)
	return err
}

func (r *Repository) remoteHasBranch(ctx context.Context, branch string) bool {
	out, err := r.git.run(ctx, r.dir, "ls-remote", "--heads", originRemote, branch)
	return err == nil && out != ""
}
