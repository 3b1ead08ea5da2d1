package gitx

import (
	"bytes"
	"context"
	stderrors "errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dotty/pkg/errors"
	"github.com/rs/zerolog"
)

// DefaultBinary is the git executable looked up on PATH
const DefaultBinary = "git"

// Git creates and opens repositories
type Git struct {
	binary string
	logger zerolog.Logger
}

// New returns a Git using binary, or DefaultBinary when empty
func New(binary string, logger zerolog.Logger) *Git {
	if binary == "" {
		binary = DefaultBinary
	}
	return &Git{binary: binary, logger: logger}
}

// Repository is a working tree at a fixed directory
type Repository struct {
	git *Git
	dir string
}

// Dir returns the working tree directory
func (r *Repository) Dir() string {
	return r.dir
}

// run executes git with args, inside dir when dir is not empty, and returns
// trimmed stdout. Stderr is folded into the error.
func (g *Git) run(ctx context.Context, dir string, args ...string) (string, error) {
	fullArgs := args
	if dir != "" {
		fullArgs = append([]string{"-C", dir}, args...)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, g.binary, fullArgs...)
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	g.logger.Trace().Str("dir", dir).Strs("args", args).Msg("running git")
	if err := cmd.Run(); err != nil {
		return "", errors.Wrapf(err, errors.ErrGit, "git %s in %s failed: %s",
			strings.Join(args, " "), dir, strings.TrimSpace(stderr.String())).
			WithDetail("dir", dir)
	}
	return strings.TrimSpace(stdout.String()), nil
}

// IsRepository reports whether dir is the top of a git working tree. It does
// not search parent directories.
func (g *Git) IsRepository(dir string) bool {
	if _, err := os.Lstat(filepath.Join(dir, ".git")); err != nil {
		return false
	}
	_, err := g.run(context.Background(), dir, "rev-parse", "--git-dir")
	if err != nil {
		return false
	}
	g.logger.Trace().Str("dir", dir).Msg("is a git repository")
	return true
}

// Open returns the repository at dir, failing when dir is not one
func (g *Git) Open(ctx context.Context, dir string) (*Repository, error) {
	g.logger.Trace().Str("dir", dir).Msg("opening git repository")
	if !g.IsRepository(dir) {
		return nil, errors.Newf(errors.ErrGit, "failed to open git repository %s", dir).
			WithDetail("dir", dir)
	}
	return &Repository{git: g, dir: dir}, nil
}

// InitOrOpen opens the repository at dir, initializing one when needed.
// created reports whether git init ran.
func (g *Git) InitOrOpen(ctx context.Context, dir string) (repo *Repository, created bool, err error) {
	if g.IsRepository(dir) {
		g.logger.Debug().Str("dir", dir).Msg("opening git repository")
		return &Repository{git: g, dir: dir}, false, nil
	}

	g.logger.Debug().Str("dir", dir).Msg("initializing git repository")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, false, errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory %s", dir)
	}
	if _, err := g.run(ctx, dir, "init", "-q"); err != nil {
		return nil, false, err
	}
	return &Repository{git: g, dir: dir}, true, nil
}

// Clone clones url into dir along with all submodules
func (g *Git) Clone(ctx context.Context, url, dir string) (*Repository, error) {
	g.logger.Debug().Str("url", url).Str("dir", dir).Msg("cloning git repository")
	if _, err := g.run(ctx, "", "clone", "-q", "--recurse-submodules", "--", url, dir); err != nil {
		return nil, err
	}
	return &Repository{git: g, dir: dir}, nil
}

// HasCommits reports whether HEAD points at a commit
func (r *Repository) HasCommits(ctx context.Context) bool {
	_, err := r.git.run(ctx, r.dir, "rev-parse", "--verify", "-q", "HEAD")
	return err == nil
}

// UnstageAll resets the index to HEAD, keeping the working tree. A repository
// without commits is left alone.
func (r *Repository) UnstageAll(ctx context.Context) error {
	if !r.HasCommits(ctx) {
		return nil
	}
	r.git.logger.Debug().Str("dir", r.dir).Msg("resetting index to HEAD")
	_, err := r.git.run(ctx, r.dir, "reset", "-q", "--mixed")
	return err
}

// Stage adds paths, relative to the working tree, to the index
func (r *Repository) Stage(ctx context.Context, paths ...string) error {
	if len(paths) == 0 {
		return nil
	}
	r.git.logger.Debug().Str("dir", r.dir).Int("count", len(paths)).Msg("staging paths")
	args := append([]string{"add", "--"}, paths...)
	_, err := r.git.run(ctx, r.dir, args...)
	return err
}

// Commit records the index with message
func (r *Repository) Commit(ctx context.Context, message string) error {
	r.git.logger.Debug().Str("dir", r.dir).Str("message", message).Msg("creating commit")
	_, err := r.git.run(ctx, r.dir, "commit", "-q", "-m", message)
	return err
}

// OriginURL returns the url of the origin remote
func (r *Repository) OriginURL(ctx context.Context) (string, error) {
	url, err := r.git.run(ctx, r.dir, "remote", "get-url", "origin")
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrGit, "remote origin url was not found for %s", r.dir)
	}
	return url, nil
}

// Branch returns the checked out branch name
func (r *Repository) Branch(ctx context.Context) (string, error) {
	return r.git.run(ctx, r.dir, "symbolic-ref", "--short", "HEAD")
}

// IsClean reports whether the working tree has no changes, untracked files
// included
func (r *Repository) IsClean(ctx context.Context) (bool, error) {
	out, err := r.git.run(ctx, r.dir, "status", "--porcelain")
	if err != nil {
		return false, err
	}
	return out == "", nil
}

// HasStagedChanges reports whether the index differs from HEAD
func (r *Repository) HasStagedChanges(ctx context.Context) (bool, error) {
	_, err := r.git.run(ctx, r.dir, "diff", "--cached", "--quiet")
	if err == nil {
		return false, nil
	}
	if exitedWith(err, 1) {
		return true, nil
	}
	return false, err
}

// exitedWith reports whether err comes from git exiting with code
func exitedWith(err error, code int) bool {
	var exitErr *exec.ExitError
	return stderrors.As(err, &exitErr) && exitErr.ExitCode() == code
}
