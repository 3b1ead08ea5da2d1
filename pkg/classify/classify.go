// Package classify expands requested paths into the flat list of leaf
// entries the link engine works on.
//
// Directories are walked with an explicit worklist rather than recursion, so
// arbitrarily deep trees are fine. A directory that is its own repository is
// emitted as a single LeafRepoUnit and never descended into.
package classify

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/dotty/pkg/errors"
	"github.com/arthur-debert/dotty/pkg/events"
	"github.com/arthur-debert/dotty/pkg/paths"
	"github.com/arthur-debert/dotty/pkg/types"
	"github.com/rs/zerolog"
	ignore "github.com/sabhiram/go-gitignore"
)

// Classifier flattens requested paths into leaf entries
type Classifier struct {
	FS    types.FS
	Probe types.RepositoryProbe

	// Ignore, when set, drops entries whose path relative to IgnoreRoot
	// matches one of its patterns.
	Ignore     *ignore.GitIgnore
	IgnoreRoot string

	Observer events.Observer
}

// New creates a Classifier that detects nested repositories by their .git entry
func New(fs types.FS, observer events.Observer) *Classifier {
	return &Classifier{
		FS:       fs,
		Probe:    DotGitProbe(fs),
		Observer: events.OrNop(observer),
	}
}

// WithIgnore sets gitignore-style patterns evaluated relative to root
func (c *Classifier) WithIgnore(root string, patterns ...string) *Classifier {
	c.IgnoreRoot = root
	c.Ignore = ignore.CompileIgnoreLines(patterns...)
	return c
}

// DotGitProbe reports a directory as a repository when it directly contains a
// .git entry (directory for normal clones, file for worktrees and submodules).
func DotGitProbe(fs types.FS) types.RepositoryProbe {
	return types.ProbeFunc(func(dir string) bool {
		_, err := fs.Lstat(filepath.Join(dir, ".git"))
		return err == nil
	})
}

// Flatten returns the leaf entries for the requested paths.
//
// A requested path that does not exist fails the whole call with
// PATH_NOT_FOUND and no partial result. The order of the returned entries is
// unspecified.
func (c *Classifier) Flatten(requested []string) ([]types.LeafEntry, error) {
	observer := events.OrNop(c.Observer)

	stack := make([]string, 0, len(requested))
	for _, p := range requested {
		canonical, err := canonicalizeLeaf(p)
		if err != nil {
			return nil, err
		}
		if canonical != p {
			observer.Observe(events.Event{
				Kind:    events.KindCanonicalized,
				Level:   zerolog.TraceLevel,
				Message: "canonicalized requested path",
				Path:    p,
				Target:  canonical,
			})
		}
		stack = append(stack, canonical)
	}

	visited := make(map[string]struct{})
	var flattened []types.LeafEntry

	for len(stack) > 0 {
		path := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if _, seen := visited[path]; seen {
			continue
		}
		visited[path] = struct{}{}

		info, err := c.FS.Lstat(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, errors.Newf(errors.ErrPathNotFound, "%s does not exist", path).
					WithDetail("path", path)
			}
			return nil, errors.Wrapf(err, errors.ErrFileAccess, "unable to get metadata of %s", path)
		}

		if c.ignored(path) {
			observer.Observe(events.Event{
				Kind:    events.KindIgnored,
				Level:   zerolog.TraceLevel,
				Message: "skipping ignored path",
				Path:    path,
			})
			continue
		}

		if !info.IsDir() {
			flattened = append(flattened, types.LeafEntry{Path: path, Kind: types.LeafFile})
			observer.Observe(events.Event{
				Kind:    events.KindLeaf,
				Level:   zerolog.TraceLevel,
				Message: "found file",
				Path:    path,
			})
			continue
		}

		if c.Probe != nil && c.Probe.IsRepository(path) {
			flattened = append(flattened, types.LeafEntry{Path: path, Kind: types.LeafRepoUnit})
			observer.Observe(events.Event{
				Kind:    events.KindRepoUnit,
				Level:   zerolog.DebugLevel,
				Message: "found nested repository",
				Path:    path,
			})
			continue
		}

		children, err := c.FS.ReadDir(path)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read directory %s", path)
		}
		for _, child := range children {
			stack = append(stack, filepath.Join(path, child.Name()))
		}
	}

	return flattened, nil
}

func (c *Classifier) ignored(path string) bool {
	if c.Ignore == nil {
		return false
	}
	rel, err := paths.RelativeFromRoot(c.IgnoreRoot, path)
	if err != nil {
		return false
	}
	return c.Ignore.MatchesPath(filepath.ToSlash(rel))
}

// canonicalizeLeaf canonicalizes the parent of p and keeps its final name.
// A requested path that is itself a symlink is classified as the link, not
// as whatever it points at, which is what lets re-adding a managed file be
// detected as already linked.
func canonicalizeLeaf(p string) (string, error) {
	expanded, err := paths.ExpandHome(p)
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrResolution, "failed to get the absolute path of %s", p)
	}

	parent, name := filepath.Dir(abs), filepath.Base(abs)
	if parent == abs {
		return abs, nil
	}
	canonicalParent, err := paths.Canonicalize(parent)
	if err != nil {
		return "", err
	}
	return filepath.Join(canonicalParent, name), nil
}
