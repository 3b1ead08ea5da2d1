package paths

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/dotty/pkg/errors"
)

// Environment variable names
const (
	// EnvRepository points at the store
	EnvRepository = "DOTTY_REPOSITORY"

	// EnvRoot points at the root managed paths are relative to
	EnvRoot = "DOTTY_ROOT"
)

// DefaultRepository is used when neither a flag nor the environment names a store
const DefaultRepository = "~/.dotty"

// Locations holds the two canonical directories every command works with
type Locations struct {
	// Repository is the store that holds managed content
	Repository string
	// Root is the directory original locations are relative to
	Root string
}

// ResolveLocations canonicalizes the store and root.
// An empty repository falls back to DOTTY_REPOSITORY and then DefaultRepository.
// An empty root falls back to DOTTY_ROOT and then the store's parent directory.
func ResolveLocations(repository, root string) (Locations, error) {
	if repository == "" {
		repository = os.Getenv(EnvRepository)
	}
	if repository == "" {
		repository = DefaultRepository
	}

	repo, err := Canonicalize(repository)
	if err != nil {
		return Locations{}, err
	}

	if root == "" {
		root = os.Getenv(EnvRoot)
	}
	if root == "" {
		parent := filepath.Dir(repo)
		if parent == repo {
			return Locations{}, errors.Newf(errors.ErrResolution, "cannot get parent of repository path %s", repo)
		}
		root = parent
	}

	canonicalRoot, err := Canonicalize(root)
	if err != nil {
		return Locations{}, err
	}

	return Locations{Repository: repo, Root: canonicalRoot}, nil
}

// StorePath maps a managed relative path to its location inside the store
func (l Locations) StorePath(relative string) string {
	return filepath.Join(l.Repository, relative)
}

// OriginalPath maps a managed relative path to its location under the root
func (l Locations) OriginalPath(relative string) string {
	return filepath.Join(l.Root, relative)
}

// CheckManaged rejects a managed relative path that does not name an entry
// strictly below the root, or whose original location is the store or lies
// inside it. Every manifest entry is checked before it is acted on.
func (l Locations) CheckManaged(relative string) error {
	original, store := l.OriginalPath(relative), l.StorePath(relative)
	invalid := func(code errors.ErrorCode, format string, args ...interface{}) error {
		return errors.Newf(code, format, args...).
			WithPaths(original, store).
			WithDetail("relative", relative)
	}

	if filepath.IsAbs(relative) {
		return invalid(errors.ErrNotUnderRoot, "managed path %s must be relative", relative)
	}
	if _, err := RelativeFromRoot(l.Root, original); err != nil {
		return invalid(errors.GetErrorCode(err), "managed path %q does not name an entry below %s", relative, l.Root)
	}
	if _, err := RelativeFromRoot(l.Repository, store); err != nil {
		return invalid(errors.GetErrorCode(err), "managed path %q does not name an entry inside %s", relative, l.Repository)
	}
	if original == l.Repository {
		return invalid(errors.ErrInvalidInput, "managed path %q is the store itself", relative)
	}
	if _, err := RelativeFromRoot(l.Repository, original); err == nil {
		return invalid(errors.ErrInvalidInput, "managed path %q is inside the store", relative)
	}
	return nil
}
