package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dotty/pkg/errors"
)

// Canonicalize expands home-directory shorthand and resolves path to an
// absolute, symlink-free form.
//
// Trailing components that do not exist yet are resolved as far as the
// deepest existing ancestor and then re-appended unresolved, so destination
// paths can be canonicalized before they are created.
func Canonicalize(path string) (string, error) {
	expanded, err := ExpandHome(path)
	if err != nil {
		return "", err
	}

	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrResolution, "failed to get the absolute path of %s", path)
	}

	var missing []string
	current := abs
	for {
		if _, statErr := os.Stat(current); statErr == nil {
			resolved, evalErr := filepath.EvalSymlinks(current)
			if evalErr != nil {
				return "", errors.Wrapf(evalErr, errors.ErrResolution, "failed to get the canonical path of %s", current)
			}
			for i := len(missing) - 1; i >= 0; i-- {
				resolved = filepath.Join(resolved, missing[i])
			}
			return resolved, nil
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", errors.Newf(errors.ErrResolution, "failed to get the canonical path of %s - no resolvable ancestor", path)
		}
		missing = append(missing, filepath.Base(current))
		current = parent
	}
}

// RelativeFromRoot returns path relative to root. path must be root plus at
// least one component.
func RelativeFromRoot(root, path string) (string, error) {
	cleanRoot := filepath.Clean(root)
	cleanPath := filepath.Clean(path)

	if cleanPath == cleanRoot {
		return "", errors.Newf(errors.ErrEmptyRelative, "cannot add repository path %s", path).
			WithDetail("root", root)
	}

	prefix := cleanRoot
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	if !strings.HasPrefix(cleanPath, prefix) {
		return "", errors.Newf(errors.ErrNotUnderRoot, "the path %s must be a child of %s", path, root).
			WithDetail("root", root)
	}

	return strings.TrimPrefix(cleanPath, prefix), nil
}

// CommonBasePath returns the longest component-wise prefix shared by all
// paths. An empty input yields "".
func CommonBasePath(paths []string) string {
	if len(paths) == 0 {
		return ""
	}

	common := splitComponents(paths[0])
	for _, p := range paths[1:] {
		parts := splitComponents(p)
		n := 0
		for n < len(common) && n < len(parts) && common[n] == parts[n] {
			n++
		}
		common = common[:n]
	}

	return joinComponents(common)
}

// splitComponents splits a cleaned path. An absolute path starts with the
// separator itself as its first component.
func splitComponents(p string) []string {
	p = filepath.Clean(p)
	sep := string(filepath.Separator)

	var components []string
	if strings.HasPrefix(p, sep) {
		components = append(components, sep)
		p = strings.TrimPrefix(p, sep)
	}
	if p == "" || p == "." {
		return components
	}
	return append(components, strings.Split(p, sep)...)
}

func joinComponents(components []string) string {
	if len(components) == 0 {
		return ""
	}
	return filepath.Join(components...)
}
