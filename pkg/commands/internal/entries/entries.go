// Package entries lists the managed paths of a store for restore and status.
package entries

import (
	"path/filepath"
	"sort"

	"github.com/arthur-debert/dotty/pkg/classify"
	"github.com/arthur-debert/dotty/pkg/errors"
	"github.com/arthur-debert/dotty/pkg/events"
	"github.com/arthur-debert/dotty/pkg/manifest"
	"github.com/arthur-debert/dotty/pkg/paths"
	"github.com/arthur-debert/dotty/pkg/types"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"
)

// Options locate the store and its metadata
type Options struct {
	FS           types.FS
	ManifestFS   afero.Fs
	Store        string
	ManifestFile string
	// Ignore patterns exclude store contents when no manifest exists
	Ignore   []string
	Probe    types.RepositoryProbe
	Observer events.Observer
}

// List holds managed relative paths in restore order
type List struct {
	Relatives    []string
	FromManifest bool
}

// Collect returns the manifest entries, deduplicated in first-seen order.
// Without a manifest the store's top-level contents are flattened instead,
// skipping the ignore patterns and the manifest file itself.
func Collect(opts Options) (List, error) {
	if manifest.Exists(opts.ManifestFS, opts.Store, opts.ManifestFile) {
		m, err := manifest.Read(opts.ManifestFS, opts.Store, opts.ManifestFile)
		if err != nil {
			return List{}, err
		}
		return List{Relatives: m.Unique(), FromManifest: true}, nil
	}

	children, err := opts.FS.ReadDir(opts.Store)
	if err != nil {
		return List{}, errors.Wrapf(err, errors.ErrFileAccess, "failed to read directory %s", opts.Store)
	}
	requested := make([]string, 0, len(children))
	for _, child := range children {
		requested = append(requested, filepath.Join(opts.Store, child.Name()))
	}

	manifestFile := opts.ManifestFile
	if manifestFile == "" {
		manifestFile = manifest.DefaultFile
	}
	patterns := append(append([]string{}, opts.Ignore...), "/"+manifestFile)

	classifier := classify.New(opts.FS, opts.Observer).WithIgnore(opts.Store, patterns...)
	if opts.Probe != nil {
		classifier.Probe = opts.Probe
	}
	leaves, err := classifier.Flatten(requested)
	if err != nil {
		return List{}, err
	}

	out := make([]string, 0, len(leaves))
	for _, leaf := range leaves {
		rel, err := paths.RelativeFromRoot(opts.Store, leaf.Path)
		if err != nil {
			return List{}, err
		}
		out = append(out, rel)
	}
	sort.Strings(out)
	return List{Relatives: out}, nil
}

// Filter keeps the paths matched by any of the doublestar patterns. A
// pattern naming a directory also selects everything below it. No patterns
// keeps everything.
func Filter(relatives []string, patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		return relatives, nil
	}
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return nil, errors.Newf(errors.ErrInvalidInput, "invalid pattern %q", p)
		}
	}

	var out []string
	for _, rel := range relatives {
		slashed := filepath.ToSlash(rel)
		for _, p := range patterns {
			if doublestar.MatchUnvalidated(p, slashed) || doublestar.MatchUnvalidated(p+"/**", slashed) {
				out = append(out, rel)
				break
			}
		}
	}
	return out, nil
}
