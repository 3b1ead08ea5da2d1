package clone

import (
	"context"

	"github.com/arthur-debert/dotty/pkg/errors"
	"github.com/arthur-debert/dotty/pkg/gitx"
	"github.com/arthur-debert/dotty/pkg/manifest"
	"github.com/arthur-debert/dotty/pkg/paths"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// CloneOptions defines the options for the clone command
type CloneOptions struct {
	Locations    paths.Locations
	URL          string
	ManifestFile string
	Git          *gitx.Git
	ManifestFS   afero.Fs
	Logger       zerolog.Logger
}

// CloneResult reports the cloned store
type CloneResult struct {
	Repository  string
	URL         string
	HasManifest bool
}

// Clone fetches an existing store, submodules included. A store without a
// manifest is accepted with a warning; restore then derives its entries from
// the store contents.
func Clone(ctx context.Context, opts CloneOptions) (*CloneResult, error) {
	logger := opts.Logger.With().Str("command", "clone").Logger()

	if opts.URL == "" {
		return nil, errors.New(errors.ErrInvalidInput, "a repository url is required")
	}
	git := opts.Git
	if git == nil {
		git = gitx.New("", logger)
	}
	manifestFS := opts.ManifestFS
	if manifestFS == nil {
		manifestFS = afero.NewOsFs()
	}

	store := opts.Locations.Repository
	if _, err := git.Clone(ctx, opts.URL, store); err != nil {
		return nil, err
	}

	result := &CloneResult{
		Repository:  store,
		URL:         opts.URL,
		HasManifest: manifest.Exists(manifestFS, store, opts.ManifestFile),
	}
	if !result.HasManifest {
		logger.Warn().Str("repository", store).Msg("cloned repository has no manifest; restore will use its contents")
	}

	logger.Info().Str("repository", store).Str("url", opts.URL).
		Msgf("successfully cloned dotty repository %s from %s", store, opts.URL)
	return result, nil
}
