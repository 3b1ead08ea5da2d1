package initialize

import (
	"context"

	"github.com/arthur-debert/dotty/pkg/gitx"
	"github.com/arthur-debert/dotty/pkg/manifest"
	"github.com/arthur-debert/dotty/pkg/paths"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// InitialCommitMessage is used when init creates the manifest
const InitialCommitMessage = "initializing dotty repository"

// InitOptions defines the options for the init command
type InitOptions struct {
	Locations    paths.Locations
	ManifestFile string
	Git          *gitx.Git
	ManifestFS   afero.Fs
	Logger       zerolog.Logger
}

// InitResult reports what init created
type InitResult struct {
	Repository      string
	CreatedRepo     bool
	CreatedManifest bool
}

// Init creates the store repository and its manifest. Running it on an
// existing store changes nothing.
func Init(ctx context.Context, opts InitOptions) (*InitResult, error) {
	logger := opts.Logger.With().Str("command", "init").Logger()

	git := opts.Git
	if git == nil {
		git = gitx.New("", logger)
	}
	manifestFS := opts.ManifestFS
	if manifestFS == nil {
		manifestFS = afero.NewOsFs()
	}

	store := opts.Locations.Repository
	repo, createdRepo, err := git.InitOrOpen(ctx, store)
	if err != nil {
		return nil, err
	}

	m, createdManifest, err := manifest.InitOrOpen(manifestFS, store, opts.ManifestFile)
	if err != nil {
		return nil, err
	}
	if createdManifest {
		if err := repo.Stage(ctx, m.RepoPath()); err != nil {
			return nil, err
		}
		if err := repo.Commit(ctx, InitialCommitMessage); err != nil {
			return nil, err
		}
	}

	logger.Info().
		Str("repository", store).
		Bool("created_repo", createdRepo).
		Bool("created_manifest", createdManifest).
		Msgf("successfully initialized dotty repository %s", store)

	return &InitResult{
		Repository:      store,
		CreatedRepo:     createdRepo,
		CreatedManifest: createdManifest,
	}, nil
}
