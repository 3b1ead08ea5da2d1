package sync

import (
	"context"

	"github.com/arthur-debert/dotty/pkg/gitx"
	"github.com/arthur-debert/dotty/pkg/paths"
	"github.com/rs/zerolog"
)

// SyncOptions defines the options for the sync command
type SyncOptions struct {
	Locations paths.Locations
	// URL replaces the origin remote when set
	URL    string
	Git    *gitx.Git
	Logger zerolog.Logger
}

// Sync merges the remote store into the local one and pushes the result
func Sync(ctx context.Context, opts SyncOptions) error {
	logger := opts.Logger.With().Str("command", "sync").Logger()

	git := opts.Git
	if git == nil {
		git = gitx.New("", logger)
	}
	repo, err := git.Open(ctx, opts.Locations.Repository)
	if err != nil {
		return err
	}
	if err := repo.Sync(ctx, opts.URL); err != nil {
		logger.Error().Err(err).Msg("Sync command failed")
		return err
	}

	logger.Info().Str("repository", opts.Locations.Repository).Msg("successfully synced dotty repository")
	return nil
}
