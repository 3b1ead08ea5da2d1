package update

import (
	"context"

	"github.com/arthur-debert/dotty/pkg/gitx"
	"github.com/arthur-debert/dotty/pkg/paths"
	"github.com/rs/zerolog"
)

// CommitMessage is recorded after submodules move
const CommitMessage = "Updated all submodules"

// UpdateOptions defines the options for the update command
type UpdateOptions struct {
	Locations paths.Locations
	Git       *gitx.Git
	Logger    zerolog.Logger
}

// Update moves every submodule in the store to its remote tip and commits the
// result. It returns how many submodules were updated.
func Update(ctx context.Context, opts UpdateOptions) (int, error) {
	logger := opts.Logger.With().Str("command", "update").Logger()

	git := opts.Git
	if git == nil {
		git = gitx.New("", logger)
	}
	repo, err := git.Open(ctx, opts.Locations.Repository)
	if err != nil {
		return 0, err
	}

	if err := repo.UnstageAll(ctx); err != nil {
		return 0, err
	}
	updated, err := repo.UpdateSubmodules(ctx)
	if err != nil {
		return 0, err
	}
	if updated == 0 {
		logger.Warn().Msg("there are no submodules to update")
		return 0, nil
	}

	staged, err := repo.HasStagedChanges(ctx)
	if err != nil {
		return 0, err
	}
	if staged {
		if err := repo.Commit(ctx, CommitMessage); err != nil {
			return 0, err
		}
	}

	logger.Info().Int("updated", updated).Msgf("successfully updated %d submodules", updated)
	return updated, nil
}
