package add

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dotty/pkg/classify"
	"github.com/arthur-debert/dotty/pkg/errors"
	"github.com/arthur-debert/dotty/pkg/events"
	"github.com/arthur-debert/dotty/pkg/filesystem"
	"github.com/arthur-debert/dotty/pkg/gitx"
	"github.com/arthur-debert/dotty/pkg/linker"
	"github.com/arthur-debert/dotty/pkg/manifest"
	"github.com/arthur-debert/dotty/pkg/paths"
	"github.com/arthur-debert/dotty/pkg/types"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Repository is the part of the store repository that add records changes in
type Repository interface {
	UnstageAll(ctx context.Context) error
	AddSubmodule(ctx context.Context, path string) error
	Stage(ctx context.Context, paths ...string) error
	Commit(ctx context.Context, message string) error
}

// AddPathsOptions holds options for the add command
type AddPathsOptions struct {
	Locations    paths.Locations
	Paths        []string
	ManifestFile string

	// Git opens the store repository and probes for nested ones. Defaults
	// to the git found on PATH.
	Git *gitx.Git
	// Repo replaces the repository opened through Git
	Repo Repository
	// Probe replaces Git as the nested repository detector
	Probe types.RepositoryProbe

	FileSystem types.FS // Allow injecting a filesystem for testing
	ManifestFS afero.Fs
	Observer   events.Observer
	Logger     zerolog.Logger
}

// AddPaths moves each path into the store, leaves a symlink behind, records
// the new entries in the manifest and commits them. Directories are expanded
// to their files except for nested repositories, which are added whole as
// submodules. A failing entry is reported and the rest of the batch goes on.
func AddPaths(ctx context.Context, opts AddPathsOptions) (*types.AddResult, error) {
	logger := opts.Logger.With().Str("command", "add").Logger()
	logger.Debug().
		Str("repository", opts.Locations.Repository).
		Str("root", opts.Locations.Root).
		Strs("paths", opts.Paths).
		Msg("Adding paths to the store")

	if len(opts.Paths) == 0 {
		return nil, errors.New(errors.ErrInvalidInput, "no paths to add")
	}

	fs := opts.FileSystem
	if fs == nil {
		fs = filesystem.NewOS()
	}
	manifestFS := opts.ManifestFS
	if manifestFS == nil {
		manifestFS = afero.NewOsFs()
	}
	git := opts.Git
	if git == nil {
		git = gitx.New("", logger)
	}
	observer := events.OrNop(opts.Observer)

	repo := opts.Repo
	if repo == nil {
		opened, err := git.Open(ctx, opts.Locations.Repository)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInvalidInput,
				"%s is not a dotty repository, run dotty init or dotty clone first", opts.Locations.Repository)
		}
		repo = opened
	}

	classifier := classify.New(fs, observer)
	classifier.Probe = opts.Probe
	if classifier.Probe == nil {
		classifier.Probe = git
	}
	leaves, err := classifier.Flatten(opts.Paths)
	if err != nil {
		logAdd(logger, opts, nil, err)
		return nil, err
	}

	m, _, err := manifest.InitOrOpen(manifestFS, opts.Locations.Repository, opts.ManifestFile)
	if err != nil {
		logAdd(logger, opts, nil, err)
		return nil, err
	}

	engine := linker.New(fs, observer)
	result := &types.AddResult{}
	var submodules []string

	for _, leaf := range leaves {
		entry := addLeaf(engine, opts.Locations, leaf)
		result.Entries = append(result.Entries, entry)

		switch {
		case entry.Err != nil:
			logger.Warn().Err(entry.Err).Str("path", leaf.Path).
				Msgf("failed to add %s to repo %s", leaf.Path, opts.Locations.Repository)
		case entry.Outcome == types.OutcomeAlreadyLinked:
			logger.Debug().Str("path", leaf.Path).Msg("already added")
		default:
			result.Committed = append(result.Committed, entry.Relative)
			if leaf.Kind == types.LeafRepoUnit {
				submodules = append(submodules, entry.Relative)
			}
		}
	}

	if len(result.Committed) == 0 {
		logAdd(logger, opts, result, nil)
		return result, nil
	}

	for _, rel := range result.Committed {
		m.Append(rel)
	}
	if err := m.Persist(); err != nil {
		logAdd(logger, opts, result, err)
		return result, err
	}

	if err := record(ctx, repo, m.RepoPath(), result.Committed, submodules); err != nil {
		logAdd(logger, opts, result, err)
		return result, err
	}
	result.CommitMessage = BuildCommitMessage(result.Committed)

	logAdd(logger, opts, result, nil)
	return result, nil
}

// addLeaf commits a single leaf into the store
func addLeaf(engine *linker.Engine, loc paths.Locations, leaf types.LeafEntry) types.AddedEntry {
	entry := types.AddedEntry{Path: leaf.Path, Kind: leaf.Kind}

	if leaf.Path == loc.Repository || strings.HasPrefix(leaf.Path, loc.Repository+string(filepath.Separator)) {
		entry.Err = errors.Newf(errors.ErrInvalidInput, "%s is inside the store", leaf.Path).
			WithPaths(leaf.Path, loc.Repository)
		return entry
	}

	rel, err := paths.RelativeFromRoot(loc.Root, leaf.Path)
	if err != nil {
		entry.Err = err
		return entry
	}
	entry.Relative = rel

	entry.Outcome, entry.Err = engine.CommitIntoStore(leaf.Path, rel, loc.Repository)
	return entry
}

func record(ctx context.Context, repo Repository, manifestPath string, committed, submodules []string) error {
	if err := repo.UnstageAll(ctx); err != nil {
		return err
	}
	for _, sub := range submodules {
		if err := repo.AddSubmodule(ctx, sub); err != nil {
			return err
		}
	}
	toStage := append(append([]string{}, committed...), manifestPath)
	if err := repo.Stage(ctx, toStage...); err != nil {
		return err
	}
	return repo.Commit(ctx, BuildCommitMessage(committed))
}

// BuildCommitMessage describes the committed relative paths
func BuildCommitMessage(committed []string) string {
	switch len(committed) {
	case 0:
		return ""
	case 1:
		return "adding " + committed[0]
	}

	var b strings.Builder
	base := paths.CommonBasePath(committed)
	if base == "" {
		fmt.Fprintf(&b, "adding %d files\n\n", len(committed))
	} else {
		fmt.Fprintf(&b, "adding %d files to %s\n\n", len(committed), base)
	}
	for _, p := range committed {
		fmt.Fprintf(&b, "- %s\n", p)
	}
	return b.String()
}

// logAdd logs the add command execution
func logAdd(logger zerolog.Logger, opts AddPathsOptions, result *types.AddResult, err error) {
	event := logger.Info()
	if err != nil {
		event = logger.Error().Err(err)
	}

	event = event.
		Str("repository", opts.Locations.Repository).
		Strs("paths", opts.Paths)

	if result != nil {
		event = event.
			Int("entries", len(result.Entries)).
			Int("committed", len(result.Committed)).
			Int("failed", len(result.Failed()))
	}

	event.Msg("Add command finished")
}
