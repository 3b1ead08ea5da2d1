package restore

import (
	"github.com/arthur-debert/dotty/pkg/classify"
	"github.com/arthur-debert/dotty/pkg/commands/internal/entries"
	"github.com/arthur-debert/dotty/pkg/events"
	"github.com/arthur-debert/dotty/pkg/filesystem"
	"github.com/arthur-debert/dotty/pkg/linker"
	"github.com/arthur-debert/dotty/pkg/paths"
	"github.com/arthur-debert/dotty/pkg/scratch"
	"github.com/arthur-debert/dotty/pkg/types"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// RestoreOptions holds options for the restore command
type RestoreOptions struct {
	Locations    paths.Locations
	ManifestFile string
	// Ignore applies when entries are derived from the store contents
	Ignore []string
	// Only restricts the restore to entries matching these globs
	Only []string

	AsSymlink bool
	Overwrite bool

	ScratchDir    string
	ScratchPrefix string

	FileSystem types.FS // Allow injecting a filesystem for testing
	ManifestFS afero.Fs
	Observer   events.Observer
	Logger     zerolog.Logger
}

// Restore puts every managed entry back at its original location. With
// Overwrite, existing content is moved into a scratch directory first; the
// directory is removed afterwards when nothing was displaced into it.
// A failing entry is reported and the rest of the batch goes on.
func Restore(opts RestoreOptions) (result *types.RestoreResult, err error) {
	logger := opts.Logger.With().Str("command", "restore").Logger()

	fs := opts.FileSystem
	if fs == nil {
		fs = filesystem.NewOS()
	}
	manifestFS := opts.ManifestFS
	if manifestFS == nil {
		manifestFS = afero.NewOsFs()
	}
	observer := events.OrNop(opts.Observer)

	list, err := entries.Collect(entries.Options{
		FS:           fs,
		ManifestFS:   manifestFS,
		Store:        opts.Locations.Repository,
		ManifestFile: opts.ManifestFile,
		Ignore:       opts.Ignore,
		Probe:        classify.DotGitProbe(fs),
		Observer:     observer,
	})
	if err != nil {
		logRestore(logger, opts, nil, err)
		return nil, err
	}
	selected, err := entries.Filter(list.Relatives, opts.Only)
	if err != nil {
		logRestore(logger, opts, nil, err)
		return nil, err
	}

	result = &types.RestoreResult{AsSymlink: opts.AsSymlink, FromManifest: list.FromManifest}

	var area *scratch.Area
	if opts.Overwrite {
		prefix := opts.ScratchPrefix
		if prefix == "" {
			prefix = scratch.DefaultPrefix
		}
		area, err = scratch.Create(fs, opts.ScratchDir, prefix, observer)
		if err != nil {
			logRestore(logger, opts, nil, err)
			return nil, err
		}
		result.ScratchPath = area.Path()
		defer func() {
			kept, releaseErr := area.Release()
			result.ScratchKept = kept
			if releaseErr != nil {
				logger.Warn().Err(releaseErr).Str("scratch", area.Path()).Msg("failed to clean up scratch directory")
			}
			if kept {
				logger.Warn().Str("scratch", area.Path()).Msg("overwritten content was moved to the scratch directory")
			}
			logRestore(logger, opts, result, err)
		}()
	}

	engine := linker.New(fs, observer)
	for _, rel := range selected {
		entry := types.RestoredEntry{
			Relative: rel,
			Original: opts.Locations.OriginalPath(rel),
			Store:    opts.Locations.StorePath(rel),
		}
		if entry.Err = opts.Locations.CheckManaged(rel); entry.Err != nil {
			logger.Warn().Err(entry.Err).Str("relative", rel).Msg("skipping invalid managed path")
			result.Entries = append(result.Entries, entry)
			continue
		}
		logger.Debug().Str("from", entry.Store).Str("to", entry.Original).Msg("restoring")
		entry.Err = engine.Restore(entry.Store, entry.Original, rel, area, opts.AsSymlink)
		if entry.Err != nil {
			logger.Warn().Err(entry.Err).Str("path", entry.Original).Msg("failed to restore")
		}
		result.Entries = append(result.Entries, entry)
	}

	if area == nil {
		logRestore(logger, opts, result, nil)
	}
	return result, nil
}

// logRestore logs the restore command execution
func logRestore(logger zerolog.Logger, opts RestoreOptions, result *types.RestoreResult, err error) {
	event := logger.Info()
	if err != nil {
		event = logger.Error().Err(err)
	}

	mode := "copying files"
	if opts.AsSymlink {
		mode = "creating symlinks"
	}
	event = event.
		Str("repository", opts.Locations.Repository).
		Str("root", opts.Locations.Root).
		Str("mode", mode).
		Bool("overwrite", opts.Overwrite)

	if result != nil {
		event = event.
			Int("entries", len(result.Entries)).
			Int("failed", len(result.Failed())).
			Bool("from_manifest", result.FromManifest)
		if result.ScratchKept {
			event = event.Str("scratch", result.ScratchPath)
		}
	}

	event.Msg("Restore command finished")
}
