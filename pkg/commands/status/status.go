package status

import (
	"os"

	"github.com/arthur-debert/dotty/pkg/classify"
	"github.com/arthur-debert/dotty/pkg/commands/internal/entries"
	"github.com/arthur-debert/dotty/pkg/errors"
	"github.com/arthur-debert/dotty/pkg/filesystem"
	"github.com/arthur-debert/dotty/pkg/linker"
	"github.com/arthur-debert/dotty/pkg/paths"
	"github.com/arthur-debert/dotty/pkg/types"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// StatusOptions defines the options for the status command
type StatusOptions struct {
	Locations    paths.Locations
	ManifestFile string
	Ignore       []string
	Only         []string

	FileSystem types.FS
	ManifestFS afero.Fs
	Logger     zerolog.Logger
}

// Status reports how each managed path relates to its store entry. It never
// changes anything.
func Status(opts StatusOptions) (*types.StatusResult, error) {
	logger := opts.Logger.With().Str("command", "status").Logger()
	logger.Debug().Str("repository", opts.Locations.Repository).Msg("Executing command")

	fs := opts.FileSystem
	if fs == nil {
		fs = filesystem.NewOS()
	}
	manifestFS := opts.ManifestFS
	if manifestFS == nil {
		manifestFS = afero.NewOsFs()
	}

	list, err := entries.Collect(entries.Options{
		FS:           fs,
		ManifestFS:   manifestFS,
		Store:        opts.Locations.Repository,
		ManifestFile: opts.ManifestFile,
		Ignore:       opts.Ignore,
		Probe:        classify.DotGitProbe(fs),
	})
	if err != nil {
		return nil, err
	}
	selected, err := entries.Filter(list.Relatives, opts.Only)
	if err != nil {
		return nil, err
	}

	engine := linker.New(fs, nil)
	result := &types.StatusResult{
		Repository:   opts.Locations.Repository,
		Root:         opts.Locations.Root,
		FromManifest: list.FromManifest,
		Entries:      make([]types.EntryStatus, 0, len(selected)),
	}

	for _, rel := range selected {
		st, err := entryStatus(fs, engine, opts.Locations, rel)
		if err != nil {
			return nil, err
		}
		result.Entries = append(result.Entries, st)
	}

	logger.Info().
		Int("entries", len(result.Entries)).
		Int("linked", result.Count(types.EntryLinked)).
		Int("conflict", result.Count(types.EntryConflict)).
		Msg("Status command finished")
	return result, nil
}

func entryStatus(fs types.FS, engine *linker.Engine, loc paths.Locations, rel string) (types.EntryStatus, error) {
	st := types.EntryStatus{
		Relative: rel,
		Original: loc.OriginalPath(rel),
		Store:    loc.StorePath(rel),
	}

	if err := loc.CheckManaged(rel); err != nil {
		st.State = types.EntryInvalid
		st.Target = err.Error()
		return st, nil
	}

	if _, err := fs.Lstat(st.Store); err != nil {
		if !os.IsNotExist(err) {
			return st, errors.Wrapf(err, errors.ErrFileAccess, "unable to get metadata of %s", st.Store)
		}
		st.State = types.EntryStoreMissing
		return st, nil
	}

	state, err := engine.State(st.Original)
	if err != nil {
		return st, err
	}

	switch state.Kind {
	case types.StateAbsent:
		st.State = types.EntryMissing
	case types.StateSymlink:
		st.Target = state.Target
		if engine.ResolvesTo(st.Original, st.Store) {
			st.State = types.EntryLinked
		} else {
			st.State = types.EntryForeignLink
		}
	default:
		same, err := engine.SameContent(st.Store, st.Original)
		if err != nil {
			return st, err
		}
		if same {
			st.State = types.EntryCopied
		} else {
			st.State = types.EntryConflict
		}
	}
	return st, nil
}
