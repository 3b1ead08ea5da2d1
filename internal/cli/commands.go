package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dotty/internal/version"
	"github.com/arthur-debert/dotty/pkg/commands/add"
	"github.com/arthur-debert/dotty/pkg/commands/clone"
	"github.com/arthur-debert/dotty/pkg/commands/initialize"
	"github.com/arthur-debert/dotty/pkg/commands/restore"
	"github.com/arthur-debert/dotty/pkg/commands/status"
	"github.com/arthur-debert/dotty/pkg/commands/sync"
	"github.com/arthur-debert/dotty/pkg/commands/update"
	"github.com/arthur-debert/dotty/pkg/config"
	"github.com/arthur-debert/dotty/pkg/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Long:  MsgVersionLong,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			info := version.Get()
			_, _ = fmt.Fprintf(out, MsgVersionFormat, info.Version)
			if info.Commit != "" {
				_, _ = fmt.Fprintf(out, MsgVersionCommit, info.Commit)
			}
			if info.Date != "" {
				_, _ = fmt.Fprintf(out, MsgVersionBuildDate, info.Date)
			}
		},
	}
}

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: MsgInitShort,
		Long:  MsgInitLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, locations, err := a.setup(nil)
			if err != nil {
				return err
			}

			result, err := initialize.Init(cmd.Context(), initialize.InitOptions{
				Locations:    locations,
				ManifestFile: cfg.Manifest.File,
				Git:          a.git(cfg),
				Logger:       logging.GetLogger(a.logger, "init"),
			})
			if err != nil {
				return err
			}

			renderer, err := a.renderer(cmd)
			if err != nil {
				return err
			}
			if result.CreatedRepo || result.CreatedManifest {
				return renderer.RenderMessage(fmt.Sprintf(MsgInitCreated, result.Repository))
			}
			return renderer.RenderMessage(fmt.Sprintf(MsgInitExisting, result.Repository))
		},
	}
}

func newCloneCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clone <url>",
		Short: MsgCloneShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, locations, err := a.setup(nil)
			if err != nil {
				return err
			}

			result, err := clone.Clone(cmd.Context(), clone.CloneOptions{
				Locations:    locations,
				URL:          args[0],
				ManifestFile: cfg.Manifest.File,
				Git:          a.git(cfg),
				Logger:       logging.GetLogger(a.logger, "clone"),
			})
			if err != nil {
				return err
			}

			renderer, err := a.renderer(cmd)
			if err != nil {
				return err
			}
			if err := renderer.RenderMessage(fmt.Sprintf(MsgCloned, result.URL, result.Repository)); err != nil {
				return err
			}
			if !result.HasManifest {
				return renderer.RenderMessage(fmt.Sprintf(MsgCloneNoManifest, cfg.Manifest.File))
			}
			return nil
		},
	}
}

func newAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "add <paths...>",
		Short:   MsgAddShort,
		Long:    MsgAddLong,
		Example: MsgAddExample,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, locations, err := a.setup(nil)
			if err != nil {
				return err
			}

			result, err := add.AddPaths(cmd.Context(), add.AddPathsOptions{
				Locations:    locations,
				Paths:        args,
				ManifestFile: cfg.Manifest.File,
				Git:          a.git(cfg),
				Observer:     a.observer(),
				Logger:       logging.GetLogger(a.logger, "add"),
			})
			if err != nil {
				return err
			}

			if err := a.render(cmd, result); err != nil {
				return err
			}
			if failed := len(result.Failed()); failed > 0 {
				a.logger.Warn().Msgf(MsgErrEntriesFailed, failed, len(result.Entries))
				return errEntriesFailed
			}
			return nil
		},
	}
}

func newRestoreCmd(a *app) *cobra.Command {
	var (
		mode      string
		overwrite bool
		only      []string
	)

	cmd := &cobra.Command{
		Use:     "restore",
		Short:   MsgRestoreShort,
		Long:    MsgRestoreLong,
		Example: MsgRestoreExample,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides := map[string]interface{}{}
			if cmd.Flags().Changed("mode") {
				overrides["restore.mode"] = mode
			}
			if cmd.Flags().Changed("overwrite") {
				overrides["restore.overwrite"] = overwrite
			}

			cfg, locations, err := a.setup(overrides)
			if err != nil {
				return err
			}

			result, err := restore.Restore(restore.RestoreOptions{
				Locations:     locations,
				ManifestFile:  cfg.Manifest.File,
				Ignore:        cfg.Ignore,
				Only:          only,
				AsSymlink:     cfg.Restore.AsSymlinks(),
				Overwrite:     cfg.Restore.Overwrite,
				ScratchDir:    cfg.Scratch.Dir,
				ScratchPrefix: cfg.Scratch.Prefix,
				Observer:      a.observer(),
				Logger:        logging.GetLogger(a.logger, "restore"),
			})
			if err != nil {
				return err
			}

			if err := a.render(cmd, result); err != nil {
				return err
			}
			if failed := len(result.Failed()); failed > 0 {
				a.logger.Warn().Msgf(MsgErrEntriesFailed, failed, len(result.Entries))
				return errEntriesFailed
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&mode, "mode", config.ModeSymlinks, MsgFlagMode)
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, MsgFlagOverwrite)
	cmd.Flags().StringArrayVar(&only, "only", nil, MsgFlagOnly)
	_ = cmd.RegisterFlagCompletionFunc("mode", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{config.ModeSymlinks, config.ModeFiles}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func newStatusCmd(a *app) *cobra.Command {
	var only []string

	cmd := &cobra.Command{
		Use:   "status",
		Short: MsgStatusShort,
		Long:  MsgStatusLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, locations, err := a.setup(nil)
			if err != nil {
				return err
			}

			result, err := status.Status(status.StatusOptions{
				Locations:    locations,
				ManifestFile: cfg.Manifest.File,
				Ignore:       cfg.Ignore,
				Only:         only,
				Logger:       logging.GetLogger(a.logger, "status"),
			})
			if err != nil {
				return err
			}
			return a.render(cmd, result)
		},
	}

	cmd.Flags().StringArrayVar(&only, "only", nil, MsgFlagOnly)
	return cmd
}

func newSyncCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sync [url]",
		Short: MsgSyncShort,
		Long:  MsgSyncLong,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, locations, err := a.setup(nil)
			if err != nil {
				return err
			}

			var url string
			if len(args) == 1 {
				url = args[0]
			}
			if err := sync.Sync(cmd.Context(), sync.SyncOptions{
				Locations: locations,
				URL:       url,
				Git:       a.git(cfg),
				Logger:    logging.GetLogger(a.logger, "sync"),
			}); err != nil {
				return err
			}

			renderer, err := a.renderer(cmd)
			if err != nil {
				return err
			}
			return renderer.RenderMessage(fmt.Sprintf(MsgSynced, locations.Repository))
		},
	}
}

func newUpdateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "update",
		Short: MsgUpdateShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, locations, err := a.setup(nil)
			if err != nil {
				return err
			}

			n, err := update.Update(cmd.Context(), update.UpdateOptions{
				Locations: locations,
				Git:       a.git(cfg),
				Logger:    logging.GetLogger(a.logger, "update"),
			})
			if err != nil {
				return err
			}

			renderer, err := a.renderer(cmd)
			if err != nil {
				return err
			}
			if n == 0 {
				return renderer.RenderMessage(MsgNoSubmodules)
			}
			return renderer.RenderMessage(fmt.Sprintf(MsgUpdated, n))
		},
	}
}

func newConfigCmd(a *app) *cobra.Command {
	var template bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: MsgConfigShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if template {
				_, err := fmt.Fprint(out, config.GenerateConfigContent())
				return err
			}

			cfg, err := a.loadConfig(nil)
			if err != nil {
				return err
			}
			data, err := config.Generate(cfg)
			if err != nil {
				return err
			}
			_, err = out.Write(data)
			return err
		},
	}

	cmd.Flags().BoolVar(&template, "template", false, MsgFlagTemplate)
	return cmd
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: MsgCompletionShort,
		Long: `To load completions:

Bash:
  $ source <(dotty completion bash)

Zsh:
  $ dotty completion zsh > "${fpath[1]}/_dotty"

Fish:
  $ dotty completion fish | source

PowerShell:
  PS> dotty completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}

func newManCmd() *cobra.Command {
	return &cobra.Command{
		Use:    "man <dir>",
		Short:  MsgManShort,
		Args:   cobra.ExactArgs(1),
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}
			if err := os.MkdirAll(dir, 0755); err != nil {
				return err
			}
			header := &doc.GenManHeader{
				Title:   strings.ToUpper(cmd.Root().Name()),
				Section: "1",
				Source:  "dotty " + version.Get().Version,
				Manual:  "dotty manual",
			}
			if err := doc.GenManTree(cmd.Root(), header, dir); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), MsgManWritten+"\n", dir)
			return err
		},
	}
}

func (a *app) render(cmd *cobra.Command, result interface{}) error {
	renderer, err := a.renderer(cmd)
	if err != nil {
		return err
	}
	return renderer.RenderResult(result)
}
