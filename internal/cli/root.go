package cli

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/arthur-debert/dotty/internal/version"
	"github.com/arthur-debert/dotty/pkg/cobrax/topics"
	"github.com/arthur-debert/dotty/pkg/config"
	"github.com/arthur-debert/dotty/pkg/events"
	"github.com/arthur-debert/dotty/pkg/gitx"
	"github.com/arthur-debert/dotty/pkg/logging"
	"github.com/arthur-debert/dotty/pkg/paths"
	"github.com/arthur-debert/dotty/pkg/ui"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// errEntriesFailed is returned after a result that contains failed entries
// has been rendered. It only sets the exit code.
var errEntriesFailed = stderrors.New("entries failed")

// app carries the global flags and the services built from them
type app struct {
	verbosity  int
	configFile string
	repository string
	root       string
	format     string

	logger zerolog.Logger
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	a := &app{logger: zerolog.Nop()}

	rootCmd := &cobra.Command{
		Use:     "dotty",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Get().Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.logger = logging.SetupLogger(a.verbosity)
			a.logger.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.CountVarP(&a.verbosity, "verbose", "v", MsgFlagVerbose)
	flags.StringVar(&a.configFile, "config", "", MsgFlagConfig)
	flags.StringVarP(&a.repository, "repository", "r", "", MsgFlagRepository)
	flags.StringVar(&a.root, "root", "", MsgFlagRoot)
	flags.StringVar(&a.format, "format", "auto", MsgFlagFormat)
	_ = rootCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return ui.Formats(), cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newInitCmd(a))
	rootCmd.AddCommand(newCloneCmd(a))
	rootCmd.AddCommand(newAddCmd(a))
	rootCmd.AddCommand(newRestoreCmd(a))
	rootCmd.AddCommand(newStatusCmd(a))
	rootCmd.AddCommand(newSyncCmd(a))
	rootCmd.AddCommand(newUpdateCmd(a))
	rootCmd.AddCommand(newConfigCmd(a))
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())

	opts := topics.Options{}
	if isatty.IsTerminal(os.Stdout.Fd()) {
		opts.Renderer = topics.NewGlamourRenderer()
	}
	if err := topics.InitializeWithOptions(rootCmd, HelpTopics(), opts); err != nil {
		// Topics are embedded; commands still work without them.
		fmt.Fprintf(os.Stderr, "Warning: help topics unavailable: %v\n", err)
	}

	return rootCmd
}

// Execute runs the command line and returns the process exit code
func Execute() int {
	return run(NewRootCmd(), os.Args[1:], os.Stderr)
}

func run(rootCmd *cobra.Command, args []string, stderr io.Writer) int {
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	if err == nil {
		return 0
	}
	if stderrors.Is(err, errEntriesFailed) {
		return 1
	}

	renderer, rerr := ui.NewRenderer(ui.FormatAuto, stderr)
	if rerr != nil || renderer.RenderError(err) != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return 1
}

// loadConfig layers the global flags and overrides over the configuration
// files and environment.
func (a *app) loadConfig(overrides map[string]interface{}) (*config.Config, error) {
	merged := make(map[string]interface{}, len(overrides)+2)
	if a.repository != "" {
		merged["repository"] = a.repository
	}
	if a.root != "" {
		merged["root"] = a.root
	}
	for k, v := range overrides {
		merged[k] = v
	}

	cfg, err := config.Load(config.LoadOptions{ConfigFile: a.configFile, Overrides: merged})
	if err != nil {
		return nil, err
	}
	a.logger.Debug().
		Str("repository", cfg.Repository).
		Str("root", cfg.Root).
		Str("restoreMode", cfg.Restore.Mode).
		Msg("Configuration loaded")
	return cfg, nil
}

// setup loads the configuration and resolves the store and root
func (a *app) setup(overrides map[string]interface{}) (*config.Config, paths.Locations, error) {
	cfg, err := a.loadConfig(overrides)
	if err != nil {
		return nil, paths.Locations{}, err
	}
	locations, err := paths.ResolveLocations(cfg.Repository, cfg.Root)
	if err != nil {
		return nil, paths.Locations{}, err
	}
	a.logger.Debug().
		Str("repository", locations.Repository).
		Str("root", locations.Root).
		Msg("Locations resolved")
	return cfg, locations, nil
}

func (a *app) renderer(cmd *cobra.Command) (ui.Renderer, error) {
	format, err := ui.ParseFormat(a.format)
	if err != nil {
		return nil, err
	}
	return ui.NewRenderer(format, cmd.OutOrStdout())
}

func (a *app) git(cfg *config.Config) *gitx.Git {
	return gitx.New(cfg.Git.Binary, logging.GetLogger(a.logger, "git"))
}

func (a *app) observer() events.Observer {
	return events.NewLogObserver(logging.GetLogger(a.logger, "engine"))
}
