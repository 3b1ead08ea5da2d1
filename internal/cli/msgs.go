package cli

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Keep dotfiles in one repository and restore them anywhere"
	MsgVersionShort    = "Print version information"
	MsgVersionLong     = "Print detailed version information including commit hash and build date"
	MsgInitShort       = "Create the store repository"
	MsgCloneShort      = "Clone an existing store"
	MsgAddShort        = "Move paths into the store and link them back"
	MsgRestoreShort    = "Restore managed paths from the store"
	MsgStatusShort     = "Show the state of managed paths"
	MsgSyncShort       = "Merge with the remote store and push"
	MsgUpdateShort     = "Update submodules to their remote tips"
	MsgConfigShort     = "Print the effective configuration"
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Generate man pages"

	// Status messages
	MsgInitCreated      = "Initialized dotty repository in %s"
	MsgInitExisting     = "%s is already a dotty repository"
	MsgCloned           = "Cloned %s into %s"
	MsgCloneNoManifest  = "The cloned repository has no %s; restore will use the store contents"
	MsgSynced           = "Synchronized %s"
	MsgUpdated          = "Updated %d submodule(s)"
	MsgNoSubmodules     = "No submodules to update"
	MsgManWritten       = "Man pages written to %s"
	MsgVersionFormat    = "dotty version %s\n"
	MsgVersionCommit    = "Commit: %s\n"
	MsgVersionBuildDate = "Built:  %s\n"

	// Error messages
	MsgErrEntriesFailed = "%d of %d entries failed"

	// Flag descriptions
	MsgFlagVerbose    = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig     = "Configuration file (default $XDG_CONFIG_HOME/dotty/config.toml)"
	MsgFlagRepository = "Store repository (default ~/.dotty)"
	MsgFlagRoot       = "Root that managed paths are relative to (default: parent of the store)"
	MsgFlagFormat     = "Output format: auto, terminal, text or json"
	MsgFlagMode       = "Restore as symlinks or files"
	MsgFlagOverwrite  = "Move existing content to a scratch directory instead of failing"
	MsgFlagOnly       = "Only handle paths matching this glob (repeatable)"
	MsgFlagTemplate   = "Print a commented template instead of the effective values"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/add-long.txt
	msgAddLongRaw string
	MsgAddLong    = strings.TrimSpace(msgAddLongRaw)

	//go:embed msgs/add-example.txt
	msgAddExampleRaw string
	MsgAddExample    = strings.TrimRight(msgAddExampleRaw, "\n")

	//go:embed msgs/restore-long.txt
	msgRestoreLongRaw string
	MsgRestoreLong    = strings.TrimSpace(msgRestoreLongRaw)

	//go:embed msgs/restore-example.txt
	msgRestoreExampleRaw string
	MsgRestoreExample    = strings.TrimRight(msgRestoreExampleRaw, "\n")

	//go:embed msgs/status-long.txt
	msgStatusLongRaw string
	MsgStatusLong    = strings.TrimSpace(msgStatusLongRaw)

	//go:embed msgs/init-long.txt
	msgInitLongRaw string
	MsgInitLong    = strings.TrimSpace(msgInitLongRaw)

	//go:embed msgs/sync-long.txt
	msgSyncLongRaw string
	MsgSyncLong    = strings.TrimSpace(msgSyncLongRaw)
)
