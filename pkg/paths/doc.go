// Package paths provides path handling for dotty.
//
// It handles:
//
//   - Home directory expansion (~ and ~/...)
//   - Canonicalization of paths that may not exist yet
//   - Relative paths between a root and one of its descendants
//   - Common base path computation for commit summaries
//   - Resolution of the store (repository) and root locations
//
// # Environment Variables
//
//   - DOTTY_REPOSITORY: location of the store (default: ~/.dotty)
//   - DOTTY_ROOT: root the managed paths are relative to (default: parent of the store)
//
// # Usage
//
//	loc, err := paths.ResolveLocations("", "")
//	rel, err := paths.RelativeFromRoot(loc.Root, "/home/user/.config/nvim/init.lua")
//	// rel == ".config/nvim/init.lua"
package paths
