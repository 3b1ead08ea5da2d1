// Package gitx drives the git CLI for the store repository.
//
// Every command runs as "git -C <dir>" with terminal prompts disabled, so a
// missing credential fails instead of hanging. Callers invoke it only after
// all filesystem changes for an operation are finished.
package gitx
