// Package types holds the shared types of the dotty engine: the filesystem
// interface, classified leaf entries, and the derived link state.
package types
