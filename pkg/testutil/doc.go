// Package testutil provides helpers shared by dotty's tests: building file
// trees on the real filesystem, snapshotting them, and running git in an
// isolated configuration.
//
// Tests that exercise symlinks use the real filesystem under t.TempDir;
// afero's in-memory filesystem does not implement links.
package testutil
