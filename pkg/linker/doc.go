// Package linker moves entries into the store and restores them.
//
// CommitIntoStore renames a real file or directory into the store and
// replaces it with a symlink. The rename happens first: if the link cannot be
// created afterwards the content is already safe in the store and the
// failure is reported as PARTIALLY_APPLIED. Nothing is rolled back.
//
// Restore puts a store entry back at its original location, as a symlink or
// as a copy. Existing content at the original location is never destroyed:
// without a scratch area the restore refuses, with one the content is moved
// into it first.
//
// The engine is synchronous and holds no locks. Concurrent changes to the
// same paths by another process are not defended against beyond the state
// checks each operation makes.
package linker
