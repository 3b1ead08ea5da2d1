package types

// AddedEntry is the outcome of committing one leaf into the store
type AddedEntry struct {
	// Path is the canonical original location
	Path string
	// Relative is Path relative to the root, empty when it could not be computed
	Relative string
	Kind     LeafKind
	Outcome  Outcome
	Err      error
}

// AddResult reports a batch add
type AddResult struct {
	Entries []AddedEntry
	// Committed lists the relative paths recorded in the commit
	Committed []string
	// CommitMessage is empty when nothing was committed
	CommitMessage string
}

// Failed returns the entries that could not be added
func (r *AddResult) Failed() []AddedEntry {
	var out []AddedEntry
	for _, e := range r.Entries {
		if e.Err != nil {
			out = append(out, e)
		}
	}
	return out
}

// RestoredEntry is the outcome of restoring one managed path
type RestoredEntry struct {
	Relative string
	Original string
	Store    string
	Err      error
}

// RestoreResult reports a batch restore
type RestoreResult struct {
	Entries   []RestoredEntry
	AsSymlink bool
	// FromManifest is false when entries were derived from the store contents
	FromManifest bool
	// ScratchPath is the scratch directory used by an overwriting restore
	ScratchPath string
	// ScratchKept is set when displaced content remains in ScratchPath
	ScratchKept bool
}

// Failed returns the entries that could not be restored
func (r *RestoreResult) Failed() []RestoredEntry {
	var out []RestoredEntry
	for _, e := range r.Entries {
		if e.Err != nil {
			out = append(out, e)
		}
	}
	return out
}

// EntryState summarizes how an original location relates to its store entry
type EntryState string

const (
	// EntryLinked means the original is a symlink into the store
	EntryLinked EntryState = "linked"
	// EntryCopied means the original holds the same content as the store
	EntryCopied EntryState = "copied"
	// EntryMissing means nothing exists at the original location
	EntryMissing EntryState = "missing"
	// EntryConflict means the original holds different content
	EntryConflict EntryState = "conflict"
	// EntryForeignLink means the original is a symlink somewhere else
	EntryForeignLink EntryState = "foreign-link"
	// EntryStoreMissing means the manifest names a path absent from the store
	EntryStoreMissing EntryState = "store-missing"
	// EntryInvalid means the manifest entry does not name a path below the root
	EntryInvalid EntryState = "invalid"
)

// EntryStatus is the state of one managed path
type EntryStatus struct {
	Relative string
	Original string
	Store    string
	State    EntryState
	// Target is set for symlinks, and holds the reason for EntryInvalid
	Target string
}

// StatusResult reports the state of every managed path
type StatusResult struct {
	Repository   string
	Root         string
	FromManifest bool
	Entries      []EntryStatus
}

// Count returns how many entries are in state
func (r *StatusResult) Count(state EntryState) int {
	n := 0
	for _, e := range r.Entries {
		if e.State == state {
			n++
		}
	}
	return n
}
