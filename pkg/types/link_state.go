package types

// LinkStateKind classifies what occupies a path
type LinkStateKind int

const (
	// StateAbsent means nothing exists at the path
	StateAbsent LinkStateKind = iota
	// StateRegular means a real file or directory exists
	StateRegular
	// StateSymlink means a symbolic link exists (possibly dangling)
	StateSymlink
)

// LinkState is computed on demand from filesystem metadata and never stored
type LinkState struct {
	Kind LinkStateKind
	// Target is the raw link target, set only for StateSymlink
	Target string
}

// String returns a short description
func (s LinkState) String() string {
	switch s.Kind {
	case StateAbsent:
		return "absent"
	case StateRegular:
		return "regular"
	case StateSymlink:
		return "symlink -> " + s.Target
	default:
		return "unknown"
	}
}
