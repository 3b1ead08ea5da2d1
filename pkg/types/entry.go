package types

// LeafKind tags a classified entry
type LeafKind int

const (
	// LeafFile is an ordinary file, or a directory handled as a whole
	LeafFile LeafKind = iota
	// LeafRepoUnit is a directory that is its own repository and is never split
	LeafRepoUnit
)

// String returns the kind name
func (k LeafKind) String() string {
	switch k {
	case LeafFile:
		return "file"
	case LeafRepoUnit:
		return "repository"
	default:
		return "unknown"
	}
}

// LeafEntry is one unit produced by flattening requested paths
type LeafEntry struct {
	Path string
	Kind LeafKind
}

// Outcome is the non-error result of moving an entry into the store
type Outcome int

const (
	// OutcomeMoved means the entry was moved and replaced by a link
	OutcomeMoved Outcome = iota
	// OutcomeAlreadyLinked means the original already links to the store target
	OutcomeAlreadyLinked
)

// String returns the outcome name
func (o Outcome) String() string {
	switch o {
	case OutcomeMoved:
		return "moved"
	case OutcomeAlreadyLinked:
		return "already-linked"
	default:
		return "unknown"
	}
}
