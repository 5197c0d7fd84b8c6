package meta

// ChangeKind is the kind of a staged change. Renames surface at enumeration
// time as a deletion of the old path plus an addition of the new path, which
// preserves the pairing semantics without a dedicated kind.
type ChangeKind int

const (
	KindAdded ChangeKind = iota
	KindModified
	KindDeleted
)

func (k ChangeKind) String() string {
	switch k {
	case KindAdded:
		return "added"
	case KindModified:
		return "modified"
	case KindDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// StagedChange is one path affected by the pending commit, as recorded in
// the index.
type StagedChange struct {
	Path string
	Kind ChangeKind
}

// StagedChangeSource yields the staged change set for the pending commit.
// It is the checker's only view of the version-control system, so tests can
// substitute fabricated change sets.
type StagedChangeSource interface {
	Changes() ([]StagedChange, error)
}

// ExistsProbe answers whether a path currently exists in the working tree.
// The checker layers the staged change set on top of it to decide presence
// "after the staged changes are applied".
type ExistsProbe interface {
	Exists(path string) bool
}

// ViolationKind distinguishes the two breaches of the pairing invariant.
type ViolationKind int

const (
	// MissingMetadata: a staged content addition or modification lacks its
	// required sidecar.
	MissingMetadata ViolationKind = iota
	// RedundantMetadata: a metadata file's content path no longer exists and
	// the metadata file itself was not also removed.
	RedundantMetadata
)

func (k ViolationKind) String() string {
	switch k {
	case MissingMetadata:
		return "missing-metadata"
	case RedundantMetadata:
		return "redundant-metadata"
	default:
		return "unknown"
	}
}

// Violation is one detected breach of the pairing invariant. Path names the
// content path for MissingMetadata and the metadata path for
// RedundantMetadata.
type Violation struct {
	Path string
	Kind ViolationKind
}
