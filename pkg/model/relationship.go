package model

import "time"

// RelKind enumerates relationship edge kinds.
type RelKind string

const (
	// RelParent points from a parent to their child.
	RelParent RelKind = "PARENT"

	// RelChild points from a child to their parent. The import mapper
	// emits only RelParent edges; RelChild exists for callers that store
	// the graph with both directions materialized.
	RelChild RelKind = "CHILD"

	// RelSpouse links two partners. Symmetric; stored once in canonical
	// direction (see Relationship).
	RelSpouse RelKind = "SPOUSE"

	// RelSibling links two siblings. Symmetric; stored once.
	RelSibling RelKind = "SIBLING"
)

// Symmetric reports whether the kind carries no inherent direction.
func (k RelKind) Symmetric() bool {
	return k == RelSpouse || k == RelSibling
}

// Relationship is one directed edge in the family graph.
//
// PARENT edges always point parent -> child. Symmetric kinds (SPOUSE, SIBLING)
// are stored as a single edge in a canonical direction: husband -> wife when both
// roles are known, otherwise first-resolved -> second-resolved. Use Involves and
// Other for direction-agnostic access.
type Relationship struct {
	// FromID is the source person id.
	FromID int `json:"from_id"`

	// ToID is the target person id.
	ToID int `json:"to_id"`

	// Kind is the edge kind.
	Kind RelKind `json:"kind"`

	// MarriageDate is set on SPOUSE edges when the source recorded one.
	MarriageDate *time.Time `json:"marriage_date,omitempty"`

	// DivorceDate is set on SPOUSE edges when the source recorded one.
	DivorceDate *time.Time `json:"divorce_date,omitempty"`

	// Active is false for ended relationships (e.g. a divorced couple).
	Active bool `json:"active"`
}

// Involves reports whether the edge touches the given person id.
func (r Relationship) Involves(id int) bool {
	return r.FromID == id || r.ToID == id
}

// Other returns the id on the opposite end from the given one.
// Returns -1 when the edge does not involve id.
func (r Relationship) Other(id int) int {
	switch id {
	case r.FromID:
		return r.ToID
	case r.ToID:
		return r.FromID
	default:
		return -1
	}
}
