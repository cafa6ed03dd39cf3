// Package model defines the internal family-graph types (people plus directed
// relationship edges) and the persistence collaborator boundary. The graph is
// deliberately flat: relationships are explicit edges, never family groupings.
package model

import "time"

// Gender values used by Person. Empty means unknown.
const (
	GenderMale   = "M"
	GenderFemale = "F"
)

// Person is one individual in the internal family graph.
//
// ID is assigned at mapping time and is stable for one import run only; it has
// no connection to the GEDCOM cross-reference identifier, which is discarded
// after mapping.
type Person struct {
	// ID is the run-scoped numeric identifier.
	ID int `json:"id"`

	// FirstName is the given name, possibly empty.
	FirstName string `json:"first_name"`

	// LastName is the surname, possibly empty.
	LastName string `json:"last_name"`

	// AlternateName holds a secondary name when the source carried one.
	AlternateName string `json:"alternate_name,omitempty"`

	// BirthDate is nil when unknown or unparseable.
	BirthDate *time.Time `json:"birth_date,omitempty"`

	// DeathDate is nil when unknown or unparseable.
	DeathDate *time.Time `json:"death_date,omitempty"`

	// BirthPlace is the birth place text, possibly empty.
	BirthPlace string `json:"birth_place,omitempty"`

	// Gender is "M", "F" or empty.
	Gender string `json:"gender,omitempty"`

	// Living is false when the source recorded a death event, with or
	// without a date.
	Living bool `json:"living"`
}

// FullName renders "First Last" with whatever parts are present.
func (p Person) FullName() string {
	switch {
	case p.FirstName == "":
		return p.LastName
	case p.LastName == "":
		return p.FirstName
	default:
		return p.FirstName + " " + p.LastName
	}
}
