package model

import (
	"context"
	"sort"
	"sync"
)

// Store is the persistence collaborator boundary. The import service saves a
// complete graph in one call (all or nothing), the export service reads the
// complete graph back. Real database persistence is a collaborator concern;
// this package ships an in-memory and a JSON-file implementation.
type Store interface {
	// SaveGraph replaces the stored graph with the given one.
	SaveGraph(ctx context.Context, people []Person, relationships []Relationship) error

	// LoadGraph returns the full stored graph.
	LoadGraph(ctx context.Context) ([]Person, []Relationship, error)
}

// Snapshot is the serializable representation of a stored graph.
type Snapshot struct {
	People        []Person       `json:"people"`
	Relationships []Relationship `json:"relationships"`
}

// MemStore is an in-memory Store, safe for concurrent use.
type MemStore struct {
	mu    sync.RWMutex
	state Snapshot
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{}
}

// SaveGraph replaces the stored graph.
func (s *MemStore) SaveGraph(_ context.Context, people []Person, relationships []Relationship) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Snapshot{
		People:        clonePeople(people),
		Relationships: cloneRelationships(relationships),
	}
	return nil
}

// LoadGraph returns a copy of the stored graph, people sorted by id for
// deterministic iteration.
func (s *MemStore) LoadGraph(_ context.Context) ([]Person, []Relationship, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	people := clonePeople(s.state.People)
	sort.Slice(people, func(i, j int) bool { return people[i].ID < people[j].ID })

	return people, cloneRelationships(s.state.Relationships), nil
}

func clonePeople(in []Person) []Person {
	out := make([]Person, len(in))
	copy(out, in)
	return out
}

func cloneRelationships(in []Relationship) []Relationship {
	out := make([]Relationship, len(in))
	copy(out, in)
	return out
}
