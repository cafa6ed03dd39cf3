package model

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleGraph() ([]Person, []Relationship) {
	people := []Person{
		{ID: 2, FirstName: "Jane", LastName: "Roe", Living: true},
		{ID: 1, FirstName: "John", LastName: "Doe", Living: true},
	}
	rels := []Relationship{
		{FromID: 1, ToID: 2, Kind: RelSpouse, Active: true},
	}
	return people, rels
}

func TestMemStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore()

	people, rels := sampleGraph()
	require.NoError(t, store.SaveGraph(ctx, people, rels))

	gotPeople, gotRels, err := store.LoadGraph(ctx)
	require.NoError(t, err)
	require.Len(t, gotPeople, 2)
	require.Len(t, gotRels, 1)

	// LoadGraph sorts by id.
	require.Equal(t, 1, gotPeople[0].ID)
	require.Equal(t, 2, gotPeople[1].ID)
}

func TestMemStore_LoadReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore()

	people, rels := sampleGraph()
	require.NoError(t, store.SaveGraph(ctx, people, rels))

	got, _, err := store.LoadGraph(ctx)
	require.NoError(t, err)
	got[0].FirstName = "mutated"

	again, _, err := store.LoadGraph(ctx)
	require.NoError(t, err)
	require.Equal(t, "John", again[0].FirstName)
}

func TestFileStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "graph.json")
	store := NewFileStore(path)

	people, rels := sampleGraph()
	require.NoError(t, store.SaveGraph(ctx, people, rels))

	gotPeople, gotRels, err := store.LoadGraph(ctx)
	require.NoError(t, err)
	require.Len(t, gotPeople, 2)
	require.Len(t, gotRels, 1)
	require.Equal(t, RelSpouse, gotRels[0].Kind)
}

func TestFileStore_MissingFileIsEmptyGraph(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "nope.json"))

	people, rels, err := store.LoadGraph(context.Background())
	require.NoError(t, err)
	require.Empty(t, people)
	require.Empty(t, rels)
}

func TestRelationship_Other(t *testing.T) {
	r := Relationship{FromID: 1, ToID: 2, Kind: RelSpouse}

	require.Equal(t, 2, r.Other(1))
	require.Equal(t, 1, r.Other(2))
	require.Equal(t, -1, r.Other(3))
	require.True(t, r.Involves(1))
	require.False(t, r.Involves(3))
}

func TestRelKind_Symmetric(t *testing.T) {
	require.True(t, RelSpouse.Symmetric())
	require.True(t, RelSibling.Symmetric())
	require.False(t, RelParent.Symmetric())
	require.False(t, RelChild.Symmetric())
}
