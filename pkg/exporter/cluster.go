package exporter

import (
	"time"

	"github.com/gedkit/gedkit/pkg/finding"
	"github.com/gedkit/gedkit/pkg/model"
)

// cluster is the transient family grouping reconstructed from the edge list.
// It lives for one export run only.
type cluster struct {
	// spouses holds 1 or 2 person ids.
	spouses []int

	// children holds person ids in edge-discovery order, deduplicated.
	children []int

	marriageDate *time.Time
	divorceDate  *time.Time
}

// pairKey is an unordered spouse pair.
type pairKey struct {
	lo, hi int
}

func newPairKey(a, b int) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{lo: a, hi: b}
}

// buildClusters is the pure clustering pass over the edge list.
//
// SPOUSE edges anchor couple clusters in discovery order; PARENT edges (and
// inverted CHILD edges) attach children to every cluster containing the
// parent. Parents outside any couple get a single-parent cluster. SIBLING
// edges carry no family-structure information and are ignored. Edges touching
// unknown person ids are skipped with a finding so export always terminates
// with partial output.
func buildClusters(known map[int]model.Person, relationships []model.Relationship, findings *finding.List) []*cluster {
	var (
		clusters []*cluster
		byPair   = make(map[pairKey]*cluster)
		byMember = make(map[int][]*cluster)
		loneByID = make(map[int]*cluster)
	)

	valid := func(r model.Relationship) bool {
		for _, id := range []int{r.FromID, r.ToID} {
			if _, ok := known[id]; !ok {
				findings.Add(finding.Warnf(finding.KindReferential, "",
					"skipping %s edge %d -> %d: person %d does not exist",
					r.Kind, r.FromID, r.ToID, id))
				return false
			}
		}
		return true
	}

	// First pass: couples.
	for _, r := range relationships {
		if r.Kind != model.RelSpouse || !valid(r) {
			continue
		}
		key := newPairKey(r.FromID, r.ToID)
		if _, seen := byPair[key]; seen {
			continue
		}
		c := &cluster{
			spouses:      []int{r.FromID, r.ToID},
			marriageDate: r.MarriageDate,
			divorceDate:  r.DivorceDate,
		}
		byPair[key] = c
		byMember[r.FromID] = append(byMember[r.FromID], c)
		byMember[r.ToID] = append(byMember[r.ToID], c)
		clusters = append(clusters, c)
	}

	// Second pass: children. A parent in no couple anchors an implicit
	// single-parent cluster.
	for _, r := range relationships {
		parent, child := r.FromID, r.ToID
		switch r.Kind {
		case model.RelParent:
		case model.RelChild:
			parent, child = child, parent
		default:
			continue
		}
		if !valid(r) {
			continue
		}

		owners := byMember[parent]
		if len(owners) == 0 {
			lone, ok := loneByID[parent]
			if !ok {
				lone = &cluster{spouses: []int{parent}}
				loneByID[parent] = lone
				clusters = append(clusters, lone)
			}
			owners = []*cluster{lone}
		}
		for _, c := range owners {
			c.addChild(child)
		}
	}

	return clusters
}

func (c *cluster) addChild(id int) {
	for _, existing := range c.children {
		if existing == id {
			return
		}
	}
	c.children = append(c.children, id)
}
