// Package routestore holds the two route-caching structures spec §4.6
// describes: TreeCache, a bounded FIFO of whole dry-run trees keyed by
// the exclusion set they were computed under (used by SPSN), and
// RoutingTable, a per-destination list of previously admitted routes
// kept for reattempt (used by CGR and VolCgr).
package routestore

import (
	"sort"

	"github.com/katalvlaran/sabr-route/pathfind"
	"github.com/katalvlaran/sabr-route/routestage"
	"github.com/katalvlaran/sabr-route/sabrtypes"
)

// Validator re-checks whether a cached candidate route is still
// admissible (e.g. every hop's contact still accepts the bundle at the
// current time). Callers in package router supply this, since only
// they hold the bundle and current time a re-admission test needs.
type Validator func(candidate *routestage.Stage) bool

// fingerprint is a sorted, comparable view of an exclusion set used as
// a cache key.
func fingerprint(excluded []sabrtypes.NodeID) string {
	sorted := append([]sabrtypes.NodeID(nil), excluded...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	buf := make([]byte, 0, len(sorted)*4)
	for _, id := range sorted {
		buf = append(buf, byte(id>>24), byte(id>>16), byte(id>>8), byte(id))
	}

	return string(buf)
}

type treeEntry struct {
	tree *pathfind.Output
	key  string
}

// TreeCache is a bounded FIFO of whole pathfinding trees, one per
// distinct exclusion set seen so far. It never grows past Capacity:
// inserting past capacity evicts the oldest entry.
type TreeCache struct {
	Capacity int
	entries  []*treeEntry
}

// NewTreeCache constructs a TreeCache holding at most capacity trees.
func NewTreeCache(capacity int) *TreeCache {
	return &TreeCache{Capacity: capacity}
}

// Store records tree as the cached result for the given exclusion set,
// replacing the entry already stored under that set if there is one;
// otherwise it appends, evicting the oldest entry if the cache is full.
func (tc *TreeCache) Store(tree *pathfind.Output, excluded []sabrtypes.NodeID) {
	key := fingerprint(excluded)
	for _, e := range tc.entries {
		if e.key == key {
			e.tree = tree

			return
		}
	}
	tc.entries = append(tc.entries, &treeEntry{tree: tree, key: key})
	if tc.Capacity > 0 && len(tc.entries) > tc.Capacity {
		tc.entries = tc.entries[len(tc.entries)-tc.Capacity:]
	}
}

// Select returns the destination stage from the most recently stored
// tree computed under the same exclusion set, if one reached dest and
// still passes validate. ok is false on a cache miss or a stale hit.
func (tc *TreeCache) Select(dest sabrtypes.NodeID, excluded []sabrtypes.NodeID, validate Validator) (*routestage.Stage, bool) {
	key := fingerprint(excluded)
	for i := len(tc.entries) - 1; i >= 0; i-- {
		e := tc.entries[i]
		if e.key != key {
			continue
		}
		labels, ok := e.tree.ByNode[dest]
		if !ok || len(labels) == 0 {
			return nil, false
		}
		candidate := labels[0]
		if candidate.Disabled || !validate(candidate) {
			return nil, false
		}

		return candidate, true
	}

	return nil, false
}

// Tree returns the most recently stored whole tree computed under the
// given exclusion set, for callers (multicast routing) that need the
// tree's source stage rather than a single destination's label.
func (tc *TreeCache) Tree(excluded []sabrtypes.NodeID) (*pathfind.Output, bool) {
	key := fingerprint(excluded)
	for i := len(tc.entries) - 1; i >= 0; i-- {
		e := tc.entries[i]
		if e.key == key {
			return e.tree, true
		}
	}

	return nil, false
}

// candidateList is one destination's remembered routes, oldest first.
type candidateList struct {
	stages []*routestage.Stage
}

// RoutingTable is a per-destination list of previously admitted routes,
// kept across calls so CGR/VolCgr can retry a route that worked before
// instead of re-running pathfinding from scratch every time.
type RoutingTable struct {
	byDest map[sabrtypes.NodeID]*candidateList
}

// NewRoutingTable constructs an empty RoutingTable.
func NewRoutingTable() *RoutingTable {
	return &RoutingTable{byDest: make(map[sabrtypes.NodeID]*candidateList)}
}

// Remember appends candidate to dest's candidate list.
func (rt *RoutingTable) Remember(dest sabrtypes.NodeID, candidate *routestage.Stage) {
	cl, ok := rt.byDest[dest]
	if !ok {
		cl = &candidateList{}
		rt.byDest[dest] = cl
	}
	cl.stages = append(cl.stages, candidate)
}

// Select returns the best remembered route for dest by dist among
// those that still pass validate and have not expired by now, evicting
// any entry that fails either check along the way. ok is false if no
// remembered route for dest currently qualifies.
func (rt *RoutingTable) Select(dest sabrtypes.NodeID, now sabrtypes.Date, dist routestage.Distance, validate Validator) (*routestage.Stage, bool) {
	cl, ok := rt.byDest[dest]
	if !ok {
		return nil, false
	}

	live := cl.stages[:0]
	var chosen *routestage.Stage
	for _, s := range cl.stages {
		if s.Disabled || s.Expiration <= now || !validate(s) {
			continue
		}
		live = append(live, s)
		if chosen == nil || dist.Compare(s, chosen) < 0 {
			chosen = s
		}
	}
	cl.stages = live

	return chosen, chosen != nil
}

// Forget discards every remembered route for dest, e.g. once the
// destination's bundle has been delivered or has expired.
func (rt *RoutingTable) Forget(dest sabrtypes.NodeID) {
	delete(rt.byDest, dest)
}
