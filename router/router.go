// Package router implements the three routing strategies spec §5
// names: SPSN (whole-tree caching with a unicast volume guard), CGR
// (per-destination route caching plus limiting-contact suppression to
// surface alternatives) and VolCgr (per-destination route caching
// without suppression, always searching the full graph).
//
// All three share the same shape: consult a cache, fall back to
// pathfind.Run on a miss or a stale hit, and remember what they found.
// That shape is grounded in the teacher's own layering (dijkstra as the
// mechanism, a thin caller deciding when to invoke it); what changes
// per strategy is only the cache structure and what happens around a
// cache hit.
package router

import (
	"github.com/google/uuid"

	"github.com/katalvlaran/sabr-route/bundle"
	"github.com/katalvlaran/sabr-route/multigraph"
	"github.com/katalvlaran/sabr-route/pathfind"
	"github.com/katalvlaran/sabr-route/routestage"
	"github.com/katalvlaran/sabr-route/routestore"
	"github.com/katalvlaran/sabr-route/sabrtypes"
	"github.com/katalvlaran/sabr-route/schedule"
	"github.com/katalvlaran/sabr-route/suppress"
)

// RoutingOutput is the result of one routing call for one destination.
// Route is nil when the destination is currently unreachable; that is
// not an error. CallID tags the call for log/metrics correlation; it
// carries no routing meaning and is never used as a cache or map key.
type RoutingOutput struct {
	CallID      uuid.UUID
	Destination sabrtypes.NodeID
	Route       *routestage.Stage
}

// validatorFor builds a routestore.Validator that replays candidate
// via schedule.DryRunUnicastPath under the current bundle and time,
// without mutating any contact state, rejecting it outright if any hop
// traverses a currently suppressed contact (a route CGR is actively
// steering traffic away from must not be resurrected by the cache).
func validatorFor(b *bundle.Bundle, currentTime sabrtypes.Date) routestore.Validator {
	return func(candidate *routestage.Stage) bool {
		for s := candidate; s.Via != nil; s = s.Via.Parent {
			if s.Via.Contact.Suppressed {
				return false
			}
		}
		_, ok := schedule.DryRunUnicastPath(b, candidate, currentTime)

		return ok
	}
}

// SPSN caches the whole dry-run tree per exclusion set (spec §4.6's
// TreeCache) and, past a configured total committed volume per
// destination and priority, recomputes the route instead of reusing
// the cached one.
type SPSN struct {
	Cache     *routestore.TreeCache
	Distance  routestage.Distance
	Parenting pathfind.Parenting

	// MaxUnicastVolume is the unicast guard's threshold per
	// (destination, priority); zero means unbounded. Once the volume
	// committed for a key plus the next bundle's size exceeds it, Route
	// skips the cached tree and runs a fresh search; it does not refuse
	// the route or the commit. Route calls CommitVolume after each
	// successful commit to update the running total.
	MaxUnicastVolume sabrtypes.Volume
	committed        map[unicastKey]sabrtypes.Volume
}

type unicastKey struct {
	dest     sabrtypes.NodeID
	priority sabrtypes.Priority
}

// NewSPSN constructs an SPSN router with the given tree-cache capacity.
func NewSPSN(cacheCapacity int, dist routestage.Distance, parenting pathfind.Parenting) *SPSN {
	return &SPSN{
		Cache:     routestore.NewTreeCache(cacheCapacity),
		Distance:  dist,
		Parenting: parenting,
		committed: make(map[unicastKey]sabrtypes.Volume),
	}
}

// CommitVolume records size as committed against (dest, priority),
// feeding the unicast guard.
func (r *SPSN) CommitVolume(dest sabrtypes.NodeID, priority sabrtypes.Priority, size sabrtypes.Volume) {
	key := unicastKey{dest, priority}
	r.committed[key] += size
}

// mustAbort reports whether reusing a cached route for b would push
// (dest, b.Priority)'s cumulative committed volume past the guard.
func (r *SPSN) mustAbort(dest sabrtypes.NodeID, b *bundle.Bundle) bool {
	if r.MaxUnicastVolume <= 0 {
		return false
	}
	key := unicastKey{dest, b.Priority}

	return r.committed[key]+b.Size > r.MaxUnicastVolume
}

// Route finds a route to dest, preferring a cached tree over a fresh
// search when the cache holds one for the current exclusion set and
// the unicast guard does not force a recompute, then commits it via
// schedule.ScheduleUnicastPath and records the committed volume against
// the unicast guard.
func (r *SPSN) Route(mg *multigraph.Multigraph, b *bundle.Bundle, source, dest sabrtypes.NodeID, currentTime sabrtypes.Date, excluded []sabrtypes.NodeID) (*RoutingOutput, error) {
	validate := validatorFor(b, currentTime)
	if !r.mustAbort(dest, b) {
		if cached, ok := r.Cache.Select(dest, excluded, validate); ok {
			schedule.ScheduleUnicastPath(b, cached, currentTime)
			r.CommitVolume(dest, b.Priority, b.Size)

			return &RoutingOutput{CallID: uuid.New(), Destination: dest, Route: cached}, nil
		}
	}

	if len(excluded) > 0 {
		mg.PrepareExclusionsSorted(excluded)
	}
	out, err := pathfind.Run(mg, b, pathfind.Options{
		Source:         source,
		Destination:    dest,
		Distance:       r.Distance,
		Parenting:      r.Parenting,
		Mode:           pathfind.Tree,
		WithExclusions: len(excluded) > 0,
		CurrentTime:    currentTime,
	})
	if err != nil {
		return nil, err
	}
	r.Cache.Store(out, excluded)

	labels := out.ByNode[dest]
	if len(labels) == 0 {
		return &RoutingOutput{CallID: uuid.New(), Destination: dest}, nil
	}

	route := labels[0]
	if _, ok := schedule.DryRunUnicastPath(b, route, currentTime); !ok {
		return &RoutingOutput{CallID: uuid.New(), Destination: dest}, nil
	}
	schedule.ScheduleUnicastPath(b, route, currentTime)
	r.CommitVolume(dest, b.Priority, b.Size)

	return &RoutingOutput{CallID: uuid.New(), Destination: dest, Route: route}, nil
}

// MulticastOutput is the result of one SPSN multicast routing call: the
// arrival time scheduled for every destination the forwarding tree
// reached before its stage expired. A destination absent from
// Delivered was unreachable in the tree and was silently dropped, as
// spec §4.7 requires.
type MulticastOutput struct {
	CallID    uuid.UUID
	Delivered map[sabrtypes.NodeID]sabrtypes.Date
}

// initMulticastTree wires tree's NextForDestination chains for every
// destination it reached, via routestage.InitRouteTo, so schedule's
// breadth-first multicast walk can follow them from the source. A
// destination the tree never reached is simply left unwired.
func initMulticastTree(tree *pathfind.Output, destinations []sabrtypes.NodeID) {
	for _, dest := range destinations {
		labels, ok := tree.ByNode[dest]
		if !ok || len(labels) == 0 {
			continue
		}
		routestage.InitRouteTo(labels[0], dest)
	}
}

// RouteMulticast finds (or reuses) a tree from source and schedules
// delivery to every destination it reaches: a cache hit whose cached
// tree still dry-runs clean to every destination is committed
// directly; otherwise a fresh tree is computed, stored, and committed,
// silently dropping any destination the tree does not reach before its
// stage expires (spec §4.7).
func (r *SPSN) RouteMulticast(mg *multigraph.Multigraph, b *bundle.Bundle, source sabrtypes.NodeID, destinations []sabrtypes.NodeID, currentTime sabrtypes.Date, excluded []sabrtypes.NodeID) (*MulticastOutput, error) {
	if tree, ok := r.Cache.Tree(excluded); ok {
		initMulticastTree(tree, destinations)
		if arrivals := schedule.DryRunMulticast(b, tree.Source, destinations, currentTime); len(arrivals) == len(destinations) {
			delivered := schedule.ScheduleMulticast(b, tree.Source, destinations, currentTime)

			return &MulticastOutput{CallID: uuid.New(), Delivered: delivered}, nil
		}
	}

	if len(excluded) > 0 {
		mg.PrepareExclusionsSorted(excluded)
	}
	out, err := pathfind.Run(mg, b, pathfind.Options{
		Source:         source,
		Distance:       r.Distance,
		Parenting:      r.Parenting,
		Mode:           pathfind.Tree,
		WithExclusions: len(excluded) > 0,
		CurrentTime:    currentTime,
	})
	if err != nil {
		return nil, err
	}
	r.Cache.Store(out, excluded)
	initMulticastTree(out, destinations)

	delivered := schedule.ScheduleMulticast(b, out.Source, destinations, currentTime)

	return &MulticastOutput{CallID: uuid.New(), Delivered: delivered}, nil
}

// CGR caches the routes it finds per destination and, on each successful route,
// suppresses its limiting contact so a later call for the same
// destination surfaces an alternative (spec §4.5).
type CGR struct {
	Table     *routestore.RoutingTable
	Distance  routestage.Distance
	Parenting pathfind.Parenting
	Limiting  suppress.Strategy

	suppressed map[sabrtypes.NodeID]*suppress.Set
}

// NewCGR constructs a CGR router using limiting as its suppression
// strategy.
func NewCGR(dist routestage.Distance, parenting pathfind.Parenting, limiting suppress.Strategy) *CGR {
	return &CGR{
		Table:      routestore.NewRoutingTable(),
		Distance:   dist,
		Parenting:  parenting,
		Limiting:   limiting,
		suppressed: make(map[sabrtypes.NodeID]*suppress.Set),
	}
}

func (r *CGR) suppressSetFor(dest sabrtypes.NodeID) *suppress.Set {
	s, ok := r.suppressed[dest]
	if !ok {
		s = &suppress.Set{}
		r.suppressed[dest] = s
	}

	return s
}

// maxSuppressionRetries bounds CGR's dry-run-then-retry loop (spec
// §4.7 steps 2-3). Each failed retry permanently suppresses one more
// contact for the rest of this destination's suppression set, so the
// loop can retry at most this many times before giving up rather than
// spin if the limiting strategy ever stalls.
const maxSuppressionRetries = 32

// Route finds a route to dest, reusing a remembered one if it still
// validates; otherwise it repeatedly searches with the destination's
// suppressed contacts excluded, dry-runs the result under real
// constraints, and either commits it or suppresses its limiting
// contact and retries (spec §4.5/§4.7).
func (r *CGR) Route(mg *multigraph.Multigraph, b *bundle.Bundle, source, dest sabrtypes.NodeID, currentTime sabrtypes.Date) (*RoutingOutput, error) {
	sset := r.suppressSetFor(dest)
	sset.DropExpired(currentTime)

	validate := validatorFor(b, currentTime)
	if cached, ok := r.Table.Select(dest, currentTime, r.Distance, validate); ok {
		schedule.ScheduleUnicastPath(b, cached, currentTime)

		return &RoutingOutput{CallID: uuid.New(), Destination: dest, Route: cached}, nil
	}

	for attempt := 0; attempt < maxSuppressionRetries; attempt++ {
		out, err := pathfind.Run(mg, b, pathfind.Options{
			Source:      source,
			Destination: dest,
			Distance:    r.Distance,
			Parenting:   r.Parenting,
			Mode:        pathfind.SinglePath,
			CurrentTime: currentTime,
			Suppressed:  sset.Contacts(),
		})
		if err != nil {
			return nil, err
		}
		if out.Destination == nil {
			return &RoutingOutput{CallID: uuid.New(), Destination: dest}, nil
		}

		r.Table.Remember(dest, out.Destination)

		if _, ok := schedule.DryRunUnicastPath(b, out.Destination, currentTime); ok {
			schedule.ScheduleUnicastPath(b, out.Destination, currentTime)
			if c, ok := r.Limiting.Limiting(out.Destination); ok {
				sset.Add(c)
			}

			return &RoutingOutput{CallID: uuid.New(), Destination: dest, Route: out.Destination}, nil
		}

		// The shape-only search found a route that real constraints
		// reject; suppress its limiting contact and let the next
		// iteration route around it. No limiting contact means the
		// route cannot be narrowed further, so give up.
		c, ok := r.Limiting.Limiting(out.Destination)
		if !ok {
			return &RoutingOutput{CallID: uuid.New(), Destination: dest}, nil
		}
		sset.Add(c)
	}

	return &RoutingOutput{CallID: uuid.New(), Destination: dest}, nil
}

// VolCgr behaves like CGR but never suppresses contacts: every search
// considers the full graph, relying purely on the routing table to
// avoid recomputation and on volume-aware contact managers (EVL/SEG
// variants) to naturally spread load across parallel contacts.
type VolCgr struct {
	Table     *routestore.RoutingTable
	Distance  routestage.Distance
	Parenting pathfind.Parenting
}

// NewVolCgr constructs a VolCgr router.
func NewVolCgr(dist routestage.Distance, parenting pathfind.Parenting) *VolCgr {
	return &VolCgr{
		Table:     routestore.NewRoutingTable(),
		Distance:  dist,
		Parenting: parenting,
	}
}

// Route finds a route to dest, reusing a remembered one if it still
// validates; otherwise it searches the full (unsuppressed) graph.
func (r *VolCgr) Route(mg *multigraph.Multigraph, b *bundle.Bundle, source, dest sabrtypes.NodeID, currentTime sabrtypes.Date) (*RoutingOutput, error) {
	validate := validatorFor(b, currentTime)
	if cached, ok := r.Table.Select(dest, currentTime, r.Distance, validate); ok {
		schedule.ScheduleUnicastPath(b, cached, currentTime)

		return &RoutingOutput{CallID: uuid.New(), Destination: dest, Route: cached}, nil
	}

	out, err := pathfind.Run(mg, b, pathfind.Options{
		Source:      source,
		Destination: dest,
		Distance:    r.Distance,
		Parenting:   r.Parenting,
		Mode:        pathfind.SinglePath,
		CurrentTime: currentTime,
	})
	if err != nil {
		return nil, err
	}
	if out.Destination == nil {
		return &RoutingOutput{CallID: uuid.New(), Destination: dest}, nil
	}
	r.Table.Remember(dest, out.Destination)

	if _, ok := schedule.DryRunUnicastPath(b, out.Destination, currentTime); !ok {
		return &RoutingOutput{CallID: uuid.New(), Destination: dest}, nil
	}
	schedule.ScheduleUnicastPath(b, out.Destination, currentTime)

	return &RoutingOutput{CallID: uuid.New(), Destination: dest, Route: out.Destination}, nil
}
