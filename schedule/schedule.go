// Package schedule replays an already-found route against the live
// contact multigraph, either as a non-mutating probe (dry run) or as a
// committing transmission (schedule). Pathfinding only ever predicts
// that a route works; this package is what actually spends the
// volume/queue-delay budget the prediction was based on.
//
// Unicast replay walks a single Via chain. Multicast replay walks the
// merged forwarding tree spec §4.7 describes: once pathfinding has
// called routestage.InitRouteTo for every destination, each reachable
// node's NextForDestination map tells a breadth-first walk exactly
// which single next hop serves any given destination, so a contact
// shared by several destinations is only charged once.
package schedule

import (
	"fmt"

	"github.com/katalvlaran/sabr-route/bundle"
	"github.com/katalvlaran/sabr-route/multigraph"
	"github.com/katalvlaran/sabr-route/routestage"
	"github.com/katalvlaran/sabr-route/sabrtypes"
)

// chainFromSource returns route's Via chain in source-to-destination
// order (InitRouteTo / the pathfinding Via pointers run the other way).
func chainFromSource(route *routestage.Stage) []*routestage.Stage {
	var reversed []*routestage.Stage
	for s := route; s.Via != nil; s = s.Via.Parent {
		reversed = append(reversed, s)
	}
	chain := make([]*routestage.Stage, len(reversed))
	for i, s := range reversed {
		chain[len(reversed)-1-i] = s
	}

	return chain
}

// DryRunUnicastPath replays route's hops as pure admission tests,
// without mutating any contact. It reports the final arrival time and
// whether every hop still admits the bundle.
func DryRunUnicastPath(b *bundle.Bundle, route *routestage.Stage, startAt sabrtypes.Date) (sabrtypes.Date, bool) {
	at := startAt
	for _, s := range chainFromSource(route) {
		c := s.Via.Contact
		hop, ok := c.Manager.DryRunTx(c.Info, at, s.EffectiveBundle(b))
		if !ok {
			return 0, false
		}
		at = hop.Arrival
	}

	return at, true
}

// DryRunUnicastPathWithExclusions is DryRunUnicastPath plus a check
// that no node the route passes through (as either tx or rx) appears
// in excluded.
func DryRunUnicastPathWithExclusions(mg *multigraph.Multigraph, b *bundle.Bundle, route *routestage.Stage, startAt sabrtypes.Date, excluded []sabrtypes.NodeID) (sabrtypes.Date, bool) {
	excludedSet := make(map[sabrtypes.NodeID]struct{}, len(excluded))
	for _, id := range excluded {
		excludedSet[id] = struct{}{}
	}
	for _, s := range chainFromSource(route) {
		if _, bad := excludedSet[s.Via.Tx.ID]; bad {
			return 0, false
		}
		if _, bad := excludedSet[s.Via.Rx.ID]; bad {
			return 0, false
		}
	}

	return DryRunUnicastPath(b, route, startAt)
}

// ScheduleUnicastPath commits route's hops in source-to-destination
// order. Callers must only call this immediately after a
// DryRunUnicastPath (or a route fresh from pathfind.Run) succeeded with
// no intervening commit against any contact on the path; under that
// contract a hop's ScheduleTx cannot fail, since its manager is a
// deterministic function of the same (info, at, bundle) the dry run
// just accepted. A failure here means that contract was violated, so
// it panics rather than return a partially-committed route.
func ScheduleUnicastPath(b *bundle.Bundle, route *routestage.Stage, startAt sabrtypes.Date) sabrtypes.Date {
	at := startAt
	for _, s := range chainFromSource(route) {
		c := s.Via.Contact
		hop, ok := c.Manager.ScheduleTx(c.Info, at, s.EffectiveBundle(b))
		if !ok {
			panic(fmt.Sprintf("schedule: commit failed at contact %d->%d, a hop dry-run already admitted", s.Via.Tx.ID, s.Via.Rx.ID))
		}
		at = hop.Arrival
	}

	return at
}

// multicastStageFor walks source's NextForDestination chain to the
// stage at which dest is reached, or returns ok=false if dest has no
// recorded route from source.
func multicastStageFor(source *routestage.Stage, dest sabrtypes.NodeID) (*routestage.Stage, bool) {
	s := source
	for s.To != dest {
		next, ok := s.NextForDestination[dest]
		if !ok {
			return nil, false
		}
		s = next
	}

	return s, true
}

// DryRunMulticast probes, for every destination, whether its recorded
// route from source still admits the bundle, without mutating any
// contact. It returns the arrival time per reachable destination;
// a destination absent from the result is currently unreachable.
func DryRunMulticast(b *bundle.Bundle, source *routestage.Stage, destinations []sabrtypes.NodeID, startAt sabrtypes.Date) map[sabrtypes.NodeID]sabrtypes.Date {
	arrivals := make(map[sabrtypes.NodeID]sabrtypes.Date, len(destinations))
	for _, dest := range destinations {
		stage, ok := multicastStageFor(source, dest)
		if !ok {
			continue
		}
		if at, ok := DryRunUnicastPath(b, stage, startAt); ok {
			arrivals[dest] = at
		}
	}

	return arrivals
}

// ScheduleMulticast commits the merged forwarding tree reaching
// destinations from source: a contact shared by several destinations'
// routes is committed exactly once, at the first destination whose
// walk reaches it. As with ScheduleUnicastPath, a commit failure on a
// hop the corresponding dry run just admitted is a programmer error
// and panics.
func ScheduleMulticast(b *bundle.Bundle, source *routestage.Stage, destinations []sabrtypes.NodeID, startAt sabrtypes.Date) map[sabrtypes.NodeID]sabrtypes.Date {
	arrivalAt := map[*routestage.Stage]sabrtypes.Date{source: startAt}
	queue := []*routestage.Stage{source}

	commitHop := func(cur, next *routestage.Stage) {
		c := next.Via.Contact
		at := arrivalAt[cur]
		hop, ok := c.Manager.ScheduleTx(c.Info, at, next.EffectiveBundle(b))
		if !ok {
			panic(fmt.Sprintf("schedule: multicast commit failed at contact %d->%d, a hop dry-run already admitted", next.Via.Tx.ID, next.Via.Rx.ID))
		}
		arrivalAt[next] = hop.Arrival
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, dest := range destinations {
			next, ok := cur.NextForDestination[dest]
			if !ok {
				continue
			}
			if _, done := arrivalAt[next]; done {
				continue
			}
			commitHop(cur, next)
			queue = append(queue, next)
		}
	}

	delivered := make(map[sabrtypes.NodeID]sabrtypes.Date, len(destinations))
	for _, dest := range destinations {
		stage, ok := multicastStageFor(source, dest)
		if !ok {
			continue
		}
		if at, ok := arrivalAt[stage]; ok {
			delivered[dest] = at
		}
	}

	return delivered
}
