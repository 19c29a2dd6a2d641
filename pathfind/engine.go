package pathfind

import (
	"container/heap"

	"github.com/katalvlaran/sabr-route/bundle"
	"github.com/katalvlaran/sabr-route/multigraph"
	"github.com/katalvlaran/sabr-route/routestage"
	"github.com/katalvlaran/sabr-route/sabrtypes"
)

// Run executes one pathfinding call: a Dijkstra-style search over mg
// from opts.Source, admitting labels per opts.Parenting and stopping
// either at opts.Destination (SinglePath) or once the heap drains
// (Tree). It resets per-call scratch state on mg before starting,
// then re-marks opts.Suppressed as suppressed (ResetCall clears the
// flag on every contact, since it has no notion of which destination's
// call is running), and leaves it populated (work areas, lazy-prune
// cursors advanced) when it returns.
func Run(mg *multigraph.Multigraph, b *bundle.Bundle, opts Options) (*Output, error) {
	if err := opts.validate(mg, b); err != nil {
		return nil, err
	}

	mg.ResetCall()
	for _, c := range opts.Suppressed {
		c.Suppressed = true
	}

	source := routestage.NewSource(opts.Source, opts.CurrentTime)

	pq := &stageHeap{dist: opts.Distance}
	heap.Init(pq)
	heap.Push(pq, source)

	bestByNode := make(map[sabrtypes.NodeID]*routestage.Stage)
	paretoByNode := make(map[sabrtypes.NodeID][]*routestage.Stage)
	bestByNode[opts.Source] = source

	out := &Output{
		Source: source,
		ByNode: make(map[sabrtypes.NodeID][]*routestage.Stage),
	}

	for pq.Len() > 0 {
		popped := heap.Pop(pq).(*routestage.Stage)
		if popped.Disabled {
			continue
		}

		out.ByNode[popped.To] = append(out.ByNode[popped.To], popped)

		if opts.Mode == SinglePath && popped.To == opts.Destination {
			out.Destination = popped

			return out, nil
		}

		txNode := mg.Node(popped.To)
		if txNode == nil {
			continue
		}

		for _, rv := range mg.Receivers(popped.To) {
			rxNode := mg.Node(rv.RxNode())
			if rxNode == nil || (opts.WithExclusions && rxNode.Excluded) {
				continue
			}

			candidate, ok := tryMakeHop(opts.Distance, popped, txNode, rxNode, rv, b)
			if !ok {
				continue
			}

			admitted := admit(opts, opts.Distance, candidate, bestByNode, paretoByNode)
			if admitted {
				heap.Push(pq, candidate)
			}
		}
	}

	if opts.Mode == SinglePath {
		out.Destination = nil
	}

	return out, nil
}

// admit applies opts.Parenting's admission rule to candidate, mutating
// bestByNode/paretoByNode and disabling any superseded stage. It
// reports whether candidate survived and should be pushed onto the
// heap for further relaxation.
func admit(
	opts Options,
	dist routestage.Distance,
	candidate *routestage.Stage,
	bestByNode map[sabrtypes.NodeID]*routestage.Stage,
	paretoByNode map[sabrtypes.NodeID][]*routestage.Stage,
) bool {
	switch opts.Parenting {
	case NodeParenting:
		existing, ok := bestByNode[candidate.To]
		if ok && dist.Compare(candidate, existing) >= 0 {
			return false
		}
		if ok {
			existing.Disabled = true
		}
		bestByNode[candidate.To] = candidate

		return true

	case ContactParenting:
		existing, _ := candidate.Via.Contact.WorkArea.(*routestage.Stage)
		if existing != nil && dist.Compare(candidate, existing) >= 0 {
			return false
		}
		if existing != nil {
			existing.Disabled = true
		}
		candidate.Via.Contact.WorkArea = candidate

		return true

	case Hybrid:
		set, inserted := tryInsert(dist, paretoByNode[candidate.To], candidate)
		if !inserted {
			return false
		}
		paretoByNode[candidate.To] = applyHybridCap(set)

		return true

	case MPT:
		set, inserted := tryInsert(dist, paretoByNode[candidate.To], candidate)
		if !inserted {
			return false
		}
		paretoByNode[candidate.To] = set

		return true

	default:
		return false
	}
}
