// Package routestage defines the Dijkstra label used throughout
// pathfinding: Stage, its Via back-pointer, and the Distance strategy
// that orders labels and tests Pareto dominance between them.
package routestage

import (
	"github.com/katalvlaran/sabr-route/bundle"
	"github.com/katalvlaran/sabr-route/contact"
	"github.com/katalvlaran/sabr-route/node"
	"github.com/katalvlaran/sabr-route/sabrtypes"
)

// Via is the back-pointer a non-source Stage carries: the parent
// label, the contact traversed to reach this stage, and the tx/rx
// nodes of that hop.
type Via struct {
	Parent  *Stage
	Contact *contact.Contact
	Tx      *node.Node
	Rx      *node.Node
}

// Stage is one label in the time-expanded shortest-path search: the
// node it reaches, the earliest arrival time there, the back-pointer
// that produced it (nil for the source), and the bookkeeping needed to
// both rank it against competing labels and later replay the path.
type Stage struct {
	To              sabrtypes.NodeID
	At              sabrtypes.Date
	Via             *Via // nil for the source stage
	Hops            sabrtypes.HopCount
	CumulativeDelay sabrtypes.Duration
	Expiration      sabrtypes.Date

	// Disabled marks a stage superseded by a better label reaching the
	// same node (node-parenting) or the same contact (contact-parenting).
	// A disabled stage is never popped for relaxation, but existing
	// references to it (via other stages' Via.Parent) remain valid.
	Disabled bool

	// Bundle is the per-stage bundle copy produced by an enabled
	// node.Processor hook; nil when node processing is not in effect,
	// in which case the caller's original bundle is used unmodified.
	Bundle *bundle.Bundle

	// NextForDestination is populated top-down by InitRouteTo after
	// pathfinding completes, letting a committed traversal start at
	// the source and walk forward in O(hops) instead of replaying the
	// back-pointer chain per destination.
	NextForDestination map[sabrtypes.NodeID]*Stage
}

// NewSource constructs the initial label pathfinding starts from: at
// node `id`, already at `at`, with no predecessor, zero hops, zero
// cumulative delay and unconstrained expiration.
func NewSource(id sabrtypes.NodeID, at sabrtypes.Date) *Stage {
	return &Stage{
		To:         id,
		At:         at,
		Hops:       0,
		Expiration: sabrtypes.MaxDate,
	}
}

// EffectiveBundle returns the bundle this stage should use for
// downstream admission tests: its own per-stage copy if node
// processing produced one, otherwise the call's original bundle.
func (s *Stage) EffectiveBundle(original *bundle.Bundle) *bundle.Bundle {
	if s.Bundle != nil {
		return s.Bundle
	}

	return original
}

// InitRouteTo walks the back-pointer chain from a destination stage up
// to the source, setting each ancestor's NextForDestination[dest] to
// the immediate child stage on that chain. Called once per destination
// after a pathfinding run completes; idempotent if called again with
// the same (destStage, dest) pair.
func InitRouteTo(destStage *Stage, dest sabrtypes.NodeID) {
	cur := destStage
	for cur.Via != nil {
		parent := cur.Via.Parent
		if parent.NextForDestination == nil {
			parent.NextForDestination = make(map[sabrtypes.NodeID]*Stage)
		}
		parent.NextForDestination[dest] = cur
		cur = parent
	}
}
