// Package node defines routing endpoints (Node) and the optional
// NodeManager capability hooks a node can implement: processing-time
// inflation, transmit-side retention policy, and receive-side admission.
//
// Each hook is optional by design (spec §4.2, "conditionally compiled by
// capability flag"); in this Go rendition that becomes a set of small
// capability interfaces that pathfind checks by type assertion on each
// hop it relaxes.
package node

import (
	"errors"

	"github.com/katalvlaran/sabr-route/bundle"
	"github.com/katalvlaran/sabr-route/sabrtypes"
)

// ErrDuplicateID indicates two nodes were constructed with the same id.
var ErrDuplicateID = errors.New("node: duplicate node id")

// Processor is the optional node-processing hook: it may delay the
// earliest send time and/or mutate the bundle (e.g. compression changes
// Size) before it is offered to any outgoing contact.
type Processor interface {
	DryRunProcess(at sabrtypes.Date, b *bundle.Bundle) (sabrtypes.Date, *bundle.Bundle)
	ScheduleProcess(at sabrtypes.Date, b *bundle.Bundle) (sabrtypes.Date, *bundle.Bundle)
}

// TxAdmitter is the optional transmit-side admission hook, e.g. a
// retention policy that refuses to hold a bundle past a maximum wait.
type TxAdmitter interface {
	DryRunTx(waitingSince, start, end sabrtypes.Date, b *bundle.Bundle) bool
	ScheduleTx(waitingSince, start, end sabrtypes.Date, b *bundle.Bundle) bool
}

// RxAdmitter is the optional receive-side admission hook.
type RxAdmitter interface {
	DryRunRx(start, end sabrtypes.Date, b *bundle.Bundle) bool
	ScheduleRx(start, end sabrtypes.Date, b *bundle.Bundle) bool
}

// Node is a routing endpoint owned by a Multigraph and shared (by
// pointer) with every RouteStage.Via that reaches it.
type Node struct {
	ID   sabrtypes.NodeID
	Name string

	// Excluded marks the node as unavailable to exclusion-aware
	// pathfinding variants (set via Multigraph.PrepareExclusionsSorted).
	Excluded bool

	// Manager holds zero or more of Processor, TxAdmitter, RxAdmitter.
	// A nil Manager means none of the hooks are enabled for this node.
	Manager any
}

// New constructs a Node. mgr may be nil.
func New(id sabrtypes.NodeID, name string, mgr any) *Node {
	return &Node{ID: id, Name: name, Manager: mgr}
}
