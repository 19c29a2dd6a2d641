// Package multigraph builds the time-expanded contact multigraph
// pathfinding runs over: a sender-indexed adjacency where each sender
// lists its receivers, and each receiver owns a start-time-sorted
// vector of contacts plus a lazy-pruning cursor.
//
// Adapted from the teacher's core.Graph (vertices/edges keyed by
// string id, guarded by RWMutex): this package keeps the same
// "validate once at construction, expose read-only query methods"
// shape, but the underlying representation is the sender-indexed
// array-of-receivers structure spec §3/§4.3 specifies rather than a
// generic vertex/edge map, since a routing multigraph's access pattern
// (iterate a sender's receivers, then scan one receiver's time-sorted
// contacts) is fixed and known at construction time.
package multigraph

import (
	"errors"
	"sort"

	"github.com/katalvlaran/sabr-route/contact"
	"github.com/katalvlaran/sabr-route/node"
	"github.com/katalvlaran/sabr-route/sabrtypes"
)

// Sentinel errors for Multigraph construction.
var (
	// ErrNonContiguousIDs indicates the supplied nodes do not form the
	// contiguous range [0, N).
	ErrNonContiguousIDs = errors.New("multigraph: node ids must form 0..N-1 exactly")

	// ErrDuplicateName indicates two nodes share a Name.
	ErrDuplicateName = errors.New("multigraph: duplicate node name")

	// ErrUnknownEndpoint indicates a contact references a node id outside
	// the supplied node set.
	ErrUnknownEndpoint = errors.New("multigraph: contact references unknown node")

	// ErrManagerInit indicates a contact's Manager.TryInit returned false.
	ErrManagerInit = errors.New("multigraph: contact manager failed TryInit")
)

// receiver holds every contact from one fixed sender to one fixed
// receiver, sorted by start time, plus the lazy-prune cursor shared
// across a routing call.
type receiver struct {
	rx       sabrtypes.NodeID
	contacts []*contact.Contact
	next     int
}

// Multigraph is the time-expanded contact graph pathfinding runs over.
type Multigraph struct {
	nodes []*node.Node // indexed directly by NodeID
	// senders[tx] is tx's receivers, each a distinct rx with its own
	// time-sorted contact list.
	senders [][]*receiver
}

// Build validates nodes and contacts and constructs a Multigraph.
// Nodes must already carry contiguous ids [0, N) and unique names.
// Every contact's Manager.TryInit is called exactly once; a false
// return rejects the whole build (spec §7.2, initialization error).
func Build(nodes []*node.Node, contacts []*contact.Contact) (*Multigraph, error) {
	n := len(nodes)
	byID := make([]*node.Node, n)
	names := make(map[string]struct{}, n)
	for _, nd := range nodes {
		if int(nd.ID) < 0 || int(nd.ID) >= n || byID[nd.ID] != nil {
			return nil, ErrNonContiguousIDs
		}
		if _, dup := names[nd.Name]; dup {
			return nil, ErrDuplicateName
		}
		names[nd.Name] = struct{}{}
		byID[nd.ID] = nd
	}
	for _, nd := range byID {
		if nd == nil {
			return nil, ErrNonContiguousIDs
		}
	}

	mg := &Multigraph{
		nodes:   byID,
		senders: make([][]*receiver, n),
	}

	// Group contacts by (tx, rx), validating endpoints and manager init.
	byPair := make(map[[2]sabrtypes.NodeID]*receiver)
	for _, c := range contacts {
		tx, rx := c.Info.Tx, c.Info.Rx
		if int(tx) < 0 || int(tx) >= n || int(rx) < 0 || int(rx) >= n {
			return nil, ErrUnknownEndpoint
		}
		if !c.Manager.TryInit(c.Info) {
			return nil, ErrManagerInit
		}
		key := [2]sabrtypes.NodeID{tx, rx}
		r, ok := byPair[key]
		if !ok {
			r = &receiver{rx: rx}
			byPair[key] = r
			mg.senders[tx] = append(mg.senders[tx], r)
		}
		r.contacts = append(r.contacts, c)
	}

	for _, recvs := range mg.senders {
		for _, r := range recvs {
			sort.Slice(r.contacts, func(i, j int) bool {
				return r.contacts[i].Info.Start < r.contacts[j].Info.Start
			})
		}
	}

	return mg, nil
}

// NodeCount returns the number of nodes in the graph.
func (mg *Multigraph) NodeCount() int { return len(mg.nodes) }

// Node returns the node with the given id, or nil if out of range.
func (mg *Multigraph) Node(id sabrtypes.NodeID) *node.Node {
	if int(id) < 0 || int(id) >= len(mg.nodes) {
		return nil
	}

	return mg.nodes[id]
}

// Receivers returns the receiver set of a sender node, in no particular
// order. Each entry is one distinct rx reachable from tx.
func (mg *Multigraph) Receivers(tx sabrtypes.NodeID) []receiverView {
	recvs := mg.senders[tx]
	out := make([]receiverView, len(recvs))
	for i, r := range recvs {
		out[i] = receiverView{mg: mg, r: r}
	}

	return out
}

// receiverView is a read/cursor handle onto one (tx, rx) contact list,
// returned by Receivers so that callers outside this package can drive
// lazy pruning and contact iteration without reaching into unexported
// fields.
type receiverView struct {
	mg *Multigraph
	r  *receiver
}

// RxNode returns the receiving node id this view covers.
func (rv receiverView) RxNode() sabrtypes.NodeID { return rv.r.rx }

// LazyPruneAndGetFirstIdx advances the cursor past contacts that have
// already ended by currentTime and returns the index of the first
// still-viable contact, or ok=false if none remain. The cursor never
// moves backward across calls within or across routing calls, since
// currentTime is expected to be monotonically non-decreasing.
func (rv receiverView) LazyPruneAndGetFirstIdx(currentTime sabrtypes.Date) (idx int, ok bool) {
	cs := rv.r.contacts
	for rv.r.next < len(cs) && cs[rv.r.next].Info.End <= currentTime {
		rv.r.next++
	}
	if rv.r.next >= len(cs) {
		return 0, false
	}

	return rv.r.next, true
}

// ContactAt returns the i-th contact in this receiver's time-sorted
// list, and ok=false if i is out of range.
func (rv receiverView) ContactAt(i int) (*contact.Contact, bool) {
	if i < 0 || i >= len(rv.r.contacts) {
		return nil, false
	}

	return rv.r.contacts[i], true
}

// Len returns the number of contacts from tx to this receiver.
func (rv receiverView) Len() int { return len(rv.r.contacts) }

// PrepareExclusionsSorted sets Excluded=true on every node whose id
// appears in sortedIDs (which must be sorted ascending) and false on
// every other node.
func (mg *Multigraph) PrepareExclusionsSorted(sortedIDs []sabrtypes.NodeID) {
	excluded := make(map[sabrtypes.NodeID]struct{}, len(sortedIDs))
	for _, id := range sortedIDs {
		excluded[id] = struct{}{}
	}
	for _, nd := range mg.nodes {
		_, nd.Excluded = excluded[nd.ID]
	}
}

// ResetCall clears all per-call scratch state: contact work areas and
// suppression flags. It does not reset receiver cursors, which are
// allowed (and expected) to persist monotonically across calls as
// currentTime advances.
func (mg *Multigraph) ResetCall() {
	for _, recvs := range mg.senders {
		for _, r := range recvs {
			for _, c := range r.contacts {
				c.ResetWorkArea()
				c.Suppressed = false
			}
		}
	}
}
