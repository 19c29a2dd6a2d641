// Package bundle defines the unit of transfer routed by the engine: a
// Bundle with a source, one or more destinations, size, priority and
// expiration.
package bundle

import (
	"errors"

	"github.com/katalvlaran/sabr-route/sabrtypes"
)

// Sentinel errors for bundle construction.
var (
	// ErrNoDestinations indicates a bundle was constructed with an empty
	// destination list.
	ErrNoDestinations = errors.New("bundle: at least one destination is required")

	// ErrDuplicateDestination indicates the same node id appeared twice
	// in a bundle's destination list.
	ErrDuplicateDestination = errors.New("bundle: duplicate destination id")

	// ErrExpirationBeforeCreation indicates Expiration < CreationTime.
	ErrExpirationBeforeCreation = errors.New("bundle: expiration precedes creation time")
)

// Bundle is the transfer unit the routing engine forwards. It is
// immutable during one routing call, except where node processing
// (contactmgr/node hooks) mutates a per-stage Clone.
type Bundle struct {
	// Source is the originating node.
	Source sabrtypes.NodeID

	// Destinations lists the unique node ids this bundle must reach.
	// A single-element list is a unicast bundle; more than one is
	// multicast.
	Destinations []sabrtypes.NodeID

	// Priority is the bundle's forwarding priority; higher values win
	// contention for shared contact capacity.
	Priority sabrtypes.Priority

	// Size is the bundle's volume, charged against contact capacity.
	Size sabrtypes.Volume

	// CreationTime is when the bundle was created; Expiration must not
	// precede it.
	CreationTime sabrtypes.Date

	// Expiration is the absolute time after which the bundle is no
	// longer useful to deliver.
	Expiration sabrtypes.Date
}

// New validates and constructs a Bundle. Destinations must be non-empty
// and unique; Expiration must be >= CreationTime.
func New(source sabrtypes.NodeID, destinations []sabrtypes.NodeID, priority sabrtypes.Priority, size sabrtypes.Volume, creation, expiration sabrtypes.Date) (*Bundle, error) {
	if len(destinations) == 0 {
		return nil, ErrNoDestinations
	}
	seen := make(map[sabrtypes.NodeID]struct{}, len(destinations))
	for _, d := range destinations {
		if _, dup := seen[d]; dup {
			return nil, ErrDuplicateDestination
		}
		seen[d] = struct{}{}
	}
	if expiration < creation {
		return nil, ErrExpirationBeforeCreation
	}

	dsts := make([]sabrtypes.NodeID, len(destinations))
	copy(dsts, destinations)

	return &Bundle{
		Source:       source,
		Destinations: dsts,
		Priority:     priority,
		Size:         size,
		CreationTime: creation,
		Expiration:   expiration,
	}, nil
}

// Expired reports whether at is strictly after the bundle's expiration.
func (b *Bundle) Expired(at sabrtypes.Date) bool {
	return at > b.Expiration
}

// Clone returns a shallow copy of b with a new Destinations backing
// array. Pathfinding takes a fresh Clone per hop so that an enabled
// NodeManager.Processor hook can mutate Size/Priority for that hop
// without affecting the original bundle or sibling hops explored from
// the same label.
func (b *Bundle) Clone() *Bundle {
	dsts := make([]sabrtypes.NodeID, len(b.Destinations))
	copy(dsts, b.Destinations)
	clone := *b
	clone.Destinations = dsts

	return &clone
}
