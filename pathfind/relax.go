package pathfind

import (
	"github.com/katalvlaran/sabr-route/bundle"
	"github.com/katalvlaran/sabr-route/contact"
	"github.com/katalvlaran/sabr-route/node"
	"github.com/katalvlaran/sabr-route/routestage"
	"github.com/katalvlaran/sabr-route/sabrtypes"
)

// contactSource is the subset of multigraph's receiverView a relaxation
// needs: a start-time-sorted contact list behind a lazy-pruning cursor.
// Declared locally so this package never has to name the unexported
// receiverView type multigraph.Multigraph.Receivers returns; any value
// satisfying this method set (receiverView does, by value) works.
type contactSource interface {
	RxNode() sabrtypes.NodeID
	LazyPruneAndGetFirstIdx(currentTime sabrtypes.Date) (int, bool)
	ContactAt(i int) (*contact.Contact, bool)
	Len() int
}

// tryMakeHop relaxes one (tx, rx) receiver from parent: it runs the
// optional node.Processor hook once, then scans rx's start-sorted,
// not-yet-ended contacts for the single earliest-arriving admissible
// hop (spec §4.4 steps 1-5). Scanning stops as soon as a contact's
// start time exceeds the best arrival found so far, since no
// later-starting contact can beat it under either Distance variant.
func tryMakeHop(
	dist routestage.Distance,
	parent *routestage.Stage,
	txNode, rxNode *node.Node,
	cs contactSource,
	original *bundle.Bundle,
) (*routestage.Stage, bool) {
	effBundle := parent.EffectiveBundle(original)
	sendingTime := parent.At
	procBundle := effBundle
	if proc, ok := txNode.Manager.(node.Processor); ok {
		sendingTime, procBundle = proc.DryRunProcess(parent.At, effBundle)
	}

	idx, ok := cs.LazyPruneAndGetFirstIdx(sendingTime)
	if !ok {
		return nil, false
	}

	var best *routestage.Stage
	for i := idx; i < cs.Len(); i++ {
		c, ok := cs.ContactAt(i)
		if !ok {
			break
		}
		if c.Suppressed {
			continue
		}
		if best != nil && c.Info.Start > best.At {
			break
		}

		hop, ok := c.Manager.DryRunTx(c.Info, sendingTime, procBundle)
		if !ok {
			continue
		}
		if admit, ok := txNode.Manager.(node.TxAdmitter); ok {
			if !admit.DryRunTx(parent.At, c.Info.Start, c.Info.End, procBundle) {
				continue
			}
		}
		if admit, ok := rxNode.Manager.(node.RxAdmitter); ok {
			if !admit.DryRunRx(c.Info.Start, c.Info.End, procBundle) {
				continue
			}
		}

		candidate := &routestage.Stage{
			To:              rxNode.ID,
			At:              hop.Arrival,
			Hops:            parent.Hops + 1,
			CumulativeDelay: parent.CumulativeDelay + hop.Delay,
			Expiration:      minDate(parent.Expiration, hop.Expiration-sabrtypes.Date(parent.CumulativeDelay)),
			Via: &routestage.Via{
				Parent:  parent,
				Contact: c,
				Tx:      txNode,
				Rx:      rxNode,
			},
		}
		if procBundle != effBundle {
			candidate.Bundle = procBundle
		}

		if best == nil || dist.Compare(candidate, best) < 0 {
			best = candidate
		}
	}

	return best, best != nil
}

func minDate(a, b sabrtypes.Date) sabrtypes.Date {
	if a < b {
		return a
	}

	return b
}
