// Package suppress implements CGR's limiting-contact selection (spec
// §4.5/§5): identifying the single contact on a route whose exhaustion
// would most tightly constrain the next call to route the same
// destination, so that contact can be temporarily excluded to surface
// an alternative route on a later attempt.
package suppress

import (
	"github.com/katalvlaran/sabr-route/contact"
	"github.com/katalvlaran/sabr-route/routestage"
	"github.com/katalvlaran/sabr-route/sabrtypes"
)

// Strategy selects one limiting contact from a destination's admitted
// route, or ok=false if the route has no contacts to suppress (the
// zero-hop source itself).
type Strategy interface {
	Limiting(dest *routestage.Stage) (c *contact.Contact, ok bool)
}

// FirstEnding picks the contact on the route whose window closes
// soonest: the earliest structural constraint, independent of how much
// volume it has left.
type FirstEnding struct{}

// Limiting implements Strategy.
func (FirstEnding) Limiting(dest *routestage.Stage) (*contact.Contact, bool) {
	var (
		best   *contact.Contact
		bestAt sabrtypes.Date
	)
	for s := dest; s.Via != nil; s = s.Via.Parent {
		c := s.Via.Contact
		if best == nil || c.Info.End < bestAt {
			best, bestAt = c, c.Info.End
		}
	}

	return best, best != nil
}

// FirstDepleted picks the contact on the route with the least residual
// volume, among those whose Manager reports an OriginalVolume. Managers
// that do not implement contact.OriginalVolumer are skipped; if none
// qualify, Limiting falls back to FirstEnding's choice.
type FirstDepleted struct {
	// Booked reports how much volume a contact has already booked, so
	// residual = OriginalVolume() - Booked(c). Supplied by the caller
	// since Manager does not expose booked volume directly.
	Booked func(c *contact.Contact) sabrtypes.Volume
}

// Limiting implements Strategy.
func (f FirstDepleted) Limiting(dest *routestage.Stage) (*contact.Contact, bool) {
	var (
		best      *contact.Contact
		bestSpare sabrtypes.Volume
		found     bool
	)
	for s := dest; s.Via != nil; s = s.Via.Parent {
		c := s.Via.Contact
		volumer, ok := c.Manager.(contact.OriginalVolumer)
		if !ok {
			continue
		}
		spare := volumer.OriginalVolume() - f.Booked(c)
		if !found || spare < bestSpare {
			best, bestSpare, found = c, spare, true
		}
	}
	if found {
		return best, true
	}

	return FirstEnding{}.Limiting(dest)
}

// Set tracks the contacts currently suppressed for one destination
// across successive CGR calls. Suppression is cleared contact-by-
// contact once its window has ended, since an ended contact can no
// longer appear in any future route regardless of suppression.
type Set struct {
	contacts []*contact.Contact
}

// Add marks c suppressed and records it for later expiry bookkeeping.
func (s *Set) Add(c *contact.Contact) {
	c.Suppressed = true
	s.contacts = append(s.contacts, c)
}

// DropExpired clears suppression on, and forgets, every tracked contact
// whose window has ended by now.
func (s *Set) DropExpired(now sabrtypes.Date) {
	live := s.contacts[:0]
	for _, c := range s.contacts {
		if c.Info.End <= now {
			c.Suppressed = false

			continue
		}
		live = append(live, c)
	}
	s.contacts = live
}

// Len reports how many contacts are currently suppressed.
func (s *Set) Len() int { return len(s.contacts) }

// Contacts returns the contacts currently tracked as suppressed for
// this destination. Multigraph.ResetCall clears every contact's
// Suppressed flag at the start of each pathfinding call, so a caller
// that wants this destination's suppression state to carry over into
// the next search must hand these back to pathfind.Options.Suppressed
// so it can be re-marked after the reset.
func (s *Set) Contacts() []*contact.Contact { return s.contacts }
