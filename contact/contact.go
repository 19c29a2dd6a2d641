// Package contact defines a scheduled directed transmission opportunity
// (Info) and the Contact wrapper that attaches a resource-bookkeeping
// Manager, a pathfinding work area and a suppression flag to it.
//
// The concrete resource models (EVL, QD, ETO, SEG and their priority and
// budgeted variants) live in contactmgr, which implements the Manager
// interface declared here; this package only knows the contract, not
// the arithmetic behind it.
package contact

import (
	"errors"

	"github.com/katalvlaran/sabr-route/bundle"
	"github.com/katalvlaran/sabr-route/sabrtypes"
)

// Sentinel errors for Info construction.
var (
	// ErrBadWindow indicates Start is not strictly before End.
	ErrBadWindow = errors.New("contact: start must be strictly before end")

	// ErrSelfLoop indicates Tx == Rx.
	ErrSelfLoop = errors.New("contact: tx and rx must differ")
)

// Info is the scheduled-window identity of a contact: who transmits to
// whom, and during what absolute time window. It carries no resource
// model; that lives on the owning Contact's Manager.
type Info struct {
	Tx, Rx     sabrtypes.NodeID
	Start, End sabrtypes.Date
}

// NewInfo validates and constructs an Info. Start must be strictly
// before End, and Tx must differ from Rx.
func NewInfo(tx, rx sabrtypes.NodeID, start, end sabrtypes.Date) (Info, error) {
	if start >= end {
		return Info{}, ErrBadWindow
	}
	if tx == rx {
		return Info{}, ErrSelfLoop
	}

	return Info{Tx: tx, Rx: rx, Start: start, End: end}, nil
}

// TxHop is the result of a successful (dry-run or committed) admission
// test against a single contact: when transmission starts and ends,
// the one-way delay applied, the contact's hard expiration bound, and
// the resulting arrival time at the receiving node.
type TxHop struct {
	TxStart    sabrtypes.Date
	TxEnd      sabrtypes.Date
	Delay      sabrtypes.Duration
	Expiration sabrtypes.Date // == owning contact's Info.End
	Arrival    sabrtypes.Date // == TxEnd + Delay
}

// Manager abstracts per-contact resource bookkeeping (spec §4.1). All
// operations are pure functions of (info, at, bundle) except
// ScheduleTx, which commits the booking it predicts.
type Manager interface {
	// TryInit validates the manager's configuration against info (e.g.
	// non-negative rate/delay, segments tiling [info.Start, info.End])
	// and precomputes derived quantities. Called once after
	// construction; a false return rejects the contact.
	TryInit(info Info) bool

	// DryRunTx returns the hop the bundle would take if transmitted
	// starting no earlier than at, without mutating any state. ok is
	// false if the bundle does not fit the contact's remaining window
	// or volume under this manager's model.
	DryRunTx(info Info, at sabrtypes.Date, b *bundle.Bundle) (hop TxHop, ok bool)

	// ScheduleTx performs the same admission test as DryRunTx and, on
	// success, commits the booking (decrements residual volume and/or
	// extends queue delay).
	ScheduleTx(info Info, at sabrtypes.Date, b *bundle.Bundle) (hop TxHop, ok bool)
}

// OriginalVolumer is an optional capability: a Manager that pre-allocates
// a fixed original capacity at TryInit time can report it, enabling
// depletion-based (FirstDepleted) CGR suppression.
type OriginalVolumer interface {
	OriginalVolume() sabrtypes.Volume
}

// ManualQueuer is an optional capability for ETO-style managers whose
// residual volume is updated by the caller rather than automatically on
// ScheduleTx.
type ManualQueuer interface {
	ManualEnqueue(b *bundle.Bundle) bool
	ManualDequeue(b *bundle.Bundle) bool
}

// Contact is a scheduled transmission opportunity owned by a
// Multigraph and shared (by pointer) with every RouteStage.Via that
// reaches it.
type Contact struct {
	Info    Info
	Manager Manager

	// WorkArea is scratch state for contact-parenting pathfinding: the
	// single best-known *routestage.Stage reaching this contact so far
	// during the current routing call. It is typed as `any` to avoid a
	// circular dependency between contact and routestage; pathfind casts
	// it to *routestage.Stage. Reset to nil between routing calls.
	WorkArea any

	// Suppressed marks this contact as excluded from the current CGR
	// alternative-path search. Multigraph.ResetCall clears it at the
	// start of every pathfinding call; a CGR router's suppress.Set sets
	// it, and it stays set after Route returns.
	Suppressed bool
}

// New wraps info and mgr into a Contact, with a nil work area and an
// unsuppressed state. The caller must still call mgr.TryInit(info) and
// reject the contact if it returns false (done once, at parse time, by
// the Multigraph builder).
func New(info Info, mgr Manager) *Contact {
	return &Contact{Info: info, Manager: mgr}
}

// ResetWorkArea clears pathfinding scratch state, per the "work area
// reset between pathfinding calls" invariant.
func (c *Contact) ResetWorkArea() {
	c.WorkArea = nil
}
