// Package sabrtypes declares the scalar primitives shared across the
// routing engine: node identity, absolute time, duration, transfer
// volume, transmission rate, bundle priority and path hop count.
//
// None of these types carry behavior of their own; they exist so that
// every other package in this module (bundle, contact, node, multigraph,
// routestage, pathfind, router, ...) speaks the same vocabulary instead
// of passing around bare int64/float64 values with ambiguous units.
package sabrtypes

import "math"

// NodeID identifies a routing endpoint. Valid ids form the contiguous
// range [0, N) for a multigraph built over N nodes.
type NodeID int

// Date is an absolute point in simulated time. The routing engine has no
// clock of its own — every Date value arrives as a parameter from the
// caller (current_time, bundle.Expiration, contact.Start/End, ...).
type Date int64

// Duration is a span of time, e.g. a one-way light/propagation delay or
// a cumulative queueing delay along a path.
type Duration int64

// Volume is an amount of bundle payload, in the same unit the caller's
// Rate values are expressed in per unit Duration (bytes, bits, whatever
// the contact plan uses consistently).
type Volume float64

// Rate is a transmission rate: Volume transferred per unit Duration.
type Rate float64

// Priority is a small unsigned bundle priority. Higher values are
// higher priority; priority-aware contact managers charge a bundle's
// volume against all priorities at or below its own (see contactmgr).
type Priority uint8

// HopCount counts the number of contacts (via edges) traversed from a
// route's source stage to a given stage.
type HopCount uint32

// MaxDate is used as "+∞" for expiration and arrival bounds that have
// not yet been constrained by any contact on a path.
const MaxDate Date = math.MaxInt64

// MaxDuration is used as "+∞" cumulative delay, never expected to occur
// on a real path but useful as a sentinel during construction.
const MaxDuration Duration = math.MaxInt64
