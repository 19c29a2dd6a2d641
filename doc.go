// Package sabrroute implements Schedule-Aware Bundle Routing over a
// time-expanded contact plan for delay-tolerant networks.
//
// A contact plan describes a set of nodes and the scheduled contacts
// between them: time windows during which one node can transmit to
// another at a given rate, after a fixed one-way delay. Because every
// contact's availability is known ahead of time, a router can compute
// not just which nodes are reachable but exactly when a bundle sent
// now will arrive - this is the problem the packages under this module
// solve.
//
// The module is organized around the path a bundle takes through the
// code:
//
//	contactplan  - parses a contact-plan document (ion, tvgutil or
//	               asabr line/JSON formats) into nodes and contacts
//	node         - node identity and optional per-node admission hooks
//	contact      - a single scheduled contact and its resource manager
//	contactmgr   - EVL, QD, ETO, priority and segmented volume managers
//	multigraph   - the time-expanded contact multigraph built from a
//	               contact plan, with lazy per-receiver contact views
//	bundle       - the unit being routed: size, deadline, destinations
//	routestage   - a partial route (a "stage") and its distance metrics
//	pathfind     - the label-setting search over the multigraph: node,
//	               contact, hybrid and MPT parenting under SABR or hop
//	               distance
//	suppress     - limiting-contact suppression strategies used to
//	               surface alternate routes on retry
//	routestore   - route caching: whole-tree (SPSN) and per-destination
//	               (CGR/VolCgr) caches, validated lazily before reuse
//	router       - SPSN, CGR and VolCgr routers built on pathfind and
//	               routestore
//	schedule     - dry-run and commit of a computed route, unicast and
//	               multicast, against the live contact plan
//	config       - router configuration, loaded from JSON or built
//	               with functional options
//	obslog       - structured logging
//	metrics      - Prometheus instrumentation
//
// cmd/sabrroute wires the above into a command-line tool that loads a
// contact plan, runs a single unicast route, and prints the result.
package sabrroute
