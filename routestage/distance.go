package routestage

// Distance is the per-variant priority queue ordering and Pareto
// dominance strategy (spec §4.4/§9 "Distance as strategy"). Compare
// gives the total order used by the priority queue: Compare(a, b) < 0
// means a is strictly preferred over b. SecondaryBetter tests the
// variant's secondary axis alone, ignoring the primary metric — used by
// hybrid parenting (to decide whether a new label may still displace an
// existing one) and by MPT (to decide Pareto incomparability).
type Distance interface {
	// Compare returns <0 if a is strictly better than b, 0 if they tie
	// on every tiebreaker, >0 if b is strictly better.
	Compare(a, b *Stage) int

	// SecondaryBetter reports whether a is strictly better than b on
	// the secondary axis alone (hop count for SABR, arrival time for
	// Hop), independent of the primary metric.
	SecondaryBetter(a, b *Stage) bool
}

// SABR orders by earliest arrival time, then fewer hops, then longer
// remaining expiration. Its secondary axis (for hybrid/MPT) is hop
// count.
type SABR struct{}

// Compare implements Distance.
func (SABR) Compare(a, b *Stage) int {
	if a.At != b.At {
		return cmp(a.At, b.At)
	}
	if a.Hops != b.Hops {
		return cmp(a.Hops, b.Hops)
	}

	return cmp(b.Expiration, a.Expiration) // larger remaining expiration wins
}

// SecondaryBetter implements Distance: fewer hops is better.
func (SABR) SecondaryBetter(a, b *Stage) bool {
	return a.Hops < b.Hops
}

// Hop orders by fewest hops, then earliest arrival time, then longer
// remaining expiration. Its secondary axis (for hybrid/MPT) is arrival
// time.
type Hop struct{}

// Compare implements Distance.
func (Hop) Compare(a, b *Stage) int {
	if a.Hops != b.Hops {
		return cmp(a.Hops, b.Hops)
	}
	if a.At != b.At {
		return cmp(a.At, b.At)
	}

	return cmp(b.Expiration, a.Expiration)
}

// SecondaryBetter implements Distance: earlier arrival is better.
func (Hop) SecondaryBetter(a, b *Stage) bool {
	return a.At < b.At
}

func cmp[T ~int64 | ~uint32](x, y T) int {
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	default:
		return 0
	}
}
