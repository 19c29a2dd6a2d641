package pathfind

import (
	"sort"

	"github.com/katalvlaran/sabr-route/routestage"
)

// tryInsert admits candidate into set if and only if no existing member
// dominates it, where ex dominates candidate when ex is Compare-better
// or equal AND candidate is not SecondaryBetter than ex. On admission,
// any existing members candidate itself dominates are dropped. The
// returned slice is kept sorted by Compare ascending; ok reports
// whether candidate was admitted.
func tryInsert(dist routestage.Distance, set []*routestage.Stage, candidate *routestage.Stage) ([]*routestage.Stage, bool) {
	for _, ex := range set {
		if dist.Compare(ex, candidate) <= 0 && !dist.SecondaryBetter(candidate, ex) {
			return set, false
		}
	}

	kept := make([]*routestage.Stage, 0, len(set)+1)
	for _, ex := range set {
		if dist.Compare(candidate, ex) <= 0 && !dist.SecondaryBetter(ex, candidate) {
			ex.Disabled = true

			continue
		}
		kept = append(kept, ex)
	}
	kept = append(kept, candidate)
	sort.Slice(kept, func(i, j int) bool { return dist.Compare(kept[i], kept[j]) < 0 })

	return kept, true
}

// hybridCap bounds a Hybrid-parenting Pareto set to its two most
// preferred members (by Compare order), disabling anything truncated
// away. Hybrid parenting sits between NodeParenting's single label and
// MPT's unbounded frontier: it keeps the primary-best label plus one
// runner-up rather than the full incomparable set.
const hybridCap = 2

func applyHybridCap(set []*routestage.Stage) []*routestage.Stage {
	if len(set) <= hybridCap {
		return set
	}
	for _, dropped := range set[hybridCap:] {
		dropped.Disabled = true
	}

	return set[:hybridCap]
}
