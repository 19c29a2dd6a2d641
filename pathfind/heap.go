package pathfind

import (
	"container/heap"

	"github.com/katalvlaran/sabr-route/routestage"
)

// stageHeap is a min-heap of *routestage.Stage ordered by a Distance
// strategy's total order, mirroring the teacher's nodePQ in
// dijkstra.go but keyed on Distance.Compare instead of a bare int64.
type stageHeap struct {
	items []*routestage.Stage
	dist  routestage.Distance
}

func (h stageHeap) Len() int { return len(h.items) }

func (h stageHeap) Less(i, j int) bool {
	return h.dist.Compare(h.items[i], h.items[j]) < 0
}

func (h stageHeap) Swap(i, j int) { h.items[i], h.items[j] = h.items[j], h.items[i] }

func (h *stageHeap) Push(x any) {
	h.items = append(h.items, x.(*routestage.Stage))
}

func (h *stageHeap) Pop() any {
	old := h.items
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	h.items = old[:n-1]

	return item
}

var _ heap.Interface = (*stageHeap)(nil)
