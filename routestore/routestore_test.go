package routestore_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/sabr-route/pathfind"
	"github.com/katalvlaran/sabr-route/routestage"
	"github.com/katalvlaran/sabr-route/routestore"
	"github.com/katalvlaran/sabr-route/sabrtypes"
)

func alwaysValid(*routestage.Stage) bool { return true }
func neverValid(*routestage.Stage) bool  { return false }

func TestTreeCache_StoreAndSelect(t *testing.T) {
	cache := routestore.NewTreeCache(2)
	dest := sabrtypes.NodeID(1)
	stage := &routestage.Stage{To: dest}
	tree := &pathfind.Output{ByNode: map[sabrtypes.NodeID][]*routestage.Stage{dest: {stage}}}

	_, ok := cache.Select(dest, nil, alwaysValid)
	assert.False(t, ok, "empty cache must miss")

	cache.Store(tree, nil)
	got, ok := cache.Select(dest, nil, alwaysValid)
	assert.True(t, ok)
	assert.Same(t, stage, got)

	_, ok = cache.Select(dest, nil, neverValid)
	assert.False(t, ok, "a stale hit must be reported as a miss")
}

func TestTreeCache_DistinctExclusionSetsAreDistinctKeys(t *testing.T) {
	cache := routestore.NewTreeCache(4)
	dest := sabrtypes.NodeID(1)
	stage := &routestage.Stage{To: dest}
	tree := &pathfind.Output{ByNode: map[sabrtypes.NodeID][]*routestage.Stage{dest: {stage}}}

	cache.Store(tree, []sabrtypes.NodeID{2})
	_, ok := cache.Select(dest, nil, alwaysValid)
	assert.False(t, ok, "a tree stored under one exclusion set must not answer another")

	got, ok := cache.Select(dest, []sabrtypes.NodeID{2}, alwaysValid)
	assert.True(t, ok)
	assert.Same(t, stage, got)
}

func TestTreeCache_EvictsOldestPastCapacity(t *testing.T) {
	cache := routestore.NewTreeCache(1)
	dest := sabrtypes.NodeID(1)
	old := &pathfind.Output{ByNode: map[sabrtypes.NodeID][]*routestage.Stage{dest: {{To: dest}}}}
	newer := &pathfind.Output{ByNode: map[sabrtypes.NodeID][]*routestage.Stage{dest: {{To: dest}}}}

	cache.Store(old, []sabrtypes.NodeID{1})
	cache.Store(newer, []sabrtypes.NodeID{2})

	_, ok := cache.Select(dest, []sabrtypes.NodeID{1}, alwaysValid)
	assert.False(t, ok, "capacity 1 must evict the first entry once a second arrives")

	_, ok = cache.Select(dest, []sabrtypes.NodeID{2}, alwaysValid)
	assert.True(t, ok)
}

func TestRoutingTable_RememberSelectForget(t *testing.T) {
	rt := routestore.NewRoutingTable()
	dest := sabrtypes.NodeID(3)
	dist := routestage.SABR{}

	_, ok := rt.Select(dest, 0, dist, alwaysValid)
	assert.False(t, ok)

	stage := &routestage.Stage{To: dest, Expiration: sabrtypes.MaxDate}
	rt.Remember(dest, stage)

	got, ok := rt.Select(dest, 0, dist, alwaysValid)
	assert.True(t, ok)
	assert.Same(t, stage, got)

	rt.Forget(dest)
	_, ok = rt.Select(dest, 0, dist, alwaysValid)
	assert.False(t, ok)
}

func TestRoutingTable_SelectDropsStaleEntries(t *testing.T) {
	rt := routestore.NewRoutingTable()
	dest := sabrtypes.NodeID(3)
	dist := routestage.SABR{}
	stage := &routestage.Stage{To: dest, Expiration: sabrtypes.MaxDate}
	rt.Remember(dest, stage)

	_, ok := rt.Select(dest, 0, dist, neverValid)
	assert.False(t, ok)

	rt.Remember(dest, stage)
	_, ok = rt.Select(dest, 0, dist, alwaysValid)
	assert.True(t, ok, "a later Remember must still be selectable after an earlier stale entry was dropped")
}

func TestRoutingTable_SelectPicksBestByDistanceAndDropsExpired(t *testing.T) {
	rt := routestore.NewRoutingTable()
	dest := sabrtypes.NodeID(3)
	dist := routestage.SABR{}

	worse := &routestage.Stage{To: dest, At: 20, Hops: 3, Expiration: 100}
	better := &routestage.Stage{To: dest, At: 5, Hops: 1, Expiration: 100}
	expired := &routestage.Stage{To: dest, At: 1, Hops: 1, Expiration: 10}
	rt.Remember(dest, worse)
	rt.Remember(dest, better)
	rt.Remember(dest, expired)

	got, ok := rt.Select(dest, 50, dist, alwaysValid)
	assert.True(t, ok)
	assert.Same(t, better, got, "Select must return the best surviving candidate by Distance")

	_, ok = rt.Select(dest, 150, dist, alwaysValid)
	assert.False(t, ok, "candidates whose stage has since expired must be dropped even though validate would accept them")
}
