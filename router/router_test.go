package router_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/sabr-route/bundle"
	"github.com/katalvlaran/sabr-route/contact"
	"github.com/katalvlaran/sabr-route/contactmgr"
	"github.com/katalvlaran/sabr-route/multigraph"
	"github.com/katalvlaran/sabr-route/node"
	"github.com/katalvlaran/sabr-route/pathfind"
	"github.com/katalvlaran/sabr-route/router"
	"github.com/katalvlaran/sabr-route/routestage"
	"github.com/katalvlaran/sabr-route/sabrtypes"
	"github.com/katalvlaran/sabr-route/suppress"
)

func chainGraph(t *testing.T) *multigraph.Multigraph {
	t.Helper()
	nodes := []*node.Node{
		node.New(0, "A", nil),
		node.New(1, "B", nil),
		node.New(2, "C", nil),
	}
	infoAB, err := contact.NewInfo(0, 1, 0, 100)
	require.NoError(t, err)
	infoBC, err := contact.NewInfo(1, 2, 0, 100)
	require.NoError(t, err)
	contacts := []*contact.Contact{
		contact.New(infoAB, contactmgr.NewEVL(10, 1)),
		contact.New(infoBC, contactmgr.NewEVL(10, 1)),
	}
	mg, err := multigraph.Build(nodes, contacts)
	require.NoError(t, err)

	return mg
}

func smallBundle(t *testing.T) *bundle.Bundle {
	t.Helper()
	b, err := bundle.New(0, []sabrtypes.NodeID{2}, 0, 5, 0, sabrtypes.MaxDate)
	require.NoError(t, err)

	return b
}

func TestSPSN_CachesTreeAcrossCalls(t *testing.T) {
	mg := chainGraph(t)
	b := smallBundle(t)
	r := router.NewSPSN(4, routestage.SABR{}, pathfind.NodeParenting)

	first, err := r.Route(mg, b, 0, 2, 0, nil)
	require.NoError(t, err)
	require.NotNil(t, first.Route)

	second, err := r.Route(mg, b, 0, 2, 0, nil)
	require.NoError(t, err)
	require.NotNil(t, second.Route)
	assert.Same(t, first.Route, second.Route, "second call should reuse the cached tree")
}

func TestSPSN_UnicastGuardForcesRecompute(t *testing.T) {
	mg := chainGraph(t)
	b := smallBundle(t)
	r := router.NewSPSN(4, routestage.SABR{}, pathfind.NodeParenting)
	r.MaxUnicastVolume = 1 // any committed volume at all trips the guard

	first, err := r.Route(mg, b, 0, 2, 0, nil)
	require.NoError(t, err)
	require.NotNil(t, first.Route)

	r.CommitVolume(2, b.Priority, 5)

	second, err := r.Route(mg, b, 0, 2, 0, nil)
	require.NoError(t, err)
	require.NotNil(t, second.Route)
	assert.NotSame(t, first.Route, second.Route, "guard should force a fresh search, not a cache hit")
}

func TestCGR_SuppressesLimitingContactOnRetry(t *testing.T) {
	mg := chainGraph(t)
	b := smallBundle(t)
	r := router.NewCGR(routestage.SABR{}, pathfind.NodeParenting, suppress.FirstEnding{})

	out, err := r.Route(mg, b, 0, 2, 0)
	require.NoError(t, err)
	require.NotNil(t, out.Route)

	limiting, ok := suppress.FirstEnding{}.Limiting(out.Route)
	require.True(t, ok)
	assert.True(t, limiting.Suppressed, "CGR must suppress the limiting contact after a successful route")
}

// twoParallelPathsGraph builds A(0)->B(1)->D(3) and A(0)->C(2)->D(3),
// where the B path starts earlier (so SABR prefers it) but its A->B
// contact ends soonest of any contact on either path, making it the
// FirstEnding limiting contact.
func twoParallelPathsGraph(t *testing.T) *multigraph.Multigraph {
	t.Helper()
	nodes := []*node.Node{
		node.New(0, "A", nil),
		node.New(1, "B", nil),
		node.New(2, "C", nil),
		node.New(3, "D", nil),
	}
	infoAB, err := contact.NewInfo(0, 1, 0, 10)
	require.NoError(t, err)
	infoBD, err := contact.NewInfo(1, 3, 0, 100)
	require.NoError(t, err)
	infoAC, err := contact.NewInfo(0, 2, 20, 200)
	require.NoError(t, err)
	infoCD, err := contact.NewInfo(2, 3, 20, 200)
	require.NoError(t, err)
	contacts := []*contact.Contact{
		contact.New(infoAB, contactmgr.NewEVL(10, 1)),
		contact.New(infoBD, contactmgr.NewEVL(10, 1)),
		contact.New(infoAC, contactmgr.NewEVL(10, 1)),
		contact.New(infoCD, contactmgr.NewEVL(10, 1)),
	}
	mg, err := multigraph.Build(nodes, contacts)
	require.NoError(t, err)

	return mg
}

func TestCGR_RetryAfterSuppressionSurfacesAlternateRoute(t *testing.T) {
	mg := twoParallelPathsGraph(t)
	b, err := bundle.New(0, []sabrtypes.NodeID{3}, 0, 5, 0, sabrtypes.MaxDate)
	require.NoError(t, err)
	r := router.NewCGR(routestage.SABR{}, pathfind.NodeParenting, suppress.FirstEnding{})

	first, err := r.Route(mg, b, 0, 3, 0)
	require.NoError(t, err)
	require.NotNil(t, first.Route)
	assert.Equal(t, sabrtypes.NodeID(1), first.Route.Via.Parent.To, "first route should go through B, the earlier-arriving path")

	second, err := r.Route(mg, b, 0, 3, 0)
	require.NoError(t, err)
	require.NotNil(t, second.Route, "suppressing A->B's limiting contact must not make D unreachable")
	assert.Equal(t, sabrtypes.NodeID(2), second.Route.Via.Parent.To, "second call must route around the suppressed contact via C")
	assert.NotSame(t, first.Route, second.Route)
}

func TestVolCgr_ReusesRememberedRoute(t *testing.T) {
	mg := chainGraph(t)
	b := smallBundle(t)
	r := router.NewVolCgr(routestage.SABR{}, pathfind.NodeParenting)

	first, err := r.Route(mg, b, 0, 2, 0)
	require.NoError(t, err)
	require.NotNil(t, first.Route)

	second, err := r.Route(mg, b, 0, 2, 0)
	require.NoError(t, err)
	require.NotNil(t, second.Route)
	assert.Same(t, first.Route, second.Route)
}
