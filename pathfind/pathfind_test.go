package pathfind_test

import (
	"testing"

	"github.com/katalvlaran/sabr-route/bundle"
	"github.com/katalvlaran/sabr-route/contact"
	"github.com/katalvlaran/sabr-route/contactmgr"
	"github.com/katalvlaran/sabr-route/multigraph"
	"github.com/katalvlaran/sabr-route/node"
	"github.com/katalvlaran/sabr-route/pathfind"
	"github.com/katalvlaran/sabr-route/routestage"
	"github.com/katalvlaran/sabr-route/sabrtypes"
)

func mustNode(t *testing.T, id sabrtypes.NodeID, name string) *node.Node {
	t.Helper()

	return node.New(id, name, nil)
}

func mustContact(t *testing.T, tx, rx sabrtypes.NodeID, start, end sabrtypes.Date, rate sabrtypes.Rate) *contact.Contact {
	t.Helper()
	info, err := contact.NewInfo(tx, rx, start, end)
	if err != nil {
		t.Fatalf("NewInfo: %v", err)
	}

	return contact.New(info, contactmgr.NewEVL(rate, 0))
}

func mustBundle(t *testing.T, source, dest sabrtypes.NodeID) *bundle.Bundle {
	t.Helper()
	b, err := bundle.New(source, []sabrtypes.NodeID{dest}, 0, 10, 0, sabrtypes.MaxDate)
	if err != nil {
		t.Fatalf("bundle.New: %v", err)
	}

	return b
}

// TestScenario1_NoPathUnicast exercises a two-node graph with no
// contact between them: pathfinding must report an unreached
// destination without error.
func TestScenario1_NoPathUnicast(t *testing.T) {
	nodes := []*node.Node{mustNode(t, 0, "A"), mustNode(t, 1, "B")}
	mg, err := multigraph.Build(nodes, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	b := mustBundle(t, 0, 1)
	out, err := pathfind.Run(mg, b, pathfind.Options{
		Source:      0,
		Destination: 1,
		Distance:    routestage.SABR{},
		Parenting:   pathfind.NodeParenting,
		Mode:        pathfind.SinglePath,
		CurrentTime: 0,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out.Destination != nil {
		t.Fatalf("expected no route, got one arriving at %d", out.Destination.At)
	}
}

// TestScenario2_DijkstraDisagreement builds a graph where the
// earliest-arrival path (A -> B -> D) uses two hops and the
// fewest-hop path (a direct A -> D) arrives
// later, so SABR distance and Hop distance must pick different
// routes, and the resulting stage via differs between node-parenting
// runs using each distance.
func TestScenario2_DijkstraDisagreement(t *testing.T) {
	nodes := []*node.Node{
		mustNode(t, 0, "A"),
		mustNode(t, 1, "B"),
		mustNode(t, 2, "D"),
	}
	contacts := []*contact.Contact{
		mustContact(t, 0, 1, 0, 10, 100),  // A->B, fast start
		mustContact(t, 1, 2, 1, 10, 100),  // B->D, arrives early
		mustContact(t, 0, 2, 50, 60, 100), // A->D direct, but late start
	}
	mg, err := multigraph.Build(nodes, contacts)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	b := mustBundle(t, 0, 2)

	sabrOut, err := pathfind.Run(mg, b, pathfind.Options{
		Source: 0, Destination: 2,
		Distance: routestage.SABR{}, Parenting: pathfind.NodeParenting, Mode: pathfind.SinglePath,
	})
	if err != nil {
		t.Fatalf("Run (SABR): %v", err)
	}
	if sabrOut.Destination == nil {
		t.Fatalf("expected a route under SABR distance")
	}
	if sabrOut.Destination.Hops != 2 {
		t.Fatalf("SABR distance should prefer the earlier two-hop arrival, got %d hops", sabrOut.Destination.Hops)
	}

	hopOut, err := pathfind.Run(mg, b, pathfind.Options{
		Source: 0, Destination: 2,
		Distance: routestage.Hop{}, Parenting: pathfind.NodeParenting, Mode: pathfind.SinglePath,
	})
	if err != nil {
		t.Fatalf("Run (Hop): %v", err)
	}
	if hopOut.Destination == nil {
		t.Fatalf("expected a route under Hop distance")
	}
	if hopOut.Destination.Hops != 1 {
		t.Fatalf("Hop distance should prefer the one-hop direct contact, got %d hops", hopOut.Destination.Hops)
	}
}

// TestScenario_MPTKeepsIncomparableLabels checks that MPT parenting
// retains more than one label at a node when neither dominates the
// other (one arrives earlier, the other has fewer hops).
func TestScenario_MPTKeepsIncomparableLabels(t *testing.T) {
	nodes := []*node.Node{
		mustNode(t, 0, "A"),
		mustNode(t, 1, "B"),
		mustNode(t, 2, "D"),
	}
	contacts := []*contact.Contact{
		mustContact(t, 0, 1, 0, 10, 100),
		mustContact(t, 1, 2, 1, 10, 100),
		mustContact(t, 0, 2, 50, 60, 100),
	}
	mg, err := multigraph.Build(nodes, contacts)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	b := mustBundle(t, 0, 2)

	out, err := pathfind.Run(mg, b, pathfind.Options{
		Source: 0, Destination: 2,
		Distance: routestage.SABR{}, Parenting: pathfind.MPT, Mode: pathfind.Tree,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(out.ByNode[2]) < 2 {
		t.Fatalf("expected MPT to retain both incomparable labels at D, got %d", len(out.ByNode[2]))
	}
}

// TestOptionsSuppressed_ExcludesContactFromTheSearch checks that a
// contact listed in Options.Suppressed is treated as unusable even
// though Run's own Multigraph.ResetCall clears every contact's
// Suppressed flag first; without the post-reset reapplication this
// contact would be silently un-suppressed before the search read it.
func TestOptionsSuppressed_ExcludesContactFromTheSearch(t *testing.T) {
	nodes := []*node.Node{mustNode(t, 0, "A"), mustNode(t, 1, "B")}
	onlyHop := mustContact(t, 0, 1, 0, 10, 100)
	mg, err := multigraph.Build(nodes, []*contact.Contact{onlyHop})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	b := mustBundle(t, 0, 1)

	out, err := pathfind.Run(mg, b, pathfind.Options{
		Source: 0, Destination: 1,
		Distance: routestage.SABR{}, Parenting: pathfind.NodeParenting, Mode: pathfind.SinglePath,
		Suppressed: []*contact.Contact{onlyHop},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out.Destination != nil {
		t.Fatalf("expected B unreachable with its only contact suppressed, got a route")
	}
}
