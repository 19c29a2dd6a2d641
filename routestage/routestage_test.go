package routestage_test

import (
	"testing"

	"github.com/katalvlaran/sabr-route/bundle"
	"github.com/katalvlaran/sabr-route/routestage"
	"github.com/katalvlaran/sabr-route/sabrtypes"
)

func TestNewSource_HasZeroHopsAndUnconstrainedExpiration(t *testing.T) {
	s := routestage.NewSource(0, 100)
	if s.To != 0 || s.At != 100 {
		t.Fatalf("source stage = %+v, want To=0 At=100", s)
	}
	if s.Hops != 0 {
		t.Fatalf("Hops = %d, want 0", s.Hops)
	}
	if s.Via != nil {
		t.Fatal("source stage must have a nil Via")
	}
	if s.Expiration != sabrtypes.MaxDate {
		t.Fatalf("Expiration = %d, want MaxDate", s.Expiration)
	}
}

func TestEffectiveBundle_PrefersPerStageCopyOverOriginal(t *testing.T) {
	s := &routestage.Stage{}
	if got := s.EffectiveBundle(nil); got != nil {
		t.Fatalf("with no per-stage bundle, EffectiveBundle should return the original (nil)")
	}

	original, own := &bundle.Bundle{}, &bundle.Bundle{}
	s.Bundle = own
	if got := s.EffectiveBundle(original); got != own {
		t.Fatal("with a per-stage bundle, EffectiveBundle should return it instead of the original")
	}
}

func TestSABR_ComparePrefersEarlierArrival(t *testing.T) {
	d := routestage.SABR{}
	early := &routestage.Stage{At: 10, Hops: 5}
	late := &routestage.Stage{At: 20, Hops: 1}
	if d.Compare(early, late) >= 0 {
		t.Fatal("SABR should prefer earlier arrival over fewer hops")
	}
}

func TestSABR_TiebreaksOnHopsThenExpiration(t *testing.T) {
	d := routestage.SABR{}
	fewerHops := &routestage.Stage{At: 10, Hops: 1, Expiration: 100}
	moreHops := &routestage.Stage{At: 10, Hops: 2, Expiration: 100}
	if d.Compare(fewerHops, moreHops) >= 0 {
		t.Fatal("SABR should prefer fewer hops when arrival ties")
	}

	shorterExp := &routestage.Stage{At: 10, Hops: 1, Expiration: 50}
	longerExp := &routestage.Stage{At: 10, Hops: 1, Expiration: 100}
	if d.Compare(longerExp, shorterExp) >= 0 {
		t.Fatal("SABR should prefer longer remaining expiration when arrival and hops tie")
	}
}

func TestHop_ComparePrefersFewerHopsOverArrival(t *testing.T) {
	d := routestage.Hop{}
	fewerHopsLate := &routestage.Stage{At: 100, Hops: 1}
	moreHopsEarly := &routestage.Stage{At: 10, Hops: 2}
	if d.Compare(fewerHopsLate, moreHopsEarly) >= 0 {
		t.Fatal("Hop distance should prefer fewer hops even with a later arrival")
	}
}

func TestSABR_SecondaryBetterIsHopCount(t *testing.T) {
	d := routestage.SABR{}
	a := &routestage.Stage{Hops: 1}
	b := &routestage.Stage{Hops: 2}
	if !d.SecondaryBetter(a, b) {
		t.Fatal("SABR secondary axis should prefer fewer hops")
	}
}

func TestHop_SecondaryBetterIsArrivalTime(t *testing.T) {
	d := routestage.Hop{}
	a := &routestage.Stage{At: 5}
	b := &routestage.Stage{At: 10}
	if !d.SecondaryBetter(a, b) {
		t.Fatal("Hop secondary axis should prefer earlier arrival")
	}
}

func TestInitRouteTo_PopulatesNextForDestinationAlongChain(t *testing.T) {
	source := routestage.NewSource(0, 0)
	mid := &routestage.Stage{To: 1, At: 10, Via: &routestage.Via{Parent: source}}
	dest := &routestage.Stage{To: 2, At: 20, Via: &routestage.Via{Parent: mid}}

	routestage.InitRouteTo(dest, 2)

	if source.NextForDestination[2] != mid {
		t.Fatal("source's next-hop toward dest 2 should be mid")
	}
	if mid.NextForDestination[2] != dest {
		t.Fatal("mid's next-hop toward dest 2 should be dest")
	}
}
