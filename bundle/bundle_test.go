package bundle_test

import (
	"testing"

	"github.com/katalvlaran/sabr-route/bundle"
	"github.com/katalvlaran/sabr-route/sabrtypes"
)

func TestNew_RejectsEmptyDestinations(t *testing.T) {
	_, err := bundle.New(0, nil, 0, 1, 0, 10)
	if err != bundle.ErrNoDestinations {
		t.Fatalf("err = %v, want ErrNoDestinations", err)
	}
}

func TestNew_RejectsDuplicateDestination(t *testing.T) {
	_, err := bundle.New(0, []sabrtypes.NodeID{1, 1}, 0, 1, 0, 10)
	if err != bundle.ErrDuplicateDestination {
		t.Fatalf("err = %v, want ErrDuplicateDestination", err)
	}
}

func TestNew_RejectsExpirationBeforeCreation(t *testing.T) {
	_, err := bundle.New(0, []sabrtypes.NodeID{1}, 0, 1, 10, 5)
	if err != bundle.ErrExpirationBeforeCreation {
		t.Fatalf("err = %v, want ErrExpirationBeforeCreation", err)
	}
}

func TestNew_ConstructsMulticastBundle(t *testing.T) {
	b, err := bundle.New(0, []sabrtypes.NodeID{1, 2, 3}, 2, 100, 0, 50)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if len(b.Destinations) != 3 {
		t.Fatalf("Destinations = %v, want 3 entries", b.Destinations)
	}
}

func TestExpired_ComparesAgainstExpiration(t *testing.T) {
	b, err := bundle.New(0, []sabrtypes.NodeID{1}, 0, 1, 0, 10)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if b.Expired(10) {
		t.Fatal("bundle should not be expired exactly at its expiration time")
	}
	if !b.Expired(11) {
		t.Fatal("bundle should be expired strictly after its expiration time")
	}
}

func TestClone_IsIndependentOfOriginal(t *testing.T) {
	b, err := bundle.New(0, []sabrtypes.NodeID{1, 2}, 0, 1, 0, 10)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	clone := b.Clone()
	clone.Destinations[0] = 99
	clone.Size = 42

	if b.Destinations[0] == 99 {
		t.Fatal("mutating the clone's destinations must not affect the original")
	}
	if b.Size == 42 {
		t.Fatal("mutating the clone's size must not affect the original")
	}
}
