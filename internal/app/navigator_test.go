package app

import "testing"

func TestNavigatorBoundaries(t *testing.T) {
	nav := newNavigator(3)
	if nav.current != 0 {
		t.Fatalf("expected initial index 0, got %d", nav.current)
	}

	// No wrap at the lower boundary.
	if nav.prev() {
		t.Fatalf("prev at index 0 must not move")
	}
	if nav.current != 0 {
		t.Fatalf("expected index 0, got %d", nav.current)
	}

	if !nav.next() || nav.current != 1 {
		t.Fatalf("expected next to reach 1, got %d", nav.current)
	}
	if !nav.next() || nav.current != 2 {
		t.Fatalf("expected next to reach 2, got %d", nav.current)
	}

	// No wrap at the upper boundary.
	if nav.next() {
		t.Fatalf("next at last index must not move")
	}
	if nav.current != 2 {
		t.Fatalf("expected index 2, got %d", nav.current)
	}
}

func TestNavigatorGoToIgnoresInvalidTargets(t *testing.T) {
	nav := newNavigator(3)
	if nav.goTo(3) || nav.goTo(-1) {
		t.Fatalf("out-of-range goTo must be ignored")
	}
	if nav.current != 0 {
		t.Fatalf("expected index unchanged, got %d", nav.current)
	}
	if !nav.goTo(2) || nav.current != 2 {
		t.Fatalf("expected goTo(2) to land on 2, got %d", nav.current)
	}
	if nav.goTo(2) {
		t.Fatalf("goTo to the current index should report no change")
	}
}
