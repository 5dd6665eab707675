package model

import "testing"

func TestDiceBetweenInclusive(t *testing.T) {
	dice := NewDice(1)
	seen := map[int]bool{}
	for i := 0; i < 1000; i++ {
		v := dice.Between(3, 7)
		if v < 3 || v > 7 {
			t.Fatalf("value %d outside [3,7]", v)
		}
		seen[v] = true
	}
	// Both endpoints must be reachable.
	if !seen[3] || !seen[7] {
		t.Fatalf("endpoints not hit: %v", seen)
	}
}

func TestDiceBetweenDegenerate(t *testing.T) {
	dice := NewDice(1)
	if v := dice.Between(5, 5); v != 5 {
		t.Fatalf("got %d, want 5", v)
	}
	if v := dice.Between(9, 2); v != 9 {
		t.Fatalf("inverted range should return lo, got %d", v)
	}
}

func TestDiceRoll(t *testing.T) {
	dice := NewDice(2)
	for i := 0; i < 1000; i++ {
		if v := dice.Roll(6); v < 1 || v > 6 {
			t.Fatalf("roll %d outside [1,6]", v)
		}
	}
}

func TestDicePick(t *testing.T) {
	dice := NewDice(3)
	for i := 0; i < 1000; i++ {
		if v := dice.Pick(10); v < 0 || v > 9 {
			t.Fatalf("pick %d outside [0,10)", v)
		}
	}
	if v := dice.Pick(1); v != 0 {
		t.Fatalf("pick of 1 must be 0, got %d", v)
	}
}

func TestDiceDeterministicWithSeed(t *testing.T) {
	a, b := NewDice(42), NewDice(42)
	for i := 0; i < 100; i++ {
		if a.Roll(100) != b.Roll(100) {
			t.Fatal("same seed must produce the same sequence")
		}
	}
}
