package model

import "testing"

func testGroup() *Group {
	return &Group{
		Members: []Idol{
			{Vocal: 80, Dance: 60, Visual: 40, Charm: 100, Stamina: 20}, // star power 65
			{Vocal: 40, Dance: 40, Visual: 40, Charm: 40, Stamina: 40},  // star power 40
		},
	}
}

func TestGroupAggregates(t *testing.T) {
	g := testGroup()

	if got := g.TotalStarPower(); got != 105 {
		t.Fatalf("total star power: got %d, want 105", got)
	}
	if got := g.AverageStarPower(); got != 52.5 {
		t.Fatalf("average star power: got %v, want 52.5", got)
	}
	if got := g.AverageVocal(); got != 60 {
		t.Fatalf("average vocal: got %v, want 60", got)
	}
	if got := g.AverageDance(); got != 50 {
		t.Fatalf("average dance: got %v, want 50", got)
	}
	if got := g.AverageVisual(); got != 40 {
		t.Fatalf("average visual: got %v, want 40", got)
	}
}

func TestGroupAggregatesEmpty(t *testing.T) {
	g := &Group{}
	if g.AverageStarPower() != 0 || g.TotalStarPower() != 0 || g.AverageVocal() != 0 {
		t.Fatal("empty group aggregates must be 0")
	}
}

func TestSongQualityBonus(t *testing.T) {
	g := testGroup()
	// 52.5 / 200
	if got := g.SongQualityBonus(); got != 0.2625 {
		t.Fatalf("got %v, want 0.2625", got)
	}
}

func TestValidConcept(t *testing.T) {
	for _, c := range []Concept{ConceptCute, ConceptGirlCrush, ConceptElegant, ConceptFresh, ConceptPowerful, ConceptDark, ConceptRetro} {
		if !ValidConcept(c) {
			t.Fatalf("expected %q to be valid", c)
		}
	}
	if ValidConcept("sporty") {
		t.Fatal("unknown concept should be invalid")
	}
}
