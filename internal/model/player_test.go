package model

import "testing"

func TestApplyExperience(t *testing.T) {
	tests := []struct {
		name    string
		level   int
		exp     int64
		gained  int64
		wantLvl int
		wantExp int64
	}{
		{name: "no level up", level: 1, exp: 0, gained: 50, wantLvl: 1, wantExp: 50},
		{name: "exact threshold", level: 1, exp: 90, gained: 10, wantLvl: 2, wantExp: 0},
		{name: "single level up with carry", level: 1, exp: 90, gained: 35, wantLvl: 2, wantExp: 25},
		{name: "multi level jump", level: 1, exp: 0, gained: 350, wantLvl: 3, wantExp: 50},
		{name: "higher level threshold", level: 5, exp: 490, gained: 20, wantLvl: 6, wantExp: 10},
	}
	for _, tc := range tests {
		lvl, exp := ApplyExperience(tc.level, tc.exp, tc.gained)
		if lvl != tc.wantLvl || exp != tc.wantExp {
			t.Fatalf("%s: got level=%d exp=%d, want level=%d exp=%d",
				tc.name, lvl, exp, tc.wantLvl, tc.wantExp)
		}
	}
}

func TestApplyExperienceInvariant(t *testing.T) {
	level, exp := 1, int64(0)
	for gained := int64(1); gained < 5000; gained += 137 {
		prevLevel := level
		level, exp = ApplyExperience(level, exp, gained)
		if exp >= ExperienceToLevel(level) {
			t.Fatalf("invariant broken: exp=%d >= threshold=%d at level %d",
				exp, ExperienceToLevel(level), level)
		}
		if level < prevLevel {
			t.Fatalf("level decreased: %d -> %d", prevLevel, level)
		}
	}
}

func TestManagerBonus(t *testing.T) {
	profile := &PlayerProfile{
		Manager: &Manager{BonusType: BonusScouting, BonusValue: 0.12},
	}
	if got := profile.ManagerBonus(BonusScouting); got != 0.12 {
		t.Fatalf("got %v, want 0.12", got)
	}
	if got := profile.ManagerBonus(BonusPromotion); got != 0 {
		t.Fatalf("wrong kind should be 0, got %v", got)
	}

	unmanaged := &PlayerProfile{}
	if got := unmanaged.ManagerBonus(BonusScouting); got != 0 {
		t.Fatalf("no manager should be 0, got %v", got)
	}
}
