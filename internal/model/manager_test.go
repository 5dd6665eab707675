package model

import "testing"

func TestDefaultManagers(t *testing.T) {
	managers := DefaultManagers()
	if len(managers) != 4 {
		t.Fatalf("got %d default managers, want 4", len(managers))
	}

	names := map[string]bool{}
	for _, m := range managers {
		if names[m.Name] {
			t.Fatalf("duplicate manager name %q", m.Name)
		}
		names[m.Name] = true
		if m.BonusValue <= 0 || m.BonusValue >= 1 {
			t.Fatalf("%s: bonus %v outside (0,1)", m.Name, m.BonusValue)
		}
		switch m.BonusType {
		case BonusPromotion, BonusTraining, BonusVirality, BonusAward, BonusScouting:
		default:
			t.Fatalf("%s: unknown bonus kind %q", m.Name, m.BonusType)
		}
	}
}
