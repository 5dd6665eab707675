package model

import "testing"

func TestUpgradeCostScaling(t *testing.T) {
	cfg, ok := UpgradeConfigFor(UpgradePromoPayout)
	if !ok {
		t.Fatal("promo payout config missing")
	}

	fans, _ := UpgradeCost(cfg, 0)
	if fans != 800 {
		t.Fatalf("level 0 cost: got %d, want 800", fans)
	}

	// round(800 * 1.6^2) = 2048
	fans, _ = UpgradeCost(cfg, 2)
	if fans != 2048 {
		t.Fatalf("level 2 cost: got %d, want 2048", fans)
	}
}

func TestUpgradeCostMonotonic(t *testing.T) {
	for _, cfg := range UpgradeCatalog() {
		prevFans, prevRep := int64(-1), int64(-1)
		for level := 0; level < cfg.MaxLevel; level++ {
			fans, rep := UpgradeCost(cfg, level)
			if fans <= prevFans || rep < prevRep {
				t.Fatalf("%s: cost not increasing at level %d", cfg.Type, level)
			}
			prevFans, prevRep = fans, rep
		}
	}
}

func TestUpgradeBonus(t *testing.T) {
	cfg, _ := UpgradeConfigFor(UpgradeVirality)
	if got := UpgradeBonus(cfg, 0); got != 0 {
		t.Fatalf("level 0 bonus should be 0, got %v", got)
	}
	if got := UpgradeBonus(cfg, 5); got != 0.05 {
		t.Fatalf("got %v, want 0.05", got)
	}
}

func TestUpgradeConfigForUnknown(t *testing.T) {
	if _, ok := UpgradeConfigFor("stage_lights"); ok {
		t.Fatal("unknown upgrade type should not resolve")
	}
}
