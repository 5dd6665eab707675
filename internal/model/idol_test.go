package model

import (
	"testing"
	"time"
)

func TestStarPower(t *testing.T) {
	idol := &Idol{Vocal: 80, Dance: 60, Visual: 40, Charm: 100, Stamina: 20}
	// 80*.25 + 60*.25 + 40*.20 + 100*.20 + 20*.10 = 65
	if got := idol.StarPower(); got != 65 {
		t.Fatalf("got %d, want 65", got)
	}

	maxed := &Idol{Vocal: 100, Dance: 100, Visual: 100, Charm: 100, Stamina: 100}
	if got := maxed.StarPower(); got != 100 {
		t.Fatalf("maxed idol should be 100, got %d", got)
	}
}

func TestIsTrainingAt(t *testing.T) {
	now := time.Now()
	free := &Idol{}
	if free.IsTrainingAt(now) {
		t.Fatal("idol with no timer should not be training")
	}

	future := now.Add(time.Minute)
	busy := &Idol{TrainingUntil: &future}
	if !busy.IsTrainingAt(now) {
		t.Fatal("idol with future timer should be training")
	}

	past := now.Add(-time.Minute)
	done := &Idol{TrainingUntil: &past}
	if done.IsTrainingAt(now) {
		t.Fatal("idol with elapsed timer should not be training")
	}
}

func TestScaledTimerMinutes(t *testing.T) {
	tests := []struct {
		base  int
		bonus float64
		want  int
	}{
		{2, 0, 2},
		{2, 0.20, 1},  // 1.6 truncates to a whole minute
		{2, 0.60, 1},  // 0.8 clamps to the one-minute floor
		{5, 0.25, 3},  // 3.75 truncates
		{5, 1.0, 1},
		{1, 0, 1},
	}
	for _, tt := range tests {
		if got := ScaledTimerMinutes(tt.base, tt.bonus); got != tt.want {
			t.Fatalf("ScaledTimerMinutes(%d, %v) = %d, want %d", tt.base, tt.bonus, got, tt.want)
		}
	}
}

func TestValidStat(t *testing.T) {
	for _, stat := range []string{StatVocal, StatDance, StatVisual, StatCharm, StatStamina} {
		if !ValidStat(stat) {
			t.Fatalf("expected %q to be valid", stat)
		}
	}
	for _, stat := range []string{"", "luck", "VOCAL"} {
		if ValidStat(stat) {
			t.Fatalf("expected %q to be invalid", stat)
		}
	}
}

func TestRollRarity(t *testing.T) {
	dice := NewDice(42)
	seen := map[Rarity]int{}
	for i := 0; i < 10000; i++ {
		seen[RollRarity(dice)]++
	}

	for _, r := range []Rarity{RarityCommon, RarityUncommon, RarityRare, RarityEpic, RarityLegendary} {
		if seen[r] == 0 {
			t.Fatalf("rarity %q never rolled in 10000 trials", r)
		}
	}
	if len(seen) != 5 {
		t.Fatalf("unexpected rarity values: %v", seen)
	}
	// Common carries half the weight; it must dominate.
	if seen[RarityCommon] < seen[RarityLegendary] {
		t.Fatalf("weights inverted: common=%d legendary=%d", seen[RarityCommon], seen[RarityLegendary])
	}
}

func TestGenerateIdolStatsWithinRarityRange(t *testing.T) {
	dice := NewDice(7)
	for i := 0; i < 1000; i++ {
		draft := GenerateIdol(dice, 0)
		rng := statRangeFor(draft.Rarity)
		for _, stat := range []int{draft.Vocal, draft.Dance, draft.Visual, draft.Charm, draft.Stamina} {
			if stat < rng.Min || stat > rng.Max {
				t.Fatalf("stat %d outside [%d,%d] for rarity %q", stat, rng.Min, rng.Max, draft.Rarity)
			}
		}
		if draft.Name == "" || draft.SpriteKey == "" {
			t.Fatalf("draft missing name or sprite: %+v", draft)
		}
	}
}

func TestGenerateIdolQualityBonusCapped(t *testing.T) {
	dice := NewDice(99)
	for i := 0; i < 1000; i++ {
		draft := GenerateIdol(dice, 0.50)
		for _, stat := range []int{draft.Vocal, draft.Dance, draft.Visual, draft.Charm, draft.Stamina} {
			if stat > 100 {
				t.Fatalf("quality bonus pushed stat past 100: %d", stat)
			}
		}
	}
}
