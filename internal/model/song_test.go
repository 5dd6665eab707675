package model

import (
	"testing"
	"time"
)

func TestSongStatusAt(t *testing.T) {
	now := time.Now()

	producing := &Song{ProductionEndsAt: now.Add(time.Minute)}
	if got := producing.StatusAt(now); got != SongInProduction {
		t.Fatalf("got %q, want in_production", got)
	}

	// Elapsed window reads as completed even before the stamp lands.
	elapsed := &Song{ProductionEndsAt: now.Add(-time.Second)}
	if got := elapsed.StatusAt(now); got != SongCompleted {
		t.Fatalf("got %q, want completed", got)
	}
	if !elapsed.IsCompletedAt(now) {
		t.Fatal("expected completed")
	}

	stamp := now
	stamped := &Song{ProductionEndsAt: now.Add(time.Hour), CompletedAt: &stamp}
	if got := stamped.StatusAt(now); got != SongCompleted {
		t.Fatalf("stamped song: got %q, want completed", got)
	}
}

func TestPromotionPower(t *testing.T) {
	song := &Song{Quality: 70, Hype: 50}
	if got := song.PromotionPower(); got != 120 {
		t.Fatalf("ungrouped power: got %d, want 120", got)
	}

	song.Group = testGroup() // average star power 52.5
	if got := song.PromotionPower(); got != 146 {
		t.Fatalf("grouped power: got %d, want 146", got)
	}
}

func TestSongQualityCapped(t *testing.T) {
	g := testGroup()
	if got := SongQuality(40, g); got != 50 {
		t.Fatalf("got %d, want 50", got)
	}
	if got := SongQuality(90, g); got != 100 {
		t.Fatalf("bonus must cap at 100, got %d", got)
	}
}

func TestGenerateSongTitle(t *testing.T) {
	dice := NewDice(3)
	for i := 0; i < 50; i++ {
		title := GenerateSongTitle(dice)
		if title == "" || len(title) < 3 {
			t.Fatalf("bad title %q", title)
		}
	}
}

func TestValidGenre(t *testing.T) {
	if !ValidGenre(GenrePop) || !ValidGenre(GenreEDM) {
		t.Fatal("known genres should be valid")
	}
	if ValidGenre("trot") {
		t.Fatal("unknown genre should be invalid")
	}
}
