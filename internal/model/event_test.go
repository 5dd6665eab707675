package model

import (
	"strings"
	"testing"
	"time"
)

func TestGeneratePulseEventsEmptyRoster(t *testing.T) {
	dice := NewDice(1)
	if events := GeneratePulseEvents(dice, nil, time.Now()); events != nil {
		t.Fatalf("empty roster should produce no events, got %d", len(events))
	}
}

func TestGeneratePulseEventsBounds(t *testing.T) {
	dice := NewDice(11)
	now := time.Now()
	idols := []Idol{
		{ID: 1, Name: "Minho"},
		{ID: 2, Name: "Felix"},
		{ID: 3, Name: "San"},
		{ID: 4, Name: "Jake"},
		{ID: 5, Name: "Ten"},
		{ID: 6, Name: "Leo"},
	}

	for i := 0; i < 500; i++ {
		events := GeneratePulseEvents(dice, idols, now)
		if len(events) > MaxEventsPerPulse {
			t.Fatalf("got %d events, cap is %d", len(events), MaxEventsPerPulse)
		}
		for _, event := range events {
			if event.Money <= 0 || event.Fans <= 0 {
				t.Fatalf("event payouts must be positive: %+v", event)
			}
			if !strings.Contains(event.Message, event.IdolName) {
				t.Fatalf("message %q missing idol name %q", event.Message, event.IdolName)
			}
			if event.IdolID == 0 {
				t.Fatalf("event not bound to an idol: %+v", event)
			}
		}
	}
}

func TestGeneratePulseEventsSmallRoster(t *testing.T) {
	dice := NewDice(5)
	idols := []Idol{{ID: 1, Name: "Solo"}}

	// ceil(1/3) = 1 potential event at most.
	for i := 0; i < 200; i++ {
		if events := GeneratePulseEvents(dice, idols, time.Now()); len(events) > 1 {
			t.Fatalf("single idol rolled %d events", len(events))
		}
	}
}
