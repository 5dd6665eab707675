package model

import (
	"strings"
	"time"
)

// Passive event tuning: each pulse can fire a handful of random idol
// activities that trickle money and fans into the ledger.
const (
	MaxEventsPerPulse = 2
	EventLogLimit     = 25
)

type eventConfig struct {
	kind     string
	moneyLo  int
	moneyHi  int
	fansLo   int
	fansHi   int
	template string
}

var eventTypes = []eventConfig{
	{"instagram_post", 200, 400, 50, 120, "{idol} posted a viral photo!"},
	{"livestream", 500, 900, 150, 300, "{idol} went live and wowed fans!"},
	{"fansign", 800, 1200, 250, 400, "{idol} hosted a fansign event!"},
	{"solo_release", 1200, 2000, 400, 650, "{idol} dropped a solo track!"},
	{"pop_up_busking", 300, 700, 120, 220, "{idol} did a pop-up busking show!"},
	{"behind_the_scenes", 150, 350, 60, 140, "{idol} shared behind-the-scenes moments!"},
}

// PulseEvent is one random passive event applied to the ledger.
type PulseEvent struct {
	Type      string    `json:"type"`
	IdolID    int64     `json:"idol_id"`
	IdolName  string    `json:"idol_name"`
	Money     int64     `json:"money"`
	Fans      int64     `json:"fans"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// GeneratePulseEvents rolls up to min(MaxEventsPerPulse, ceil(n/3))
// events for the given idols. The roll can come up empty.
func GeneratePulseEvents(dice *Dice, idols []Idol, now time.Time) []PulseEvent {
	if len(idols) == 0 {
		return nil
	}

	potential := (len(idols) + 2) / 3
	if potential < 1 {
		potential = 1
	}
	if potential > MaxEventsPerPulse {
		potential = MaxEventsPerPulse
	}
	count := dice.Between(0, potential)

	events := make([]PulseEvent, 0, count)
	for i := 0; i < count; i++ {
		idol := idols[dice.Pick(len(idols))]
		cfg := eventTypes[dice.Pick(len(eventTypes))]

		events = append(events, PulseEvent{
			Type:      cfg.kind,
			IdolID:    idol.ID,
			IdolName:  idol.Name,
			Money:     int64(dice.Between(cfg.moneyLo, cfg.moneyHi)),
			Fans:      int64(dice.Between(cfg.fansLo, cfg.fansHi)),
			Message:   strings.ReplaceAll(cfg.template, "{idol}", idol.Name),
			Timestamp: now,
		})
	}

	if len(events) > EventLogLimit {
		events = events[:EventLogLimit]
	}
	return events
}
