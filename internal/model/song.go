package model

import (
	"time"
)

type Genre string

const (
	GenrePop    Genre = "pop"
	GenreDance  Genre = "dance"
	GenreBallad Genre = "ballad"
	GenreHiphop Genre = "hiphop"
	GenreRnB    Genre = "rnb"
	GenreEDM    Genre = "edm"
	GenreRock   Genre = "rock"
)

func ValidGenre(g Genre) bool {
	switch g {
	case GenrePop, GenreDance, GenreBallad, GenreHiphop, GenreRnB, GenreEDM, GenreRock:
		return true
	}
	return false
}

const (
	SongProductionCost        = 8000
	SongProductionBaseMinutes = 5
	SongBaseQualityMin        = 40
	SongBaseQualityMax        = 80
	SongHypeMin               = 30
	SongHypeMax               = 70
)

// SongStatus is derived from the row and the clock, never stored.
type SongStatus string

const (
	SongInProduction SongStatus = "in_production"
	SongCompleted    SongStatus = "completed"
)

type Song struct {
	ID               int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	PlayerID         int64      `gorm:"index;not null" json:"player_id"`
	GroupID          int64      `gorm:"index;not null" json:"group_id"`
	Title            string     `gorm:"type:varchar(255);not null" json:"title"`
	Genre            Genre      `gorm:"type:varchar(20);not null" json:"genre"`
	Quality          int        `gorm:"not null;default:0" json:"quality"`
	Hype             int        `gorm:"not null;default:0" json:"hype"`
	ProductionCost   int64      `gorm:"not null;default:0" json:"production_cost"`
	ProductionEndsAt time.Time  `gorm:"not null" json:"production_ends_at"`
	CompletedAt      *time.Time `json:"completed_at"`
	CreatedAt        time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	Group *Group `gorm:"foreignKey:GroupID" json:"group,omitempty"`
}

func (Song) TableName() string {
	return "songs"
}

// StatusAt derives the song state from the clock. Persisting CompletedAt
// is a separate, idempotent commit step done by whoever observes the
// elapsed timer first (see SongRepository.CommitCompletion).
func (s *Song) StatusAt(now time.Time) SongStatus {
	if s.CompletedAt != nil || !s.ProductionEndsAt.After(now) {
		return SongCompleted
	}
	return SongInProduction
}

func (s *Song) IsCompletedAt(now time.Time) bool {
	return s.StatusAt(now) == SongCompleted
}

// PromotionPower is the song's contribution to promotion rewards.
// Requires Group.Members to be preloaded for the group bonus.
func (s *Song) PromotionPower() int {
	base := s.Quality + s.Hype
	if s.Group != nil {
		return base + int(s.Group.AverageStarPower()*0.5)
	}
	return base
}

// SongQuality applies the group bonus to a rolled base quality, capped
// at 100.
func SongQuality(baseQuality int, group *Group) int {
	q := int(float64(baseQuality) * (1 + group.SongQualityBonus()))
	if q > 100 {
		q = 100
	}
	return q
}

var (
	songTitlePrefixes = []string{"Love", "Star", "Dream", "Fire", "Ice", "Night", "Day", "Moon", "Sun", "Heart"}
	songTitleSuffixes = []string{"Story", "Light", "Dance", "Kiss", "Beat", "Fever", "Rush", "Game", "Way", "Time"}
)

func GenerateSongTitle(dice *Dice) string {
	return songTitlePrefixes[dice.Pick(len(songTitlePrefixes))] + " " +
		songTitleSuffixes[dice.Pick(len(songTitleSuffixes))]
}
