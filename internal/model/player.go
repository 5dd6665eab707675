package model

import (
	"time"
)

// Starting resources for a fresh agency.
const (
	StartingMoney      = 50000
	StartingFans       = 0
	StartingReputation = 0
)

// PlayerProfile is the player's ledger: every money/fans/reputation
// mutation goes through ledger operations, never direct writes.
type PlayerProfile struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     int64     `gorm:"uniqueIndex;not null" json:"user_id"`
	AgencyName string    `gorm:"type:varchar(255);not null;default:'My Agency'" json:"agency_name"`
	Money      int64     `gorm:"not null;default:0" json:"money"`
	Fans       int64     `gorm:"not null;default:0" json:"fans"`
	Reputation int64     `gorm:"not null;default:0" json:"reputation"`
	Level      int       `gorm:"not null;default:1" json:"level"`
	Experience int64     `gorm:"not null;default:0" json:"experience"`
	ManagerID  *int64    `gorm:"index" json:"manager_id"`
	Version    int       `gorm:"not null;default:0" json:"-"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Manager *Manager `gorm:"foreignKey:ManagerID" json:"manager,omitempty"`
}

func (PlayerProfile) TableName() string {
	return "player_profiles"
}

// ExperienceToLevel returns the experience needed to clear the given level.
func ExperienceToLevel(level int) int64 {
	return int64(level) * 100
}

// ApplyExperience adds gained experience and cascades level-ups until
// experience < level*100 holds again. Handles multi-level jumps.
func ApplyExperience(level int, experience, gained int64) (int, int64) {
	experience += gained
	for experience >= ExperienceToLevel(level) {
		experience -= ExperienceToLevel(level)
		level++
	}
	return level, experience
}

// ManagerBonus returns the bonus value if the selected manager grants the
// given kind, 0 otherwise. Requires Manager to be preloaded.
func (p *PlayerProfile) ManagerBonus(kind BonusKind) float64 {
	if p.Manager == nil || p.Manager.BonusType != kind {
		return 0
	}
	return p.Manager.BonusValue
}
