package model

import (
	"time"
)

// BonusKind names the single percentage bonus a manager grants.
type BonusKind string

const (
	BonusPromotion BonusKind = "promotion_boost"
	BonusTraining  BonusKind = "training_speed"
	BonusVirality  BonusKind = "virality_chance"
	BonusAward     BonusKind = "award_chance"
	BonusScouting  BonusKind = "scouting_quality"
)

// Manager is a catalog entity shared by all players; a player selects at
// most one at a time.
type Manager struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name       string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	BonusType  BonusKind `gorm:"type:varchar(32);not null" json:"bonus_type"`
	BonusValue float64   `gorm:"not null" json:"bonus_value"`
	FlavorText string    `gorm:"type:varchar(255)" json:"flavor_text"`
	SpriteKey  string    `gorm:"type:varchar(32)" json:"sprite_key"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Manager) TableName() string {
	return "managers"
}

// DefaultManagers seeds the catalog on first boot.
func DefaultManagers() []Manager {
	return []Manager{
		{
			Name:       "Marble Mall",
			BonusType:  BonusPromotion,
			BonusValue: 0.15,
			FlavorText: "PR mastermind who can make any news cycle sparkle.",
			SpriteKey:  "manager_marble",
		},
		{
			Name:       "Nela Space",
			BonusType:  BonusTraining,
			BonusValue: 0.20,
			FlavorText: "Relentless coach who squeezes 20% more out of every practice.",
			SpriteKey:  "manager_nela",
		},
		{
			Name:       "Spach Murmen",
			BonusType:  BonusVirality,
			BonusValue: 0.10,
			FlavorText: "Social sorcerer with an eye for viral moments.",
			SpriteKey:  "manager_spach",
		},
		{
			Name:       "Harris Suppick",
			BonusType:  BonusScouting,
			BonusValue: 0.12,
			FlavorText: "Talent bloodhound who finds hidden gems with ease.",
			SpriteKey:  "manager_harris",
		},
	}
}
