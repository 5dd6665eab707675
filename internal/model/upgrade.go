package model

import (
	"math"
	"time"
)

type UpgradeType string

const (
	UpgradePromoPayout     UpgradeType = "promo_payout"
	UpgradeVirality        UpgradeType = "virality"
	UpgradeProductionSpeed UpgradeType = "production_speed"
)

// UpgradeConfig is the static tuning for one upgrade track. Costs are
// charged in fans and reputation, both scaling geometrically per level.
type UpgradeConfig struct {
	Type               UpgradeType `json:"type"`
	Label              string      `json:"label"`
	Description        string      `json:"description"`
	BaseCostFans       int64       `json:"base_cost_fans"`
	BaseCostReputation int64       `json:"base_cost_reputation"`
	Scaling            float64     `json:"scaling"`
	BonusPerLevel      float64     `json:"bonus_per_level"`
	MaxLevel           int         `json:"max_level"`
}

func UpgradeConfigFor(t UpgradeType) (UpgradeConfig, bool) {
	switch t {
	case UpgradePromoPayout:
		return UpgradeConfig{
			Type:  t,
			Label: "Promotion Payout",
			Description: "Increase fans, money, and reputation earned " +
				"from promotions.",
			BaseCostFans:       800,
			BaseCostReputation: 5,
			Scaling:            1.6,
			BonusPerLevel:      0.05,
			MaxLevel:           10,
		}, true
	case UpgradeVirality:
		return UpgradeConfig{
			Type:               t,
			Label:              "Virality Chance",
			Description:        "Boost chance for promotions to go viral.",
			BaseCostFans:       1200,
			BaseCostReputation: 12,
			Scaling:            1.55,
			BonusPerLevel:      0.01,
			MaxLevel:           10,
		}, true
	case UpgradeProductionSpeed:
		return UpgradeConfig{
			Type:               t,
			Label:              "Production Speed",
			Description:        "Reduce song production time.",
			BaseCostFans:       1000,
			BaseCostReputation: 8,
			Scaling:            1.5,
			BonusPerLevel:      0.05,
			MaxLevel:           8,
		}, true
	}
	return UpgradeConfig{}, false
}

func UpgradeCatalog() []UpgradeConfig {
	types := []UpgradeType{UpgradePromoPayout, UpgradeVirality, UpgradeProductionSpeed}
	out := make([]UpgradeConfig, 0, len(types))
	for _, t := range types {
		cfg, _ := UpgradeConfigFor(t)
		out = append(out, cfg)
	}
	return out
}

// UpgradeCost is the price of the next level given the current one:
// round(base * scaling^level) for each resource.
func UpgradeCost(cfg UpgradeConfig, currentLevel int) (fans, reputation int64) {
	multiplier := math.Pow(cfg.Scaling, float64(currentLevel))
	fans = int64(math.Round(float64(cfg.BaseCostFans) * multiplier))
	reputation = int64(math.Round(float64(cfg.BaseCostReputation) * multiplier))
	return fans, reputation
}

// UpgradeBonus is the cumulative bonus at a level: level * perLevel,
// capped only by MaxLevel.
func UpgradeBonus(cfg UpgradeConfig, level int) float64 {
	return float64(level) * cfg.BonusPerLevel
}

// AgencyUpgrade is one player's progress on one upgrade track; unique
// per (player, type).
type AgencyUpgrade struct {
	ID        int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	PlayerID  int64       `gorm:"uniqueIndex:idx_player_upgrade;not null" json:"player_id"`
	Type      UpgradeType `gorm:"type:varchar(32);uniqueIndex:idx_player_upgrade;not null" json:"type"`
	Level     int         `gorm:"not null;default:0" json:"level"`
	CreatedAt time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
}

func (AgencyUpgrade) TableName() string {
	return "agency_upgrades"
}
