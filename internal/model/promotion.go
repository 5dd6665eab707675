package model

import (
	"time"
)

type PromotionType string

const (
	PromotionSocialPost     PromotionType = "social_post"
	PromotionPressInterview PromotionType = "press_interview"
	PromotionTVAppearance   PromotionType = "tv_appearance"
	PromotionShowcase       PromotionType = "showcase"
	PromotionFansign        PromotionType = "fansign"
)

// PromotionConfig is the static tuning for one promotion type. The
// catalog is a closed set resolved by exhaustive switch, so an unknown
// type is rejected at the boundary instead of failing a map lookup deep
// in the reward math.
type PromotionConfig struct {
	Type               PromotionType `json:"type"`
	Name               string        `json:"name"`
	Cost               int64         `json:"cost"`
	DurationMinutes    int           `json:"duration_minutes"`
	BaseFans           int64         `json:"base_fans"`
	BaseMoney          int64         `json:"base_money"`
	BaseReputation     int64         `json:"base_reputation"`
	RequiredFans       int64         `json:"required_fans"`
	RequiredReputation int64         `json:"required_reputation"`
	ViralChance        float64       `json:"viral_chance"`
	ViralMultiplier    int64         `json:"viral_multiplier"`
}

// PromotionConfigFor resolves the catalog entry for a type.
func PromotionConfigFor(t PromotionType) (PromotionConfig, bool) {
	switch t {
	case PromotionSocialPost:
		return PromotionConfig{
			Type: t, Name: "Social Media Post",
			Cost: 500, DurationMinutes: 1,
			BaseFans: 50, BaseMoney: 100, BaseReputation: 5,
			RequiredFans: 0, RequiredReputation: 0,
			ViralChance: 0.10, ViralMultiplier: 5,
		}, true
	case PromotionPressInterview:
		return PromotionConfig{
			Type: t, Name: "Press Interview",
			Cost: 2000, DurationMinutes: 3,
			BaseFans: 150, BaseMoney: 500, BaseReputation: 20,
			RequiredFans: 500, RequiredReputation: 5,
			ViralChance: 0.05, ViralMultiplier: 3,
		}, true
	case PromotionTVAppearance:
		return PromotionConfig{
			Type: t, Name: "TV Appearance",
			Cost: 5000, DurationMinutes: 5,
			BaseFans: 400, BaseMoney: 2000, BaseReputation: 50,
			RequiredFans: 2000, RequiredReputation: 20,
			ViralChance: 0.15, ViralMultiplier: 4,
		}, true
	case PromotionShowcase:
		return PromotionConfig{
			Type: t, Name: "Showcase Event",
			Cost: 10000, DurationMinutes: 10,
			BaseFans: 800, BaseMoney: 5000, BaseReputation: 100,
			RequiredFans: 5000, RequiredReputation: 50,
			ViralChance: 0.20, ViralMultiplier: 3,
		}, true
	case PromotionFansign:
		return PromotionConfig{
			Type: t, Name: "Fansign Event",
			Cost: 3000, DurationMinutes: 5,
			BaseFans: 300, BaseMoney: 1500, BaseReputation: 30,
			RequiredFans: 1000, RequiredReputation: 10,
			ViralChance: 0.08, ViralMultiplier: 2,
		}, true
	}
	return PromotionConfig{}, false
}

// PromotionCatalog lists all promotion types in display order.
func PromotionCatalog() []PromotionConfig {
	types := []PromotionType{
		PromotionSocialPost,
		PromotionPressInterview,
		PromotionTVAppearance,
		PromotionShowcase,
		PromotionFansign,
	}
	out := make([]PromotionConfig, 0, len(types))
	for _, t := range types {
		cfg, _ := PromotionConfigFor(t)
		out = append(out, cfg)
	}
	return out
}

const PromotionCompletionXP = 15

type Promotion struct {
	ID               int64         `gorm:"primaryKey;autoIncrement" json:"id"`
	PromotionNo      string        `gorm:"type:varchar(64);uniqueIndex;not null" json:"promotion_no"`
	PlayerID         int64         `gorm:"index;not null" json:"player_id"`
	GroupID          int64         `gorm:"index;not null" json:"group_id"`
	SongID           int64         `gorm:"index;not null" json:"song_id"`
	Type             PromotionType `gorm:"type:varchar(32);not null" json:"type"`
	Cost             int64         `gorm:"not null" json:"cost"`
	FanReward        int64         `gorm:"not null" json:"fan_reward"`
	MoneyReward      int64         `gorm:"not null" json:"money_reward"`
	ReputationReward int64         `gorm:"not null" json:"reputation_reward"`
	WentViral        bool          `gorm:"not null;default:false" json:"went_viral"`
	StartedAt        time.Time     `gorm:"not null" json:"started_at"`
	EndsAt           time.Time     `gorm:"not null" json:"ends_at"`
	CompletedAt      *time.Time    `json:"completed_at"`
	CreatedAt        time.Time     `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt        time.Time     `gorm:"autoUpdateTime" json:"updated_at"`

	Group *Group `gorm:"foreignKey:GroupID" json:"group,omitempty"`
	Song  *Song  `gorm:"foreignKey:SongID" json:"song,omitempty"`
}

func (Promotion) TableName() string {
	return "promotions"
}

// PromotionStatus is derived from the row and the clock. Completion is
// an explicit player action, not a lazy flip: rewards are committed at
// start time and only granted when the player claims them.
type PromotionStatus string

const (
	PromotionActive    PromotionStatus = "active"
	PromotionReady     PromotionStatus = "ready"
	PromotionCompleted PromotionStatus = "completed"
)

func (p *Promotion) StatusAt(now time.Time) PromotionStatus {
	if p.CompletedAt != nil {
		return PromotionCompleted
	}
	if p.EndsAt.After(now) {
		return PromotionActive
	}
	return PromotionReady
}

func (p *Promotion) IsActiveAt(now time.Time) bool {
	return p.StatusAt(now) == PromotionActive
}

func (p *Promotion) IsReadyAt(now time.Time) bool {
	return p.StatusAt(now) == PromotionReady
}

func (p *Promotion) IsCompleted() bool {
	return p.CompletedAt != nil
}

// PromotionRewards is the outcome of a single reward computation. The
// viral roll happens exactly once, at promotion start; the amounts are
// stored on the row and granted unchanged at completion.
type PromotionRewards struct {
	Fans       int64 `json:"fans"`
	Money      int64 `json:"money"`
	Reputation int64 `json:"reputation"`
	WentViral  bool  `json:"went_viral"`
}

// CalculateRewards applies the reward formula:
//
//	powerMultiplier     = 1 + (groupAvgStarPower + songPower) / 200
//	promotionMultiplier = 1 + promotionBonus
//	reward              = floor(base * powerMultiplier * promotionMultiplier)
//
// then a single viral trial with chance = config + viralityBonus. The
// chance is intentionally not clamped at 1: stacked bonuses can make
// viral guaranteed.
func CalculateRewards(cfg PromotionConfig, groupAvgStarPower, songPower float64, promotionBonus, viralityBonus float64, dice *Dice) PromotionRewards {
	powerMultiplier := 1 + (groupAvgStarPower+songPower)/200
	promotionMultiplier := 1 + promotionBonus

	rewards := PromotionRewards{
		Fans:       int64(float64(cfg.BaseFans) * powerMultiplier * promotionMultiplier),
		Money:      int64(float64(cfg.BaseMoney) * powerMultiplier * promotionMultiplier),
		Reputation: int64(float64(cfg.BaseReputation) * powerMultiplier * promotionMultiplier),
	}

	viralChance := cfg.ViralChance + viralityBonus
	if dice.Float() <= viralChance {
		rewards.WentViral = true
		rewards.Fans *= cfg.ViralMultiplier
		rewards.Money *= cfg.ViralMultiplier
		rewards.Reputation *= cfg.ViralMultiplier
	}

	return rewards
}
