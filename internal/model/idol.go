package model

import (
	"fmt"
	"time"
)

type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// StatRange bounds the five stats an idol of a rarity tier rolls within.
type StatRange struct {
	Min int
	Max int
}

func statRangeFor(r Rarity) StatRange {
	switch r {
	case RarityUncommon:
		return StatRange{Min: 35, Max: 60}
	case RarityRare:
		return StatRange{Min: 50, Max: 75}
	case RarityEpic:
		return StatRange{Min: 65, Max: 88}
	case RarityLegendary:
		return StatRange{Min: 80, Max: 100}
	default:
		return StatRange{Min: 20, Max: 45}
	}
}

const (
	ScoutCost = 1000
	PackCost  = 2500

	TrainingCost        = 1000
	TrainingBaseMinutes = 2
	TrainingMinGain     = 1
	TrainingMaxGain     = 5

	PackSize       = 5
	PackTTLSeconds = 600
)

// Trainable stats.
const (
	StatVocal   = "vocal"
	StatDance   = "dance"
	StatVisual  = "visual"
	StatCharm   = "charm"
	StatStamina = "stamina"
)

func ValidStat(stat string) bool {
	switch stat {
	case StatVocal, StatDance, StatVisual, StatCharm, StatStamina:
		return true
	}
	return false
}

type Idol struct {
	ID            int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	PlayerID      int64      `gorm:"index;not null" json:"player_id"`
	Name          string     `gorm:"type:varchar(255);not null" json:"name"`
	Vocal         int        `gorm:"not null;default:50" json:"vocal"`
	Dance         int        `gorm:"not null;default:50" json:"dance"`
	Visual        int        `gorm:"not null;default:50" json:"visual"`
	Charm         int        `gorm:"not null;default:50" json:"charm"`
	Stamina       int        `gorm:"not null;default:50" json:"stamina"`
	Popularity    int64      `gorm:"not null;default:0" json:"popularity"`
	TrainingUntil *time.Time `json:"training_until"`
	SpriteKey     string     `gorm:"type:varchar(32)" json:"sprite_key"`
	Rarity        Rarity     `gorm:"type:varchar(20);not null;default:'common'" json:"rarity"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	Groups []Group `gorm:"many2many:group_members;" json:"groups,omitempty"`
}

func (Idol) TableName() string {
	return "idols"
}

// StarPower is the weighted composite of the five stats, truncated.
func (i *Idol) StarPower() int {
	return int(float64(i.Vocal)*0.25 +
		float64(i.Dance)*0.25 +
		float64(i.Visual)*0.20 +
		float64(i.Charm)*0.20 +
		float64(i.Stamina)*0.10)
}

// ScaledTimerMinutes shortens a base timer by a speed bonus. The scaled
// value truncates to whole minutes and never drops below one.
func ScaledTimerMinutes(base int, speedBonus float64) int {
	minutes := int(float64(base) * (1 - speedBonus))
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

// IsTrainingAt reports whether the idol is still blocked by a training
// timer at the given instant.
func (i *Idol) IsTrainingAt(now time.Time) bool {
	return i.TrainingUntil != nil && i.TrainingUntil.After(now)
}

// Stat returns the named stat value; callers must validate the name first.
func (i *Idol) Stat(name string) int {
	switch name {
	case StatVocal:
		return i.Vocal
	case StatDance:
		return i.Dance
	case StatVisual:
		return i.Visual
	case StatCharm:
		return i.Charm
	case StatStamina:
		return i.Stamina
	}
	return 0
}

// IdolDraft is a generated idol that has not been persisted yet. Pack
// offers hold drafts until the player commits to one.
type IdolDraft struct {
	Name      string `json:"name"`
	Vocal     int    `json:"vocal"`
	Dance     int    `json:"dance"`
	Visual    int    `json:"visual"`
	Charm     int    `json:"charm"`
	Stamina   int    `json:"stamina"`
	Rarity    Rarity `json:"rarity"`
	SpriteKey string `json:"sprite_key"`
}

// PackOffer is the ephemeral cache record for an opened idol pack. It is
// not a durable entity: it lives in redis between creation and either
// redemption or TTL expiry, and is consumed at most once.
type PackOffer struct {
	PlayerID int64       `json:"player_id"`
	Drafts   []IdolDraft `json:"drafts"`
	Cost     int64       `json:"cost"`
}

// RollRarity picks a rarity tier with weights 50/30/14/5/1.
func RollRarity(dice *Dice) Rarity {
	roll := dice.Roll(100)
	switch {
	case roll <= 50:
		return RarityCommon
	case roll <= 80:
		return RarityUncommon
	case roll <= 94:
		return RarityRare
	case roll <= 99:
		return RarityEpic
	default:
		return RarityLegendary
	}
}

// GenerateIdol rolls a fresh idol draft. qualityBonus (scouting manager)
// widens the stat ceiling: max' = min(100, max*(1+bonus)).
func GenerateIdol(dice *Dice, qualityBonus float64) IdolDraft {
	rarity := RollRarity(dice)
	rng := statRangeFor(rarity)

	lo := rng.Min
	hi := int(float64(rng.Max) * (1 + qualityBonus))
	if hi > 100 {
		hi = 100
	}

	return IdolDraft{
		Name:      idolNames[dice.Pick(len(idolNames))],
		Vocal:     dice.Between(lo, hi),
		Dance:     dice.Between(lo, hi),
		Visual:    dice.Between(lo, hi),
		Charm:     dice.Between(lo, hi),
		Stamina:   dice.Between(lo, hi),
		Rarity:    rarity,
		SpriteKey: fmt.Sprintf("idol_%d", dice.Roll(12)),
	}
}

var idolNames = []string{
	"Minho", "Taehyun", "Woojin", "Hyunjin", "Seungmin", "Changbin", "Bangchan", "Heeseung",
	"Jake", "Jay", "Sunghoon", "Jungwon", "Sunoo", "Ni-ki", "Yeonjun", "Soobin", "Beomgyu",
	"Huening Kai", "Felix", "Yechan", "Jisung", "Jongho", "San", "Yeosang", "Wooyoung",
	"Mingi", "Hongjoong", "Yunho", "Seonghwa", "Jinyoung", "Mark", "Jaehyun", "Taeyong",
	"Doyoung", "Ten", "Renjun", "Jeno", "Haechan", "Jaemin", "Chenle", "Shotaro", "Sungchan",
	"Lucas", "Kihyun", "Changkyun", "Shownu", "Minhyuk", "Hyungwon", "I.M", "Hyuk",
	"Ravi", "N", "Leo", "Ken", "Hongseok", "Shinwon", "Yuto", "Yanan", "Yeo One",
	"Hui", "Kino", "Wooseok", "Jungwoo", "Taemin", "Jongin", "Joon", "Seok",
}
