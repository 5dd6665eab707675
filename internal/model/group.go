package model

import (
	"time"
)

type Concept string

const (
	ConceptCute      Concept = "cute"
	ConceptGirlCrush Concept = "girl_crush"
	ConceptElegant   Concept = "elegant"
	ConceptFresh     Concept = "fresh"
	ConceptPowerful  Concept = "powerful"
	ConceptDark      Concept = "dark"
	ConceptRetro     Concept = "retro"
)

func ValidConcept(c Concept) bool {
	switch c {
	case ConceptCute, ConceptGirlCrush, ConceptElegant, ConceptFresh,
		ConceptPowerful, ConceptDark, ConceptRetro:
		return true
	}
	return false
}

const (
	GroupMinMembers   = 2
	GroupMaxMembers   = 7
	GroupCreationCost = 10000
)

type Group struct {
	ID         int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	PlayerID   int64      `gorm:"index;not null" json:"player_id"`
	Name       string     `gorm:"type:varchar(255);not null" json:"name"`
	Concept    Concept    `gorm:"type:varchar(20);not null" json:"concept"`
	Popularity int64      `gorm:"not null;default:0" json:"popularity"`
	DebutDate  *time.Time `json:"debut_date"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	Members []Idol `gorm:"many2many:group_members;" json:"members,omitempty"`
}

func (Group) TableName() string {
	return "groups"
}

// GroupMember is the join table; Position is a flavor label (leader,
// main vocal, ...).
type GroupMember struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	GroupID   int64     `gorm:"uniqueIndex:idx_group_idol;not null" json:"group_id"`
	IdolID    int64     `gorm:"uniqueIndex:idx_group_idol;not null" json:"idol_id"`
	Position  string    `gorm:"type:varchar(50)" json:"position"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (GroupMember) TableName() string {
	return "group_members"
}

// Aggregates below are always recomputed from the loaded member set,
// never cached on the row.

func (g *Group) AverageStarPower() float64 {
	if len(g.Members) == 0 {
		return 0
	}
	total := 0
	for i := range g.Members {
		total += g.Members[i].StarPower()
	}
	return float64(total) / float64(len(g.Members))
}

func (g *Group) TotalStarPower() int {
	total := 0
	for i := range g.Members {
		total += g.Members[i].StarPower()
	}
	return total
}

func (g *Group) averageStat(pick func(*Idol) int) float64 {
	if len(g.Members) == 0 {
		return 0
	}
	total := 0
	for i := range g.Members {
		total += pick(&g.Members[i])
	}
	return float64(total) / float64(len(g.Members))
}

func (g *Group) AverageVocal() float64 {
	return g.averageStat(func(i *Idol) int { return i.Vocal })
}

func (g *Group) AverageDance() float64 {
	return g.averageStat(func(i *Idol) int { return i.Dance })
}

func (g *Group) AverageVisual() float64 {
	return g.averageStat(func(i *Idol) int { return i.Visual })
}

// SongQualityBonus scales song quality with member strength: up to +50%
// at 100 average star power.
func (g *Group) SongQualityBonus() float64 {
	return g.AverageStarPower() / 200
}
