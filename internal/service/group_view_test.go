package service

import (
	"testing"

	"idolagency/internal/model"
)

func TestNewGroupViewAggregates(t *testing.T) {
	group := &model.Group{
		Name: "Aurora",
		Members: []model.Idol{
			{Vocal: 80, Dance: 60, Visual: 40, Charm: 100, Stamina: 20}, // star power 65
			{Vocal: 40, Dance: 40, Visual: 40, Charm: 40, Stamina: 40},  // star power 40
		},
	}

	view := NewGroupView(group)
	if view.MemberCount != 2 {
		t.Fatalf("member count = %d, want 2", view.MemberCount)
	}
	if view.TotalStarPower != 105 {
		t.Fatalf("total star power = %d, want 105", view.TotalStarPower)
	}
	if view.AverageStarPower != 52.5 {
		t.Fatalf("average star power = %v, want 52.5", view.AverageStarPower)
	}
	if view.AverageVocal != 60 || view.AverageDance != 50 || view.AverageVisual != 40 {
		t.Fatalf("stat averages = %v/%v/%v, want 60/50/40",
			view.AverageVocal, view.AverageDance, view.AverageVisual)
	}
}

func TestNewGroupViewsEmptyGroup(t *testing.T) {
	views := NewGroupViews([]*model.Group{{Name: "Solo"}})
	if len(views) != 1 {
		t.Fatalf("got %d views, want 1", len(views))
	}
	view := views[0]
	if view.MemberCount != 0 || view.TotalStarPower != 0 || view.AverageStarPower != 0 {
		t.Fatalf("empty group aggregates should be zero: %+v", view)
	}
}
