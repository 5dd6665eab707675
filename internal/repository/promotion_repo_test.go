package repository

import (
	"context"
	"testing"
	"time"

	"idolagency/internal/model"

	"gorm.io/gorm"
)

func seedPromotion(t *testing.T, db *gorm.DB, endsAt time.Time) *model.Promotion {
	t.Helper()
	promotion := &model.Promotion{
		PromotionNo: "PRM00000001",
		PlayerID:    1,
		GroupID:     1,
		SongID:      1,
		Type:        model.PromotionSocialPost,
		Cost:        500,
		FanReward:   50,
		MoneyReward: 100,
		StartedAt:   endsAt.Add(-time.Minute),
		EndsAt:      endsAt,
	}
	if err := db.Create(promotion).Error; err != nil {
		t.Fatalf("seed promotion: %v", err)
	}
	return promotion
}

func TestMarkCompletedStampsOnce(t *testing.T) {
	db := testDB(t)
	repo := NewPromotionRepository(db)
	ctx := context.Background()
	now := time.Now()

	promotion := seedPromotion(t, db, now.Add(-time.Minute))

	ok, err := repo.MarkCompleted(ctx, nil, promotion.ID, now)
	if err != nil {
		t.Fatalf("first completion: %v", err)
	}
	if !ok {
		t.Fatal("elapsed promotion should stamp on the first attempt")
	}

	ok, err = repo.MarkCompleted(ctx, nil, promotion.ID, now)
	if err != nil {
		t.Fatalf("second completion: %v", err)
	}
	if ok {
		t.Fatal("second completion attempt must not stamp again")
	}
}

func TestMarkCompletedRefusesRunningTimer(t *testing.T) {
	db := testDB(t)
	repo := NewPromotionRepository(db)
	ctx := context.Background()
	now := time.Now()

	promotion := seedPromotion(t, db, now.Add(time.Minute))

	ok, err := repo.MarkCompleted(ctx, nil, promotion.ID, now)
	if err != nil {
		t.Fatalf("completion attempt: %v", err)
	}
	if ok {
		t.Fatal("promotion with a running timer must not complete")
	}
}
