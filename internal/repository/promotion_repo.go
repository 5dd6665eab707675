package repository

import (
	"context"
	"errors"
	"time"

	"idolagency/internal/model"

	"gorm.io/gorm"
)

var ErrPromotionNotFound = errors.New("promotion not found")

type PromotionRepository struct {
	db *gorm.DB
}

func NewPromotionRepository(db *gorm.DB) *PromotionRepository {
	return &PromotionRepository{db: db}
}

func (r *PromotionRepository) Create(ctx context.Context, tx *gorm.DB, promotion *model.Promotion) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).Create(promotion).Error
}

func (r *PromotionRepository) GetByID(ctx context.Context, id int64) (*model.Promotion, error) {
	var promotion model.Promotion
	err := r.db.WithContext(ctx).
		Preload("Group").
		Preload("Song").
		First(&promotion, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPromotionNotFound
		}
		return nil, err
	}
	return &promotion, nil
}

func (r *PromotionRepository) ListByPlayer(ctx context.Context, playerID int64, limit int) ([]*model.Promotion, error) {
	var promotions []*model.Promotion
	err := r.db.WithContext(ctx).
		Preload("Group").
		Preload("Song").
		Where("player_id = ?", playerID).
		Order("created_at DESC").
		Limit(limit).
		Find(&promotions).Error
	return promotions, err
}

// MarkCompleted stamps completed_at exactly once. The completed_at IS
// NULL predicate is the idempotency guard: a second completion attempt
// matches zero rows, so rewards can never be granted twice.
func (r *PromotionRepository) MarkCompleted(ctx context.Context, tx *gorm.DB, promotionID int64, now time.Time) (bool, error) {
	if tx == nil {
		tx = r.db
	}
	result := tx.WithContext(ctx).
		Model(&model.Promotion{}).
		Where("id = ? AND completed_at IS NULL AND ends_at <= ?", promotionID, now).
		Update("completed_at", now)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
