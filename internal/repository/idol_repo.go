package repository

import (
	"context"
	"errors"
	"time"

	"idolagency/internal/model"

	"gorm.io/gorm"
)

var ErrIdolNotFound = errors.New("idol not found")

type IdolRepository struct {
	db *gorm.DB
}

func NewIdolRepository(db *gorm.DB) *IdolRepository {
	return &IdolRepository{db: db}
}

func (r *IdolRepository) Create(ctx context.Context, tx *gorm.DB, idol *model.Idol) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).Create(idol).Error
}

func (r *IdolRepository) GetByID(ctx context.Context, id int64) (*model.Idol, error) {
	var idol model.Idol
	err := r.db.WithContext(ctx).Preload("Groups").First(&idol, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIdolNotFound
		}
		return nil, err
	}
	return &idol, nil
}

func (r *IdolRepository) ListByPlayer(ctx context.Context, playerID int64) ([]*model.Idol, error) {
	var idols []*model.Idol
	err := r.db.WithContext(ctx).
		Preload("Groups").
		Where("player_id = ?", playerID).
		Order("created_at DESC").
		Find(&idols).Error
	return idols, err
}

func (r *IdolRepository) ListByIDs(ctx context.Context, playerID int64, ids []int64) ([]*model.Idol, error) {
	var idols []*model.Idol
	err := r.db.WithContext(ctx).
		Where("player_id = ? AND id IN ?", playerID, ids).
		Find(&idols).Error
	return idols, err
}

// StartTraining applies the stat gain and arms the re-training timer in
// one guarded UPDATE. The training_until predicate makes concurrent
// train calls on the same idol race safely: only one can win.
func (r *IdolRepository) StartTraining(ctx context.Context, tx *gorm.DB, idolID int64, statColumn string, newValue int, until time.Time, now time.Time) (bool, error) {
	if tx == nil {
		tx = r.db
	}
	result := tx.WithContext(ctx).
		Model(&model.Idol{}).
		Where("id = ? AND (training_until IS NULL OR training_until <= ?)", idolID, now).
		Updates(map[string]interface{}{
			statColumn:       newValue,
			"training_until": until,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *IdolRepository) AddPopularity(ctx context.Context, tx *gorm.DB, idolID int64, amount int64) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).
		Model(&model.Idol{}).
		Where("id = ?", idolID).
		UpdateColumn("popularity", gorm.Expr("popularity + ?", amount)).Error
}

func (r *IdolRepository) Delete(ctx context.Context, tx *gorm.DB, idolID int64) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).Delete(&model.Idol{}, idolID).Error
}

// CountByPlayer lets the pulse endpoint short-circuit empty rosters
// without loading the member preloads.
func (r *IdolRepository) CountByPlayer(ctx context.Context, playerID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Idol{}).
		Where("player_id = ?", playerID).
		Count(&count).Error
	return count, err
}
