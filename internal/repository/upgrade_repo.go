package repository

import (
	"context"
	"errors"

	"idolagency/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UpgradeRepository struct {
	db *gorm.DB
}

func NewUpgradeRepository(db *gorm.DB) *UpgradeRepository {
	return &UpgradeRepository{db: db}
}

func (r *UpgradeRepository) ListByPlayer(ctx context.Context, playerID int64) ([]*model.AgencyUpgrade, error) {
	var upgrades []*model.AgencyUpgrade
	err := r.db.WithContext(ctx).
		Where("player_id = ?", playerID).
		Find(&upgrades).Error
	return upgrades, err
}

func (r *UpgradeRepository) GetByType(ctx context.Context, playerID int64, upgradeType model.UpgradeType) (*model.AgencyUpgrade, error) {
	var upgrade model.AgencyUpgrade
	err := r.db.WithContext(ctx).
		Where("player_id = ? AND type = ?", playerID, upgradeType).
		First(&upgrade).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &upgrade, nil
}

// GetOrCreate returns the row for (player, type), inserting a level 0
// row on first touch. The unique index plus DoNothing makes concurrent
// first purchases converge on one row.
func (r *UpgradeRepository) GetOrCreate(ctx context.Context, tx *gorm.DB, playerID int64, upgradeType model.UpgradeType) (*model.AgencyUpgrade, error) {
	if tx == nil {
		tx = r.db
	}
	fresh := &model.AgencyUpgrade{
		PlayerID: playerID,
		Type:     upgradeType,
		Level:    0,
	}
	err := tx.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(fresh).Error
	if err != nil {
		return nil, err
	}

	var upgrade model.AgencyUpgrade
	err = tx.WithContext(ctx).
		Where("player_id = ? AND type = ?", playerID, upgradeType).
		First(&upgrade).Error
	if err != nil {
		return nil, err
	}
	return &upgrade, nil
}

// IncrementLevel bumps the level only if it still matches what the
// caller priced against, so two concurrent purchases cannot both pay
// the level-N cost and land on level N+2.
func (r *UpgradeRepository) IncrementLevel(ctx context.Context, tx *gorm.DB, id int64, fromLevel int) (bool, error) {
	if tx == nil {
		tx = r.db
	}
	result := tx.WithContext(ctx).
		Model(&model.AgencyUpgrade{}).
		Where("id = ? AND level = ?", id, fromLevel).
		Update("level", fromLevel+1)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
