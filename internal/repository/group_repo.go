package repository

import (
	"context"
	"errors"

	"idolagency/internal/model"

	"gorm.io/gorm"
)

var ErrGroupNotFound = errors.New("group not found")

type GroupRepository struct {
	db *gorm.DB
}

func NewGroupRepository(db *gorm.DB) *GroupRepository {
	return &GroupRepository{db: db}
}

func (r *GroupRepository) Create(ctx context.Context, tx *gorm.DB, group *model.Group) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).Create(group).Error
}

func (r *GroupRepository) GetByID(ctx context.Context, id int64) (*model.Group, error) {
	var group model.Group
	err := r.db.WithContext(ctx).
		Preload("Members").
		First(&group, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}
	return &group, nil
}

func (r *GroupRepository) ListByPlayer(ctx context.Context, playerID int64) ([]*model.Group, error) {
	var groups []*model.Group
	err := r.db.WithContext(ctx).
		Preload("Members").
		Where("player_id = ?", playerID).
		Order("created_at DESC").
		Find(&groups).Error
	return groups, err
}

func (r *GroupRepository) Update(ctx context.Context, groupID int64, name string, concept model.Concept) error {
	return r.db.WithContext(ctx).
		Model(&model.Group{}).
		Where("id = ?", groupID).
		Updates(map[string]interface{}{
			"name":    name,
			"concept": concept,
		}).Error
}

func (r *GroupRepository) AddMember(ctx context.Context, tx *gorm.DB, groupID, idolID int64, position string) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).Create(&model.GroupMember{
		GroupID:  groupID,
		IdolID:   idolID,
		Position: position,
	}).Error
}

func (r *GroupRepository) RemoveMember(ctx context.Context, tx *gorm.DB, groupID, idolID int64) (bool, error) {
	if tx == nil {
		tx = r.db
	}
	result := tx.WithContext(ctx).
		Where("group_id = ? AND idol_id = ?", groupID, idolID).
		Delete(&model.GroupMember{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *GroupRepository) MemberCount(ctx context.Context, tx *gorm.DB, groupID int64) (int64, error) {
	if tx == nil {
		tx = r.db
	}
	var count int64
	err := tx.WithContext(ctx).
		Model(&model.GroupMember{}).
		Where("group_id = ?", groupID).
		Count(&count).Error
	return count, err
}

// IdolIsGrouped reports whether the idol already belongs to any group.
// One active group per idol is a business rule, not a schema constraint.
func (r *GroupRepository) IdolIsGrouped(ctx context.Context, tx *gorm.DB, idolID int64) (bool, error) {
	if tx == nil {
		tx = r.db
	}
	var count int64
	err := tx.WithContext(ctx).
		Model(&model.GroupMember{}).
		Where("idol_id = ?", idolID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GroupRepository) AddPopularity(ctx context.Context, tx *gorm.DB, groupID int64, amount int64) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).
		Model(&model.Group{}).
		Where("id = ?", groupID).
		UpdateColumn("popularity", gorm.Expr("popularity + ?", amount)).Error
}
