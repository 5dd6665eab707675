package repository

import (
	"context"
	"errors"

	"idolagency/internal/model"

	"gorm.io/gorm"
)

var ErrManagerNotFound = errors.New("manager not found")

type ManagerRepository struct {
	db *gorm.DB
}

func NewManagerRepository(db *gorm.DB) *ManagerRepository {
	return &ManagerRepository{db: db}
}

func (r *ManagerRepository) List(ctx context.Context) ([]*model.Manager, error) {
	var managers []*model.Manager
	err := r.db.WithContext(ctx).Order("id ASC").Find(&managers).Error
	return managers, err
}

func (r *ManagerRepository) GetByID(ctx context.Context, id int64) (*model.Manager, error) {
	var manager model.Manager
	err := r.db.WithContext(ctx).First(&manager, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrManagerNotFound
		}
		return nil, err
	}
	return &manager, nil
}
