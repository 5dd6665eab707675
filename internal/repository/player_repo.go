package repository

import (
	"context"
	"errors"

	"idolagency/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrPlayerNotFound    = errors.New("player profile not found")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrOptimisticLock    = errors.New("concurrent update conflict, please retry")
)

type PlayerRepository struct {
	db *gorm.DB
}

func NewPlayerRepository(db *gorm.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) Create(ctx context.Context, tx *gorm.DB, profile *model.PlayerProfile) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).Create(profile).Error
}

func (r *PlayerRepository) GetByUserID(ctx context.Context, userID int64) (*model.PlayerProfile, error) {
	var profile model.PlayerProfile
	err := r.db.WithContext(ctx).
		Preload("Manager").
		Where("user_id = ?", userID).
		First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, id int64) (*model.PlayerProfile, error) {
	var profile model.PlayerProfile
	err := r.db.WithContext(ctx).
		Preload("Manager").
		First(&profile, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// GetForUpdate row-locks the profile inside the caller's transaction.
// The Manager association is loaded too since reward math needs it.
func (r *PlayerRepository) GetForUpdate(ctx context.Context, tx *gorm.DB, id int64) (*model.PlayerProfile, error) {
	var profile model.PlayerProfile
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&profile, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	if profile.ManagerID != nil {
		var manager model.Manager
		if err := tx.WithContext(ctx).First(&manager, *profile.ManagerID).Error; err == nil {
			profile.Manager = &manager
		}
	}
	return &profile, nil
}

// SpendMoney debits atomically: the balance check and the decrement are
// one conditional UPDATE, so two concurrent spends can never both pass a
// stale read. On a miss it distinguishes an empty wallet from a lost
// version race.
func (r *PlayerRepository) SpendMoney(ctx context.Context, tx *gorm.DB, id int64, amount int64, version int) error {
	result := tx.WithContext(ctx).
		Model(&model.PlayerProfile{}).
		Where("id = ? AND money >= ? AND version = ?", id, amount, version).
		Updates(map[string]interface{}{
			"money":   gorm.Expr("money - ?", amount),
			"version": gorm.Expr("version + 1"),
		})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		profile, err := r.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if profile.Money < amount {
			return ErrInsufficientFunds
		}
		return ErrOptimisticLock
	}

	return nil
}

// SpendFansReputation debits both resources in one conditional UPDATE.
// Agency upgrades charge fans and reputation together; a partial debit
// must never happen.
func (r *PlayerRepository) SpendFansReputation(ctx context.Context, tx *gorm.DB, id int64, fans, reputation int64, version int) error {
	result := tx.WithContext(ctx).
		Model(&model.PlayerProfile{}).
		Where("id = ? AND fans >= ? AND reputation >= ? AND version = ?", id, fans, reputation, version).
		Updates(map[string]interface{}{
			"fans":       gorm.Expr("fans - ?", fans),
			"reputation": gorm.Expr("reputation - ?", reputation),
			"version":    gorm.Expr("version + 1"),
		})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		profile, err := r.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if profile.Fans < fans || profile.Reputation < reputation {
			return ErrInsufficientFunds
		}
		return ErrOptimisticLock
	}

	return nil
}

// Credit adds to one resource column. Credits never fail a balance
// check, but still bump the version so in-flight debits retry.
func (r *PlayerRepository) Credit(ctx context.Context, tx *gorm.DB, id int64, resource string, amount int64) error {
	column := ""
	switch resource {
	case model.ResourceMoney:
		column = "money"
	case model.ResourceFans:
		column = "fans"
	case model.ResourceReputation:
		column = "reputation"
	default:
		return errors.New("unknown ledger resource: " + resource)
	}

	result := tx.WithContext(ctx).
		Model(&model.PlayerProfile{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			column:    gorm.Expr(column+" + ?", amount),
			"version": gorm.Expr("version + 1"),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPlayerNotFound
	}
	return nil
}

// UpdateProgress persists a level/experience pair computed by the
// level-up cascade.
func (r *PlayerRepository) UpdateProgress(ctx context.Context, tx *gorm.DB, id int64, level int, experience int64) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).
		Model(&model.PlayerProfile{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"level":      level,
			"experience": experience,
		}).Error
}

func (r *PlayerRepository) SetManager(ctx context.Context, id int64, managerID int64) error {
	return r.db.WithContext(ctx).
		Model(&model.PlayerProfile{}).
		Where("id = ?", id).
		Update("manager_id", managerID).Error
}

func (r *PlayerRepository) UpdateAgencyName(ctx context.Context, id int64, name string) error {
	return r.db.WithContext(ctx).
		Model(&model.PlayerProfile{}).
		Where("id = ?", id).
		Update("agency_name", name).Error
}
