package service

import (
	"context"
	"fmt"

	"idolagency/internal/model"
	"idolagency/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type UpgradeService struct {
	db          *gorm.DB
	playerRepo  *repository.PlayerRepository
	upgradeRepo *repository.UpgradeRepository
	ledgerRepo  *repository.LedgerRepository
	ledger      *ledgerOps
}

func NewUpgradeService(db *gorm.DB) *UpgradeService {
	playerRepo := repository.NewPlayerRepository(db)
	ledgerRepo := repository.NewLedgerRepository(db)
	return &UpgradeService{
		db:          db,
		playerRepo:  playerRepo,
		upgradeRepo: repository.NewUpgradeRepository(db),
		ledgerRepo:  ledgerRepo,
		ledger:      newLedgerOps(playerRepo, ledgerRepo),
	}
}

// UpgradeView is one track of the catalog merged with the player's
// current level and the price of the next one.
type UpgradeView struct {
	Config             model.UpgradeConfig `json:"config"`
	Level              int                 `json:"level"`
	Bonus              float64             `json:"bonus"`
	NextCostFans       int64               `json:"next_cost_fans"`
	NextCostReputation int64               `json:"next_cost_reputation"`
	MaxedOut           bool                `json:"maxed_out"`
}

func (s *UpgradeService) List(ctx context.Context, playerID int64) ([]UpgradeView, error) {
	owned, err := s.upgradeRepo.ListByPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}
	levels := make(map[model.UpgradeType]int, len(owned))
	for _, u := range owned {
		levels[u.Type] = u.Level
	}

	catalog := model.UpgradeCatalog()
	views := make([]UpgradeView, 0, len(catalog))
	for _, cfg := range catalog {
		level := levels[cfg.Type]
		fans, reputation := model.UpgradeCost(cfg, level)
		views = append(views, UpgradeView{
			Config:             cfg,
			Level:              level,
			Bonus:              model.UpgradeBonus(cfg, level),
			NextCostFans:       fans,
			NextCostReputation: reputation,
			MaxedOut:           level >= cfg.MaxLevel,
		})
	}
	return views, nil
}

type PurchaseUpgradeRequest struct {
	Type model.UpgradeType `json:"type" binding:"required"`
}

// Purchase buys the next level of a track, charging fans and reputation
// priced against the level read inside the transaction. The guarded
// increment rejects a raced purchase so nobody pays the level-N price
// for level N+2.
func (s *UpgradeService) Purchase(ctx context.Context, playerID int64, upgradeType model.UpgradeType) (*model.AgencyUpgrade, error) {
	cfg, ok := model.UpgradeConfigFor(upgradeType)
	if !ok {
		return nil, ErrInvalidSelection
	}

	var upgrade *model.AgencyUpgrade

	err := s.db.Transaction(func(tx *gorm.DB) error {
		profile, err := s.playerRepo.GetForUpdate(ctx, tx, playerID)
		if err != nil {
			return err
		}

		upgrade, err = s.upgradeRepo.GetOrCreate(ctx, tx, playerID, upgradeType)
		if err != nil {
			return err
		}
		if upgrade.Level >= cfg.MaxLevel {
			return ErrMaxLevel
		}

		fans, reputation := model.UpgradeCost(cfg, upgrade.Level)
		reference := fmt.Sprintf("upgrade:%s:%d", upgradeType, upgrade.Level+1)
		if err := s.ledger.debitFansReputation(ctx, tx, profile, fans, reputation, "agency_upgrade", reference); err != nil {
			return err
		}

		bumped, err := s.upgradeRepo.IncrementLevel(ctx, tx, upgrade.ID, upgrade.Level)
		if err != nil {
			return fmt.Errorf("increment level: %w", err)
		}
		if !bumped {
			return ErrBusy
		}
		upgrade.Level++
		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"player_id": playerID,
		"type":      upgradeType,
		"level":     upgrade.Level,
	}).Info("agency upgrade purchased")

	return upgrade, nil
}
