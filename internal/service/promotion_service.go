package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"idolagency/internal/config"
	"idolagency/internal/model"
	"idolagency/internal/repository"
	"idolagency/pkg/idgen"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type PromotionService struct {
	db            *gorm.DB
	cfg           *config.Config
	dice          *model.Dice
	playerRepo    *repository.PlayerRepository
	groupRepo     *repository.GroupRepository
	songRepo      *repository.SongRepository
	promotionRepo *repository.PromotionRepository
	upgradeRepo   *repository.UpgradeRepository
	ledgerRepo    *repository.LedgerRepository
	outboxRepo    *repository.OutboxRepository
	ledger        *ledgerOps
}

func NewPromotionService(db *gorm.DB, cfg *config.Config, dice *model.Dice) *PromotionService {
	playerRepo := repository.NewPlayerRepository(db)
	ledgerRepo := repository.NewLedgerRepository(db)
	return &PromotionService{
		db:            db,
		cfg:           cfg,
		dice:          dice,
		playerRepo:    playerRepo,
		groupRepo:     repository.NewGroupRepository(db),
		songRepo:      repository.NewSongRepository(db),
		promotionRepo: repository.NewPromotionRepository(db),
		upgradeRepo:   repository.NewUpgradeRepository(db),
		ledgerRepo:    ledgerRepo,
		outboxRepo:    repository.NewOutboxRepository(db),
		ledger:        newLedgerOps(playerRepo, ledgerRepo),
	}
}

func (s *PromotionService) Catalog() []model.PromotionConfig {
	return model.PromotionCatalog()
}

func (s *PromotionService) List(ctx context.Context, playerID int64) ([]*model.Promotion, error) {
	return s.promotionRepo.ListByPlayer(ctx, playerID, 50)
}

type StartPromotionRequest struct {
	GroupID int64               `json:"group_id" binding:"required"`
	SongID  int64               `json:"song_id" binding:"required"`
	Type    model.PromotionType `json:"type" binding:"required"`
}

// StartPromotion charges the fee and locks in the outcome immediately:
// rewards and the viral roll are computed once here and stored on the
// row. Completion later only pays out what was decided now.
func (s *PromotionService) StartPromotion(ctx context.Context, playerID int64, req *StartPromotionRequest) (*model.Promotion, error) {
	cfg, ok := model.PromotionConfigFor(req.Type)
	if !ok {
		return nil, ErrInvalidSelection
	}

	group, err := s.groupRepo.GetByID(ctx, req.GroupID)
	if err != nil {
		return nil, err
	}
	if group.PlayerID != playerID {
		return nil, ErrNotOwner
	}

	song, err := s.songRepo.GetByID(ctx, req.SongID)
	if err != nil {
		return nil, err
	}
	if song.PlayerID != playerID {
		return nil, ErrNotOwner
	}
	if song.GroupID != group.ID {
		return nil, ErrSongGroupMismatch
	}

	// Lazily commit an elapsed production window before gating on it.
	now := time.Now()
	if song.CompletedAt == nil && !song.ProductionEndsAt.After(now) {
		if err := s.songRepo.CommitCompletion(ctx, song.ID, now); err == nil {
			song.CompletedAt = &now
		}
	}
	if !song.IsCompletedAt(now) {
		return nil, ErrSongNotReady
	}

	var promotion *model.Promotion

	err = s.db.Transaction(func(tx *gorm.DB) error {
		profile, err := s.playerRepo.GetForUpdate(ctx, tx, playerID)
		if err != nil {
			return err
		}

		// Bigger promotion tiers unlock with audience size, not money.
		if profile.Fans < cfg.RequiredFans || profile.Reputation < cfg.RequiredReputation {
			return ErrRequirementsNotMet
		}

		promotionNo := idgen.GeneratePromotionNo()
		if err := s.ledger.debitMoney(ctx, tx, profile, cfg.Cost, "promotion", promotionNo); err != nil {
			return err
		}

		promotionBonus := profile.ManagerBonus(model.BonusPromotion)
		viralityBonus := profile.ManagerBonus(model.BonusVirality)

		payoutUpgrade, err := s.upgradeRepo.GetByType(ctx, playerID, model.UpgradePromoPayout)
		if err != nil {
			return err
		}
		if payoutUpgrade != nil {
			upCfg, _ := model.UpgradeConfigFor(model.UpgradePromoPayout)
			promotionBonus += model.UpgradeBonus(upCfg, payoutUpgrade.Level)
		}
		viralityUpgrade, err := s.upgradeRepo.GetByType(ctx, playerID, model.UpgradeVirality)
		if err != nil {
			return err
		}
		if viralityUpgrade != nil {
			upCfg, _ := model.UpgradeConfigFor(model.UpgradeVirality)
			viralityBonus += model.UpgradeBonus(upCfg, viralityUpgrade.Level)
		}

		rewards := model.CalculateRewards(
			cfg,
			group.AverageStarPower(),
			float64(song.PromotionPower()),
			promotionBonus,
			viralityBonus,
			s.dice,
		)

		promotion = &model.Promotion{
			PromotionNo:      promotionNo,
			PlayerID:         playerID,
			GroupID:          group.ID,
			SongID:           song.ID,
			Type:             req.Type,
			Cost:             cfg.Cost,
			FanReward:        rewards.Fans,
			MoneyReward:      rewards.Money,
			ReputationReward: rewards.Reputation,
			WentViral:        rewards.WentViral,
			StartedAt:        now,
			EndsAt:           now.Add(time.Duration(cfg.DurationMinutes) * time.Minute),
		}
		if err := s.promotionRepo.Create(ctx, tx, promotion); err != nil {
			return fmt.Errorf("create promotion: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"player_id":    playerID,
		"promotion_no": promotion.PromotionNo,
		"type":         promotion.Type,
		"went_viral":   promotion.WentViral,
	}).Info("promotion started")

	return promotion, nil
}

// CompletePromotion pays out the stored rewards exactly once. The
// guarded completion stamp in the repository is the idempotency pivot:
// everything else in the transaction hangs off its RowsAffected.
func (s *PromotionService) CompletePromotion(ctx context.Context, playerID, promotionID int64) (*model.Promotion, error) {
	promotion, err := s.promotionRepo.GetByID(ctx, promotionID)
	if err != nil {
		return nil, err
	}
	if promotion.PlayerID != playerID {
		return nil, ErrNotOwner
	}

	now := time.Now()
	if promotion.IsCompleted() {
		return nil, ErrAlreadyCompleted
	}
	if !promotion.IsReadyAt(now) {
		return nil, ErrNotReady
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		stamped, err := s.promotionRepo.MarkCompleted(ctx, tx, promotion.ID, now)
		if err != nil {
			return fmt.Errorf("mark completed: %w", err)
		}
		if !stamped {
			// A concurrent call beat us to the stamp.
			return ErrAlreadyCompleted
		}

		profile, err := s.playerRepo.GetForUpdate(ctx, tx, playerID)
		if err != nil {
			return err
		}

		ref := promotion.PromotionNo
		if err := s.ledger.credit(ctx, tx, profile, model.ResourceFans, promotion.FanReward, "promotion_reward", ref); err != nil {
			return err
		}
		if err := s.ledger.credit(ctx, tx, profile, model.ResourceMoney, promotion.MoneyReward, "promotion_reward", ref); err != nil {
			return err
		}
		if err := s.ledger.credit(ctx, tx, profile, model.ResourceReputation, promotion.ReputationReward, "promotion_reward", ref); err != nil {
			return err
		}
		if err := s.ledger.grantExperience(ctx, tx, profile, model.PromotionCompletionXP); err != nil {
			return err
		}

		// The group keeps a tenth of the fan reward as popularity.
		if err := s.groupRepo.AddPopularity(ctx, tx, promotion.GroupID, promotion.FanReward/10); err != nil {
			return fmt.Errorf("bump group popularity: %w", err)
		}

		payload, _ := json.Marshal(map[string]interface{}{
			"promotion_no": promotion.PromotionNo,
			"player_id":    playerID,
			"group_id":     promotion.GroupID,
			"song_id":      promotion.SongID,
			"type":         promotion.Type,
			"fans":         promotion.FanReward,
			"money":        promotion.MoneyReward,
			"reputation":   promotion.ReputationReward,
			"went_viral":   promotion.WentViral,
			"completed_at": now.Format(time.RFC3339),
		})
		outboxMsg := &model.OutboxMessage{
			MessageKey: promotion.PromotionNo,
			Topic:      s.cfg.Kafka.Topic.PromotionResult,
			Payload:    string(payload),
			Status:     model.OutboxStatusPending,
		}
		if err := s.outboxRepo.Create(ctx, tx, outboxMsg); err != nil {
			return fmt.Errorf("write outbox message: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	promotion.CompletedAt = &now

	logrus.WithFields(logrus.Fields{
		"player_id":    playerID,
		"promotion_no": promotion.PromotionNo,
		"fans":         promotion.FanReward,
		"money":        promotion.MoneyReward,
	}).Info("promotion completed")

	return promotion, nil
}
