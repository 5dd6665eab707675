package service

import (
	"context"
	"fmt"
	"time"

	"idolagency/internal/model"
	"idolagency/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type IdolService struct {
	db         *gorm.DB
	dice       *model.Dice
	playerRepo *repository.PlayerRepository
	idolRepo   *repository.IdolRepository
	groupRepo  *repository.GroupRepository
	ledgerRepo *repository.LedgerRepository
	ledger     *ledgerOps
}

func NewIdolService(db *gorm.DB, dice *model.Dice) *IdolService {
	playerRepo := repository.NewPlayerRepository(db)
	ledgerRepo := repository.NewLedgerRepository(db)
	return &IdolService{
		db:         db,
		dice:       dice,
		playerRepo: playerRepo,
		idolRepo:   repository.NewIdolRepository(db),
		groupRepo:  repository.NewGroupRepository(db),
		ledgerRepo: ledgerRepo,
		ledger:     newLedgerOps(playerRepo, ledgerRepo),
	}
}

func (s *IdolService) List(ctx context.Context, playerID int64) ([]*model.Idol, error) {
	return s.idolRepo.ListByPlayer(ctx, playerID)
}

func (s *IdolService) Get(ctx context.Context, playerID, idolID int64) (*model.Idol, error) {
	idol, err := s.idolRepo.GetByID(ctx, idolID)
	if err != nil {
		return nil, err
	}
	if idol.PlayerID != playerID {
		return nil, ErrNotOwner
	}
	return idol, nil
}

// Scout rolls a single idol and persists it. Cost, roll, and insert run
// in one transaction so a failed debit never leaves an orphan idol.
func (s *IdolService) Scout(ctx context.Context, playerID int64) (*model.Idol, error) {
	var idol *model.Idol

	err := s.db.Transaction(func(tx *gorm.DB) error {
		profile, err := s.playerRepo.GetForUpdate(ctx, tx, playerID)
		if err != nil {
			return err
		}

		if err := s.ledger.debitMoney(ctx, tx, profile, model.ScoutCost, "scout", ""); err != nil {
			return err
		}

		draft := model.GenerateIdol(s.dice, profile.ManagerBonus(model.BonusScouting))
		idol = &model.Idol{
			PlayerID:  playerID,
			Name:      draft.Name,
			Vocal:     draft.Vocal,
			Dance:     draft.Dance,
			Visual:    draft.Visual,
			Charm:     draft.Charm,
			Stamina:   draft.Stamina,
			Rarity:    draft.Rarity,
			SpriteKey: draft.SpriteKey,
		}
		if err := s.idolRepo.Create(ctx, tx, idol); err != nil {
			return fmt.Errorf("create idol: %w", err)
		}

		return s.ledger.grantExperience(ctx, tx, profile, xpScout)
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"player_id": playerID,
		"idol_id":   idol.ID,
		"rarity":    idol.Rarity,
	}).Info("idol scouted")

	return idol, nil
}

type TrainRequest struct {
	Stat string `json:"stat" binding:"required"`
}

type TrainResult struct {
	Idol          *model.Idol `json:"idol"`
	Stat          string      `json:"stat"`
	Gain          int         `json:"gain"`
	TrainingUntil time.Time   `json:"training_until"`
}

// Train charges the fee, applies the stat gain immediately, and arms the
// busy timer. The gain lands up front; the timer only blocks re-training
// until it elapses.
func (s *IdolService) Train(ctx context.Context, playerID, idolID int64, stat string) (*TrainResult, error) {
	if !model.ValidStat(stat) {
		return nil, ErrInvalidSelection
	}

	idol, err := s.Get(ctx, playerID, idolID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if idol.IsTrainingAt(now) {
		return nil, ErrAlreadyTraining
	}

	var result *TrainResult

	err = s.db.Transaction(func(tx *gorm.DB) error {
		profile, err := s.playerRepo.GetForUpdate(ctx, tx, playerID)
		if err != nil {
			return err
		}

		if err := s.ledger.debitMoney(ctx, tx, profile, model.TrainingCost, "training", fmt.Sprintf("idol:%d", idolID)); err != nil {
			return err
		}

		gain := s.dice.Between(model.TrainingMinGain, model.TrainingMaxGain)
		newValue := idol.Stat(stat) + gain
		if newValue > 100 {
			newValue = 100
		}

		// A training-speed manager shortens the busy window.
		minutes := model.ScaledTimerMinutes(model.TrainingBaseMinutes, profile.ManagerBonus(model.BonusTraining))
		until := now.Add(time.Duration(minutes) * time.Minute)

		ok, err := s.idolRepo.StartTraining(ctx, tx, idolID, stat, newValue, until, now)
		if err != nil {
			return fmt.Errorf("start training: %w", err)
		}
		if !ok {
			// Lost a race with a concurrent train call on the same
			// idol; roll the whole transaction back including the fee.
			return ErrAlreadyTraining
		}

		idol.TrainingUntil = &until
		result = &TrainResult{Idol: idol, Stat: stat, Gain: newValue - idol.Stat(stat), TrainingUntil: until}
		switch stat {
		case model.StatVocal:
			idol.Vocal = newValue
		case model.StatDance:
			idol.Dance = newValue
		case model.StatVisual:
			idol.Visual = newValue
		case model.StatCharm:
			idol.Charm = newValue
		case model.StatStamina:
			idol.Stamina = newValue
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// Release removes an idol from the roster. Grouped idols must be pulled
// from their group first so the member-count bounds stay enforced there.
func (s *IdolService) Release(ctx context.Context, playerID, idolID int64) error {
	idol, err := s.Get(ctx, playerID, idolID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		grouped, err := s.groupRepo.IdolIsGrouped(ctx, tx, idol.ID)
		if err != nil {
			return err
		}
		if grouped {
			return ErrIdolUnavailable
		}
		return s.idolRepo.Delete(ctx, tx, idol.ID)
	})
}
