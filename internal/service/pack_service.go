package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"idolagency/internal/config"
	"idolagency/internal/infrastructure/cache"
	"idolagency/internal/infrastructure/lock"
	"idolagency/internal/model"
	"idolagency/internal/repository"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type PackService struct {
	db          *gorm.DB
	redisClient *redis.Client
	cfg         *config.Config
	dice        *model.Dice
	packCache   *cache.PackCache
	playerRepo  *repository.PlayerRepository
	idolRepo    *repository.IdolRepository
	ledgerRepo  *repository.LedgerRepository
	outboxRepo  *repository.OutboxRepository
	ledger      *ledgerOps
}

func NewPackService(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, dice *model.Dice) *PackService {
	playerRepo := repository.NewPlayerRepository(db)
	ledgerRepo := repository.NewLedgerRepository(db)
	return &PackService{
		db:          db,
		redisClient: redisClient,
		cfg:         cfg,
		dice:        dice,
		packCache:   cache.NewPackCache(redisClient),
		playerRepo:  playerRepo,
		idolRepo:    repository.NewIdolRepository(db),
		ledgerRepo:  ledgerRepo,
		outboxRepo:  repository.NewOutboxRepository(db),
		ledger:      newLedgerOps(playerRepo, ledgerRepo),
	}
}

type PackResponse struct {
	PackID     string            `json:"pack_id"`
	Drafts     []model.IdolDraft `json:"drafts"`
	Cost       int64             `json:"cost"`
	TTLSeconds int               `json:"ttl_seconds"`
}

// CreatePack drafts five candidate idols under a fresh opaque key.
// Nothing is charged yet: the drafts are free to view and the cost is
// collected at redemption. The balance pre-check only keeps broke
// players from opening packs they can never afford.
func (s *PackService) CreatePack(ctx context.Context, playerID int64) (*PackResponse, error) {
	profile, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if profile.Money < model.PackCost {
		return nil, ErrInsufficientFunds
	}

	qualityBonus := profile.ManagerBonus(model.BonusScouting)
	drafts := make([]model.IdolDraft, 0, model.PackSize)
	for i := 0; i < model.PackSize; i++ {
		drafts = append(drafts, model.GenerateIdol(s.dice, qualityBonus))
	}

	packID := uuid.NewString()
	offer := &model.PackOffer{
		PlayerID: playerID,
		Drafts:   drafts,
		Cost:     model.PackCost,
	}
	if err := s.packCache.Put(ctx, packID, offer); err != nil {
		return nil, fmt.Errorf("store pack offer: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"player_id": playerID,
		"pack_id":   packID,
	}).Info("pack offer created")

	return &PackResponse{
		PackID:     packID,
		Drafts:     drafts,
		Cost:       model.PackCost,
		TTLSeconds: s.packCache.TTLSeconds(),
	}, nil
}

type ChooseIdolRequest struct {
	Index int `json:"index" binding:"min=0"`
}

// ChooseIdol redeems a pack exactly once. The per-pack distributed lock
// serializes concurrent claims, the cache read inside the lock decides
// the winner, and the cache delete after commit consumes the offer. A
// failed debit leaves the offer intact so the player can retry within
// the TTL after earning more money.
func (s *PackService) ChooseIdol(ctx context.Context, playerID int64, packID string, index int) (*model.Idol, error) {
	packLock := lock.NewPackLock(s.redisClient, packID, uuid.NewString())
	if err := packLock.Lock(ctx, 100*time.Millisecond, 30); err != nil {
		return nil, ErrBusy
	}
	defer packLock.Unlock(ctx)

	offer, err := s.packCache.Get(ctx, packID)
	if err != nil {
		return nil, fmt.Errorf("read pack offer: %w", err)
	}
	if offer == nil {
		return nil, ErrPackExpired
	}
	if offer.PlayerID != playerID {
		return nil, ErrNotOwner
	}
	if index < 0 || index >= len(offer.Drafts) {
		return nil, ErrInvalidSelection
	}

	draft := offer.Drafts[index]
	var idol *model.Idol

	err = s.db.Transaction(func(tx *gorm.DB) error {
		profile, err := s.playerRepo.GetForUpdate(ctx, tx, playerID)
		if err != nil {
			return err
		}

		// Balance is re-checked here via the conditional debit; the
		// quote from pack creation may be stale.
		if err := s.ledger.debitMoney(ctx, tx, profile, offer.Cost, "pack_redeem", packID); err != nil {
			return err
		}

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

		if err := s.ledger.grantExperience(ctx, tx, profile, xpPackRedeem); err != nil {
			return err
		}

		payload, _ := json.Marshal(map[string]interface{}{
			"player_id":    playerID,
			"idol_id":      idol.ID,
			"rarity":       idol.Rarity,
			"source":       "pack",
			"recruited_at": time.Now().Format(time.RFC3339),
		})
		outboxMsg := &model.OutboxMessage{
			MessageKey: packID,
			Topic:      s.cfg.Kafka.Topic.IdolRecruited,
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

	// Consume the offer only after the transaction committed. If this
	// delete fails the lock plus the TTL still bound the damage, and a
	// second redeem would be paid again rather than duplicated free.
	if err := s.packCache.Forget(ctx, packID); err != nil {
		logrus.WithError(err).WithField("pack_id", packID).Warn("failed to delete redeemed pack offer")
	}

	logrus.WithFields(logrus.Fields{
		"player_id": playerID,
		"pack_id":   packID,
		"idol_id":   idol.ID,
	}).Info("pack redeemed")

	return idol, nil
}
