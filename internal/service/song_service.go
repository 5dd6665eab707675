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

type SongService struct {
	db          *gorm.DB
	dice        *model.Dice
	playerRepo  *repository.PlayerRepository
	groupRepo   *repository.GroupRepository
	songRepo    *repository.SongRepository
	upgradeRepo *repository.UpgradeRepository
	ledgerRepo  *repository.LedgerRepository
	ledger      *ledgerOps
}

func NewSongService(db *gorm.DB, dice *model.Dice) *SongService {
	playerRepo := repository.NewPlayerRepository(db)
	ledgerRepo := repository.NewLedgerRepository(db)
	return &SongService{
		db:          db,
		dice:        dice,
		playerRepo:  playerRepo,
		groupRepo:   repository.NewGroupRepository(db),
		songRepo:    repository.NewSongRepository(db),
		upgradeRepo: repository.NewUpgradeRepository(db),
		ledgerRepo:  ledgerRepo,
		ledger:      newLedgerOps(playerRepo, ledgerRepo),
	}
}

// List returns the player's songs, committing any production window that
// has elapsed since the last read. Completion is lazy: there is no
// scheduler, the first observer stamps completed_at.
func (s *SongService) List(ctx context.Context, playerID int64) ([]*model.Song, error) {
	songs, err := s.songRepo.ListByPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	for _, song := range songs {
		s.commitIfElapsed(ctx, song, now)
	}
	return songs, nil
}

func (s *SongService) Get(ctx context.Context, playerID, songID int64) (*model.Song, error) {
	song, err := s.songRepo.GetByID(ctx, songID)
	if err != nil {
		return nil, err
	}
	if song.PlayerID != playerID {
		return nil, ErrNotOwner
	}
	s.commitIfElapsed(ctx, song, time.Now())
	return song, nil
}

// commitIfElapsed persists the lazy completion stamp. The write is
// idempotent and first-observer-wins, so errors only cost us the stamp
// this read; the derived status is correct regardless.
func (s *SongService) commitIfElapsed(ctx context.Context, song *model.Song, now time.Time) {
	if song.CompletedAt != nil || song.ProductionEndsAt.After(now) {
		return
	}
	if err := s.songRepo.CommitCompletion(ctx, song.ID, now); err != nil {
		logrus.WithError(err).WithField("song_id", song.ID).Warn("failed to commit song completion")
		return
	}
	song.CompletedAt = &now
}

type ProduceSongRequest struct {
	GroupID int64       `json:"group_id" binding:"required"`
	Title   string      `json:"title"`
	Genre   model.Genre `json:"genre" binding:"required"`
}

// ProduceSong charges the studio fee and starts a production timer. The
// quality roll happens now and is final; only the completion timestamp
// is pending.
func (s *SongService) ProduceSong(ctx context.Context, playerID int64, req *ProduceSongRequest) (*model.Song, error) {
	if !model.ValidGenre(req.Genre) {
		return nil, ErrInvalidSelection
	}

	group, err := s.groupRepo.GetByID(ctx, req.GroupID)
	if err != nil {
		return nil, err
	}
	if group.PlayerID != playerID {
		return nil, ErrNotOwner
	}

	title := req.Title
	if title == "" {
		title = model.GenerateSongTitle(s.dice)
	}

	var song *model.Song

	err = s.db.Transaction(func(tx *gorm.DB) error {
		profile, err := s.playerRepo.GetForUpdate(ctx, tx, playerID)
		if err != nil {
			return err
		}

		if err := s.ledger.debitMoney(ctx, tx, profile, model.SongProductionCost, "song_production", fmt.Sprintf("group:%d", group.ID)); err != nil {
			return err
		}

		baseQuality := s.dice.Between(model.SongBaseQualityMin, model.SongBaseQualityMax)
		quality := model.SongQuality(baseQuality, group)
		hype := s.dice.Between(model.SongHypeMin, model.SongHypeMax)

		speedBonus := 0.0
		upgrade, err := s.upgradeRepo.GetByType(ctx, playerID, model.UpgradeProductionSpeed)
		if err != nil {
			return err
		}
		if upgrade != nil {
			cfg, _ := model.UpgradeConfigFor(model.UpgradeProductionSpeed)
			speedBonus = model.UpgradeBonus(cfg, upgrade.Level)
		}
		minutes := model.ScaledTimerMinutes(model.SongProductionBaseMinutes, speedBonus)

		song = &model.Song{
			PlayerID:         playerID,
			GroupID:          group.ID,
			Title:            title,
			Genre:            req.Genre,
			Quality:          quality,
			Hype:             hype,
			ProductionCost:   model.SongProductionCost,
			ProductionEndsAt: time.Now().Add(time.Duration(minutes) * time.Minute),
		}
		if err := s.songRepo.Create(ctx, tx, song); err != nil {
			return fmt.Errorf("create song: %w", err)
		}

		return s.ledger.grantExperience(ctx, tx, profile, xpSongProduce)
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"player_id": playerID,
		"song_id":   song.ID,
		"group_id":  group.ID,
		"quality":   song.Quality,
	}).Info("song production started")

	song.Group = group
	return song, nil
}
