package service

import (
	"context"
	"time"

	"idolagency/internal/model"
	"idolagency/internal/repository"

	"gorm.io/gorm"
)

type EventService struct {
	db         *gorm.DB
	dice       *model.Dice
	playerRepo *repository.PlayerRepository
	idolRepo   *repository.IdolRepository
	ledgerRepo *repository.LedgerRepository
	ledger     *ledgerOps
}

func NewEventService(db *gorm.DB, dice *model.Dice) *EventService {
	playerRepo := repository.NewPlayerRepository(db)
	ledgerRepo := repository.NewLedgerRepository(db)
	return &EventService{
		db:         db,
		dice:       dice,
		playerRepo: playerRepo,
		idolRepo:   repository.NewIdolRepository(db),
		ledgerRepo: ledgerRepo,
		ledger:     newLedgerOps(playerRepo, ledgerRepo),
	}
}

type PulseResult struct {
	Events []model.PulseEvent `json:"events"`
	Money  int64              `json:"money"`
	Fans   int64              `json:"fans"`
}

// Pulse rolls passive idol activity and credits the trickle income.
// Called by the client on its poll loop; an empty roll is a valid
// outcome and costs nothing.
func (s *EventService) Pulse(ctx context.Context, playerID int64) (*PulseResult, error) {
	// Empty rosters never produce events; skip the preloaded list fetch.
	count, err := s.idolRepo.CountByPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return &PulseResult{}, nil
	}

	idolPtrs, err := s.idolRepo.ListByPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}
	idols := make([]model.Idol, 0, len(idolPtrs))
	for _, idol := range idolPtrs {
		idols = append(idols, *idol)
	}

	events := model.GeneratePulseEvents(s.dice, idols, time.Now())
	result := &PulseResult{Events: events}
	if len(events) == 0 {
		return result, nil
	}

	for _, event := range events {
		result.Money += event.Money
		result.Fans += event.Fans
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		profile, err := s.playerRepo.GetForUpdate(ctx, tx, playerID)
		if err != nil {
			return err
		}

		for _, event := range events {
			if err := s.ledger.credit(ctx, tx, profile, model.ResourceMoney, event.Money, "pulse_event", event.Type); err != nil {
				return err
			}
			if err := s.ledger.credit(ctx, tx, profile, model.ResourceFans, event.Fans, "pulse_event", event.Type); err != nil {
				return err
			}
			if err := s.idolRepo.AddPopularity(ctx, tx, event.IdolID, event.Fans/10); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
