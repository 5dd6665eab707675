package service

import (
	"context"
	"fmt"

	"idolagency/internal/model"
	"idolagency/internal/repository"

	"gorm.io/gorm"
)

type PlayerService struct {
	db          *gorm.DB
	playerRepo  *repository.PlayerRepository
	managerRepo *repository.ManagerRepository
	ledgerRepo  *repository.LedgerRepository
}

func NewPlayerService(db *gorm.DB) *PlayerService {
	return &PlayerService{
		db:          db,
		playerRepo:  repository.NewPlayerRepository(db),
		managerRepo: repository.NewManagerRepository(db),
		ledgerRepo:  repository.NewLedgerRepository(db),
	}
}

func (s *PlayerService) GetProfile(ctx context.Context, playerID int64) (*model.PlayerProfile, error) {
	return s.playerRepo.GetByID(ctx, playerID)
}

type RenameAgencyRequest struct {
	AgencyName string `json:"agency_name" binding:"required,min=2,max=64"`
}

func (s *PlayerService) RenameAgency(ctx context.Context, playerID int64, name string) error {
	return s.playerRepo.UpdateAgencyName(ctx, playerID, name)
}

func (s *PlayerService) ListManagers(ctx context.Context) ([]*model.Manager, error) {
	return s.managerRepo.List(ctx)
}

// HireManager points the profile at a catalog manager. Managers are
// free to switch; their value is the passive bonus, not a purchase.
func (s *PlayerService) HireManager(ctx context.Context, playerID, managerID int64) (*model.Manager, error) {
	manager, err := s.managerRepo.GetByID(ctx, managerID)
	if err != nil {
		return nil, err
	}
	if err := s.playerRepo.SetManager(ctx, playerID, manager.ID); err != nil {
		return nil, fmt.Errorf("set manager: %w", err)
	}
	return manager, nil
}

type LedgerHistory struct {
	Entries  []*model.LedgerEntry `json:"entries"`
	Total    int64                `json:"total"`
	Page     int                  `json:"page"`
	PageSize int                  `json:"page_size"`
}

func (s *PlayerService) GetLedgerHistory(ctx context.Context, playerID int64, page, pageSize int) (*LedgerHistory, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	entries, total, err := s.ledgerRepo.ListByPlayer(ctx, playerID, page, pageSize)
	if err != nil {
		return nil, err
	}
	return &LedgerHistory{
		Entries:  entries,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}
