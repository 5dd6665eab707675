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

type GroupService struct {
	db         *gorm.DB
	playerRepo *repository.PlayerRepository
	idolRepo   *repository.IdolRepository
	groupRepo  *repository.GroupRepository
	ledgerRepo *repository.LedgerRepository
	ledger     *ledgerOps
}

func NewGroupService(db *gorm.DB) *GroupService {
	playerRepo := repository.NewPlayerRepository(db)
	ledgerRepo := repository.NewLedgerRepository(db)
	return &GroupService{
		db:         db,
		playerRepo: playerRepo,
		idolRepo:   repository.NewIdolRepository(db),
		groupRepo:  repository.NewGroupRepository(db),
		ledgerRepo: ledgerRepo,
		ledger:     newLedgerOps(playerRepo, ledgerRepo),
	}
}

// GroupView decorates a group with the aggregates derived from its
// loaded member set. Clients read these instead of recomputing stats.
type GroupView struct {
	*model.Group
	MemberCount      int     `json:"member_count"`
	TotalStarPower   int     `json:"total_star_power"`
	AverageStarPower float64 `json:"average_star_power"`
	AverageVocal     float64 `json:"average_vocal"`
	AverageDance     float64 `json:"average_dance"`
	AverageVisual    float64 `json:"average_visual"`
}

func NewGroupView(g *model.Group) *GroupView {
	return &GroupView{
		Group:            g,
		MemberCount:      len(g.Members),
		TotalStarPower:   g.TotalStarPower(),
		AverageStarPower: g.AverageStarPower(),
		AverageVocal:     g.AverageVocal(),
		AverageDance:     g.AverageDance(),
		AverageVisual:    g.AverageVisual(),
	}
}

func NewGroupViews(groups []*model.Group) []*GroupView {
	views := make([]*GroupView, len(groups))
	for i, g := range groups {
		views[i] = NewGroupView(g)
	}
	return views
}

func (s *GroupService) List(ctx context.Context, playerID int64) ([]*model.Group, error) {
	return s.groupRepo.ListByPlayer(ctx, playerID)
}

func (s *GroupService) Get(ctx context.Context, playerID, groupID int64) (*model.Group, error) {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group.PlayerID != playerID {
		return nil, ErrNotOwner
	}
	return group, nil
}

type CreateGroupRequest struct {
	Name    string        `json:"name" binding:"required,min=2,max=64"`
	Concept model.Concept `json:"concept" binding:"required"`
	IdolIDs []int64       `json:"idol_ids" binding:"required"`
}

// CreateGroup debuts a new group from 2-7 of the player's free idols.
// All validation and the member inserts happen in one transaction so a
// concurrent create cannot double-book an idol.
func (s *GroupService) CreateGroup(ctx context.Context, playerID int64, req *CreateGroupRequest) (*model.Group, error) {
	if !model.ValidConcept(req.Concept) {
		return nil, ErrInvalidSelection
	}
	if len(req.IdolIDs) < model.GroupMinMembers || len(req.IdolIDs) > model.GroupMaxMembers {
		return nil, ErrGroupSizeInvalid
	}

	var group *model.Group

	err := s.db.Transaction(func(tx *gorm.DB) error {
		profile, err := s.playerRepo.GetForUpdate(ctx, tx, playerID)
		if err != nil {
			return err
		}

		idols, err := s.idolRepo.ListByIDs(ctx, playerID, req.IdolIDs)
		if err != nil {
			return err
		}
		if len(idols) != len(req.IdolIDs) {
			return ErrNotOwner
		}

		now := time.Now()
		for _, idol := range idols {
			if idol.IsTrainingAt(now) {
				return ErrIdolUnavailable
			}
			grouped, err := s.groupRepo.IdolIsGrouped(ctx, tx, idol.ID)
			if err != nil {
				return err
			}
			if grouped {
				return ErrIdolUnavailable
			}
		}

		if err := s.ledger.debitMoney(ctx, tx, profile, model.GroupCreationCost, "group_debut", ""); err != nil {
			return err
		}

		debut := now
		group = &model.Group{
			PlayerID:  playerID,
			Name:      req.Name,
			Concept:   req.Concept,
			DebutDate: &debut,
		}
		if err := s.groupRepo.Create(ctx, tx, group); err != nil {
			return fmt.Errorf("create group: %w", err)
		}

		for i, idol := range idols {
			position := "member"
			if i == 0 {
				position = "leader"
			}
			if err := s.groupRepo.AddMember(ctx, tx, group.ID, idol.ID, position); err != nil {
				return fmt.Errorf("add member: %w", err)
			}
		}

		return s.ledger.grantExperience(ctx, tx, profile, xpGroupCreate)
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"player_id": playerID,
		"group_id":  group.ID,
		"members":   len(req.IdolIDs),
	}).Info("group debuted")

	return s.groupRepo.GetByID(ctx, group.ID)
}

type UpdateGroupRequest struct {
	Name    string        `json:"name" binding:"required,min=2,max=64"`
	Concept model.Concept `json:"concept" binding:"required"`
}

// UpdateGroup renames the group or rebrands its concept.
func (s *GroupService) UpdateGroup(ctx context.Context, playerID, groupID int64, req *UpdateGroupRequest) (*model.Group, error) {
	if !model.ValidConcept(req.Concept) {
		return nil, ErrInvalidSelection
	}

	group, err := s.Get(ctx, playerID, groupID)
	if err != nil {
		return nil, err
	}
	if err := s.groupRepo.Update(ctx, group.ID, req.Name, req.Concept); err != nil {
		return nil, fmt.Errorf("update group: %w", err)
	}
	return s.groupRepo.GetByID(ctx, group.ID)
}

// AddMember attaches a free idol; the 7-member ceiling is re-checked
// inside the transaction.
func (s *GroupService) AddMember(ctx context.Context, playerID, groupID, idolID int64) (*model.Group, error) {
	group, err := s.Get(ctx, playerID, groupID)
	if err != nil {
		return nil, err
	}

	idol, err := s.idolRepo.GetByID(ctx, idolID)
	if err != nil {
		return nil, err
	}
	if idol.PlayerID != playerID {
		return nil, ErrNotOwner
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		count, err := s.groupRepo.MemberCount(ctx, tx, group.ID)
		if err != nil {
			return err
		}
		if count >= model.GroupMaxMembers {
			return ErrGroupSizeInvalid
		}

		grouped, err := s.groupRepo.IdolIsGrouped(ctx, tx, idol.ID)
		if err != nil {
			return err
		}
		if grouped {
			return ErrIdolUnavailable
		}

		return s.groupRepo.AddMember(ctx, tx, group.ID, idol.ID, "member")
	})
	if err != nil {
		return nil, err
	}

	return s.groupRepo.GetByID(ctx, group.ID)
}

// RemoveMember detaches an idol, refusing to shrink below the 2-member
// floor. Membership is unchanged on failure.
func (s *GroupService) RemoveMember(ctx context.Context, playerID, groupID, idolID int64) (*model.Group, error) {
	group, err := s.Get(ctx, playerID, groupID)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		count, err := s.groupRepo.MemberCount(ctx, tx, group.ID)
		if err != nil {
			return err
		}
		if count <= model.GroupMinMembers {
			return ErrGroupSizeInvalid
		}

		removed, err := s.groupRepo.RemoveMember(ctx, tx, group.ID, idolID)
		if err != nil {
			return err
		}
		if !removed {
			return ErrInvalidSelection
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.groupRepo.GetByID(ctx, group.ID)
}
