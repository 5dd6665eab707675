package service

import (
	"context"
	"fmt"

	"idolagency/internal/infrastructure/security"
	"idolagency/internal/model"
	"idolagency/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type AuthService struct {
	db         *gorm.DB
	userRepo   *repository.UserRepository
	playerRepo *repository.PlayerRepository
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{
		db:         db,
		userRepo:   repository.NewUserRepository(db),
		playerRepo: repository.NewPlayerRepository(db),
	}
}

type RegisterRequest struct {
	Name       string `json:"name" binding:"required,min=2,max=64"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=6"`
	AgencyName string `json:"agency_name" binding:"required,min=2,max=64"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token  string      `json:"token"`
	User   *model.User `json:"user"`
	Player interface{} `json:"player,omitempty"`
}

// Register creates the user and their starting agency in one
// transaction: a user without a ledger row is not a valid state.
func (s *AuthService) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	existing, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
	}
	var profile *model.PlayerProfile

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.Create(ctx, tx, user); err != nil {
			return fmt.Errorf("create user: %w", err)
		}

		profile = &model.PlayerProfile{
			UserID:     user.ID,
			AgencyName: req.AgencyName,
			Money:      model.StartingMoney,
			Fans:       model.StartingFans,
			Reputation: model.StartingReputation,
			Level:      1,
		}
		if err := s.playerRepo.Create(ctx, tx, profile); err != nil {
			return fmt.Errorf("create player profile: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	token, err := security.GenerateToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"user_id": user.ID,
		"agency":  req.AgencyName,
	}).Info("new agency registered")

	return &AuthResponse{Token: token, User: user, Player: profile}, nil
}

func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if user == nil || !security.CheckPassword(user.PasswordHash, req.Password) {
		return nil, ErrCredentialsInvalid
	}

	token, err := security.GenerateToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &AuthResponse{Token: token, User: user}, nil
}

type MeResponse struct {
	User   *model.User          `json:"user"`
	Player *model.PlayerProfile `json:"player"`
}

// Me resolves the authenticated account and its agency profile.
func (s *AuthService) Me(ctx context.Context, userID int64) (*MeResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile, err := s.playerRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &MeResponse{User: user, Player: profile}, nil
}
