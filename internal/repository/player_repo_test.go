package repository

import (
	"context"
	"errors"
	"testing"

	"idolagency/internal/model"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	// One connection so every query sees the same in-memory database.
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&model.PlayerProfile{},
		&model.Manager{},
		&model.Idol{},
		&model.Group{},
		&model.GroupMember{},
		&model.Song{},
		&model.Promotion{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedProfile(t *testing.T, db *gorm.DB, money int64) *model.PlayerProfile {
	t.Helper()
	profile := &model.PlayerProfile{
		UserID:     1,
		AgencyName: "Starlight",
		Money:      money,
		Level:      1,
	}
	if err := db.Create(profile).Error; err != nil {
		t.Fatalf("seed profile: %v", err)
	}
	return profile
}

func TestSpendMoneyInsufficientFundsLeavesBalance(t *testing.T) {
	db := testDB(t)
	repo := NewPlayerRepository(db)
	profile := seedProfile(t, db, 100)
	ctx := context.Background()

	err := repo.SpendMoney(ctx, db, profile.ID, 500, profile.Version)
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("got %v, want ErrInsufficientFunds", err)
	}

	got, err := repo.GetByID(ctx, profile.ID)
	if err != nil {
		t.Fatalf("reload profile: %v", err)
	}
	if got.Money != 100 {
		t.Fatalf("failed debit changed the balance: %d", got.Money)
	}
	if got.Version != profile.Version {
		t.Fatalf("failed debit bumped the version: %d", got.Version)
	}
}

func TestSpendMoneyStaleVersionDebitsOnce(t *testing.T) {
	db := testDB(t)
	repo := NewPlayerRepository(db)
	profile := seedProfile(t, db, 5000)
	ctx := context.Background()

	// Two redemption attempts read the same profile snapshot; the
	// version predicate lets exactly one debit through.
	if err := repo.SpendMoney(ctx, db, profile.ID, 2500, profile.Version); err != nil {
		t.Fatalf("first debit: %v", err)
	}
	err := repo.SpendMoney(ctx, db, profile.ID, 2500, profile.Version)
	if !errors.Is(err, ErrOptimisticLock) {
		t.Fatalf("got %v, want ErrOptimisticLock", err)
	}

	got, err := repo.GetByID(ctx, profile.ID)
	if err != nil {
		t.Fatalf("reload profile: %v", err)
	}
	if got.Money != 2500 {
		t.Fatalf("balance debited %d times worth: money=%d", (5000-got.Money)/2500, got.Money)
	}
}

func TestSpendFansReputationNeverDebitsPartially(t *testing.T) {
	db := testDB(t)
	repo := NewPlayerRepository(db)
	profile := seedProfile(t, db, 0)
	ctx := context.Background()

	if err := db.Model(profile).Updates(map[string]interface{}{"fans": 1000, "reputation": 10}).Error; err != nil {
		t.Fatalf("seed resources: %v", err)
	}

	// Enough fans, not enough reputation: neither column may move.
	err := repo.SpendFansReputation(ctx, db, profile.ID, 500, 50, profile.Version)
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("got %v, want ErrInsufficientFunds", err)
	}

	got, err := repo.GetByID(ctx, profile.ID)
	if err != nil {
		t.Fatalf("reload profile: %v", err)
	}
	if got.Fans != 1000 || got.Reputation != 10 {
		t.Fatalf("partial debit happened: fans=%d reputation=%d", got.Fans, got.Reputation)
	}
}
