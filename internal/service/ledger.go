package service

import (
	"context"
	"errors"
	"fmt"

	"idolagency/internal/model"
	"idolagency/internal/repository"
	"idolagency/pkg/idgen"

	"gorm.io/gorm"
)

// Flat experience grants per action.
const (
	xpScout       = 10
	xpPackRedeem  = 10
	xpGroupCreate = 50
	xpSongProduce = 25
)

// ledgerOps bundles the invariant-preserving ledger mutations shared by
// every action service. All methods run inside the caller's transaction
// and keep the in-memory profile in sync with the row, so a later step
// in the same transaction sees the updated balances.
type ledgerOps struct {
	playerRepo *repository.PlayerRepository
	ledgerRepo *repository.LedgerRepository
}

func newLedgerOps(playerRepo *repository.PlayerRepository, ledgerRepo *repository.LedgerRepository) *ledgerOps {
	return &ledgerOps{playerRepo: playerRepo, ledgerRepo: ledgerRepo}
}

// debitMoney spends and journals in one step. The conditional UPDATE in
// the repository enforces the non-negative invariant; a failed debit
// leaves the profile untouched.
func (l *ledgerOps) debitMoney(ctx context.Context, tx *gorm.DB, profile *model.PlayerProfile, amount int64, reason, reference string) error {
	if err := l.playerRepo.SpendMoney(ctx, tx, profile.ID, amount, profile.Version); err != nil {
		if errors.Is(err, repository.ErrInsufficientFunds) {
			return ErrInsufficientFunds
		}
		if errors.Is(err, repository.ErrOptimisticLock) {
			return ErrBusy
		}
		return fmt.Errorf("debit money: %w", err)
	}

	entry := &model.LedgerEntry{
		EntryNo:       idgen.GenerateEntryNo(),
		PlayerID:      profile.ID,
		Resource:      model.ResourceMoney,
		Amount:        -amount,
		BalanceBefore: profile.Money,
		BalanceAfter:  profile.Money - amount,
		Reason:        reason,
		Reference:     reference,
	}
	if err := l.ledgerRepo.Append(ctx, tx, entry); err != nil {
		return fmt.Errorf("journal debit: %w", err)
	}

	profile.Money -= amount
	profile.Version++
	return nil
}

// debitFansReputation charges both upgrade currencies atomically.
func (l *ledgerOps) debitFansReputation(ctx context.Context, tx *gorm.DB, profile *model.PlayerProfile, fans, reputation int64, reason, reference string) error {
	if err := l.playerRepo.SpendFansReputation(ctx, tx, profile.ID, fans, reputation, profile.Version); err != nil {
		if errors.Is(err, repository.ErrInsufficientFunds) {
			return ErrInsufficientFunds
		}
		if errors.Is(err, repository.ErrOptimisticLock) {
			return ErrBusy
		}
		return fmt.Errorf("debit fans/reputation: %w", err)
	}

	entries := []*model.LedgerEntry{
		{
			EntryNo:       idgen.GenerateEntryNo(),
			PlayerID:      profile.ID,
			Resource:      model.ResourceFans,
			Amount:        -fans,
			BalanceBefore: profile.Fans,
			BalanceAfter:  profile.Fans - fans,
			Reason:        reason,
			Reference:     reference,
		},
		{
			EntryNo:       idgen.GenerateEntryNo(),
			PlayerID:      profile.ID,
			Resource:      model.ResourceReputation,
			Amount:        -reputation,
			BalanceBefore: profile.Reputation,
			BalanceAfter:  profile.Reputation - reputation,
			Reason:        reason,
			Reference:     reference,
		},
	}
	for _, entry := range entries {
		if err := l.ledgerRepo.Append(ctx, tx, entry); err != nil {
			return fmt.Errorf("journal debit: %w", err)
		}
	}

	profile.Fans -= fans
	profile.Reputation -= reputation
	profile.Version++
	return nil
}

// credit adds to a resource and journals it. Skips zero amounts so reward
// payouts with an empty component do not clutter the journal.
func (l *ledgerOps) credit(ctx context.Context, tx *gorm.DB, profile *model.PlayerProfile, resource string, amount int64, reason, reference string) error {
	if amount == 0 {
		return nil
	}

	if err := l.playerRepo.Credit(ctx, tx, profile.ID, resource, amount); err != nil {
		return fmt.Errorf("credit %s: %w", resource, err)
	}

	var before int64
	switch resource {
	case model.ResourceMoney:
		before = profile.Money
		profile.Money += amount
	case model.ResourceFans:
		before = profile.Fans
		profile.Fans += amount
	case model.ResourceReputation:
		before = profile.Reputation
		profile.Reputation += amount
	}
	profile.Version++

	entry := &model.LedgerEntry{
		EntryNo:       idgen.GenerateEntryNo(),
		PlayerID:      profile.ID,
		Resource:      resource,
		Amount:        amount,
		BalanceBefore: before,
		BalanceAfter:  before + amount,
		Reason:        reason,
		Reference:     reference,
	}
	if err := l.ledgerRepo.Append(ctx, tx, entry); err != nil {
		return fmt.Errorf("journal credit: %w", err)
	}
	return nil
}

// grantExperience runs the level-up cascade and persists the result.
func (l *ledgerOps) grantExperience(ctx context.Context, tx *gorm.DB, profile *model.PlayerProfile, gained int64) error {
	level, experience := model.ApplyExperience(profile.Level, profile.Experience, gained)
	if err := l.playerRepo.UpdateProgress(ctx, tx, profile.ID, level, experience); err != nil {
		return fmt.Errorf("update progress: %w", err)
	}
	profile.Level = level
	profile.Experience = experience
	return nil
}
