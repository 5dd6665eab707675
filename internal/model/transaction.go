package model

import (
	"time"
)

// Ledger resources a journal entry can move.
const (
	ResourceMoney      = "MONEY"
	ResourceFans       = "FANS"
	ResourceReputation = "REPUTATION"
)

// LedgerEntry records a single resource movement on a player ledger.
// Append-only: entries are never updated or deleted, so the journal can
// be replayed against the ledger for consistency checks.
type LedgerEntry struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	EntryNo       string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"entry_no"`
	PlayerID      int64     `gorm:"index;not null" json:"player_id"`
	Resource      string    `gorm:"type:varchar(20);not null" json:"resource"`
	Amount        int64     `gorm:"not null" json:"amount"` // positive credit, negative debit
	BalanceBefore int64     `gorm:"not null" json:"balance_before"`
	BalanceAfter  int64     `gorm:"not null" json:"balance_after"`
	Reason        string    `gorm:"type:varchar(64);not null" json:"reason"`
	Reference     string    `gorm:"type:varchar(128)" json:"reference"`
	CreatedAt     time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (LedgerEntry) TableName() string {
	return "ledger_entries"
}
