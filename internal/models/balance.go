package models

import (
	"time"

	"gorm.io/gorm"
)

// InfluencerBalance is the payout ledger for one influencer. Settling a
// withdrawal debits BalanceCents and accumulates TotalPaidCents in the
// same transaction.
type InfluencerBalance struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	InfluencerID   uint           `gorm:"uniqueIndex;not null" json:"influencer_id"`
	BalanceCents   int64          `gorm:"not null;default:0" json:"balance_cents"`
	TotalPaidCents int64          `gorm:"not null;default:0" json:"total_paid_cents"`
	Currency       string         `gorm:"size:3;default:'USD'" json:"currency"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (InfluencerBalance) TableName() string { return "influencer_balances" }
