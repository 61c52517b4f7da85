package models

import (
	"time"

	"gorm.io/gorm"
)

// Withdrawal is an influencer payout request.
//
// Amount and AmountCents carry the same quantity; Amount predates the move
// to integer cents and is kept populated for older API consumers.
//
// Status transitions: pending -> approved -> paid, or pending/approved ->
// rejected. Rejection always carries a non-empty note. The paid transition
// happens only inside WithdrawalRepository.MarkPaid together with the
// balance debit.
type Withdrawal struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	ReferenceID   string         `gorm:"size:64;uniqueIndex;not null" json:"reference_id"`
	InfluencerID  uint           `gorm:"not null;index" json:"influencer_id"`
	Amount        float64        `gorm:"not null" json:"amount"`
	AmountCents   int64          `gorm:"not null" json:"amount_cents"`
	Status        string         `gorm:"size:20;not null;index" json:"status"`
	PaymentMethod string         `gorm:"size:40;not null" json:"payment_method"`
	RequestedAt   time.Time      `gorm:"not null" json:"requested_at"`
	PaidAt        *time.Time     `json:"paid_at"`
	Notes         *string        `gorm:"size:500" json:"notes"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Withdrawal) TableName() string { return "withdrawals" }
