package models

import (
	"time"

	"gorm.io/gorm"
)

// PromoCode is an influencer-attributed discount code.
type PromoCode struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	Code            string         `gorm:"uniqueIndex;size:30;not null" json:"code"`
	InfluencerID    uint           `gorm:"not null;index" json:"influencer_id"`
	DiscountPercent int            `gorm:"not null" json:"discount_percent"`
	MaxUses         int            `gorm:"not null" json:"max_uses"`
	TotalUses       int            `gorm:"not null;default:0" json:"total_uses"`
	ExpiresAt       *time.Time     `json:"expires_at"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (PromoCode) TableName() string { return "promo_codes" }

// IsActive reports whether the code can still be redeemed: usage below the
// cap and, when an expiry is set, the expiry still in the future.
func (p *PromoCode) IsActive(now time.Time) bool {
	if p.TotalUses >= p.MaxUses {
		return false
	}
	if p.ExpiresAt != nil && !p.ExpiresAt.After(now) {
		return false
	}
	return true
}
