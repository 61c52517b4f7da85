package repository

import (
	"roomops/internal/domain"
	"roomops/internal/models"

	"gorm.io/gorm"
)

type DashboardStats struct {
	RoomsToday         int64 `json:"rooms_today"`
	RoomsTotal         int64 `json:"rooms_total"`
	ActiveMembers      int64 `json:"active_members"`
	PromoCodes         int64 `json:"promo_codes"`
	PendingWithdrawals int64 `json:"pending_withdrawals"`
	PaidOutCents       int64 `json:"paid_out_cents"`
	OutstandingCents   int64 `json:"outstanding_cents"`
}

type StatsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

func (r *StatsRepository) GetDashboardStats(today string) (*DashboardStats, error) {
	var s DashboardStats
	r.db.Model(&models.Room{}).Where("session_date = ?", today).Count(&s.RoomsToday)
	r.db.Model(&models.Room{}).Count(&s.RoomsTotal)
	r.db.Model(&models.RoomMember{}).Where("remaining_credits > 0").Count(&s.ActiveMembers)
	r.db.Model(&models.PromoCode{}).Count(&s.PromoCodes)
	r.db.Model(&models.Withdrawal{}).Where("status = ?", domain.WithdrawalStatusPending).Count(&s.PendingWithdrawals)

	var paid struct{ Total int64 }
	r.db.Model(&models.Withdrawal{}).
		Select("COALESCE(SUM(amount_cents), 0) as total").
		Where("status = ?", domain.WithdrawalStatusPaid).
		Scan(&paid)
	s.PaidOutCents = paid.Total

	var owed struct{ Total int64 }
	r.db.Model(&models.InfluencerBalance{}).
		Select("COALESCE(SUM(balance_cents), 0) as total").
		Scan(&owed)
	s.OutstandingCents = owed.Total

	return &s, nil
}
