package repository

import (
	"errors"
	"time"

	"roomops/internal/domain"
	"roomops/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrInvalidTransition = errors.New("invalid withdrawal status transition")

type WithdrawalRepository struct {
	db *gorm.DB
}

func NewWithdrawalRepository(db *gorm.DB) *WithdrawalRepository {
	return &WithdrawalRepository{db: db}
}

func (r *WithdrawalRepository) Create(w *models.Withdrawal) error {
	return r.db.Create(w).Error
}

func (r *WithdrawalRepository) GetByID(id uint) (*models.Withdrawal, error) {
	var w models.Withdrawal
	if err := r.db.First(&w, id).Error; err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *WithdrawalRepository) Update(w *models.Withdrawal) error {
	return r.db.Save(w).Error
}

// List returns withdrawals newest first, optionally filtered by status.
func (r *WithdrawalRepository) List(status string, limit, offset int) ([]models.Withdrawal, error) {
	q := r.db.Model(&models.Withdrawal{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var list []models.Withdrawal
	err := q.Order("requested_at DESC").Limit(limit).Offset(offset).Find(&list).Error
	return list, err
}

// MarkPaid is the settlement procedure: it flips the request to paid,
// stamps paid_at, stores the optional note, and debits the influencer
// balance ledger, all inside one transaction. Callers never orchestrate
// these steps individually.
func (r *WithdrawalRepository) MarkPaid(id uint, note string, now time.Time) (*models.Withdrawal, error) {
	var w models.Withdrawal
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&w, id).Error; err != nil {
			return err
		}
		if w.Status != domain.WithdrawalStatusPending && w.Status != domain.WithdrawalStatusApproved {
			return ErrInvalidTransition
		}
		w.Status = domain.WithdrawalStatusPaid
		w.PaidAt = &now
		if note != "" {
			w.Notes = &note
		}
		if err := tx.Save(&w).Error; err != nil {
			return err
		}
		res := tx.Model(&models.InfluencerBalance{}).
			Where("influencer_id = ? AND balance_cents >= ?", w.InfluencerID, w.AmountCents).
			Updates(map[string]interface{}{
				"balance_cents":    gorm.Expr("balance_cents - ?", w.AmountCents),
				"total_paid_cents": gorm.Expr("total_paid_cents + ?", w.AmountCents),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInsufficientBalance
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// Reject flips the request to rejected with a mandatory note. Note
// presence is validated at the handler before any store call; this check
// is the storage-side backstop.
func (r *WithdrawalRepository) Reject(id uint, note string) (*models.Withdrawal, error) {
	if note == "" {
		return nil, errors.New("rejection note required")
	}
	var w models.Withdrawal
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&w, id).Error; err != nil {
			return err
		}
		if w.Status != domain.WithdrawalStatusPending && w.Status != domain.WithdrawalStatusApproved {
			return ErrInvalidTransition
		}
		w.Status = domain.WithdrawalStatusRejected
		w.Notes = &note
		return tx.Save(&w).Error
	})
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// Approve moves a pending request to approved.
func (r *WithdrawalRepository) Approve(id uint) (*models.Withdrawal, error) {
	var w models.Withdrawal
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&w, id).Error; err != nil {
			return err
		}
		if w.Status != domain.WithdrawalStatusPending {
			return ErrInvalidTransition
		}
		w.Status = domain.WithdrawalStatusApproved
		return tx.Save(&w).Error
	})
	if err != nil {
		return nil, err
	}
	return &w, nil
}
