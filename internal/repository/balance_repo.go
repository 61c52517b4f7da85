package repository

import (
	"errors"

	"roomops/internal/models"

	"gorm.io/gorm"
)

var ErrInsufficientBalance = errors.New("insufficient influencer balance")

type BalanceRepository struct {
	db *gorm.DB
}

func NewBalanceRepository(db *gorm.DB) *BalanceRepository {
	return &BalanceRepository{db: db}
}

func (r *BalanceRepository) GetByInfluencerID(influencerID uint) (*models.InfluencerBalance, error) {
	var b models.InfluencerBalance
	if err := r.db.Where("influencer_id = ?", influencerID).First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BalanceRepository) GetOrCreate(influencerID uint) (*models.InfluencerBalance, error) {
	b, err := r.GetByInfluencerID(influencerID)
	if err == nil {
		return b, nil
	}
	b = &models.InfluencerBalance{InfluencerID: influencerID, Currency: "USD"}
	if err := r.db.Create(b).Error; err != nil {
		return nil, err
	}
	return b, nil
}

func (r *BalanceRepository) Credit(influencerID uint, amountCents int64) error {
	if _, err := r.GetOrCreate(influencerID); err != nil {
		return err
	}
	return r.db.Model(&models.InfluencerBalance{}).
		Where("influencer_id = ?", influencerID).
		UpdateColumn("balance_cents", gorm.Expr("balance_cents + ?", amountCents)).Error
}

func (r *BalanceRepository) List() ([]models.InfluencerBalance, error) {
	var list []models.InfluencerBalance
	err := r.db.Order("balance_cents DESC").Find(&list).Error
	return list, err
}
