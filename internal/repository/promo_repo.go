package repository

import (
	"errors"

	"roomops/internal/models"

	"gorm.io/gorm"
)

// ErrCodeExhausted is returned when a redeem loses the race for the last
// use of a code.
var ErrCodeExhausted = errors.New("promo code usage cap reached")

type PromoRepository struct {
	db *gorm.DB
}

func NewPromoRepository(db *gorm.DB) *PromoRepository {
	return &PromoRepository{db: db}
}

func (r *PromoRepository) Create(p *models.PromoCode) error {
	return r.db.Create(p).Error
}

func (r *PromoRepository) GetByID(id uint) (*models.PromoCode, error) {
	var p models.PromoCode
	if err := r.db.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PromoRepository) GetByCode(code string) (*models.PromoCode, error) {
	var p models.PromoCode
	if err := r.db.Where("code = ?", code).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PromoRepository) Update(p *models.PromoCode) error {
	return r.db.Save(p).Error
}

func (r *PromoRepository) Delete(id uint) error {
	return r.db.Delete(&models.PromoCode{}, id).Error
}

func (r *PromoRepository) List() ([]models.PromoCode, error) {
	var list []models.PromoCode
	err := r.db.Order("created_at DESC").Find(&list).Error
	return list, err
}

// IncrementUses bumps total_uses atomically. The cap check lives in the
// same statement: two racing redeems on the last use both pass the
// activity check, but only one can match total_uses < max_uses; the loser
// gets ErrCodeExhausted.
func (r *PromoRepository) IncrementUses(id uint) error {
	res := r.db.Model(&models.PromoCode{}).
		Where("id = ? AND total_uses < max_uses", id).
		UpdateColumn("total_uses", gorm.Expr("total_uses + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrCodeExhausted
	}
	return nil
}
