package repository

import (
	"errors"

	"roomops/internal/models"

	"gorm.io/gorm"
)

type StatusRepository struct {
	db *gorm.DB
}

func NewStatusRepository(db *gorm.DB) *StatusRepository {
	return &StatusRepository{db: db}
}

// Get returns the banner row, or nil when none has been set yet.
func (r *StatusRepository) Get() (*models.StatusMessage, error) {
	var s models.StatusMessage
	err := r.db.Order("id ASC").First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Set updates the singleton banner row in place, creating it on first use.
func (r *StatusRepository) Set(message string) (*models.StatusMessage, error) {
	s, err := r.Get()
	if err != nil {
		return nil, err
	}
	if s == nil {
		s = &models.StatusMessage{Message: message}
		if err := r.db.Create(s).Error; err != nil {
			return nil, err
		}
		return s, nil
	}
	s.Message = message
	if err := r.db.Save(s).Error; err != nil {
		return nil, err
	}
	return s, nil
}
