package repository

import (
	"roomops/internal/models"

	"gorm.io/gorm"
)

type RoomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

func (r *RoomRepository) Create(room *models.Room) error {
	return r.db.Create(room).Error
}

func (r *RoomRepository) GetByID(id uint) (*models.Room, error) {
	var room models.Room
	if err := r.db.First(&room, id).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *RoomRepository) Update(room *models.Room) error {
	return r.db.Save(room).Error
}

// ListByDate returns rooms scheduled for the given calendar date,
// newest first.
func (r *RoomRepository) ListByDate(date string) ([]models.Room, error) {
	var rooms []models.Room
	err := r.db.Where("session_date = ?", date).
		Order("created_at DESC").
		Find(&rooms).Error
	return rooms, err
}

func (r *RoomRepository) ListAll(limit, offset int) ([]models.Room, error) {
	var rooms []models.Room
	err := r.db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&rooms).Error
	return rooms, err
}

// Delete removes a room and its members in one transaction. Members go
// first; if that fails the room row stays untouched.
func (r *RoomRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("room_id = ?", id).Delete(&models.RoomMember{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Room{}, id).Error
	})
}

// ApplyOccupancyDelta adjusts current_users by delta in a single statement,
// clamped at zero server-side so concurrent deltas can never drive the
// counter negative.
func (r *RoomRepository) ApplyOccupancyDelta(roomID uint, delta int) error {
	return r.db.Model(&models.Room{}).
		Where("id = ?", roomID).
		UpdateColumn("current_users", gorm.Expr("GREATEST(CAST(current_users AS SIGNED) + ?, 0)", delta)).Error
}
