package repository

import (
	"roomops/internal/models"

	"gorm.io/gorm"
)

type MemberRepository struct {
	db *gorm.DB
}

func NewMemberRepository(db *gorm.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

func (r *MemberRepository) Create(m *models.RoomMember) error {
	return r.db.Create(m).Error
}

func (r *MemberRepository) GetByID(id uint) (*models.RoomMember, error) {
	var m models.RoomMember
	if err := r.db.First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MemberRepository) Update(m *models.RoomMember) error {
	return r.db.Save(m).Error
}

func (r *MemberRepository) Delete(id uint) error {
	return r.db.Delete(&models.RoomMember{}, id).Error
}

func (r *MemberRepository) ListByRoom(roomID uint) ([]models.RoomMember, error) {
	var list []models.RoomMember
	err := r.db.Where("room_id = ?", roomID).Order("created_at DESC").Find(&list).Error
	return list, err
}

// CountActiveByRoom counts members with credits left. The live counter on
// the room row is folded from events and can drift; this is the ground
// truth to check it against.
func (r *MemberRepository) CountActiveByRoom(roomID uint) (int64, error) {
	var n int64
	err := r.db.Model(&models.RoomMember{}).
		Where("room_id = ? AND remaining_credits > 0", roomID).
		Count(&n).Error
	return n, err
}
