package models

import (
	"time"

	"gorm.io/gorm"
)

// RoomMember is one user's participation in a room. A member counts as
// actively occupying the room while RemainingCredits > 0.
type RoomMember struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	RoomID           uint           `gorm:"not null;index" json:"room_id"`
	UserID           uint           `gorm:"not null;index" json:"user_id"`
	RemainingCredits int64          `gorm:"not null;default:0" json:"remaining_credits"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`

	Room Room `gorm:"foreignKey:RoomID" json:"-"`
}

func (RoomMember) TableName() string { return "room_members" }

// Active reports whether this member currently occupies its room.
func (m *RoomMember) Active() bool { return m.RemainingCredits > 0 }
