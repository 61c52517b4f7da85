package models

import (
	"time"

	"gorm.io/gorm"
)

// Room is a bookable compute session: a scheduled calendar date plus a
// start/end time-of-day window, with a capacity and a live occupancy counter.
// CurrentUsers is advisory: it is maintained from membership change events
// and is not transactionally tied to the room_members table.
type Room struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	Name              string         `gorm:"size:120;not null" json:"name"`
	Description       string         `gorm:"size:500" json:"description"`
	AccessURL         string         `gorm:"size:255" json:"access_url"`
	MaxUsers          int            `gorm:"not null" json:"max_users"`
	PricePerHourCents int64          `gorm:"not null" json:"price_per_hour_cents"`
	SessionDate       string         `gorm:"size:10;not null;index" json:"session_date"` // YYYY-MM-DD
	StartTime         string         `gorm:"size:5;not null" json:"start_time"`          // HH:MM
	EndTime           string         `gorm:"size:5;not null" json:"end_time"`            // HH:MM
	CurrentUsers      int            `gorm:"not null;default:0" json:"current_users"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Room) TableName() string { return "rooms" }
