package models

import "time"

// StatusMessage is the operator banner. The table holds at most one row;
// StatusRepository.Set updates it in place.
type StatusMessage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Message   string    `gorm:"size:500;not null" json:"message"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (StatusMessage) TableName() string { return "status_messages" }
