package model

import (
	"time"

	"gorm.io/gorm"
)

type Notification struct {
	ID          string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	UserID      string    `gorm:"index;type:varchar(64);not null" json:"userId"`
	Type        string    `gorm:"size:20;not null" json:"type"` // message, assignment, deadline, group
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description *string   `gorm:"type:text" json:"description,omitempty"`
	Timestamp   string    `gorm:"size:64;not null" json:"timestamp"`
	IsRead      bool      `gorm:"default:false" json:"isRead"`
	Link        *string   `gorm:"size:255" json:"link,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (Notification) TableName() string {
	return "notifications"
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	ensureID(&n.ID)
	return nil
}
