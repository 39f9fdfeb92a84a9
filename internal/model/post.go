package model

import (
	"classroom_backend/pkg/classroom"
	"time"

	"gorm.io/gorm"
)

type Post struct {
	ID               string                     `gorm:"primaryKey;type:varchar(64)" json:"id"`
	AuthorID         string                     `gorm:"index;type:varchar(64);not null" json:"authorId"`
	Title            *string                    `gorm:"size:255" json:"title,omitempty"`
	Content          string                     `gorm:"type:text;not null" json:"content"`
	Timestamp        string                     `gorm:"size:64;not null" json:"timestamp"`
	Deadline         *string                    `gorm:"size:64" json:"deadline,omitempty"`
	SubjectID        *string                    `gorm:"index;type:varchar(64)" json:"subjectId,omitempty"`
	IsAssignment     bool                       `gorm:"default:false" json:"isAssignment"`
	SimulationStatus classroom.SimulationStatus `gorm:"size:20;default:'pending'" json:"simulationStatus"`
	CreatedAt        time.Time                  `json:"createdAt"`
}

func (Post) TableName() string {
	return "posts"
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	ensureID(&p.ID)
	if p.SimulationStatus == "" {
		p.SimulationStatus = classroom.StatusPending
	}
	return nil
}
