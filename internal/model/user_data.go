package model

import (
	"time"

	"gorm.io/datatypes"
)

// UserData 每个用户一行的完整快照, JSON 原样保存不做解析
type UserData struct {
	UserID            string         `gorm:"primaryKey;type:varchar(64)"`
	PostsJSON         datatypes.JSON `gorm:"column:posts_json"`
	GroupsJSON        datatypes.JSON `gorm:"column:groups_json"`
	NotificationsJSON datatypes.JSON `gorm:"column:notifications_json"`
	ChatHistoriesJSON datatypes.JSON `gorm:"column:chat_histories_json"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (UserData) TableName() string {
	return "user_data"
}
