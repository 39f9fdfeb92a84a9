package model

import (
	"time"

	"gorm.io/gorm"
)

// ChatMessage 私聊或群聊的单条消息, 三个 ID 字段之一即会话
type ChatMessage struct {
	ID         string            `gorm:"primaryKey;type:varchar(64)" json:"id"`
	SenderID   string            `gorm:"index;type:varchar(64);not null" json:"senderId"`
	ReceiverID *string           `gorm:"index;type:varchar(64)" json:"receiverId,omitempty"`
	GroupID    *string           `gorm:"index;type:varchar(64)" json:"groupId,omitempty"`
	Content    string            `gorm:"type:text;not null" json:"content"`
	Timestamp  string            `gorm:"size:64;not null" json:"timestamp"`
	IsRead     bool              `gorm:"default:false" json:"isRead"`
	ReplyToID  *string           `gorm:"type:varchar(64)" json:"replyToId,omitempty"`
	CreatedAt  time.Time         `json:"createdAt"`
	Reactions  []MessageReaction `gorm:"foreignKey:MessageID;constraint:OnDelete:CASCADE" json:"reactions"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}

func (m *ChatMessage) BeforeCreate(tx *gorm.DB) error {
	ensureID(&m.ID)
	return nil
}

// MessageReaction 每个用户对每条消息的每种表情最多一条
type MessageReaction struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	MessageID string    `gorm:"uniqueIndex:idx_reaction_msg_type_user;type:varchar(64);not null" json:"messageId"`
	Type      string    `gorm:"uniqueIndex:idx_reaction_msg_type_user;size:20;not null" json:"type"`
	UserID    string    `gorm:"uniqueIndex:idx_reaction_msg_type_user;type:varchar(64);not null" json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (MessageReaction) TableName() string {
	return "message_reactions"
}
