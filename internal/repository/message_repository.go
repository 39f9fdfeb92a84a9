package repository

import (
	"classroom_backend/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type MessageRepository struct {
	DB *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{DB: db}
}

func (r *MessageRepository) Create(ctx context.Context, msg *model.ChatMessage) error {
	return r.DB.WithContext(ctx).Omit("Reactions").Create(msg).Error
}

// FindByChatID chatID 可以是群 ID, 也可以是私聊任一方的用户 ID
func (r *MessageRepository) FindByChatID(ctx context.Context, chatID string) ([]model.ChatMessage, error) {
	var messages []model.ChatMessage
	err := r.DB.WithContext(ctx).
		Where("group_id = ? OR receiver_id = ? OR sender_id = ?", chatID, chatID, chatID).
		Order("timestamp ASC").
		Preload("Reactions", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Find(&messages).Error
	return messages, err
}

func (r *MessageRepository) FindByID(ctx context.Context, id string) (*model.ChatMessage, error) {
	var msg model.ChatMessage
	err := r.DB.WithContext(ctx).Preload("Reactions").First(&msg, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// ToggleReaction 已存在则删除, 否则插入; 返回操作后是否处于激活状态
func (r *MessageRepository) ToggleReaction(ctx context.Context, messageID, reactionType, userID string) (bool, error) {
	active := false
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var reaction model.MessageReaction
		result := tx.Where("message_id = ? AND type = ? AND user_id = ?", messageID, reactionType, userID).First(&reaction)

		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			active = true
			return tx.Create(&model.MessageReaction{
				MessageID: messageID,
				Type:      reactionType,
				UserID:    userID,
			}).Error
		}
		if result.Error != nil {
			return result.Error
		}

		active = false
		return tx.Delete(&reaction).Error
	})
	return active, err
}

func (r *MessageRepository) CountReactions(ctx context.Context, messageID string) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.MessageReaction{}).
		Where("message_id = ?", messageID).
		Count(&count).Error
	return count, err
}

// MarkRead 不存在的 ID 不报错
func (r *MessageRepository) MarkRead(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Model(&model.ChatMessage{}).
		Where("id = ?", id).
		Update("is_read", true).Error
}
