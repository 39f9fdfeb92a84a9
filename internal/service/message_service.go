package service

import (
	"classroom_backend/internal/model"
	"classroom_backend/internal/repository"
	"classroom_backend/internal/util"
	"classroom_backend/pkg/monitoring"
	"classroom_backend/pkg/tracing"
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"
)

type MessageService struct {
	Repo *repository.MessageRepository
}

func NewMessageService(repo *repository.MessageRepository) *MessageService {
	return &MessageService{Repo: repo}
}

func (s *MessageService) Create(ctx context.Context, msg *model.ChatMessage) error {
	if err := s.Repo.Create(ctx, msg); err != nil {
		return fmt.Errorf("create message: %w", err)
	}
	return nil
}

func (s *MessageService) List(ctx context.Context, chatID string) ([]model.ChatMessage, error) {
	messages, err := s.Repo.FindByChatID(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []model.ChatMessage{}
	}
	return messages, nil
}

// ToggleReaction 同一用户对同一消息同一类型的第二次调用会撤销第一次, count 为该消息切换后的反应总数
func (s *MessageService) ToggleReaction(ctx context.Context, messageID, reactionType, userID string) (active bool, count int64, err error) {
	ctx, span := tracing.Tracer.Start(ctx, "MessageService.ToggleReaction")
	defer span.End()
	span.SetAttributes(
		attribute.String("message.id", messageID),
		attribute.String("reaction.type", reactionType),
	)

	if _, err := s.Repo.FindByID(ctx, messageID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, 0, util.ErrMessageNotFound
		}
		return false, 0, err
	}

	active, err = s.Repo.ToggleReaction(ctx, messageID, reactionType, userID)
	if err != nil {
		return false, 0, fmt.Errorf("toggle reaction: %w", err)
	}
	count, err = s.Repo.CountReactions(ctx, messageID)
	if err != nil {
		return false, 0, fmt.Errorf("count reactions: %w", err)
	}

	state := "removed"
	if active {
		state = "added"
	}
	monitoring.ReactionToggles.WithLabelValues(state).Inc()
	return active, count, nil
}

func (s *MessageService) MarkRead(ctx context.Context, id string) error {
	return s.Repo.MarkRead(ctx, id)
}
