package service

import (
	"classroom_backend/internal/model"
	"classroom_backend/internal/repository"
	"context"
	"fmt"
)

type NotificationService struct {
	Repo *repository.NotificationRepository
}

func NewNotificationService(repo *repository.NotificationRepository) *NotificationService {
	return &NotificationService{Repo: repo}
}

func (s *NotificationService) Create(ctx context.Context, n *model.Notification) error {
	if err := s.Repo.Create(ctx, n); err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	return nil
}

func (s *NotificationService) MarkRead(ctx context.Context, id string) error {
	return s.Repo.MarkRead(ctx, id)
}
