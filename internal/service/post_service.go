package service

import (
	"classroom_backend/internal/model"
	"classroom_backend/internal/repository"
	"classroom_backend/internal/util"
	"classroom_backend/pkg/classroom"
	"context"
	"fmt"
)

type PostService struct {
	Repo *repository.PostRepository
}

func NewPostService(repo *repository.PostRepository) *PostService {
	return &PostService{Repo: repo}
}

// Create 状态为空时默认为 pending
func (s *PostService) Create(ctx context.Context, post *model.Post) error {
	if post.SimulationStatus == "" {
		post.SimulationStatus = classroom.StatusPending
	}
	if !post.SimulationStatus.Valid() {
		return util.ErrInvalidStatus
	}
	if err := s.Repo.Create(ctx, post); err != nil {
		return fmt.Errorf("create post: %w", err)
	}
	return nil
}
