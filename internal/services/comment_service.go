package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"hacktrack/internal/models"
	"hacktrack/internal/repositories"
)

var ErrEmptyComment = errors.New("comment cannot be empty")

type CommentService interface {
	Add(ctx context.Context, taskID, userID, content string) (*models.TaskComment, error)
	List(ctx context.Context, taskID string) ([]models.TaskComment, error)
}

type commentService struct {
	repo repositories.CommentRepository
}

func NewCommentService(repo repositories.CommentRepository) CommentService {
	return &commentService{repo: repo}
}

func (s *commentService) Add(ctx context.Context, taskID, userID, content string) (*models.TaskComment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyComment
	}
	c := &models.TaskComment{
		ID:      uuid.NewString(),
		TaskID:  taskID,
		UserID:  userID,
		Content: content,
	}
	if err := s.repo.Store(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *commentService) List(ctx context.Context, taskID string) ([]models.TaskComment, error) {
	return s.repo.ListByTask(ctx, taskID)
}
