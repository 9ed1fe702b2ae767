package services

import (
	"context"

	"hacktrack/internal/models"
	"hacktrack/internal/repositories"
)

type ProfileService interface {
	GetByID(ctx context.Context, id string) (*models.Profile, error)
	UpdateNotificationSettings(ctx context.Context, id string, s models.NotificationSettings) (*models.Profile, error)
}

type profileService struct {
	repo repositories.ProfileRepository
}

func NewProfileService(repo repositories.ProfileRepository) ProfileService {
	return &profileService{repo: repo}
}

func (s *profileService) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *profileService) UpdateNotificationSettings(ctx context.Context, id string, settings models.NotificationSettings) (*models.Profile, error) {
	if err := s.repo.UpdateNotificationSettings(ctx, id, settings); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}
