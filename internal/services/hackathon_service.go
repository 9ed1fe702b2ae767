package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"hacktrack/internal/models"
	"hacktrack/internal/repositories"
)

type HackathonService interface {
	Create(ctx context.Context, h *models.Hackathon) (*models.Hackathon, error)
	GetByID(ctx context.Context, id string) (*models.Hackathon, error)
	ListByTeam(ctx context.Context, teamID string) ([]models.Hackathon, error)
	Update(ctx context.Context, h *models.Hackathon) (*models.Hackathon, error)
	Delete(ctx context.Context, id string) error
}

type hackathonService struct {
	repo repositories.HackathonRepository
}

func NewHackathonService(repo repositories.HackathonRepository) HackathonService {
	return &hackathonService{repo: repo}
}

func (s *hackathonService) Create(ctx context.Context, h *models.Hackathon) (*models.Hackathon, error) {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	h.CreatedAt = time.Now().UTC()
	if err := s.repo.Store(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}

func (s *hackathonService) GetByID(ctx context.Context, id string) (*models.Hackathon, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *hackathonService) ListByTeam(ctx context.Context, teamID string) ([]models.Hackathon, error) {
	return s.repo.ListByTeam(ctx, teamID)
}

func (s *hackathonService) Update(ctx context.Context, h *models.Hackathon) (*models.Hackathon, error) {
	if err := s.repo.Update(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}

func (s *hackathonService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
