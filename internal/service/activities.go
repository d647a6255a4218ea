package service

import (
	"context"
	"fmt"

	"gymhub/internal/models"
)

type ActivityStore interface {
	Create(ctx context.Context, a *models.Activity) error
	GetAll(ctx context.Context) ([]models.Activity, error)
	GetByID(ctx context.Context, id int64) (*models.Activity, error)
	Update(ctx context.Context, a *models.Activity) error
	Delete(ctx context.Context, id int64) error
}

type ActivityService struct {
	repo ActivityStore
}

func NewActivityService(repo ActivityStore) *ActivityService {
	return &ActivityService{repo: repo}
}

// Create ignores any caller supplied ID; the store assigns one.
func (s *ActivityService) Create(ctx context.Context, a *models.Activity) error {
	a.ID = 0
	if err := s.repo.Create(ctx, a); err != nil {
		return fmt.Errorf("create activity: %w", err)
	}
	return nil
}

func (s *ActivityService) List(ctx context.Context) ([]models.Activity, error) {
	return s.repo.GetAll(ctx)
}

func (s *ActivityService) Get(ctx context.Context, id int64) (*models.Activity, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ActivityService) Update(ctx context.Context, a *models.Activity) error {
	if err := s.repo.Update(ctx, a); err != nil {
		return fmt.Errorf("update activity %d: %w", a.ID, err)
	}
	return nil
}

func (s *ActivityService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete activity %d: %w", id, err)
	}
	return nil
}
