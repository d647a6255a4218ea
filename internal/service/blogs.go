package service

import (
	"context"
	"fmt"

	"gymhub/internal/models"
)

type BlogStore interface {
	Create(ctx context.Context, b *models.Blog) error
	GetAll(ctx context.Context) ([]models.Blog, error)
	GetByID(ctx context.Context, id int64) (*models.Blog, error)
	GetByUserID(ctx context.Context, userID int64) ([]models.Blog, error)
	Update(ctx context.Context, b *models.Blog) error
	Delete(ctx context.Context, id int64) error
}

type BlogService struct {
	repo BlogStore
}

func NewBlogService(repo BlogStore) *BlogService {
	return &BlogService{repo: repo}
}

func (s *BlogService) Create(ctx context.Context, b *models.Blog) error {
	b.ID = 0
	if err := s.repo.Create(ctx, b); err != nil {
		return fmt.Errorf("create blog: %w", err)
	}
	return nil
}

func (s *BlogService) List(ctx context.Context) ([]models.Blog, error) {
	return s.repo.GetAll(ctx)
}

func (s *BlogService) Get(ctx context.Context, id int64) (*models.Blog, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *BlogService) ListByUser(ctx context.Context, userID int64) ([]models.Blog, error) {
	return s.repo.GetByUserID(ctx, userID)
}

func (s *BlogService) Update(ctx context.Context, b *models.Blog) error {
	if err := s.repo.Update(ctx, b); err != nil {
		return fmt.Errorf("update blog %d: %w", b.ID, err)
	}
	return nil
}

func (s *BlogService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete blog %d: %w", id, err)
	}
	return nil
}
