package service

import (
	"context"
	"fmt"

	apperrors "gymhub/internal/errors"
	"gymhub/internal/models"
)

type SessionStore interface {
	Create(ctx context.Context, s *models.Session) error
	GetAll(ctx context.Context) ([]models.Session, error)
	GetTop(ctx context.Context, limit int) ([]models.Session, error)
	GetByID(ctx context.Context, id int64) (*models.Session, error)
	Update(ctx context.Context, s *models.Session) error
	Delete(ctx context.Context, id int64) error
}

type SessionService struct {
	repo SessionStore
}

func NewSessionService(repo SessionStore) *SessionService {
	return &SessionService{repo: repo}
}

func (s *SessionService) Create(ctx context.Context, session *models.Session) error {
	session.ID = 0
	if err := s.repo.Create(ctx, session); err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

// List returns upcoming sessions only.
func (s *SessionService) List(ctx context.Context) ([]models.Session, error) {
	return s.repo.GetAll(ctx)
}

func (s *SessionService) Top(ctx context.Context, amount int) ([]models.Session, error) {
	if amount <= 0 {
		return nil, apperrors.Validation("amount must be a positive number")
	}
	return s.repo.GetTop(ctx, amount)
}

func (s *SessionService) Get(ctx context.Context, id int64) (*models.Session, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *SessionService) Update(ctx context.Context, session *models.Session) error {
	if err := s.repo.Update(ctx, session); err != nil {
		return fmt.Errorf("update session %d: %w", session.ID, err)
	}
	return nil
}

func (s *SessionService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete session %d: %w", id, err)
	}
	return nil
}
