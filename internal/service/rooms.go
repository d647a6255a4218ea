package service

import (
	"context"
	"fmt"

	"gymhub/internal/models"
)

type RoomStore interface {
	Create(ctx context.Context, room *models.Room) error
	GetAll(ctx context.Context) ([]models.Room, error)
	GetByID(ctx context.Context, id int64) (*models.Room, error)
	Update(ctx context.Context, room *models.Room) error
	Delete(ctx context.Context, id int64) error
}

type RoomService struct {
	repo RoomStore
}

func NewRoomService(repo RoomStore) *RoomService {
	return &RoomService{repo: repo}
}

func (s *RoomService) Create(ctx context.Context, room *models.Room) error {
	room.ID = 0
	if err := s.repo.Create(ctx, room); err != nil {
		return fmt.Errorf("create room: %w", err)
	}
	return nil
}

func (s *RoomService) List(ctx context.Context) ([]models.Room, error) {
	return s.repo.GetAll(ctx)
}

func (s *RoomService) Get(ctx context.Context, id int64) (*models.Room, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *RoomService) Update(ctx context.Context, room *models.Room) error {
	if err := s.repo.Update(ctx, room); err != nil {
		return fmt.Errorf("update room %d: %w", room.ID, err)
	}
	return nil
}

func (s *RoomService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete room %d: %w", id, err)
	}
	return nil
}
