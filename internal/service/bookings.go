package service

import (
	"context"
	"fmt"
	"time"

	"gymhub/internal/models"
)

type BookingStore interface {
	Create(ctx context.Context, b *models.Booking) error
	GetAll(ctx context.Context) ([]models.Booking, error)
	GetByID(ctx context.Context, id int64) (*models.Booking, error)
	GetByUserID(ctx context.Context, userID int64) ([]models.UserBooking, error)
	Update(ctx context.Context, b *models.Booking) error
	Delete(ctx context.Context, id int64) error
}

type BookingService struct {
	repo      BookingStore
	publisher Publisher
}

func NewBookingService(repo BookingStore, publisher Publisher) *BookingService {
	if publisher == nil {
		publisher = noopPublisher{}
	}
	return &BookingService{repo: repo, publisher: publisher}
}

func (s *BookingService) Create(ctx context.Context, b *models.Booking) error {
	b.ID = 0
	if err := s.repo.Create(ctx, b); err != nil {
		return fmt.Errorf("create booking: %w", err)
	}

	publish(ctx, s.publisher, models.EventBookingCreated, models.BookingCreatedEvent{
		BookingID: b.ID,
		UserID:    b.UserID,
		SessionID: b.SessionID,
		Timestamp: time.Now(),
	})
	return nil
}

func (s *BookingService) List(ctx context.Context) ([]models.Booking, error) {
	return s.repo.GetAll(ctx)
}

func (s *BookingService) Get(ctx context.Context, id int64) (*models.Booking, error) {
	return s.repo.GetByID(ctx, id)
}

// ListByUser returns upcoming bookings with their session details, possibly none.
func (s *BookingService) ListByUser(ctx context.Context, userID int64) ([]models.UserBooking, error) {
	return s.repo.GetByUserID(ctx, userID)
}

// Update reassigns user and session; the creation timestamp is kept.
func (s *BookingService) Update(ctx context.Context, b *models.Booking) error {
	if err := s.repo.Update(ctx, b); err != nil {
		return fmt.Errorf("update booking %d: %w", b.ID, err)
	}
	return nil
}

func (s *BookingService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete booking %d: %w", id, err)
	}
	return nil
}
