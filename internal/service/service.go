package service

import (
	"context"

	"gymhub/internal/cache"
	"gymhub/internal/logger"
	"gymhub/internal/messaging"
	"gymhub/internal/metrics"
	"gymhub/internal/models"
	"gymhub/internal/repository"
)

// Publisher sends domain events. *messaging.NATSClient satisfies it.
type Publisher interface {
	Publish(subject string, data interface{}) error
}

// SessionCache caches authentication key lookups. *cache.SessionCache satisfies it.
type SessionCache interface {
	Get(ctx context.Context, authKey string) (*models.User, error)
	Fill(ctx context.Context, authKey string, user *models.User) error
	Revoke(ctx context.Context, authKey string) error
}

type Options struct {
	BcryptCost        int
	ImportConcurrency int
	NATS              *messaging.NATSClient
	Cache             *cache.SessionCache
	Metrics           *metrics.Metrics
}

type Services struct {
	Activities *ActivityService
	Rooms      *RoomService
	Sessions   *SessionService
	Bookings   *BookingService
	Blogs      *BlogService
	Users      *UserService
	Imports    *ImportService
}

func NewServices(repos *repository.Repositories, opts Options) *Services {
	var publisher Publisher = noopPublisher{}
	if opts.NATS != nil {
		publisher = opts.NATS
	}

	// keep the interface nil when the cache is disabled
	var sessionCache SessionCache
	if opts.Cache != nil {
		sessionCache = opts.Cache
	}

	return &Services{
		Activities: NewActivityService(repos.Activities),
		Rooms:      NewRoomService(repos.Rooms),
		Sessions:   NewSessionService(repos.Sessions),
		Bookings:   NewBookingService(repos.Bookings, publisher),
		Blogs:      NewBlogService(repos.Blogs),
		Users:      NewUserService(repos.Users, sessionCache, publisher, opts.BcryptCost),
		Imports:    NewImportService(repos.Activities, repos.Rooms, publisher, opts.Metrics, opts.ImportConcurrency),
	}
}

type noopPublisher struct{}

func (noopPublisher) Publish(string, interface{}) error { return nil }

// publish logs instead of failing the operation.
func publish(ctx context.Context, p Publisher, subject string, event any) {
	if err := p.Publish(subject, event); err != nil {
		logger.WithContext(ctx).Error("Failed to publish event",
			"error", err,
			"event_type", subject)
	}
}
