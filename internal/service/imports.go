package service

import (
	"context"
	"io"
	"time"

	"gymhub/internal/importer"
	"gymhub/internal/logger"
	"gymhub/internal/metrics"
	"gymhub/internal/models"
)

const defaultImportConcurrency = 8

// ImportService applies XML bulk uploads. There is no transaction around an
// upload: records that were written before a failure stay written.
type ImportService struct {
	activities ActivityStore
	rooms      RoomStore
	publisher  Publisher
	metrics    *metrics.Metrics
	limit      int
}

func NewImportService(activities ActivityStore, rooms RoomStore, publisher Publisher, m *metrics.Metrics, limit int) *ImportService {
	if limit <= 0 {
		limit = defaultImportConcurrency
	}
	if publisher == nil {
		publisher = noopPublisher{}
	}
	return &ImportService{activities: activities, rooms: rooms, publisher: publisher, metrics: m, limit: limit}
}

func (s *ImportService) ImportActivities(ctx context.Context, r io.Reader) (importer.Operation, error) {
	op, activities, err := importer.DecodeActivities(r)
	if err != nil {
		return "", err
	}

	apply := func(ctx context.Context, a models.Activity) error {
		if op == importer.OpInsert {
			return s.activities.Create(ctx, &a)
		}
		return s.activities.Update(ctx, &a)
	}

	failed, err := importer.Apply(ctx, activities, s.limit, apply)
	s.finish(ctx, "activities", op, len(activities), failed)
	return op, err
}

func (s *ImportService) ImportRooms(ctx context.Context, r io.Reader) (importer.Operation, error) {
	op, rooms, err := importer.DecodeRooms(r)
	if err != nil {
		return "", err
	}

	apply := func(ctx context.Context, room models.Room) error {
		if op == importer.OpInsert {
			return s.rooms.Create(ctx, &room)
		}
		return s.rooms.Update(ctx, &room)
	}

	failed, err := importer.Apply(ctx, rooms, s.limit, apply)
	s.finish(ctx, "rooms", op, len(rooms), failed)
	return op, err
}

func (s *ImportService) finish(ctx context.Context, entity string, op importer.Operation, total, failed int) {
	s.metrics.ObserveImport(entity, string(op), total-failed, failed)

	logger.WithContext(ctx).Info("XML import finished",
		"entity", entity, "operation", op, "records", total, "failed", failed)

	publish(ctx, s.publisher, models.EventImportCompleted, models.ImportCompletedEvent{
		Entity:    entity,
		Operation: string(op),
		Records:   total,
		Failed:    failed,
		Timestamp: time.Now(),
	})
}
