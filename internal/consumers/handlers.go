package consumers

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"gymhub/internal/models"
)

// Handlers разбирают доменные события и пишут аудит в лог
type Handlers struct {
	log *slog.Logger
}

func NewHandlers(log *slog.Logger) *Handlers {
	if log == nil {
		log = slog.Default()
	}
	return &Handlers{log: log.With("component", "audit")}
}

// HandlerFunc handles one decoded payload; a non-nil error leaves the message unacked.
type HandlerFunc func(data []byte) error

// Routes maps every published subject to its handler.
func (h *Handlers) Routes() map[string]HandlerFunc {
	return map[string]HandlerFunc{
		models.EventUserRegistered:  h.HandleUserRegistered,
		models.EventUserLoggedIn:    h.HandleUserLoggedIn,
		models.EventBookingCreated:  h.HandleBookingCreated,
		models.EventImportCompleted: h.HandleImportCompleted,
	}
}

func decode[T any](subject string, data []byte) (T, error) {
	var event T
	if err := json.Unmarshal(data, &event); err != nil {
		return event, fmt.Errorf("failed to unmarshal %s event: %w", subject, err)
	}
	return event, nil
}

func (h *Handlers) HandleUserRegistered(data []byte) error {
	event, err := decode[models.UserRegisteredEvent](models.EventUserRegistered, data)
	if err != nil {
		return err
	}
	h.log.Info("User registered",
		"user_id", event.UserID, "email", event.Email, "role", event.Role, "at", event.Timestamp)
	return nil
}

func (h *Handlers) HandleUserLoggedIn(data []byte) error {
	event, err := decode[models.UserLoggedInEvent](models.EventUserLoggedIn, data)
	if err != nil {
		return err
	}
	h.log.Info("User logged in", "user_id", event.UserID, "at", event.Timestamp)
	return nil
}

func (h *Handlers) HandleBookingCreated(data []byte) error {
	event, err := decode[models.BookingCreatedEvent](models.EventBookingCreated, data)
	if err != nil {
		return err
	}
	h.log.Info("Booking created",
		"booking_id", event.BookingID, "user_id", event.UserID, "session_id", event.SessionID, "at", event.Timestamp)
	return nil
}

// HandleImportCompleted поднимает уровень до Warn, если часть записей не легла в базу
func (h *Handlers) HandleImportCompleted(data []byte) error {
	event, err := decode[models.ImportCompletedEvent](models.EventImportCompleted, data)
	if err != nil {
		return err
	}

	fields := []any{
		"entity", event.Entity,
		"operation", event.Operation,
		"records", event.Records,
		"failed", event.Failed,
		"at", event.Timestamp,
	}
	if event.Failed > 0 {
		h.log.Warn("XML import partially applied", fields...)
		return nil
	}
	h.log.Info("XML import applied", fields...)
	return nil
}
