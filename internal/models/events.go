package models

import "time"

// NATS Event Types
const (
	EventUserRegistered  = "user.registered"
	EventUserLoggedIn    = "user.logged_in"
	EventBookingCreated  = "booking.created"
	EventImportCompleted = "import.completed"
)

type UserRegisteredEvent struct {
	UserID    int64     `json:"user_id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Timestamp time.Time `json:"timestamp"`
}

type UserLoggedInEvent struct {
	UserID    int64     `json:"user_id"`
	Timestamp time.Time `json:"timestamp"`
}

// BookingCreatedEvent represents a booking creation event
type BookingCreatedEvent struct {
	BookingID int64     `json:"booking_id"`
	UserID    int64     `json:"user_id"`
	SessionID int64     `json:"session_id"`
	Timestamp time.Time `json:"timestamp"`
}

// ImportCompletedEvent is published after every XML upload, failed or not.
type ImportCompletedEvent struct {
	Entity    string    `json:"entity"`
	Operation string    `json:"operation"`
	Records   int       `json:"records"`
	Failed    int       `json:"failed"`
	Timestamp time.Time `json:"timestamp"`
}
