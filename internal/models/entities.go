package models

import "time"

// Roles
const (
	RoleMember  = "Member"
	RoleTrainer = "Trainer"
	RoleAdmin   = "Admin"
)

type Activity struct {
	ID          int64  `json:"activity_id" db:"activity_id"`
	Name        string `json:"activity_name" db:"activity_name"`
	Description string `json:"activity_description" db:"activity_description"`
	Duration    int64  `json:"activity_duration" db:"activity_duration"`
}

type Room struct {
	ID       int64  `json:"room_id" db:"room_id"`
	Location string `json:"room_location" db:"room_location"`
	Number   string `json:"room_number" db:"room_number"`
}

type Session struct {
	ID            int64     `json:"session_id" db:"session_id"`
	Datetime      time.Time `json:"session_datetime" db:"session_datetime"`
	RoomID        int64     `json:"session_room_id" db:"session_room_id"`
	ActivityID    int64     `json:"session_activity_id" db:"session_activity_id"`
	TrainerUserID int64     `json:"session_trainer_user_id" db:"session_trainer_user_id"`
}

type Booking struct {
	ID              int64     `json:"booking_id" db:"booking_id"`
	UserID          int64     `json:"booking_user_id" db:"booking_user_id"`
	SessionID       int64     `json:"booking_session_id" db:"booking_session_id"`
	CreatedDatetime time.Time `json:"booking_created_datetime" db:"booking_created_datetime"`
}

// UserBooking - бронирование вместе с колонками сессии, как отдаёт /my-bookings
type UserBooking struct {
	Booking
	Session
}

type Blog struct {
	ID       int64     `json:"blog_id" db:"blog_id"`
	Datetime time.Time `json:"blog_datetime" db:"blog_datetime"`
	Title    string    `json:"blog_title" db:"blog_title"`
	Content  string    `json:"blog_content" db:"blog_content"`
	UserID   int64     `json:"blog_user_id" db:"blog_user_id"`
}

// User carries the bcrypt hash in Password. It is serialized because the
// admin edit form sends the record back unchanged.
type User struct {
	ID                int64   `json:"user_id" db:"user_id"`
	Email             string  `json:"user_email" db:"user_email"`
	Password          string  `json:"user_password" db:"user_password"`
	Role              string  `json:"user_role" db:"user_role"`
	Firstname         string  `json:"user_firstname" db:"user_firstname"`
	Lastname          string  `json:"user_lastname" db:"user_lastname"`
	Phone             string  `json:"user_phone" db:"user_phone"`
	Address           string  `json:"user_address" db:"user_address"`
	AuthenticationKey *string `json:"user_authenticationkey" db:"user_authenticationkey"`
}

func (u *User) HasRole(roles ...string) bool {
	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}
	return false
}
