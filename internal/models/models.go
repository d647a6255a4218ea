package models

// Request models. Field names follow the column names the web client already uses.

// IDParam - идентификатор из пути /:id
type IDParam struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}

type UserIDParam struct {
	UserID int64 `uri:"user_id" binding:"required,min=1"`
}

type AmountParam struct {
	Amount string `uri:"amount" binding:"required,number"`
}

type KeyParam struct {
	Key string `uri:"key" binding:"required"`
}

// Activities

type CreateActivityRequest struct {
	Name        string      `json:"activity_name" binding:"required"`
	Description string      `json:"activity_description" binding:"required"`
	Duration    FlexibleInt `json:"activity_duration" binding:"required,min=1"`
}

type UpdateActivityRequest struct {
	ID          FlexibleInt `json:"activity_id"`
	Name        string      `json:"activity_name" binding:"required"`
	Description string      `json:"activity_description" binding:"required"`
	Duration    FlexibleInt `json:"activity_duration" binding:"required,min=1"`
}

type DeleteActivityRequest struct {
	ID FlexibleInt `json:"activity_id" binding:"required,min=1"`
}

// Rooms

type CreateRoomRequest struct {
	Location string `json:"room_location" binding:"required"`
	Number   string `json:"room_number" binding:"required,number"`
}

type UpdateRoomRequest struct {
	ID       FlexibleInt `json:"room_id"`
	Location string      `json:"room_location" binding:"required"`
	Number   string      `json:"room_number" binding:"required,number"`
}

type DeleteRoomRequest struct {
	ID FlexibleInt `json:"room_id" binding:"required,min=1"`
}

// Sessions

type CreateSessionRequest struct {
	Datetime      *DateTime   `json:"session_datetime" binding:"required"`
	RoomID        FlexibleInt `json:"session_room_id" binding:"required,min=1"`
	ActivityID    FlexibleInt `json:"session_activity_id" binding:"required,min=1"`
	TrainerUserID FlexibleInt `json:"session_trainer_user_id" binding:"required,min=1"`
}

type UpdateSessionRequest struct {
	ID            FlexibleInt `json:"session_id"`
	Datetime      *DateTime   `json:"session_datetime" binding:"required"`
	RoomID        FlexibleInt `json:"session_room_id" binding:"required,min=1"`
	ActivityID    FlexibleInt `json:"session_activity_id" binding:"required,min=1"`
	TrainerUserID FlexibleInt `json:"session_trainer_user_id" binding:"required,min=1"`
}

type DeleteSessionRequest struct {
	ID FlexibleInt `json:"session_id" binding:"required,min=1"`
}

// Bookings

type CreateBookingRequest struct {
	UserID    FlexibleInt `json:"booking_user_id" binding:"required,min=1"`
	SessionID FlexibleInt `json:"booking_session_id" binding:"required,min=1"`
}

type UpdateBookingRequest struct {
	ID        FlexibleInt `json:"booking_id"`
	UserID    FlexibleInt `json:"booking_user_id" binding:"required,min=1"`
	SessionID FlexibleInt `json:"booking_session_id" binding:"required,min=1"`
}

type DeleteBookingRequest struct {
	ID FlexibleInt `json:"booking_id" binding:"required,min=1"`
}

// Blogs

type CreateBlogRequest struct {
	Title   string      `json:"blog_title" binding:"required"`
	Content string      `json:"blog_content" binding:"required"`
	UserID  FlexibleInt `json:"blog_user_id" binding:"required,min=1"`
}

type UpdateBlogRequest struct {
	ID      FlexibleInt `json:"blog_id"`
	Title   string      `json:"blog_title" binding:"required"`
	Content string      `json:"blog_content" binding:"required"`
	UserID  FlexibleInt `json:"blog_user_id" binding:"required,min=1"`
}

type DeleteBlogRequest struct {
	ID FlexibleInt `json:"blog_id" binding:"required,min=1"`
}

// Users

type RegisterRequest struct {
	Email     string `json:"user_email" binding:"required,email"`
	Password  string `json:"user_password" binding:"required"`
	Firstname string `json:"user_firstname" binding:"required"`
	Lastname  string `json:"user_lastname" binding:"required"`
	Phone     string `json:"user_phone" binding:"required"`
	Address   string `json:"user_address" binding:"required"`
}

type CreateUserRequest struct {
	Email     string `json:"user_email" binding:"required,email"`
	Password  string `json:"user_password" binding:"required"`
	Role      string `json:"user_role" binding:"required,oneof=Member Trainer Admin"`
	Firstname string `json:"user_firstname" binding:"required"`
	Lastname  string `json:"user_lastname" binding:"required"`
	Phone     string `json:"user_phone" binding:"required"`
	Address   string `json:"user_address" binding:"required"`
}

// UpdateUserRequest is validated after it has been unwrapped from the
// optional {"user": {...}} envelope.
type UpdateUserRequest struct {
	ID                FlexibleInt    `json:"user_id"`
	Email             string         `json:"user_email" binding:"required,email"`
	Password          string         `json:"user_password" binding:"required"`
	Role              string         `json:"user_role" binding:"required,oneof=Member Trainer Admin"`
	Firstname         string         `json:"user_firstname" binding:"required"`
	Lastname          string         `json:"user_lastname" binding:"required"`
	Phone             string         `json:"user_phone" binding:"required"`
	Address           string         `json:"user_address" binding:"required"`
	AuthenticationKey OptionalString `json:"user_authenticationkey"`
}

type LoginRequest struct {
	Email    string `json:"user_email" binding:"required"`
	Password string `json:"user_password" binding:"required"`
}

type LogoutRequest struct {
	AuthenticationKey string `json:"user_authenticationkey"`
}

type DeleteUserRequest struct {
	ID FlexibleInt `json:"user_id" binding:"required,min=1"`
}
