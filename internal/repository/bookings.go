package repository

import (
	"context"
	"database/sql"
	"errors"

	"gymhub/internal/database"
	apperrors "gymhub/internal/errors"
	"gymhub/internal/models"
)

type BookingRepository struct {
	db *database.DB
}

func NewBookingRepository(db *database.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

const bookingColumns = `booking_id, booking_user_id, booking_session_id, booking_created_datetime`

func scanBooking(row scanner) (*models.Booking, error) {
	b := &models.Booking{}
	err := row.Scan(&b.ID, &b.UserID, &b.SessionID, &b.CreatedDatetime)
	return b, err
}

// Create stamps booking_created_datetime on the server side.
func (r *BookingRepository) Create(ctx context.Context, b *models.Booking) error {
	query := `
		INSERT INTO bookings (booking_user_id, booking_session_id, booking_created_datetime)
		VALUES ($1, $2, NOW())
		RETURNING booking_id, booking_created_datetime`

	err := r.db.QueryRowContext(ctx, query, b.UserID, b.SessionID).Scan(&b.ID, &b.CreatedDatetime)
	if err != nil {
		return storeError("failed to create booking", err)
	}
	return nil
}

func (r *BookingRepository) GetAll(ctx context.Context) ([]models.Booking, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+bookingColumns+` FROM bookings ORDER BY booking_id`)
	if err != nil {
		return nil, storeError("failed to list bookings", err)
	}
	defer rows.Close()

	var bookings []models.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, storeError("failed to scan booking", err)
		}
		bookings = append(bookings, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("failed to iterate bookings", err)
	}

	if len(bookings) == 0 {
		return nil, apperrors.NotFound("No bookings available")
	}
	return bookings, nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*models.Booking, error) {
	b, err := scanBooking(r.db.QueryRowContext(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE booking_id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("Booking with ID %d not found", id)
	}
	if err != nil {
		return nil, storeError("failed to get booking", err)
	}
	return b, nil
}

// GetByUserID returns the user's bookings for sessions that have not started yet.
// An empty result is not an error.
func (r *BookingRepository) GetByUserID(ctx context.Context, userID int64) ([]models.UserBooking, error) {
	query := `
		SELECT b.booking_id, b.booking_user_id, b.booking_session_id, b.booking_created_datetime,
		       s.session_id, s.session_datetime, s.session_room_id, s.session_activity_id, s.session_trainer_user_id
		FROM bookings b
		INNER JOIN sessions s ON b.booking_session_id = s.session_id
		WHERE b.booking_user_id = $1 AND s.session_datetime > NOW()
		ORDER BY s.session_datetime ASC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, storeError("failed to list user bookings", err)
	}
	defer rows.Close()

	bookings := []models.UserBooking{}
	for rows.Next() {
		var ub models.UserBooking
		if err := rows.Scan(
			&ub.Booking.ID, &ub.Booking.UserID, &ub.Booking.SessionID, &ub.Booking.CreatedDatetime,
			&ub.Session.ID, &ub.Session.Datetime, &ub.Session.RoomID, &ub.Session.ActivityID, &ub.Session.TrainerUserID,
		); err != nil {
			return nil, storeError("failed to scan user booking", err)
		}
		bookings = append(bookings, ub)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("failed to iterate user bookings", err)
	}
	return bookings, nil
}

// Update only reassigns user and session. The creation timestamp is never touched,
// the stored one is read back into b.
func (r *BookingRepository) Update(ctx context.Context, b *models.Booking) error {
	query := `
		UPDATE bookings SET booking_user_id = $1, booking_session_id = $2
		WHERE booking_id = $3
		RETURNING booking_created_datetime`

	err := r.db.QueryRowContext(ctx, query, b.UserID, b.SessionID, b.ID).Scan(&b.CreatedDatetime)
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.NotFound("Booking with ID %d not found", b.ID)
	}
	if err != nil {
		return storeError("failed to update booking", err)
	}
	return nil
}

func (r *BookingRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE booking_id = $1`, id)
	if err != nil {
		return storeError("failed to delete booking", err)
	}
	return expectAffected(res, "Booking", id)
}
