package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"gymhub/internal/database"
	apperrors "gymhub/internal/errors"

	"github.com/lib/pq"
)

type Repositories struct {
	Activities *ActivityRepository
	Rooms      *RoomRepository
	Sessions   *SessionRepository
	Bookings   *BookingRepository
	Blogs      *BlogRepository
	Users      *UserRepository
}

func NewRepositories(db *database.DB) *Repositories {
	return &Repositories{
		Activities: NewActivityRepository(db),
		Rooms:      NewRoomRepository(db),
		Sessions:   NewSessionRepository(db),
		Bookings:   NewBookingRepository(db),
		Blogs:      NewBlogRepository(db),
		Users:      NewUserRepository(db),
	}
}

type scanner interface {
	Scan(dest ...any) error
}

// Postgres error codes we translate into domain kinds.
const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

// storeError maps a driver error onto the domain taxonomy.
func storeError(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqUniqueViolation:
			return apperrors.Wrap(apperrors.KindConflict, conflictMessage(pqErr), err)
		case pqForeignKeyViolation:
			return apperrors.Wrap(apperrors.KindConflict, "Referenced record does not exist or is still in use", err)
		}
	}
	return apperrors.Store(op, err)
}

func conflictMessage(pqErr *pq.Error) string {
	if pqErr.Constraint == "users_user_email_key" {
		return "A user with that email already exists"
	}
	return "Record already exists"
}

// expectAffected turns a zero-row update/delete into NotFound.
func expectAffected(res sql.Result, entity string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return apperrors.Store(fmt.Sprintf("failed to read affected rows for %s", entity), err)
	}
	if n == 0 {
		return apperrors.NotFound("%s with ID %d not found", entity, id)
	}
	return nil
}
