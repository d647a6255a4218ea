package repository

import (
	"context"
	"database/sql"
	"errors"

	"gymhub/internal/database"
	apperrors "gymhub/internal/errors"
	"gymhub/internal/models"
)

type SessionRepository struct {
	db *database.DB
}

func NewSessionRepository(db *database.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

const sessionColumns = `session_id, session_datetime, session_room_id, session_activity_id, session_trainer_user_id`

func scanSession(row scanner) (*models.Session, error) {
	s := &models.Session{}
	err := row.Scan(&s.ID, &s.Datetime, &s.RoomID, &s.ActivityID, &s.TrainerUserID)
	return s, err
}

func (r *SessionRepository) Create(ctx context.Context, s *models.Session) error {
	query := `
		INSERT INTO sessions (session_datetime, session_room_id, session_activity_id, session_trainer_user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING session_id`

	err := r.db.QueryRowContext(ctx, query, s.Datetime, s.RoomID, s.ActivityID, s.TrainerUserID).Scan(&s.ID)
	if err != nil {
		return storeError("failed to create session", err)
	}
	return nil
}

// GetAll returns only upcoming sessions, soonest first.
func (r *SessionRepository) GetAll(ctx context.Context) ([]models.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions
		WHERE session_datetime > NOW()
		ORDER BY session_datetime ASC`

	sessions, err := r.list(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(sessions) == 0 {
		return nil, apperrors.NotFound("No sessions available")
	}
	return sessions, nil
}

// GetTop returns up to limit upcoming sessions, soonest first.
func (r *SessionRepository) GetTop(ctx context.Context, limit int) ([]models.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions
		WHERE session_datetime > NOW()
		ORDER BY session_datetime ASC
		LIMIT $1`

	sessions, err := r.list(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	if len(sessions) == 0 {
		return nil, apperrors.NotFound("No sessions available")
	}
	return sessions, nil
}

func (r *SessionRepository) list(ctx context.Context, query string, args ...any) ([]models.Session, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storeError("failed to list sessions", err)
	}
	defer rows.Close()

	var sessions []models.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, storeError("failed to scan session", err)
		}
		sessions = append(sessions, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("failed to iterate sessions", err)
	}
	return sessions, nil
}

func (r *SessionRepository) GetByID(ctx context.Context, id int64) (*models.Session, error) {
	s, err := scanSession(r.db.QueryRowContext(ctx, `SELECT `+sessionColumns+` FROM sessions WHERE session_id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("Session with ID %d not found", id)
	}
	if err != nil {
		return nil, storeError("failed to get session", err)
	}
	return s, nil
}

func (r *SessionRepository) Update(ctx context.Context, s *models.Session) error {
	query := `
		UPDATE sessions
		SET session_datetime = $1, session_room_id = $2, session_activity_id = $3, session_trainer_user_id = $4
		WHERE session_id = $5`

	res, err := r.db.ExecContext(ctx, query, s.Datetime, s.RoomID, s.ActivityID, s.TrainerUserID, s.ID)
	if err != nil {
		return storeError("failed to update session", err)
	}
	return expectAffected(res, "Session", s.ID)
}

func (r *SessionRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE session_id = $1`, id)
	if err != nil {
		return storeError("failed to delete session", err)
	}
	return expectAffected(res, "Session", id)
}
