package repository

import (
	"context"
	"database/sql"
	"errors"

	"gymhub/internal/database"
	apperrors "gymhub/internal/errors"
	"gymhub/internal/models"
)

type RoomRepository struct {
	db *database.DB
}

func NewRoomRepository(db *database.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

func (r *RoomRepository) Create(ctx context.Context, room *models.Room) error {
	query := `
		INSERT INTO rooms (room_location, room_number)
		VALUES ($1, $2)
		RETURNING room_id`

	if err := r.db.QueryRowContext(ctx, query, room.Location, room.Number).Scan(&room.ID); err != nil {
		return storeError("failed to create room", err)
	}
	return nil
}

func (r *RoomRepository) GetAll(ctx context.Context) ([]models.Room, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT room_id, room_location, room_number FROM rooms ORDER BY room_id`)
	if err != nil {
		return nil, storeError("failed to list rooms", err)
	}
	defer rows.Close()

	var rooms []models.Room
	for rows.Next() {
		var room models.Room
		if err := rows.Scan(&room.ID, &room.Location, &room.Number); err != nil {
			return nil, storeError("failed to scan room", err)
		}
		rooms = append(rooms, room)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("failed to iterate rooms", err)
	}

	if len(rooms) == 0 {
		return nil, apperrors.NotFound("No rooms available")
	}
	return rooms, nil
}

func (r *RoomRepository) GetByID(ctx context.Context, id int64) (*models.Room, error) {
	room := &models.Room{}
	err := r.db.QueryRowContext(ctx,
		`SELECT room_id, room_location, room_number FROM rooms WHERE room_id = $1`, id,
	).Scan(&room.ID, &room.Location, &room.Number)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("Room with ID %d not found", id)
	}
	if err != nil {
		return nil, storeError("failed to get room", err)
	}
	return room, nil
}

func (r *RoomRepository) Update(ctx context.Context, room *models.Room) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE rooms SET room_location = $1, room_number = $2 WHERE room_id = $3`,
		room.Location, room.Number, room.ID)
	if err != nil {
		return storeError("failed to update room", err)
	}
	return expectAffected(res, "Room", room.ID)
}

func (r *RoomRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM rooms WHERE room_id = $1`, id)
	if err != nil {
		return storeError("failed to delete room", err)
	}
	return expectAffected(res, "Room", id)
}
