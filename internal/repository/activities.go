package repository

import (
	"context"
	"database/sql"
	"errors"

	"gymhub/internal/database"
	apperrors "gymhub/internal/errors"
	"gymhub/internal/models"
)

type ActivityRepository struct {
	db *database.DB
}

func NewActivityRepository(db *database.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

const activityColumns = `activity_id, activity_name, activity_description, activity_duration`

func scanActivity(row scanner) (*models.Activity, error) {
	a := &models.Activity{}
	err := row.Scan(&a.ID, &a.Name, &a.Description, &a.Duration)
	return a, err
}

func (r *ActivityRepository) Create(ctx context.Context, a *models.Activity) error {
	query := `
		INSERT INTO activities (activity_name, activity_description, activity_duration)
		VALUES ($1, $2, $3)
		RETURNING activity_id`

	if err := r.db.QueryRowContext(ctx, query, a.Name, a.Description, a.Duration).Scan(&a.ID); err != nil {
		return storeError("failed to create activity", err)
	}
	return nil
}

func (r *ActivityRepository) GetAll(ctx context.Context) ([]models.Activity, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+activityColumns+` FROM activities ORDER BY activity_id`)
	if err != nil {
		return nil, storeError("failed to list activities", err)
	}
	defer rows.Close()

	var activities []models.Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, storeError("failed to scan activity", err)
		}
		activities = append(activities, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("failed to iterate activities", err)
	}

	if len(activities) == 0 {
		return nil, apperrors.NotFound("No activities available")
	}
	return activities, nil
}

func (r *ActivityRepository) GetByID(ctx context.Context, id int64) (*models.Activity, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+activityColumns+` FROM activities WHERE activity_id = $1`, id)

	a, err := scanActivity(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("Activity with ID %d not found", id)
	}
	if err != nil {
		return nil, storeError("failed to get activity", err)
	}
	return a, nil
}

func (r *ActivityRepository) Update(ctx context.Context, a *models.Activity) error {
	query := `
		UPDATE activities
		SET activity_name = $1, activity_description = $2, activity_duration = $3
		WHERE activity_id = $4`

	res, err := r.db.ExecContext(ctx, query, a.Name, a.Description, a.Duration, a.ID)
	if err != nil {
		return storeError("failed to update activity", err)
	}
	return expectAffected(res, "Activity", a.ID)
}

func (r *ActivityRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM activities WHERE activity_id = $1`, id)
	if err != nil {
		return storeError("failed to delete activity", err)
	}
	return expectAffected(res, "Activity", id)
}
