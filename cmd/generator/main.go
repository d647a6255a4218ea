package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"gymhub/internal/config"
	"gymhub/internal/database"
	"gymhub/internal/logger"
	"gymhub/internal/models"

	"github.com/joho/godotenv"
)

var (
	clearExisting = flag.Bool("clear", false, "Remove upcoming sessions without bookings before generating")
	days          = flag.Int("days", 7, "Number of days to schedule, starting tomorrow")
	perDay        = flag.Int("per-day", 3, "Sessions per room per day")
	startHour     = flag.Int("start-hour", 8, "Hour of the first session of the day")
	dryRun        = flag.Bool("dry-run", false, "Show what would be generated without making changes")
)

type ScheduleGenerator struct {
	db *database.DB
}

func main() {
	flag.Parse()
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("Failed to load .env file", "error", err)
	}

	cfg := config.Load()
	logger.Init(cfg.Log)
	slog.Info("Starting session schedule generator...")

	ctx := context.Background()
	db, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	defer db.Close()

	if err := db.RunMigrations(ctx); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	generator := &ScheduleGenerator{db: db}
	if err := generator.Generate(ctx); err != nil {
		logger.Fatal("Failed to generate sessions", "error", err)
	}

	slog.Info("Session generation completed successfully!")
}

func (g *ScheduleGenerator) Generate(ctx context.Context) error {
	activities, err := g.activities(ctx)
	if err != nil {
		return fmt.Errorf("failed to load activities: %w", err)
	}
	rooms, err := g.ids(ctx, "SELECT room_id FROM rooms ORDER BY room_id")
	if err != nil {
		return fmt.Errorf("failed to load rooms: %w", err)
	}
	trainers, err := g.ids(ctx, "SELECT user_id FROM users WHERE user_role = $1 ORDER BY user_id", models.RoleTrainer)
	if err != nil {
		return fmt.Errorf("failed to load trainers: %w", err)
	}

	sessions := PlanSessions(ScheduleOptions{
		From:      time.Now(),
		Days:      *days,
		PerDay:    *perDay,
		StartHour: *startHour,
	}, activities, rooms, trainers)

	if len(sessions) == 0 {
		slog.Info("Nothing to schedule",
			"activities", len(activities), "rooms", len(rooms), "trainers", len(trainers))
		return nil
	}

	if *dryRun {
		slog.Info("[DRY RUN] Would generate sessions",
			"count", len(sessions), "first", sessions[0].Datetime, "last", sessions[len(sessions)-1].Datetime)
		return nil
	}

	tx, err := g.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if *clearExisting {
		res, err := tx.ExecContext(ctx, `
			DELETE FROM sessions s
			WHERE s.session_datetime > NOW()
			  AND NOT EXISTS (SELECT 1 FROM bookings b WHERE b.booking_session_id = s.session_id)`)
		if err != nil {
			return fmt.Errorf("failed to clear upcoming sessions: %w", err)
		}
		removed, _ := res.RowsAffected()
		slog.Info("Cleared upcoming sessions", "count", removed)
	}

	if err := insertSessions(ctx, tx, sessions); err != nil {
		return fmt.Errorf("failed to insert sessions: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	slog.Info("Generated sessions", "count", len(sessions), "rooms", len(rooms), "days", *days)
	return nil
}

func (g *ScheduleGenerator) activities(ctx context.Context) ([]models.Activity, error) {
	rows, err := g.db.QueryContext(ctx, "SELECT activity_id, activity_duration FROM activities ORDER BY activity_id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []models.Activity
	for rows.Next() {
		var a models.Activity
		if err := rows.Scan(&a.ID, &a.Duration); err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}

func (g *ScheduleGenerator) ids(ctx context.Context, query string, args ...any) ([]int64, error) {
	rows, err := g.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func insertSessions(ctx context.Context, tx *sql.Tx, sessions []models.Session) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO sessions (session_datetime, session_room_id, session_activity_id, session_trainer_user_id)
		VALUES ($1, $2, $3, $4)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, s := range sessions {
		if _, err := stmt.ExecContext(ctx, s.Datetime, s.RoomID, s.ActivityID, s.TrainerUserID); err != nil {
			return err
		}
	}
	return nil
}
