package database

import (
	"context"
	"fmt"
	"log/slog"
)

func (db *DB) RunMigrations(ctx context.Context) error {
	slog.Info("Running database migrations...")

	migrations := []string{
		createUsersTable,
		createActivitiesTable,
		createRoomsTable,
		createSessionsTable,
		createBookingsTable,
		createBlogsTable,
		createSessionsDatetimeIndex,
		createBookingsUserIndex,
		createBlogsUserIndex,
	}

	for i, migration := range migrations {
		slog.Debug("Running migration", "step", i+1)
		if _, err := db.ExecContext(ctx, migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	slog.Info("All migrations completed successfully", "count", len(migrations))
	return nil
}

const createUsersTable = `
CREATE TABLE IF NOT EXISTS users (
    user_id SERIAL PRIMARY KEY,
    user_email VARCHAR(255) UNIQUE NOT NULL,
    user_password VARCHAR(255) NOT NULL,
    user_role VARCHAR(16) NOT NULL DEFAULT 'Member'
        CHECK (user_role IN ('Member', 'Trainer', 'Admin')),
    user_firstname VARCHAR(100) NOT NULL,
    user_lastname VARCHAR(100) NOT NULL,
    user_phone VARCHAR(32) NOT NULL,
    user_address VARCHAR(255) NOT NULL,
    user_authenticationkey VARCHAR(64) UNIQUE
);`

const createActivitiesTable = `
CREATE TABLE IF NOT EXISTS activities (
    activity_id SERIAL PRIMARY KEY,
    activity_name VARCHAR(255) NOT NULL,
    activity_description TEXT NOT NULL,
    activity_duration INTEGER NOT NULL
);`

const createRoomsTable = `
CREATE TABLE IF NOT EXISTS rooms (
    room_id SERIAL PRIMARY KEY,
    room_location VARCHAR(255) NOT NULL,
    room_number VARCHAR(16) NOT NULL
);`

const createSessionsTable = `
CREATE TABLE IF NOT EXISTS sessions (
    session_id SERIAL PRIMARY KEY,
    session_datetime TIMESTAMPTZ NOT NULL,
    session_room_id INTEGER NOT NULL REFERENCES rooms(room_id),
    session_activity_id INTEGER NOT NULL REFERENCES activities(activity_id),
    session_trainer_user_id INTEGER NOT NULL REFERENCES users(user_id)
);`

const createBookingsTable = `
CREATE TABLE IF NOT EXISTS bookings (
    booking_id SERIAL PRIMARY KEY,
    booking_user_id INTEGER NOT NULL REFERENCES users(user_id),
    booking_session_id INTEGER NOT NULL REFERENCES sessions(session_id),
    booking_created_datetime TIMESTAMPTZ NOT NULL DEFAULT NOW()
);`

const createBlogsTable = `
CREATE TABLE IF NOT EXISTS blogs (
    blog_id SERIAL PRIMARY KEY,
    blog_datetime TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    blog_title VARCHAR(255) NOT NULL,
    blog_content TEXT NOT NULL,
    blog_user_id INTEGER NOT NULL REFERENCES users(user_id)
);`

const createSessionsDatetimeIndex = `
CREATE INDEX IF NOT EXISTS idx_sessions_datetime ON sessions(session_datetime);`

const createBookingsUserIndex = `
CREATE INDEX IF NOT EXISTS idx_bookings_user ON bookings(booking_user_id);`

const createBlogsUserIndex = `
CREATE INDEX IF NOT EXISTS idx_blogs_user ON blogs(blog_user_id);`
