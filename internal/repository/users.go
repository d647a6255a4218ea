package repository

import (
	"context"
	"database/sql"
	"errors"

	"gymhub/internal/database"
	apperrors "gymhub/internal/errors"
	"gymhub/internal/models"
)

type UserRepository struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `user_id, user_email, user_password, user_role, user_firstname, user_lastname,
		       user_phone, user_address, user_authenticationkey`

func scanUser(row scanner) (*models.User, error) {
	u := &models.User{}
	var key sql.NullString
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.Password,
		&u.Role,
		&u.Firstname,
		&u.Lastname,
		&u.Phone,
		&u.Address,
		&key,
	)
	if key.Valid {
		u.AuthenticationKey = &key.String
	}
	return u, err
}

func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	query := `
		INSERT INTO users (user_email, user_password, user_role, user_firstname, user_lastname,
		                   user_phone, user_address, user_authenticationkey)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING user_id`

	err := r.db.QueryRowContext(ctx, query,
		u.Email,
		u.Password,
		u.Role,
		u.Firstname,
		u.Lastname,
		u.Phone,
		u.Address,
		u.AuthenticationKey,
	).Scan(&u.ID)
	if err != nil {
		return storeError("failed to create user", err)
	}
	return nil
}

func (r *UserRepository) GetAll(ctx context.Context) ([]models.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY user_id`)
	if err != nil {
		return nil, storeError("failed to list users", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, storeError("failed to scan user", err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("failed to iterate users", err)
	}

	if len(users) == 0 {
		return nil, apperrors.NotFound("No users available in the collection")
	}
	return users, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE user_id = $1`, id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE user_email = $1`, email)
}

func (r *UserRepository) GetByAuthKey(ctx context.Context, key string) (*models.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE user_authenticationkey = $1`, key)
}

func (r *UserRepository) getOne(ctx context.Context, query string, arg any) (*models.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("User not found")
	}
	if err != nil {
		return nil, storeError("failed to get user", err)
	}
	return u, nil
}

// Update writes every column, including the authentication key. Callers merge
// the stored key beforehand when the payload did not carry one.
func (r *UserRepository) Update(ctx context.Context, u *models.User) error {
	query := `
		UPDATE users
		SET user_email = $1, user_password = $2, user_role = $3, user_firstname = $4,
		    user_lastname = $5, user_phone = $6, user_address = $7, user_authenticationkey = $8
		WHERE user_id = $9`

	res, err := r.db.ExecContext(ctx, query,
		u.Email,
		u.Password,
		u.Role,
		u.Firstname,
		u.Lastname,
		u.Phone,
		u.Address,
		u.AuthenticationKey,
		u.ID,
	)
	if err != nil {
		return storeError("failed to update user", err)
	}
	return expectAffected(res, "User", u.ID)
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE user_id = $1`, id)
	if err != nil {
		return storeError("failed to delete user", err)
	}
	return expectAffected(res, "User", id)
}
