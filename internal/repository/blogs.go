package repository

import (
	"context"
	"database/sql"
	"errors"

	"gymhub/internal/database"
	apperrors "gymhub/internal/errors"
	"gymhub/internal/models"
)

type BlogRepository struct {
	db *database.DB
}

func NewBlogRepository(db *database.DB) *BlogRepository {
	return &BlogRepository{db: db}
}

const blogColumns = `blog_id, blog_datetime, blog_title, blog_content, blog_user_id`

func scanBlog(row scanner) (*models.Blog, error) {
	b := &models.Blog{}
	err := row.Scan(&b.ID, &b.Datetime, &b.Title, &b.Content, &b.UserID)
	return b, err
}

func (r *BlogRepository) Create(ctx context.Context, b *models.Blog) error {
	query := `
		INSERT INTO blogs (blog_datetime, blog_title, blog_content, blog_user_id)
		VALUES (NOW(), $1, $2, $3)
		RETURNING blog_id, blog_datetime`

	if err := r.db.QueryRowContext(ctx, query, b.Title, b.Content, b.UserID).Scan(&b.ID, &b.Datetime); err != nil {
		return storeError("failed to create blog", err)
	}
	return nil
}

// GetAll lists blogs newest first.
func (r *BlogRepository) GetAll(ctx context.Context) ([]models.Blog, error) {
	blogs, err := r.list(ctx, `SELECT `+blogColumns+` FROM blogs ORDER BY blog_datetime DESC`)
	if err != nil {
		return nil, err
	}
	if len(blogs) == 0 {
		return nil, apperrors.NotFound("No blogs available")
	}
	return blogs, nil
}

// GetByUserID returns an empty slice when the user has not posted anything.
func (r *BlogRepository) GetByUserID(ctx context.Context, userID int64) ([]models.Blog, error) {
	return r.list(ctx, `SELECT `+blogColumns+` FROM blogs WHERE blog_user_id = $1 ORDER BY blog_datetime DESC`, userID)
}

func (r *BlogRepository) list(ctx context.Context, query string, args ...any) ([]models.Blog, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storeError("failed to list blogs", err)
	}
	defer rows.Close()

	blogs := []models.Blog{}
	for rows.Next() {
		b, err := scanBlog(rows)
		if err != nil {
			return nil, storeError("failed to scan blog", err)
		}
		blogs = append(blogs, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("failed to iterate blogs", err)
	}
	return blogs, nil
}

func (r *BlogRepository) GetByID(ctx context.Context, id int64) (*models.Blog, error) {
	b, err := scanBlog(r.db.QueryRowContext(ctx, `SELECT `+blogColumns+` FROM blogs WHERE blog_id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("Blog with ID %d not found", id)
	}
	if err != nil {
		return nil, storeError("failed to get blog", err)
	}
	return b, nil
}

// Update replaces the post and resets blog_datetime to now.
func (r *BlogRepository) Update(ctx context.Context, b *models.Blog) error {
	query := `
		UPDATE blogs
		SET blog_datetime = NOW(), blog_title = $1, blog_content = $2, blog_user_id = $3
		WHERE blog_id = $4
		RETURNING blog_datetime`

	err := r.db.QueryRowContext(ctx, query, b.Title, b.Content, b.UserID, b.ID).Scan(&b.Datetime)
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.NotFound("Blog with ID %d not found", b.ID)
	}
	if err != nil {
		return storeError("failed to update blog", err)
	}
	return nil
}

func (r *BlogRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM blogs WHERE blog_id = $1`, id)
	if err != nil {
		return storeError("failed to delete blog", err)
	}
	return expectAffected(res, "Blog", id)
}
