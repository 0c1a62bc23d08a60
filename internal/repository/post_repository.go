package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/marafield/brandops/internal/models"
)

type PostRepository interface {
	Create(ctx context.Context, tx *sql.Tx, p *models.SocialPost) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.SocialPost, error)
	ListByBrandID(ctx context.Context, brandID int64) ([]*models.SocialPost, error)
	ListDue(ctx context.Context, status string, before time.Time) ([]*models.SocialPost, error)
	CheckByUserID(ctx context.Context, postID, userID int64) (bool, error)
	UpdateStatus(ctx context.Context, status string, id int64) error
	Remove(ctx context.Context, id int64) error
}

type postRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) PostRepository {
	return &postRepository{db: db}
}

const postColumns = `id, brand_id, user_id, platform, content, hashtags, scheduled_time, status, created_at, updated_at`

func (r *postRepository) Create(ctx context.Context, tx *sql.Tx, p *models.SocialPost) (int64, error) {
	var err error
	var id int64

	insertQuery := `
		INSERT INTO posts(brand_id, user_id, platform, content, hashtags, scheduled_time, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	args := []interface{}{p.BrandID, p.UserID, p.Platform, p.Content, p.Hashtags, p.ScheduledTime, p.Status}

	if tx != nil {
		err = tx.QueryRowContext(ctx, insertQuery, args...).Scan(&id)
	} else {
		err = r.db.QueryRowContext(ctx, insertQuery, args...).Scan(&id)
	}

	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *postRepository) GetByID(ctx context.Context, id int64) (*models.SocialPost, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)

	var p models.SocialPost
	err := row.Scan(&p.ID, &p.BrandID, &p.UserID, &p.Platform, &p.Content, &p.Hashtags,
		&p.ScheduledTime, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}

	return &p, nil
}

func (r *postRepository) ListByBrandID(ctx context.Context, brandID int64) ([]*models.SocialPost, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE brand_id = $1 ORDER BY scheduled_time DESC`
	rows, err := r.db.QueryContext(ctx, query, brandID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	return scanPosts(rows)
}

// ListDue returns posts in the given status whose scheduled time has
// passed. The sweeper uses it to re-submit deferred posts.
func (r *postRepository) ListDue(ctx context.Context, status string, before time.Time) ([]*models.SocialPost, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE status = $1 AND scheduled_time <= $2`
	rows, err := r.db.QueryContext(ctx, query, status, before)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	return scanPosts(rows)
}

func scanPosts(rows *sql.Rows) ([]*models.SocialPost, error) {
	var posts []*models.SocialPost
	for rows.Next() {
		var p models.SocialPost
		err := rows.Scan(&p.ID, &p.BrandID, &p.UserID, &p.Platform, &p.Content, &p.Hashtags,
			&p.ScheduledTime, &p.Status, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		posts = append(posts, &p)
	}

	if err := rows.Err(); err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	return posts, nil
}

func (r *postRepository) CheckByUserID(ctx context.Context, postID, userID int64) (bool, error) {
	query := `SELECT 1 FROM posts WHERE id = $1 AND user_id = $2`

	var result int
	err := r.db.QueryRowContext(ctx, query, postID, userID).Scan(&result)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		slog.Info(err.Error())
		return false, err
	}

	return result == 1, nil
}

func (r *postRepository) UpdateStatus(ctx context.Context, status string, id int64) error {
	query := `UPDATE posts SET status = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`
	_, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *postRepository) Remove(ctx context.Context, id int64) error {
	query := `DELETE FROM posts WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
