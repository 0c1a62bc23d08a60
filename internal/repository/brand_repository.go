package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/marafield/brandops/internal/models"
)

type BrandRepository interface {
	Create(ctx context.Context, tx *sql.Tx, b *models.Brand) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Brand, error)
	GetBySlug(ctx context.Context, slug string) (*models.Brand, error)
	List(ctx context.Context) ([]*models.Brand, error)
}

type brandRepository struct {
	db *sql.DB
}

func NewBrandRepository(db *sql.DB) BrandRepository {
	return &brandRepository{db: db}
}

func (r *brandRepository) Create(ctx context.Context, tx *sql.Tx, b *models.Brand) (int64, error) {
	var id int64

	insertQuery := `
		INSERT INTO brands(name, slug)
		VALUES ($1, $2)
		RETURNING id
	`

	var err error
	if tx != nil {
		err = tx.QueryRowContext(ctx, insertQuery, b.Name, b.Slug).Scan(&id)
	} else {
		err = r.db.QueryRowContext(ctx, insertQuery, b.Name, b.Slug).Scan(&id)
	}

	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *brandRepository) GetByID(ctx context.Context, id int64) (*models.Brand, error) {
	query := `SELECT id, name, slug, created_at, updated_at FROM brands WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)

	var b models.Brand
	err := row.Scan(&b.ID, &b.Name, &b.Slug, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}

	return &b, nil
}

func (r *brandRepository) GetBySlug(ctx context.Context, slug string) (*models.Brand, error) {
	query := `SELECT id, name, slug, created_at, updated_at FROM brands WHERE slug = $1`
	row := r.db.QueryRowContext(ctx, query, slug)

	var b models.Brand
	err := row.Scan(&b.ID, &b.Name, &b.Slug, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}

	return &b, nil
}

func (r *brandRepository) List(ctx context.Context) ([]*models.Brand, error) {
	query := `SELECT id, name, slug, created_at, updated_at FROM brands ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var brands []*models.Brand
	for rows.Next() {
		var b models.Brand
		err := rows.Scan(&b.ID, &b.Name, &b.Slug, &b.CreatedAt, &b.UpdatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		brands = append(brands, &b)
	}

	if err := rows.Err(); err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	return brands, nil
}
