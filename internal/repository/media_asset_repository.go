package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/marafield/brandops/internal/models"
)

type MediaAssetRepository interface {
	Create(ctx context.Context, tx *sql.Tx, ma *models.MediaAsset) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.MediaAsset, error)
	ListByBrandID(ctx context.Context, brandID int64) ([]*models.MediaAsset, error)
	Remove(ctx context.Context, id int64) error
}

type mediaAssetRepository struct {
	db *sql.DB
}

func NewMediaAssetRepository(db *sql.DB) MediaAssetRepository {
	return &mediaAssetRepository{db: db}
}

func (r *mediaAssetRepository) Create(ctx context.Context, tx *sql.Tx, ma *models.MediaAsset) (int64, error) {
	var err error
	var id int64

	insertQuery := `
		INSERT INTO media_assets(brand_id, source_url, storage_key, file_url, file_type, file_size)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	args := []interface{}{ma.BrandID, ma.SourceURL, ma.StorageKey, ma.FileURL, ma.FileType, ma.FileSize}

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

func (r *mediaAssetRepository) GetByID(ctx context.Context, id int64) (*models.MediaAsset, error) {
	query := `
		SELECT id, brand_id, source_url, storage_key, file_url, file_type, file_size, created_at
		FROM media_assets WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)

	var ma models.MediaAsset
	err := row.Scan(&ma.ID, &ma.BrandID, &ma.SourceURL, &ma.StorageKey, &ma.FileURL,
		&ma.FileType, &ma.FileSize, &ma.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}

	return &ma, nil
}

func (r *mediaAssetRepository) ListByBrandID(ctx context.Context, brandID int64) ([]*models.MediaAsset, error) {
	query := `
		SELECT id, brand_id, source_url, storage_key, file_url, file_type, file_size, created_at
		FROM media_assets WHERE brand_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, brandID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var assets []*models.MediaAsset
	for rows.Next() {
		var ma models.MediaAsset
		err := rows.Scan(&ma.ID, &ma.BrandID, &ma.SourceURL, &ma.StorageKey, &ma.FileURL,
			&ma.FileType, &ma.FileSize, &ma.CreatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		assets = append(assets, &ma)
	}

	if err := rows.Err(); err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	return assets, nil
}

func (r *mediaAssetRepository) Remove(ctx context.Context, id int64) error {
	query := `DELETE FROM media_assets WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
