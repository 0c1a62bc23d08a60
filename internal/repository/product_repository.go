package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/marafield/brandops/internal/models"
)

type ProductRepository interface {
	Upsert(ctx context.Context, p *models.Product) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Product, error)
	ListByBrandID(ctx context.Context, brandID int64) ([]*models.Product, error)
	SetShopifyID(ctx context.Context, id int64, shopifyID, status string) error
	Remove(ctx context.Context, id int64) error
}

type productRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db}
}

// Upsert keys on (brand_id, printify_product_id) so repeated catalog syncs
// refresh rows instead of duplicating them.
func (r *productRepository) Upsert(ctx context.Context, p *models.Product) (int64, error) {
	insertQuery := `
		INSERT INTO products(brand_id, printify_product_id, title, description, image_url, price_cents, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (brand_id, printify_product_id) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			image_url = EXCLUDED.image_url,
			price_cents = EXCLUDED.price_cents,
			updated_at = CURRENT_TIMESTAMP
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, insertQuery,
		p.BrandID, p.PrintifyProductID, p.Title, p.Description, p.ImageURL, p.PriceCents, p.Status).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *productRepository) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	query := `
		SELECT id, brand_id, printify_product_id, shopify_product_id, title, description,
			image_url, price_cents, status, created_at, updated_at
		FROM products WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)

	var p models.Product
	err := row.Scan(&p.ID, &p.BrandID, &p.PrintifyProductID, &p.ShopifyProductID, &p.Title,
		&p.Description, &p.ImageURL, &p.PriceCents, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}

	return &p, nil
}

func (r *productRepository) ListByBrandID(ctx context.Context, brandID int64) ([]*models.Product, error) {
	query := `
		SELECT id, brand_id, printify_product_id, shopify_product_id, title, description,
			image_url, price_cents, status, created_at, updated_at
		FROM products WHERE brand_id = $1 ORDER BY title`
	rows, err := r.db.QueryContext(ctx, query, brandID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		var p models.Product
		err := rows.Scan(&p.ID, &p.BrandID, &p.PrintifyProductID, &p.ShopifyProductID, &p.Title,
			&p.Description, &p.ImageURL, &p.PriceCents, &p.Status, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		products = append(products, &p)
	}

	if err := rows.Err(); err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	return products, nil
}

func (r *productRepository) SetShopifyID(ctx context.Context, id int64, shopifyID, status string) error {
	query := `UPDATE products SET shopify_product_id = $2, status = $3, updated_at = CURRENT_TIMESTAMP WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, shopifyID, status)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *productRepository) Remove(ctx context.Context, id int64) error {
	query := `DELETE FROM products WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
