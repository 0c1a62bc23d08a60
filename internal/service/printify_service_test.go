package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	cfg "github.com/marafield/brandops/configs"
	"github.com/marafield/brandops/internal/models"
)

type fakeProductRepo struct {
	upserts []*models.Product
	byID    map[int64]*models.Product
}

func (f *fakeProductRepo) Upsert(ctx context.Context, p *models.Product) (int64, error) {
	f.upserts = append(f.upserts, p)
	return int64(len(f.upserts)), nil
}

func (f *fakeProductRepo) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	return f.byID[id], nil
}

func (f *fakeProductRepo) ListByBrandID(ctx context.Context, brandID int64) ([]*models.Product, error) {
	return nil, nil
}

func (f *fakeProductRepo) SetShopifyID(ctx context.Context, id int64, shopifyID, status string) error {
	if p, ok := f.byID[id]; ok {
		p.ShopifyProductID = shopifyID
		p.Status = status
	}
	return nil
}

func (f *fakeProductRepo) Remove(ctx context.Context, id int64) error {
	return nil
}

func TestSyncCatalogPaginates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer pf-token" {
			t.Errorf("unexpected authorization: %s", r.Header.Get("Authorization"))
		}

		page := r.URL.Query().Get("page")
		switch page {
		case "1":
			json.NewEncoder(w).Encode(map[string]any{
				"current_page": 1,
				"last_page":    2,
				"data": []map[string]any{
					{
						"id":    "pp-1",
						"title": "Motivation Poster",
						"images": []map[string]any{
							{"src": "https://img/one.png", "is_default": false},
							{"src": "https://img/two.png", "is_default": true},
						},
						"variants": []map[string]any{
							{"id": 1, "price": 1500, "is_enabled": false},
							{"id": 2, "price": 1999, "is_enabled": true},
						},
					},
				},
			})
		case "2":
			json.NewEncoder(w).Encode(map[string]any{
				"current_page": 2,
				"last_page":    2,
				"data": []map[string]any{
					{"id": "pp-2", "title": "Mug"},
				},
			})
		default:
			t.Errorf("unexpected page: %s", page)
		}
	}))
	defer server.Close()

	repo := &fakeProductRepo{}
	s := &printifyService{
		cfg:        cfg.Config{PrintifyAPIToken: "pf-token", PrintifyShopID: "shop-1"},
		pr:         repo,
		httpClient: server.Client(),
		baseURL:    server.URL,
	}

	synced, err := s.SyncCatalog(context.Background(), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if synced != 2 || len(repo.upserts) != 2 {
		t.Fatalf("expected 2 synced products, got %d", synced)
	}

	first := repo.upserts[0]
	if first.BrandID != 3 || first.PrintifyProductID != "pp-1" {
		t.Errorf("unexpected product: %+v", first)
	}
	if first.ImageURL != "https://img/two.png" {
		t.Errorf("expected the default image, got %s", first.ImageURL)
	}
	if first.PriceCents != 1999 {
		t.Errorf("expected the first enabled variant price, got %d", first.PriceCents)
	}
	if first.Status != models.ProductStatusSynced {
		t.Errorf("expected synced status, got %s", first.Status)
	}
}

func TestSyncCatalogMissingCredentials(t *testing.T) {
	s := &printifyService{cfg: cfg.Config{}, pr: &fakeProductRepo{}}
	if _, err := s.SyncCatalog(context.Background(), 1); err == nil {
		t.Fatal("expected error without credentials")
	}
}
