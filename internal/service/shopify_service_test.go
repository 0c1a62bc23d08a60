package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	cfg "github.com/marafield/brandops/configs"
	"github.com/marafield/brandops/internal/models"
	"github.com/marafield/brandops/internal/transfer"
)

func TestPublishProduct(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Shopify-Access-Token") != "shp-token" {
			t.Errorf("unexpected access token header: %s", r.Header.Get("X-Shopify-Access-Token"))
		}

		var req transfer.ShopifyProductRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Product.Title != "Motivation Poster" {
			t.Errorf("unexpected title: %s", req.Product.Title)
		}
		if req.Product.Vendor != "Walls of Will" {
			t.Errorf("product vendor should be the brand name, got %s", req.Product.Vendor)
		}
		if len(req.Product.Variants) != 1 || req.Product.Variants[0].Price != "19.99" {
			t.Errorf("unexpected variants: %+v", req.Product.Variants)
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(transfer.ShopifyProductResponse{
			Product: transfer.ShopifyProduct{ID: 777},
		})
	}))
	defer server.Close()

	repo := &fakeProductRepo{byID: map[int64]*models.Product{
		10: {
			ID:                10,
			BrandID:           2,
			PrintifyProductID: "pp-1",
			Title:             "Motivation Poster",
			Description:       "<p>Hang in there.</p>",
			ImageURL:          "https://img/two.png",
			PriceCents:        1999,
			Status:            models.ProductStatusSynced,
		},
	}}

	s := &shopifyService{
		cfg:        cfg.Config{ShopifyStoreDomain: "wow.myshopify.com", ShopifyAccessToken: "shp-token"},
		pr:         repo,
		httpClient: server.Client(),
		baseURL:    server.URL,
	}

	brand := &models.Brand{ID: 2, Name: "Walls of Will", Slug: "wallsofwill"}
	product, err := s.PublishProduct(context.Background(), 10, brand)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if product.ShopifyProductID != "777" {
		t.Errorf("expected shopify id 777, got %s", product.ShopifyProductID)
	}
	if product.Status != models.ProductStatusPublished {
		t.Errorf("expected published status, got %s", product.Status)
	}
	if stored := repo.byID[10]; stored.ShopifyProductID != "777" {
		t.Errorf("repository row should be updated, got %s", stored.ShopifyProductID)
	}
}

func TestPublishProductWrongBrand(t *testing.T) {
	repo := &fakeProductRepo{byID: map[int64]*models.Product{
		10: {ID: 10, BrandID: 2, Title: "Poster"},
	}}

	s := &shopifyService{
		cfg: cfg.Config{ShopifyStoreDomain: "wow.myshopify.com", ShopifyAccessToken: "shp-token"},
		pr:  repo,
	}

	otherBrand := &models.Brand{ID: 9, Name: "Handy Hub", Slug: "handyhub"}
	if _, err := s.PublishProduct(context.Background(), 10, otherBrand); err == nil {
		t.Fatal("expected error for a product owned by another brand")
	}
}

func TestPublishProductNotFound(t *testing.T) {
	s := &shopifyService{
		cfg: cfg.Config{ShopifyStoreDomain: "wow.myshopify.com", ShopifyAccessToken: "shp-token"},
		pr:  &fakeProductRepo{byID: map[int64]*models.Product{}},
	}

	brand := &models.Brand{ID: 2, Name: "Walls of Will", Slug: "wallsofwill"}
	if _, err := s.PublishProduct(context.Background(), 10, brand); err == nil {
		t.Fatal("expected error for a missing product")
	}
}
