package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	cfg "github.com/marafield/brandops/configs"
	"github.com/marafield/brandops/internal/models"
	"github.com/marafield/brandops/internal/repository"
	"github.com/marafield/brandops/internal/transfer"
)

type ShopifyService interface {
	PublishProduct(ctx context.Context, productID int64, brand *models.Brand) (*models.Product, error)
}

// shopifyService pushes a synced catalog product to the Shopify storefront
// via the Admin REST API.
type shopifyService struct {
	cfg        cfg.Config
	pr         repository.ProductRepository
	httpClient *http.Client
	baseURL    string
}

func NewShopifyService(c cfg.Config, pr repository.ProductRepository) ShopifyService {
	return &shopifyService{
		cfg:        c,
		pr:         pr,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    fmt.Sprintf("https://%s/admin/api/2024-10", c.ShopifyStoreDomain),
	}
}

func (s *shopifyService) PublishProduct(ctx context.Context, productID int64, brand *models.Brand) (*models.Product, error) {
	if s.cfg.ShopifyStoreDomain == "" || s.cfg.ShopifyAccessToken == "" {
		err := errors.New("shopify credentials are not configured")
		slog.Info(err.Error())
		return nil, err
	}

	product, err := s.pr.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, errors.New("product not found")
	}
	if brand == nil || product.BrandID != brand.ID {
		return nil, errors.New("product does not belong to this brand")
	}

	request := transfer.ShopifyProductRequest{
		Product: transfer.ShopifyProduct{
			Title:    product.Title,
			BodyHTML: product.Description,
			Vendor:   brand.Name,
			Status:   "active",
		},
	}
	if product.ImageURL != "" {
		request.Product.Images = []transfer.ShopifyImage{{Src: product.ImageURL}}
	}
	if product.PriceCents > 0 {
		price := fmt.Sprintf("%d.%02d", product.PriceCents/100, product.PriceCents%100)
		request.Product.Variants = []transfer.ShopifyVariant{{Price: price}}
	}

	created, err := s.createProduct(ctx, &request)
	if err != nil {
		return nil, err
	}

	shopifyID := strconv.FormatInt(created.Product.ID, 10)
	if err := s.pr.SetShopifyID(ctx, product.ID, shopifyID, models.ProductStatusPublished); err != nil {
		return nil, err
	}

	product.ShopifyProductID = shopifyID
	product.Status = models.ProductStatusPublished
	return product, nil
}

func (s *shopifyService) createProduct(ctx context.Context, request *transfer.ShopifyProductRequest) (*transfer.ShopifyProductResponse, error) {
	payload, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("error marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/products.json", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Access-Token", s.cfg.ShopifyAccessToken)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("HTTP request error: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %w", err)
	}

	var result transfer.ShopifyProductResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("error parsing response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err := fmt.Errorf("Shopify API error: %d", resp.StatusCode)
		slog.Info(err.Error())
		return nil, err
	}
	if result.Product.ID == 0 {
		return nil, errors.New("Shopify returned no product id")
	}

	return &result, nil
}
