package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	cfg "github.com/marafield/brandops/configs"
	"github.com/marafield/brandops/internal/models"
	"github.com/marafield/brandops/internal/repository"
	"github.com/marafield/brandops/internal/transfer"
)

const printifyBaseURL = "https://api.printify.com/v1"

type PrintifyService interface {
	SyncCatalog(ctx context.Context, brandID int64) (int, error)
}

// printifyService pulls the Printify shop catalog and mirrors it into the
// products table. Sync is idempotent: rows are keyed on the Printify
// product id.
type printifyService struct {
	cfg        cfg.Config
	pr         repository.ProductRepository
	httpClient *http.Client
	baseURL    string
}

func NewPrintifyService(c cfg.Config, pr repository.ProductRepository) PrintifyService {
	return &printifyService{
		cfg:        c,
		pr:         pr,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    printifyBaseURL,
	}
}

func (s *printifyService) SyncCatalog(ctx context.Context, brandID int64) (int, error) {
	if s.cfg.PrintifyAPIToken == "" || s.cfg.PrintifyShopID == "" {
		err := errors.New("printify credentials are not configured")
		slog.Info(err.Error())
		return 0, err
	}

	synced := 0
	page := 1
	for {
		list, err := s.listProducts(ctx, page)
		if err != nil {
			return synced, err
		}

		for i := range list.Data {
			pp := &list.Data[i]
			product := &models.Product{
				BrandID:           brandID,
				PrintifyProductID: pp.ID,
				Title:             pp.Title,
				Description:       pp.Description,
				ImageURL:          pp.DefaultImage(),
				PriceCents:        pp.FirstEnabledPrice(),
				Status:            models.ProductStatusSynced,
			}
			if _, err := s.pr.Upsert(ctx, product); err != nil {
				return synced, err
			}
			synced++
		}

		if list.CurrentPage >= list.LastPage || len(list.Data) == 0 {
			break
		}
		page++
	}

	return synced, nil
}

func (s *printifyService) listProducts(ctx context.Context, page int) (*transfer.PrintifyProductList, error) {
	reqURL := fmt.Sprintf("%s/shops/%s/products.json?page=%d", s.baseURL, s.cfg.PrintifyShopID, page)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.cfg.PrintifyAPIToken)

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

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err := fmt.Errorf("Printify API error: %d", resp.StatusCode)
		slog.Info(err.Error())
		return nil, err
	}

	var list transfer.PrintifyProductList
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("error parsing response: %w", err)
	}

	return &list, nil
}
