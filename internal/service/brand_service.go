package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/marafield/brandops/internal/models"
	"github.com/marafield/brandops/internal/repository"
)

type BrandService interface {
	List(ctx context.Context) ([]*models.Brand, error)
	BrandInfo(ctx context.Context, brandID int64) (*models.Brand, error)
	BrandWithAccounts(ctx context.Context, brandID int64) (*models.Brand, error)
	SetAccountActive(ctx context.Context, brandID, accountID int64, active bool) error
	DisconnectAccount(ctx context.Context, brandID, accountID int64) error
}

type brandService struct {
	br repository.BrandRepository
	sa repository.SocialAccountRepository
}

func NewBrandService(br repository.BrandRepository, sa repository.SocialAccountRepository) BrandService {
	return &brandService{br: br, sa: sa}
}

func (s *brandService) List(ctx context.Context) ([]*models.Brand, error) {
	brands, err := s.br.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing brands: %w", err)
	}
	return brands, nil
}

func (s *brandService) BrandInfo(ctx context.Context, brandID int64) (*models.Brand, error) {
	brand, err := s.br.GetByID(ctx, brandID)
	if err != nil {
		return nil, err
	}
	if brand == nil {
		err := errors.New("brand not found")
		slog.Info(err.Error())
		return nil, err
	}
	return brand, nil
}

// BrandWithAccounts loads a brand and attaches its connected social
// accounts. The dispatcher consumes this shape.
func (s *brandService) BrandWithAccounts(ctx context.Context, brandID int64) (*models.Brand, error) {
	brand, err := s.BrandInfo(ctx, brandID)
	if err != nil {
		return nil, err
	}

	accounts, err := s.sa.ListByBrandID(ctx, brandID)
	if err != nil {
		return nil, err
	}
	brand.Accounts = accounts

	return brand, nil
}

func (s *brandService) SetAccountActive(ctx context.Context, brandID, accountID int64, active bool) error {
	account, err := s.ownedAccount(ctx, brandID, accountID)
	if err != nil {
		return err
	}
	return s.sa.SetActive(ctx, account.ID, active)
}

func (s *brandService) DisconnectAccount(ctx context.Context, brandID, accountID int64) error {
	account, err := s.ownedAccount(ctx, brandID, accountID)
	if err != nil {
		return err
	}
	return s.sa.Remove(ctx, account.ID)
}

func (s *brandService) ownedAccount(ctx context.Context, brandID, accountID int64) (*models.SocialAccount, error) {
	account, err := s.sa.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account == nil || account.BrandID != brandID {
		err := errors.New("account doesn't exist")
		slog.Info(err.Error())
		return nil, err
	}
	return account, nil
}
