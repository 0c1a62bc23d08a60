package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/types"
	"github.com/marafield/brandops/internal/models"
	"github.com/marafield/brandops/internal/repository"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

type MediaService interface {
	Upload(ctx context.Context, brand *models.Brand, file *multipart.FileHeader) (*models.MediaAsset, error)
	List(ctx context.Context, brandID int64) ([]*models.MediaAsset, error)
	Remove(ctx context.Context, brandID, assetID int64) error
}

// mediaService is the brand media library: operator uploads that posts can
// reference alongside generated images.
type mediaService struct {
	ma      repository.MediaAssetRepository
	storage *StorageService
}

func NewMediaService(ma repository.MediaAssetRepository, storage *StorageService) MediaService {
	return &mediaService{ma: ma, storage: storage}
}

var allowedUploadTypes = map[string]struct{}{
	"jpg": {}, "jpeg": {}, "png": {}, "gif": {}, "webp": {},
}

func (s *mediaService) Upload(ctx context.Context, brand *models.Brand, file *multipart.FileHeader) (*models.MediaAsset, error) {
	if brand == nil {
		err := errors.New("brand not found")
		slog.Info(err.Error())
		return nil, err
	}
	if file == nil {
		err := errors.New("no file provided")
		slog.Info(err.Error())
		return nil, err
	}

	fileContent, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("error opening file: %w", err)
	}
	defer fileContent.Close()

	fileBytes, err := io.ReadAll(fileContent)
	if err != nil {
		return nil, fmt.Errorf("error reading file content: %w", err)
	}

	fileType, err := filetype.Match(fileBytes)
	if err != nil || fileType == types.Unknown {
		return nil, fmt.Errorf("unsupported file type: %w", err)
	}
	if _, ok := allowedUploadTypes[fileType.Extension]; !ok {
		return nil, fmt.Errorf("file type %s is not allowed", fileType.Extension)
	}

	id, err := gonanoid.New()
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	key := fmt.Sprintf("%s/%s.%s", PrefixUploads, id, fileType.Extension)

	result := s.storage.UploadBytes(ctx, brand.Slug, key, fileBytes, fileType.MIME.Value)
	if !result.Success {
		err := fmt.Errorf("upload failed: %s", result.Error)
		slog.Info(err.Error())
		return nil, err
	}

	asset := &models.MediaAsset{
		BrandID:    brand.ID,
		StorageKey: result.StorageKey,
		FileURL:    result.PublicURL,
		FileType:   result.FileType,
		FileSize:   result.FileSize,
	}
	assetID, err := s.ma.Create(ctx, nil, asset)
	if err != nil {
		return nil, err
	}
	asset.ID = assetID

	return asset, nil
}

func (s *mediaService) List(ctx context.Context, brandID int64) ([]*models.MediaAsset, error) {
	assets, err := s.ma.ListByBrandID(ctx, brandID)
	if err != nil {
		return nil, fmt.Errorf("error listing media assets: %w", err)
	}
	return assets, nil
}

func (s *mediaService) Remove(ctx context.Context, brandID, assetID int64) error {
	asset, err := s.ma.GetByID(ctx, assetID)
	if err != nil {
		return err
	}
	if asset == nil || asset.BrandID != brandID {
		err := errors.New("media asset doesn't exist")
		slog.Info(err.Error())
		return err
	}

	return s.ma.Remove(ctx, assetID)
}
