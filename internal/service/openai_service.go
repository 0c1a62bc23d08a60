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
	"time"

	cfg "github.com/marafield/brandops/configs"
	"github.com/marafield/brandops/internal/models"
	"github.com/marafield/brandops/internal/repository"
	"github.com/marafield/brandops/internal/transfer"
)

const (
	openAIBaseURL = "https://api.openai.com/v1"

	captionModel = "gpt-4o-mini"
	imageModel   = "dall-e-3"
)

type OpenAIService interface {
	GenerateCaption(ctx context.Context, req *transfer.CaptionRequest) (string, error)
	GenerateImage(ctx context.Context, brandSlug string, req *transfer.ImageRequest) (*models.MediaAsset, error)
}

// openAIService generates captions and images for the dashboard. Image
// generation immediately rehosts the ephemeral result URL into the brand
// bucket and records a media asset, so nothing downstream ever holds a
// URL that expires.
type openAIService struct {
	cfg        cfg.Config
	storage    *StorageService
	ma         repository.MediaAssetRepository
	httpClient *http.Client
	baseURL    string
}

func NewOpenAIService(c cfg.Config, storage *StorageService, ma repository.MediaAssetRepository) OpenAIService {
	return &openAIService{
		cfg:        c,
		storage:    storage,
		ma:         ma,
		httpClient: &http.Client{Timeout: 2 * time.Minute},
		baseURL:    openAIBaseURL,
	}
}

func (s *openAIService) GenerateCaption(ctx context.Context, req *transfer.CaptionRequest) (string, error) {
	if req.Prompt == "" {
		err := errors.New("prompt cannot be empty")
		slog.Info(err.Error())
		return "", err
	}

	payload := transfer.ChatCompletionRequest{
		Model: captionModel,
		Messages: []transfer.ChatMessage{
			{Role: "system", Content: fmt.Sprintf("You write short social media captions for the %s platform.", req.Platform)},
			{Role: "user", Content: req.Prompt},
		},
		MaxTokens:   300,
		Temperature: 0.8,
	}

	var result transfer.ChatCompletionResponse
	if err := s.postJSON(ctx, "/chat/completions", payload, &result); err != nil {
		return "", err
	}

	if result.Error != nil {
		return "", fmt.Errorf("OpenAI API error: %s", result.Error.Message)
	}
	if len(result.Choices) == 0 {
		return "", errors.New("no completion returned from OpenAI")
	}

	return result.Choices[0].Message.Content, nil
}

func (s *openAIService) GenerateImage(ctx context.Context, brandSlug string, req *transfer.ImageRequest) (*models.MediaAsset, error) {
	if req.Prompt == "" {
		err := errors.New("prompt cannot be empty")
		slog.Info(err.Error())
		return nil, err
	}

	size := req.Size
	if size == "" {
		size = "1024x1024"
	}

	payload := transfer.ImageGenerationRequest{
		Model:   imageModel,
		Prompt:  req.Prompt,
		N:       1,
		Size:    size,
		Quality: req.Quality,
		Style:   req.Style,
	}

	var result transfer.ImageGenerationResponse
	if err := s.postJSON(ctx, "/images/generations", payload, &result); err != nil {
		return nil, err
	}

	if result.Error != nil {
		return nil, fmt.Errorf("OpenAI API error: %s", result.Error.Message)
	}
	if len(result.Data) == 0 || result.Data[0].URL == "" {
		return nil, errors.New("no image URL returned from OpenAI")
	}

	sourceURL := result.Data[0].URL

	rehost := s.storage.UploadFromURL(ctx, sourceURL, "generated", brandSlug, PrefixAIGenerated)
	if !rehost.Success {
		return nil, fmt.Errorf("failed to rehost generated image: %s", rehost.Error)
	}

	asset := &models.MediaAsset{
		BrandID:    req.BrandID,
		SourceURL:  sourceURL,
		StorageKey: rehost.StorageKey,
		FileURL:    rehost.PublicURL,
		FileType:   rehost.FileType,
		FileSize:   rehost.FileSize,
	}

	assetID, err := s.ma.Create(ctx, nil, asset)
	if err != nil {
		return nil, fmt.Errorf("error saving media asset: %w", err)
	}
	asset.ID = assetID

	return asset, nil
}

func (s *openAIService) postJSON(ctx context.Context, path string, payload any, out any) error {
	if s.cfg.OpenAIAPIKey == "" {
		return errors.New("OpenAI API key is not configured")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("error marshalling payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.cfg.OpenAIAPIKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request error: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading response body: %w", err)
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("error parsing response: %w", err)
	}

	return nil
}
